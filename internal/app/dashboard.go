package app

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"hotel_portal/internal/domain"
)

type DashboardService struct {
	stats domain.StatsRepository
	now   func() time.Time
}

func NewDashboardService(stats domain.StatsRepository) *DashboardService {
	return &DashboardService{stats: stats, now: time.Now}
}

func (s *DashboardService) WithClock(now func() time.Time) *DashboardService {
	s.now = now
	return s
}

// Overview runs every counter concurrently.
func (s *DashboardService) Overview(ctx context.Context) (domain.Dashboard, error) {
	today := domain.Day(s.now())
	monthStart := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	var d domain.Dashboard
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		d.ActiveProperties, err = s.stats.CountActiveProperties(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.Guests, err = s.stats.CountGuests(gctx)
		return err
	})
	g.Go(func() (err error) {
		d.PendingReservations, err = s.stats.CountReservations(gctx, domain.ReservationPending)
		return err
	})
	g.Go(func() (err error) {
		d.InHouse, err = s.stats.CountReservations(gctx, domain.ReservationCheckedIn)
		return err
	})
	g.Go(func() (err error) {
		d.ArrivalsToday, err = s.stats.CountArrivals(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		d.DeparturesToday, err = s.stats.CountDepartures(gctx, today)
		return err
	})
	g.Go(func() (err error) {
		d.RevenueThisMonth, err = s.stats.Revenue(gctx, monthStart, monthStart.AddDate(0, 1, 0))
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.Dashboard{}, err
	}
	return d, nil
}
