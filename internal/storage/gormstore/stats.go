package gormstore

import (
	"context"
	"time"

	"hotel_portal/internal/domain"
)

func (s *Store) CountActiveProperties(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Property{}).Where("is_active = ?", true).Count(&n).Error
	return n, err
}

func (s *Store) CountGuests(ctx context.Context) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Guest{}).Count(&n).Error
	return n, err
}

func (s *Store) CountReservations(ctx context.Context, status domain.ReservationStatus) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Reservation{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

// CountArrivals counts reservations still expected to check in on day.
func (s *Store) CountArrivals(ctx context.Context, day time.Time) (int64, error) {
	d := domain.Day(day)
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Reservation{}).
		Where("check_in_date >= ? AND check_in_date < ?", d, d.AddDate(0, 0, 1)).
		Where("status IN ?", []domain.ReservationStatus{domain.ReservationPending, domain.ReservationConfirmed}).
		Count(&n).Error
	return n, err
}

// CountDepartures counts in-house reservations due to check out on day.
func (s *Store) CountDepartures(ctx context.Context, day time.Time) (int64, error) {
	d := domain.Day(day)
	var n int64
	err := s.db.WithContext(ctx).Model(&domain.Reservation{}).
		Where("check_out_date >= ? AND check_out_date < ?", d, d.AddDate(0, 0, 1)).
		Where("status = ?", domain.ReservationCheckedIn).
		Count(&n).Error
	return n, err
}

// Revenue is money collected in [from, to) less money returned in the same
// window. Payments count by processed_at and refunds by refunded_at, so a
// refund lands in the month it was issued. A payment keeps only its latest
// refund time, so all of its refunds fall in that month.
func (s *Store) Revenue(ctx context.Context, from, to time.Time) (float64, error) {
	db := s.db.WithContext(ctx)
	settled := []domain.PaymentStatus{domain.PaymentPaid, domain.PaymentPartiallyRefunded, domain.PaymentRefunded}

	var collected, returned float64
	err := db.Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status IN ?", settled).
		Where("processed_at >= ? AND processed_at < ?", from, to).
		Scan(&collected).Error
	if err != nil {
		return 0, err
	}
	err = db.Model(&domain.Payment{}).
		Select("COALESCE(SUM(refunded_amount), 0)").
		Where("status IN ?", settled).
		Where("refunded_at >= ? AND refunded_at < ?", from, to).
		Scan(&returned).Error
	if err != nil {
		return 0, err
	}
	return collected - returned, nil
}
