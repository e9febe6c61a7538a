package app

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"hotel_portal/internal/domain"
)

// Public cache keys. Admin writes drop them by prefix.
const (
	keyPublic      = "pub:"
	keyNavigation  = "pub:navigation"
	keyProperties  = "pub:properties"
	keyProperty    = "pub:property:"
	keyRestaurants = "pub:restaurants"
	keyMap         = "pub:map"
	keyHeroSlides  = "pub:hero"
	keyOffers      = "pub:offers"
	keyEvents      = "pub:events"
)

// QueryService serves the marketing site from the cache, falling back to
// the database.
type QueryService struct {
	repo     domain.MarketingRepository
	cache    domain.Cache
	cacheTTL time.Duration
	now      func() time.Time
}

func NewQueryService(r domain.MarketingRepository, c domain.Cache, ttl time.Duration) *QueryService {
	return &QueryService{repo: r, cache: c, cacheTTL: ttl, now: time.Now}
}

// WithClock replaces the clock used for schedule windows.
func (s *QueryService) WithClock(now func() time.Time) *QueryService {
	s.now = now
	return s
}

func (s *QueryService) Navigation(ctx context.Context) ([]domain.NavItem, error) {
	return cached(ctx, s, keyNavigation, func() ([]domain.NavItem, error) {
		return s.repo.Navigation(ctx)
	})
}

func (s *QueryService) Properties(ctx context.Context) ([]domain.Property, error) {
	return cached(ctx, s, keyProperties, func() ([]domain.Property, error) {
		return s.repo.ActiveProperties(ctx)
	})
}

// Property assembles the public page of one property.
func (s *QueryService) Property(ctx context.Context, slug string) (domain.PropertyPage, error) {
	day := domain.Day(s.now())
	key := fmt.Sprintf("%s%s:%s", keyProperty, slug, day.Format(time.DateOnly))
	return cached(ctx, s, key, func() (domain.PropertyPage, error) {
		p, err := s.repo.PropertyBySlug(ctx, slug)
		if err != nil {
			return domain.PropertyPage{}, err
		}
		page := domain.PropertyPage{Property: p}
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			rs, err := s.repo.ActiveRestaurants(gctx, &p.ID)
			if err != nil {
				return err
			}
			page.Restaurants = make([]domain.Restaurant, 0, len(rs))
			for _, r := range rs {
				page.Restaurants = append(page.Restaurants, r.Restaurant)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			page.Offers, err = s.repo.CurrentOffers(gctx, &p.ID, day)
			return err
		})
		g.Go(func() error {
			var err error
			page.Events, err = s.repo.UpcomingEvents(gctx, &p.ID, day)
			return err
		})
		if err := g.Wait(); err != nil {
			return domain.PropertyPage{}, err
		}
		return page, nil
	})
}

func (s *QueryService) Restaurants(ctx context.Context) ([]domain.RestaurantListing, error) {
	return cached(ctx, s, keyRestaurants, func() ([]domain.RestaurantListing, error) {
		return s.repo.ActiveRestaurants(ctx, nil)
	})
}

func (s *QueryService) MapMarkers(ctx context.Context) ([]domain.MapMarker, error) {
	return cached(ctx, s, keyMap, func() ([]domain.MapMarker, error) {
		return s.repo.MapMarkers(ctx)
	})
}

// HeroSlides is not cached by day: slide windows are timestamps, so the TTL
// bounds how late a slide appears or disappears.
func (s *QueryService) HeroSlides(ctx context.Context) ([]domain.HeroSlide, error) {
	return cached(ctx, s, keyHeroSlides, func() ([]domain.HeroSlide, error) {
		return s.repo.ActiveHeroSlides(ctx, s.now().UTC())
	})
}

func (s *QueryService) Offers(ctx context.Context) ([]domain.SpecialOffer, error) {
	day := domain.Day(s.now())
	return cached(ctx, s, keyOffers+":"+day.Format(time.DateOnly), func() ([]domain.SpecialOffer, error) {
		return s.repo.CurrentOffers(ctx, nil, day)
	})
}

func (s *QueryService) Events(ctx context.Context) ([]domain.Event, error) {
	day := domain.Day(s.now())
	return cached(ctx, s, keyEvents+":"+day.Format(time.DateOnly), func() ([]domain.Event, error) {
		return s.repo.UpcomingEvents(ctx, nil, day)
	})
}

func cached[V any](ctx context.Context, s *QueryService, key string, load func() (V, error)) (V, error) {
	var out V
	if s.cache != nil {
		if ok, _ := s.cache.Get(ctx, key, &out); ok {
			return out, nil
		}
	}
	out, err := load()
	if err != nil {
		var zero V
		return zero, err
	}
	if s.cache != nil {
		// optional size guard
		if b, _ := json.Marshal(out); len(b) < 1_000_000 {
			_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
		}
	}
	return out, nil
}
