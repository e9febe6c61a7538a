package app

import (
	"context"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_portal/internal/domain"
)

// GeocodeService resolves property addresses to map coordinates.
type GeocodeService struct {
	geo   domain.Geocoder
	props domain.PropertyRepository
	cache domain.Cache
}

func NewGeocodeService(g domain.Geocoder, props domain.PropertyRepository, cache domain.Cache) *GeocodeService {
	return &GeocodeService{geo: g, props: props, cache: cache}
}

// Pending lists properties the backfill job still has to locate.
func (s *GeocodeService) Pending(ctx context.Context, limit int) ([]domain.Property, error) {
	return s.props.MissingCoordinates(ctx, limit)
}

// GeocodeProperty is the admin action behind "locate on map".
func (s *GeocodeService) GeocodeProperty(ctx context.Context, id int64) (domain.Property, error) {
	p, err := s.props.Get(ctx, id)
	if err != nil {
		return domain.Property{}, err
	}
	if p.GeocodeQuery() == "" {
		return domain.Property{}, domain.Business("Add an address before locating this property on the map")
	}
	missed, err := s.locate(ctx, p)
	if err != nil {
		return domain.Property{}, err
	}
	if missed != "" {
		return domain.Property{}, domain.Business("No map position found for %q (%s)", p.GeocodeQuery(), missed)
	}
	return s.props.Get(ctx, id)
}

// Backfill locates one property for the batch job. Addresses the provider
// cannot resolve are logged as misses and skipped on later runs.
func (s *GeocodeService) Backfill(ctx context.Context, p domain.Property) error {
	if p.GeocodeQuery() == "" {
		s.logMiss(ctx, p.ID, 0, "no address")
		return nil
	}
	missed, err := s.locate(ctx, p)
	if err != nil {
		return err
	}
	if missed != "" {
		log.Info().Int64("property_id", p.ID).Str("reason", missed).Msg("geocode miss")
	}
	return nil
}

// locate returns a non-empty miss reason when the provider answered but
// could not (or would not) resolve the address.
func (s *GeocodeService) locate(ctx context.Context, p domain.Property) (string, error) {
	c, err := s.geo.Geocode(ctx, p.GeocodeQuery())
	if err != nil {
		var se interface{ StatusCode() int }
		switch {
		case errors.Is(err, domain.ErrNotFound):
			s.logMiss(ctx, p.ID, http.StatusNotFound, "no match")
			return "no match", nil
		case errors.As(err, &se) && (se.StatusCode() == http.StatusUnauthorized || se.StatusCode() == http.StatusForbidden):
			s.logMiss(ctx, p.ID, se.StatusCode(), "refused")
			return "refused", nil
		default:
			return "", err
		}
	}
	if err := s.props.SetCoordinates(ctx, p.ID, c); err != nil {
		return "", err
	}
	s.invalidate(ctx)
	return "", nil
}

// logMiss records an unresolvable address. A failed write only means the
// address is tried again on the next batch.
func (s *GeocodeService) logMiss(ctx context.Context, id int64, status int, reason string) {
	if err := s.props.LogGeocodeMiss(ctx, id, status, reason); err != nil {
		log.Warn().Err(err).Int64("property_id", id).Str("reason", reason).Msg("geocode miss not recorded")
	}
}

func (s *GeocodeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	for _, prefix := range []string{keyMap, keyProperties, keyProperty} {
		if err := s.cache.DelPrefix(ctx, prefix); err != nil {
			log.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
		}
	}
}
