package gormstore

import (
	"context"
	"time"

	"gorm.io/gorm"

	"hotel_portal/internal/domain"
)

func (s *Store) Navigation(ctx context.Context) ([]domain.NavItem, error) {
	out := make([]domain.NavItem, 0)
	err := s.db.WithContext(ctx).Model(&domain.Property{}).
		Select("name", "slug", "city").
		Where("is_active = ?", true).
		Order("sort_order, name").
		Scan(&out).Error
	return out, err
}

func (s *Store) ActiveProperties(ctx context.Context) ([]domain.Property, error) {
	out := make([]domain.Property, 0)
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("is_featured DESC, sort_order, name").
		Find(&out).Error
	return out, err
}

func (s *Store) PropertyBySlug(ctx context.Context, slug string) (domain.Property, error) {
	var p domain.Property
	err := s.db.WithContext(ctx).Where("slug = ? AND is_active = ?", slug, true).First(&p).Error
	return p, notFound(err)
}

// ActiveRestaurants lists active restaurants of active properties,
// optionally narrowed to one property.
func (s *Store) ActiveRestaurants(ctx context.Context, propertyID *int64) ([]domain.RestaurantListing, error) {
	db := s.db.WithContext(ctx)
	tx := db.Preload("Property").
		Where("is_active = ?", true).
		Where("property_id IN (?)", db.Model(&domain.Property{}).Select("id").Where("is_active = ?", true))
	if propertyID != nil {
		tx = tx.Where("property_id = ?", *propertyID)
	}
	var rows []domain.Restaurant
	if err := tx.Order("is_featured DESC, sort_order, name").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]domain.RestaurantListing, 0, len(rows))
	for _, r := range rows {
		l := domain.RestaurantListing{Restaurant: r}
		if r.Property != nil {
			l.PropertyName, l.PropertySlug = r.Property.Name, r.Property.Slug
		}
		l.Property = nil
		out = append(out, l)
	}
	return out, nil
}

func (s *Store) MapMarkers(ctx context.Context) ([]domain.MapMarker, error) {
	out := make([]domain.MapMarker, 0)
	err := s.db.WithContext(ctx).Model(&domain.Property{}).
		Select("id", "name", "slug", "city", "country", "address", "latitude", "longitude").
		Where("is_active = ?", true).
		Where("latitude IS NOT NULL AND longitude IS NOT NULL").
		Order("sort_order, name").
		Scan(&out).Error
	return out, err
}

func (s *Store) ActiveHeroSlides(ctx context.Context, at time.Time) ([]domain.HeroSlide, error) {
	out := make([]domain.HeroSlide, 0)
	err := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("(starts_at IS NULL OR starts_at <= ?)", at).
		Where("(ends_at IS NULL OR ends_at >= ?)", at).
		Order("sort_order, id").
		Find(&out).Error
	return out, err
}

// CurrentOffers lists offers valid on day. Group-wide offers (no property)
// are included when narrowing to a property.
func (s *Store) CurrentOffers(ctx context.Context, propertyID *int64, day time.Time) ([]domain.SpecialOffer, error) {
	d := domain.Day(day)
	out := make([]domain.SpecialOffer, 0)
	err := s.db.WithContext(ctx).
		Scopes(forProperty(propertyID)).
		Where("is_active = ?", true).
		Where("valid_from < ? AND valid_to >= ?", d.AddDate(0, 0, 1), d).
		Order("is_featured DESC, sort_order, valid_to").
		Find(&out).Error
	return out, err
}

// UpcomingEvents lists published events that have not finished before day.
func (s *Store) UpcomingEvents(ctx context.Context, propertyID *int64, day time.Time) ([]domain.Event, error) {
	d := domain.Day(day)
	out := make([]domain.Event, 0)
	err := s.db.WithContext(ctx).
		Scopes(forProperty(propertyID)).
		Where("is_active = ? AND status = ?", true, domain.EventPublished).
		Where("COALESCE(end_date, start_date) >= ?", d).
		Order("start_date, sort_order, id").
		Find(&out).Error
	return out, err
}

func forProperty(id *int64) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if id == nil {
			return tx
		}
		return tx.Where("(property_id = ? OR property_id IS NULL)", *id)
	}
}
