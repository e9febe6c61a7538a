package gormstore

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel_portal/internal/domain"
)

type Properties struct {
	*Table[domain.Property]
}

// DeleteUnreferenced holds the property row for update while counting, so a
// restaurant or reservation inserted concurrently waits on its foreign key
// check until the delete has committed or been refused.
func (p *Properties) DeleteUnreferenced(ctx context.Context, id int64) (restaurants, reservations int64, err error) {
	err = p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var prop domain.Property
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Select("id").First(&prop, id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Model(&domain.Restaurant{}).Where("property_id = ?", id).Count(&restaurants).Error; err != nil {
			return err
		}
		if err := tx.Model(&domain.Reservation{}).Where("property_id = ?", id).Count(&reservations).Error; err != nil {
			return err
		}
		if restaurants > 0 || reservations > 0 {
			return nil
		}
		for _, model := range []any{&domain.Event{}, &domain.SpecialOffer{}, &domain.HeroSlide{}} {
			if err := tx.Model(model).Where("property_id = ?", id).Update("property_id", nil).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("property_id = ?", id).Delete(&domain.GeocodeMiss{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Property{}, id).Error
	})
	if err != nil {
		return 0, 0, err
	}
	return restaurants, reservations, nil
}

// MissingCoordinates lists properties without a map position that have not
// already failed geocoding.
func (p *Properties) MissingCoordinates(ctx context.Context, limit int) ([]domain.Property, error) {
	db := p.db.WithContext(ctx)
	var out []domain.Property
	err := db.
		Where("(latitude IS NULL OR longitude IS NULL)").
		Where("id NOT IN (?)", db.Model(&domain.GeocodeMiss{}).Select("property_id")).
		Order("id").
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (p *Properties) SetCoordinates(ctx context.Context, id int64, c domain.Coords) error {
	return p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Property{}).Where("id = ?", id).
			Updates(map[string]any{"latitude": c.Lat, "longitude": c.Lon})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return tx.Where("property_id = ?", id).Delete(&domain.GeocodeMiss{}).Error
	})
}

func (p *Properties) LogGeocodeMiss(ctx context.Context, id int64, status int, reason string) error {
	miss := domain.GeocodeMiss{PropertyID: id, HTTPStatus: status, Reason: reason}
	return p.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"http_status", "reason", "seen_at"}),
		}).
		Create(&miss).Error
}

type Guests struct {
	*Table[domain.Guest]
}

func (g *Guests) EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error) {
	var n int64
	err := g.model(ctx).Where("email = ? AND id <> ?", email, exceptID).Count(&n).Error
	return n > 0, err
}

func (g *Guests) CountReservations(ctx context.Context, guestID int64) (int64, error) {
	var n int64
	err := g.db.WithContext(ctx).Model(&domain.Reservation{}).Where("guest_id = ?", guestID).Count(&n).Error
	return n, err
}
