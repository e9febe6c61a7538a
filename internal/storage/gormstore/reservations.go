package gormstore

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hotel_portal/internal/domain"
)

func (s *Store) reservationFilter(q domain.ReservationQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Status != "" {
			tx = tx.Where("status = ?", q.Status)
		}
		if q.PropertyID != nil {
			tx = tx.Where("property_id = ?", *q.PropertyID)
		}
		if q.GuestID != nil {
			tx = tx.Where("guest_id = ?", *q.GuestID)
		}
		if q.From != nil {
			tx = tx.Where("check_in_date >= ?", domain.Day(*q.From))
		}
		if q.To != nil {
			tx = tx.Where("check_in_date < ?", domain.Day(*q.To))
		}
		if term := strings.TrimSpace(q.Search); term != "" {
			pattern := "%" + strings.ToLower(term) + "%"
			guests := likeAny(s.db.Model(&domain.Guest{}).Select("id"), term, "first_name", "last_name", "email")
			tx = tx.Where("(LOWER(confirmation_number) LIKE ? OR guest_id IN (?))", pattern, guests)
		}
		return tx
	}
}

func (s *Store) ListReservations(ctx context.Context, q domain.ReservationQuery) (domain.Page[domain.Reservation], error) {
	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&domain.Reservation{}).Scopes(s.reservationFilter(q)).Count(&total).Error; err != nil {
		return domain.Page[domain.Reservation]{}, err
	}
	items := make([]domain.Reservation, 0)
	err := db.Model(&domain.Reservation{}).
		Scopes(s.reservationFilter(q), paginate(q.Limit, q.Offset)).
		Preload("Guest").
		Preload("Property").
		Preload("Rooms").
		Order("check_in_date DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return domain.Page[domain.Reservation]{}, err
	}
	return domain.Page[domain.Reservation]{Items: items, Total: total}, nil
}

func (s *Store) GetReservation(ctx context.Context, id int64) (domain.Reservation, error) {
	var r domain.Reservation
	err := s.db.WithContext(ctx).
		Preload("Guest").
		Preload("Property").
		Preload("Rooms", func(tx *gorm.DB) *gorm.DB { return tx.Order("id") }).
		Preload("Payments", func(tx *gorm.DB) *gorm.DB { return tx.Order("created_at, id") }).
		First(&r, id).Error
	return r, notFound(err)
}

// CreateReservation inserts the reservation and its rooms in one transaction.
func (s *Store) CreateReservation(ctx context.Context, r *domain.Reservation) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Omit("Guest", "Property", "Payments").Create(r).Error
	})
}

var reservationDetailColumns = []string{
	"guest_id", "property_id", "check_in_date", "check_out_date", "nights",
	"adults", "children", "total_amount", "currency", "special_requests", "source", "updated_at",
}

func (s *Store) UpdateReservation(ctx context.Context, r *domain.Reservation, from domain.ReservationStatus) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&domain.Reservation{}).
			Where("id = ? AND status = ?", r.ID, from).
			Select(reservationDetailColumns).
			Omit(clause.Associations).
			Updates(r)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return missingOrConflict(tx, &domain.Reservation{}, r.ID)
		}
		if err := tx.Where("reservation_id = ?", r.ID).Delete(&domain.ReservationRoom{}).Error; err != nil {
			return err
		}
		for i := range r.Rooms {
			r.Rooms[i].ID = 0
			r.Rooms[i].ReservationID = r.ID
		}
		if len(r.Rooms) == 0 {
			return nil
		}
		return tx.Create(&r.Rooms).Error
	})
}

func (s *Store) SaveStatus(ctx context.Context, r *domain.Reservation, from domain.ReservationStatus) error {
	db := s.db.WithContext(ctx)
	res := db.Model(&domain.Reservation{}).
		Where("id = ? AND status = ?", r.ID, from).
		Updates(map[string]any{
			"status":              r.Status,
			"cancellation_reason": r.CancellationReason,
			"confirmed_at":        r.ConfirmedAt,
			"cancelled_at":        r.CancelledAt,
			"checked_in_at":       r.CheckedInAt,
			"checked_out_at":      r.CheckedOutAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrConflict(db, &domain.Reservation{}, r.ID)
	}
	return nil
}

func missingOrConflict(tx *gorm.DB, model any, id int64) error {
	var n int64
	if err := tx.Model(model).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return domain.ErrConflict
}
