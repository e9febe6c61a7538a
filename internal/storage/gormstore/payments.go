package gormstore

import (
	"context"

	"gorm.io/gorm"

	"hotel_portal/internal/domain"
)

func paymentFilter(q domain.PaymentQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		if q.Status != "" {
			tx = tx.Where("status = ?", q.Status)
		}
		if q.ReservationID != nil {
			tx = tx.Where("reservation_id = ?", *q.ReservationID)
		}
		return tx
	}
}

func (s *Store) ListPayments(ctx context.Context, q domain.PaymentQuery) (domain.Page[domain.Payment], error) {
	db := s.db.WithContext(ctx)
	var total int64
	if err := db.Model(&domain.Payment{}).Scopes(paymentFilter(q)).Count(&total).Error; err != nil {
		return domain.Page[domain.Payment]{}, err
	}
	items := make([]domain.Payment, 0)
	err := db.Model(&domain.Payment{}).
		Scopes(paymentFilter(q), paginate(q.Limit, q.Offset)).
		Preload("Reservation").
		Preload("Reservation.Guest").
		Order("created_at DESC, id DESC").
		Find(&items).Error
	if err != nil {
		return domain.Page[domain.Payment]{}, err
	}
	return domain.Page[domain.Payment]{Items: items, Total: total}, nil
}

func (s *Store) GetPayment(ctx context.Context, id int64) (domain.Payment, error) {
	var p domain.Payment
	err := s.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Guest").
		First(&p, id).Error
	return p, notFound(err)
}

func (s *Store) CreatePayment(ctx context.Context, p *domain.Payment) error {
	return s.db.WithContext(ctx).Omit("Reservation").Create(p).Error
}

func (s *Store) SavePayment(ctx context.Context, p *domain.Payment, from domain.PaymentState) error {
	db := s.db.WithContext(ctx)
	res := db.Model(&domain.Payment{}).
		Where("id = ? AND status = ? AND refunded_amount = ?", p.ID, from.Status, from.RefundedAmount).
		Updates(map[string]any{
			"status":          p.Status,
			"refunded_amount": p.RefundedAmount,
			"refund_reason":   p.RefundReason,
			"processed_at":    p.ProcessedAt,
			"refunded_at":     p.RefundedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return missingOrConflict(db, &domain.Payment{}, p.ID)
	}
	return nil
}
