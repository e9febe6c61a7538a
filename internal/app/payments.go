package app

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_portal/internal/domain"
)

type PaymentService struct {
	repo         domain.PaymentRepository
	reservations domain.ReservationRepository
	pub          domain.Publisher
	validate     *validator.Validate
	now          func() time.Time
}

func NewPaymentService(r Repos, pub domain.Publisher) *PaymentService {
	return &PaymentService{
		repo:         r.Payments,
		reservations: r.Reservations,
		pub:          pub,
		validate:     newValidator(),
		now:          time.Now,
	}
}

func (s *PaymentService) WithClock(now func() time.Time) *PaymentService {
	s.now = now
	return s
}

func (s *PaymentService) List(ctx context.Context, q domain.PaymentQuery) (domain.Page[domain.Payment], error) {
	return s.repo.ListPayments(ctx, q)
}

func (s *PaymentService) Get(ctx context.Context, id int64) (domain.Payment, error) {
	return s.repo.GetPayment(ctx, id)
}

// Record registers a payment against a reservation, either still pending or
// already collected.
func (s *PaymentService) Record(ctx context.Context, p *domain.Payment) (domain.Payment, error) {
	if p.Status != "" && p.Status != domain.PaymentPending && p.Status != domain.PaymentPaid {
		return domain.Payment{}, domain.Business("A new payment must be pending or paid")
	}
	p.ID = 0
	p.RefundedAmount, p.RefundReason, p.RefundedAt = 0, "", nil
	p.Prepare()
	if p.Status == domain.PaymentPaid {
		at := s.now().UTC()
		p.ProcessedAt = &at
	} else {
		p.ProcessedAt = nil
	}
	if p.TransactionID == "" {
		p.TransactionID = uuid.NewString()
	}
	if err := validate(s.validate, p); err != nil {
		return domain.Payment{}, err
	}
	if _, err := s.reservations.GetReservation(ctx, p.ReservationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Payment{}, domain.Business("The selected reservation does not exist")
		}
		return domain.Payment{}, err
	}
	if err := s.repo.CreatePayment(ctx, p); err != nil {
		return domain.Payment{}, err
	}
	log.Info().Int64("payment_id", p.ID).Int64("reservation_id", p.ReservationID).Str("status", string(p.Status)).Msg("payment recorded")
	if p.Status == domain.PaymentPaid {
		s.publish(ctx, domain.EventPaymentPaid, p, "")
	}
	return *p, nil
}

func (s *PaymentService) MarkPaid(ctx context.Context, id int64) (domain.Payment, error) {
	p, err := s.apply(ctx, id, func(p *domain.Payment, at time.Time) error { return p.MarkPaid(at) })
	if err != nil {
		return domain.Payment{}, err
	}
	s.publish(ctx, domain.EventPaymentPaid, &p, "")
	return p, nil
}

func (s *PaymentService) Fail(ctx context.Context, id int64) (domain.Payment, error) {
	return s.apply(ctx, id, func(p *domain.Payment, at time.Time) error { return p.Fail(at) })
}

// Refund returns amount to the guest, or everything still refundable when
// amount is nil.
func (s *PaymentService) Refund(ctx context.Context, id int64, amount *float64, reason string) (domain.Payment, error) {
	p, err := s.apply(ctx, id, func(p *domain.Payment, at time.Time) error { return p.Refund(amount, reason, at) })
	if err != nil {
		return domain.Payment{}, err
	}
	s.publish(ctx, domain.EventPaymentRefunded, &p, p.RefundReason)
	return p, nil
}

func (s *PaymentService) apply(ctx context.Context, id int64, change func(*domain.Payment, time.Time) error) (domain.Payment, error) {
	p, err := s.repo.GetPayment(ctx, id)
	if err != nil {
		return domain.Payment{}, err
	}
	from := p.State()
	if err := change(&p, s.now().UTC()); err != nil {
		return domain.Payment{}, err
	}
	if err := s.repo.SavePayment(ctx, &p, from); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Payment{}, errStale
		}
		return domain.Payment{}, err
	}
	log.Info().Int64("payment_id", id).Str("from", string(from.Status)).Str("to", string(p.Status)).Msg("payment status changed")
	return p, nil
}

func (s *PaymentService) publish(ctx context.Context, key string, p *domain.Payment, reason string) {
	publish(ctx, s.pub, key, domain.PaymentChanged{
		PaymentID:      p.ID,
		ReservationID:  p.ReservationID,
		Status:         p.Status,
		Amount:         p.Amount,
		RefundedAmount: p.RefundedAmount,
		Currency:       p.Currency,
		Reason:         reason,
		At:             s.now().UTC(),
	})
}
