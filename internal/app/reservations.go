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

var errStale = domain.Business("This record was changed by someone else. Reload it and try again")

type ReservationService struct {
	repo     domain.ReservationRepository
	guests   domain.Repository[domain.Guest]
	props    domain.Repository[domain.Property]
	pub      domain.Publisher
	validate *validator.Validate
	now      func() time.Time
	token    func() string
}

func NewReservationService(r Repos, pub domain.Publisher) *ReservationService {
	return &ReservationService{
		repo:     r.Reservations,
		guests:   r.Guests,
		props:    r.Properties,
		pub:      pub,
		validate: newValidator(),
		now:      time.Now,
		token:    uuid.NewString,
	}
}

// WithClock replaces the clock used for timestamps and confirmation numbers.
func (s *ReservationService) WithClock(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

func (s *ReservationService) List(ctx context.Context, q domain.ReservationQuery) (domain.Page[domain.Reservation], error) {
	return s.repo.ListReservations(ctx, q)
}

func (s *ReservationService) Get(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.repo.GetReservation(ctx, id)
}

// Create books a new PENDING reservation with its rooms.
func (s *ReservationService) Create(ctx context.Context, r *domain.Reservation) (domain.Reservation, error) {
	r.ID = 0
	r.Status = ""
	r.ConfirmedAt, r.CancelledAt, r.CheckedInAt, r.CheckedOutAt = nil, nil, nil, nil
	r.CancellationReason = ""
	r.Prepare()
	r.ConfirmationNumber = domain.NewConfirmationNumber(s.token(), s.now())
	if err := s.check(ctx, r); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.repo.CreateReservation(ctx, r); err != nil {
		return domain.Reservation{}, err
	}
	log.Info().Int64("reservation_id", r.ID).Str("confirmation", r.ConfirmationNumber).Msg("reservation created")
	return s.repo.GetReservation(ctx, r.ID)
}

// Update replaces guest, dates, occupancy and rooms while the reservation is
// still pending or confirmed.
func (s *ReservationService) Update(ctx context.Context, id int64, r *domain.Reservation) (domain.Reservation, error) {
	cur, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	if !cur.Editable() {
		return domain.Reservation{}, domain.Business("A %s reservation can no longer be edited", cur.Status.Label())
	}
	r.ID = id
	r.Status = cur.Status
	r.ConfirmationNumber = cur.ConfirmationNumber
	r.Prepare()
	if err := s.check(ctx, r); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.repo.UpdateReservation(ctx, r, cur.Status); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Reservation{}, errStale
		}
		return domain.Reservation{}, err
	}
	return s.repo.GetReservation(ctx, id)
}

func (s *ReservationService) Confirm(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationConfirmed, "")
}

func (s *ReservationService) Cancel(ctx context.Context, id int64, reason string) (domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationCancelled, reason)
}

func (s *ReservationService) CheckIn(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationCheckedIn, "")
}

func (s *ReservationService) CheckOut(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationCheckedOut, "")
}

func (s *ReservationService) NoShow(ctx context.Context, id int64) (domain.Reservation, error) {
	return s.Transition(ctx, id, domain.ReservationNoShow, "")
}

// Transition moves one reservation along the status table. The write only
// lands if nobody changed the status in between.
func (s *ReservationService) Transition(ctx context.Context, id int64, to domain.ReservationStatus, reason string) (domain.Reservation, error) {
	r, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		return domain.Reservation{}, err
	}
	from := r.Status
	at := s.now().UTC()
	if err := r.TransitionTo(to, at, reason); err != nil {
		return domain.Reservation{}, err
	}
	if err := s.repo.SaveStatus(ctx, &r, from); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return domain.Reservation{}, errStale
		}
		return domain.Reservation{}, err
	}
	log.Info().Int64("reservation_id", id).Str("from", string(from)).Str("to", string(to)).Msg("reservation status changed")
	publish(ctx, s.pub, domain.EventReservationStatusChanged, domain.ReservationStatusChanged{
		ReservationID:      r.ID,
		ConfirmationNumber: r.ConfirmationNumber,
		From:               from,
		To:                 to,
		Reason:             r.CancellationReason,
		At:                 at,
	})
	return r, nil
}

func (s *ReservationService) check(ctx context.Context, r *domain.Reservation) error {
	if err := validate(s.validate, r); err != nil {
		return err
	}
	if err := r.Check(); err != nil {
		return err
	}
	if _, err := s.guests.Get(ctx, r.GuestID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Business("The selected guest does not exist")
		}
		return err
	}
	if _, err := s.props.Get(ctx, r.PropertyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Business("The selected property does not exist")
		}
		return err
	}
	return nil
}

// publish is fire-and-forget: a broker outage never fails the admin action.
func publish(ctx context.Context, pub domain.Publisher, key string, v any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, key, v); err != nil {
		log.Warn().Err(err).Str("routing_key", key).Msg("publish domain event failed")
	}
}
