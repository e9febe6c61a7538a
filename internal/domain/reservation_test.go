package domain_test

import (
	"testing"
	"time"

	"hotel_portal/internal/domain"
)

func TestReservationPrepare_DerivesTotals(t *testing.T) {
	r := &domain.Reservation{
		CheckInDate:  time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 3, 13, 11, 0, 0, 0, time.UTC),
		Rooms: []domain.ReservationRoom{
			{RoomType: "Deluxe King", Rate: 180},
			{RoomType: "Standard Twin", Rate: 120.5},
		},
	}
	r.Prepare()
	if r.Nights != 3 {
		t.Fatalf("nights = %d, want 3", r.Nights)
	}
	if r.Rooms[0].Subtotal != 540 || r.Rooms[1].Subtotal != 361.5 {
		t.Fatalf("unexpected subtotals: %+v", r.Rooms)
	}
	if r.TotalAmount != 901.5 {
		t.Fatalf("total = %v, want 901.5", r.TotalAmount)
	}
	if r.Status != domain.ReservationPending || r.Currency != "USD" || r.Source != "DIRECT" {
		t.Fatalf("defaults not applied: %+v", r)
	}
	if err := r.Check(); err != nil {
		t.Fatalf("unexpected check error: %v", err)
	}
}

func TestReservationCheck_ZeroNights(t *testing.T) {
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	r := &domain.Reservation{CheckInDate: d, CheckOutDate: d}
	r.Prepare()
	if _, ok := domain.AsBusiness(r.Check()); !ok {
		t.Fatalf("expected business error for zero nights")
	}
}

func TestReservationTransitions(t *testing.T) {
	at := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	r := &domain.Reservation{Status: domain.ReservationPending}

	if err := r.TransitionTo(domain.ReservationCheckedIn, at, ""); err == nil {
		t.Fatalf("pending -> checked in must be rejected")
	}
	if err := r.TransitionTo(domain.ReservationConfirmed, at, ""); err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if r.ConfirmedAt == nil || !r.ConfirmedAt.Equal(at) {
		t.Fatalf("confirmedAt not stamped")
	}
	if err := r.TransitionTo(domain.ReservationCheckedIn, at, ""); err != nil {
		t.Fatalf("check in: %v", err)
	}
	if err := r.TransitionTo(domain.ReservationCancelled, at, "guest asked"); err == nil {
		t.Fatalf("checked in -> cancelled must be rejected")
	}
	if err := r.TransitionTo(domain.ReservationCheckedOut, at, ""); err != nil {
		t.Fatalf("check out: %v", err)
	}
	if r.Status != domain.ReservationCheckedOut || r.CheckedOutAt == nil {
		t.Fatalf("unexpected reservation: %+v", r)
	}
}

func TestReservationCancel_RequiresReason(t *testing.T) {
	r := &domain.Reservation{Status: domain.ReservationConfirmed}
	err := r.TransitionTo(domain.ReservationCancelled, time.Now(), "  ")
	be, ok := domain.AsBusiness(err)
	if !ok || be.Msg != "A cancellation reason is required" {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.Status != domain.ReservationConfirmed {
		t.Fatalf("status changed on failed transition")
	}
	if err := r.TransitionTo(domain.ReservationCancelled, time.Now(), "flight cancelled"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if r.CancellationReason != "flight cancelled" || r.CancelledAt == nil {
		t.Fatalf("cancellation not recorded: %+v", r)
	}
}

func TestTransitionMessage(t *testing.T) {
	r := &domain.Reservation{Status: domain.ReservationCancelled}
	err := r.TransitionTo(domain.ReservationConfirmed, time.Now(), "")
	if err == nil || err.Error() != "Cannot change reservation from cancelled to confirmed" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewConfirmationNumber(t *testing.T) {
	got := domain.NewConfirmationNumber("3f2a9c1e-aaaa-bbbb", time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	if got != "HR261016-3F2A9C" {
		t.Fatalf("unexpected confirmation number %q", got)
	}
}
