package app_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"hotel_portal/internal/app"
	"hotel_portal/internal/domain"
)

var now = time.Date(2026, 5, 20, 9, 30, 0, 0, time.UTC)

func seedBooking(t *testing.T, f *fixture) (*app.ReservationService, domain.Reservation) {
	t.Helper()
	ctx := context.Background()
	_ = f.props.Create(ctx, &domain.Property{Name: "Alpha", City: "Porto", Country: "Portugal"})
	_ = f.guests.Create(ctx, &domain.Guest{FirstName: "Ana", LastName: "Silva", Email: "ana@example.com"})

	svc := app.NewReservationService(f.repos(), f.pub).WithClock(fixedClock(now))
	r, err := svc.Create(ctx, &domain.Reservation{
		GuestID:      1,
		PropertyID:   1,
		CheckInDate:  time.Date(2026, 6, 1, 15, 0, 0, 0, time.UTC),
		CheckOutDate: time.Date(2026, 6, 4, 11, 0, 0, 0, time.UTC),
		Adults:       2,
		Status:       domain.ReservationCheckedIn, // ignored on create
		Rooms: []domain.ReservationRoom{
			{RoomType: "Deluxe", Rate: 150},
			{RoomType: "Single", Rate: 80.5},
		},
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return svc, r
}

func TestReservation_CreateDerivesTotals(t *testing.T) {
	_, r := seedBooking(t, newFixture())

	if r.Status != domain.ReservationPending || r.Nights != 3 {
		t.Fatalf("unexpected reservation: %+v", r)
	}
	if r.TotalAmount != 691.5 {
		t.Fatalf("total = %v, want 691.5", r.TotalAmount)
	}
	if len(r.ConfirmationNumber) != len("HR260520-XXXXXX") || r.ConfirmationNumber[:9] != "HR260520-" {
		t.Fatalf("unexpected confirmation number %q", r.ConfirmationNumber)
	}
}

func TestReservation_CreateRejectsUnknownGuest(t *testing.T) {
	f := newFixture()
	_ = f.props.Create(context.Background(), &domain.Property{Name: "Alpha"})
	svc := app.NewReservationService(f.repos(), f.pub)

	_, err := svc.Create(context.Background(), &domain.Reservation{
		GuestID: 7, PropertyID: 1, Adults: 1,
		CheckInDate: now, CheckOutDate: now.AddDate(0, 0, 1),
		Rooms: []domain.ReservationRoom{{RoomType: "Twin", Rate: 90}},
	})
	be, ok := domain.AsBusiness(err)
	if !ok || be.Msg != "The selected guest does not exist" {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Create(context.Background(), &domain.Reservation{GuestID: 7, PropertyID: 1, Adults: 1, CheckInDate: now, CheckOutDate: now.AddDate(0, 0, 1)})
	if _, ok := domain.AsBusiness(err); !ok {
		t.Fatalf("expected rooms validation failure, got %v", err)
	}
}

func TestReservation_Lifecycle(t *testing.T) {
	f := newFixture()
	svc, r := seedBooking(t, f)
	ctx := context.Background()

	if _, err := svc.CheckIn(ctx, r.ID); err == nil {
		t.Fatalf("pending reservation must not check in")
	} else if be, _ := domain.AsBusiness(err); be == nil || be.Msg != "Cannot change reservation from pending to checked in" {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.Confirm(ctx, r.ID)
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got.Status != domain.ReservationConfirmed || got.ConfirmedAt == nil || !got.ConfirmedAt.Equal(now) {
		t.Fatalf("unexpected reservation: %+v", got)
	}
	if len(f.pub.events) != 1 || f.pub.events[0].key != domain.EventReservationStatusChanged {
		t.Fatalf("expected one status event, got %+v", f.pub.events)
	}
	ev := f.pub.events[0].v.(domain.ReservationStatusChanged)
	if ev.From != domain.ReservationPending || ev.To != domain.ReservationConfirmed {
		t.Fatalf("unexpected event: %+v", ev)
	}

	if _, err := svc.Cancel(ctx, r.ID, "  "); err == nil {
		t.Fatalf("cancel without a reason must fail")
	}
	got, err = svc.Cancel(ctx, r.ID, "Guest changed plans")
	if err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if got.Status != domain.ReservationCancelled || got.CancellationReason != "Guest changed plans" {
		t.Fatalf("unexpected reservation: %+v", got)
	}
	if _, err := svc.Update(ctx, r.ID, &got); err == nil {
		t.Fatalf("cancelled reservation must not be editable")
	}
}

func TestReservation_ConcurrentChangeIsReported(t *testing.T) {
	f := newFixture()
	svc, r := seedBooking(t, f)

	f.resv.conflict = true
	_, err := svc.Confirm(context.Background(), r.ID)
	be, ok := domain.AsBusiness(err)
	if !ok || be.Msg == "" {
		t.Fatalf("expected business error, got %v", err)
	}
	if len(f.pub.events) != 0 {
		t.Fatalf("no event on a lost write")
	}
	stored, _ := svc.Get(context.Background(), r.ID)
	if stored.Status != domain.ReservationPending {
		t.Fatalf("status changed despite conflict: %s", stored.Status)
	}
}

func TestReservation_UpdateRecomputes(t *testing.T) {
	f := newFixture()
	svc, r := seedBooking(t, f)

	r.CheckOutDate = r.CheckInDate.AddDate(0, 0, 1)
	r.Rooms = r.Rooms[:1]
	got, err := svc.Update(context.Background(), r.ID, &r)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Nights != 1 || got.TotalAmount != 150 || got.ConfirmationNumber != r.ConfirmationNumber {
		t.Fatalf("unexpected reservation: %+v", got)
	}
}

func TestExportReservations(t *testing.T) {
	f := newFixture()
	svc, r := seedBooking(t, f)

	var buf bytes.Buffer
	n, err := svc.ExportReservations(context.Background(), domain.ReservationQuery{}, &buf)
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	rows, err := wb.GetRows("Reservations")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != 2 || rows[0][0] != "Confirmation" || rows[1][0] != r.ConfirmationNumber || rows[1][5] != "2026-06-01" {
		t.Fatalf("unexpected rows: %v", rows)
	}
}
