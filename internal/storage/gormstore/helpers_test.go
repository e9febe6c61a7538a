package gormstore_test

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"hotel_portal/internal/domain"
	"hotel_portal/internal/storage/gormstore"
)

// openSQLite returns a migrated in-memory database private to the test.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gormstore.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name), zerolog.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	if err := gormstore.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func seedProperty(t *testing.T, s *gormstore.Store, name string, active bool) domain.Property {
	t.Helper()
	p := domain.Property{Name: name, City: "Lisbon", Country: "Portugal", IsActive: active}
	p.Prepare()
	if err := s.Properties().Create(context.Background(), &p); err != nil {
		t.Fatalf("create property: %v", err)
	}
	return p
}

func seedGuest(t *testing.T, s *gormstore.Store, email string) domain.Guest {
	t.Helper()
	g := domain.Guest{FirstName: "Ana", LastName: "Silva", Email: email}
	g.Prepare()
	if err := s.Guests().Create(context.Background(), &g); err != nil {
		t.Fatalf("create guest: %v", err)
	}
	return g
}

func seedReservation(t *testing.T, s *gormstore.Store, guestID, propertyID int64, in time.Time, nights int) domain.Reservation {
	t.Helper()
	r := domain.Reservation{
		ConfirmationNumber: fmt.Sprintf("HR-%d-%d", guestID, in.Unix()),
		GuestID:            guestID,
		PropertyID:         propertyID,
		CheckInDate:        in,
		CheckOutDate:       in.AddDate(0, 0, nights),
		Adults:             2,
		Rooms:              []domain.ReservationRoom{{RoomType: "Deluxe", Rate: 120}},
	}
	r.Prepare()
	if err := s.CreateReservation(context.Background(), &r); err != nil {
		t.Fatalf("create reservation: %v", err)
	}
	return r
}

func ptime(t time.Time) *time.Time { return &t }
func pint64(i int64) *int64        { return &i }
func pbool(b bool) *bool           { return &b }
func pfloat(f float64) *float64    { return &f }
