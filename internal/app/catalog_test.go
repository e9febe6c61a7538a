package app_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"hotel_portal/internal/app"
	"hotel_portal/internal/domain"
)

func TestCatalog_CreateOfferDerivesAndInvalidates(t *testing.T) {
	f := newFixture()
	svc := app.NewAdminService(f.repos(), f.cache)
	ctx := context.Background()
	_ = f.cache.Set(ctx, "pub:offers:2026-06-01", []string{"stale"}, 60)
	_ = f.cache.Set(ctx, "pub:navigation", []string{"keep"}, 60)

	day := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Offers.Create(ctx, &domain.SpecialOffer{
		Title:         "Grand Opening!",
		OriginalPrice: ptr(1000.0),
		OfferPrice:    ptr(750.0),
		ValidFrom:     day,
		ValidTo:       day.AddDate(0, 1, 0),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.ID == 0 || got.Slug != "grand-opening" {
		t.Fatalf("unexpected offer: %+v", got)
	}
	if *got.SavingsAmount != 250 || *got.SavingsPercent != 25 {
		t.Fatalf("unexpected savings: %v %v", *got.SavingsAmount, *got.SavingsPercent)
	}
	if ok, _ := f.cache.Get(ctx, "pub:offers:2026-06-01", new([]string)); ok {
		t.Fatalf("offer cache should be dropped")
	}
	if ok, _ := f.cache.Get(ctx, "pub:navigation", new([]string)); !ok {
		t.Fatalf("navigation cache should survive an offer write")
	}
}

func TestCatalog_SlugCollisionIsBusinessFailure(t *testing.T) {
	f := newFixture()
	svc := app.NewAdminService(f.repos(), f.cache)
	ctx := context.Background()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	if _, err := svc.Events.Create(ctx, &domain.Event{Title: "Jazz Night", StartDate: start}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	_, err := svc.Events.Create(ctx, &domain.Event{Title: "Jazz  night", StartDate: start})
	be, ok := domain.AsBusiness(err)
	if !ok || !strings.Contains(be.Msg, `"jazz-night"`) {
		t.Fatalf("expected slug business error, got %v", err)
	}

	// updating a row with its own slug is fine
	if _, err := svc.Events.Update(ctx, 1, &domain.Event{Title: "Jazz Night", StartDate: start, IsActive: true}); err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestCatalog_ValidationMessages(t *testing.T) {
	f := newFixture()
	svc := app.NewAdminService(f.repos(), f.cache)

	_, err := svc.Properties.Create(context.Background(), &domain.Property{Name: "Sea View", Email: "not-an-email"})
	be, ok := domain.AsBusiness(err)
	if !ok {
		t.Fatalf("expected business error, got %v", err)
	}
	for _, want := range []string{"city is required", "country is required", "email must be a valid email address"} {
		if !strings.Contains(be.Msg, want) {
			t.Fatalf("message %q lacks %q", be.Msg, want)
		}
	}

	_, err = svc.Events.Create(context.Background(), &domain.Event{
		Title:     "Gala",
		StartDate: time.Date(2026, 7, 2, 0, 0, 0, 0, time.UTC),
		EndDate:   ptr(time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
	})
	if _, ok := domain.AsBusiness(err); !ok {
		t.Fatalf("expected date order business error, got %v", err)
	}
}

func TestCatalog_RestaurantNeedsKnownProperty(t *testing.T) {
	f := newFixture()
	svc := app.NewAdminService(f.repos(), f.cache)

	_, err := svc.Restaurants.Create(context.Background(), &domain.Restaurant{PropertyID: 42, Name: "Sea Grill"})
	be, ok := domain.AsBusiness(err)
	if !ok || be.Msg != "The selected property does not exist" {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCatalog_ToggleUnsupportedFlag(t *testing.T) {
	f := newFixture()
	svc := app.NewAdminService(f.repos(), f.cache)
	ctx := context.Background()

	slide, err := svc.HeroSlides.Create(ctx, &domain.HeroSlide{Title: "Welcome", ImageURL: "/hero.jpg"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.HeroSlides.Toggle(ctx, slide.ID, domain.FlagFeatured); err == nil {
		t.Fatalf("expected business error toggling featured on a slide")
	} else if _, ok := domain.AsBusiness(err); !ok {
		t.Fatalf("expected business error, got %v", err)
	}
	if _, err := svc.HeroSlides.Toggle(ctx, slide.ID, domain.FlagActive); err != nil {
		t.Fatalf("Toggle active: %v", err)
	}
	if len(f.slides.toggled) != 1 || f.slides.toggled[0] != "is_active" {
		t.Fatalf("unexpected toggles: %v", f.slides.toggled)
	}
	if _, err := svc.HeroSlides.Toggle(ctx, 99, domain.FlagActive); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCatalog_DeleteGuards(t *testing.T) {
	f := newFixture()
	svc := app.NewAdminService(f.repos(), f.cache)
	ctx := context.Background()

	p, err := svc.Properties.Create(ctx, &domain.Property{Name: "Alpha", City: "Porto", Country: "Portugal"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	f.props.restaurants, f.props.reservations = 2, 1
	err = svc.Properties.Delete(ctx, p.ID)
	be, ok := domain.AsBusiness(err)
	if !ok || be.Msg != "Cannot delete this property: it still has 2 restaurants and 1 reservation" {
		t.Fatalf("unexpected error: %v", err)
	}
	f.props.restaurants, f.props.reservations = 0, 0
	if err := svc.Properties.Delete(ctx, p.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Properties.Delete(ctx, p.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	g, err := svc.Guests.Create(ctx, &domain.Guest{FirstName: "Ana", LastName: "Silva", Email: " Ana@Example.com "})
	if err != nil {
		t.Fatalf("Create guest: %v", err)
	}
	if g.Email != "ana@example.com" {
		t.Fatalf("email not normalized: %q", g.Email)
	}
	if _, err := svc.Guests.Create(ctx, &domain.Guest{FirstName: "A", LastName: "B", Email: "ana@example.com"}); err == nil {
		t.Fatalf("expected duplicate email failure")
	}
	f.guests.reservations = 1
	if _, ok := domain.AsBusiness(svc.Guests.Delete(ctx, g.ID)); !ok {
		t.Fatalf("expected guest delete to be refused")
	}
}
