package app

import (
	"context"

	"hotel_portal/internal/domain"
)

// Repos is the storage the admin actions need.
type Repos struct {
	Properties   domain.PropertyRepository
	Restaurants  domain.Repository[domain.Restaurant]
	Events       domain.Repository[domain.Event]
	HeroSlides   domain.Repository[domain.HeroSlide]
	Offers       domain.Repository[domain.SpecialOffer]
	Guests       domain.GuestRepository
	Reservations domain.ReservationRepository
	Payments     domain.PaymentRepository
	Stats        domain.StatsRepository
}

// AdminService groups the catalog screens of the dashboard.
type AdminService struct {
	Properties  *Catalog[domain.Property, *domain.Property]
	Restaurants *Catalog[domain.Restaurant, *domain.Restaurant]
	Events      *Catalog[domain.Event, *domain.Event]
	HeroSlides  *Catalog[domain.HeroSlide, *domain.HeroSlide]
	Offers      *Catalog[domain.SpecialOffer, *domain.SpecialOffer]
	Guests      *Catalog[domain.Guest, *domain.Guest]
}

func NewAdminService(r Repos, cache domain.Cache) *AdminService {
	vd := newValidator()

	props := newCatalog[domain.Property, *domain.Property](domain.KindProperty, r.Properties, cache, vd, keyPublic)
	props.remove = func(ctx context.Context, id int64) error {
		restaurants, reservations, err := r.Properties.DeleteUnreferenced(ctx, id)
		if err != nil {
			return err
		}
		if restaurants > 0 || reservations > 0 {
			return domain.Business("Cannot delete this property: it still has %s and %s",
				plural(restaurants, "restaurant"), plural(reservations, "reservation"))
		}
		return nil
	}

	restaurants := newCatalog[domain.Restaurant, *domain.Restaurant](domain.KindRestaurant, r.Restaurants, cache, vd, keyRestaurants, keyProperty)
	restaurants.rules = append(restaurants.rules, func(ctx context.Context, v *domain.Restaurant) error {
		return propertyExists(ctx, r.Properties, &v.PropertyID)
	})

	events := newCatalog[domain.Event, *domain.Event](domain.KindEvent, r.Events, cache, vd, keyEvents, keyProperty)
	events.rules = append(events.rules, func(ctx context.Context, v *domain.Event) error {
		return propertyExists(ctx, r.Properties, v.PropertyID)
	})

	slides := newCatalog[domain.HeroSlide, *domain.HeroSlide](domain.KindHeroSlide, r.HeroSlides, cache, vd, keyHeroSlides)
	slides.rules = append(slides.rules, func(ctx context.Context, v *domain.HeroSlide) error {
		return propertyExists(ctx, r.Properties, v.PropertyID)
	})

	offers := newCatalog[domain.SpecialOffer, *domain.SpecialOffer](domain.KindOffer, r.Offers, cache, vd, keyOffers, keyProperty)
	offers.rules = append(offers.rules, func(ctx context.Context, v *domain.SpecialOffer) error {
		return propertyExists(ctx, r.Properties, v.PropertyID)
	})

	guests := newCatalog[domain.Guest, *domain.Guest](domain.KindGuest, r.Guests, nil, vd)
	guests.rules = append(guests.rules, func(ctx context.Context, v *domain.Guest) error {
		taken, err := r.Guests.EmailTaken(ctx, v.Email, v.ID)
		if err != nil {
			return err
		}
		if taken {
			return domain.Business("A guest with the email %s already exists", v.Email)
		}
		return nil
	})
	guests.deleteGuard = func(ctx context.Context, id int64) error {
		n, err := r.Guests.CountReservations(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return domain.Business("Cannot delete this guest: they have %s on file", plural(n, "reservation"))
		}
		return nil
	}

	return &AdminService{
		Properties:  props,
		Restaurants: restaurants,
		Events:      events,
		HeroSlides:  slides,
		Offers:      offers,
		Guests:      guests,
	}
}
