package domain

import (
	"context"
	"time"
)

// Repository is the persistence surface shared by every catalog screen.
type Repository[T any] interface {
	List(ctx context.Context, q ListQuery) (Page[T], error)
	Get(ctx context.Context, id int64) (T, error)
	Create(ctx context.Context, v *T) error
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id int64) error
	// Toggle flips a flag column and returns the updated row.
	Toggle(ctx context.Context, id int64, column string) (T, error)
	SlugTaken(ctx context.Context, slug string, exceptID int64) (bool, error)
}

type PropertyRepository interface {
	Repository[Property]
	// DeleteUnreferenced removes the property unless restaurants or
	// reservations still point at it; then it returns their counts and
	// deletes nothing. Events, offers and hero slides lose their link.
	DeleteUnreferenced(ctx context.Context, id int64) (restaurants, reservations int64, err error)
	MissingCoordinates(ctx context.Context, limit int) ([]Property, error)
	SetCoordinates(ctx context.Context, id int64, c Coords) error
	LogGeocodeMiss(ctx context.Context, id int64, status int, reason string) error
}

type GuestRepository interface {
	Repository[Guest]
	EmailTaken(ctx context.Context, email string, exceptID int64) (bool, error)
	CountReservations(ctx context.Context, guestID int64) (int64, error)
}

type ReservationRepository interface {
	ListReservations(ctx context.Context, q ReservationQuery) (Page[Reservation], error)
	GetReservation(ctx context.Context, id int64) (Reservation, error)
	CreateReservation(ctx context.Context, r *Reservation) error
	// UpdateReservation replaces details and rooms while the status is still from.
	UpdateReservation(ctx context.Context, r *Reservation, from ReservationStatus) error
	// SaveStatus persists a transition; ErrConflict if the stored status is no longer from.
	SaveStatus(ctx context.Context, r *Reservation, from ReservationStatus) error
}

type PaymentRepository interface {
	ListPayments(ctx context.Context, q PaymentQuery) (Page[Payment], error)
	GetPayment(ctx context.Context, id int64) (Payment, error)
	CreatePayment(ctx context.Context, p *Payment) error
	// SavePayment persists status and refund fields; ErrConflict if the stored
	// status or refunded amount no longer match from.
	SavePayment(ctx context.Context, p *Payment, from PaymentState) error
}

// MarketingRepository serves the public site.
type MarketingRepository interface {
	Navigation(ctx context.Context) ([]NavItem, error)
	ActiveProperties(ctx context.Context) ([]Property, error)
	PropertyBySlug(ctx context.Context, slug string) (Property, error)
	ActiveRestaurants(ctx context.Context, propertyID *int64) ([]RestaurantListing, error)
	MapMarkers(ctx context.Context) ([]MapMarker, error)
	ActiveHeroSlides(ctx context.Context, at time.Time) ([]HeroSlide, error)
	CurrentOffers(ctx context.Context, propertyID *int64, day time.Time) ([]SpecialOffer, error)
	UpcomingEvents(ctx context.Context, propertyID *int64, day time.Time) ([]Event, error)
}

type StatsRepository interface {
	CountActiveProperties(ctx context.Context) (int64, error)
	CountGuests(ctx context.Context) (int64, error)
	CountReservations(ctx context.Context, status ReservationStatus) (int64, error)
	CountArrivals(ctx context.Context, day time.Time) (int64, error)
	CountDepartures(ctx context.Context, day time.Time) (int64, error)
	// Revenue is payments processed in [from, to) less refunds issued in it.
	Revenue(ctx context.Context, from, to time.Time) (float64, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
	DelPrefix(ctx context.Context, prefix string) error
}

type Geocoder interface {
	Geocode(ctx context.Context, query string) (Coords, error)
}

// Publisher fans domain events out to other systems.
type Publisher interface {
	Publish(ctx context.Context, key string, v any) error
}

// Dashboard is the admin overview.
type Dashboard struct {
	ActiveProperties    int64   `json:"activeProperties"`
	Guests              int64   `json:"guests"`
	PendingReservations int64   `json:"pendingReservations"`
	InHouse             int64   `json:"inHouse"`
	ArrivalsToday       int64   `json:"arrivalsToday"`
	DeparturesToday     int64   `json:"departuresToday"`
	RevenueThisMonth    float64 `json:"revenueThisMonth"`
}
