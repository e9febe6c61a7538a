// Package gormstore persists the hotel portal on MySQL, Postgres or SQLite
// through gorm.
package gormstore

import (
	"gorm.io/gorm"

	"hotel_portal/internal/domain"
)

// Store implements the reservation, payment, marketing and stats
// repositories and hands out the per-entity catalog tables.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store { return &Store{db: db} }

func (s *Store) DB() *gorm.DB { return s.db }

func (s *Store) Properties() *Properties {
	return &Properties{newTable[domain.Property](s.db, domain.KindProperty,
		"sort_order, name", "", "name", "city", "country")}
}

func (s *Store) Restaurants() *Table[domain.Restaurant] {
	return newTable[domain.Restaurant](s.db, domain.KindRestaurant,
		"sort_order, name", "property_id", "name", "location")
}

func (s *Store) Events() *Table[domain.Event] {
	return newTable[domain.Event](s.db, domain.KindEvent,
		"start_date DESC, id DESC", "property_id", "title", "venue", "category")
}

func (s *Store) HeroSlides() *Table[domain.HeroSlide] {
	return newTable[domain.HeroSlide](s.db, domain.KindHeroSlide,
		"sort_order, id", "property_id", "title", "subtitle")
}

func (s *Store) Offers() *Table[domain.SpecialOffer] {
	return newTable[domain.SpecialOffer](s.db, domain.KindOffer,
		"sort_order, valid_to DESC", "property_id", "title", "promo_code")
}

func (s *Store) Guests() *Guests {
	return &Guests{newTable[domain.Guest](s.db, domain.KindGuest,
		"last_name, first_name", "", "first_name", "last_name", "email", "loyalty_number")}
}

var (
	_ domain.PropertyRepository            = (*Properties)(nil)
	_ domain.GuestRepository               = (*Guests)(nil)
	_ domain.Repository[domain.Restaurant] = (*Table[domain.Restaurant])(nil)
	_ domain.ReservationRepository         = (*Store)(nil)
	_ domain.PaymentRepository             = (*Store)(nil)
	_ domain.MarketingRepository           = (*Store)(nil)
	_ domain.StatsRepository               = (*Store)(nil)
)
