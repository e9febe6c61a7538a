package domain

import "time"

type OfferType string

const (
	OfferRoomPackage OfferType = "ROOM_PACKAGE"
	OfferDining      OfferType = "DINING"
	OfferSpa         OfferType = "SPA"
	OfferEarlyBird   OfferType = "EARLY_BIRD"
	OfferLastMinute  OfferType = "LAST_MINUTE"
	OfferSeasonal    OfferType = "SEASONAL"
	OfferOther       OfferType = "OTHER"
)

type SpecialOffer struct {
	ID               int64     `gorm:"primaryKey" json:"id"`
	PropertyID       *int64    `gorm:"index" json:"propertyId"`
	Title            string    `gorm:"size:191;not null" json:"title" validate:"required,max=191"`
	Slug             string    `gorm:"size:191;uniqueIndex" json:"slug" validate:"required,max=191"`
	ShortDescription string    `gorm:"size:500" json:"shortDescription" validate:"max=500"`
	Description      string    `gorm:"type:text" json:"description"`
	OfferType        OfferType `gorm:"size:32;default:OTHER" json:"offerType" validate:"omitempty,oneof=ROOM_PACKAGE DINING SPA EARLY_BIRD LAST_MINUTE SEASONAL OTHER"`
	OriginalPrice    *float64  `json:"originalPrice" validate:"omitempty,gte=0"`
	OfferPrice       *float64  `json:"offerPrice" validate:"omitempty,gte=0"`
	SavingsAmount    *float64  `json:"savingsAmount"`
	SavingsPercent   *float64  `json:"savingsPercent"`
	Currency         string    `gorm:"size:3;default:USD" json:"currency" validate:"omitempty,len=3"`
	ValidFrom        time.Time `gorm:"index" json:"validFrom" validate:"required"`
	ValidTo          time.Time `gorm:"index" json:"validTo" validate:"required,gtefield=ValidFrom"`
	PromoCode        string    `gorm:"size:64" json:"promoCode"`
	MinNights        *int      `json:"minNights" validate:"omitempty,gt=0"`
	MaxNights        *int      `json:"maxNights"`
	Terms            string    `gorm:"type:text" json:"terms"`
	ImageURL         string    `gorm:"size:500" json:"imageUrl"`
	IsActive         bool      `json:"isActive"`
	IsFeatured       bool      `json:"isFeatured"`
	SortOrder        int       `gorm:"default:0" json:"sortOrder"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (o *SpecialOffer) GetID() int64       { return o.ID }
func (o *SpecialOffer) SetID(id int64)     { o.ID = id }
func (o *SpecialOffer) Kind() Kind         { return KindOffer }
func (o *SpecialOffer) SlugSource() string { return o.Title }
func (o *SpecialOffer) GetSlug() string    { return o.Slug }
func (o *SpecialOffer) SetSlug(s string)   { o.Slug = s }

func (o *SpecialOffer) Prepare() {
	EnsureSlug(o)
	if o.OfferType == "" {
		o.OfferType = OfferOther
	}
	if o.Currency == "" {
		o.Currency = "USD"
	}
	o.SavingsAmount, o.SavingsPercent = ComputeSavings(o.OriginalPrice, o.OfferPrice)
}

// ValidOn reports whether day falls inside the offer's validity window.
func (o *SpecialOffer) ValidOn(day time.Time) bool {
	d := Day(day)
	return !d.Before(Day(o.ValidFrom)) && !d.After(Day(o.ValidTo))
}

func (o *SpecialOffer) Check() error {
	if o.OriginalPrice != nil && o.OfferPrice != nil && *o.OfferPrice > *o.OriginalPrice {
		return Business("Offer price cannot exceed the original price")
	}
	if o.MinNights != nil && o.MaxNights != nil && *o.MaxNights < *o.MinNights {
		return Business("Maximum nights must be at least the minimum nights")
	}
	return nil
}
