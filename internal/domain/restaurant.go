package domain

import (
	"time"

	"gorm.io/datatypes"
)

type Restaurant struct {
	ID                  int64                       `gorm:"primaryKey" json:"id"`
	PropertyID          int64                       `gorm:"index;not null" json:"propertyId" validate:"required,gt=0"`
	Property            *Property                   `gorm:"constraint:OnDelete:RESTRICT" json:"property,omitempty" validate:"-"`
	Name                string                      `gorm:"size:191;not null" json:"name" validate:"required,max=191"`
	Slug                string                      `gorm:"size:191;uniqueIndex" json:"slug" validate:"required,max=191"`
	Description         string                      `gorm:"type:text" json:"description"`
	Cuisine             datatypes.JSONSlice[string] `json:"cuisine"`
	Location            string                      `gorm:"size:191" json:"location"`
	Phone               string                      `gorm:"size:64" json:"phone"`
	Email               string                      `gorm:"size:191" json:"email" validate:"omitempty,email"`
	OpeningHours        string                      `gorm:"size:255" json:"openingHours"`
	PriceRange          string                      `gorm:"size:8" json:"priceRange" validate:"omitempty,oneof=$ $$ $$$ $$$$"`
	Capacity            *int                        `json:"capacity" validate:"omitempty,gt=0"`
	ImageURL            string                      `gorm:"size:500" json:"imageUrl"`
	AcceptsReservations bool                        `json:"acceptsReservations"`
	IsActive            bool                        `json:"isActive"`
	IsFeatured          bool                        `json:"isFeatured"`
	SortOrder           int                         `gorm:"default:0" json:"sortOrder"`
	CreatedAt           time.Time                   `json:"createdAt"`
	UpdatedAt           time.Time                   `json:"updatedAt"`
}

func (r *Restaurant) GetID() int64       { return r.ID }
func (r *Restaurant) SetID(id int64)     { r.ID = id }
func (r *Restaurant) Kind() Kind         { return KindRestaurant }
func (r *Restaurant) SlugSource() string { return r.Name }
func (r *Restaurant) GetSlug() string    { return r.Slug }
func (r *Restaurant) SetSlug(s string)   { r.Slug = s }

func (r *Restaurant) Prepare() {
	EnsureSlug(r)
	r.Cuisine = compact(r.Cuisine)
	r.Property = nil
}

// RestaurantListing is a restaurant card on the public dining page.
type RestaurantListing struct {
	Restaurant
	PropertyName string `json:"propertyName"`
	PropertySlug string `json:"propertySlug"`
}
