package domain

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

type PropertyType string

const (
	PropertyHotel     PropertyType = "HOTEL"
	PropertyResort    PropertyType = "RESORT"
	PropertyApartment PropertyType = "APARTMENT"
	PropertyVilla     PropertyType = "VILLA"
)

// Property is a business unit of the group: one hotel, resort or villa.
type Property struct {
	ID               int64                       `gorm:"primaryKey" json:"id"`
	Name             string                      `gorm:"size:191;not null" json:"name" validate:"required,max=191"`
	Slug             string                      `gorm:"size:191;uniqueIndex" json:"slug" validate:"required,max=191"`
	PropertyType     PropertyType                `gorm:"size:32;default:HOTEL" json:"propertyType" validate:"omitempty,oneof=HOTEL RESORT APARTMENT VILLA"`
	ShortDescription string                      `gorm:"size:500" json:"shortDescription" validate:"max=500"`
	Description      string                      `gorm:"type:text" json:"description"`
	Address          string                      `gorm:"size:255" json:"address"`
	City             string                      `gorm:"size:120;index" json:"city" validate:"required,max=120"`
	Region           string                      `gorm:"size:120" json:"region"`
	Country          string                      `gorm:"size:120" json:"country" validate:"required,max=120"`
	PostalCode       string                      `gorm:"size:32" json:"postalCode"`
	Latitude         *float64                    `json:"latitude" validate:"omitempty,latitude"`
	Longitude        *float64                    `json:"longitude" validate:"omitempty,longitude"`
	Phone            string                      `gorm:"size:64" json:"phone"`
	Email            string                      `gorm:"size:191" json:"email" validate:"omitempty,email"`
	Website          string                      `gorm:"size:255" json:"website" validate:"omitempty,url"`
	StarRating       int                         `json:"starRating" validate:"gte=0,lte=5"`
	CheckInTime      string                      `gorm:"size:8" json:"checkInTime"`
	CheckOutTime     string                      `gorm:"size:8" json:"checkOutTime"`
	LogoURL          string                      `gorm:"size:500" json:"logoUrl"`
	HeroImageURL     string                      `gorm:"size:500" json:"heroImageUrl"`
	Amenities        datatypes.JSONSlice[string] `json:"amenities"`
	Images           datatypes.JSONSlice[string] `json:"images"`
	IsActive         bool                        `json:"isActive"`
	IsFeatured       bool                        `json:"isFeatured"`
	SortOrder        int                         `gorm:"default:0" json:"sortOrder"`
	CreatedAt        time.Time                   `json:"createdAt"`
	UpdatedAt        time.Time                   `json:"updatedAt"`
}

func (p *Property) GetID() int64       { return p.ID }
func (p *Property) SetID(id int64)     { p.ID = id }
func (p *Property) Kind() Kind         { return KindProperty }
func (p *Property) SlugSource() string { return p.Name }
func (p *Property) GetSlug() string    { return p.Slug }
func (p *Property) SetSlug(s string)   { p.Slug = s }

func (p *Property) HasCoordinates() bool { return p.Latitude != nil && p.Longitude != nil }

func (p *Property) Prepare() {
	EnsureSlug(p)
	if p.PropertyType == "" {
		p.PropertyType = PropertyHotel
	}
	p.Amenities = compact(p.Amenities)
	p.Images = compact(p.Images)
}

// GeocodeQuery is the free-text address used to look the property up on a map.
func (p *Property) GeocodeQuery() string {
	parts := []string{p.Address, p.City, p.Region, p.PostalCode, p.Country}
	out := make([]string, 0, len(parts))
	for _, s := range parts {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return strings.Join(out, ", ")
}

// NavItem is one entry of the public header navigation.
type NavItem struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	City string `json:"city"`
}

// MapMarker positions a property on the location pages.
type MapMarker struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Slug      string  `json:"slug"`
	City      string  `json:"city"`
	Country   string  `json:"country"`
	Address   string  `json:"address"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// PropertyPage is the public detail page of one property.
type PropertyPage struct {
	Property    Property       `json:"property"`
	Restaurants []Restaurant   `json:"restaurants"`
	Offers      []SpecialOffer `json:"offers"`
	Events      []Event        `json:"events"`
}

// GeocodeMiss records a property whose address could not be resolved.
type GeocodeMiss struct {
	PropertyID int64     `gorm:"primaryKey;autoIncrement:false" json:"propertyId"`
	HTTPStatus int       `json:"httpStatus"`
	Reason     string    `gorm:"size:255" json:"reason"`
	SeenAt     time.Time `gorm:"autoUpdateTime" json:"seenAt"`
}

type Coords struct{ Lat, Lon float64 }

func compact(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}
