package domain

import "time"

// HeroSlide is one frame of the home page carousel.
type HeroSlide struct {
	ID                  int64      `gorm:"primaryKey" json:"id"`
	PropertyID          *int64     `gorm:"index" json:"propertyId"`
	Title               string     `gorm:"size:191;not null" json:"title" validate:"required,max=191"`
	Subtitle            string     `gorm:"size:255" json:"subtitle"`
	Description         string     `gorm:"type:text" json:"description"`
	ImageURL            string     `gorm:"size:500;not null" json:"imageUrl" validate:"required"`
	PrimaryButtonText   string     `gorm:"size:64" json:"primaryButtonText"`
	PrimaryButtonURL    string     `gorm:"size:500" json:"primaryButtonUrl" validate:"required_with=PrimaryButtonText"`
	SecondaryButtonText string     `gorm:"size:64" json:"secondaryButtonText"`
	SecondaryButtonURL  string     `gorm:"size:500" json:"secondaryButtonUrl" validate:"required_with=SecondaryButtonText"`
	TextAlignment       string     `gorm:"size:8;default:center" json:"textAlignment" validate:"omitempty,oneof=left center right"`
	OverlayOpacity      int        `gorm:"default:40" json:"overlayOpacity" validate:"gte=0,lte=100"`
	StartsAt            *time.Time `json:"startsAt"`
	EndsAt              *time.Time `json:"endsAt"`
	IsActive            bool       `json:"isActive"`
	SortOrder           int        `gorm:"default:0" json:"sortOrder"`
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}

func (h *HeroSlide) GetID() int64   { return h.ID }
func (h *HeroSlide) SetID(id int64) { h.ID = id }
func (h *HeroSlide) Kind() Kind     { return KindHeroSlide }

func (h *HeroSlide) Prepare() {
	if h.TextAlignment == "" {
		h.TextAlignment = "center"
	}
}

// Showing reports whether the slide is inside its schedule window at t.
func (h *HeroSlide) Showing(t time.Time) bool {
	if !h.IsActive {
		return false
	}
	if h.StartsAt != nil && t.Before(*h.StartsAt) {
		return false
	}
	if h.EndsAt != nil && t.After(*h.EndsAt) {
		return false
	}
	return true
}

func (h *HeroSlide) Check() error {
	if h.StartsAt != nil && h.EndsAt != nil && h.EndsAt.Before(*h.StartsAt) {
		return Business("Slide must end after it starts")
	}
	return nil
}
