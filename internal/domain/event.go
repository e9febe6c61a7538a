package domain

import "time"

type EventStatus string

const (
	EventDraft     EventStatus = "DRAFT"
	EventPublished EventStatus = "PUBLISHED"
	EventCancelled EventStatus = "CANCELLED"
	EventCompleted EventStatus = "COMPLETED"
)

type Event struct {
	ID                   int64       `gorm:"primaryKey" json:"id"`
	PropertyID           *int64      `gorm:"index" json:"propertyId"`
	Title                string      `gorm:"size:191;not null" json:"title" validate:"required,max=191"`
	Slug                 string      `gorm:"size:191;uniqueIndex" json:"slug" validate:"required,max=191"`
	ShortDescription     string      `gorm:"size:500" json:"shortDescription" validate:"max=500"`
	Description          string      `gorm:"type:text" json:"description"`
	Category             string      `gorm:"size:64" json:"category"`
	Venue                string      `gorm:"size:191" json:"venue"`
	StartDate            time.Time   `gorm:"index" json:"startDate" validate:"required"`
	EndDate              *time.Time  `json:"endDate"`
	StartTime            string      `gorm:"size:8" json:"startTime"`
	EndTime              string      `gorm:"size:8" json:"endTime"`
	Capacity             *int        `json:"capacity" validate:"omitempty,gt=0"`
	Price                *float64    `json:"price" validate:"omitempty,gte=0"`
	Currency             string      `gorm:"size:3;default:USD" json:"currency" validate:"omitempty,len=3"`
	IsFree               bool        `json:"isFree"`
	RequiresRegistration bool        `json:"requiresRegistration"`
	ImageURL             string      `gorm:"size:500" json:"imageUrl"`
	Status               EventStatus `gorm:"size:16;default:DRAFT;index" json:"status" validate:"omitempty,oneof=DRAFT PUBLISHED CANCELLED COMPLETED"`
	IsPublished          bool        `json:"isPublished"`
	IsActive             bool        `json:"isActive"`
	IsFeatured           bool        `json:"isFeatured"`
	SortOrder            int         `gorm:"default:0" json:"sortOrder"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}

func (e *Event) GetID() int64       { return e.ID }
func (e *Event) SetID(id int64)     { e.ID = id }
func (e *Event) Kind() Kind         { return KindEvent }
func (e *Event) SlugSource() string { return e.Title }
func (e *Event) GetSlug() string    { return e.Slug }
func (e *Event) SetSlug(s string)   { e.Slug = s }

func (e *Event) Prepare() {
	EnsureSlug(e)
	if e.Status == "" {
		e.Status = EventDraft
	}
	if e.Currency == "" {
		e.Currency = "USD"
	}
	e.IsFree = e.Price == nil || *e.Price == 0
	e.IsPublished = e.Status == EventPublished
}

func (e *Event) Check() error {
	if e.EndDate != nil && Day(*e.EndDate).Before(Day(e.StartDate)) {
		return Business("End date must be on or after the start date")
	}
	return nil
}
