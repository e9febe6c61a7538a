package domain

import "time"

// Kind names a catalog entity managed from the admin screens.
type Kind string

const (
	KindProperty   Kind = "property"
	KindRestaurant Kind = "restaurant"
	KindEvent      Kind = "event"
	KindHeroSlide  Kind = "hero slide"
	KindOffer      Kind = "special offer"
	KindGuest      Kind = "guest"
)

// Flag is a boolean column the list screens can toggle.
type Flag string

const (
	FlagActive   Flag = "active"
	FlagFeatured Flag = "featured"
)

var flagColumns = map[Kind]map[Flag]string{
	KindProperty:   {FlagActive: "is_active", FlagFeatured: "is_featured"},
	KindRestaurant: {FlagActive: "is_active", FlagFeatured: "is_featured"},
	KindEvent:      {FlagActive: "is_active", FlagFeatured: "is_featured"},
	KindOffer:      {FlagActive: "is_active", FlagFeatured: "is_featured"},
	KindHeroSlide:  {FlagActive: "is_active"},
}

// FlagColumn returns the column backing f for this kind.
func (k Kind) FlagColumn(f Flag) (string, bool) {
	col, ok := flagColumns[k][f]
	return col, ok
}

// Record is implemented (on the pointer) by every catalog entity.
type Record interface {
	GetID() int64
	SetID(id int64)
	Kind() Kind
	// Prepare recomputes derived fields before validation and save.
	Prepare()
}

// Sluggable records get a slug derived from their name or title.
type Sluggable interface {
	SlugSource() string
	GetSlug() string
	SetSlug(string)
}

// EnsureSlug fills an empty slug from the record's name/title and
// normalizes a hand-typed one.
func EnsureSlug(s Sluggable) {
	if s.GetSlug() == "" {
		s.SetSlug(Slugify(s.SlugSource()))
		return
	}
	s.SetSlug(Slugify(s.GetSlug()))
}

type ListQuery struct {
	Active     *bool
	Featured   *bool
	PropertyID *int64
	Search     string
	Limit      int
	Offset     int
}

// Page is one slice of a list screen.
type Page[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}

// Day truncates t to midnight UTC.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Checker records enforce cross-field rules that struct tags cannot express.
type Checker interface {
	Check() error
}
