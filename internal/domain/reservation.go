package domain

import (
	"fmt"
	"strings"
	"time"
)

type ReservationStatus string

const (
	ReservationPending    ReservationStatus = "PENDING"
	ReservationConfirmed  ReservationStatus = "CONFIRMED"
	ReservationCheckedIn  ReservationStatus = "CHECKED_IN"
	ReservationCheckedOut ReservationStatus = "CHECKED_OUT"
	ReservationCancelled  ReservationStatus = "CANCELLED"
	ReservationNoShow     ReservationStatus = "NO_SHOW"
)

var reservationTransitions = map[ReservationStatus][]ReservationStatus{
	ReservationPending:   {ReservationConfirmed, ReservationCancelled},
	ReservationConfirmed: {ReservationCheckedIn, ReservationCancelled, ReservationNoShow},
	ReservationCheckedIn: {ReservationCheckedOut},
}

// CanTransition reports whether a reservation may move from one status to another.
func CanTransition(from, to ReservationStatus) bool {
	for _, s := range reservationTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

func (s ReservationStatus) Label() string {
	return strings.ToLower(strings.ReplaceAll(string(s), "_", " "))
}

type Reservation struct {
	ID                 int64             `gorm:"primaryKey" json:"id"`
	ConfirmationNumber string            `gorm:"size:32;uniqueIndex" json:"confirmationNumber"`
	GuestID            int64             `gorm:"index;not null" json:"guestId" validate:"required,gt=0"`
	Guest              *Guest            `gorm:"constraint:OnDelete:RESTRICT" json:"guest,omitempty" validate:"-"`
	PropertyID         int64             `gorm:"index;not null" json:"propertyId" validate:"required,gt=0"`
	Property           *Property         `gorm:"constraint:OnDelete:RESTRICT" json:"property,omitempty" validate:"-"`
	CheckInDate        time.Time         `gorm:"index" json:"checkInDate" validate:"required"`
	CheckOutDate       time.Time         `gorm:"index" json:"checkOutDate" validate:"required"`
	Nights             int               `json:"nights"`
	Adults             int               `json:"adults" validate:"gte=1"`
	Children           int               `json:"children" validate:"gte=0"`
	Status             ReservationStatus `gorm:"size:16;index" json:"status"`
	TotalAmount        float64           `json:"totalAmount"`
	Currency           string            `gorm:"size:3" json:"currency" validate:"omitempty,len=3"`
	SpecialRequests    string            `gorm:"type:text" json:"specialRequests"`
	Source             string            `gorm:"size:16" json:"source" validate:"omitempty,oneof=DIRECT WEBSITE PHONE OTA WALK_IN"`
	CancellationReason string            `gorm:"size:500" json:"cancellationReason"`
	ConfirmedAt        *time.Time        `json:"confirmedAt"`
	CancelledAt        *time.Time        `json:"cancelledAt"`
	CheckedInAt        *time.Time        `json:"checkedInAt"`
	CheckedOutAt       *time.Time        `json:"checkedOutAt"`
	Rooms              []ReservationRoom `gorm:"constraint:OnDelete:CASCADE" json:"rooms" validate:"required,min=1,dive"`
	Payments           []Payment         `json:"payments,omitempty" validate:"-"`
	CreatedAt          time.Time         `json:"createdAt"`
	UpdatedAt          time.Time         `json:"updatedAt"`
}

type ReservationRoom struct {
	ID            int64     `gorm:"primaryKey" json:"id"`
	ReservationID int64     `gorm:"index;not null" json:"reservationId"`
	RoomType      string    `gorm:"size:120;not null" json:"roomType" validate:"required,max=120"`
	RoomNumber    string    `gorm:"size:16" json:"roomNumber"`
	Rate          float64   `json:"rate" validate:"gte=0"`
	Nights        int       `json:"nights"`
	Adults        int       `json:"adults" validate:"gte=0"`
	Children      int       `json:"children" validate:"gte=0"`
	Subtotal      float64   `json:"subtotal"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// NightsBetween counts whole nights between two calendar dates.
func NightsBetween(in, out time.Time) int {
	return int(Day(out).Sub(Day(in)).Hours() / 24)
}

// Prepare normalizes dates and derives nights, room subtotals and the total.
func (r *Reservation) Prepare() {
	r.CheckInDate = Day(r.CheckInDate)
	r.CheckOutDate = Day(r.CheckOutDate)
	r.Nights = NightsBetween(r.CheckInDate, r.CheckOutDate)
	if r.Status == "" {
		r.Status = ReservationPending
	}
	if r.Currency == "" {
		r.Currency = "USD"
	}
	if r.Source == "" {
		r.Source = "DIRECT"
	}
	var total float64
	for i := range r.Rooms {
		room := &r.Rooms[i]
		room.Nights = r.Nights
		room.Subtotal = round2(room.Rate * float64(room.Nights))
		total += room.Subtotal
	}
	r.TotalAmount = round2(total)
	r.Guest, r.Property, r.Payments = nil, nil, nil
}

func (r *Reservation) Check() error {
	if r.Nights < 1 {
		return Business("Check-out must be at least one night after check-in")
	}
	return nil
}

// Editable reports whether dates, rooms and guests can still be changed.
func (r *Reservation) Editable() bool {
	return r.Status == ReservationPending || r.Status == ReservationConfirmed
}

// TransitionTo moves the reservation to status to, stamping the matching
// timestamp. reason is kept for cancellations.
func (r *Reservation) TransitionTo(to ReservationStatus, at time.Time, reason string) error {
	if !CanTransition(r.Status, to) {
		return Business("Cannot change reservation from %s to %s", r.Status.Label(), to.Label())
	}
	switch to {
	case ReservationConfirmed:
		r.ConfirmedAt = &at
	case ReservationCancelled:
		reason = strings.TrimSpace(reason)
		if reason == "" {
			return Business("A cancellation reason is required")
		}
		r.CancelledAt = &at
		r.CancellationReason = reason
	case ReservationCheckedIn:
		r.CheckedInAt = &at
	case ReservationCheckedOut:
		r.CheckedOutAt = &at
	}
	r.Status = to
	return nil
}

// NewConfirmationNumber formats a short reference from a random token.
func NewConfirmationNumber(token string, at time.Time) string {
	t := strings.ToUpper(strings.ReplaceAll(token, "-", ""))
	if len(t) > 6 {
		t = t[:6]
	}
	return fmt.Sprintf("HR%s-%s", at.UTC().Format("060102"), t)
}

type ReservationQuery struct {
	Status     ReservationStatus
	PropertyID *int64
	GuestID    *int64
	Search     string // guest name, email or confirmation number
	From, To   *time.Time
	Limit      int
	Offset     int
}
