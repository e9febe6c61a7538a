package domain

import "time"

// Routing keys of the domain events.
const (
	EventReservationStatusChanged = "reservation.status_changed"
	EventPaymentPaid              = "payment.paid"
	EventPaymentRefunded          = "payment.refunded"
)

type ReservationStatusChanged struct {
	ReservationID      int64             `json:"reservation_id"`
	ConfirmationNumber string            `json:"confirmation_number"`
	From               ReservationStatus `json:"from"`
	To                 ReservationStatus `json:"to"`
	Reason             string            `json:"reason,omitempty"`
	At                 time.Time         `json:"at"`
}

type PaymentChanged struct {
	PaymentID      int64         `json:"payment_id"`
	ReservationID  int64         `json:"reservation_id"`
	Status         PaymentStatus `json:"status"`
	Amount         float64       `json:"amount"`
	RefundedAmount float64       `json:"refunded_amount"`
	Currency       string        `json:"currency"`
	Reason         string        `json:"reason,omitempty"`
	At             time.Time     `json:"at"`
}
