package domain

import (
	"strings"
	"time"
)

type PaymentStatus string

const (
	PaymentPending           PaymentStatus = "PENDING"
	PaymentPaid              PaymentStatus = "PAID"
	PaymentFailed            PaymentStatus = "FAILED"
	PaymentRefunded          PaymentStatus = "REFUNDED"
	PaymentPartiallyRefunded PaymentStatus = "PARTIALLY_REFUNDED"
	PaymentCancelled         PaymentStatus = "CANCELLED"
)

type PaymentMethod string

const (
	MethodCreditCard   PaymentMethod = "CREDIT_CARD"
	MethodDebitCard    PaymentMethod = "DEBIT_CARD"
	MethodCash         PaymentMethod = "CASH"
	MethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	MethodOnline       PaymentMethod = "ONLINE"
)

type Payment struct {
	ID             int64         `gorm:"primaryKey" json:"id"`
	ReservationID  int64         `gorm:"index;not null" json:"reservationId" validate:"required,gt=0"`
	Reservation    *Reservation  `gorm:"constraint:OnDelete:RESTRICT" json:"reservation,omitempty" validate:"-"`
	Amount         float64       `json:"amount" validate:"gt=0"`
	Currency       string        `gorm:"size:3" json:"currency" validate:"omitempty,len=3"`
	Method         PaymentMethod `gorm:"size:16" json:"method" validate:"required,oneof=CREDIT_CARD DEBIT_CARD CASH BANK_TRANSFER ONLINE"`
	Status         PaymentStatus `gorm:"size:20;index" json:"status"`
	TransactionID  string        `gorm:"size:64;index" json:"transactionId"`
	RefundedAmount float64       `json:"refundedAmount"`
	RefundReason   string        `gorm:"size:500" json:"refundReason"`
	ProcessedAt    *time.Time    `json:"processedAt"`
	RefundedAt     *time.Time    `json:"refundedAt"`
	CreatedAt      time.Time     `json:"createdAt"`
	UpdatedAt      time.Time     `json:"updatedAt"`
}

func (p *Payment) Prepare() {
	if p.Status == "" {
		p.Status = PaymentPending
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	p.Amount = round2(p.Amount)
	p.Reservation = nil
}

// PaymentState is the part of a payment a guarded write expects to find unchanged.
type PaymentState struct {
	Status         PaymentStatus
	RefundedAmount float64
}

func (p *Payment) State() PaymentState {
	return PaymentState{Status: p.Status, RefundedAmount: p.RefundedAmount}
}

// Refundable is the amount that can still be returned to the guest.
func (p *Payment) Refundable() float64 {
	if p.Status != PaymentPaid && p.Status != PaymentPartiallyRefunded {
		return 0
	}
	return round2(p.Amount - p.RefundedAmount)
}

// MarkPaid settles a pending payment.
func (p *Payment) MarkPaid(at time.Time) error {
	if p.Status != PaymentPending {
		return Business("Only pending payments can be marked as paid")
	}
	p.Status = PaymentPaid
	p.ProcessedAt = &at
	return nil
}

// Fail records a declined or abandoned pending payment.
func (p *Payment) Fail(at time.Time) error {
	if p.Status != PaymentPending {
		return Business("Only pending payments can be marked as failed")
	}
	p.Status = PaymentFailed
	p.ProcessedAt = &at
	return nil
}

// Refund returns amount (the whole remainder when nil) to the guest.
func (p *Payment) Refund(amount *float64, reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return Business("A refund reason is required")
	}
	left := p.Refundable()
	if left <= 0 {
		return Business("Payment is %s and cannot be refunded", strings.ToLower(strings.ReplaceAll(string(p.Status), "_", " ")))
	}
	amt := left
	if amount != nil {
		amt = round2(*amount)
	}
	if amt <= 0 || amt > left {
		return Business("Refund amount must be between 0 and %.2f", left)
	}
	p.RefundedAmount = round2(p.RefundedAmount + amt)
	p.RefundReason = reason
	p.RefundedAt = &at
	if p.RefundedAmount >= p.Amount {
		p.Status = PaymentRefunded
	} else {
		p.Status = PaymentPartiallyRefunded
	}
	return nil
}

type PaymentQuery struct {
	Status        PaymentStatus
	ReservationID *int64
	Limit         int
	Offset        int
}
