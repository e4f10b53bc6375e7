package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the state of a payment.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

// ParsePaymentStatus validates a raw payment status value.
func ParsePaymentStatus(s string) (PaymentStatus, bool) {
	switch PaymentStatus(s) {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return PaymentStatus(s), true
	}
	return "", false
}

// Payment is the satellite record for an appointment's charge.
type Payment struct {
	ID            int64
	AppointmentID int64
	UserID        int64

	OriginalAmount decimal.Decimal
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
	Currency       string
	PaymentMethod  string

	Status PaymentStatus
	PaidAt *time.Time // set only on completion

	// PointsAwarded guards against double-crediting loyalty points when a
	// completion is retried.
	PointsAwarded bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCompleted reports whether the payment has gone through.
func (p *Payment) IsCompleted() bool {
	return p.Status == PaymentCompleted
}
