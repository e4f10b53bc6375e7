package complete_payment

import (
	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// Request marks a payment as completed.
type Request struct {
	PaymentID int64
	Actor     domain.Actor
}

// Response is the settled payment. PointsEarned is zero when the loyalty
// programme is off or this completion was a retry.
type Response struct {
	PaymentID     int64
	AppointmentID int64
	FinalAmount   decimal.Decimal
	Currency      string
	Status        string
	PointsEarned  int
}
