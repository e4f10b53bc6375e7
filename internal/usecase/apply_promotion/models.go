package apply_promotion

import (
	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// Request applies a promotion code to an appointment.
type Request struct {
	AppointmentID int64
	Actor         domain.Actor
	Code          string
}

// Response is the repriced appointment.
type Response struct {
	AppointmentID   int64
	PromotionID     int64
	Code            string
	OriginalPrice   decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal
}
