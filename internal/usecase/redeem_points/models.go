package redeem_points

import (
	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// Request redeems loyalty points against an appointment.
type Request struct {
	AppointmentID int64
	Actor         domain.Actor
	Points        int
}

// Response is the repriced appointment.
type Response struct {
	AppointmentID   int64
	PointsRedeemed  int
	OriginalPrice   decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal
}
