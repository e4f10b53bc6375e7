package create_appointment

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// Request carries the booking parameters. StartTime accepts "HH:MM" or
// "HH:MM:SS" and is normalized before storage.
type Request struct {
	UserID    int64
	ServiceID int64
	StaffID   *int64
	Date      time.Time
	StartTime string

	PaymentMethod *string
	Notes         *string
	Location      *string
}

// Response is the created appointment.
type Response struct {
	ID        int64
	UserID    int64
	ServiceID int64
	StaffID   *int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string

	OriginalPrice   decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal

	ServiceName     string
	DurationMinutes int

	PaymentMethod *string
	Notes         *string
	Location      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func toResponse(appt *domain.Appointment, svc *domain.Service) *Response {
	return &Response{
		ID:              appt.ID,
		UserID:          appt.UserID,
		ServiceID:       appt.ServiceID,
		StaffID:         appt.StaffID,
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		EndTime:         appt.EndTime,
		Status:          string(appt.Status),
		OriginalPrice:   appt.OriginalPrice,
		DiscountAmount:  appt.DiscountAmount,
		DiscountedPrice: appt.DiscountedPrice,
		ServiceName:     svc.Name,
		DurationMinutes: svc.DurationMinutes,
		PaymentMethod:   appt.PaymentMethod,
		Notes:           appt.Notes,
		Location:        appt.Location,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
