package update_appointment

import (
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// Request carries a partial update: nil fields keep their stored values.
// Clearing the staff assignment is expressed with ClearStaff because a nil
// StaffID already means "unchanged".
type Request struct {
	AppointmentID int64
	Actor         domain.Actor

	Date       *time.Time
	StartTime  *string // "HH:MM" or "HH:MM:SS"
	ServiceID  *int64
	StaffID    *int64
	ClearStaff bool

	PaymentMethod *string
	Notes         *string
	Location      *string
}

// Response is the appointment after the update.
type Response struct {
	ID        int64
	UserID    int64
	ServiceID int64
	StaffID   *int64

	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Status    string

	PaymentMethod *string
	Notes         *string
	Location      *string

	UpdatedAt time.Time
}

func toResponse(appt *domain.Appointment) *Response {
	return &Response{
		ID:            appt.ID,
		UserID:        appt.UserID,
		ServiceID:     appt.ServiceID,
		StaffID:       appt.StaffID,
		Date:          appt.Date,
		StartTime:     appt.StartTime,
		EndTime:       appt.EndTime,
		Status:        string(appt.Status),
		PaymentMethod: appt.PaymentMethod,
		Notes:         appt.Notes,
		Location:      appt.Location,
		UpdatedAt:     appt.UpdatedAt,
	}
}
