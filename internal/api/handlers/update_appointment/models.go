package update_appointment

import (
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	updateAppointment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/update_appointment"
)

// UpdateAppointmentRequest is the HTTP request model. Omitted fields keep
// their stored values; clearStaff removes the staff assignment.
type UpdateAppointmentRequest struct {
	Date          *string `json:"date,omitempty"`
	StartTime     *string `json:"startTime,omitempty"`
	ServiceID     *int64  `json:"serviceId,omitempty"`
	StaffID       *int64  `json:"staffId,omitempty"`
	ClearStaff    bool    `json:"clearStaff,omitempty"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Location      *string `json:"location,omitempty"`
}

// AppointmentResponse is the HTTP response model.
type AppointmentResponse struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"userId"`
	ServiceID     int64   `json:"serviceId"`
	StaffID       *int64  `json:"staffId,omitempty"`
	Date          string  `json:"date"`
	StartTime     string  `json:"startTime"`
	EndTime       string  `json:"endTime"`
	Status        string  `json:"status"`
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Location      *string `json:"location,omitempty"`
	UpdatedAt     string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *UpdateAppointmentRequest) ToUseCaseRequest(appointmentID int64, actor domain.Actor) (*updateAppointment.Request, error) {
	req := &updateAppointment.Request{
		AppointmentID: appointmentID,
		Actor:         actor,
		StartTime:     r.StartTime,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		ClearStaff:    r.ClearStaff,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		Location:      r.Location,
	}
	if r.Date != nil {
		date, err := time.Parse(domain.DateFormat, *r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = &date
	}
	return req, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *updateAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:            resp.ID,
		UserID:        resp.UserID,
		ServiceID:     resp.ServiceID,
		StaffID:       resp.StaffID,
		Date:          resp.Date.Format(domain.DateFormat),
		StartTime:     resp.StartTime.String(),
		EndTime:       resp.EndTime.String(),
		Status:        resp.Status,
		PaymentMethod: resp.PaymentMethod,
		Notes:         resp.Notes,
		Location:      resp.Location,
		UpdatedAt:     resp.UpdatedAt.Format(time.RFC3339),
	}
}
