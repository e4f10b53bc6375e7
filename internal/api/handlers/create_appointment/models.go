package create_appointment

import (
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	createAppointment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/create_appointment"
)

// CreateAppointmentRequest is the HTTP request model.
type CreateAppointmentRequest struct {
	ServiceID     int64   `json:"serviceId"`
	StaffID       *int64  `json:"staffId,omitempty"`
	Date          string  `json:"date"`      // "2026-09-07"
	StartTime     string  `json:"startTime"` // "10:00" or "10:00:00"
	PaymentMethod *string `json:"paymentMethod,omitempty"`
	Notes         *string `json:"notes,omitempty"`
	Location      *string `json:"location,omitempty"`
}

// AppointmentResponse is the HTTP response model.
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	UserID          int64   `json:"userId"`
	ServiceID       int64   `json:"serviceId"`
	StaffID         *int64  `json:"staffId,omitempty"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	Status          string  `json:"status"`
	OriginalPrice   string  `json:"originalPrice"`
	DiscountAmount  string  `json:"discountAmount"`
	DiscountedPrice string  `json:"discountedPrice"`
	ServiceName     string  `json:"serviceName"`
	DurationMinutes int     `json:"durationMinutes"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Location        *string `json:"location,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest converts the HTTP request into the use case model.
func (r *CreateAppointmentRequest) ToUseCaseRequest(userID int64) (*createAppointment.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}
	return &createAppointment.Request{
		UserID:        userID,
		ServiceID:     r.ServiceID,
		StaffID:       r.StaffID,
		Date:          date,
		StartTime:     r.StartTime,
		PaymentMethod: r.PaymentMethod,
		Notes:         r.Notes,
		Location:      r.Location,
	}, nil
}

// FromUseCaseResponse converts the use case response into the HTTP model.
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		UserID:          resp.UserID,
		ServiceID:       resp.ServiceID,
		StaffID:         resp.StaffID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Status:          resp.Status,
		OriginalPrice:   resp.OriginalPrice.StringFixed(2),
		DiscountAmount:  resp.DiscountAmount.StringFixed(2),
		DiscountedPrice: resp.DiscountedPrice.StringFixed(2),
		ServiceName:     resp.ServiceName,
		DurationMinutes: resp.DurationMinutes,
		PaymentMethod:   resp.PaymentMethod,
		Notes:           resp.Notes,
		Location:        resp.Location,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
