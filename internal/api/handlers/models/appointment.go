// Package models holds the HTTP view models shared by handlers that render
// whole appointments.
package models

import (
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// AppointmentView is the HTTP representation of an appointment.
type AppointmentView struct {
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
	PromotionID     *int64  `json:"promotionId,omitempty"`
	PointsRedeemed  int     `json:"pointsRedeemed,omitempty"`
	PaymentMethod   *string `json:"paymentMethod,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Location        *string `json:"location,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// AppointmentFromDomain converts a domain appointment into its HTTP view.
func AppointmentFromDomain(appt *domain.Appointment) *AppointmentView {
	return &AppointmentView{
		ID:              appt.ID,
		UserID:          appt.UserID,
		ServiceID:       appt.ServiceID,
		StaffID:         appt.StaffID,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		EndTime:         appt.EndTime.String(),
		Status:          string(appt.Status),
		OriginalPrice:   appt.OriginalPrice.StringFixed(2),
		DiscountAmount:  appt.DiscountAmount.StringFixed(2),
		DiscountedPrice: appt.DiscountedPrice.StringFixed(2),
		PromotionID:     appt.PromotionID,
		PointsRedeemed:  appt.PointsRedeemed,
		PaymentMethod:   appt.PaymentMethod,
		Notes:           appt.Notes,
		Location:        appt.Location,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}
}

// AppointmentsFromDomain converts a list of appointments.
func AppointmentsFromDomain(appts []*domain.Appointment) []*AppointmentView {
	out := make([]*AppointmentView, 0, len(appts))
	for _, appt := range appts {
		out = append(out, AppointmentFromDomain(appt))
	}
	return out
}
