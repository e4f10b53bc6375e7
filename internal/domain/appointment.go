package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCompleted AppointmentStatus = "completed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusNoShow    AppointmentStatus = "no-show"
)

// allowedTransitions is the explicit lifecycle table. Terminal states
// (completed, cancelled, no-show) admit no further transition.
var allowedTransitions = map[AppointmentStatus][]AppointmentStatus{
	StatusPending:   {StatusConfirmed, StatusCancelled, StatusNoShow},
	StatusConfirmed: {StatusCompleted, StatusCancelled, StatusNoShow},
}

// ParseAppointmentStatus validates a raw status value.
func ParseAppointmentStatus(s string) (AppointmentStatus, bool) {
	switch AppointmentStatus(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled, StatusNoShow:
		return AppointmentStatus(s), true
	}
	return "", false
}

// Appointment is the aggregate root for a booking.
type Appointment struct {
	ID        int64
	UserID    int64
	ServiceID int64
	StaffID   *int64 // nil until a staff member is assigned

	Date      time.Time // calendar date, no time component
	StartTime types.TimeString
	EndTime   types.TimeString

	Status AppointmentStatus

	OriginalPrice   decimal.Decimal
	DiscountAmount  decimal.Decimal
	DiscountedPrice decimal.Decimal
	PromotionID     *int64 // set when a promotion funded the discount
	PointsRedeemed  int    // >0 when loyalty points funded the discount

	PaymentMethod *string
	Notes         *string
	Location      *string
	ReminderSent  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive reports whether the appointment still holds its time slot.
func (a *Appointment) IsActive() bool {
	return a.Status != StatusCancelled && a.Status != StatusNoShow
}

// IsTerminal reports whether no further status transition is allowed.
func (a *Appointment) IsTerminal() bool {
	return a.Status == StatusCompleted || a.Status == StatusCancelled || a.Status == StatusNoShow
}

// CanTransitionTo reports whether the lifecycle table permits moving to next.
func (a *Appointment) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range allowedTransitions[a.Status] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanBeCancelled reports whether the appointment may still be cancelled.
func (a *Appointment) CanBeCancelled() bool {
	return a.CanTransitionTo(StatusCancelled)
}

// HasDiscount reports whether any discount mechanism was already applied.
// A promotion and a points redemption are mutually exclusive per appointment.
func (a *Appointment) HasDiscount() bool {
	return a.PromotionID != nil || a.PointsRedeemed > 0
}

// AppointmentsFilter selects appointments for listing and overlap checks.
type AppointmentsFilter struct {
	UserID          *int64
	StaffID         *int64
	Date            *time.Time
	Status          *AppointmentStatus
	IncludeInactive bool
}
