package apply_promotion

import "errors"

var (
	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("apply_promotion: invalid input data")

	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("apply_promotion: appointment not found")

	// ErrAccessDenied is returned when the actor may not touch the appointment
	ErrAccessDenied = errors.New("apply_promotion: access denied")

	// ErrInactiveAppointment is returned for cancelled or missed appointments
	ErrInactiveAppointment = errors.New("apply_promotion: appointment is cancelled or missed")

	// ErrAlreadyDiscounted is returned when the appointment already carries a
	// promotion or a points redemption
	ErrAlreadyDiscounted = errors.New("apply_promotion: appointment already has a discount")

	// ErrPromotionNotFound is returned when the code does not exist
	ErrPromotionNotFound = errors.New("apply_promotion: promotion not found")

	// ErrPromotionInactive is returned when the promotion is switched off
	ErrPromotionInactive = errors.New("apply_promotion: promotion is not active")

	// ErrPromotionExpired is returned outside the promotion's date window
	ErrPromotionExpired = errors.New("apply_promotion: promotion is outside its active window")

	// ErrUsageLimitReached is returned when the usage limit has no headroom
	ErrUsageLimitReached = errors.New("apply_promotion: promotion usage limit reached")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("apply_promotion: internal error")
)
