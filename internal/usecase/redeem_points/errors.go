package redeem_points

import "errors"

var (
	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("redeem_points: invalid input data")

	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("redeem_points: appointment not found")

	// ErrAccessDenied is returned when the actor may not touch the appointment
	ErrAccessDenied = errors.New("redeem_points: access denied")

	// ErrInactiveAppointment is returned for cancelled or missed appointments
	ErrInactiveAppointment = errors.New("redeem_points: appointment is cancelled or missed")

	// ErrAlreadyDiscounted is returned when the appointment already carries a
	// promotion or a points redemption
	ErrAlreadyDiscounted = errors.New("redeem_points: appointment already has a discount")

	// ErrDiscountExceedsPrice is returned when the points are worth more than
	// the service price
	ErrDiscountExceedsPrice = errors.New("redeem_points: points exceed the service price")

	// ErrInsufficientPoints is returned when the balance cannot cover the
	// redemption
	ErrInsufficientPoints = errors.New("redeem_points: insufficient points balance")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("redeem_points: internal error")
)
