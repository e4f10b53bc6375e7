package update_appointment

import "errors"

var (
	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("update_appointment: invalid input data")

	// ErrAppointmentNotFound is returned when the appointment does not exist
	ErrAppointmentNotFound = errors.New("update_appointment: appointment not found")

	// ErrAccessDenied is returned when the actor may not touch the appointment
	ErrAccessDenied = errors.New("update_appointment: access denied")

	// ErrNotReschedulable is returned for terminal appointments
	ErrNotReschedulable = errors.New("update_appointment: appointment can no longer be changed")

	// ErrServiceNotFound is returned when the requested new service does not
	// exist
	ErrServiceNotFound = errors.New("update_appointment: service not found")

	// ErrServiceNotBookable is returned when the requested new service is
	// inactive
	ErrServiceNotBookable = errors.New("update_appointment: service is not bookable")

	// ErrDiscountApplied is returned when a service change would reprice an
	// appointment that already carries a discount
	ErrDiscountApplied = errors.New("update_appointment: service cannot change after a discount was applied")

	// ErrDateInPast is returned when the new date is before today
	ErrDateInPast = errors.New("update_appointment: date is in the past")

	// ErrClosed is returned when the target date has no open window
	ErrClosed = errors.New("update_appointment: closed on this date")

	// ErrOutsideWorkingHours is returned when the new slot does not fit the
	// open window
	ErrOutsideWorkingHours = errors.New("update_appointment: slot is outside working hours")

	// ErrTimeConflict is returned when the new slot collides with another
	// appointment
	ErrTimeConflict = errors.New("update_appointment: time slot conflicts with an existing appointment")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("update_appointment: internal error")
)
