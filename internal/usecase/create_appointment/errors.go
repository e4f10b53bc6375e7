package create_appointment

import "errors"

var (
	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("create_appointment: service not found")

	// ErrServiceNotBookable is returned when the service is inactive
	ErrServiceNotBookable = errors.New("create_appointment: service is not bookable")

	// ErrDateInPast is returned when the requested date is before today
	ErrDateInPast = errors.New("create_appointment: date is in the past")

	// ErrClosed is returned when the store or staff member has no open
	// window on the requested date
	ErrClosed = errors.New("create_appointment: closed on this date")

	// ErrOutsideWorkingHours is returned when the slot does not fit the
	// open window
	ErrOutsideWorkingHours = errors.New("create_appointment: slot is outside working hours")

	// ErrTimeConflict is returned when the customer or the staff member
	// already has an overlapping appointment
	ErrTimeConflict = errors.New("create_appointment: time slot conflicts with an existing appointment")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("create_appointment: internal error")
)
