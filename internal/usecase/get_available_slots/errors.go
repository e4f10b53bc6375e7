package get_available_slots

import "errors"

var (
	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrServiceNotFound is returned when the service does not exist
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("get_available_slots: internal error")
)
