package schedule

import "errors"

var (
	// ErrInvalidWindow is returned when open/close times are malformed or inverted
	ErrInvalidWindow = errors.New("invalid schedule window")

	// ErrAccessDenied is returned when the actor may not manage schedules
	ErrAccessDenied = errors.New("access denied")

	// ErrInternal is returned on internal service errors
	ErrInternal = errors.New("schedule service: internal error")
)
