package appointments

import "errors"

var (
	ErrAppointmentNotFound = errors.New("appointments: appointment not found")
	ErrAccessDenied        = errors.New("appointments: access denied")
	ErrInvalidTransition   = errors.New("appointments: status transition not allowed")
	ErrInvalidStatus       = errors.New("appointments: unknown status")
	ErrAlreadyTerminal     = errors.New("appointments: appointment is in a terminal status")
	ErrPaymentAttached     = errors.New("appointments: appointment is referenced by a payment")
	ErrInternal            = errors.New("appointments: internal error")
)
