package payments

import "errors"

var (
	ErrAppointmentNotFound = errors.New("payments: appointment not found")
	ErrPaymentNotFound     = errors.New("payments: payment not found")
	ErrAccessDenied        = errors.New("payments: access denied")
	ErrAlreadyPaid         = errors.New("payments: appointment already has a payment")
	ErrInactiveAppointment = errors.New("payments: appointment is cancelled or missed")
	ErrEmptyPaymentMethod  = errors.New("payments: payment method must not be empty")
	ErrInternal            = errors.New("payments: internal error")
)
