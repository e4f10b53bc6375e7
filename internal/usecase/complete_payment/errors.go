package complete_payment

import "errors"

var (
	// ErrInvalidInput is returned when request fields fail validation
	ErrInvalidInput = errors.New("complete_payment: invalid input data")

	// ErrPaymentNotFound is returned when the payment does not exist
	ErrPaymentNotFound = errors.New("complete_payment: payment not found")

	// ErrAccessDenied is returned when the actor may not touch the payment
	ErrAccessDenied = errors.New("complete_payment: access denied")

	// ErrPaymentFailed is returned when a failed payment is completed
	ErrPaymentFailed = errors.New("complete_payment: payment has failed")

	// ErrInternal is returned on internal use case failures
	ErrInternal = errors.New("complete_payment: internal error")
)
