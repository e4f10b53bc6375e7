package notifier

import "errors"

var (
	// ErrDeliveryFailed is returned when the notification endpoint rejects
	// or never receives the message. Always non-fatal to the caller.
	ErrDeliveryFailed = errors.New("notifier client: delivery failed")
)
