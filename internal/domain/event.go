package domain

import "time"

// Lifecycle event names emitted through the outbox.
const (
	EventAppointmentCreated   = "appointment.created"
	EventAppointmentUpdated   = "appointment.updated"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentDeleted   = "appointment.deleted"
	EventPaymentCompleted     = "payment.completed"
	EventPromotionApplied     = "promotion.applied"
)

// OutboxEvent is a lifecycle event persisted in the same transaction as the
// state change it describes. A background dispatcher delivers it to external
// sinks; delivery failure never rolls back the triggering operation.
type OutboxEvent struct {
	ID            int64
	EventType     string
	AggregateType string
	AggregateID   int64
	Payload       []byte // JSON

	Published   bool
	Attempts    int
	LastError   *string
	PublishedAt *time.Time
	CreatedAt   time.Time
}
