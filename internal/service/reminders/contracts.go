package reminders

import (
	"context"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// AppointmentRepository is the storage surface the worker needs.
type AppointmentRepository interface {
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	SetReminderSent(ctx context.Context, id int64) error
}

// Notifier delivers the reminder to the notification service.
type Notifier interface {
	Notify(ctx context.Context, eventName string, payload interface{}) error
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the worker needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
