package appointments

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// AppointmentRepository is the storage surface the service needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
}

// OutboxRepository records side-effect events in the same transaction as the
// state change they describe.
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager runs a function within a database transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
