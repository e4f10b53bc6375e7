package payments

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// PaymentRepository is the storage surface the service needs.
type PaymentRepository interface {
	Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error)
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Payment, error)
}

// AppointmentRepository supplies the appointment a payment settles.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
}

// Logger is the logging interface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
