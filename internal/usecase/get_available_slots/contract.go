package get_available_slots

import (
	"context"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// AppointmentRepository is the storage surface the use case needs.
type AppointmentRepository interface {
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// ServiceRepository supplies the service whose duration shapes the slots.
type ServiceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Service, error)
}

// ScheduleService resolves the bookable window for a date and staff member.
type ScheduleService interface {
	EffectiveWindow(ctx context.Context, date time.Time, staffID *int64) (domain.DayWindow, error)
}

// Logger is the logging interface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
