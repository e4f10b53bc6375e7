package update_appointment_status

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

type AppointmentsService interface {
	UpdateStatus(ctx context.Context, actor domain.Actor, id int64, next domain.AppointmentStatus) (*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
