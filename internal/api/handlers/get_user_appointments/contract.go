package get_user_appointments

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

type AppointmentsService interface {
	ListForUser(ctx context.Context, actor domain.Actor, userID int64, includeInactive bool) ([]*domain.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
