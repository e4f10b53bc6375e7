package delete_appointment

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

type AppointmentsService interface {
	Delete(ctx context.Context, actor domain.Actor, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
