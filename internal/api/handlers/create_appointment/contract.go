package create_appointment

import (
	"context"

	createAppointment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/create_appointment"
)

type CreateAppointmentUseCase interface {
	Execute(ctx context.Context, req *createAppointment.Request) (*createAppointment.Response, error)
}

// Metrics is the counter surface the handler reports booking outcomes to.
type Metrics interface {
	AppointmentCreated()
	ConflictRejected()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
