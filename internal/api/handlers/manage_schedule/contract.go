package manage_schedule

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

type ScheduleService interface {
	SetStoreHour(ctx context.Context, actor domain.Actor, h *domain.StoreHour) error
	AddException(ctx context.Context, actor domain.Actor, e *domain.StoreException) (*domain.StoreException, error)
	SetStaffSchedule(ctx context.Context, actor domain.Actor, sched *domain.StaffSchedule) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
