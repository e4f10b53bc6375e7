package schedule

import (
	"context"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// ScheduleRepository is the storage surface the service needs.
type ScheduleRepository interface {
	GetStoreHour(ctx context.Context, weekday time.Weekday) (*domain.StoreHour, error)
	UpsertStoreHour(ctx context.Context, h *domain.StoreHour) error
	GetExceptionForDate(ctx context.Context, date time.Time) (*domain.StoreException, error)
	CreateException(ctx context.Context, e *domain.StoreException) (*domain.StoreException, error)
	GetStaffSchedule(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.StaffSchedule, error)
	UpsertStaffSchedule(ctx context.Context, s *domain.StaffSchedule) error
}

// Logger is the logging interface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
