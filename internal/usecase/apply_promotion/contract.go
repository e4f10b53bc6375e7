package apply_promotion

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// AppointmentRepository is the storage surface the use case needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateDiscount(ctx context.Context, id int64, discountAmount, discountedPrice decimal.Decimal, promotionID *int64, pointsRedeemed int) error
}

// PromotionRepository supplies and consumes the promotion code.
type PromotionRepository interface {
	GetByCode(ctx context.Context, code string) (*domain.Promotion, error)
	IncrementUsage(ctx context.Context, id int64) error
}

// OutboxRepository records the applied event in the same transaction.
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager runs the application inside a transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider supplies the current time (swappable in tests).
type TimeProvider interface {
	Now() time.Time
}

// Logger is the logging interface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider is the production TimeProvider.
type RealTimeProvider struct{}

// Now returns the current wall-clock time.
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
