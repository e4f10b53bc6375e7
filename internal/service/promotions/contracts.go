package promotions

import (
	"context"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// PromotionRepository is the storage surface the service needs.
type PromotionRepository interface {
	Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error)
	List(ctx context.Context) ([]*domain.Promotion, error)
}

// TimeProvider supplies the current time so validation is testable.
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider is the production TimeProvider.
type RealTimeProvider struct{}

// Now returns the current wall-clock time.
func (RealTimeProvider) Now() time.Time { return time.Now() }

// Logger is the logging interface the service needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
