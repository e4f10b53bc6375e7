package complete_payment

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// PaymentRepository is the storage surface the use case needs.
type PaymentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Payment, error)
	MarkCompleted(ctx context.Context, id int64, pointsAwarded bool) error
}

// LoyaltyLedger credits points for the paid amount.
type LoyaltyLedger interface {
	Award(ctx context.Context, userID int64, amount decimal.Decimal) (int, error)
}

// OutboxRepository records the completed event in the same transaction.
type OutboxRepository interface {
	Insert(ctx context.Context, event *domain.OutboxEvent) error
}

// TransactionManager runs the completion inside a transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
