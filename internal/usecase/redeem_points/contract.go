package redeem_points

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// AppointmentRepository is the storage surface the use case needs.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	UpdateDiscount(ctx context.Context, id int64, discountAmount, discountedPrice decimal.Decimal, promotionID *int64, pointsRedeemed int) error
}

// LoyaltyLedger debits the points balance.
type LoyaltyLedger interface {
	Redeem(ctx context.Context, userID int64, points int) error
}

// TransactionManager runs the redemption inside a transaction.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger is the logging interface the use case needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
