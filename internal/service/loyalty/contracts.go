package loyalty

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// UserRepository is the storage surface the ledger needs.
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	AddPoints(ctx context.Context, userID int64, points int) error
	DeductPoints(ctx context.Context, userID int64, points int) error
}

// SettingsStore exposes the live loyalty toggle.
type SettingsStore interface {
	LoyaltyPointsEnabled(ctx context.Context) bool
}

// Logger is the logging interface the ledger needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
