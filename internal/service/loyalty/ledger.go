package loyalty

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	userRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/user"
	"github.com/tarekyounes123/booking-online-sub001/internal/pricing"
)

// Ledger is the single entry point for loyalty balance changes. Earning is
// gated by the live toggle; spending an existing balance never is.
type Ledger struct {
	users    UserRepository
	settings SettingsStore
	logger   Logger
}

// NewLedger creates the loyalty ledger.
func NewLedger(users UserRepository, settings SettingsStore, logger Logger) *Ledger {
	return &Ledger{users: users, settings: settings, logger: logger}
}

// Award credits points for a paid amount and returns how many were credited.
// When the programme is disabled it is a no-op returning zero. Callers run
// this inside the payment transaction so the credit and the pointsAwarded
// flag commit together.
func (l *Ledger) Award(ctx context.Context, userID int64, amount decimal.Decimal) (int, error) {
	if !l.settings.LoyaltyPointsEnabled(ctx) {
		l.logger.Info("Award: loyalty programme disabled, skipping user=%d", userID)
		return 0, nil
	}

	points := pricing.PointsEarned(amount)
	if points <= 0 {
		return 0, nil
	}

	if err := l.users.AddPoints(ctx, userID, points); err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		l.logger.Error("Award: failed to add %d points user=%d: %v", points, userID, err)
		return 0, fmt.Errorf("%w: Award - add points: %v", ErrInternal, err)
	}

	l.logger.Info("Award: credited %d points user=%d", points, userID)
	return points, nil
}

// Redeem debits points from the user's balance. Redemption is deliberately
// not gated by the live toggle: a balance earned while the programme was on
// stays spendable after it is turned off.
func (l *Ledger) Redeem(ctx context.Context, userID int64, points int) error {
	if points <= 0 {
		return ErrInvalidPoints
	}

	if err := l.users.DeductPoints(ctx, userID, points); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrInsufficientPoints):
			return ErrInsufficientPoints
		case errors.Is(err, userRepo.ErrUserNotFound):
			return ErrUserNotFound
		}
		l.logger.Error("Redeem: failed to deduct %d points user=%d: %v", points, userID, err)
		return fmt.Errorf("%w: Redeem - deduct points: %v", ErrInternal, err)
	}

	l.logger.Info("Redeem: debited %d points user=%d", points, userID)
	return nil
}

// Balance returns the user's current points balance.
func (l *Ledger) Balance(ctx context.Context, userID int64) (int, error) {
	u, err := l.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return 0, ErrUserNotFound
		}
		return 0, fmt.Errorf("%w: Balance - get user: %v", ErrInternal, err)
	}
	return u.LoyaltyPoints, nil
}
