package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

var (
	// ErrInvalidAmount is returned when the original amount is negative
	ErrInvalidAmount = errors.New("pricing: original amount must be non-negative")

	// ErrInvalidPoints is returned when the points to redeem are not positive
	ErrInvalidPoints = errors.New("pricing: points to redeem must be positive")

	// ErrInvalidPointValue is returned when the conversion rate is not positive
	ErrInvalidPointValue = errors.New("pricing: points per currency unit must be positive")

	// ErrDiscountExceedsPrice is returned when a points redemption would
	// discount more than the service price
	ErrDiscountExceedsPrice = errors.New("pricing: discount exceeds the service price")

	// ErrUnknownDiscountType is returned for a promotion with an unknown type
	ErrUnknownDiscountType = errors.New("pricing: unknown discount type")
)

// Quote is the outcome of a discount computation. All amounts are
// non-negative and FinalAmount = original - DiscountAmount, rounded to cents.
type Quote struct {
	DiscountAmount decimal.Decimal
	FinalAmount    decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Price computes the discount a promotion grants on originalAmount.
// Percentage promotions take discountValue percent of the amount, fixed
// promotions take discountValue outright; either way the discount is clamped
// to the original amount so the final price never goes negative.
// Promotion eligibility (active, window, usage) is the caller's concern.
func Price(originalAmount decimal.Decimal, promo *domain.Promotion) (Quote, error) {
	if originalAmount.IsNegative() {
		return Quote{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, originalAmount)
	}
	if promo == nil {
		return Quote{DiscountAmount: decimal.Zero, FinalAmount: originalAmount.Round(2)}, nil
	}

	var discount decimal.Decimal
	switch promo.DiscountType {
	case domain.DiscountPercentage:
		discount = originalAmount.Mul(promo.DiscountValue).Div(hundred)
	case domain.DiscountFixed:
		discount = promo.DiscountValue
	default:
		return Quote{}, fmt.Errorf("%w: %q", ErrUnknownDiscountType, promo.DiscountType)
	}

	if discount.IsNegative() {
		discount = decimal.Zero
	}
	if discount.GreaterThan(originalAmount) {
		discount = originalAmount
	}

	discount = discount.Round(2)
	return Quote{
		DiscountAmount: discount,
		FinalAmount:    originalAmount.Round(2).Sub(discount),
	}, nil
}

// PriceByPoints computes the discount a loyalty redemption grants.
// pointsPerUnit is the fixed conversion rate (10 points = 1 currency unit).
// Redemption is rejected outright when the resulting discount would exceed
// the original amount; there is no clamping on this path because burning
// points for nothing is never what the customer asked for.
func PriceByPoints(originalAmount decimal.Decimal, pointsToRedeem, pointsPerUnit int) (Quote, error) {
	if originalAmount.IsNegative() {
		return Quote{}, fmt.Errorf("%w: got %s", ErrInvalidAmount, originalAmount)
	}
	if pointsToRedeem <= 0 {
		return Quote{}, fmt.Errorf("%w: got %d", ErrInvalidPoints, pointsToRedeem)
	}
	if pointsPerUnit <= 0 {
		return Quote{}, fmt.Errorf("%w: got %d", ErrInvalidPointValue, pointsPerUnit)
	}

	discount := decimal.NewFromInt(int64(pointsToRedeem)).
		Div(decimal.NewFromInt(int64(pointsPerUnit))).
		Round(2)

	if discount.GreaterThan(originalAmount) {
		return Quote{}, fmt.Errorf("%w: %s > %s", ErrDiscountExceedsPrice, discount, originalAmount)
	}

	return Quote{
		DiscountAmount: discount,
		FinalAmount:    originalAmount.Round(2).Sub(discount),
	}, nil
}

// PointsEarned is the accrual rule: floor(amount) of the currency unit per
// completed payment.
func PointsEarned(finalAmount decimal.Decimal) int {
	if finalAmount.IsNegative() {
		return 0
	}
	return int(finalAmount.Floor().IntPart())
}
