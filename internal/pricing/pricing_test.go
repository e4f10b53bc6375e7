package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestPrice_Percentage(t *testing.T) {
	promo := &domain.Promotion{DiscountType: domain.DiscountPercentage, DiscountValue: dec("20")}

	quote, err := Price(dec("100.00"), promo)
	require.NoError(t, err)
	assert.True(t, quote.DiscountAmount.Equal(dec("20.00")), "discount=%s", quote.DiscountAmount)
	assert.True(t, quote.FinalAmount.Equal(dec("80.00")), "final=%s", quote.FinalAmount)
}

func TestPrice_PercentageRoundsToCents(t *testing.T) {
	promo := &domain.Promotion{DiscountType: domain.DiscountPercentage, DiscountValue: dec("15")}

	quote, err := Price(dec("33.33"), promo)
	require.NoError(t, err)
	// 33.33 * 15% = 4.9995 -> 5.00
	assert.True(t, quote.DiscountAmount.Equal(dec("5.00")), "discount=%s", quote.DiscountAmount)
	assert.True(t, quote.FinalAmount.Equal(dec("28.33")), "final=%s", quote.FinalAmount)
}

func TestPrice_FixedClampsToOriginal(t *testing.T) {
	promo := &domain.Promotion{DiscountType: domain.DiscountFixed, DiscountValue: dec("150")}

	quote, err := Price(dec("100.00"), promo)
	require.NoError(t, err)
	assert.True(t, quote.DiscountAmount.Equal(dec("100.00")))
	assert.True(t, quote.FinalAmount.IsZero(), "final=%s", quote.FinalAmount)
}

func TestPrice_NoPromotion(t *testing.T) {
	quote, err := Price(dec("42.50"), nil)
	require.NoError(t, err)
	assert.True(t, quote.DiscountAmount.IsZero())
	assert.True(t, quote.FinalAmount.Equal(dec("42.50")))
}

func TestPrice_Invalid(t *testing.T) {
	_, err := Price(dec("-1"), nil)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Price(dec("10"), &domain.Promotion{DiscountType: "bogus", DiscountValue: dec("5")})
	assert.ErrorIs(t, err, ErrUnknownDiscountType)
}

func TestPriceByPoints(t *testing.T) {
	// 10 points = 1 currency unit: 100 points on a $50 service -> $10 off.
	quote, err := PriceByPoints(dec("50.00"), 100, 10)
	require.NoError(t, err)
	assert.True(t, quote.DiscountAmount.Equal(dec("10.00")))
	assert.True(t, quote.FinalAmount.Equal(dec("40.00")))
}

func TestPriceByPoints_RejectsExcessDiscount(t *testing.T) {
	_, err := PriceByPoints(dec("5.00"), 100, 10)
	assert.ErrorIs(t, err, ErrDiscountExceedsPrice)
}

func TestPriceByPoints_Invalid(t *testing.T) {
	_, err := PriceByPoints(dec("50.00"), 0, 10)
	assert.ErrorIs(t, err, ErrInvalidPoints)

	_, err = PriceByPoints(dec("50.00"), 10, 0)
	assert.ErrorIs(t, err, ErrInvalidPointValue)
}

func TestPointsEarned(t *testing.T) {
	assert.Equal(t, 45, PointsEarned(dec("45.00")))
	assert.Equal(t, 45, PointsEarned(dec("45.99")))
	assert.Equal(t, 0, PointsEarned(dec("0.99")))
	assert.Equal(t, 0, PointsEarned(dec("-3.00")))
}
