package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DiscountType is how a promotion's discount value is interpreted.
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// ParseDiscountType validates a raw discount type value.
func ParseDiscountType(s string) (DiscountType, bool) {
	switch DiscountType(s) {
	case DiscountPercentage, DiscountFixed:
		return DiscountType(s), true
	}
	return "", false
}

// Promotion is a discount code with an active window and a usage limit.
// Invariant: TimesUsed <= UsageLimit, enforced by the storage layer with an
// atomic check-and-increment.
type Promotion struct {
	ID            int64
	Code          string // globally unique
	DiscountType  DiscountType
	DiscountValue decimal.Decimal
	StartDate     time.Time
	EndDate       time.Time
	UsageLimit    int
	TimesUsed     int
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsWithinWindow reports whether now falls inside [StartDate, EndDate].
func (p *Promotion) IsWithinWindow(now time.Time) bool {
	return !now.Before(p.StartDate) && !now.After(p.EndDate)
}

// HasUsageLeft reports whether the usage limit still has headroom.
func (p *Promotion) HasUsageLeft() bool {
	return p.TimesUsed < p.UsageLimit
}
