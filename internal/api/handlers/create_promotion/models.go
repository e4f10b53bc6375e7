package create_promotion

import (
	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// CreatePromotionRequest is the admin request body.
type CreatePromotionRequest struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	StartDate     string          `json:"startDate"` // YYYY-MM-DD
	EndDate       string          `json:"endDate"`   // YYYY-MM-DD
	UsageLimit    int             `json:"usageLimit"`
}

// PromotionView is the HTTP representation of a promotion.
type PromotionView struct {
	ID            int64  `json:"id"`
	Code          string `json:"code"`
	DiscountType  string `json:"discountType"`
	DiscountValue string `json:"discountValue"`
	StartDate     string `json:"startDate"`
	EndDate       string `json:"endDate"`
	UsageLimit    int    `json:"usageLimit"`
	TimesUsed     int    `json:"timesUsed"`
	IsActive      bool   `json:"isActive"`
}

// ListResponse wraps the promotions listing.
type ListResponse struct {
	Promotions []PromotionView `json:"promotions"`
}

func viewFromDomain(p *domain.Promotion) PromotionView {
	return PromotionView{
		ID:            p.ID,
		Code:          p.Code,
		DiscountType:  string(p.DiscountType),
		DiscountValue: p.DiscountValue.StringFixed(2),
		StartDate:     p.StartDate.Format(domain.DateFormat),
		EndDate:       p.EndDate.Format(domain.DateFormat),
		UsageLimit:    p.UsageLimit,
		TimesUsed:     p.TimesUsed,
		IsActive:      p.IsActive,
	}
}
