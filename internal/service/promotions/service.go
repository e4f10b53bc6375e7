package promotions

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	promoRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/promotion"
)

var hundred = decimal.NewFromInt(100)

// Service covers the admin side of promotions. Applying a code to an
// appointment is a separate usecase with its own transaction.
type Service struct {
	promotions PromotionRepository
	timer      TimeProvider
	logger     Logger
}

// NewService creates the promotions service.
func NewService(promotions PromotionRepository, timer TimeProvider, logger Logger) *Service {
	return &Service{promotions: promotions, timer: timer, logger: logger}
}

// CreateInput is the admin request to register a promotion code.
type CreateInput struct {
	Code          string
	DiscountType  string
	DiscountValue decimal.Decimal
	StartDate     string // YYYY-MM-DD
	EndDate       string // YYYY-MM-DD
	UsageLimit    int
}

// Create registers a promotion code. Admin only. Codes are stored uppercase
// so lookups are case-insensitive.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (*domain.Promotion, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	promo, err := s.buildPromotion(in)
	if err != nil {
		return nil, err
	}

	created, err := s.promotions.Create(ctx, promo)
	if err != nil {
		if errors.Is(err, promoRepo.ErrDuplicateCode) {
			return nil, ErrDuplicateCode
		}
		s.logger.Error("Create: repository error code=%s: %v", promo.Code, err)
		return nil, fmt.Errorf("%w: Create - insert promotion: %v", ErrInternal, err)
	}

	s.logger.Info("Create: promotion %s (%s %s) limit=%d by admin=%d",
		created.Code, created.DiscountType, created.DiscountValue, created.UsageLimit, actor.UserID)
	return created, nil
}

// List returns all promotions. Admin only, since it exposes usage counters.
func (s *Service) List(ctx context.Context, actor domain.Actor) ([]*domain.Promotion, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}

	promos, err := s.promotions.List(ctx)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - list promotions: %v", ErrInternal, err)
	}
	return promos, nil
}

func (s *Service) buildPromotion(in CreateInput) (*domain.Promotion, error) {
	code := strings.ToUpper(strings.TrimSpace(in.Code))
	if code == "" {
		return nil, ErrEmptyCode
	}

	discountType, ok := domain.ParseDiscountType(in.DiscountType)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDiscountType, in.DiscountType)
	}
	if in.DiscountValue.IsNegative() || in.DiscountValue.IsZero() {
		return nil, fmt.Errorf("%w: value must be positive", ErrInvalidDiscountValue)
	}
	if discountType == domain.DiscountPercentage && in.DiscountValue.GreaterThan(hundred) {
		return nil, fmt.Errorf("%w: percentage cannot exceed 100", ErrInvalidDiscountValue)
	}

	startDate, err := time.Parse(domain.DateFormat, in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date %q", ErrInvalidWindow, in.StartDate)
	}
	endDate, err := time.Parse(domain.DateFormat, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date %q", ErrInvalidWindow, in.EndDate)
	}
	if startDate.After(endDate) {
		return nil, ErrInvalidWindow
	}
	today := s.timer.Now().Truncate(24 * time.Hour)
	if endDate.Before(today) {
		return nil, fmt.Errorf("%w: window already ended", ErrInvalidWindow)
	}

	if in.UsageLimit <= 0 {
		return nil, ErrInvalidUsageLimit
	}

	return &domain.Promotion{
		Code:          code,
		DiscountType:  discountType,
		DiscountValue: in.DiscountValue,
		StartDate:     startDate,
		EndDate:       endDate,
		UsageLimit:    in.UsageLimit,
		IsActive:      true,
	}, nil
}
