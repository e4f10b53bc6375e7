package apply_promotion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tarekyounes123/booking-online-sub001/internal/events"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	promoRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/promotion"
	"github.com/tarekyounes123/booking-online-sub001/internal/pricing"
)

// UseCase applies a promotion code to an appointment. The eligibility check,
// the usage increment and the reprice commit in one transaction; the
// increment itself is an atomic guarded update, so the usage limit holds even
// when many requests race on the last redemption.
type UseCase struct {
	appointmentRepo AppointmentRepository
	promotionRepo   PromotionRepository
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	promotionRepo PromotionRepository,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		promotionRepo:   promotionRepo,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute applies the code.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	uc.logger.Info("ApplyPromotion: appointment=%d code=%s by user=%d", req.AppointmentID, code, req.Actor.UserID)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if code == "" {
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Load and authorize the appointment (row-locked in the tx).
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("ApplyPromotion: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if !req.Actor.IsAdmin() && req.Actor.UserID != appt.UserID {
			return ErrAccessDenied
		}
		if !appt.IsActive() {
			return fmt.Errorf("%w: status is %s", ErrInactiveAppointment, appt.Status)
		}
		// One discount mechanism per appointment, promotion or points.
		if appt.HasDiscount() {
			return ErrAlreadyDiscounted
		}

		// 2. Load and gate the promotion.
		promo, err := uc.promotionRepo.GetByCode(txCtx, code)
		if err != nil {
			if errors.Is(err, promoRepo.ErrPromotionNotFound) {
				return ErrPromotionNotFound
			}
			uc.logger.Error("ApplyPromotion: failed to get promotion %s: %v", code, err)
			return fmt.Errorf("%w: failed to get promotion: %v", ErrInternal, err)
		}
		if !promo.IsActive {
			return ErrPromotionInactive
		}
		if !promo.IsWithinWindow(uc.timeProvider.Now()) {
			return ErrPromotionExpired
		}

		// 3. Consume one usage. The guarded increment refuses once
		// times_used reaches the limit, closing the race.
		if err := uc.promotionRepo.IncrementUsage(txCtx, promo.ID); err != nil {
			if errors.Is(err, promoRepo.ErrUsageExhausted) {
				return ErrUsageLimitReached
			}
			uc.logger.Error("ApplyPromotion: failed to increment usage promo=%d: %v", promo.ID, err)
			return fmt.Errorf("%w: failed to increment usage: %v", ErrInternal, err)
		}
		// Keep the in-memory counter in step with the consumed usage so the
		// event reports the post-increment value.
		promo.TimesUsed++

		// 4. Reprice.
		quote, err := pricing.Price(appt.OriginalPrice, promo)
		if err != nil {
			return fmt.Errorf("%w: failed to price: %v", ErrInternal, err)
		}
		if err := uc.appointmentRepo.UpdateDiscount(txCtx, appt.ID, quote.DiscountAmount, quote.FinalAmount, &promo.ID, 0); err != nil {
			uc.logger.Error("ApplyPromotion: failed to update discount appointment=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update discount: %v", ErrInternal, err)
		}

		event, err := events.NewPromotionEvent(promo, appt.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to build event: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to record event: %v", ErrInternal, err)
		}

		result = &Response{
			AppointmentID:   appt.ID,
			PromotionID:     promo.ID,
			Code:            promo.Code,
			OriginalPrice:   appt.OriginalPrice,
			DiscountAmount:  quote.DiscountAmount,
			DiscountedPrice: quote.FinalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ApplyPromotion: appointment=%d repriced to %s with %s",
		result.AppointmentID, result.DiscountedPrice, result.Code)
	return result, nil
}
