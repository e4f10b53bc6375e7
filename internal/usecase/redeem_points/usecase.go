package redeem_points

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	"github.com/tarekyounes123/booking-online-sub001/internal/pricing"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/loyalty"
)

// UseCase redeems loyalty points against an appointment's price. The balance
// debit and the reprice commit together; the ledger's guarded decrement makes
// a concurrent redemption of the same balance lose cleanly.
type UseCase struct {
	appointmentRepo AppointmentRepository
	ledger          LoyaltyLedger
	txManager       TransactionManager
	pointsPerUnit   int
	logger          Logger
}

// NewUseCase creates the use case. pointsPerUnit is the conversion rate,
// points per one currency unit of discount.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	ledger LoyaltyLedger,
	txManager TransactionManager,
	pointsPerUnit int,
	logger Logger,
) *UseCase {
	if pointsPerUnit <= 0 {
		pointsPerUnit = domain.DefaultPointsPerUnit
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		ledger:          ledger,
		txManager:       txManager,
		pointsPerUnit:   pointsPerUnit,
		logger:          logger,
	}
}

// Execute redeems the points.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("RedeemPoints: appointment=%d points=%d by user=%d",
		req.AppointmentID, req.Points, req.Actor.UserID)

	if req.AppointmentID <= 0 {
		return nil, fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Points <= 0 {
		return nil, fmt.Errorf("%w: points must be positive", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Load and authorize the appointment (row-locked in the tx).
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("RedeemPoints: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if !req.Actor.IsAdmin() && req.Actor.UserID != appt.UserID {
			return ErrAccessDenied
		}
		if !appt.IsActive() {
			return fmt.Errorf("%w: status is %s", ErrInactiveAppointment, appt.Status)
		}
		if appt.HasDiscount() {
			return ErrAlreadyDiscounted
		}

		// 2. Price the redemption before touching the balance, so an
		// excessive request is rejected without a debit.
		quote, err := pricing.PriceByPoints(appt.OriginalPrice, req.Points, uc.pointsPerUnit)
		if err != nil {
			if errors.Is(err, pricing.ErrDiscountExceedsPrice) {
				return ErrDiscountExceedsPrice
			}
			return fmt.Errorf("%w: failed to price: %v", ErrInternal, err)
		}

		// 3. Debit the balance. Points stay spendable even when earning
		// is switched off.
		if err := uc.ledger.Redeem(txCtx, appt.UserID, req.Points); err != nil {
			switch {
			case errors.Is(err, loyalty.ErrInsufficientPoints):
				return ErrInsufficientPoints
			case errors.Is(err, loyalty.ErrInvalidPoints):
				return fmt.Errorf("%w: %v", ErrInvalidInput, err)
			case errors.Is(err, loyalty.ErrUserNotFound):
				return fmt.Errorf("%w: user id=%d vanished", ErrInternal, appt.UserID)
			}
			uc.logger.Error("RedeemPoints: failed to debit user=%d: %v", appt.UserID, err)
			return fmt.Errorf("%w: failed to debit points: %v", ErrInternal, err)
		}

		// 4. Reprice.
		if err := uc.appointmentRepo.UpdateDiscount(txCtx, appt.ID, quote.DiscountAmount, quote.FinalAmount, nil, req.Points); err != nil {
			uc.logger.Error("RedeemPoints: failed to update discount appointment=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update discount: %v", ErrInternal, err)
		}

		result = &Response{
			AppointmentID:   appt.ID,
			PointsRedeemed:  req.Points,
			OriginalPrice:   appt.OriginalPrice,
			DiscountAmount:  quote.DiscountAmount,
			DiscountedPrice: quote.FinalAmount,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("RedeemPoints: appointment=%d repriced to %s with %d points",
		result.AppointmentID, result.DiscountedPrice, result.PointsRedeemed)
	return result, nil
}
