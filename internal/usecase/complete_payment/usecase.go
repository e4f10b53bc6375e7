package complete_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/events"
	paymentRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/payment"
)

// UseCase settles a payment and credits loyalty points for the paid amount.
// The pointsAwarded flag commits with the status change, so retrying a
// completion can never credit the same payment twice.
type UseCase struct {
	paymentRepo PaymentRepository
	ledger      LoyaltyLedger
	outboxRepo  OutboxRepository
	txManager   TransactionManager
	logger      Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	paymentRepo PaymentRepository,
	ledger LoyaltyLedger,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		paymentRepo: paymentRepo,
		ledger:      ledger,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// Execute completes the payment. Completing an already-completed payment is
// a no-op returning the settled state.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CompletePayment: payment=%d by user=%d", req.PaymentID, req.Actor.UserID)

	if req.PaymentID <= 0 {
		return nil, fmt.Errorf("%w: paymentID must be positive", ErrInvalidInput)
	}

	var result *Response

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Load under a row lock so a concurrent completion of the
		// same payment waits and then sees the settled state.
		p, err := uc.paymentRepo.GetByID(txCtx, req.PaymentID)
		if err != nil {
			if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
				return ErrPaymentNotFound
			}
			uc.logger.Error("CompletePayment: failed to get payment id=%d: %v", req.PaymentID, err)
			return fmt.Errorf("%w: failed to get payment: %v", ErrInternal, err)
		}
		if !req.Actor.IsAdmin() && req.Actor.UserID != p.UserID {
			return ErrAccessDenied
		}
		if p.Status == domain.PaymentFailed {
			return ErrPaymentFailed
		}

		// 2. Retry of a settled payment: nothing to do, nothing to credit.
		if p.IsCompleted() {
			uc.logger.Info("CompletePayment: payment=%d already completed", p.ID)
			result = &Response{
				PaymentID:     p.ID,
				AppointmentID: p.AppointmentID,
				FinalAmount:   p.FinalAmount,
				Currency:      p.Currency,
				Status:        string(domain.PaymentCompleted),
				PointsEarned:  0,
			}
			return nil
		}

		// 3. Credit points once. The guard flag rides along with the
		// completion and blocks a second credit forever.
		pointsEarned := 0
		if !p.PointsAwarded {
			pointsEarned, err = uc.ledger.Award(txCtx, p.UserID, p.FinalAmount)
			if err != nil {
				uc.logger.Error("CompletePayment: failed to award points user=%d: %v", p.UserID, err)
				return fmt.Errorf("%w: failed to award points: %v", ErrInternal, err)
			}
		}

		if err := uc.paymentRepo.MarkCompleted(txCtx, p.ID, p.PointsAwarded || pointsEarned > 0); err != nil {
			uc.logger.Error("CompletePayment: failed to mark completed id=%d: %v", p.ID, err)
			return fmt.Errorf("%w: failed to mark completed: %v", ErrInternal, err)
		}

		event, err := events.NewPaymentEvent(domain.EventPaymentCompleted, p, pointsEarned)
		if err != nil {
			return fmt.Errorf("%w: failed to build event: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to record event: %v", ErrInternal, err)
		}

		result = &Response{
			PaymentID:     p.ID,
			AppointmentID: p.AppointmentID,
			FinalAmount:   p.FinalAmount,
			Currency:      p.Currency,
			Status:        string(domain.PaymentCompleted),
			PointsEarned:  pointsEarned,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CompletePayment: payment=%d settled, %d points earned", result.PaymentID, result.PointsEarned)
	return result, nil
}
