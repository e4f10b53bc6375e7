package complete_payment

import (
	"context"

	completePayment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/complete_payment"
)

type CompletePaymentUseCase interface {
	Execute(ctx context.Context, req *completePayment.Request) (*completePayment.Response, error)
}

// Metrics is the counter surface the handler reports to.
type Metrics interface {
	LoyaltyPointsAwarded(points int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
