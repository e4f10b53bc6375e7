package apply_promotion

import (
	"context"

	applyPromotion "github.com/tarekyounes123/booking-online-sub001/internal/usecase/apply_promotion"
)

type ApplyPromotionUseCase interface {
	Execute(ctx context.Context, req *applyPromotion.Request) (*applyPromotion.Response, error)
}

// Metrics is the counter surface the handler reports to.
type Metrics interface {
	PromotionApplied()
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
