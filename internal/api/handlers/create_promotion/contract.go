package create_promotion

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/promotions"
)

type PromotionsService interface {
	Create(ctx context.Context, actor domain.Actor, in promotions.CreateInput) (*domain.Promotion, error)
	List(ctx context.Context, actor domain.Actor) ([]*domain.Promotion, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
