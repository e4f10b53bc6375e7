package get_payment

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

type PaymentsService interface {
	GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
