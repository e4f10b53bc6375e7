package create_payment

import (
	"context"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/payments"
)

type PaymentsService interface {
	Create(ctx context.Context, actor domain.Actor, in payments.CreateInput) (*domain.Payment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
