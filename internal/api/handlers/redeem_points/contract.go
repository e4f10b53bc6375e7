package redeem_points

import (
	"context"

	redeemPoints "github.com/tarekyounes123/booking-online-sub001/internal/usecase/redeem_points"
)

type RedeemPointsUseCase interface {
	Execute(ctx context.Context, req *redeemPoints.Request) (*redeemPoints.Response, error)
}

// Metrics is the counter surface the handler reports to.
type Metrics interface {
	LoyaltyPointsRedeemed(points int)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
