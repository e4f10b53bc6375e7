package complete_payment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	completePayment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/complete_payment"
)

const (
	msgInvalidID       = "invalid payment id"
	msgPaymentNotFound = "payment not found"
	msgAccessDenied    = "access denied"
	msgPaymentFailed   = "payment has failed"
)

type Handler struct {
	useCase CompletePaymentUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CompletePaymentUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{useCase: useCase, metrics: metrics, logger: logger}
}

// CompletePaymentResponse is the HTTP response model.
type CompletePaymentResponse struct {
	PaymentID     int64  `json:"paymentId"`
	AppointmentID int64  `json:"appointmentId"`
	FinalAmount   string `json:"finalAmount"`
	Currency      string `json:"currency"`
	Status        string `json:"status"`
	PointsEarned  int    `json:"pointsEarned"`
}

// Handle POST /api/v1/payments/{id}/complete
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &completePayment.Request{PaymentID: id, Actor: actor})
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)
		case errors.Is(err, completePayment.ErrAccessDenied):
			h.logger.Warn("POST /payments/%d/complete - access denied: user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, completePayment.ErrPaymentFailed):
			handlers.RespondConflict(w, msgPaymentFailed)
		default:
			h.logger.Error("POST /payments/%d/complete - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	if result.PointsEarned > 0 {
		h.metrics.LoyaltyPointsAwarded(result.PointsEarned)
	}
	h.logger.Info("POST /payments/%d/complete - settled, %d points earned", id, result.PointsEarned)
	handlers.RespondJSON(w, http.StatusOK, CompletePaymentResponse{
		PaymentID:     result.PaymentID,
		AppointmentID: result.AppointmentID,
		FinalAmount:   result.FinalAmount.StringFixed(2),
		Currency:      result.Currency,
		Status:        result.Status,
		PointsEarned:  result.PointsEarned,
	})
}
