package get_payment

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/payments"
)

const (
	msgInvalidID       = "invalid payment id"
	msgPaymentNotFound = "payment not found"
	msgAccessDenied    = "access denied"
)

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// PaymentResponse is the HTTP response model.
type PaymentResponse struct {
	ID             int64   `json:"id"`
	AppointmentID  int64   `json:"appointmentId"`
	UserID         int64   `json:"userId"`
	OriginalAmount string  `json:"originalAmount"`
	DiscountAmount string  `json:"discountAmount"`
	FinalAmount    string  `json:"finalAmount"`
	Currency       string  `json:"currency"`
	PaymentMethod  string  `json:"paymentMethod"`
	Status         string  `json:"status"`
	PaidAt         *string `json:"paidAt,omitempty"`
	CreatedAt      string  `json:"createdAt"`
}

// Handle GET /api/v1/payments/{id}
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

	p, err := h.service.GetByID(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrPaymentNotFound):
			handlers.RespondNotFound(w, msgPaymentNotFound)
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("GET /payments/%d - access denied: user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		default:
			h.logger.Error("GET /payments/%d - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, fromDomain(p))
}

func fromDomain(p *domain.Payment) *PaymentResponse {
	resp := &PaymentResponse{
		ID:             p.ID,
		AppointmentID:  p.AppointmentID,
		UserID:         p.UserID,
		OriginalAmount: p.OriginalAmount.StringFixed(2),
		DiscountAmount: p.DiscountAmount.StringFixed(2),
		FinalAmount:    p.FinalAmount.StringFixed(2),
		Currency:       p.Currency,
		PaymentMethod:  p.PaymentMethod,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt.Format(time.RFC3339),
	}
	if p.PaidAt != nil {
		paidAt := p.PaidAt.UTC().Format(time.RFC3339)
		resp.PaidAt = &paidAt
	}
	return resp
}
