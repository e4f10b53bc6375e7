package create_payment

import (
	"errors"
	"net/http"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/payments"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgAppointmentNotFound = "appointment not found"
	msgAccessDenied        = "access denied"
	msgAlreadyPaid         = "appointment already has a payment"
	msgInactiveAppointment = "appointment is cancelled or missed"
	msgEmptyPaymentMethod  = "payment method is required"
)

type Handler struct {
	service PaymentsService
	logger  Logger
}

func NewHandler(service PaymentsService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// CreatePaymentRequest is the HTTP request model.
type CreatePaymentRequest struct {
	AppointmentID int64  `json:"appointmentId"`
	PaymentMethod string `json:"paymentMethod"`
	Currency      string `json:"currency,omitempty"`
}

// PaymentResponse is the HTTP response model.
type PaymentResponse struct {
	ID             int64  `json:"id"`
	AppointmentID  int64  `json:"appointmentId"`
	UserID         int64  `json:"userId"`
	OriginalAmount string `json:"originalAmount"`
	DiscountAmount string `json:"discountAmount"`
	FinalAmount    string `json:"finalAmount"`
	Currency       string `json:"currency"`
	PaymentMethod  string `json:"paymentMethod"`
	Status         string `json:"status"`
	CreatedAt      string `json:"createdAt"`
}

// Handle POST /api/v1/payments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req CreatePaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /payments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	p, err := h.service.Create(r.Context(), actor, payments.CreateInput{
		AppointmentID: req.AppointmentID,
		PaymentMethod: req.PaymentMethod,
		Currency:      req.Currency,
	})
	if err != nil {
		switch {
		case errors.Is(err, payments.ErrEmptyPaymentMethod):
			handlers.RespondBadRequest(w, msgEmptyPaymentMethod)
		case errors.Is(err, payments.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, payments.ErrAccessDenied):
			h.logger.Warn("POST /payments - access denied: user_id=%d, appointment_id=%d", actor.UserID, req.AppointmentID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, payments.ErrAlreadyPaid):
			handlers.RespondConflict(w, msgAlreadyPaid)
		case errors.Is(err, payments.ErrInactiveAppointment):
			handlers.RespondConflict(w, msgInactiveAppointment)
		default:
			h.logger.Error("POST /payments - failed: appointment_id=%d, error=%v", req.AppointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /payments - created: payment_id=%d, appointment_id=%d", p.ID, p.AppointmentID)
	handlers.RespondJSON(w, http.StatusCreated, fromDomain(p))
}

func fromDomain(p *domain.Payment) *PaymentResponse {
	return &PaymentResponse{
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
}
