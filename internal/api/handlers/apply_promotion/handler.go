package apply_promotion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	applyPromotion "github.com/tarekyounes123/booking-online-sub001/internal/usecase/apply_promotion"
)

const (
	msgInvalidID           = "invalid appointment id"
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidInput        = "invalid input data"
	msgAppointmentNotFound = "appointment not found"
	msgAccessDenied        = "access denied"
	msgInactiveAppointment = "appointment is cancelled or missed"
	msgAlreadyDiscounted   = "appointment already has a discount"
	msgPromotionNotFound   = "promotion not found"
	msgPromotionInactive   = "promotion is not active"
	msgPromotionExpired    = "promotion is outside its active window"
	msgUsageLimitReached   = "promotion usage limit reached"
)

type Handler struct {
	useCase ApplyPromotionUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase ApplyPromotionUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{useCase: useCase, metrics: metrics, logger: logger}
}

// ApplyPromotionRequest is the HTTP request model.
type ApplyPromotionRequest struct {
	Code string `json:"code"`
}

// ApplyPromotionResponse is the HTTP response model.
type ApplyPromotionResponse struct {
	AppointmentID   int64  `json:"appointmentId"`
	PromotionID     int64  `json:"promotionId"`
	Code            string `json:"code"`
	OriginalPrice   string `json:"originalPrice"`
	DiscountAmount  string `json:"discountAmount"`
	DiscountedPrice string `json:"discountedPrice"`
}

// Handle POST /api/v1/appointments/{id}/promotion
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

	var req ApplyPromotionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/%d/promotion - invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &applyPromotion.Request{
		AppointmentID: id,
		Actor:         actor,
		Code:          req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, applyPromotion.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, applyPromotion.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, applyPromotion.ErrAccessDenied):
			h.logger.Warn("POST /appointments/%d/promotion - access denied: user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, applyPromotion.ErrInactiveAppointment):
			handlers.RespondConflict(w, msgInactiveAppointment)
		case errors.Is(err, applyPromotion.ErrAlreadyDiscounted):
			handlers.RespondConflict(w, msgAlreadyDiscounted)
		case errors.Is(err, applyPromotion.ErrPromotionNotFound):
			handlers.RespondNotFound(w, msgPromotionNotFound)
		case errors.Is(err, applyPromotion.ErrPromotionInactive):
			handlers.RespondBadRequest(w, msgPromotionInactive)
		case errors.Is(err, applyPromotion.ErrPromotionExpired):
			handlers.RespondBadRequest(w, msgPromotionExpired)
		case errors.Is(err, applyPromotion.ErrUsageLimitReached):
			h.logger.Warn("POST /appointments/%d/promotion - usage limit reached: code=%s", id, req.Code)
			handlers.RespondConflict(w, msgUsageLimitReached)
		default:
			h.logger.Error("POST /appointments/%d/promotion - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.PromotionApplied()
	h.logger.Info("POST /appointments/%d/promotion - applied %s by user_id=%d", id, result.Code, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, ApplyPromotionResponse{
		AppointmentID:   result.AppointmentID,
		PromotionID:     result.PromotionID,
		Code:            result.Code,
		OriginalPrice:   result.OriginalPrice.StringFixed(2),
		DiscountAmount:  result.DiscountAmount.StringFixed(2),
		DiscountedPrice: result.DiscountedPrice.StringFixed(2),
	})
}
