package redeem_points

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	redeemPoints "github.com/tarekyounes123/booking-online-sub001/internal/usecase/redeem_points"
)

const (
	msgInvalidID            = "invalid appointment id"
	msgInvalidRequestBody   = "invalid request body"
	msgInvalidInput         = "invalid input data"
	msgAppointmentNotFound  = "appointment not found"
	msgAccessDenied         = "access denied"
	msgInactiveAppointment  = "appointment is cancelled or missed"
	msgAlreadyDiscounted    = "appointment already has a discount"
	msgDiscountExceedsPrice = "points exceed the service price"
	msgInsufficientPoints   = "insufficient points balance"
)

type Handler struct {
	useCase RedeemPointsUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase RedeemPointsUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{useCase: useCase, metrics: metrics, logger: logger}
}

// RedeemPointsRequest is the HTTP request model.
type RedeemPointsRequest struct {
	Points int `json:"points"`
}

// RedeemPointsResponse is the HTTP response model.
type RedeemPointsResponse struct {
	AppointmentID   int64  `json:"appointmentId"`
	PointsRedeemed  int    `json:"pointsRedeemed"`
	OriginalPrice   string `json:"originalPrice"`
	DiscountAmount  string `json:"discountAmount"`
	DiscountedPrice string `json:"discountedPrice"`
}

// Handle POST /api/v1/appointments/{id}/points
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

	var req RedeemPointsRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments/%d/points - invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &redeemPoints.Request{
		AppointmentID: id,
		Actor:         actor,
		Points:        req.Points,
	})
	if err != nil {
		switch {
		case errors.Is(err, redeemPoints.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, redeemPoints.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, redeemPoints.ErrAccessDenied):
			h.logger.Warn("POST /appointments/%d/points - access denied: user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, redeemPoints.ErrInactiveAppointment):
			handlers.RespondConflict(w, msgInactiveAppointment)
		case errors.Is(err, redeemPoints.ErrAlreadyDiscounted):
			handlers.RespondConflict(w, msgAlreadyDiscounted)
		case errors.Is(err, redeemPoints.ErrDiscountExceedsPrice):
			handlers.RespondBadRequest(w, msgDiscountExceedsPrice)
		case errors.Is(err, redeemPoints.ErrInsufficientPoints):
			h.logger.Warn("POST /appointments/%d/points - insufficient balance: user_id=%d, points=%d",
				id, actor.UserID, req.Points)
			handlers.RespondConflict(w, msgInsufficientPoints)
		default:
			h.logger.Error("POST /appointments/%d/points - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.LoyaltyPointsRedeemed(result.PointsRedeemed)
	h.logger.Info("POST /appointments/%d/points - redeemed %d points by user_id=%d",
		id, result.PointsRedeemed, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, RedeemPointsResponse{
		AppointmentID:   result.AppointmentID,
		PointsRedeemed:  result.PointsRedeemed,
		OriginalPrice:   result.OriginalPrice.StringFixed(2),
		DiscountAmount:  result.DiscountAmount.StringFixed(2),
		DiscountedPrice: result.DiscountedPrice.StringFixed(2),
	})
}
