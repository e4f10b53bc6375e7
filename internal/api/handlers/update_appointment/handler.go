package update_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	updateAppointment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/update_appointment"
)

const (
	msgInvalidID           = "invalid appointment id"
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid date, expected YYYY-MM-DD"
	msgInvalidInput        = "invalid input data"
	msgAppointmentNotFound = "appointment not found"
	msgAccessDenied        = "access denied"
	msgNotReschedulable    = "appointment can no longer be changed"
	msgServiceNotFound     = "service not found"
	msgServiceNotBookable  = "service is not bookable"
	msgDiscountApplied     = "service cannot change after a discount was applied"
	msgDateInPast          = "date is in the past"
	msgClosed              = "closed on this date"
	msgOutsideWorkingHours = "slot is outside working hours"
	msgTimeConflict        = "time slot conflicts with an existing appointment"
)

type Handler struct {
	useCase UpdateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase UpdateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// Handle PATCH /api/v1/appointments/{id}
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

	var req UpdateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/%d - invalid request body: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(id, actor)
	if err != nil {
		h.logger.Warn("PATCH /appointments/%d - failed to parse date: %v", id, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, updateAppointment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, updateAppointment.ErrAppointmentNotFound):
			handlers.RespondNotFound(w, msgAppointmentNotFound)
		case errors.Is(err, updateAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/%d - access denied: user_id=%d", id, actor.UserID)
			handlers.RespondForbidden(w, msgAccessDenied)
		case errors.Is(err, updateAppointment.ErrNotReschedulable):
			handlers.RespondConflict(w, msgNotReschedulable)
		case errors.Is(err, updateAppointment.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		case errors.Is(err, updateAppointment.ErrServiceNotBookable):
			handlers.RespondBadRequest(w, msgServiceNotBookable)
		case errors.Is(err, updateAppointment.ErrDiscountApplied):
			handlers.RespondConflict(w, msgDiscountApplied)
		case errors.Is(err, updateAppointment.ErrDateInPast):
			handlers.RespondBadRequest(w, msgDateInPast)
		case errors.Is(err, updateAppointment.ErrClosed):
			handlers.RespondBadRequest(w, msgClosed)
		case errors.Is(err, updateAppointment.ErrOutsideWorkingHours):
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)
		case errors.Is(err, updateAppointment.ErrTimeConflict):
			h.logger.Warn("PATCH /appointments/%d - conflict: user_id=%d", id, actor.UserID)
			handlers.RespondConflict(w, msgTimeConflict)
		default:
			h.logger.Error("PATCH /appointments/%d - failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/%d - updated by user_id=%d", id, actor.UserID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
