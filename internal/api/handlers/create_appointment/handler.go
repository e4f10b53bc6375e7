package create_appointment

import (
	"errors"
	"net/http"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	createAppointment "github.com/tarekyounes123/booking-online-sub001/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgInvalidDate         = "invalid date, expected YYYY-MM-DD"
	msgInvalidInput        = "invalid input data"
	msgServiceNotFound     = "service not found"
	msgServiceNotBookable  = "service is not bookable"
	msgDateInPast          = "date is in the past"
	msgClosed              = "closed on this date"
	msgOutsideWorkingHours = "slot is outside working hours"
	msgTimeConflict        = "time slot conflicts with an existing appointment"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	metrics Metrics
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, metrics Metrics, logger Logger) *Handler {
	return &Handler{useCase: useCase, metrics: metrics, logger: logger}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(actor.UserID)
	if err != nil {
		h.logger.Warn("POST /appointments - failed to parse date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - invalid input: user_id=%d: %v", actor.UserID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createAppointment.ErrServiceNotFound):
			h.logger.Warn("POST /appointments - service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createAppointment.ErrServiceNotBookable):
			h.logger.Warn("POST /appointments - service not bookable: service_id=%d", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotBookable)

		case errors.Is(err, createAppointment.ErrDateInPast):
			h.logger.Warn("POST /appointments - date in past: user_id=%d, date=%s", actor.UserID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrClosed):
			h.logger.Warn("POST /appointments - closed: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgClosed)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - outside working hours: user_id=%d", actor.UserID)
			handlers.RespondBadRequest(w, msgOutsideWorkingHours)

		case errors.Is(err, createAppointment.ErrTimeConflict):
			h.logger.Warn("POST /appointments - conflict: user_id=%d, date=%s, time=%s",
				actor.UserID, req.Date, req.StartTime)
			h.metrics.ConflictRejected()
			handlers.RespondConflict(w, msgTimeConflict)

		default:
			h.logger.Error("POST /appointments - failed: user_id=%d, error=%v", actor.UserID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.metrics.AppointmentCreated()
	h.logger.Info("POST /appointments - created: appointment_id=%d, user_id=%d", result.ID, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
