package manage_schedule

import (
	"errors"
	"net/http"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/api/middleware"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/schedule"
)

const (
	msgInvalidBody  = "invalid request body"
	msgAccessDenied = "access denied"
)

type Handler struct {
	service ScheduleService
	logger  Logger
}

func NewHandler(service ScheduleService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// HandleSetStoreHour PUT /api/v1/schedule/hours
func (h *Handler) HandleSetStoreHour(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req StoreHourRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	hour, err := req.ToDomain()
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	if err := h.service.SetStoreHour(r.Context(), actor, hour); err != nil {
		h.respondServiceError(w, "PUT /schedule/hours", actor.UserID, err)
		return
	}

	h.logger.Info("PUT /schedule/hours - %s set by user_id=%d", hour.Weekday, actor.UserID)
	handlers.RespondNoContent(w)
}

// HandleAddException POST /api/v1/schedule/exceptions
func (h *Handler) HandleAddException(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req ExceptionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	exception, err := req.ToDomain()
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	created, err := h.service.AddException(r.Context(), actor, exception)
	if err != nil {
		h.respondServiceError(w, "POST /schedule/exceptions", actor.UserID, err)
		return
	}

	h.logger.Info("POST /schedule/exceptions - %s added by user_id=%d", req.Date, actor.UserID)
	handlers.RespondJSON(w, http.StatusCreated, FromDomainException(created))
}

// HandleSetStaffSchedule PUT /api/v1/schedule/staff
func (h *Handler) HandleSetStaffSchedule(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.ActorFromContext(r.Context())
	if !ok {
		handlers.RespondError(w, http.StatusUnauthorized, "missing identity")
		return
	}

	var req StaffScheduleRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	if req.StaffID <= 0 {
		handlers.RespondBadRequest(w, "staffId must be positive")
		return
	}
	sched, err := req.ToDomain()
	if err != nil {
		handlers.RespondBadRequest(w, err.Error())
		return
	}

	if err := h.service.SetStaffSchedule(r.Context(), actor, sched); err != nil {
		h.respondServiceError(w, "PUT /schedule/staff", actor.UserID, err)
		return
	}

	h.logger.Info("PUT /schedule/staff - staff_id=%d %s set by user_id=%d", sched.StaffID, sched.Weekday, actor.UserID)
	handlers.RespondNoContent(w)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, schedule.ErrAccessDenied):
		h.logger.Warn("%s - access denied: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgAccessDenied)
	case errors.Is(err, schedule.ErrInvalidWindow):
		handlers.RespondBadRequest(w, err.Error())
	default:
		h.logger.Error("%s - failed: %v", route, err)
		handlers.RespondInternalError(w)
	}
}
