package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/api/handlers"
	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	getAvailableSlots "github.com/tarekyounes123/booking-online-sub001/internal/usecase/get_available_slots"
)

const (
	msgInvalidServiceID = "invalid serviceId query parameter"
	msgInvalidDate      = "invalid date, expected YYYY-MM-DD"
	msgInvalidStaffID   = "invalid staffId query parameter"
	msgInvalidStep      = "invalid stepMinutes query parameter"
	msgInvalidInput     = "invalid input data"
	msgServiceNotFound  = "service not found"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{useCase: useCase, logger: logger}
}

// SlotView is one bookable interval.
type SlotView struct {
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// SlotsResponse is the HTTP response model.
type SlotsResponse struct {
	ServiceID       int64      `json:"serviceId"`
	Date            string     `json:"date"`
	StaffID         *int64     `json:"staffId,omitempty"`
	DurationMinutes int        `json:"durationMinutes"`
	Slots           []SlotView `json:"slots"`
}

// Handle GET /api/v1/available-slots?serviceId=5&date=2026-09-07&staffId=2&stepMinutes=30
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	serviceID, err := strconv.ParseInt(query.Get("serviceId"), 10, 64)
	if err != nil || serviceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date, err := time.Parse(domain.DateFormat, query.Get("date"))
	if err != nil {
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailableSlots.Request{ServiceID: serviceID, Date: date}

	if raw := query.Get("staffId"); raw != "" {
		staffID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || staffID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		req.StaffID = &staffID
	}
	if raw := query.Get("stepMinutes"); raw != "" {
		step, err := strconv.Atoi(raw)
		if err != nil || step <= 0 {
			handlers.RespondBadRequest(w, msgInvalidStep)
			return
		}
		req.StepMinutes = step
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			handlers.RespondNotFound(w, msgServiceNotFound)
		default:
			h.logger.Error("GET /available-slots - failed: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	resp := SlotsResponse{
		ServiceID:       result.ServiceID,
		Date:            result.Date.Format(domain.DateFormat),
		StaffID:         result.StaffID,
		DurationMinutes: result.DurationMinutes,
		Slots:           make([]SlotView, 0, len(result.Slots)),
	}
	for _, s := range result.Slots {
		resp.Slots = append(resp.Slots, SlotView{StartTime: s.StartTime.String(), EndTime: s.EndTime.String()})
	}

	handlers.RespondJSON(w, http.StatusOK, resp)
}
