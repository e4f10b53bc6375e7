package manage_schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// StoreHourRequest sets the standing hours for one weekday. Times are
// required only when the day is open.
type StoreHourRequest struct {
	Weekday   string `json:"weekday"`
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

// ExceptionRequest overrides the hours for one date.
type ExceptionRequest struct {
	Date      string  `json:"date"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  string  `json:"openTime,omitempty"`
	CloseTime string  `json:"closeTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

// StaffScheduleRequest sets a staff member's standing hours for one weekday.
type StaffScheduleRequest struct {
	StaffID   int64  `json:"staffId"`
	Weekday   string `json:"weekday"`
	IsDayOff  bool   `json:"isDayOff"`
	StartTime string `json:"startTime,omitempty"`
	EndTime   string `json:"endTime,omitempty"`
}

// ExceptionResponse is the stored override.
type ExceptionResponse struct {
	ID        int64   `json:"id"`
	Date      string  `json:"date"`
	IsOpen    bool    `json:"isOpen"`
	OpenTime  string  `json:"openTime,omitempty"`
	CloseTime string  `json:"closeTime,omitempty"`
	Reason    *string `json:"reason,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekday(s string) (time.Weekday, error) {
	day, ok := weekdays[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return day, nil
}

// parseWindow normalizes the open/close pair. Times are only parsed for an
// open window; a closed day carries none.
func parseWindow(isOpen bool, open, close string) (types.TimeString, types.TimeString, error) {
	if !isOpen {
		return "", "", nil
	}
	openTS, err := types.ParseTimeString(open)
	if err != nil {
		return "", "", fmt.Errorf("invalid openTime: %v", err)
	}
	closeTS, err := types.ParseTimeString(close)
	if err != nil {
		return "", "", fmt.Errorf("invalid closeTime: %v", err)
	}
	return openTS, closeTS, nil
}

// ToDomain converts the HTTP request into the domain model.
func (r *StoreHourRequest) ToDomain() (*domain.StoreHour, error) {
	day, err := parseWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}
	open, close, err := parseWindow(r.IsOpen, r.OpenTime, r.CloseTime)
	if err != nil {
		return nil, err
	}
	return &domain.StoreHour{
		Weekday:   day,
		IsOpen:    r.IsOpen,
		OpenTime:  open,
		CloseTime: close,
	}, nil
}

// ToDomain converts the HTTP request into the domain model.
func (r *ExceptionRequest) ToDomain() (*domain.StoreException, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date, expected YYYY-MM-DD")
	}
	open, close, err := parseWindow(r.IsOpen, r.OpenTime, r.CloseTime)
	if err != nil {
		return nil, err
	}
	return &domain.StoreException{
		Date:      date,
		IsOpen:    r.IsOpen,
		OpenTime:  open,
		CloseTime: close,
		Reason:    r.Reason,
	}, nil
}

// ToDomain converts the HTTP request into the domain model.
func (r *StaffScheduleRequest) ToDomain() (*domain.StaffSchedule, error) {
	day, err := parseWeekday(r.Weekday)
	if err != nil {
		return nil, err
	}
	start, end, err := parseWindow(!r.IsDayOff, r.StartTime, r.EndTime)
	if err != nil {
		return nil, err
	}
	return &domain.StaffSchedule{
		StaffID:   r.StaffID,
		Weekday:   day,
		IsDayOff:  r.IsDayOff,
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromDomainException converts the stored override into the HTTP model.
func FromDomainException(e *domain.StoreException) *ExceptionResponse {
	return &ExceptionResponse{
		ID:        e.ID,
		Date:      e.Date.Format(domain.DateFormat),
		IsOpen:    e.IsOpen,
		OpenTime:  e.OpenTime.String(),
		CloseTime: e.CloseTime.String(),
		Reason:    e.Reason,
	}
}
