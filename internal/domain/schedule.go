package domain

import (
	"time"

	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// DayWindow is an open/close window for one day, or a closed day.
type DayWindow struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// StoreHour is the standing weekly schedule of the store for one weekday.
type StoreHour struct {
	ID        int64
	Weekday   time.Weekday
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Window returns the day window described by the store hour.
func (h *StoreHour) Window() DayWindow {
	return DayWindow{IsOpen: h.IsOpen, OpenTime: h.OpenTime, CloseTime: h.CloseTime}
}

// StoreException is a date-specific override (holiday, special hours). It
// takes precedence over the standing weekly schedule.
type StoreException struct {
	ID        int64
	Date      time.Time
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
	Reason    *string
}

// Window returns the day window described by the exception.
func (e *StoreException) Window() DayWindow {
	return DayWindow{IsOpen: e.IsOpen, OpenTime: e.OpenTime, CloseTime: e.CloseTime}
}

// StaffSchedule is a staff member's standing weekly schedule for one weekday.
type StaffSchedule struct {
	ID        int64
	StaffID   int64
	Weekday   time.Weekday
	IsDayOff  bool
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Window returns the day window described by the staff schedule.
func (s *StaffSchedule) Window() DayWindow {
	return DayWindow{IsOpen: !s.IsDayOff, OpenTime: s.StartTime, CloseTime: s.EndTime}
}

// Intersect narrows the window to the part covered by both windows.
// Either side being closed closes the result.
func (w DayWindow) Intersect(other DayWindow) DayWindow {
	if !w.IsOpen || !other.IsOpen {
		return DayWindow{IsOpen: false}
	}
	out := w
	if other.OpenTime.IsAfter(out.OpenTime) {
		out.OpenTime = other.OpenTime
	}
	if other.CloseTime.IsBefore(out.CloseTime) {
		out.CloseTime = other.CloseTime
	}
	if !out.OpenTime.IsBefore(out.CloseTime) {
		return DayWindow{IsOpen: false}
	}
	return out
}
