package create_appointment

import (
	"fmt"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

func validateRequest(req *Request) (types.TimeString, error) {
	if req.UserID <= 0 {
		return "", fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return "", fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return "", fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return "", fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	start, err := types.ParseTimeString(req.StartTime)
	if err != nil {
		return "", fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
	}
	return start, nil
}

// validateDate rejects dates before today.
func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}
	return nil
}

// validateWithinWindow checks that [start, end) fits the open window.
// The end may touch the closing time exactly.
func validateWithinWindow(window domain.DayWindow, start, end types.TimeString) error {
	if !window.IsOpen {
		return ErrClosed
	}
	if start.IsBefore(window.OpenTime) || window.CloseTime.IsBefore(end) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s",
			ErrOutsideWorkingHours, start, end, window.OpenTime, window.CloseTime)
	}
	return nil
}
