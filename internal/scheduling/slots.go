package scheduling

import (
	"errors"
	"fmt"
)

// Slot is a bookable window of exactly the service's duration.
type Slot struct {
	Start int // minutes since midnight
	End   int
}

var (
	// ErrInvalidDuration is returned when the service duration is not positive
	ErrInvalidDuration = errors.New("scheduling: service duration must be positive")

	// ErrInvalidStep is returned when the slot step is not positive
	ErrInvalidStep = errors.New("scheduling: slot step must be positive")
)

// ComputeAvailableSlots enumerates candidate starts from open to close
// stepping by step minutes and keeps every slot of durationMinutes that ends
// by closing time and overlaps no booked interval. The result is ordered
// ascending by start; it is empty when close <= open or nothing fits.
func ComputeAvailableSlots(open, close, durationMinutes int, booked []Interval, step int) ([]Slot, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDuration, durationMinutes)
	}
	if step <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidStep, step)
	}

	slots := make([]Slot, 0)
	if close <= open {
		return slots, nil
	}

	for start := open; start+durationMinutes <= close; start += step {
		end := start + durationMinutes
		if overlapsAny(start, end, booked) {
			continue
		}
		slots = append(slots, Slot{Start: start, End: end})
	}

	return slots, nil
}
