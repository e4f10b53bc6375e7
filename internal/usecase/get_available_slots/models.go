package get_available_slots

import (
	"time"

	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// Request asks for the free slots of one service on one date. StaffID narrows
// the answer to a single staff member; StepMinutes of zero uses the
// configured default.
type Request struct {
	ServiceID   int64
	Date        time.Time
	StaffID     *int64
	StepMinutes int
}

// Slot is one bookable interval.
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// Response lists the free slots. An empty list means the day is closed or
// fully booked.
type Response struct {
	ServiceID       int64
	Date            time.Time
	StaffID         *int64
	DurationMinutes int
	Slots           []Slot
}
