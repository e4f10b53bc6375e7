package domain

// Time and date formats used across the API and storage.
const (
	TimeFormat      = "15:04:05"   // HH:MM:SS, seconds mandatory in storage
	ShortTimeFormat = "15:04"      // accepted on input, expanded with :00
	DateFormat      = "2006-01-02" // YYYY-MM-DD, no time component
)

// Booking defaults.
const (
	DefaultSlotStepMinutes = 30
	MaxNotesLength         = 500
	MaxLocationLength      = 255
)

// Loyalty defaults.
const (
	// DefaultPointsPerUnit is the redemption rate: 10 points = 1 currency unit.
	DefaultPointsPerUnit = 10
)

// InactiveStatuses are excluded when counting overlaps for availability and
// conflict checks.
var InactiveStatuses = []AppointmentStatus{
	StatusCancelled,
	StatusNoShow,
}

// ActiveStatuses hold a time slot.
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
