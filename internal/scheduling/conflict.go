package scheduling

import (
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// Candidate is a proposed appointment window to check against existing
// appointments on the same date. StaffID may be nil when no staff member is
// assigned yet; the staff dimension is then skipped.
type Candidate struct {
	UserID  int64
	StaffID *int64
	Start   int // minutes since midnight
	End     int
}

// HasConflict checks the candidate against existing same-date appointments
// along two independent dimensions: the customer may not hold two overlapping
// appointments, and the assigned staff member may not be double-booked.
// A conflict on either dimension rejects the candidate. Appointments that no
// longer hold their slot (cancelled, no-show) and the appointment identified
// by excludeID (the candidate's own prior record during an update) are
// ignored.
func HasConflict(candidate Candidate, existing []*domain.Appointment, excludeID *int64) (bool, error) {
	for _, appt := range existing {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if !appt.IsActive() {
			continue
		}

		sameCustomer := appt.UserID == candidate.UserID
		sameStaff := candidate.StaffID != nil && appt.StaffID != nil && *appt.StaffID == *candidate.StaffID
		if !sameCustomer && !sameStaff {
			continue
		}

		start, err := appt.StartTime.Minutes()
		if err != nil {
			return false, fmt.Errorf("scheduling: appointment id=%d has invalid start time: %w", appt.ID, err)
		}
		end, err := appt.EndTime.Minutes()
		if err != nil {
			return false, fmt.Errorf("scheduling: appointment id=%d has invalid end time: %w", appt.ID, err)
		}

		if Overlaps(candidate.Start, candidate.End, start, end) {
			return true, nil
		}
	}
	return false, nil
}

// BookedIntervals extracts the active appointments' windows as intervals,
// optionally restricted to one staff member. Used to feed the slot
// calculator from the same data the conflict detector sees.
func BookedIntervals(appointments []*domain.Appointment, staffID *int64) ([]Interval, error) {
	intervals := make([]Interval, 0, len(appointments))
	for _, appt := range appointments {
		if !appt.IsActive() {
			continue
		}
		if staffID != nil && (appt.StaffID == nil || *appt.StaffID != *staffID) {
			continue
		}

		start, err := appt.StartTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("scheduling: appointment id=%d has invalid start time: %w", appt.ID, err)
		}
		end, err := appt.EndTime.Minutes()
		if err != nil {
			return nil, fmt.Errorf("scheduling: appointment id=%d has invalid end time: %w", appt.ID, err)
		}
		intervals = append(intervals, Interval{Start: start, End: end})
	}
	return intervals, nil
}
