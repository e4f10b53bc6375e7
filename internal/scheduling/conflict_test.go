package scheduling

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/ptr"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

func appt(id, userID int64, staffID *int64, start, end string, status domain.AppointmentStatus) *domain.Appointment {
	return &domain.Appointment{
		ID:        id,
		UserID:    userID,
		StaffID:   staffID,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
		Status:    status,
	}
}

func TestHasConflict_StaffDimension(t *testing.T) {
	staff := ptr.Ptr(int64(1))
	existing := []*domain.Appointment{
		appt(10, 100, staff, "09:00:00", "10:00:00", domain.StatusConfirmed),
	}

	// Same staff, overlapping window, different customer.
	candidate := Candidate{UserID: 200, StaffID: staff, Start: 570, End: 630} // 09:30-10:30
	conflict, err := HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.True(t, conflict)

	// Different staff and different customer may share the window.
	other := ptr.Ptr(int64(2))
	candidate = Candidate{UserID: 200, StaffID: other, Start: 570, End: 630}
	conflict, err = HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_CustomerDimension(t *testing.T) {
	existing := []*domain.Appointment{
		appt(10, 100, ptr.Ptr(int64(1)), "09:00:00", "10:00:00", domain.StatusPending),
	}

	// Same customer with a different staff member still conflicts.
	candidate := Candidate{UserID: 100, StaffID: ptr.Ptr(int64(2)), Start: 570, End: 630}
	conflict, err := HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.True(t, conflict)

	// No staff assigned: only the customer dimension applies.
	candidate = Candidate{UserID: 300, StaffID: nil, Start: 570, End: 630}
	conflict, err = HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_TouchingWindowsDoNotConflict(t *testing.T) {
	staff := ptr.Ptr(int64(1))
	existing := []*domain.Appointment{
		appt(10, 100, staff, "09:00:00", "10:00:00", domain.StatusConfirmed),
	}

	candidate := Candidate{UserID: 200, StaffID: staff, Start: 600, End: 660} // 10:00-11:00
	conflict, err := HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestHasConflict_ExcludeOwnRecord(t *testing.T) {
	staff := ptr.Ptr(int64(1))
	existing := []*domain.Appointment{
		appt(10, 100, staff, "09:00:00", "10:00:00", domain.StatusConfirmed),
	}

	// A no-op reschedule of appointment 10 to its own window must pass.
	candidate := Candidate{UserID: 100, StaffID: staff, Start: 540, End: 600}
	conflict, err := HasConflict(candidate, existing, ptr.Ptr(int64(10)))
	require.NoError(t, err)
	assert.False(t, conflict)

	// Without the exclusion the same candidate conflicts with itself.
	conflict, err = HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestHasConflict_InactiveAppointmentsIgnored(t *testing.T) {
	staff := ptr.Ptr(int64(1))
	existing := []*domain.Appointment{
		appt(10, 100, staff, "09:00:00", "10:00:00", domain.StatusCancelled),
		appt(11, 100, staff, "09:00:00", "10:00:00", domain.StatusNoShow),
	}

	candidate := Candidate{UserID: 100, StaffID: staff, Start: 540, End: 600}
	conflict, err := HasConflict(candidate, existing, nil)
	require.NoError(t, err)
	assert.False(t, conflict)
}

func TestBookedIntervals_FiltersByStaff(t *testing.T) {
	s1 := ptr.Ptr(int64(1))
	s2 := ptr.Ptr(int64(2))
	appointments := []*domain.Appointment{
		appt(1, 100, s1, "09:00:00", "09:30:00", domain.StatusConfirmed),
		appt(2, 101, s2, "10:00:00", "10:30:00", domain.StatusConfirmed),
		appt(3, 102, s1, "11:00:00", "11:30:00", domain.StatusCancelled),
		appt(4, 103, nil, "12:00:00", "12:30:00", domain.StatusPending),
	}

	intervals, err := BookedIntervals(appointments, s1)
	require.NoError(t, err)
	require.Len(t, intervals, 1)
	assert.Equal(t, Interval{Start: 540, End: 570}, intervals[0])

	intervals, err = BookedIntervals(appointments, nil)
	require.NoError(t, err)
	assert.Len(t, intervals, 3) // cancelled one dropped
}
