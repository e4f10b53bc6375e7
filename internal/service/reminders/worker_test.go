package reminders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

type fakeAppointmentRepo struct {
	appts       []*domain.Appointment
	listedDates []time.Time
	flagged     []int64
	flagErr     error
}

func (f *fakeAppointmentRepo) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	if filter.Date != nil {
		f.listedDates = append(f.listedDates, *filter.Date)
	}
	return f.appts, nil
}

func (f *fakeAppointmentRepo) SetReminderSent(_ context.Context, id int64) error {
	if f.flagErr != nil {
		return f.flagErr
	}
	f.flagged = append(f.flagged, id)
	return nil
}

type fakeNotifier struct {
	events []string
	err    error
}

func (f *fakeNotifier) Notify(_ context.Context, eventName string, _ interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, eventName)
	return nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func reminderAppt(id int64, sent bool) *domain.Appointment {
	return &domain.Appointment{
		ID:           id,
		UserID:       100,
		Date:         time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC),
		StartTime:    types.TimeString("10:00:00"),
		Status:       domain.StatusConfirmed,
		ReminderSent: sent,
	}
}

func newTestWorker(repo *fakeAppointmentRepo, notifier *fakeNotifier) *Worker {
	w := NewWorker(repo, notifier, 24*time.Hour, time.Minute, nopLogger{})
	w.timer = fixedTime{now: time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)}
	return w
}

func TestSweep_SendsAndFlagsPendingReminders(t *testing.T) {
	repo := &fakeAppointmentRepo{appts: []*domain.Appointment{
		reminderAppt(1, false),
		reminderAppt(2, true),
		reminderAppt(3, false),
	}}
	notifier := &fakeNotifier{}

	err := newTestWorker(repo, notifier).Sweep(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{EventAppointmentReminder, EventAppointmentReminder}, notifier.events)
	assert.Equal(t, []int64{1, 3}, repo.flagged)
}

func TestSweep_TargetsTheLeadDate(t *testing.T) {
	repo := &fakeAppointmentRepo{}

	err := newTestWorker(repo, &fakeNotifier{}).Sweep(context.Background())
	require.NoError(t, err)

	require.Len(t, repo.listedDates, 1)
	assert.Equal(t, time.Date(2026, 3, 11, 0, 0, 0, 0, time.UTC), repo.listedDates[0])
}

func TestSweep_FailedDeliveryLeavesFlagUnset(t *testing.T) {
	repo := &fakeAppointmentRepo{appts: []*domain.Appointment{reminderAppt(1, false)}}
	notifier := &fakeNotifier{err: errors.New("notification service down")}

	err := newTestWorker(repo, notifier).Sweep(context.Background())
	require.NoError(t, err)

	assert.Empty(t, repo.flagged)
}

func TestSweep_FlagFailureDoesNotStopTheSweep(t *testing.T) {
	repo := &fakeAppointmentRepo{
		appts:   []*domain.Appointment{reminderAppt(1, false), reminderAppt(2, false)},
		flagErr: errors.New("db down"),
	}
	notifier := &fakeNotifier{}

	err := newTestWorker(repo, notifier).Sweep(context.Background())
	require.NoError(t, err)

	assert.Len(t, notifier.events, 2)
}
