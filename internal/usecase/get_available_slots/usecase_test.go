package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	serviceRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/service"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

type fakeAppointments struct {
	existing []*domain.Appointment
}

func (f *fakeAppointments) ListWithFilter(_ context.Context, _ domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	return f.existing, nil
}

type fakeServices struct {
	byID map[int64]*domain.Service
}

func (f *fakeServices) GetByID(_ context.Context, id int64) (*domain.Service, error) {
	svc, ok := f.byID[id]
	if !ok {
		return nil, serviceRepo.ErrServiceNotFound
	}
	return svc, nil
}

type fakeSchedule struct {
	window domain.DayWindow
}

func (f *fakeSchedule) EffectiveWindow(context.Context, time.Time, *int64) (domain.DayWindow, error) {
	return f.window, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newFixture(existing []*domain.Appointment) *UseCase {
	appts := &fakeAppointments{existing: existing}
	services := &fakeServices{byID: map[int64]*domain.Service{
		5: {ID: 5, Name: "Massage", DurationMinutes: 60, Price: decimal.NewFromInt(80), IsActive: true},
	}}
	schedule := &fakeSchedule{window: domain.DayWindow{
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("12:00:00"),
	}}
	return NewUseCase(appts, services, schedule, 30, nopLogger{})
}

func request() *Request {
	return &Request{
		ServiceID: 5,
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
	}
}

func slotStarts(resp *Response) []string {
	out := make([]string, 0, len(resp.Slots))
	for _, s := range resp.Slots {
		out = append(out, string(s.StartTime))
	}
	return out
}

func TestExecute_FullDayGrid(t *testing.T) {
	uc := newFixture(nil)

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// 60-minute service on a 09:00-12:00 day at 30-minute steps: the last
	// start that still ends by noon is 11:00.
	assert.Equal(t, []string{"09:00:00", "09:30:00", "10:00:00", "10:30:00", "11:00:00"}, slotStarts(resp))
	assert.Equal(t, types.TimeString("10:00:00"), resp.Slots[0].EndTime)
}

func TestExecute_BookedIntervalRemovesOverlappingSlots(t *testing.T) {
	uc := newFixture([]*domain.Appointment{{
		ID:        1,
		UserID:    10,
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString("10:00:00"),
		EndTime:   types.TimeString("11:00:00"),
	}})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)

	// Everything overlapping [10:00, 11:00) is gone; 09:00 and 11:00 touch
	// it and survive.
	assert.Equal(t, []string{"09:00:00", "11:00:00"}, slotStarts(resp))
}

func TestExecute_CancelledAppointmentFreesTheSlot(t *testing.T) {
	uc := newFixture([]*domain.Appointment{{
		ID:        1,
		UserID:    10,
		Status:    domain.StatusCancelled,
		StartTime: types.TimeString("10:00:00"),
		EndTime:   types.TimeString("11:00:00"),
	}})

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 5)
}

func TestExecute_ClosedDayIsEmptyNotError(t *testing.T) {
	uc := newFixture(nil)
	uc.schedule.(*fakeSchedule).window = domain.DayWindow{IsOpen: false}

	resp, err := uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_CustomStep(t *testing.T) {
	uc := newFixture(nil)

	req := request()
	req.StepMinutes = 60
	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00:00", "10:00:00", "11:00:00"}, slotStarts(resp))
}

func TestExecute_UnknownService(t *testing.T) {
	uc := newFixture(nil)

	req := request()
	req.ServiceID = 404
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_InvalidInput(t *testing.T) {
	uc := newFixture(nil)

	req := request()
	req.ServiceID = 0
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request()
	req.StepMinutes = -15
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
