package create_appointment

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
	created  []*domain.Appointment
}

func (f *fakeAppointments) Create(_ context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	appt.ID = int64(len(f.created) + 1)
	appt.CreatedAt = time.Now()
	appt.UpdatedAt = appt.CreatedAt
	f.created = append(f.created, appt)
	return appt, nil
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

type fakeOutbox struct {
	events []*domain.OutboxEvent
}

func (f *fakeOutbox) Insert(_ context.Context, event *domain.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc       *UseCase
	appts    *fakeAppointments
	services *fakeServices
	schedule *fakeSchedule
	outbox   *fakeOutbox
}

func newFixture() *fixture {
	appts := &fakeAppointments{}
	services := &fakeServices{byID: map[int64]*domain.Service{
		5: {ID: 5, Name: "Haircut", DurationMinutes: 60, Price: decimal.RequireFromString("50.00"), IsActive: true},
	}}
	schedule := &fakeSchedule{window: domain.DayWindow{
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	}}
	outbox := &fakeOutbox{}

	uc := NewUseCase(appts, services, schedule, outbox, passthroughTx{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, appts: appts, services: services, schedule: schedule, outbox: outbox}
}

func validRequest() *Request {
	return &Request{
		UserID:    10,
		ServiceID: 5,
		Date:      time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC),
		StartTime: "10:00",
	}
}

func TestExecute_BooksAndNormalizesTime(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, types.TimeString("10:00:00"), resp.StartTime)
	assert.Equal(t, types.TimeString("11:00:00"), resp.EndTime)
	assert.Equal(t, string(domain.StatusPending), resp.Status)
	assert.True(t, resp.OriginalPrice.Equal(decimal.RequireFromString("50.00")))
	assert.True(t, resp.DiscountedPrice.Equal(resp.OriginalPrice))
	assert.True(t, resp.DiscountAmount.IsZero())

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, domain.EventAppointmentCreated, f.outbox.events[0].EventType)
}

func TestExecute_CustomerDoubleBookingRejected(t *testing.T) {
	f := newFixture()
	f.appts.existing = []*domain.Appointment{{
		ID:        99,
		UserID:    10,
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString("10:30:00"),
		EndTime:   types.TimeString("11:30:00"),
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrTimeConflict)
	assert.Empty(t, f.appts.created)
}

func TestExecute_StaffDoubleBookingRejected(t *testing.T) {
	f := newFixture()
	staff := int64(20)
	f.appts.existing = []*domain.Appointment{{
		ID:        99,
		UserID:    11, // different customer, same staff member
		StaffID:   &staff,
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString("10:00:00"),
		EndTime:   types.TimeString("11:00:00"),
	}}

	req := validRequest()
	req.StaffID = &staff
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTimeConflict)
}

func TestExecute_CancelledAppointmentDoesNotBlock(t *testing.T) {
	f := newFixture()
	f.appts.existing = []*domain.Appointment{{
		ID:        99,
		UserID:    10,
		Status:    domain.StatusCancelled,
		StartTime: types.TimeString("10:00:00"),
		EndTime:   types.TimeString("11:00:00"),
	}}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	f := newFixture()
	f.appts.existing = []*domain.Appointment{{
		ID:        99,
		UserID:    10,
		Status:    domain.StatusConfirmed,
		StartTime: types.TimeString("09:00:00"),
		EndTime:   types.TimeString("10:00:00"),
	}}

	// starts exactly when the previous one ends
	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_SlotMustFitWindow(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "17:30" // 60 minute service would run past 18:00
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrOutsideWorkingHours)

	req.StartTime = "17:00" // ends exactly at close, allowed
	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture()
	f.schedule.window = domain.DayWindow{IsOpen: false}

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestExecute_PastDateRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.Date = time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_InactiveServiceRejected(t *testing.T) {
	f := newFixture()
	f.services.byID[5].IsActive = false

	_, err := f.uc.Execute(context.Background(), validRequest())
	assert.ErrorIs(t, err, ErrServiceNotBookable)
}

func TestExecute_UnknownServiceRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.ServiceID = 404
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrServiceNotFound)
}

func TestExecute_BadTimeRejected(t *testing.T) {
	f := newFixture()

	req := validRequest()
	req.StartTime = "25:00"
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
