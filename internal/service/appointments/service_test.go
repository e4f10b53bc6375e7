package appointments

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
)

type fakeAppointments struct {
	byID map[int64]*domain.Appointment

	deleted   []int64
	deleteErr error
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointments) ListWithFilter(_ context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	var out []*domain.Appointment
	for _, appt := range f.byID {
		if filter.UserID != nil && appt.UserID != *filter.UserID {
			continue
		}
		if !filter.IncludeInactive && !appt.IsActive() {
			continue
		}
		out = append(out, appt)
	}
	return out, nil
}

func (f *fakeAppointments) UpdateStatus(_ context.Context, id int64, status domain.AppointmentStatus) error {
	appt, ok := f.byID[id]
	if !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointments) Delete(_ context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	if _, ok := f.byID[id]; !ok {
		return apptRepo.ErrAppointmentNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeOutbox struct {
	events []*domain.OutboxEvent
}

func (f *fakeOutbox) Insert(_ context.Context, event *domain.OutboxEvent) error {
	f.events = append(f.events, event)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func staffPtr(id int64) *int64 { return &id }

func newService(appts *fakeAppointments, outbox *fakeOutbox) *Service {
	return NewService(appts, outbox, passthroughTx{}, nopLogger{})
}

func pendingAppointment(id, userID int64, staffID *int64) *domain.Appointment {
	return &domain.Appointment{
		ID:      id,
		UserID:  userID,
		StaffID: staffID,
		Status:  domain.StatusPending,
	}
}

func TestGetByID_OwnerAndAdminCanView(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, staffPtr(20)),
	}}
	svc := newService(appts, &fakeOutbox{})

	_, err := svc.GetByID(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleCustomer}, 1)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), domain.Actor{UserID: 99, Role: domain.RoleAdmin}, 1)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), domain.Actor{UserID: 20, Role: domain.RoleStaff}, 1)
	assert.NoError(t, err)
}

func TestGetByID_StrangerDenied(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, nil),
	}}
	svc := newService(appts, &fakeOutbox{})

	_, err := svc.GetByID(context.Background(), domain.Actor{UserID: 11, Role: domain.RoleCustomer}, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(&fakeAppointments{byID: map[int64]*domain.Appointment{}}, &fakeOutbox{})

	_, err := svc.GetByID(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 404)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListForUser_CustomerCannotListOthers(t *testing.T) {
	svc := newService(&fakeAppointments{byID: map[int64]*domain.Appointment{}}, &fakeOutbox{})

	_, err := svc.ListForUser(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleCustomer}, 11, false)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_ValidTransitionEmitsEvent(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, staffPtr(20)),
	}}
	outbox := &fakeOutbox{}
	svc := newService(appts, outbox)

	updated, err := svc.UpdateStatus(context.Background(), domain.Actor{UserID: 20, Role: domain.RoleStaff}, 1, domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, updated.Status)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, domain.EventAppointmentUpdated, outbox.events[0].EventType)
}

func TestUpdateStatus_CancellationEmitsCancelledEvent(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, nil),
	}}
	outbox := &fakeOutbox{}
	svc := newService(appts, outbox)

	_, err := svc.Cancel(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleCustomer}, 1)
	require.NoError(t, err)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, domain.EventAppointmentCancelled, outbox.events[0].EventType)
}

func TestUpdateStatus_CustomerMayOnlyCancel(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, nil),
	}}
	svc := newService(appts, &fakeOutbox{})

	_, err := svc.UpdateStatus(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleCustomer}, 1, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_StaffNotAssignedDenied(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, staffPtr(20)),
	}}
	svc := newService(appts, &fakeOutbox{})

	_, err := svc.UpdateStatus(context.Background(), domain.Actor{UserID: 21, Role: domain.RoleStaff}, 1, domain.StatusConfirmed)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateStatus_TerminalStateRejected(t *testing.T) {
	appt := pendingAppointment(1, 10, nil)
	appt.Status = domain.StatusCompleted
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{1: appt}}
	svc := newService(appts, &fakeOutbox{})

	_, err := svc.UpdateStatus(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1, domain.StatusCancelled)
	assert.ErrorIs(t, err, ErrAlreadyTerminal)
}

func TestUpdateStatus_UnreachableTransitionRejected(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, nil),
	}}
	svc := newService(appts, &fakeOutbox{})

	// pending cannot jump straight to completed
	_, err := svc.UpdateStatus(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1, domain.StatusCompleted)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDelete_AdminOnly(t *testing.T) {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: pendingAppointment(1, 10, nil),
	}}
	outbox := &fakeOutbox{}
	svc := newService(appts, outbox)

	err := svc.Delete(context.Background(), domain.Actor{UserID: 10, Role: domain.RoleCustomer}, 1)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.Delete(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, appts.deleted)
	require.Len(t, outbox.events, 1)
	assert.Equal(t, domain.EventAppointmentDeleted, outbox.events[0].EventType)
}

func TestDelete_BlockedByReferencingPayment(t *testing.T) {
	appts := &fakeAppointments{
		byID:      map[int64]*domain.Appointment{1: pendingAppointment(1, 10, nil)},
		deleteErr: apptRepo.ErrAppointmentReferenced,
	}
	outbox := &fakeOutbox{}
	svc := newService(appts, outbox)

	err := svc.Delete(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, 1)
	assert.ErrorIs(t, err, ErrPaymentAttached)
	assert.Empty(t, appts.deleted)
	assert.Empty(t, outbox.events)
}
