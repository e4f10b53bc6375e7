package payments

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	paymentRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/payment"
)

type fakePayments struct {
	byAppointment map[int64]*domain.Payment
	nextID        int64
}

func (f *fakePayments) Create(_ context.Context, p *domain.Payment) (*domain.Payment, error) {
	f.nextID++
	p.ID = f.nextID
	f.byAppointment[p.AppointmentID] = p
	return p, nil
}

func (f *fakePayments) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	for _, p := range f.byAppointment {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, paymentRepo.ErrPaymentNotFound
}

func (f *fakePayments) GetByAppointmentID(_ context.Context, appointmentID int64) (*domain.Payment, error) {
	p, ok := f.byAppointment[appointmentID]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	return p, nil
}

type fakeAppointments struct {
	byID map[int64]*domain.Appointment
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	appt, ok := f.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func discountedAppointment() *domain.Appointment {
	return &domain.Appointment{
		ID:              1,
		UserID:          10,
		Status:          domain.StatusConfirmed,
		OriginalPrice:   decimal.RequireFromString("100.00"),
		DiscountAmount:  decimal.RequireFromString("20.00"),
		DiscountedPrice: decimal.RequireFromString("80.00"),
	}
}

func newFixture() (*Service, *fakePayments, *fakeAppointments) {
	payments := &fakePayments{byAppointment: make(map[int64]*domain.Payment)}
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{1: discountedAppointment()}}
	return NewService(payments, appts, nopLogger{}), payments, appts
}

var owner = domain.Actor{UserID: 10, Role: domain.RoleCustomer}

func TestCreate_CarriesAppointmentAmounts(t *testing.T) {
	svc, _, _ := newFixture()

	p, err := svc.Create(context.Background(), owner, CreateInput{AppointmentID: 1, PaymentMethod: "card"})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPending, p.Status)
	assert.True(t, p.OriginalAmount.Equal(decimal.RequireFromString("100.00")))
	assert.True(t, p.DiscountAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, p.FinalAmount.Equal(decimal.RequireFromString("80.00")))
	assert.Equal(t, "USD", p.Currency)
	assert.False(t, p.PointsAwarded)
}

func TestCreate_SecondPaymentRejected(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Create(context.Background(), owner, CreateInput{AppointmentID: 1, PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), owner, CreateInput{AppointmentID: 1, PaymentMethod: "cash"})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
}

func TestCreate_StrangerDenied(t *testing.T) {
	svc, _, _ := newFixture()

	stranger := domain.Actor{UserID: 99, Role: domain.RoleCustomer}
	_, err := svc.Create(context.Background(), stranger, CreateInput{AppointmentID: 1, PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_CancelledAppointmentRejected(t *testing.T) {
	svc, _, appts := newFixture()
	appts.byID[1].Status = domain.StatusCancelled

	_, err := svc.Create(context.Background(), owner, CreateInput{AppointmentID: 1, PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrInactiveAppointment)
}

func TestCreate_MissingAppointment(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Create(context.Background(), owner, CreateInput{AppointmentID: 404, PaymentMethod: "card"})
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestCreate_EmptyMethodRejected(t *testing.T) {
	svc, _, _ := newFixture()

	_, err := svc.Create(context.Background(), owner, CreateInput{AppointmentID: 1, PaymentMethod: "  "})
	assert.ErrorIs(t, err, ErrEmptyPaymentMethod)
}

func TestGetByID_PayerAndAdminOnly(t *testing.T) {
	svc, _, _ := newFixture()

	created, err := svc.Create(context.Background(), owner, CreateInput{AppointmentID: 1, PaymentMethod: "card"})
	require.NoError(t, err)

	_, err = svc.GetByID(context.Background(), owner, created.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, created.ID)
	assert.NoError(t, err)

	_, err = svc.GetByID(context.Background(), domain.Actor{UserID: 99, Role: domain.RoleCustomer}, created.ID)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
