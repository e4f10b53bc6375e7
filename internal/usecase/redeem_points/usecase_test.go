package redeem_points

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	"github.com/tarekyounes123/booking-online-sub001/internal/service/loyalty"
)

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

func (f *fakeAppointments) UpdateDiscount(_ context.Context, id int64, discountAmount, discountedPrice decimal.Decimal, promotionID *int64, pointsRedeemed int) error {
	appt := f.byID[id]
	appt.DiscountAmount = discountAmount
	appt.DiscountedPrice = discountedPrice
	appt.PromotionID = promotionID
	appt.PointsRedeemed = pointsRedeemed
	return nil
}

type fakeLedger struct {
	balances map[int64]int
}

func (f *fakeLedger) Redeem(_ context.Context, userID int64, points int) error {
	b, ok := f.balances[userID]
	if !ok {
		return loyalty.ErrUserNotFound
	}
	if b < points {
		return loyalty.ErrInsufficientPoints
	}
	f.balances[userID] = b - points
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

type fixture struct {
	uc     *UseCase
	appts  *fakeAppointments
	ledger *fakeLedger
}

func newFixture() *fixture {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: {
			ID:              1,
			UserID:          10,
			Status:          domain.StatusConfirmed,
			OriginalPrice:   decimal.RequireFromString("50.00"),
			DiscountAmount:  decimal.Zero,
			DiscountedPrice: decimal.RequireFromString("50.00"),
		},
	}}
	ledger := &fakeLedger{balances: map[int64]int{10: 300}}

	// 10 points are worth one currency unit.
	uc := NewUseCase(appts, ledger, passthroughTx{}, 10, nopLogger{})
	return &fixture{uc: uc, appts: appts, ledger: ledger}
}

var owner = domain.Actor{UserID: 10, Role: domain.RoleCustomer}

func TestExecute_RedeemsAndDebits(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Points: 200})
	require.NoError(t, err)

	assert.True(t, resp.DiscountAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, resp.DiscountedPrice.Equal(decimal.RequireFromString("30.00")))
	assert.Equal(t, 100, f.ledger.balances[10])
	assert.Equal(t, 200, f.appts.byID[1].PointsRedeemed)
	assert.Nil(t, f.appts.byID[1].PromotionID)
}

func TestExecute_ExcessivePointsRejectedWithoutDebit(t *testing.T) {
	f := newFixture()
	f.ledger.balances[10] = 1000

	// 600 points are worth 60, over the 50.00 price.
	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Points: 600})
	assert.ErrorIs(t, err, ErrDiscountExceedsPrice)
	assert.Equal(t, 1000, f.ledger.balances[10])
	assert.Zero(t, f.appts.byID[1].PointsRedeemed)
}

func TestExecute_InsufficientBalance(t *testing.T) {
	f := newFixture()
	f.ledger.balances[10] = 50

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Points: 200})
	assert.ErrorIs(t, err, ErrInsufficientPoints)
	assert.Equal(t, 50, f.ledger.balances[10])
}

func TestExecute_SecondDiscountRejected(t *testing.T) {
	f := newFixture()
	promoID := int64(7)
	f.appts.byID[1].PromotionID = &promoID

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Points: 100})
	assert.ErrorIs(t, err, ErrAlreadyDiscounted)
	assert.Equal(t, 300, f.ledger.balances[10])
}

func TestExecute_CancelledAppointmentRejected(t *testing.T) {
	f := newFixture()
	f.appts.byID[1].Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Points: 100})
	assert.ErrorIs(t, err, ErrInactiveAppointment)
}

func TestExecute_StrangerDenied(t *testing.T) {
	f := newFixture()

	stranger := domain.Actor{UserID: 99, Role: domain.RoleCustomer}
	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: stranger, Points: 100})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Points: 0})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.uc.Execute(context.Background(), &Request{AppointmentID: 0, Actor: owner, Points: 10})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
