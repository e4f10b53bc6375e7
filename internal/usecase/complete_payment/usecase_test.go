package complete_payment

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	paymentRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/payment"
)

type fakePayments struct {
	byID map[int64]*domain.Payment
}

func (f *fakePayments) GetByID(_ context.Context, id int64) (*domain.Payment, error) {
	p, ok := f.byID[id]
	if !ok {
		return nil, paymentRepo.ErrPaymentNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakePayments) MarkCompleted(_ context.Context, id int64, pointsAwarded bool) error {
	p, ok := f.byID[id]
	if !ok {
		return paymentRepo.ErrPaymentNotFound
	}
	now := time.Now()
	p.Status = domain.PaymentCompleted
	p.PaidAt = &now
	p.PointsAwarded = pointsAwarded
	return nil
}

type fakeLedger struct {
	enabled bool
	awarded map[int64]int
}

func (f *fakeLedger) Award(_ context.Context, userID int64, amount decimal.Decimal) (int, error) {
	if !f.enabled {
		return 0, nil
	}
	points := int(amount.IntPart())
	f.awarded[userID] += points
	return points, nil
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

type fixture struct {
	uc       *UseCase
	payments *fakePayments
	ledger   *fakeLedger
	outbox   *fakeOutbox
}

func newFixture() *fixture {
	payments := &fakePayments{byID: map[int64]*domain.Payment{
		1: {
			ID:            1,
			AppointmentID: 5,
			UserID:        10,
			FinalAmount:   decimal.RequireFromString("85.75"),
			Currency:      "USD",
			Status:        domain.PaymentPending,
		},
	}}
	ledger := &fakeLedger{enabled: true, awarded: make(map[int64]int)}
	outbox := &fakeOutbox{}

	uc := NewUseCase(payments, ledger, outbox, passthroughTx{}, nopLogger{})
	return &fixture{uc: uc, payments: payments, ledger: ledger, outbox: outbox}
}

var payer = domain.Actor{UserID: 10, Role: domain.RoleCustomer}

func TestExecute_CompletesAndAwardsPoints(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{PaymentID: 1, Actor: payer})
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentCompleted), resp.Status)
	assert.Equal(t, 85, resp.PointsEarned)
	assert.Equal(t, 85, f.ledger.awarded[10])

	stored := f.payments.byID[1]
	assert.Equal(t, domain.PaymentCompleted, stored.Status)
	assert.True(t, stored.PointsAwarded)
	assert.NotNil(t, stored.PaidAt)

	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, domain.EventPaymentCompleted, f.outbox.events[0].EventType)
}

func TestExecute_RetryDoesNotDoubleAward(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: 1, Actor: payer})
	require.NoError(t, err)

	resp, err := f.uc.Execute(context.Background(), &Request{PaymentID: 1, Actor: payer})
	require.NoError(t, err)

	assert.Zero(t, resp.PointsEarned)
	assert.Equal(t, 85, f.ledger.awarded[10])
	// The retry settled nothing new, so no second event either.
	assert.Len(t, f.outbox.events, 1)
}

func TestExecute_DisabledProgrammeCompletesWithoutPoints(t *testing.T) {
	f := newFixture()
	f.ledger.enabled = false

	resp, err := f.uc.Execute(context.Background(), &Request{PaymentID: 1, Actor: payer})
	require.NoError(t, err)

	assert.Equal(t, string(domain.PaymentCompleted), resp.Status)
	assert.Zero(t, resp.PointsEarned)
	// No points were credited, so the guard flag stays down and a later
	// completion attempt would still be blocked by the completed status.
	assert.False(t, f.payments.byID[1].PointsAwarded)
}

func TestExecute_FailedPaymentRejected(t *testing.T) {
	f := newFixture()
	f.payments.byID[1].Status = domain.PaymentFailed

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: 1, Actor: payer})
	assert.ErrorIs(t, err, ErrPaymentFailed)
}

func TestExecute_StrangerDenied(t *testing.T) {
	f := newFixture()

	stranger := domain.Actor{UserID: 99, Role: domain.RoleCustomer}
	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: 1, Actor: stranger})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_NotFound(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{PaymentID: 404, Actor: payer})
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}
