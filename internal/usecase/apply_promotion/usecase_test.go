package apply_promotion

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	promoRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/promotion"
)

type fakeAppointments struct {
	mu   sync.Mutex
	byID map[int64]*domain.Appointment
}

func (f *fakeAppointments) GetByID(_ context.Context, id int64) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.byID[id]
	if !ok {
		return nil, apptRepo.ErrAppointmentNotFound
	}
	return appt, nil
}

func (f *fakeAppointments) UpdateDiscount(_ context.Context, id int64, discountAmount, discountedPrice decimal.Decimal, promotionID *int64, pointsRedeemed int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt := f.byID[id]
	appt.DiscountAmount = discountAmount
	appt.DiscountedPrice = discountedPrice
	appt.PromotionID = promotionID
	appt.PointsRedeemed = pointsRedeemed
	return nil
}

type fakePromotions struct {
	mu     sync.Mutex
	byCode map[string]*domain.Promotion
}

func (f *fakePromotions) GetByCode(_ context.Context, code string) (*domain.Promotion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	promo, ok := f.byCode[code]
	if !ok {
		return nil, promoRepo.ErrPromotionNotFound
	}
	promoCopy := *promo
	return &promoCopy, nil
}

func (f *fakePromotions) IncrementUsage(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, promo := range f.byCode {
		if promo.ID == id {
			if promo.TimesUsed >= promo.UsageLimit {
				return promoRepo.ErrUsageExhausted
			}
			promo.TimesUsed++
			return nil
		}
	}
	return promoRepo.ErrPromotionNotFound
}

type fakeOutbox struct {
	mu     sync.Mutex
	events []*domain.OutboxEvent
}

func (f *fakeOutbox) Insert(_ context.Context, event *domain.OutboxEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	return nil
}

type passthroughTx struct{}

func (passthroughTx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixture struct {
	uc     *UseCase
	appts  *fakeAppointments
	promos *fakePromotions
	outbox *fakeOutbox
}

func newFixture() *fixture {
	appts := &fakeAppointments{byID: map[int64]*domain.Appointment{
		1: {
			ID:              1,
			UserID:          10,
			Status:          domain.StatusConfirmed,
			OriginalPrice:   decimal.RequireFromString("100.00"),
			DiscountAmount:  decimal.Zero,
			DiscountedPrice: decimal.RequireFromString("100.00"),
		},
	}}
	promos := &fakePromotions{byCode: map[string]*domain.Promotion{
		"SUMMER20": {
			ID:            7,
			Code:          "SUMMER20",
			DiscountType:  domain.DiscountPercentage,
			DiscountValue: decimal.NewFromInt(20),
			StartDate:     time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			EndDate:       time.Date(2026, 9, 30, 0, 0, 0, 0, time.UTC),
			UsageLimit:    2,
			IsActive:      true,
		},
	}}
	outbox := &fakeOutbox{}

	uc := NewUseCase(appts, promos, outbox, passthroughTx{}, nopLogger{})
	uc.timeProvider = fixedTime{now: time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)}

	return &fixture{uc: uc, appts: appts, promos: promos, outbox: outbox}
}

var owner = domain.Actor{UserID: 10, Role: domain.RoleCustomer}

func TestExecute_AppliesPercentageDiscount(t *testing.T) {
	f := newFixture()

	resp, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "summer20"})
	require.NoError(t, err)

	assert.True(t, resp.DiscountAmount.Equal(decimal.RequireFromString("20.00")))
	assert.True(t, resp.DiscountedPrice.Equal(decimal.RequireFromString("80.00")))
	assert.Equal(t, 1, f.promos.byCode["SUMMER20"].TimesUsed)
	require.Len(t, f.outbox.events, 1)
	assert.Equal(t, domain.EventPromotionApplied, f.outbox.events[0].EventType)
}

func TestExecute_UsageLimitEnforced(t *testing.T) {
	f := newFixture()
	f.promos.byCode["SUMMER20"].TimesUsed = 2 // at the limit

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrUsageLimitReached)
	assert.True(t, f.appts.byID[1].DiscountAmount.IsZero())
}

func TestExecute_SecondDiscountRejected(t *testing.T) {
	f := newFixture()
	promoID := int64(3)
	f.appts.byID[1].PromotionID = &promoID
	f.appts.byID[1].DiscountAmount = decimal.NewFromInt(5)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrAlreadyDiscounted)
	assert.Zero(t, f.promos.byCode["SUMMER20"].TimesUsed)
}

func TestExecute_PointsRedemptionBlocksPromotion(t *testing.T) {
	f := newFixture()
	f.appts.byID[1].PointsRedeemed = 100
	f.appts.byID[1].DiscountAmount = decimal.NewFromInt(10)

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrAlreadyDiscounted)
}

func TestExecute_ExpiredWindow(t *testing.T) {
	f := newFixture()
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)}

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrPromotionExpired)
}

func TestExecute_InactivePromotion(t *testing.T) {
	f := newFixture()
	f.promos.byCode["SUMMER20"].IsActive = false

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrPromotionInactive)
}

func TestExecute_UnknownCode(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "NOPE"})
	assert.ErrorIs(t, err, ErrPromotionNotFound)
}

func TestExecute_CancelledAppointmentRejected(t *testing.T) {
	f := newFixture()
	f.appts.byID[1].Status = domain.StatusCancelled

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrInactiveAppointment)
}

func TestExecute_EventReportsConsumedUsage(t *testing.T) {
	f := newFixture()

	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: owner, Code: "SUMMER20"})
	require.NoError(t, err)

	require.Len(t, f.outbox.events, 1)
	var payload struct {
		TimesUsed int `json:"timesUsed"`
	}
	require.NoError(t, json.Unmarshal(f.outbox.events[0].Payload, &payload))
	assert.Equal(t, 1, payload.TimesUsed)
}

func TestExecute_ConcurrentUsageNeverExceedsLimit(t *testing.T) {
	f := newFixture()
	f.promos.byCode["SUMMER20"].UsageLimit = 1

	const attempts = 50
	for i := int64(1); i <= attempts; i++ {
		f.appts.byID[i] = &domain.Appointment{
			ID:              i,
			UserID:          10,
			Status:          domain.StatusConfirmed,
			OriginalPrice:   decimal.RequireFromString("100.00"),
			DiscountAmount:  decimal.Zero,
			DiscountedPrice: decimal.RequireFromString("100.00"),
		}
	}

	errs := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := int64(1); i <= attempts; i++ {
		wg.Add(1)
		go func(apptID int64) {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: apptID, Actor: owner, Code: "SUMMER20"})
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var succeeded, exhausted int
	for err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrUsageLimitReached):
			exhausted++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, attempts-1, exhausted)
	assert.Equal(t, 1, f.promos.byCode["SUMMER20"].TimesUsed)
}

func TestExecute_StrangerDenied(t *testing.T) {
	f := newFixture()

	stranger := domain.Actor{UserID: 99, Role: domain.RoleCustomer}
	_, err := f.uc.Execute(context.Background(), &Request{AppointmentID: 1, Actor: stranger, Code: "SUMMER20"})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
