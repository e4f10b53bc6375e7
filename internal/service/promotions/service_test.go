package promotions

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	promoRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/promotion"
)

type fakePromotions struct {
	created []*domain.Promotion
}

func (f *fakePromotions) Create(_ context.Context, p *domain.Promotion) (*domain.Promotion, error) {
	for _, existing := range f.created {
		if existing.Code == p.Code {
			return nil, promoRepo.ErrDuplicateCode
		}
	}
	p.ID = int64(len(f.created) + 1)
	f.created = append(f.created, p)
	return p, nil
}

func (f *fakePromotions) List(context.Context) ([]*domain.Promotion, error) {
	return f.created, nil
}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

var (
	admin    = domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	customer = domain.Actor{UserID: 2, Role: domain.RoleCustomer}
)

func newSvc(repo *fakePromotions) *Service {
	return NewService(repo, fixedTime{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}, nopLogger{})
}

func validInput() CreateInput {
	return CreateInput{
		Code:          "summer20",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(20),
		StartDate:     "2026-09-01",
		EndDate:       "2026-09-30",
		UsageLimit:    100,
	}
}

func TestCreate_UppercasesCode(t *testing.T) {
	repo := &fakePromotions{}
	svc := newSvc(repo)

	created, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)
	assert.Equal(t, "SUMMER20", created.Code)
	assert.True(t, created.IsActive)
}

func TestCreate_RequiresAdmin(t *testing.T) {
	svc := newSvc(&fakePromotions{})

	_, err := svc.Create(context.Background(), customer, validInput())
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestCreate_DuplicateCode(t *testing.T) {
	repo := &fakePromotions{}
	svc := newSvc(repo)

	_, err := svc.Create(context.Background(), admin, validInput())
	require.NoError(t, err)

	in := validInput()
	in.Code = "SUMMER20" // same code, different casing path
	_, err = svc.Create(context.Background(), admin, in)
	assert.ErrorIs(t, err, ErrDuplicateCode)
}

func TestCreate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(in *CreateInput)
		wantErr error
	}{
		{
			name:    "empty code",
			mutate:  func(in *CreateInput) { in.Code = "  " },
			wantErr: ErrEmptyCode,
		},
		{
			name:    "unknown discount type",
			mutate:  func(in *CreateInput) { in.DiscountType = "bogo" },
			wantErr: ErrInvalidDiscountType,
		},
		{
			name:    "zero value",
			mutate:  func(in *CreateInput) { in.DiscountValue = decimal.Zero },
			wantErr: ErrInvalidDiscountValue,
		},
		{
			name:    "percentage over 100",
			mutate:  func(in *CreateInput) { in.DiscountValue = decimal.NewFromInt(120) },
			wantErr: ErrInvalidDiscountValue,
		},
		{
			name:    "inverted window",
			mutate:  func(in *CreateInput) { in.StartDate, in.EndDate = in.EndDate, in.StartDate },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "unparseable date",
			mutate:  func(in *CreateInput) { in.StartDate = "09/01/2026" },
			wantErr: ErrInvalidWindow,
		},
		{
			name:    "zero usage limit",
			mutate:  func(in *CreateInput) { in.UsageLimit = 0 },
			wantErr: ErrInvalidUsageLimit,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := newSvc(&fakePromotions{}).Create(context.Background(), admin, in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_FixedValueAbove100Allowed(t *testing.T) {
	in := validInput()
	in.DiscountType = "fixed"
	in.DiscountValue = decimal.NewFromInt(150)

	created, err := newSvc(&fakePromotions{}).Create(context.Background(), admin, in)
	require.NoError(t, err)
	assert.Equal(t, domain.DiscountFixed, created.DiscountType)
}

func TestList_RequiresAdmin(t *testing.T) {
	svc := newSvc(&fakePromotions{})

	_, err := svc.List(context.Background(), customer)
	assert.ErrorIs(t, err, ErrAccessDenied)
}
