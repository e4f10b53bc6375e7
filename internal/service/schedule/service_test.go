package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	scheduleRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/schedule"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

type fakeRepo struct {
	hours      map[time.Weekday]*domain.StoreHour
	exceptions map[string]*domain.StoreException
	staff      map[int64]map[time.Weekday]*domain.StaffSchedule

	upsertedHours []*domain.StoreHour
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		hours:      make(map[time.Weekday]*domain.StoreHour),
		exceptions: make(map[string]*domain.StoreException),
		staff:      make(map[int64]map[time.Weekday]*domain.StaffSchedule),
	}
}

func (f *fakeRepo) GetStoreHour(_ context.Context, weekday time.Weekday) (*domain.StoreHour, error) {
	h, ok := f.hours[weekday]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return h, nil
}

func (f *fakeRepo) UpsertStoreHour(_ context.Context, h *domain.StoreHour) error {
	f.hours[h.Weekday] = h
	f.upsertedHours = append(f.upsertedHours, h)
	return nil
}

func (f *fakeRepo) GetExceptionForDate(_ context.Context, date time.Time) (*domain.StoreException, error) {
	e, ok := f.exceptions[date.Format(domain.DateFormat)]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return e, nil
}

func (f *fakeRepo) CreateException(_ context.Context, e *domain.StoreException) (*domain.StoreException, error) {
	e.ID = int64(len(f.exceptions) + 1)
	f.exceptions[e.Date.Format(domain.DateFormat)] = e
	return e, nil
}

func (f *fakeRepo) GetStaffSchedule(_ context.Context, staffID int64, weekday time.Weekday) (*domain.StaffSchedule, error) {
	byDay, ok := f.staff[staffID]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	s, ok := byDay[weekday]
	if !ok {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return s, nil
}

func (f *fakeRepo) UpsertStaffSchedule(_ context.Context, s *domain.StaffSchedule) error {
	if f.staff[s.StaffID] == nil {
		f.staff[s.StaffID] = make(map[time.Weekday]*domain.StaffSchedule)
	}
	f.staff[s.StaffID][s.Weekday] = s
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func mustParseDate(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(domain.DateFormat, s)
	require.NoError(t, err)
	return d
}

func TestEffectiveWindow_StoreHoursOnly(t *testing.T) {
	repo := newFakeRepo()
	// 2026-09-07 is a Monday.
	repo.hours[time.Monday] = &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	}
	svc := NewService(repo, nopLogger{})

	w, err := svc.EffectiveWindow(context.Background(), mustParseDate(t, "2026-09-07"), nil)
	require.NoError(t, err)
	assert.True(t, w.IsOpen)
	assert.Equal(t, types.TimeString("09:00:00"), w.OpenTime)
	assert.Equal(t, types.TimeString("18:00:00"), w.CloseTime)
}

func TestEffectiveWindow_NoHoursMeansClosed(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	w, err := svc.EffectiveWindow(context.Background(), mustParseDate(t, "2026-09-07"), nil)
	require.NoError(t, err)
	assert.False(t, w.IsOpen)
}

func TestEffectiveWindow_ExceptionOverridesStoreHours(t *testing.T) {
	repo := newFakeRepo()
	repo.hours[time.Monday] = &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	}
	repo.exceptions["2026-09-07"] = &domain.StoreException{
		Date:   mustParseDate(t, "2026-09-07"),
		IsOpen: false,
	}
	svc := NewService(repo, nopLogger{})

	w, err := svc.EffectiveWindow(context.Background(), mustParseDate(t, "2026-09-07"), nil)
	require.NoError(t, err)
	assert.False(t, w.IsOpen)
}

func TestEffectiveWindow_StaffScheduleNarrowsWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.hours[time.Monday] = &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	}
	repo.staff[7] = map[time.Weekday]*domain.StaffSchedule{
		time.Monday: {
			StaffID:   7,
			Weekday:   time.Monday,
			StartTime: types.TimeString("10:00:00"),
			EndTime:   types.TimeString("16:00:00"),
		},
	}
	svc := NewService(repo, nopLogger{})

	staffID := int64(7)
	w, err := svc.EffectiveWindow(context.Background(), mustParseDate(t, "2026-09-07"), &staffID)
	require.NoError(t, err)
	assert.True(t, w.IsOpen)
	assert.Equal(t, types.TimeString("10:00:00"), w.OpenTime)
	assert.Equal(t, types.TimeString("16:00:00"), w.CloseTime)
}

func TestEffectiveWindow_StaffWithoutScheduleWorksStoreHours(t *testing.T) {
	repo := newFakeRepo()
	repo.hours[time.Monday] = &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	}
	svc := NewService(repo, nopLogger{})

	staffID := int64(42)
	w, err := svc.EffectiveWindow(context.Background(), mustParseDate(t, "2026-09-07"), &staffID)
	require.NoError(t, err)
	assert.True(t, w.IsOpen)
	assert.Equal(t, types.TimeString("09:00:00"), w.OpenTime)
	assert.Equal(t, types.TimeString("18:00:00"), w.CloseTime)
}

func TestEffectiveWindow_StaffDayOffClosesWindow(t *testing.T) {
	repo := newFakeRepo()
	repo.hours[time.Monday] = &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	}
	repo.staff[7] = map[time.Weekday]*domain.StaffSchedule{
		time.Monday: {StaffID: 7, Weekday: time.Monday, IsDayOff: true},
	}
	svc := NewService(repo, nopLogger{})

	staffID := int64(7)
	w, err := svc.EffectiveWindow(context.Background(), mustParseDate(t, "2026-09-07"), &staffID)
	require.NoError(t, err)
	assert.False(t, w.IsOpen)
}

func TestSetStoreHour_RequiresAdmin(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	err := svc.SetStoreHour(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleCustomer}, &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("09:00:00"),
		CloseTime: types.TimeString("18:00:00"),
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestSetStoreHour_RejectsInvertedWindow(t *testing.T) {
	svc := NewService(newFakeRepo(), nopLogger{})

	err := svc.SetStoreHour(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, &domain.StoreHour{
		Weekday:   time.Monday,
		IsOpen:    true,
		OpenTime:  types.TimeString("18:00:00"),
		CloseTime: types.TimeString("09:00:00"),
	})
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestAddException_ClosedDayNeedsNoTimes(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})

	created, err := svc.AddException(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, &domain.StoreException{
		Date:   mustParseDate(t, "2026-12-25"),
		IsOpen: false,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
}

func TestSetStaffSchedule_UpsertsAndRequiresAdmin(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nopLogger{})
	sched := &domain.StaffSchedule{
		StaffID:   20,
		Weekday:   time.Tuesday,
		StartTime: types.TimeString("10:00:00"),
		EndTime:   types.TimeString("16:00:00"),
	}

	err := svc.SetStaffSchedule(context.Background(), domain.Actor{UserID: 20, Role: domain.RoleStaff}, sched)
	assert.ErrorIs(t, err, ErrAccessDenied)

	err = svc.SetStaffSchedule(context.Background(), domain.Actor{UserID: 1, Role: domain.RoleAdmin}, sched)
	require.NoError(t, err)
	assert.Equal(t, sched, repo.staff[20][time.Tuesday])
}
