package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/psqlbuilder"
	"github.com/tarekyounes123/booking-online-sub001/pkg/txmanager"
)

// Repository persists store hours, date exceptions and staff schedules.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates the schedule repository.
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetStoreHour fetches the standing store hours for one weekday.
func (r *Repository) GetStoreHour(ctx context.Context, weekday time.Weekday) (*domain.StoreHour, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "weekday", "is_open", "open_time", "close_time").
		From("store_hours").
		Where(squirrel.Eq{"weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStoreHour - build select query: %v", ErrBuildQuery, err)
	}

	var h domain.StoreHour
	var wd int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&h.ID, &wd, &h.IsOpen, &h.OpenTime, &h.CloseTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStoreHour - scan store hour: %v", ErrScanRow, err)
	}
	h.Weekday = time.Weekday(wd)
	return &h, nil
}

// UpsertStoreHour writes the store hours for one weekday.
func (r *Repository) UpsertStoreHour(ctx context.Context, h *domain.StoreHour) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("store_hours").
		Columns("weekday", "is_open", "open_time", "close_time").
		Values(int(h.Weekday), h.IsOpen, h.OpenTime, h.CloseTime).
		Suffix("ON CONFLICT (weekday) DO UPDATE SET is_open = EXCLUDED.is_open, open_time = EXCLUDED.open_time, close_time = EXCLUDED.close_time").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertStoreHour - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertStoreHour - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// GetExceptionForDate fetches the date-specific override for one date, if any.
func (r *Repository) GetExceptionForDate(ctx context.Context, date time.Time) (*domain.StoreException, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "date", "is_open", "open_time", "close_time", "reason").
		From("store_exceptions").
		Where(squirrel.Eq{"date": date}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionForDate - build select query: %v", ErrBuildQuery, err)
	}

	var e domain.StoreException
	err = executor.QueryRowContext(ctx, query, args...).Scan(&e.ID, &e.Date, &e.IsOpen, &e.OpenTime, &e.CloseTime, &e.Reason)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetExceptionForDate - scan exception: %v", ErrScanRow, err)
	}
	return &e, nil
}

// CreateException inserts a date-specific override.
func (r *Repository) CreateException(ctx context.Context, e *domain.StoreException) (*domain.StoreException, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("store_exceptions").
		Columns("date", "is_open", "open_time", "close_time", "reason").
		Values(e.Date, e.IsOpen, e.OpenTime, e.CloseTime, e.Reason).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateException - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&e.ID); err != nil {
		return nil, fmt.Errorf("%w: CreateException - execute insert: %v", ErrExecQuery, err)
	}
	return e, nil
}

// GetStaffSchedule fetches one staff member's standing hours for a weekday.
func (r *Repository) GetStaffSchedule(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.StaffSchedule, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "staff_id", "weekday", "is_day_off", "start_time", "end_time").
		From("staff_schedules").
		Where(squirrel.Eq{"staff_id": staffID, "weekday": int(weekday)}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.StaffSchedule
	var wd int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.ID, &s.StaffID, &wd, &s.IsDayOff, &s.StartTime, &s.EndTime)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetStaffSchedule - scan staff schedule: %v", ErrScanRow, err)
	}
	s.Weekday = time.Weekday(wd)
	return &s, nil
}

// UpsertStaffSchedule writes one staff member's hours for a weekday.
func (r *Repository) UpsertStaffSchedule(ctx context.Context, s *domain.StaffSchedule) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("staff_schedules").
		Columns("staff_id", "weekday", "is_day_off", "start_time", "end_time").
		Values(s.StaffID, int(s.Weekday), s.IsDayOff, s.StartTime, s.EndTime).
		Suffix("ON CONFLICT (staff_id, weekday) DO UPDATE SET is_day_off = EXCLUDED.is_day_off, start_time = EXCLUDED.start_time, end_time = EXCLUDED.end_time").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpsertStaffSchedule - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: UpsertStaffSchedule - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}
