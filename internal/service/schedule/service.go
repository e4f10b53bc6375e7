package schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	scheduleRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/schedule"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// Service resolves the hours the store and its staff are actually open on a
// given date, and lets admins manage them.
type Service struct {
	repo   ScheduleRepository
	logger Logger
}

// NewService creates the schedule service.
func NewService(repo ScheduleRepository, logger Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// EffectiveWindow resolves the bookable window for a date. A date-specific
// exception takes precedence over the standing weekly hours. When a staff
// member is given, their weekly schedule narrows the window; a staff member
// without a schedule row works the store's hours.
func (s *Service) EffectiveWindow(ctx context.Context, date time.Time, staffID *int64) (domain.DayWindow, error) {
	store, err := s.storeWindow(ctx, date)
	if err != nil {
		return domain.DayWindow{}, err
	}
	if !store.IsOpen || staffID == nil {
		return store, nil
	}

	staff, err := s.repo.GetStaffSchedule(ctx, *staffID, date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			return store, nil
		}
		s.logger.Error("EffectiveWindow: failed to get staff schedule staff=%d: %v", *staffID, err)
		return domain.DayWindow{}, fmt.Errorf("%w: EffectiveWindow - staff schedule: %v", ErrInternal, err)
	}

	return store.Intersect(staff.Window()), nil
}

func (s *Service) storeWindow(ctx context.Context, date time.Time) (domain.DayWindow, error) {
	exception, err := s.repo.GetExceptionForDate(ctx, date)
	if err == nil {
		s.logger.Info("EffectiveWindow: using exception for %s (open=%v)",
			date.Format(domain.DateFormat), exception.IsOpen)
		return exception.Window(), nil
	}
	if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		s.logger.Error("EffectiveWindow: failed to get exception for %s: %v", date.Format(domain.DateFormat), err)
		return domain.DayWindow{}, fmt.Errorf("%w: EffectiveWindow - exception: %v", ErrInternal, err)
	}

	hour, err := s.repo.GetStoreHour(ctx, date.Weekday())
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			// No standing hours for this weekday means the store is closed.
			return domain.DayWindow{IsOpen: false}, nil
		}
		s.logger.Error("EffectiveWindow: failed to get store hours for %s: %v", date.Weekday(), err)
		return domain.DayWindow{}, fmt.Errorf("%w: EffectiveWindow - store hours: %v", ErrInternal, err)
	}
	return hour.Window(), nil
}

// SetStoreHour writes the weekly hours for one weekday. Admin only.
func (s *Service) SetStoreHour(ctx context.Context, actor domain.Actor, h *domain.StoreHour) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}
	if err := validateWindow(h.IsOpen, h.OpenTime, h.CloseTime); err != nil {
		return err
	}
	if err := s.repo.UpsertStoreHour(ctx, h); err != nil {
		s.logger.Error("SetStoreHour: repository error for %s: %v", h.Weekday, err)
		return fmt.Errorf("%w: SetStoreHour - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("SetStoreHour: %s open=%v %s-%s", h.Weekday, h.IsOpen, h.OpenTime, h.CloseTime)
	return nil
}

// AddException writes a date-specific override. Admin only.
func (s *Service) AddException(ctx context.Context, actor domain.Actor, e *domain.StoreException) (*domain.StoreException, error) {
	if !actor.IsAdmin() {
		return nil, ErrAccessDenied
	}
	if err := validateWindow(e.IsOpen, e.OpenTime, e.CloseTime); err != nil {
		return nil, err
	}
	created, err := s.repo.CreateException(ctx, e)
	if err != nil {
		s.logger.Error("AddException: repository error for %s: %v", e.Date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: AddException - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("AddException: %s open=%v", e.Date.Format(domain.DateFormat), e.IsOpen)
	return created, nil
}

// SetStaffSchedule writes a staff member's weekly hours. Admin only.
func (s *Service) SetStaffSchedule(ctx context.Context, actor domain.Actor, sched *domain.StaffSchedule) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}
	if err := validateWindow(!sched.IsDayOff, sched.StartTime, sched.EndTime); err != nil {
		return err
	}
	if err := s.repo.UpsertStaffSchedule(ctx, sched); err != nil {
		s.logger.Error("SetStaffSchedule: repository error staff=%d %s: %v", sched.StaffID, sched.Weekday, err)
		return fmt.Errorf("%w: SetStaffSchedule - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("SetStaffSchedule: staff=%d %s dayOff=%v", sched.StaffID, sched.Weekday, sched.IsDayOff)
	return nil
}

func validateWindow(isOpen bool, open, close types.TimeString) error {
	if !isOpen {
		return nil
	}
	if err := open.Validate(); err != nil {
		return fmt.Errorf("%w: open time: %v", ErrInvalidWindow, err)
	}
	if err := close.Validate(); err != nil {
		return fmt.Errorf("%w: close time: %v", ErrInvalidWindow, err)
	}
	if !open.IsBefore(close) {
		return fmt.Errorf("%w: open time %s is not before close time %s", ErrInvalidWindow, open, close)
	}
	return nil
}
