package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	serviceRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/service"
	"github.com/tarekyounes123/booking-online-sub001/internal/scheduling"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// UseCase computes the free slots for a service on a date. Purely a read:
// the booking transaction re-checks conflicts, so a stale answer here can
// never double-book.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	schedule        ScheduleService
	defaultStep     int
	logger          Logger
}

// NewUseCase creates the use case. defaultStep is the slot grid in minutes
// used when the request does not specify one.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	schedule ScheduleService,
	defaultStep int,
	logger Logger,
) *UseCase {
	if defaultStep <= 0 {
		defaultStep = domain.DefaultSlotStepMinutes
	}
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		schedule:        schedule,
		defaultStep:     defaultStep,
		logger:          logger,
	}
}

// Execute returns the available slots.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Validate the input.
	if req.ServiceID <= 0 {
		return nil, fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.Date.IsZero() {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return nil, fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.StepMinutes < 0 {
		return nil, fmt.Errorf("%w: stepMinutes must not be negative", ErrInvalidInput)
	}

	step := req.StepMinutes
	if step == 0 {
		step = uc.defaultStep
	}

	// 2. Resolve the service duration.
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	resp := &Response{
		ServiceID:       req.ServiceID,
		Date:            req.Date,
		StaffID:         req.StaffID,
		DurationMinutes: svc.DurationMinutes,
		Slots:           []Slot{},
	}

	// 3. Resolve the working hours; a closed day is an empty answer.
	window, err := uc.schedule.EffectiveWindow(ctx, req.Date, req.StaffID)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to resolve working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
	}
	if !window.IsOpen {
		return resp, nil
	}

	open, err := window.OpenTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid open time: %v", ErrInternal, err)
	}
	close, err := window.CloseTime.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: invalid close time: %v", ErrInternal, err)
	}

	// 4. Collect the intervals already taken on that date.
	existing, err := uc.appointmentRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Date:    &req.Date,
		StaffID: req.StaffID,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}
	booked, err := scheduling.BookedIntervals(existing, req.StaffID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Enumerate the grid.
	slots, err := scheduling.ComputeAvailableSlots(open, close, svc.DurationMinutes, booked, step)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	for _, s := range slots {
		startTS, err := types.FromMinutes(s.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slot start: %v", ErrInternal, err)
		}
		endTS, err := types.FromMinutes(s.End)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid slot end: %v", ErrInternal, err)
		}
		resp.Slots = append(resp.Slots, Slot{StartTime: startTS, EndTime: endTS})
	}

	uc.logger.Info("GetAvailableSlots: service=%d date=%s -> %d slots",
		req.ServiceID, req.Date.Format(domain.DateFormat), len(resp.Slots))
	return resp, nil
}
