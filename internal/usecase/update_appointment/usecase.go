package update_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/events"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	serviceRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/service"
	"github.com/tarekyounes123/booking-online-sub001/internal/scheduling"
	"github.com/tarekyounes123/booking-online-sub001/pkg/types"
)

// UseCase reschedules or annotates an appointment. Unchanged fields carry
// forward; the conflict check only re-runs when the date, time, service or
// staff assignment moved, and always excludes the appointment's own record.
type UseCase struct {
	appointmentRepo AppointmentRepository
	serviceRepo     ServiceRepository
	schedule        ScheduleService
	outboxRepo      OutboxRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase creates the use case.
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	schedule ScheduleService,
	outboxRepo OutboxRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		schedule:        schedule,
		outboxRepo:      outboxRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute applies the update.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("UpdateAppointment: id=%d by user=%d", req.AppointmentID, req.Actor.UserID)

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("UpdateAppointment: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 1. Load and authorize. GetByID takes a row lock inside the
		// transaction, so a concurrent reschedule of the same record
		// waits here.
		appt, err := uc.appointmentRepo.GetByID(txCtx, req.AppointmentID)
		if err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			uc.logger.Error("UpdateAppointment: failed to get appointment id=%d: %v", req.AppointmentID, err)
			return fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
		}
		if !req.Actor.IsAdmin() && req.Actor.UserID != appt.UserID {
			return ErrAccessDenied
		}
		if appt.IsTerminal() {
			return fmt.Errorf("%w: status is %s", ErrNotReschedulable, appt.Status)
		}

		// 2. Merge the request over the stored record.
		moved, serviceChanged, err := applyChanges(appt, req)
		if err != nil {
			return err
		}

		// 3. Only a moved appointment needs the schedule and conflict
		// checks re-run. A service change is always a move: the slot
		// length follows the new service's duration.
		if moved {
			if err := validateDate(appt.Date, uc.timeProvider.Now()); err != nil {
				return err
			}

			svc, err := uc.serviceRepo.GetByID(txCtx, appt.ServiceID)
			if err != nil {
				if errors.Is(err, serviceRepo.ErrServiceNotFound) {
					if serviceChanged {
						return ErrServiceNotFound
					}
					return fmt.Errorf("%w: service id=%d vanished", ErrInternal, appt.ServiceID)
				}
				return fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
			}
			if serviceChanged {
				if !svc.IsBookable() {
					return ErrServiceNotBookable
				}
				// Repricing would strand the promotion usage or
				// redeemed points already attributed to this
				// appointment, so a discounted one keeps its service.
				if appt.HasDiscount() {
					return ErrDiscountApplied
				}
				appt.OriginalPrice = svc.Price
				appt.DiscountedPrice = svc.Price
			}
			end, err := appt.StartTime.AddMinutes(svc.DurationMinutes)
			if err != nil {
				return fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
			}
			appt.EndTime = end

			window, err := uc.schedule.EffectiveWindow(txCtx, appt.Date, appt.StaffID)
			if err != nil {
				return fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
			}
			if err := validateWithinWindow(window, appt.StartTime, appt.EndTime); err != nil {
				return err
			}

			if err := uc.checkConflicts(txCtx, appt); err != nil {
				return err
			}
		}

		// 4. Persist and record the event.
		if err := uc.appointmentRepo.Update(txCtx, appt); err != nil {
			uc.logger.Error("UpdateAppointment: failed to update id=%d: %v", appt.ID, err)
			return fmt.Errorf("%w: failed to update appointment: %v", ErrInternal, err)
		}
		result = appt

		event, err := events.NewAppointmentEvent(domain.EventAppointmentUpdated, appt)
		if err != nil {
			return fmt.Errorf("%w: failed to build event: %v", ErrInternal, err)
		}
		if err := uc.outboxRepo.Insert(txCtx, event); err != nil {
			return fmt.Errorf("%w: failed to record event: %v", ErrInternal, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("UpdateAppointment: id=%d updated", result.ID)
	return toResponse(result), nil
}

func (uc *UseCase) checkConflicts(ctx context.Context, appt *domain.Appointment) error {
	existing, err := uc.appointmentRepo.ListWithFilter(ctx, domain.AppointmentsFilter{
		Date: &appt.Date,
	})
	if err != nil {
		return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	startMin, err := appt.StartTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInternal, err)
	}
	endMin, err := appt.EndTime.Minutes()
	if err != nil {
		return fmt.Errorf("%w: invalid end time: %v", ErrInternal, err)
	}

	conflict, err := scheduling.HasConflict(scheduling.Candidate{
		UserID:  appt.UserID,
		StaffID: appt.StaffID,
		Start:   startMin,
		End:     endMin,
	}, existing, &appt.ID)
	if err != nil {
		return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
	}
	if conflict {
		return ErrTimeConflict
	}
	return nil
}

// applyChanges merges the request into the appointment and reports whether
// the date, time, service or staff assignment moved, and whether the service
// itself changed.
func applyChanges(appt *domain.Appointment, req *Request) (moved, serviceChanged bool, err error) {
	if req.Date != nil && !sameDay(*req.Date, appt.Date) {
		appt.Date = *req.Date
		moved = true
	}
	if req.StartTime != nil {
		start, err := types.ParseTimeString(*req.StartTime)
		if err != nil {
			return false, false, fmt.Errorf("%w: invalid startTime: %v", ErrInvalidInput, err)
		}
		if start != appt.StartTime {
			appt.StartTime = start
			moved = true
		}
	}
	if req.ServiceID != nil && *req.ServiceID != appt.ServiceID {
		appt.ServiceID = *req.ServiceID
		moved = true
		serviceChanged = true
	}
	switch {
	case req.ClearStaff:
		if appt.StaffID != nil {
			appt.StaffID = nil
			moved = true
		}
	case req.StaffID != nil:
		if appt.StaffID == nil || *appt.StaffID != *req.StaffID {
			appt.StaffID = req.StaffID
			moved = true
		}
	}

	if req.PaymentMethod != nil {
		appt.PaymentMethod = req.PaymentMethod
	}
	if req.Notes != nil {
		appt.Notes = req.Notes
	}
	if req.Location != nil {
		appt.Location = req.Location
	}
	return moved, serviceChanged, nil
}

func validateRequest(req *Request) error {
	if req.AppointmentID <= 0 {
		return fmt.Errorf("%w: appointmentID must be positive", ErrInvalidInput)
	}
	if req.Actor.UserID <= 0 {
		return fmt.Errorf("%w: actor is required", ErrInvalidInput)
	}
	if req.ServiceID != nil && *req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.StaffID != nil && req.ClearStaff {
		return fmt.Errorf("%w: staffID and clearStaff are mutually exclusive", ErrInvalidInput)
	}
	if req.Date != nil && req.Date.IsZero() {
		return fmt.Errorf("%w: date must not be zero", ErrInvalidInput)
	}
	return nil
}

func validateDate(date, now time.Time) error {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dateOnly.Before(nowOnly) {
		return ErrDateInPast
	}
	return nil
}

func validateWithinWindow(window domain.DayWindow, start, end types.TimeString) error {
	if !window.IsOpen {
		return ErrClosed
	}
	if start.IsBefore(window.OpenTime) || window.CloseTime.IsBefore(end) {
		return fmt.Errorf("%w: %s-%s is outside %s-%s",
			ErrOutsideWorkingHours, start, end, window.OpenTime, window.CloseTime)
	}
	return nil
}

func sameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
