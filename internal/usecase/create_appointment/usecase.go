package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/events"
	serviceRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/service"
	"github.com/tarekyounes123/booking-online-sub001/internal/scheduling"
)

// UseCase books a new appointment. The conflict check and the insert run in
// one serializable transaction so two concurrent requests for the same slot
// cannot both commit.
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

// Execute books the appointment.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: user=%d, service=%d, date=%s, time=%s",
		req.UserID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Validate and normalize the input.
	start, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateAppointment: date %s rejected", req.Date.Format(domain.DateFormat))
		return nil, err
	}

	// 2. Resolve the service and the slot length it implies.
	svc, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, serviceRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if !svc.IsBookable() {
		return nil, ErrServiceNotBookable
	}

	end, err := start.AddMinutes(svc.DurationMinutes)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to compute end time: %v", ErrInternal, err)
	}

	// 3. Check the slot against the effective working hours.
	window, err := uc.schedule.EffectiveWindow(ctx, req.Date, req.StaffID)
	if err != nil {
		uc.logger.Error("CreateAppointment: failed to resolve working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
	}
	if err := validateWithinWindow(window, start, end); err != nil {
		uc.logger.Warn("CreateAppointment: slot rejected: %v", err)
		return nil, err
	}

	startMin, err := start.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert start time: %v", ErrInternal, err)
	}
	endMin, err := end.Minutes()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to convert end time: %v", ErrInternal, err)
	}

	var result *domain.Appointment

	// 4. Conflict check and insert under a serializable transaction. The
	// date-filtered list takes row locks, so a concurrent booking for the
	// same day serializes behind this one.
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		existing, err := uc.appointmentRepo.ListWithFilter(txCtx, domain.AppointmentsFilter{
			Date: &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to list appointments: %v", err)
			return fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
		}

		conflict, err := scheduling.HasConflict(scheduling.Candidate{
			UserID:  req.UserID,
			StaffID: req.StaffID,
			Start:   startMin,
			End:     endMin,
		}, existing, nil)
		if err != nil {
			return fmt.Errorf("%w: conflict check failed: %v", ErrInternal, err)
		}
		if conflict {
			uc.logger.Warn("CreateAppointment: conflict for user=%d at %s %s", req.UserID,
				req.Date.Format(domain.DateFormat), start)
			return ErrTimeConflict
		}

		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			UserID:          req.UserID,
			ServiceID:       req.ServiceID,
			StaffID:         req.StaffID,
			Date:            req.Date,
			StartTime:       start,
			EndTime:         end,
			Status:          domain.StatusPending,
			OriginalPrice:   svc.Price,
			DiscountAmount:  decimal.Zero,
			DiscountedPrice: svc.Price,
			PaymentMethod:   req.PaymentMethod,
			Notes:           req.Notes,
			Location:        req.Location,
		})
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}
		result = created

		event, err := events.NewAppointmentEvent(domain.EventAppointmentCreated, created)
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

	uc.logger.Info("CreateAppointment: created id=%d for user=%d", result.ID, req.UserID)
	return toResponse(result, svc), nil
}
