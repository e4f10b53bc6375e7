package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/internal/events"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
)

// Service covers the read and lifecycle side of appointments. Creation and
// rescheduling live in their own usecases because they need slot and conflict
// checks; everything that only moves status or deletes goes through here.
type Service struct {
	appointments AppointmentRepository
	outbox       OutboxRepository
	txManager    TransactionManager
	logger       Logger
}

// NewService creates the appointments service.
func NewService(appointments AppointmentRepository, outbox OutboxRepository, txManager TransactionManager, logger Logger) *Service {
	return &Service{
		appointments: appointments,
		outbox:       outbox,
		txManager:    txManager,
		logger:       logger,
	}
}

// GetByID fetches one appointment, visible to its owner, its assigned staff
// member and admins.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	appt, err := s.fetch(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canView(actor, appt) {
		return nil, ErrAccessDenied
	}
	return appt, nil
}

// ListForUser returns a user's appointments. Customers may only list their
// own; staff and admins may list anyone's.
func (s *Service) ListForUser(ctx context.Context, actor domain.Actor, userID int64, includeInactive bool) ([]*domain.Appointment, error) {
	if actor.Role == domain.RoleCustomer && actor.UserID != userID {
		return nil, ErrAccessDenied
	}

	appts, err := s.appointments.ListWithFilter(ctx, domain.AppointmentsFilter{
		UserID:          &userID,
		IncludeInactive: includeInactive,
	})
	if err != nil {
		s.logger.Error("ListForUser: repository error user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: ListForUser - list: %v", ErrInternal, err)
	}
	return appts, nil
}

// UpdateStatus moves an appointment along the status machine and records the
// matching lifecycle event in the same transaction.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, id int64, next domain.AppointmentStatus) (*domain.Appointment, error) {
	var updated *domain.Appointment

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appt, err := s.fetch(ctx, id)
		if err != nil {
			return err
		}
		if err := authorizeTransition(actor, appt, next); err != nil {
			return err
		}
		if appt.IsTerminal() {
			return fmt.Errorf("%w: status is %s", ErrAlreadyTerminal, appt.Status)
		}
		if !appt.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, next)
		}

		if err := s.appointments.UpdateStatus(ctx, id, next); err != nil {
			s.logger.Error("UpdateStatus: repository error id=%d: %v", id, err)
			return fmt.Errorf("%w: UpdateStatus - update: %v", ErrInternal, err)
		}
		appt.Status = next
		updated = appt

		return s.recordEvent(ctx, eventForStatus(next), appt)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("UpdateStatus: appointment=%d -> %s by user=%d", id, next, actor.UserID)
	return updated, nil
}

// Cancel is the customer-facing shorthand for moving to cancelled.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id int64) (*domain.Appointment, error) {
	return s.UpdateStatus(ctx, actor, id, domain.StatusCancelled)
}

// Delete removes an appointment entirely. Admin only; cancellation is the
// normal path for everyone else.
func (s *Service) Delete(ctx context.Context, actor domain.Actor, id int64) error {
	if !actor.IsAdmin() {
		return ErrAccessDenied
	}

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		appt, err := s.fetch(ctx, id)
		if err != nil {
			return err
		}
		if err := s.appointments.Delete(ctx, id); err != nil {
			if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
				return ErrAppointmentNotFound
			}
			if errors.Is(err, apptRepo.ErrAppointmentReferenced) {
				return ErrPaymentAttached
			}
			s.logger.Error("Delete: repository error id=%d: %v", id, err)
			return fmt.Errorf("%w: Delete - delete: %v", ErrInternal, err)
		}
		return s.recordEvent(ctx, domain.EventAppointmentDeleted, appt)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Delete: appointment=%d removed by admin=%d", id, actor.UserID)
	return nil
}

func (s *Service) fetch(ctx context.Context, id int64) (*domain.Appointment, error) {
	appt, err := s.appointments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("fetch: repository error id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: fetch - get appointment: %v", ErrInternal, err)
	}
	return appt, nil
}

func (s *Service) recordEvent(ctx context.Context, eventType string, appt *domain.Appointment) error {
	event, err := events.NewAppointmentEvent(eventType, appt)
	if err != nil {
		return fmt.Errorf("%w: recordEvent - build event: %v", ErrInternal, err)
	}
	if err := s.outbox.Insert(ctx, event); err != nil {
		return fmt.Errorf("%w: recordEvent - insert event: %v", ErrInternal, err)
	}
	return nil
}

func canView(actor domain.Actor, appt *domain.Appointment) bool {
	if actor.IsAdmin() {
		return true
	}
	if actor.UserID == appt.UserID {
		return true
	}
	return actor.Role == domain.RoleStaff && appt.StaffID != nil && *appt.StaffID == actor.UserID
}

// authorizeTransition applies the role rules: customers may only cancel
// their own appointments, staff may move appointments assigned to them,
// admins may do anything.
func authorizeTransition(actor domain.Actor, appt *domain.Appointment, next domain.AppointmentStatus) error {
	switch actor.Role {
	case domain.RoleAdmin:
		return nil
	case domain.RoleStaff:
		if appt.StaffID != nil && *appt.StaffID == actor.UserID {
			return nil
		}
	case domain.RoleCustomer:
		if appt.UserID == actor.UserID && next == domain.StatusCancelled {
			return nil
		}
	}
	return ErrAccessDenied
}

func eventForStatus(next domain.AppointmentStatus) string {
	if next == domain.StatusCancelled {
		return domain.EventAppointmentCancelled
	}
	return domain.EventAppointmentUpdated
}
