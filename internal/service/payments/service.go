package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	apptRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/appointment"
	paymentRepo "github.com/tarekyounes123/booking-online-sub001/internal/infra/storage/payment"
)

const defaultCurrency = "USD"

// Service opens pending payments for appointments. Completion lives in its
// own usecase because it touches loyalty and the outbox in one transaction.
type Service struct {
	payments     PaymentRepository
	appointments AppointmentRepository
	logger       Logger
}

// NewService creates the payments service.
func NewService(payments PaymentRepository, appointments AppointmentRepository, logger Logger) *Service {
	return &Service{payments: payments, appointments: appointments, logger: logger}
}

// CreateInput is the request to open a payment for an appointment.
type CreateInput struct {
	AppointmentID int64
	PaymentMethod string
	Currency      string
}

// Create opens a pending payment carrying the appointment's priced amounts.
// One payment per appointment; retrying returns ErrAlreadyPaid.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (*domain.Payment, error) {
	method := strings.TrimSpace(in.PaymentMethod)
	if method == "" {
		return nil, ErrEmptyPaymentMethod
	}
	currency := strings.ToUpper(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = defaultCurrency
	}

	appt, err := s.appointments.GetByID(ctx, in.AppointmentID)
	if err != nil {
		if errors.Is(err, apptRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("Create: failed to get appointment id=%d: %v", in.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - get appointment: %v", ErrInternal, err)
	}

	if !actor.IsAdmin() && actor.UserID != appt.UserID {
		return nil, ErrAccessDenied
	}
	if !appt.IsActive() {
		return nil, fmt.Errorf("%w: status is %s", ErrInactiveAppointment, appt.Status)
	}

	if _, err := s.payments.GetByAppointmentID(ctx, in.AppointmentID); err == nil {
		return nil, ErrAlreadyPaid
	} else if !errors.Is(err, paymentRepo.ErrPaymentNotFound) {
		s.logger.Error("Create: failed to check existing payment appointment=%d: %v", in.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - check existing payment: %v", ErrInternal, err)
	}

	created, err := s.payments.Create(ctx, &domain.Payment{
		AppointmentID:  appt.ID,
		UserID:         appt.UserID,
		OriginalAmount: appt.OriginalPrice,
		DiscountAmount: appt.DiscountAmount,
		FinalAmount:    appt.DiscountedPrice,
		Currency:       currency,
		PaymentMethod:  method,
		Status:         domain.PaymentPending,
	})
	if err != nil {
		s.logger.Error("Create: failed to insert payment appointment=%d: %v", in.AppointmentID, err)
		return nil, fmt.Errorf("%w: Create - insert payment: %v", ErrInternal, err)
	}

	s.logger.Info("Create: payment=%d appointment=%d amount=%s %s",
		created.ID, appt.ID, created.FinalAmount, created.Currency)
	return created, nil
}

// GetByID fetches one payment, visible to its payer and admins.
func (s *Service) GetByID(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error) {
	p, err := s.payments.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, paymentRepo.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		s.logger.Error("GetByID: repository error id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - get payment: %v", ErrInternal, err)
	}
	if !actor.IsAdmin() && actor.UserID != p.UserID {
		return nil, ErrAccessDenied
	}
	return p, nil
}
