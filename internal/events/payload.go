package events

import (
	"encoding/json"
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// NewAppointmentEvent builds the outbox envelope for an appointment change.
func NewAppointmentEvent(eventType string, appt *domain.Appointment) (*domain.OutboxEvent, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"appointmentId": appt.ID,
		"userId":        appt.UserID,
		"serviceId":     appt.ServiceID,
		"staffId":       appt.StaffID,
		"date":          appt.Date.Format(domain.DateFormat),
		"startTime":     appt.StartTime.String(),
		"endTime":       appt.EndTime.String(),
		"status":        string(appt.Status),
	})
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s payload: %w", eventType, err)
	}
	return &domain.OutboxEvent{
		EventType:     eventType,
		AggregateType: "appointment",
		AggregateID:   appt.ID,
		Payload:       payload,
	}, nil
}

// NewPaymentEvent builds the outbox envelope for a payment change.
func NewPaymentEvent(eventType string, payment *domain.Payment, pointsAwarded int) (*domain.OutboxEvent, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"paymentId":     payment.ID,
		"appointmentId": payment.AppointmentID,
		"userId":        payment.UserID,
		"finalAmount":   payment.FinalAmount.StringFixed(2),
		"currency":      payment.Currency,
		"status":        string(payment.Status),
		"pointsAwarded": pointsAwarded,
	})
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s payload: %w", eventType, err)
	}
	return &domain.OutboxEvent{
		EventType:     eventType,
		AggregateType: "payment",
		AggregateID:   payment.ID,
		Payload:       payload,
	}, nil
}

// NewPromotionEvent builds the outbox envelope for a promotion application.
func NewPromotionEvent(promo *domain.Promotion, appointmentID int64) (*domain.OutboxEvent, error) {
	payload, err := json.Marshal(map[string]interface{}{
		"promotionId":   promo.ID,
		"code":          promo.Code,
		"appointmentId": appointmentID,
		"timesUsed":     promo.TimesUsed,
	})
	if err != nil {
		return nil, fmt.Errorf("events: marshal %s payload: %w", domain.EventPromotionApplied, err)
	}
	return &domain.OutboxEvent{
		EventType:     domain.EventPromotionApplied,
		AggregateType: "promotion",
		AggregateID:   promo.ID,
		Payload:       payload,
	}, nil
}
