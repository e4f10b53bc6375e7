package reminders

import (
	"context"
	"time"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// EventAppointmentReminder is the notification event name for reminders.
const EventAppointmentReminder = "appointment.reminder"

// Worker sweeps upcoming appointments and sends a reminder through the
// notification service once per appointment. Delivery is best-effort: a
// failed send leaves the flag unset and the next sweep retries it.
type Worker struct {
	appointments AppointmentRepository
	notifier     Notifier
	timer        TimeProvider
	leadTime     time.Duration
	interval     time.Duration
	logger       Logger
}

// NewWorker creates the reminder worker. leadTime is how far ahead of the
// appointment date the reminder goes out.
func NewWorker(appointments AppointmentRepository, notifier Notifier, leadTime, interval time.Duration, logger Logger) *Worker {
	if leadTime <= 0 {
		leadTime = 24 * time.Hour
	}
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	return &Worker{
		appointments: appointments,
		notifier:     notifier,
		timer:        realTimeProvider{},
		leadTime:     leadTime,
		interval:     interval,
		logger:       logger,
	}
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

// Run sweeps on a ticker until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("Reminder worker started (lead=%s, interval=%s)", w.leadTime, w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.logger.Error("Reminder sweep failed: %v", err)
			}
		}
	}
}

// Sweep sends reminders for active appointments on the target date that have
// not been reminded yet.
func (w *Worker) Sweep(ctx context.Context) error {
	target := w.timer.Now().Add(w.leadTime)
	date := time.Date(target.Year(), target.Month(), target.Day(), 0, 0, 0, 0, time.UTC)

	appts, err := w.appointments.ListWithFilter(ctx, domain.AppointmentsFilter{Date: &date})
	if err != nil {
		return err
	}

	for _, appt := range appts {
		if appt.ReminderSent {
			continue
		}

		payload := map[string]interface{}{
			"appointmentId": appt.ID,
			"userId":        appt.UserID,
			"date":          appt.Date.Format(domain.DateFormat),
			"startTime":     appt.StartTime.String(),
		}
		if err := w.notifier.Notify(ctx, EventAppointmentReminder, payload); err != nil {
			w.logger.Warn("Reminder for appointment id=%d failed, will retry: %v", appt.ID, err)
			continue
		}

		if err := w.appointments.SetReminderSent(ctx, appt.ID); err != nil {
			w.logger.Error("Failed to flag reminder for appointment id=%d: %v", appt.ID, err)
			continue
		}
		w.logger.Info("Reminder sent for appointment id=%d (user=%d, %s %s)",
			appt.ID, appt.UserID, appt.Date.Format(domain.DateFormat), appt.StartTime)
	}
	return nil
}
