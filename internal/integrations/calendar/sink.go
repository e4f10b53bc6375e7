package calendar

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// EventSink adapts the client to the outbox dispatcher. Only appointment
// lifecycle events are synced; payment and promotion events are skipped.
type EventSink struct {
	client    *Client
	platforms []string
}

// NewEventSink creates the sink for the given calendar platforms.
func NewEventSink(client *Client, platforms []string) *EventSink {
	return &EventSink{client: client, platforms: platforms}
}

func (s *EventSink) Name() string {
	return "calendar"
}

func (s *EventSink) Deliver(ctx context.Context, event *domain.OutboxEvent) error {
	if event.AggregateType != "appointment" || len(s.platforms) == 0 {
		return nil
	}

	var payload struct {
		AppointmentID int64  `json:"appointmentId"`
		Date          string `json:"date"`
		StartTime     string `json:"startTime"`
		EndTime       string `json:"endTime"`
	}
	if err := json.Unmarshal(event.Payload, &payload); err != nil {
		return fmt.Errorf("calendar sink: decode %s payload: %w", event.EventType, err)
	}

	details := AppointmentDetails{
		AppointmentID: payload.AppointmentID,
		Date:          payload.Date,
		StartTime:     payload.StartTime,
		EndTime:       payload.EndTime,
	}

	var results map[string]error
	switch event.EventType {
	case domain.EventAppointmentCreated:
		results = s.client.SyncCreate(ctx, details, s.platforms)
	case domain.EventAppointmentUpdated:
		results = s.client.SyncUpdate(ctx, details, s.platforms)
	case domain.EventAppointmentCancelled, domain.EventAppointmentDeleted:
		results = s.client.SyncDelete(ctx, details, s.platforms)
	default:
		return nil
	}

	for platform, err := range results {
		if err != nil {
			return fmt.Errorf("platform %s: %w", platform, err)
		}
	}
	return nil
}
