package notifier

import (
	"context"
	"encoding/json"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// EventSink adapts the client to the outbox dispatcher. Every lifecycle event
// is forwarded to the notification service, which decides the channel fan-out.
type EventSink struct {
	client *Client
}

// NewEventSink creates the sink.
func NewEventSink(client *Client) *EventSink {
	return &EventSink{client: client}
}

func (s *EventSink) Name() string {
	return "notifier"
}

func (s *EventSink) Deliver(ctx context.Context, event *domain.OutboxEvent) error {
	return s.client.Notify(ctx, event.EventType, json.RawMessage(event.Payload))
}
