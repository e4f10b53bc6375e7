package events

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
)

// OutboxRepository is the storage surface the dispatcher consumes.
type OutboxRepository interface {
	FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, ids []int64) error
	MarkFailed(ctx context.Context, id int64, attempts int, lastError string) error
}

// TransactionManager runs the poll-and-mark cycle atomically.
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics is the subset of collectors the dispatcher reports to.
type Metrics interface {
	EventDispatched(sink, result string)
}

// Logger is the logging interface the dispatcher needs.
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Sink is an additional delivery target for outbox events, such as the
// notification service or calendar sync. Sinks share the retry accounting of
// the built-in kafka and webhook targets.
type Sink interface {
	Name() string
	Deliver(ctx context.Context, event *domain.OutboxEvent) error
}

const (
	webhookAttempts = 3
	maxEventRounds  = 3
)

// Config tunes the dispatcher.
type Config struct {
	KafkaBrokers   []string
	KafkaTopic     string
	WebhookTargets []string
	PollInterval   time.Duration
	BatchSize      int
	WebhookTimeout time.Duration
}

// Dispatcher drains the outbox in the background and fans each event out to
// the configured sinks: an optional Kafka topic and a set of webhook targets.
// Sinks are best-effort; a sink failure is recorded on the event and retried
// on later polls, and after maxEventRounds the event is given up on with its
// last error kept for diagnostics. Nothing here ever touches the state change
// that produced the event.
type Dispatcher struct {
	repo       OutboxRepository
	txManager  TransactionManager
	writer     *kafka.Writer
	httpClient *http.Client
	cfg        Config
	sinks      []Sink
	metrics    Metrics
	logger     Logger
}

// NewDispatcher creates the dispatcher. Metrics may be nil.
func NewDispatcher(repo OutboxRepository, txManager TransactionManager, cfg Config, metrics Metrics, logger Logger, sinks ...Sink) *Dispatcher {
	var writer *kafka.Writer
	if len(cfg.KafkaBrokers) > 0 {
		topic := cfg.KafkaTopic
		if topic == "" {
			topic = "booking.events"
		}
		writer = kafka.NewWriter(kafka.WriterConfig{
			Brokers:  cfg.KafkaBrokers,
			Topic:    topic,
			Balancer: &kafka.Hash{},
		})
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 2 * time.Second
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 50
	}
	if cfg.WebhookTimeout <= 0 {
		cfg.WebhookTimeout = 10 * time.Second
	}

	return &Dispatcher{
		repo:      repo,
		txManager: txManager,
		writer:    writer,
		httpClient: &http.Client{
			Timeout: cfg.WebhookTimeout,
		},
		cfg:     cfg,
		sinks:   sinks,
		metrics: metrics,
		logger:  logger,
	}
}

// Run polls the outbox until ctx is cancelled.
func (d *Dispatcher) Run(ctx context.Context) {
	defer func() {
		if d.writer != nil {
			_ = d.writer.Close()
		}
	}()

	ticker := time.NewTicker(d.cfg.PollInterval)
	defer ticker.Stop()

	d.logger.Info("Outbox dispatcher started (kafka=%v, webhooks=%d, sinks=%d, poll=%s)",
		d.writer != nil, len(d.cfg.WebhookTargets), len(d.sinks), d.cfg.PollInterval)

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("Outbox dispatcher stopped")
			return
		case <-ticker.C:
			if err := d.dispatchBatch(ctx); err != nil {
				d.logger.Error("Outbox dispatch batch failed: %v", err)
			}
		}
	}
}

func (d *Dispatcher) dispatchBatch(ctx context.Context) error {
	return d.txManager.Do(ctx, func(txCtx context.Context) error {
		events, err := d.repo.FetchUnpublished(txCtx, d.cfg.BatchSize)
		if err != nil {
			return err
		}

		var published []int64
		for _, event := range events {
			if err := d.dispatchEvent(ctx, event); err != nil {
				attempts := event.Attempts + 1
				if attempts >= maxEventRounds {
					// Give up: record the terminal failure and stop retrying.
					d.logger.Error("Event id=%d (%s) failed after %d rounds: %v",
						event.ID, event.EventType, attempts, err)
					if mfErr := d.repo.MarkFailed(txCtx, event.ID, attempts, err.Error()); mfErr != nil {
						return mfErr
					}
					published = append(published, event.ID)
					continue
				}
				d.logger.Warn("Event id=%d (%s) dispatch failed (round %d/%d): %v",
					event.ID, event.EventType, attempts, maxEventRounds, err)
				if mfErr := d.repo.MarkFailed(txCtx, event.ID, attempts, err.Error()); mfErr != nil {
					return mfErr
				}
				continue
			}
			published = append(published, event.ID)
		}

		return d.repo.MarkPublished(txCtx, published)
	})
}

// dispatchEvent fans one event out to every sink and reports the first
// failure, after all sinks had their chance.
func (d *Dispatcher) dispatchEvent(ctx context.Context, event *domain.OutboxEvent) error {
	var firstErr error

	if d.writer != nil {
		if err := d.publishKafka(ctx, event); err != nil {
			d.observe("kafka", "error")
			firstErr = err
		} else {
			d.observe("kafka", "ok")
		}
	}

	for _, target := range d.cfg.WebhookTargets {
		if err := d.deliverWebhook(ctx, target, event); err != nil {
			d.observe("webhook", "error")
			if firstErr == nil {
				firstErr = err
			}
		} else {
			d.observe("webhook", "ok")
		}
	}

	for _, sink := range d.sinks {
		if err := sink.Deliver(ctx, event); err != nil {
			d.observe(sink.Name(), "error")
			if firstErr == nil {
				firstErr = fmt.Errorf("sink %s: %w", sink.Name(), err)
			}
		} else {
			d.observe(sink.Name(), "ok")
		}
	}

	return firstErr
}

func (d *Dispatcher) publishKafka(ctx context.Context, event *domain.OutboxEvent) error {
	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.AggregateID, 10)),
		Value: event.Payload,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(strconv.FormatInt(event.ID, 10))},
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := d.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish %s: %w", event.EventType, err)
	}
	return nil
}

// deliverWebhook posts the event to one target with bounded retry:
// 3 attempts with exponential backoff. Exhausting the attempts surfaces the
// last error; the triggering operation is long since committed.
func (d *Dispatcher) deliverWebhook(ctx context.Context, target string, event *domain.OutboxEvent) error {
	body, err := json.Marshal(map[string]interface{}{
		"event":       event.EventType,
		"aggregate":   event.AggregateType,
		"aggregateId": event.AggregateID,
		"payload":     json.RawMessage(event.Payload),
		"occurredAt":  event.CreatedAt.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("webhook marshal %s: %w", event.EventType, err)
	}

	backoff := time.Second
	var lastErr error
	for attempt := 1; attempt <= webhookAttempts; attempt++ {
		lastErr = d.postWebhook(ctx, target, body)
		if lastErr == nil {
			return nil
		}
		if attempt < webhookAttempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}
	}
	return fmt.Errorf("webhook %s after %d attempts: %w", target, webhookAttempts, lastErr)
}

func (d *Dispatcher) postWebhook(ctx context.Context, target string, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return nil
}

func (d *Dispatcher) observe(sink, result string) {
	if d.metrics != nil {
		d.metrics.EventDispatched(sink, result)
	}
}
