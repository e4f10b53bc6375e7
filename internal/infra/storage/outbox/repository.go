package outbox

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/psqlbuilder"
	"github.com/tarekyounes123/booking-online-sub001/pkg/txmanager"
)

// Repository persists the outbox. Events are inserted in the same transaction
// as the state change they describe and drained by the dispatcher.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates the outbox repository.
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Insert appends an event to the outbox.
func (r *Repository) Insert(ctx context.Context, event *domain.OutboxEvent) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("outbox_events").
		Columns("event_type", "aggregate_type", "aggregate_id", "payload").
		Values(event.EventType, event.AggregateType, event.AggregateID, event.Payload).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Insert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Insert - execute insert: %v", ErrExecQuery, err)
	}
	return nil
}

// FetchUnpublished returns up to limit undelivered events, oldest first,
// locked with SKIP LOCKED so concurrent dispatchers never double-deliver.
func (r *Repository) FetchUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"event_type",
		"aggregate_type",
		"aggregate_id",
		"payload",
		"published",
		"attempts",
		"last_error",
		"published_at",
		"created_at",
	).
		From("outbox_events").
		Where(squirrel.Eq{"published": false}).
		OrderBy("id ASC").
		Limit(uint64(limit)).
		Suffix("FOR UPDATE SKIP LOCKED").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]*domain.OutboxEvent, 0)
	for rows.Next() {
		var e domain.OutboxEvent
		err := rows.Scan(
			&e.ID,
			&e.EventType,
			&e.AggregateType,
			&e.AggregateID,
			&e.Payload,
			&e.Published,
			&e.Attempts,
			&e.LastError,
			&e.PublishedAt,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: FetchUnpublished - scan event: %v", ErrScanRow, err)
		}
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: FetchUnpublished - rows error: %v", ErrScanRow, err)
	}
	return events, nil
}

// MarkPublished flags the events as delivered.
func (r *Repository) MarkPublished(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("published", true).
		Set("published_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": ids}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkPublished - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkPublished - execute update: %v", ErrExecQuery, err)
	}
	return nil
}

// MarkFailed records a failed delivery attempt with its last error. The
// event stays unpublished and is retried on the next dispatcher pass.
func (r *Repository) MarkFailed(ctx context.Context, id int64, attempts int, lastError string) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("outbox_events").
		Set("attempts", attempts).
		Set("last_error", lastError).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkFailed - build update query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: MarkFailed - execute update: %v", ErrExecQuery, err)
	}
	return nil
}
