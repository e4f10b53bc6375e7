package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/psqlbuilder"
	"github.com/tarekyounes123/booking-online-sub001/pkg/txmanager"
)

var paymentColumns = []string{
	"id",
	"appointment_id",
	"user_id",
	"original_amount",
	"discount_amount",
	"final_amount",
	"currency",
	"payment_method",
	"status",
	"paid_at",
	"points_awarded",
	"created_at",
	"updated_at",
}

// Repository persists payments.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates the payments repository.
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a payment in pending state.
func (r *Repository) Create(ctx context.Context, p *domain.Payment) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payments").
		Columns(
			"appointment_id",
			"user_id",
			"original_amount",
			"discount_amount",
			"final_amount",
			"currency",
			"payment_method",
			"status",
		).
		Values(
			p.AppointmentID,
			p.UserID,
			p.OriginalAmount,
			p.DiscountAmount,
			p.FinalAmount,
			p.Currency,
			p.PaymentMethod,
			p.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return p, nil
}

// GetByID fetches one payment. Inside a transaction the row is locked so a
// retried completion cannot race the points-awarded guard.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"id": id})

	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// GetByAppointmentID fetches the payment linked to an appointment.
func (r *Repository) GetByAppointmentID(ctx context.Context, appointmentID int64) (*domain.Payment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(paymentColumns...).
		From("payments").
		Where(squirrel.Eq{"appointment_id": appointmentID}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - build select query: %v", ErrBuildQuery, err)
	}

	p, err := scanPayment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByAppointmentID - scan payment: %v", ErrScanRow, err)
	}
	return p, nil
}

// MarkCompleted sets the payment to completed, stamps paid_at and records
// whether points were awarded for it.
func (r *Repository) MarkCompleted(ctx context.Context, id int64, pointsAwarded bool) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", domain.PaymentCompleted).
		Set("paid_at", squirrel.Expr("NOW()")).
		Set("points_awarded", pointsAwarded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkCompleted - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

// UpdateStatus sets the payment status (used for the failed path).
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.PaymentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrPaymentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPayment(row rowScanner) (*domain.Payment, error) {
	var p domain.Payment
	err := row.Scan(
		&p.ID,
		&p.AppointmentID,
		&p.UserID,
		&p.OriginalAmount,
		&p.DiscountAmount,
		&p.FinalAmount,
		&p.Currency,
		&p.PaymentMethod,
		&p.Status,
		&p.PaidAt,
		&p.PointsAwarded,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
