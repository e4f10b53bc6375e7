package appointment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/psqlbuilder"
	"github.com/tarekyounes123/booking-online-sub001/pkg/txmanager"
)

var appointmentColumns = []string{
	"id",
	"user_id",
	"service_id",
	"staff_id",
	"date",
	"start_time",
	"end_time",
	"status",
	"original_price",
	"discount_amount",
	"discounted_price",
	"promotion_id",
	"points_redeemed",
	"payment_method",
	"notes",
	"location",
	"reminder_sent",
	"created_at",
	"updated_at",
}

// Repository persists appointments.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates the appointments repository.
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts the appointment and fills in id and timestamps.
func (r *Repository) Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("appointments").
		Columns(
			"user_id",
			"service_id",
			"staff_id",
			"date",
			"start_time",
			"end_time",
			"status",
			"original_price",
			"discount_amount",
			"discounted_price",
			"promotion_id",
			"points_redeemed",
			"payment_method",
			"notes",
			"location",
		).
		Values(
			appt.UserID,
			appt.ServiceID,
			appt.StaffID,
			appt.Date,
			appt.StartTime,
			appt.EndTime,
			appt.Status,
			appt.OriginalPrice,
			appt.DiscountAmount,
			appt.DiscountedPrice,
			appt.PromotionID,
			appt.PointsRedeemed,
			appt.PaymentMethod,
			appt.Notes,
			appt.Location,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&appt.ID,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return appt, nil
}

// GetByID fetches one appointment.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).
		From("appointments").
		Where(squirrel.Eq{"id": id})

	// Inside a transaction the row is locked so discount and status writes
	// cannot race with a concurrent mutation of the same appointment.
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	appt, err := scanAppointment(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}
	return appt, nil
}

// ListWithFilter fetches appointments matching the filter. For a single-date
// filter inside a transaction the rows are locked (FOR UPDATE) so the
// conflict check and the subsequent insert cannot race with a concurrent
// booking for the same date.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(appointmentColumns...).From("appointments")

	if filter.UserID != nil {
		builder = builder.Where(squirrel.Eq{"user_id": *filter.UserID})
	}
	if filter.StaffID != nil {
		builder = builder.Where(squirrel.Eq{"staff_id": *filter.StaffID})
	}
	if filter.Date != nil {
		builder = builder.Where(squirrel.Eq{"date": *filter.Date})
	}
	if filter.Status != nil {
		builder = builder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactive := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactive[i] = string(s)
		}
		builder = builder.Where(squirrel.NotEq{"status": inactive})
	}

	if filter.Date != nil {
		builder = builder.OrderBy("start_time ASC")
	} else {
		builder = builder.OrderBy("date DESC, start_time DESC")
	}

	if txmanager.IsInTransaction(ctx) && filter.Date != nil {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// Update writes the given appointment's mutable fields by id.
func (r *Repository) Update(ctx context.Context, appt *domain.Appointment) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("service_id", appt.ServiceID).
		Set("staff_id", appt.StaffID).
		Set("date", appt.Date).
		Set("start_time", appt.StartTime).
		Set("end_time", appt.EndTime).
		Set("status", appt.Status).
		Set("original_price", appt.OriginalPrice).
		Set("discount_amount", appt.DiscountAmount).
		Set("discounted_price", appt.DiscountedPrice).
		Set("promotion_id", appt.PromotionID).
		Set("points_redeemed", appt.PointsRedeemed).
		Set("payment_method", appt.PaymentMethod).
		Set("notes", appt.Notes).
		Set("location", appt.Location).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": appt.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "Update", query, args)
}

// UpdateStatus sets only the status.
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateStatus", query, args)
}

// UpdateDiscount writes the discount attribution of one appointment. Exactly
// one of promotionID / pointsRedeemed carries the mechanism; the other must
// be its zero value.
func (r *Repository) UpdateDiscount(ctx context.Context, id int64, discountAmount, discountedPrice decimal.Decimal, promotionID *int64, pointsRedeemed int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("discount_amount", discountAmount).
		Set("discounted_price", discountedPrice).
		Set("promotion_id", promotionID).
		Set("points_redeemed", pointsRedeemed).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateDiscount - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "UpdateDiscount", query, args)
}

// SetReminderSent flags the appointment's reminder as sent.
func (r *Repository) SetReminderSent(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("reminder_sent", true).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: SetReminderSent - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, "SetReminderSent", query, args)
}

// Delete removes the appointment row. A payment still referencing the
// appointment blocks the delete at the foreign key.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("appointments").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "foreign_key_violation" {
			return ErrAppointmentReferenced
		}
		return fmt.Errorf("%w: Delete - execute: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor txmanager.DBExecutor, method, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", ErrExecQuery, method, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - rows affected: %v", ErrExecQuery, method, err)
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanAppointment(row rowScanner) (*domain.Appointment, error) {
	var appt domain.Appointment
	err := row.Scan(
		&appt.ID,
		&appt.UserID,
		&appt.ServiceID,
		&appt.StaffID,
		&appt.Date,
		&appt.StartTime,
		&appt.EndTime,
		&appt.Status,
		&appt.OriginalPrice,
		&appt.DiscountAmount,
		&appt.DiscountedPrice,
		&appt.PromotionID,
		&appt.PointsRedeemed,
		&appt.PaymentMethod,
		&appt.Notes,
		&appt.Location,
		&appt.ReminderSent,
		&appt.CreatedAt,
		&appt.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt, err := scanAppointment(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scan appointment: %v", ErrScanRow, err)
		}
		appointments = append(appointments, appt)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: rows error: %v", ErrScanRow, err)
	}
	return appointments, nil
}
