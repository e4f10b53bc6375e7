package promotion

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tarekyounes123/booking-online-sub001/internal/domain"
	"github.com/tarekyounes123/booking-online-sub001/pkg/psqlbuilder"
	"github.com/tarekyounes123/booking-online-sub001/pkg/txmanager"
)

var promotionColumns = []string{
	"id",
	"code",
	"discount_type",
	"discount_value",
	"start_date",
	"end_date",
	"usage_limit",
	"times_used",
	"is_active",
	"created_at",
	"updated_at",
}

// Repository persists promotions and their usage counters.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates the promotions repository.
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create inserts a promotion. Codes are globally unique; a duplicate maps to
// ErrDuplicateCode.
func (r *Repository) Create(ctx context.Context, promo *domain.Promotion) (*domain.Promotion, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("promotions").
		Columns("code", "discount_type", "discount_value", "start_date", "end_date", "usage_limit", "is_active").
		Values(promo.Code, promo.DiscountType, promo.DiscountValue, promo.StartDate, promo.EndDate, promo.UsageLimit, promo.IsActive).
		Suffix("RETURNING id, times_used, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&promo.ID,
		&promo.TimesUsed,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}
	return promo, nil
}

// GetByCode fetches a promotion by its code, case-insensitively.
func (r *Repository) GetByCode(ctx context.Context, code string) (*domain.Promotion, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"code": strings.ToUpper(code)})

	// Lock the row when applying inside a transaction so the eligibility
	// check and the usage increment see the same counter.
	if txmanager.IsInTransaction(ctx) {
		builder = builder.Suffix("FOR UPDATE")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - build select query: %v", ErrBuildQuery, err)
	}

	promo, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByCode - scan promotion: %v", ErrScanRow, err)
	}
	return promo, nil
}

// GetByID fetches one promotion.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Promotion, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	promo, err := scanPromotion(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPromotionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan promotion: %v", ErrScanRow, err)
	}
	return promo, nil
}

// List fetches all promotions, newest first.
func (r *Repository) List(ctx context.Context) ([]*domain.Promotion, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(promotionColumns...).
		From("promotions").
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	promotions := make([]*domain.Promotion, 0)
	for rows.Next() {
		promo, err := scanPromotion(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan promotion: %v", ErrScanRow, err)
		}
		promotions = append(promotions, promo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}
	return promotions, nil
}

// IncrementUsage atomically bumps times_used by one while re-checking the
// limit in the same statement. A concurrent application that loses the race
// sees zero affected rows and gets ErrUsageExhausted, so times_used can never
// exceed usage_limit.
func (r *Repository) IncrementUsage(ctx context.Context, id int64) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("promotions").
		Set("times_used", squirrel.Expr("times_used + 1")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("times_used < usage_limit")).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - execute update: %v", ErrExecQuery, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: IncrementUsage - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrUsageExhausted
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanPromotion(row rowScanner) (*domain.Promotion, error) {
	var promo domain.Promotion
	err := row.Scan(
		&promo.ID,
		&promo.Code,
		&promo.DiscountType,
		&promo.DiscountValue,
		&promo.StartDate,
		&promo.EndDate,
		&promo.UsageLimit,
		&promo.TimesUsed,
		&promo.IsActive,
		&promo.CreatedAt,
		&promo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &promo, nil
}
