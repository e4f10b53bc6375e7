package user

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

// Repository persists the loyalty-relevant slice of users.
type Repository struct {
	db txmanager.DBExecutor
}

// NewRepository creates the users repository.
func NewRepository(db txmanager.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByID fetches a user's loyalty balance.
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("id", "loyalty_points").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var u domain.User
	err = executor.QueryRowContext(ctx, query, args...).Scan(&u.ID, &u.LoyaltyPoints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan user: %v", ErrScanRow, err)
	}
	return &u, nil
}

// AddPoints atomically credits points to the user's balance.
func (r *Repository) AddPoints(ctx context.Context, id int64, points int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("loyalty_points", squirrel.Expr("loyalty_points + ?", points)).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: AddPoints - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddPoints - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddPoints - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// DeductPoints atomically debits points, re-checking the balance in the same
// statement: a concurrent redemption that loses the race affects zero rows
// and surfaces as ErrInsufficientPoints instead of a negative balance.
func (r *Repository) DeductPoints(ctx context.Context, id int64, points int) error {
	executor := txmanager.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("users").
		Set("loyalty_points", squirrel.Expr("loyalty_points - ?", points)).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Expr("loyalty_points >= ?", points)).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeductPoints - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeductPoints - execute update: %v", ErrExecQuery, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeductPoints - rows affected: %v", ErrExecQuery, err)
	}
	if affected == 0 {
		// Distinguish a missing user from an insufficient balance.
		if _, getErr := r.GetByID(ctx, id); errors.Is(getErr, ErrUserNotFound) {
			return ErrUserNotFound
		}
		return ErrInsufficientPoints
	}
	return nil
}
