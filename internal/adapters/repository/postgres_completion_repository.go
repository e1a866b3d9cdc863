package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/jmoiron/sqlx"
)

var _ domain.CompletionRepository = (*PostgresCompletionRepository)(nil)

const completionColumns = `id, habit_id, user_id, completed_date, state, value, created_at, updated_at`

type PostgresCompletionRepository struct {
	db *sqlx.DB
}

func NewPostgresCompletionRepository(db *sqlx.DB) *PostgresCompletionRepository {
	return &PostgresCompletionRepository{db: db}
}

// Upsert keeps at most one row per (habit_id, completed_date). On conflict
// the stored row keeps its id and created_at; c is refreshed from it.
func (r *PostgresCompletionRepository) Upsert(ctx context.Context, c *domain.Completion) error {
	query := `
		INSERT INTO completions (` + completionColumns + `)
		VALUES (:id, :habit_id, :user_id, :completed_date, :state, :value, :created_at, :updated_at)
		ON CONFLICT (habit_id, completed_date) DO UPDATE
		SET state = EXCLUDED.state,
		    value = EXCLUDED.value,
		    updated_at = NOW()
		RETURNING id, created_at, updated_at`

	rows, err := r.db.NamedQueryContext(ctx, query, c)
	if err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrHabitNotFound
		}
		return fmt.Errorf("upsert completion: %w", err)
	}
	defer rows.Close()

	if rows.Next() {
		if err := rows.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return fmt.Errorf("upsert completion scan: %w", err)
		}
	}

	return rows.Err()
}

func (r *PostgresCompletionRepository) GetByDate(ctx context.Context, habitID string, date time.Time) (*domain.Completion, error) {
	query := `SELECT ` + completionColumns + ` FROM completions WHERE habit_id = $1 AND completed_date = $2`

	var c domain.Completion
	if err := r.db.GetContext(ctx, &c, query, habitID, domain.DateOnly(date)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCompletionNotFound
		}
		return nil, err
	}

	c.CompletedDate = domain.DateOnly(c.CompletedDate)
	return &c, nil
}

func (r *PostgresCompletionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM completions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete completion: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrCompletionNotFound
	}
	return nil
}

func (r *PostgresCompletionRepository) ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error) {
	query := `
		SELECT ` + completionColumns + ` FROM completions
		WHERE habit_id = $1
		ORDER BY completed_date DESC`

	return r.selectCompletions(ctx, query, habitID)
}

func (r *PostgresCompletionRepository) ListByHabitIDWithRange(ctx context.Context, habitID string, from, to time.Time) ([]*domain.Completion, error) {
	query := `
		SELECT ` + completionColumns + ` FROM completions
		WHERE habit_id = $1
		  AND completed_date >= $2
		  AND completed_date <= $3
		ORDER BY completed_date DESC`

	return r.selectCompletions(ctx, query, habitID, domain.DateOnly(from), domain.DateOnly(to))
}

func (r *PostgresCompletionRepository) selectCompletions(ctx context.Context, query string, args ...interface{}) ([]*domain.Completion, error) {
	completions := []*domain.Completion{}
	if err := r.db.SelectContext(ctx, &completions, query, args...); err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}

	for _, c := range completions {
		c.CompletedDate = domain.DateOnly(c.CompletedDate)
	}
	return completions, nil
}
