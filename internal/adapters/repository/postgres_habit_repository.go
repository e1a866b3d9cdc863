package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

var _ domain.HabitRepository = (*PostgresHabitRepository)(nil)

const habitColumns = `id, user_id, title, description, type, goal, unit, category, created_at`

type PostgresHabitRepository struct {
	db *sqlx.DB
}

func NewPostgresHabitRepository(db *sqlx.DB) *PostgresHabitRepository {
	return &PostgresHabitRepository{db: db}
}

func (r *PostgresHabitRepository) Create(ctx context.Context, h *domain.Habit) error {
	query := `
        INSERT INTO habits (` + habitColumns + `)
        VALUES (:id, :user_id, :title, :description, :type, :goal, :unit, :category, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, h); err != nil {
		if pgErrorCode(err) == pgForeignKeyViolation {
			return domain.ErrHabitInvalidUserID
		}
		return fmt.Errorf("failed to insert habit: %w", err)
	}

	return nil
}

func (r *PostgresHabitRepository) GetByID(ctx context.Context, id string) (*domain.Habit, error) {
	query := `SELECT ` + habitColumns + ` FROM habits WHERE id = $1`

	var h domain.Habit
	if err := r.db.GetContext(ctx, &h, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrHabitNotFound
		}
		return nil, fmt.Errorf("database scan error: %w", err)
	}

	return &h, nil
}

func (r *PostgresHabitRepository) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	query := `
        SELECT ` + habitColumns + ` FROM habits
        WHERE user_id = $1
        ORDER BY created_at DESC`

	habits := []*domain.Habit{}
	if err := r.db.SelectContext(ctx, &habits, query, userID); err != nil {
		return nil, fmt.Errorf("query error: %w", err)
	}

	return habits, nil
}

func (r *PostgresHabitRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete query failed: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrHabitNotFound
	}

	return nil
}
