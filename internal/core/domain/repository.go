package domain

import (
	"context"
	"errors"
	"time"
)

var (
	ErrHabitNotFound      = errors.New("habit not found")
	ErrCompletionNotFound = errors.New("completion not found")
	ErrUnauthorized       = errors.New("unauthorized access")
)

type HabitRepository interface {
	// Create persists a new habit definition in the storage.
	Create(ctx context.Context, habit *Habit) error

	// GetByID retrieves a habit by its unique identifier.
	GetByID(ctx context.Context, id string) (*Habit, error)

	// ListByUserID retrieves all habits of a user, newest first.
	ListByUserID(ctx context.Context, userID string) ([]*Habit, error)

	// Delete permanently removes a habit and, through the foreign key, its completions.
	Delete(ctx context.Context, id string) error
}

type CompletionRepository interface {
	// Upsert inserts a completion or overwrites the one already stored for
	// the same (habit_id, completed_date).
	Upsert(ctx context.Context, c *Completion) error

	// GetByDate returns the completion of a habit on a calendar date.
	GetByDate(ctx context.Context, habitID string, date time.Time) (*Completion, error)

	// Delete removes a single completion.
	Delete(ctx context.Context, id string) error

	// ListByHabitID returns the full history of a habit, newest date first.
	ListByHabitID(ctx context.Context, habitID string) ([]*Completion, error)

	// ListByHabitIDWithRange returns completions with from <= completed_date <= to.
	ListByHabitIDWithRange(ctx context.Context, habitID string, from, to time.Time) ([]*Completion, error)
}

// StatsCache holds computed statistics snapshots. Snapshots are keyed by
// habit and the "today" they were computed for; any write to a habit's
// completions must invalidate them.
//
// Each habit carries a generation that Invalidate advances. Get reports the
// generation on a miss; Set stores the snapshot only if that generation is
// still current, so a snapshot computed from data read before a write is
// never cached after the write's invalidation.
type StatsCache interface {
	Get(ctx context.Context, habitID, today string) (*HabitStats, int64, bool)
	Set(ctx context.Context, stats *HabitStats, generation int64) error
	Invalidate(ctx context.Context, habitID string)
}
