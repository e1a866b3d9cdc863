package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCompletion = errors.New("invalid completion data")
	ErrInvalidState      = errors.New("invalid completion state (must be completed, missed or failed)")
	ErrNegativeValue     = errors.New("value cannot be negative")
	ErrDateRequired      = errors.New("completed_date is required")
)

const (
	CompletionStateNone      = "none"
	CompletionStateCompleted = "completed"
	CompletionStateMissed    = "missed"
	CompletionStateFailed    = "failed"

	DateLayout = "2006-01-02"
)

type Completion struct {
	ID            string    `json:"id" db:"id"`
	HabitID       string    `json:"habit_id" db:"habit_id"`
	UserID        string    `json:"user_id" db:"user_id"`
	CompletedDate time.Time `json:"completed_date" db:"completed_date"`
	State         string    `json:"state" db:"state"`
	Value         float64   `json:"value" db:"value"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// DateOnly drops the clock part of t, keeping its calendar date as seen in
// t's own location. The result is always midnight UTC so dates compare by
// value.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, strings.TrimSpace(s))
}

func NewCompletion(habitID, userID string, date time.Time, state string, value float64) *Completion {
	now := time.Now().UTC()

	if state == "" {
		state = CompletionStateCompleted
	}

	return &Completion{
		ID:            uuid.NewString(),
		HabitID:       habitID,
		UserID:        userID,
		CompletedDate: DateOnly(date),
		State:         state,
		Value:         value,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (c *Completion) Validate() error {
	if strings.TrimSpace(c.HabitID) == "" {
		return errors.New("habit_id is required")
	}
	if strings.TrimSpace(c.UserID) == "" {
		return errors.New("user_id is required")
	}
	if c.CompletedDate.IsZero() {
		return ErrDateRequired
	}
	if c.Value < 0 {
		return ErrNegativeValue
	}
	if !IsStorableState(c.State) {
		return ErrInvalidState
	}
	return nil
}

// IsStorableState reports whether s may be persisted. "none" is what the
// absence of a row means, so it is never stored.
func IsStorableState(s string) bool {
	switch s {
	case CompletionStateCompleted, CompletionStateMissed, CompletionStateFailed:
		return true
	}
	return false
}

func (c *Completion) DateKey() string {
	return c.CompletedDate.Format(DateLayout)
}
