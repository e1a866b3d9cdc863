package domain

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty    = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong  = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong   = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidUserID = errors.New("invalid user id")
	ErrInvalidGoal        = errors.New("goal cannot be negative")
	ErrInvalidHabitType   = errors.New("invalid habit type (must be boolean or counter)")
	ErrCategoryTooLong    = errors.New("habit category is too long (max 50 chars)")
)

const (
	HabitTypeBoolean = "boolean"
	HabitTypeCounter = "counter"
	DefaultCategory  = "General"
	MaxTitleLen      = 100
	MaxDescLen       = 500
	MaxCategoryLen   = 50
)

type Habit struct {
	ID          string    `json:"id" db:"id"`
	UserID      string    `json:"user_id" db:"user_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description,omitempty" db:"description"`
	Type        string    `json:"type" db:"type"`
	Goal        float64   `json:"goal" db:"goal"`
	Unit        string    `json:"unit" db:"unit"`
	Category    string    `json:"category" db:"category"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// HabitWithCompletions is the detail view handed to clients: the habit and
// its full completion history, newest first.
type HabitWithCompletions struct {
	*Habit
	Completions []*Completion `json:"completions"`
}

func (h *Habit) IsCounter() bool {
	return h.Type == HabitTypeCounter
}

// IsSuccessful reports whether a completion counts as "done" for this habit.
func (h *Habit) IsSuccessful(c *Completion) bool {
	if c == nil {
		return false
	}
	if h.IsCounter() {
		return c.Value >= h.Goal
	}
	return c.State == CompletionStateCompleted
}

func NewHabit(userID, title, description, hType, unit, category string, goal float64) (*Habit, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, ErrHabitInvalidUserID
	}

	trimmedTitle := strings.TrimSpace(title)
	if trimmedTitle == "" {
		return nil, ErrHabitTitleEmpty
	}
	if len(trimmedTitle) > MaxTitleLen {
		return nil, ErrHabitTitleTooLong
	}

	cleanDesc := strings.TrimSpace(description)
	if len(cleanDesc) > MaxDescLen {
		return nil, ErrHabitDescTooLong
	}

	if hType == "" {
		hType = HabitTypeBoolean
	}
	switch hType {
	case HabitTypeBoolean, HabitTypeCounter:
	default:
		return nil, ErrInvalidHabitType
	}

	if goal < 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return nil, ErrInvalidGoal
	}

	category = strings.TrimSpace(category)
	if category == "" {
		category = DefaultCategory
	}
	if len(category) > MaxCategoryLen {
		return nil, ErrCategoryTooLong
	}

	return &Habit{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       trimmedTitle,
		Description: cleanDesc,
		Type:        hType,
		Goal:        goal,
		Unit:        strings.TrimSpace(unit),
		Category:    category,
		CreatedAt:   time.Now().UTC(),
	}, nil
}
