package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

// StatsRefresher is notified whenever a habit's history changes.
type StatsRefresher interface {
	Enqueue(habitID string)
}

type CompletionService struct {
	repo      domain.CompletionRepository
	habitRepo domain.HabitRepository
	cache     domain.StatsCache
	refresher StatsRefresher
}

func NewCompletionService(repo domain.CompletionRepository, habitRepo domain.HabitRepository, cache domain.StatsCache, refresher StatsRefresher) *CompletionService {
	return &CompletionService{
		repo:      repo,
		habitRepo: habitRepo,
		cache:     cache,
		refresher: refresher,
	}
}

type ToggleInput struct {
	HabitID string
	UserID  string
	Date    time.Time
	State   string
	// Value is set for counter updates. A nil Value means a plain toggle.
	Value *float64
}

type ToggleResult struct {
	Message string   `json:"message"`
	Status  string   `json:"status"`
	Value   *float64 `json:"value,omitempty"`
}

// Toggle records activity for one day. With a value it upserts the day;
// without one it flips the day: an existing completion is removed, a
// missing one is created.
func (s *CompletionService) Toggle(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	if input.Date.IsZero() {
		return nil, domain.ErrDateRequired
	}
	if input.State != "" && !domain.IsStorableState(input.State) {
		return nil, domain.ErrInvalidState
	}

	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrUnauthorized
	}

	var result *ToggleResult
	if input.Value != nil {
		result, err = s.setValue(ctx, input)
	} else {
		result, err = s.flip(ctx, input)
	}
	if err != nil {
		return nil, err
	}

	s.historyChanged(ctx, input.HabitID)
	return result, nil
}

func (s *CompletionService) setValue(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	c := domain.NewCompletion(input.HabitID, input.UserID, input.Date, input.State, *input.Value)
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.Upsert(ctx, c); err != nil {
		return nil, fmt.Errorf("completion service: upsert: %w", err)
	}

	value := c.Value
	return &ToggleResult{Message: "Habit value updated", Status: c.State, Value: &value}, nil
}

func (s *CompletionService) flip(ctx context.Context, input ToggleInput) (*ToggleResult, error) {
	existing, err := s.repo.GetByDate(ctx, input.HabitID, domain.DateOnly(input.Date))
	switch {
	case err == nil:
		if err := s.repo.Delete(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("completion service: delete: %w", err)
		}
		return &ToggleResult{Message: "Habit completion removed", Status: domain.CompletionStateNone}, nil

	case errors.Is(err, domain.ErrCompletionNotFound):
		c := domain.NewCompletion(input.HabitID, input.UserID, input.Date, input.State, 0)
		if err := c.Validate(); err != nil {
			return nil, err
		}
		if err := s.repo.Upsert(ctx, c); err != nil {
			return nil, fmt.Errorf("completion service: insert: %w", err)
		}
		return &ToggleResult{Message: "Habit marked as complete", Status: c.State}, nil

	default:
		return nil, fmt.Errorf("completion service: lookup: %w", err)
	}
}

func (s *CompletionService) historyChanged(ctx context.Context, habitID string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, habitID)
	}
	if s.refresher != nil {
		s.refresher.Enqueue(habitID)
	}
}

func (s *CompletionService) ListByHabitID(ctx context.Context, habitID, userID string, from, to time.Time) ([]*domain.Completion, error) {
	habit, err := s.habitRepo.GetByID(ctx, habitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrUnauthorized
	}

	return s.repo.ListByHabitIDWithRange(ctx, habitID, domain.DateOnly(from), domain.DateOnly(to))
}
