package services

import (
	"context"
	"fmt"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

type HabitService struct {
	repo        domain.HabitRepository
	completions domain.CompletionRepository
	cache       domain.StatsCache
}

func NewHabitService(repo domain.HabitRepository, completions domain.CompletionRepository, cache domain.StatsCache) *HabitService {
	return &HabitService{
		repo:        repo,
		completions: completions,
		cache:       cache,
	}
}

type CreateHabitInput struct {
	UserID      string
	Title       string
	Description string
	Type        string
	Goal        float64
	Unit        string
	Category    string
}

func (s *HabitService) Create(ctx context.Context, input CreateHabitInput) (*domain.Habit, error) {
	habit, err := domain.NewHabit(
		input.UserID,
		input.Title,
		input.Description,
		input.Type,
		input.Unit,
		input.Category,
		input.Goal,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, habit); err != nil {
		return nil, fmt.Errorf("habit service: create: %w", err)
	}

	return habit, nil
}

func (s *HabitService) ListByUserID(ctx context.Context, userID string) ([]*domain.Habit, error) {
	return s.repo.ListByUserID(ctx, userID)
}

// GetOwned loads a habit and checks that userID owns it. Other users' habits
// are reported as missing so their ids do not leak.
func (s *HabitService) GetOwned(ctx context.Context, id, userID string) (*domain.Habit, error) {
	habit, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if habit.UserID != userID {
		return nil, domain.ErrHabitNotFound
	}
	return habit, nil
}

// GetWithCompletions returns the habit detail: the habit plus its full
// history, newest date first.
func (s *HabitService) GetWithCompletions(ctx context.Context, id, userID string) (*domain.HabitWithCompletions, error) {
	habit, err := s.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	completions, err := s.completions.ListByHabitID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("habit service: list completions: %w", err)
	}
	if completions == nil {
		completions = []*domain.Completion{}
	}

	return &domain.HabitWithCompletions{Habit: habit, Completions: completions}, nil
}

func (s *HabitService) Delete(ctx context.Context, id, userID string) error {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
	return nil
}
