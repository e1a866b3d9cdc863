package services

import (
	"context"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/stats"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

type StatsService struct {
	habitRepo      domain.HabitRepository
	completionRepo domain.CompletionRepository
	cache          domain.StatsCache
}

func NewStatsService(habitRepo domain.HabitRepository, completionRepo domain.CompletionRepository, cache domain.StatsCache) *StatsService {
	return &StatsService{
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		cache:          cache,
	}
}

// GetHabitStats derives the statistics of one habit as seen on input.Today.
// Snapshots are cached per (habit, today). The cache generation is read
// before the history is loaded so a write landing in between keeps the
// snapshot out of the cache. The step distance depends on the caller's
// height and is always applied on the way out.
func (s *StatsService) GetHabitStats(ctx context.Context, input domain.StatsInput) (*domain.HabitStats, error) {
	habit, err := s.habitRepo.GetByID(ctx, input.HabitID)
	if err != nil {
		return nil, err
	}
	if habit.UserID != input.UserID {
		return nil, domain.ErrHabitNotFound
	}

	today := domain.DateOnly(input.Today)
	todayKey := today.Format(domain.DateLayout)

	var (
		snapshot   *domain.HabitStats
		generation int64
	)
	if s.cache != nil {
		cached, gen, ok := s.cache.Get(ctx, habit.ID, todayKey)
		if ok {
			snapshot = cached
		}
		generation = gen
	}

	if snapshot == nil {
		completions, err := s.completionRepo.ListByHabitID(ctx, habit.ID)
		if err != nil {
			return nil, err
		}

		snapshot = stats.Compute(habit, completions, today, stats.Options{})

		if s.cache != nil {
			if err := s.cache.Set(ctx, snapshot, generation); err != nil {
				logger.Ctx(ctx).Warn("stats snapshot not cached", "habit_id", habit.ID, "error", err)
			}
		}
	}

	return withDistance(snapshot, habit, input.HeightCm), nil
}

func withDistance(snapshot *domain.HabitStats, habit *domain.Habit, heightCm float64) *domain.HabitStats {
	if heightCm <= 0 || !stats.IsStepHabit(habit) {
		return snapshot
	}

	out := *snapshot
	km := stats.DistanceKm(snapshot.TotalValue, heightCm)
	out.DistanceKm = &km
	return &out
}
