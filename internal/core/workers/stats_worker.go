package workers

import (
	"context"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
	"github.com/comitanigiacomo/mishabitos-api/internal/core/stats"
	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
	"github.com/comitanigiacomo/mishabitos-api/internal/metrics"
)

type HabitRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Habit, error)
}

type CompletionRepository interface {
	ListByHabitID(ctx context.Context, habitID string) ([]*domain.Completion, error)
}

type StatsJob struct {
	HabitID string
}

// StatsWorker recomputes stats snapshots in the background after a habit's
// history changes, so the next stats request is a cache hit.
type StatsWorker struct {
	habitRepo      HabitRepository
	completionRepo CompletionRepository
	cache          domain.StatsCache
	jobs           chan StatsJob
	now            func() time.Time
}

func NewStatsWorker(hRepo HabitRepository, cRepo CompletionRepository, cache domain.StatsCache) *StatsWorker {
	return &StatsWorker{
		habitRepo:      hRepo,
		completionRepo: cRepo,
		cache:          cache,
		jobs:           make(chan StatsJob, 100),
		now:            time.Now,
	}
}

func (w *StatsWorker) Start(ctx context.Context) {
	go func() {
		logger.Info("stats worker started")
		for {
			select {
			case job := <-w.jobs:
				w.processJob(ctx, job)
			case <-ctx.Done():
				logger.Info("stats worker shutting down")
				return
			}
		}
	}()
}

func (w *StatsWorker) Enqueue(habitID string) {
	select {
	case w.jobs <- StatsJob{HabitID: habitID}:
	default:
		metrics.RecordStatsJob("dropped")
		logger.Warn("stats worker queue full, dropping job", "habit_id", habitID)
	}
}

// processJob warms the snapshot for the server's current UTC date. Requests
// for other dates compute their own snapshot on demand.
func (w *StatsWorker) processJob(ctx context.Context, job StatsJob) {
	log := logger.With("habit_id", job.HabitID)
	today := w.now().UTC()

	_, generation, fresh := w.cache.Get(ctx, job.HabitID, domain.DateOnly(today).Format(domain.DateLayout))
	if fresh {
		metrics.RecordStatsJob("ok")
		return
	}

	habit, err := w.habitRepo.GetByID(ctx, job.HabitID)
	if err != nil {
		metrics.RecordStatsJob("error")
		log.Warn("stats worker: fetching habit", "error", err)
		return
	}

	completions, err := w.completionRepo.ListByHabitID(ctx, job.HabitID)
	if err != nil {
		metrics.RecordStatsJob("error")
		log.Warn("stats worker: fetching completions", "error", err)
		return
	}

	snapshot := stats.Compute(habit, completions, today, stats.Options{})
	if err := w.cache.Set(ctx, snapshot, generation); err != nil {
		metrics.RecordStatsJob("error")
		log.Warn("stats worker: storing snapshot", "error", err)
		return
	}

	metrics.RecordStatsJob("ok")
	log.Debug("stats snapshot refreshed", "current_streak", snapshot.CurrentStreak, "longest_streak", snapshot.LongestStreak)
}
