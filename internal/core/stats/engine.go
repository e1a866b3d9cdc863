package stats

import (
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

type Options struct {
	// HeightCm enables the distance estimate for step habits when > 0.
	HeightCm float64
}

// Compute derives every statistic shown on the habit detail view. The
// completions may arrive in any order; today is the caller's local date.
func Compute(h *domain.Habit, completions []*domain.Completion, today time.Time, opts Options) *domain.HabitStats {
	today = domain.DateOnly(today)
	successful := SuccessfulDates(h, completions)

	totalValue := 0.0
	for _, c := range completions {
		totalValue += c.Value
	}

	out := &domain.HabitStats{
		HabitID:          h.ID,
		Type:             h.Type,
		Today:            today.Format(domain.DateLayout),
		CurrentStreak:    CurrentStreak(successful, today),
		LongestStreak:    LongestStreak(successful),
		Rate7:            CompletionRate(successful, today, 7),
		Rate30:           CompletionRate(successful, today, 30),
		Comparison7:      PeriodComparison(h, completions, today, 7),
		Comparison30:     PeriodComparison(h, completions, today, 30),
		DayOfWeek:        DayOfWeek(h, completions),
		Monthly:          Monthly(h, completions, today),
		PersonalRecord:   PersonalRecord(h, completions),
		Projection:       Projection(h, completions, today),
		Heatmap:          Heatmap(h, completions, today),
		TotalCompletions: len(completions),
		TotalValue:       totalValue,
		Recent:           Recent(completions),
	}

	if opts.HeightCm > 0 && IsStepHabit(h) {
		km := DistanceKm(totalValue, opts.HeightCm)
		out.DistanceKm = &km
	}

	return out
}
