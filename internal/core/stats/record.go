package stats

import (
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

const (
	recentLimit = 30

	// Average stride is about 41.4% of body height.
	strideFactor = 0.414
)

// PersonalRecord returns the best single day of a counter habit. The first
// completion seen wins ties.
func PersonalRecord(h *domain.Habit, completions []*domain.Completion) *domain.PersonalRecord {
	if !h.IsCounter() || len(completions) == 0 {
		return nil
	}

	var best *domain.Completion
	for _, c := range completions {
		if best == nil || c.Value > best.Value {
			best = c
		}
	}
	return &domain.PersonalRecord{Value: best.Value, Date: best.DateKey()}
}

// YearTotal is the success-weighted total for today's year: summed values for
// counters, successful days for boolean habits.
func YearTotal(h *domain.Habit, completions []*domain.Completion, today time.Time) float64 {
	year := domain.DateOnly(today).Year()

	if h.IsCounter() {
		total := 0.0
		for _, c := range completions {
			if domain.DateOnly(c.CompletedDate).Year() == year {
				total += c.Value
			}
		}
		return total
	}

	total := 0
	for d := range SuccessfulDates(h, completions) {
		if d.Year() == year {
			total++
		}
	}
	return float64(total)
}

// Projection extrapolates the year total linearly from the daily average so far.
func Projection(h *domain.Habit, completions []*domain.Completion, today time.Time) domain.Projection {
	today = domain.DateOnly(today)
	total := YearTotal(h, completions, today)

	elapsed := max(today.YearDay(), 1)
	remaining := daysInYear(today.Year()) - today.YearDay()

	avg := total / float64(elapsed)
	return domain.Projection{
		Total: int(math.Round(total + avg*float64(remaining))),
		Avg:   strconv.FormatFloat(avg, 'f', 1, 64),
	}
}

// HeatmapLevel maps one day's completion to an intensity bucket 0..4.
func HeatmapLevel(h *domain.Habit, c *domain.Completion) int {
	if c == nil {
		return 0
	}

	if !h.IsCounter() {
		if c.State == domain.CompletionStateCompleted {
			return 4
		}
		return 0
	}

	switch {
	case c.Value <= 0:
		return 0
	case h.Goal <= 0:
		return 4
	case c.Value >= h.Goal:
		return 4
	case c.Value >= 0.75*h.Goal:
		return 3
	case c.Value >= 0.5*h.Goal:
		return 2
	}
	return 1
}

// Heatmap emits one entry per calendar day of today's year, including days
// with no completion.
func Heatmap(h *domain.Habit, completions []*domain.Completion, today time.Time) []domain.HeatmapDay {
	byDate := indexByDate(h, completions)

	year := domain.DateOnly(today).Year()
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	n := daysInYear(year)

	out := make([]domain.HeatmapDay, 0, n)
	for i := 0; i < n; i++ {
		d := start.AddDate(0, 0, i)
		out = append(out, domain.HeatmapDay{
			Date:  d.Format(domain.DateLayout),
			Level: HeatmapLevel(h, byDate[d]),
		})
	}
	return out
}

// indexByDate keys completions by calendar date. Should the store ever hand
// back two rows for one date, the stronger one is kept.
func indexByDate(h *domain.Habit, completions []*domain.Completion) map[time.Time]*domain.Completion {
	byDate := make(map[time.Time]*domain.Completion, len(completions))
	for _, c := range completions {
		d := domain.DateOnly(c.CompletedDate)
		if prev, ok := byDate[d]; ok && HeatmapLevel(h, prev) >= HeatmapLevel(h, c) {
			continue
		}
		byDate[d] = c
	}
	return byDate
}

// Recent returns the latest completions in ascending date order, for the
// progress chart.
func Recent(completions []*domain.Completion) []domain.ProgressPoint {
	sorted := make([]*domain.Completion, len(completions))
	copy(sorted, completions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CompletedDate.Before(sorted[j].CompletedDate)
	})

	if len(sorted) > recentLimit {
		sorted = sorted[len(sorted)-recentLimit:]
	}

	out := make([]domain.ProgressPoint, 0, len(sorted))
	for _, c := range sorted {
		out = append(out, domain.ProgressPoint{Date: c.DateKey(), Value: c.Value})
	}
	return out
}

func IsStepHabit(h *domain.Habit) bool {
	unit := strings.ToLower(h.Unit)
	return strings.Contains(unit, "step") || strings.Contains(unit, "paso")
}

// DistanceKm converts a step count to kilometres for a walker of heightCm.
func DistanceKm(steps, heightCm float64) float64 {
	if steps <= 0 || heightCm <= 0 {
		return 0
	}
	return round2(steps * heightCm * strideFactor / 100000)
}
