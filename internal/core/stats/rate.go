package stats

import (
	"math"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

// CompletionRate is the share of the last windowDays that were successful,
// as a rounded percentage. The window [today-windowDays, today] holds one
// day more than windowDays, so the result is capped at 100.
func CompletionRate(dates DateSet, today time.Time, windowDays int) int {
	if windowDays <= 0 {
		return 0
	}

	today = domain.DateOnly(today)
	count := 0
	for d := range dates {
		if inWindow(d, today, windowDays) {
			count++
		}
	}

	rate := int(math.Round(float64(count) / float64(windowDays) * 100))
	return min(rate, 100)
}

// PeriodComparison compares the window [today-w, today] with the one right
// before it, [today-2w, today-w). Counters compare summed values, boolean
// habits compare entry counts.
func PeriodComparison(h *domain.Habit, completions []*domain.Completion, today time.Time, windowDays int) domain.Comparison {
	today = domain.DateOnly(today)
	currentStart := today.AddDate(0, 0, -windowDays)
	previousStart := today.AddDate(0, 0, -2*windowDays)

	var current, previous float64
	for _, c := range completions {
		d := domain.DateOnly(c.CompletedDate)
		metric := 1.0
		if h.IsCounter() {
			metric = c.Value
		}

		switch {
		case !d.Before(currentStart) && !d.After(today):
			current += metric
		case !d.Before(previousStart) && d.Before(currentStart):
			previous += metric
		}
	}

	if previous == 0 {
		if current > 0 {
			return domain.Comparison{Change: 100, Trend: domain.TrendUp, Infinite: true}
		}
		return domain.Comparison{Change: 0, Trend: domain.TrendEqual}
	}

	change := int(math.Round((current - previous) / previous * 100))
	return domain.Comparison{Change: change, Trend: trendOf(change)}
}

func trendOf(change int) string {
	switch {
	case change > 0:
		return domain.TrendUp
	case change < 0:
		return domain.TrendDown
	}
	return domain.TrendEqual
}
