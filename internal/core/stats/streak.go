package stats

import (
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

// CurrentStreak counts consecutive days ending today. A streak whose last
// day is yesterday is still alive: today may simply not be logged yet.
func CurrentStreak(dates DateSet, today time.Time) int {
	if len(dates) == 0 {
		return 0
	}

	cursor := domain.DateOnly(today)
	if !dates.Has(cursor) {
		cursor = cursor.AddDate(0, 0, -1)
		if !dates.Has(cursor) {
			return 0
		}
	}

	streak := 0
	for dates.Has(cursor) {
		streak++
		cursor = cursor.AddDate(0, 0, -1)
	}
	return streak
}

func LongestStreak(dates DateSet) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := dates.Sorted()
	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i].Sub(sorted[i-1]) == day {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}
