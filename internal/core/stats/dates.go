// Package stats derives display statistics for a single habit from its raw
// completion history. Every function is pure: the same habit, completions
// and "today" always produce the same result, and nothing is cached.
package stats

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

const day = 24 * time.Hour

// DateSet is a set of calendar dates, all normalized to midnight UTC.
type DateSet map[time.Time]struct{}

func (s DateSet) Has(d time.Time) bool {
	_, ok := s[domain.DateOnly(d)]
	return ok
}

// Sorted returns the dates in ascending order.
func (s DateSet) Sorted() []time.Time {
	out := make([]time.Time, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, d := range dates {
		set[domain.DateOnly(d)] = struct{}{}
	}
	return set
}

// SuccessfulDates returns the dates on which the habit counts as done.
func SuccessfulDates(h *domain.Habit, completions []*domain.Completion) DateSet {
	set := make(DateSet, len(completions))
	for _, c := range completions {
		if h.IsSuccessful(c) {
			set[domain.DateOnly(c.CompletedDate)] = struct{}{}
		}
	}
	return set
}

// inWindow reports whether d lies in [today-windowDays, today].
func inWindow(d, today time.Time, windowDays int) bool {
	start := today.AddDate(0, 0, -windowDays)
	return !d.Before(start) && !d.After(today)
}

func daysInYear(year int) int {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
}
