package stats

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

var (
	weekdayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	monthNames   = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
)

// DayOfWeek buckets history by weekday, Sunday first. Counter habits report
// the average value over every logged day (effort, not only success);
// boolean habits report how many successful days fell on each weekday.
func DayOfWeek(h *domain.Habit, completions []*domain.Completion) []domain.DayOfWeekStat {
	out := make([]domain.DayOfWeekStat, 7)

	if h.IsCounter() {
		var sums [7]float64
		var counts [7]int
		for _, c := range completions {
			wd := domain.DateOnly(c.CompletedDate).Weekday()
			sums[wd] += c.Value
			counts[wd]++
		}
		for i := range out {
			avg := 0.0
			if counts[i] > 0 {
				avg = round2(sums[i] / float64(counts[i]))
			}
			out[i] = domain.DayOfWeekStat{
				Name:    weekdayNames[i],
				Value:   avg,
				Tooltip: strings.TrimSpace(fmt.Sprintf("Average: %.1f %s", avg, h.Unit)),
			}
		}
		return out
	}

	var counts [7]int
	for d := range SuccessfulDates(h, completions) {
		counts[d.Weekday()]++
	}
	for i := range out {
		out[i] = domain.DayOfWeekStat{
			Name:    weekdayNames[i],
			Value:   float64(counts[i]),
			Tooltip: fmt.Sprintf("%d completions", counts[i]),
		}
	}
	return out
}

// Monthly counts successful days per month of today's year. All twelve
// months are always present.
func Monthly(h *domain.Habit, completions []*domain.Completion, today time.Time) []domain.MonthlyStat {
	out := make([]domain.MonthlyStat, 12)
	for i := range out {
		out[i].Name = monthNames[i]
	}

	year := domain.DateOnly(today).Year()
	for d := range SuccessfulDates(h, completions) {
		if d.Year() == year {
			out[d.Month()-1].Count++
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
