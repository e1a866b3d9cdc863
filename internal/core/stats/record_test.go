package stats

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/mishabitos-api/internal/core/domain"
)

func TestPersonalRecord(t *testing.T) {
	counter := &domain.Habit{Type: domain.HabitTypeCounter, Goal: 10}

	t.Run("Max value wins", func(t *testing.T) {
		completions := []*domain.Completion{
			counted(daysAgo(3), 5),
			counted(daysAgo(2), 12),
			counted(daysAgo(1), 3),
		}
		got := PersonalRecord(counter, completions)

		require.NotNil(t, got)
		assert.Equal(t, 12.0, got.Value)
		assert.Equal(t, daysAgo(2).Format(domain.DateLayout), got.Date)
	})

	t.Run("First seen wins ties", func(t *testing.T) {
		completions := []*domain.Completion{counted(daysAgo(1), 8), counted(daysAgo(5), 8)}
		got := PersonalRecord(counter, completions)

		require.NotNil(t, got)
		assert.Equal(t, daysAgo(1).Format(domain.DateLayout), got.Date)
	})

	t.Run("Boolean habits have no record", func(t *testing.T) {
		boolean := &domain.Habit{Type: domain.HabitTypeBoolean}
		assert.Nil(t, PersonalRecord(boolean, []*domain.Completion{counted(today, 5)}))
	})

	t.Run("Empty history", func(t *testing.T) {
		assert.Nil(t, PersonalRecord(counter, nil))
	})
}

func TestProjection(t *testing.T) {
	t.Run("Counter extrapolates the daily average", func(t *testing.T) {
		h := &domain.Habit{Type: domain.HabitTypeCounter, Goal: 1}
		// 2026-10-16 is day 289 of 365.
		completions := []*domain.Completion{
			counted(daysAgo(1), 200),
			counted(daysAgo(100), 378),
			counted(time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 1000),
		}

		got := Projection(h, completions, today)

		// avg = 578 / 289 = 2.0; projected = 578 + 2*76
		assert.Equal(t, "2.0", got.Avg)
		assert.Equal(t, 730, got.Total)
	})

	t.Run("Boolean counts successful days", func(t *testing.T) {
		h := &domain.Habit{Type: domain.HabitTypeBoolean}
		completions := []*domain.Completion{
			completed(today),
			{CompletedDate: daysAgo(1), State: domain.CompletionStateMissed},
		}

		got := Projection(h, completions, today)

		assert.Equal(t, 1.0, YearTotal(h, completions, today))
		assert.Equal(t, "0.0", got.Avg)
		assert.Equal(t, 1, got.Total)
	})

	t.Run("First day of the year", func(t *testing.T) {
		h := &domain.Habit{Type: domain.HabitTypeBoolean}
		jan1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

		got := Projection(h, []*domain.Completion{completed(jan1)}, jan1)

		assert.Equal(t, "1.0", got.Avg)
		assert.Equal(t, 365, got.Total)
	})

	t.Run("Empty history", func(t *testing.T) {
		got := Projection(&domain.Habit{Type: domain.HabitTypeCounter}, nil, today)
		assert.Equal(t, domain.Projection{Total: 0, Avg: "0.0"}, got)
	})
}

func TestHeatmapLevel(t *testing.T) {
	counter := &domain.Habit{Type: domain.HabitTypeCounter, Goal: 10}

	tests := []struct {
		value float64
		want  int
	}{
		{10, 4}, {15, 4}, {7.5, 3}, {7, 2}, {5, 2}, {4.9, 1}, {0.1, 1}, {0, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HeatmapLevel(counter, counted(today, tt.value)), "value %v", tt.value)
	}

	assert.Equal(t, 0, HeatmapLevel(counter, nil))

	zeroGoal := &domain.Habit{Type: domain.HabitTypeCounter, Goal: 0}
	assert.Equal(t, 4, HeatmapLevel(zeroGoal, counted(today, 1)))
	assert.Equal(t, 0, HeatmapLevel(zeroGoal, counted(today, 0)))

	boolean := &domain.Habit{Type: domain.HabitTypeBoolean}
	assert.Equal(t, 4, HeatmapLevel(boolean, completed(today)))
	assert.Equal(t, 0, HeatmapLevel(boolean, &domain.Completion{CompletedDate: today, State: domain.CompletionStateFailed}))
}

func TestHeatmap(t *testing.T) {
	h := &domain.Habit{Type: domain.HabitTypeCounter, Goal: 10}
	completions := []*domain.Completion{
		counted(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 10),
		counted(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), 7.5),
		counted(time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC), 0),
		counted(time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), 7),
		counted(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 10),
	}

	got := Heatmap(h, completions, today)

	require.Len(t, got, 365)
	assert.Equal(t, domain.HeatmapDay{Date: "2026-01-01", Level: 4}, got[0])
	assert.Equal(t, 3, got[1].Level)
	assert.Equal(t, 0, got[2].Level)
	assert.Equal(t, 0, got[3].Level, "day without a record")
	assert.Equal(t, 2, got[4].Level, "70% of the goal is below the 75% step")
	assert.Equal(t, "2026-12-31", got[364].Date)

	t.Run("Leap year has 366 days", func(t *testing.T) {
		leap := Heatmap(h, nil, time.Date(2028, 2, 1, 0, 0, 0, 0, time.UTC))
		assert.Len(t, leap, 366)
		assert.Equal(t, "2028-02-29", leap[59].Date)
	})
}

func TestRecent(t *testing.T) {
	var completions []*domain.Completion
	for i := 0; i < 40; i++ {
		completions = append(completions, counted(daysAgo(i), float64(i)))
	}

	got := Recent(completions)

	require.Len(t, got, 30)
	assert.Equal(t, daysAgo(29).Format(domain.DateLayout), got[0].Date)
	assert.Equal(t, today.Format(domain.DateLayout), got[29].Date)
	assert.Equal(t, 0.0, got[29].Value)
}

func TestDistanceKm(t *testing.T) {
	assert.Equal(t, 7.04, DistanceKm(10000, 170))
	assert.Equal(t, 0.0, DistanceKm(0, 170))
	assert.Equal(t, 0.0, DistanceKm(10000, 0))

	assert.True(t, IsStepHabit(&domain.Habit{Unit: "Pasos"}))
	assert.True(t, IsStepHabit(&domain.Habit{Unit: "steps"}))
	assert.False(t, IsStepHabit(&domain.Habit{Unit: "pages"}))
}
