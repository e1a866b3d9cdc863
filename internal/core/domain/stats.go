package domain

import "time"

const (
	TrendUp    = "up"
	TrendDown  = "down"
	TrendEqual = "equal"
)

type HabitStats struct {
	HabitID          string          `json:"habit_id"`
	Type             string          `json:"type"`
	Today            string          `json:"today"`
	CurrentStreak    int             `json:"current_streak"`
	LongestStreak    int             `json:"longest_streak"`
	Rate7            int             `json:"rate7"`
	Rate30           int             `json:"rate30"`
	Comparison7      Comparison      `json:"comparison7"`
	Comparison30     Comparison      `json:"comparison30"`
	DayOfWeek        []DayOfWeekStat `json:"day_of_week"`
	Monthly          []MonthlyStat   `json:"monthly"`
	PersonalRecord   *PersonalRecord `json:"personal_record"`
	Projection       Projection      `json:"projection"`
	Heatmap          []HeatmapDay    `json:"heatmap"`
	TotalCompletions int             `json:"total_completions"`
	TotalValue       float64         `json:"total_value"`
	Recent           []ProgressPoint `json:"recent"`
	DistanceKm       *float64        `json:"distance_km,omitempty"`
}

type Comparison struct {
	Change   int    `json:"change"`
	Trend    string `json:"trend"`
	Infinite bool   `json:"infinite,omitempty"`
}

type DayOfWeekStat struct {
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Tooltip string  `json:"tooltip"`
}

type MonthlyStat struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type PersonalRecord struct {
	Value float64 `json:"value"`
	Date  string  `json:"date"`
}

type Projection struct {
	Total int    `json:"total"`
	Avg   string `json:"avg"`
}

type HeatmapDay struct {
	Date  string `json:"date"`
	Level int    `json:"level"`
}

type ProgressPoint struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type StatsInput struct {
	UserID   string
	HabitID  string
	Today    time.Time
	HeightCm float64
}
