package domain

import "errors"

var ErrInvalidDateRange = errors.New("invalid date range")

// MaxRangeDays bounds a single range report.
const MaxRangeDays = 366

type RangeStats struct {
	StartDate      string      `json:"start_date"`
	EndDate        string      `json:"end_date"`
	TotalHabits    int         `json:"total_habits"`
	TotalCompleted int         `json:"total_completed"`
	TotalPossible  int         `json:"total_possible"`
	OverallRate    float64     `json:"overall_completion_rate"`
	TodayCompleted int         `json:"today_completed"`
	TodayPercent   int         `json:"today_percent"`
	HabitStats     []HabitStat `json:"habits"`
}

type HabitStat struct {
	HabitKey       HabitKey `json:"habit_key"`
	Label          string   `json:"label"`
	Emoji          string   `json:"emoji"`
	CompletionRate float64  `json:"completion_rate"`
	DaysCompleted  int      `json:"days_completed"`
	DailyProgress  []int    `json:"daily_progress"`
}

type MonthlySummary struct {
	Year           int            `json:"year"`
	Month          int            `json:"month"`
	DaysInMonth    int            `json:"days_in_month"`
	TotalCompleted int            `json:"total_completed"`
	DailyCounts    []int          `json:"daily_counts"`
	Habits         []MonthlyHabit `json:"habits"`
}

type MonthlyHabit struct {
	HabitKey          HabitKey `json:"habit_key"`
	Label             string   `json:"label"`
	Series            []int    `json:"series"`
	CompletedCount    int      `json:"completed_count"`
	LongestStreak     int      `json:"longest_streak"`
	CompletionPercent int      `json:"completion_percent"`
	MissedDays        int      `json:"missed_days"`
}

type ExportRow struct {
	HabitName            string    `json:"habitName"`
	CompletedDates       []DateKey `json:"completedDates"`
	AllTimeLongestStreak int       `json:"allTimeLongestStreak"`
}

type StatsInput struct {
	ProfileID string
	StartDate DateKey
	EndDate   DateKey
}
