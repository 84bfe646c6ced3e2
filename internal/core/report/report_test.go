package report_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/report"
)

var testHabits = []domain.HabitDescriptor{
	{Key: "waterIntake", Label: "Drink Water", Emoji: "💧"},
	{Key: "study", Label: "Study", Emoji: "📚"},
}

func TestWeek(t *testing.T) {
	tests := []struct {
		anchor    domain.DateKey
		wantStart domain.DateKey
		wantEnd   domain.DateKey
	}{
		{"2024-01-10", "2024-01-07", "2024-01-13"}, // Wednesday
		{"2024-01-07", "2024-01-07", "2024-01-13"}, // Sunday
		{"2024-01-13", "2024-01-07", "2024-01-13"}, // Saturday
		{"2024-03-01", "2024-02-25", "2024-03-02"},
	}
	for _, tt := range tests {
		start, end := report.Week(tt.anchor)
		assert.Equal(t, tt.wantStart, start, "anchor %s", tt.anchor)
		assert.Equal(t, tt.wantEnd, end, "anchor %s", tt.anchor)
	}
}

func TestRange(t *testing.T) {
	store := domain.CompletionStore{
		"waterIntake": {"2024-01-10": true, "2024-01-12": true},
		"study":       {"2024-01-12": true, "2024-01-11": false},
	}

	t.Run("Success: Calculates rates and fills missing days correctly", func(t *testing.T) {
		stats, err := report.Range(store, testHabits, "2024-01-10", "2024-01-12", "2024-01-12")
		require.NoError(t, err)

		assert.Equal(t, 2, stats.TotalHabits)
		assert.Equal(t, "2024-01-10", stats.StartDate)
		assert.Equal(t, "2024-01-12", stats.EndDate)
		assert.Equal(t, 6, stats.TotalPossible)
		assert.Equal(t, 3, stats.TotalCompleted)
		assert.InDelta(t, 50.0, stats.OverallRate, 0.01)
		assert.Equal(t, 2, stats.TodayCompleted)
		assert.Equal(t, 100, stats.TodayPercent)

		require.Len(t, stats.HabitStats, 2)
		water := stats.HabitStats[0]
		assert.Equal(t, []int{1, 0, 1}, water.DailyProgress)
		assert.Equal(t, 2, water.DaysCompleted)
		assert.InDelta(t, 66.66, water.CompletionRate, 0.1)

		assert.Equal(t, []int{0, 0, 1}, stats.HabitStats[1].DailyProgress)
	})

	t.Run("Edge Case: No Habits returns zero stats", func(t *testing.T) {
		stats, err := report.Range(store, nil, "2024-01-10", "2024-01-12", "2024-01-12")
		require.NoError(t, err)
		assert.Zero(t, stats.TotalPossible)
		assert.Zero(t, stats.OverallRate)
		assert.Zero(t, stats.TodayPercent)
		assert.Empty(t, stats.HabitStats)
	})

	t.Run("Fail: end before start", func(t *testing.T) {
		_, err := report.Range(store, testHabits, "2024-01-12", "2024-01-10", "2024-01-12")
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("Fail: range too long", func(t *testing.T) {
		_, err := report.Range(store, testHabits, "2023-01-01", "2024-12-31", "2024-01-12")
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("Fail: malformed date", func(t *testing.T) {
		_, err := report.Range(store, testHabits, "2024-1-1", "2024-01-10", "2024-01-12")
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})
}

func TestMonth(t *testing.T) {
	store := domain.CompletionStore{
		"waterIntake": {
			"2024-02-01": true, "2024-02-02": true, "2024-02-03": true,
			"2024-02-10": true, "2024-01-31": true, "2024-03-01": true,
		},
	}

	summary, err := report.Month(store, testHabits, 2024, time.February)
	require.NoError(t, err)

	assert.Equal(t, 29, summary.DaysInMonth)
	assert.Equal(t, 4, summary.TotalCompleted)
	require.Len(t, summary.DailyCounts, 29)
	assert.Equal(t, 1, summary.DailyCounts[0])
	assert.Equal(t, 0, summary.DailyCounts[4])

	water := summary.Habits[0]
	assert.Equal(t, 4, water.CompletedCount)
	assert.Equal(t, 3, water.LongestStreak, "runs are clipped to the month")
	assert.Equal(t, 14, water.CompletionPercent)
	assert.Equal(t, 25, water.MissedDays)

	study := summary.Habits[1]
	assert.Equal(t, 0, study.CompletedCount)
	assert.Equal(t, 29, study.MissedDays)

	_, err = report.Month(store, testHabits, 2024, 13)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestParseMonth(t *testing.T) {
	y, m, err := report.ParseMonth("2024-02")
	require.NoError(t, err)
	assert.Equal(t, 2024, y)
	assert.Equal(t, time.February, m)

	_, _, err = report.ParseMonth("02-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestHabitSummary(t *testing.T) {
	days := domain.DayMap{"2024-01-08": true, "2024-01-09": true, "2024-01-10": true, "2024-01-05": false}

	got := report.HabitSummary(testHabits[0], days, "2024-01-10")
	assert.Equal(t, 3, got.Streak.CurrentStreak)
	assert.Equal(t, 3, got.TotalCompleted)
	assert.Equal(t, 4, got.TrackedDays)
	assert.Equal(t, 75, got.SuccessRate)
	assert.True(t, got.CompletedToday)
	assert.Equal(t, domain.StageSprout, got.Growth.Stage)

	empty := report.HabitSummary(testHabits[1], nil, "2024-01-10")
	assert.Zero(t, empty.SuccessRate)
	assert.Equal(t, domain.StageEmpty, empty.Growth.Stage)
}

func TestExport(t *testing.T) {
	store := domain.CompletionStore{
		"waterIntake": {"2024-01-03": true, "2024-01-01": true, "2024-01-02": true, "2024-01-09": true},
	}

	rows := report.Export(store, testHabits)
	want := []domain.ExportRow{
		{
			HabitName:            "Drink Water",
			CompletedDates:       []domain.DateKey{"2024-01-01", "2024-01-02", "2024-01-03", "2024-01-09"},
			AllTimeLongestStreak: 3,
		},
		{
			HabitName:            "Study",
			CompletedDates:       []domain.DateKey{},
			AllTimeLongestStreak: 0,
		},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Errorf("Export() mismatch (-want +got):\n%s", diff)
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteCSV(&buf, rows))
	assert.Equal(t,
		"Habit,TotalCompletions,AllTimeLongestStreak,CompletedDates\n"+
			"Drink Water,4,3,\"2024-01-01, 2024-01-02, 2024-01-03, 2024-01-09\"\n"+
			"Study,0,0,\n",
		buf.String())
}
