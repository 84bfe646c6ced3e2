package report

import (
	"fmt"
	"time"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

// Month summarizes a calendar month. Streaks are counted inside the month only.
func Month(store domain.CompletionStore, habits []domain.HabitDescriptor, year int, month time.Month) (*domain.MonthlySummary, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month %d", domain.ErrInvalidDateRange, month)
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, time.Local)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	firstKey := domain.DateKeyOf(first)

	summary := &domain.MonthlySummary{
		Year:        year,
		Month:       int(month),
		DaysInMonth: daysInMonth,
		DailyCounts: make([]int, daysInMonth),
		Habits:      make([]domain.MonthlyHabit, 0, len(habits)),
	}

	for _, h := range habits {
		mh := domain.MonthlyHabit{
			HabitKey: h.Key,
			Label:    h.Label,
			Series:   make([]int, daysInMonth),
		}
		if mh.Label == "" {
			mh.Label = string(h.Key)
		}

		run := 0
		for d := 0; d < daysInMonth; d++ {
			if !store.IsCompleted(h.Key, firstKey.AddDays(d)) {
				run = 0
				continue
			}
			mh.Series[d] = 1
			mh.CompletedCount++
			summary.DailyCounts[d]++
			run++
			mh.LongestStreak = max(mh.LongestStreak, run)
		}

		mh.CompletionPercent = percent(mh.CompletedCount, daysInMonth)
		mh.MissedDays = daysInMonth - mh.CompletedCount
		summary.TotalCompleted += mh.CompletedCount
		summary.Habits = append(summary.Habits, mh)
	}

	return summary, nil
}

// ParseMonth reads a "YYYY-MM" value.
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", domain.ErrInvalidDate, s)
	}
	return t.Year(), t.Month(), nil
}
