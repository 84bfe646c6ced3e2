// Package report builds the tabular views over a completion store: date ranges,
// calendar months, per-habit dashboards and exports.
package report

import (
	"fmt"
	"math"
	"time"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

// Week returns the Sunday-to-Saturday week containing anchor.
func Week(anchor domain.DateKey) (domain.DateKey, domain.DateKey) {
	offset := int(anchor.Time().Weekday() - time.Sunday)
	start := anchor.AddDays(-offset)
	return start, start.AddDays(6)
}

// Range reports every habit over the inclusive range [start, end].
func Range(store domain.CompletionStore, habits []domain.HabitDescriptor, start, end, today domain.DateKey) (*domain.RangeStats, error) {
	if !start.Valid() || !end.Valid() {
		return nil, fmt.Errorf("%w: %q..%q", domain.ErrInvalidDate, start, end)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end %s is before start %s", domain.ErrInvalidDateRange, end, start)
	}
	if n := domain.DayDifference(start, end) + 1; n > domain.MaxRangeDays {
		return nil, fmt.Errorf("%w: %d days exceeds %d", domain.ErrInvalidDateRange, n, domain.MaxRangeDays)
	}
	days := domain.DaysBetween(start, end)

	stats := &domain.RangeStats{
		StartDate:     start.String(),
		EndDate:       end.String(),
		TotalHabits:   len(habits),
		TotalPossible: len(habits) * len(days),
		HabitStats:    make([]domain.HabitStat, 0, len(habits)),
	}

	for _, h := range habits {
		hStat := domain.HabitStat{
			HabitKey:      h.Key,
			Label:         h.Label,
			Emoji:         h.Emoji,
			DailyProgress: make([]int, 0, len(days)),
		}

		for _, day := range days {
			if store.IsCompleted(h.Key, day) {
				hStat.DailyProgress = append(hStat.DailyProgress, 1)
				hStat.DaysCompleted++
				continue
			}
			hStat.DailyProgress = append(hStat.DailyProgress, 0)
		}
		hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(len(days)) * 100

		stats.TotalCompleted += hStat.DaysCompleted
		if store.IsCompleted(h.Key, today) {
			stats.TodayCompleted++
		}
		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if stats.TotalPossible > 0 {
		stats.OverallRate = float64(stats.TotalCompleted) / float64(stats.TotalPossible) * 100
	}
	stats.TodayPercent = percent(stats.TodayCompleted, len(habits))

	return stats, nil
}

func percent(part, whole int) int {
	if whole <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
