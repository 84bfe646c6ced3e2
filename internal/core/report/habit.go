package report

import (
	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/growth"
	"github.com/comitanigiacomo/habit-garden/internal/core/streak"
)

// HabitSummary is the dashboard card of one habit. Tracked days are the days
// with any recorded entry, completed or not.
func HabitSummary(habit domain.HabitDescriptor, days domain.DayMap, today domain.DateKey) domain.HabitProgress {
	result := streak.ForDayMap(days, today)
	completed := days.CompletedCount()

	return domain.HabitProgress{
		Habit:          habit,
		Streak:         result,
		Growth:         growth.ForStreak(result.CurrentStreak),
		TotalCompleted: completed,
		TrackedDays:    len(days),
		SuccessRate:    percent(completed, len(days)),
		CompletedToday: days[today],
	}
}

// HabitSummaries builds one card per habit, in list order.
func HabitSummaries(store domain.CompletionStore, habits []domain.HabitDescriptor, today domain.DateKey) []domain.HabitProgress {
	out := make([]domain.HabitProgress, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitSummary(h, store[h.Key], today))
	}
	return out
}
