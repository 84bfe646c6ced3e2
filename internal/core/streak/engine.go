// Package streak derives consecutive-day runs from completion dates.
//
// All functions are pure: "today" is always passed in, never read from the clock.
package streak

import (
	"sort"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

// Calculate returns the current and best streak of a set of completion dates.
// The input may be unsorted and contain duplicates.
//
// When two runs share the best length, the earliest one is reported in
// BestStreakDates.
func Calculate(dates []domain.DateKey, today domain.DateKey) domain.StreakResult {
	sorted := normalize(dates)
	if len(sorted) == 0 {
		return domain.StreakResult{BestStreakDates: []domain.DateKey{}}
	}

	best, bestDates := bestRun(sorted)

	set := make(map[domain.DateKey]struct{}, len(sorted))
	for _, d := range sorted {
		set[d] = struct{}{}
	}

	return domain.StreakResult{
		CurrentStreak:   current(set, today),
		BestStreak:      best,
		BestStreakDates: bestDates,
	}
}

// Best returns the length and member days of the longest run.
func Best(dates []domain.DateKey) (int, []domain.DateKey) {
	sorted := normalize(dates)
	if len(sorted) == 0 {
		return 0, []domain.DateKey{}
	}
	return bestRun(sorted)
}

// ForDayMap computes the streak of a single habit.
func ForDayMap(days domain.DayMap, today domain.DateKey) domain.StreakResult {
	return Calculate(days.CompletedDates(), today)
}

// ForHabits computes the streak of the union of the given habits' completions:
// a day counts when at least one of them was completed.
func ForHabits(store domain.CompletionStore, keys []domain.HabitKey, today domain.DateKey) domain.StreakResult {
	if len(keys) == 0 {
		return Calculate(nil, today)
	}
	return Calculate(store.CompletedDates(keys...), today)
}

func normalize(dates []domain.DateKey) []domain.DateKey {
	seen := make(map[domain.DateKey]struct{}, len(dates))
	out := make([]domain.DateKey, 0, len(dates))
	for _, d := range dates {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func bestRun(sorted []domain.DateKey) (int, []domain.DateKey) {
	bestStart, bestLen := 0, 1
	runStart, runLen := 0, 1

	for i := 1; i < len(sorted); i++ {
		if domain.DayDifference(sorted[i-1], sorted[i]) == 1 {
			runLen++
			continue
		}
		if runLen > bestLen {
			bestStart, bestLen = runStart, runLen
		}
		runStart, runLen = i, 1
	}
	if runLen > bestLen {
		bestStart, bestLen = runStart, runLen
	}

	members := make([]domain.DateKey, bestLen)
	copy(members, sorted[bestStart:bestStart+bestLen])
	return bestLen, members
}

// current walks backward from today, or from yesterday when today is still open.
func current(set map[domain.DateKey]struct{}, today domain.DateKey) int {
	day := today
	if _, ok := set[day]; !ok {
		day = day.AddDays(-1)
	}

	count := 0
	for {
		if _, ok := set[day]; !ok {
			return count
		}
		count++
		day = day.AddDays(-1)
	}
}
