package streak

import "github.com/comitanigiacomo/habit-garden/internal/core/domain"

// Overall counts the consecutive days ending today on which every tracked habit
// was completed. Days are enumerated from the earliest day present anywhere in the
// store, so a day without any entry breaks the streak. Unlike Calculate there is
// no grace for an unfinished today.
func Overall(store domain.CompletionStore, keys []domain.HabitKey, today domain.DateKey) int {
	if len(keys) == 0 {
		return 0
	}

	earliest, ok := store.EarliestDate()
	if !ok || earliest.After(today) {
		return 0
	}

	count := 0
	for day := today; !day.Before(earliest); day = day.AddDays(-1) {
		if !allDone(store, keys, day) {
			break
		}
		count++
	}
	return count
}

func allDone(store domain.CompletionStore, keys []domain.HabitKey, day domain.DateKey) bool {
	for _, k := range keys {
		if !store.IsCompleted(k, day) {
			return false
		}
	}
	return true
}
