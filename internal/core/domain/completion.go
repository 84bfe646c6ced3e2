package domain

import (
	"errors"
	"sort"
)

var ErrInvalidNote = errors.New("invalid note")

type HabitKey string

// DayMap records which days a habit was completed. A missing day means not completed.
type DayMap map[DateKey]bool

// CompletionStore is the full completion history of a profile.
// It is treated as immutable: every mutation returns a new store.
type CompletionStore map[HabitKey]DayMap

func (d DayMap) Clone() DayMap {
	out := make(DayMap, len(d))
	for day, done := range d {
		out[day] = done
	}
	return out
}

func (d DayMap) CompletedDates() []DateKey {
	dates := make([]DateKey, 0, len(d))
	for day, done := range d {
		if done {
			dates = append(dates, day)
		}
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

func (d DayMap) CompletedCount() int {
	n := 0
	for _, done := range d {
		if done {
			n++
		}
	}
	return n
}

func (s CompletionStore) Clone() CompletionStore {
	out := make(CompletionStore, len(s))
	for key, days := range s {
		out[key] = days.Clone()
	}
	return out
}

func (s CompletionStore) IsCompleted(key HabitKey, day DateKey) bool {
	return s[key][day]
}

// Toggle flips one day of one habit and returns the new store.
// Only the touched DayMap is copied; the others are shared with the receiver.
func (s CompletionStore) Toggle(key HabitKey, day DateKey) CompletionStore {
	return s.withDay(key, day, !s.IsCompleted(key, day))
}

func (s CompletionStore) Set(key HabitKey, day DateKey, done bool) CompletionStore {
	return s.withDay(key, day, done)
}

func (s CompletionStore) withDay(key HabitKey, day DateKey, done bool) CompletionStore {
	out := make(CompletionStore, len(s)+1)
	for k, days := range s {
		out[k] = days
	}
	days := s[key].Clone()
	days[day] = done
	out[key] = days
	return out
}

func (s CompletionStore) WithoutHabit(key HabitKey) CompletionStore {
	out := make(CompletionStore, len(s))
	for k, days := range s {
		if k != key {
			out[k] = days
		}
	}
	return out
}

// CompletedDates unions the completed days of the given habits, or of all habits
// when none are given. The result is sorted and free of duplicates.
func (s CompletionStore) CompletedDates(keys ...HabitKey) []DateKey {
	if len(keys) == 0 {
		for k := range s {
			keys = append(keys, k)
		}
	}

	seen := make(map[DateKey]struct{})
	for _, k := range keys {
		for day, done := range s[k] {
			if done {
				seen[day] = struct{}{}
			}
		}
	}

	dates := make([]DateKey, 0, len(seen))
	for day := range seen {
		dates = append(dates, day)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i] < dates[j] })
	return dates
}

// EarliestDate returns the earliest day recorded for any habit, completed or not.
func (s CompletionStore) EarliestDate() (DateKey, bool) {
	var earliest DateKey
	found := false
	for _, days := range s {
		for day := range days {
			if !found || day < earliest {
				earliest = day
				found = true
			}
		}
	}
	return earliest, found
}

func (s CompletionStore) TotalCompleted() int {
	total := 0
	for _, days := range s {
		total += days.CompletedCount()
	}
	return total
}

// NoteStore holds free-text notes per habit and day. Notes never affect streaks.
type NoteStore map[HabitKey]map[DateKey]string

func (n NoteStore) Note(key HabitKey, day DateKey) string {
	return n[key][day]
}

// WithNote returns a new NoteStore; an empty note removes the entry.
func (n NoteStore) WithNote(key HabitKey, day DateKey, note string) NoteStore {
	out := make(NoteStore, len(n)+1)
	for k, days := range n {
		out[k] = days
	}

	days := make(map[DateKey]string, len(n[key])+1)
	for d, text := range n[key] {
		days[d] = text
	}
	if note == "" {
		delete(days, day)
	} else {
		days[day] = note
	}

	if len(days) == 0 {
		delete(out, key)
	} else {
		out[key] = days
	}
	return out
}

func (n NoteStore) WithoutHabit(key HabitKey) NoteStore {
	out := make(NoteStore, len(n))
	for k, days := range n {
		if k != key {
			out[k] = days
		}
	}
	return out
}
