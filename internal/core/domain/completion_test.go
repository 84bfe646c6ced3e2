package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompletionStore_Toggle(t *testing.T) {
	t.Run("Copy-on-write: original store is untouched", func(t *testing.T) {
		original := domain.CompletionStore{
			"exercise": {"2024-01-01": true},
			"sleep":    {"2024-01-01": true},
		}

		updated := original.Toggle("exercise", "2024-01-02")

		assert.True(t, updated.IsCompleted("exercise", "2024-01-02"))
		assert.False(t, original.IsCompleted("exercise", "2024-01-02"))
		assert.Len(t, original["exercise"], 1)
		assert.True(t, updated.IsCompleted("sleep", "2024-01-01"))
	})

	t.Run("Toggling twice yields not completed", func(t *testing.T) {
		s := domain.CompletionStore{}.Toggle("study", "2024-01-01").Toggle("study", "2024-01-01")
		assert.False(t, s.IsCompleted("study", "2024-01-01"))
	})

	t.Run("Toggle on unknown habit creates its day map", func(t *testing.T) {
		var s domain.CompletionStore
		updated := s.Toggle("new", "2024-05-05")
		assert.True(t, updated.IsCompleted("new", "2024-05-05"))
	})
}

func TestCompletionStore_WithoutHabit(t *testing.T) {
	s := domain.CompletionStore{
		"a": {"2024-01-01": true},
		"b": {"2024-01-01": true},
	}

	out := s.WithoutHabit("a")

	assert.NotContains(t, out, domain.HabitKey("a"))
	assert.Contains(t, s, domain.HabitKey("a"))
	assert.Contains(t, out, domain.HabitKey("b"))
}

func TestCompletionStore_CompletedDates(t *testing.T) {
	s := domain.CompletionStore{
		"a": {"2024-01-03": true, "2024-01-01": true, "2024-01-02": false},
		"b": {"2024-01-01": true, "2024-01-05": true},
	}

	assert.Equal(t, []domain.DateKey{"2024-01-01", "2024-01-03", "2024-01-05"}, s.CompletedDates())
	assert.Equal(t, []domain.DateKey{"2024-01-01", "2024-01-03"}, s.CompletedDates("a"))
	assert.Empty(t, s.CompletedDates("missing"))
}

func TestCompletionStore_EarliestAndTotals(t *testing.T) {
	s := domain.CompletionStore{
		"a": {"2024-01-03": true, "2023-12-30": false},
		"b": {"2024-01-01": true},
	}

	earliest, ok := s.EarliestDate()
	require.True(t, ok)
	assert.Equal(t, domain.DateKey("2023-12-30"), earliest, "unchecked days still count as tracked")
	assert.Equal(t, 2, s.TotalCompleted())

	_, ok = domain.CompletionStore{}.EarliestDate()
	assert.False(t, ok)
}

func TestCompletionStore_JSONShape(t *testing.T) {
	raw := `{"exercise":{"2024-01-01":true,"2024-01-02":false}}`

	var s domain.CompletionStore
	require.NoError(t, json.Unmarshal([]byte(raw), &s))

	assert.True(t, s.IsCompleted("exercise", "2024-01-01"))
	assert.False(t, s.IsCompleted("exercise", "2024-01-02"))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(out))
}

func TestNoteStore_WithNote(t *testing.T) {
	var notes domain.NoteStore

	n1 := notes.WithNote("journaling", "2024-01-01", "felt great")
	assert.Equal(t, "felt great", n1.Note("journaling", "2024-01-01"))
	assert.Empty(t, notes.Note("journaling", "2024-01-01"))

	n2 := n1.WithNote("journaling", "2024-01-01", "")
	assert.NotContains(t, n2, domain.HabitKey("journaling"), "empty note removes the entry")
	assert.Equal(t, "felt great", n1.Note("journaling", "2024-01-01"))
}
