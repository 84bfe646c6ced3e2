package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

func run(t *testing.T, dataDir, driver string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--data-dir", dataDir, "--driver", driver, "--today", "2024-01-10"}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func TestGardenCLI(t *testing.T) {
	for _, driver := range []string{"file", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			dir := t.TempDir()

			t.Run("Habits lists the defaults", func(t *testing.T) {
				out, err := run(t, dir, driver, "habits")
				require.NoError(t, err)

				var habits []domain.HabitDescriptor
				require.NoError(t, json.Unmarshal([]byte(out), &habits))
				assert.Len(t, habits, len(domain.DefaultHabits()))
			})

			t.Run("Toggle builds a streak across invocations", func(t *testing.T) {
				for _, day := range []string{"2024-01-08", "2024-01-09", "2024-01-10"} {
					_, err := run(t, dir, driver, "toggle", "exercise", day)
					require.NoError(t, err)
				}

				out, err := run(t, dir, driver, "streak", "exercise")
				require.NoError(t, err)

				var hp domain.HabitProgress
				require.NoError(t, json.Unmarshal([]byte(out), &hp))
				assert.Equal(t, 3, hp.Streak.CurrentStreak)
				assert.Equal(t, domain.StageSprout, hp.Growth.Stage)
			})

			t.Run("Toggle twice undoes", func(t *testing.T) {
				out, err := run(t, dir, driver, "toggle", "study")
				require.NoError(t, err)
				var first services.ToggleResult
				require.NoError(t, json.Unmarshal([]byte(out), &first))
				assert.True(t, first.Completed)
				assert.Equal(t, domain.DateKey("2024-01-10"), first.Date)

				out, err = run(t, dir, driver, "toggle", "study")
				require.NoError(t, err)
				var second services.ToggleResult
				require.NoError(t, json.Unmarshal([]byte(out), &second))
				assert.False(t, second.Completed)
			})

			t.Run("Progress", func(t *testing.T) {
				out, err := run(t, dir, driver, "progress")
				require.NoError(t, err)

				var progress domain.Progress
				require.NoError(t, json.Unmarshal([]byte(out), &progress))
				assert.Equal(t, 3, progress.Stats.TotalCompleted)
				assert.Equal(t, 3, progress.Garden.CurrentStreak)
				assert.Equal(t, domain.DateKey("2024-01-10"), progress.Date)
			})

			t.Run("Month", func(t *testing.T) {
				out, err := run(t, dir, driver, "month", "2024-01")
				require.NoError(t, err)

				var summary domain.MonthlySummary
				require.NoError(t, json.Unmarshal([]byte(out), &summary))
				assert.Equal(t, 31, summary.DaysInMonth)
				assert.Equal(t, 3, summary.TotalCompleted)
			})

			t.Run("Export csv", func(t *testing.T) {
				out, err := run(t, dir, driver, "export", "--format", "csv")
				require.NoError(t, err)
				assert.Contains(t, out, `Exercise,`)
				assert.Contains(t, out, `"2024-01-08, 2024-01-09, 2024-01-10"`)
			})
		})
	}
}

func TestGardenCLI_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		args []string
		want error
	}{
		{"Unknown habit", []string{"toggle", "flying"}, domain.ErrHabitNotFound},
		{"Invalid date", []string{"toggle", "exercise", "2024-13-40"}, domain.ErrInvalidDate},
		{"Future date", []string{"toggle", "exercise", "2024-02-01"}, domain.ErrFutureDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, dir, "file", tt.args...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("Bad month", func(t *testing.T) {
		_, err := run(t, dir, "file", "month", "January")
		assert.Error(t, err)
	})

	t.Run("Bad export format", func(t *testing.T) {
		_, err := run(t, dir, "file", "export", "--format", "xml")
		assert.ErrorContains(t, err, "unknown format")
	})

	t.Run("Unsupported driver", func(t *testing.T) {
		_, err := run(t, dir, "redis", "habits")
		assert.ErrorContains(t, err, "unsupported driver")
	})

	t.Run("Bad today flag", func(t *testing.T) {
		cmd := newRootCmd()
		cmd.SetOut(&bytes.Buffer{})
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs([]string{"--data-dir", dir, "--today", "tomorrow", "habits"})
		err := cmd.Execute()
		assert.ErrorIs(t, err, domain.ErrInvalidDate)
	})

	t.Run("Missing argument", func(t *testing.T) {
		_, err := run(t, dir, "file", "streak")
		assert.ErrorContains(t, err, "accepts 1 arg")
	})
}
