package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/streak"
)

// Export returns one row per habit with its full completion history.
func Export(store domain.CompletionStore, habits []domain.HabitDescriptor) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(habits))
	for _, h := range habits {
		dates := store[h.Key].CompletedDates()
		best, _ := streak.Best(dates)

		name := h.Label
		if name == "" {
			name = string(h.Key)
		}
		rows = append(rows, domain.ExportRow{
			HabitName:            name,
			CompletedDates:       dates,
			AllTimeLongestStreak: best,
		})
	}
	return rows
}

var csvHeader = []string{"Habit", "TotalCompletions", "AllTimeLongestStreak", "CompletedDates"}

// WriteCSV writes rows with a header line. Dates are joined into one field.
func WriteCSV(w io.Writer, rows []domain.ExportRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, r := range rows {
		dates := make([]string, len(r.CompletedDates))
		for i, d := range r.CompletedDates {
			dates[i] = d.String()
		}
		record := []string{
			r.HabitName,
			strconv.Itoa(len(r.CompletedDates)),
			strconv.Itoa(r.AllTimeLongestStreak),
			strings.Join(dates, ", "),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row %q: %w", r.HabitName, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
