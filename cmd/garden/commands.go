package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/report"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
)

func newHabitsCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "habits",
		Short: "List the tracked habits",
		Args:  cobra.NoArgs,
		RunE: withGarden(opts, func(cmd *cobra.Command, g *garden, _ []string) error {
			habits, err := g.habits.List(cmd.Context(), localProfile)
			if err != nil {
				return err
			}
			return printJSON(cmd, habits)
		}),
	}
}

func newToggleCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <habit> [date]",
		Short: "Flip the completion of a habit on a day (default today)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: withGarden(opts, func(cmd *cobra.Command, g *garden, args []string) error {
			input := services.ToggleInput{
				ProfileID: localProfile,
				HabitKey:  domain.HabitKey(args[0]),
			}
			if len(args) == 2 {
				input.Date = domain.DateKey(args[1])
			}

			result, err := g.completions.Toggle(cmd.Context(), input)
			if err != nil {
				return err
			}
			return printJSON(cmd, result)
		}),
	}
}

func newStreakCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "streak <habit>",
		Short: "Show streak, growth stage and success rate of one habit",
		Args:  cobra.ExactArgs(1),
		RunE: withGarden(opts, func(cmd *cobra.Command, g *garden, args []string) error {
			hp, err := g.progress.Habit(cmd.Context(), localProfile, domain.HabitKey(args[0]))
			if err != nil {
				return err
			}
			return printJSON(cmd, hp)
		}),
	}
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "progress",
		Short: "Show the garden: streaks, points, level and achievements",
		Args:  cobra.NoArgs,
		RunE: withGarden(opts, func(cmd *cobra.Command, g *garden, _ []string) error {
			progress, err := g.progress.Compute(cmd.Context(), localProfile)
			if err != nil {
				return err
			}
			return printJSON(cmd, progress)
		}),
	}
}

func newMonthCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "month [YYYY-MM]",
		Short: "Summarize a calendar month (default the current one)",
		Args:  cobra.MaximumNArgs(1),
		RunE: withGarden(opts, func(cmd *cobra.Command, g *garden, args []string) error {
			var year int
			var month time.Month
			if len(args) == 1 {
				var err error
				if year, month, err = report.ParseMonth(args[0]); err != nil {
					return err
				}
			}

			summary, err := g.stats.GetMonthlySummary(cmd.Context(), localProfile, year, month)
			if err != nil {
				return err
			}
			return printJSON(cmd, summary)
		}),
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export every habit with its completed dates",
		Args:  cobra.NoArgs,
		RunE: withGarden(opts, func(cmd *cobra.Command, g *garden, _ []string) error {
			rows, err := g.stats.Export(cmd.Context(), localProfile)
			if err != nil {
				return err
			}

			switch format {
			case "json":
				return printJSON(cmd, rows)
			case "csv":
				return report.WriteCSV(cmd.OutOrStdout(), rows)
			default:
				return fmt.Errorf("unknown format %q (json or csv)", format)
			}
		}),
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "output format: json or csv")
	return cmd
}
