package main

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/adapters/repository"
	"github.com/comitanigiacomo/habit-garden/internal/adapters/storage"
	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
	"github.com/comitanigiacomo/habit-garden/internal/core/gamification"
	"github.com/comitanigiacomo/habit-garden/internal/core/services"
	"github.com/comitanigiacomo/habit-garden/internal/core/workers"
	"github.com/comitanigiacomo/habit-garden/internal/logger"
)

// localProfile is the only profile the CLI reads and writes.
const localProfile = "local"

type rootOptions struct {
	dataDir string
	driver  string
	today   string
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "garden",
		Short: "Track daily habits and grow your garden",
		Long: `garden keeps a local habit log and derives streaks, growth stages,
points and achievements from it.

State lives in --data-dir, either as JSON files or in a SQLite database.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "./garden-data", "directory holding the garden state")
	root.PersistentFlags().StringVar(&opts.driver, "driver", storage.DriverFile, "storage driver: file or sqlite")
	root.PersistentFlags().StringVar(&opts.today, "today", "", "pretend today is this date (YYYY-MM-DD)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newHabitsCmd(opts),
		newToggleCmd(opts),
		newStreakCmd(opts),
		newProgressCmd(opts),
		newMonthCmd(opts),
		newExportCmd(opts),
	)
	return root
}

// garden is the service graph of one CLI invocation.
type garden struct {
	store       storage.Backend
	habits      *services.HabitService
	completions *services.CompletionService
	progress    *services.ProgressService
	stats       *services.StatsService
	logger      *zap.Logger
}

func openGarden(ctx context.Context, opts *rootOptions) (*garden, error) {
	log := zap.NewNop()
	if opts.verbose {
		var err error
		if log, err = logger.New("debug", true); err != nil {
			return nil, err
		}
	}

	clock, err := opts.clock()
	if err != nil {
		return nil, err
	}

	switch opts.driver {
	case storage.DriverFile, storage.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.driver)
	}
	store, err := storage.Open(ctx, storage.Options{
		Driver:     opts.driver,
		DataDir:    opts.dataDir,
		SQLitePath: filepath.Join(opts.dataDir, "garden.db"),
	})
	if err != nil {
		return nil, err
	}
	log.Debug("garden opened", zap.String("driver", opts.driver), zap.String("data_dir", opts.dataDir))

	repo := repository.NewStorageRepository(store)
	habits := services.NewHabitService(repo, repo, nil, nil, log)

	return &garden{
		store:       store,
		habits:      habits,
		completions: services.NewCompletionService(repo, habits, clock, workers.NewLogNotifier(log), nil, nil, log),
		progress:    services.NewProgressService(repo, habits, gamification.NewEngine(gamification.DefaultPointsConfig()), nil, clock, log),
		stats:       services.NewStatsService(repo, habits, clock),
		logger:      log,
	}, nil
}

func (g *garden) Close() error {
	_ = g.logger.Sync()
	return g.store.Close()
}

func (o *rootOptions) clock() (domain.Clock, error) {
	if o.today == "" {
		return domain.NewSystemClock(nil), nil
	}
	day := domain.DateKey(o.today)
	if !day.Valid() {
		return nil, fmt.Errorf("%w: --today %q", domain.ErrInvalidDate, o.today)
	}
	return domain.NewFixedClock(day), nil
}

// withGarden opens the garden for the duration of run.
func withGarden(opts *rootOptions, run func(cmd *cobra.Command, g *garden, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		g, err := openGarden(cmd.Context(), opts)
		if err != nil {
			return err
		}
		defer g.Close()
		return run(cmd, g, args)
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
