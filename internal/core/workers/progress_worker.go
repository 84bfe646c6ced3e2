package workers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

const DefaultQueueSize = 100

// ProgressRefresher recomputes and caches the snapshot of one profile.
type ProgressRefresher interface {
	Refresh(ctx context.Context, profileID string) (*domain.Progress, error)
}

type ProgressJob struct {
	ProfileID string
}

// ProgressWorker warms the progress cache in the background after writes.
type ProgressWorker struct {
	refresher ProgressRefresher
	jobs      chan ProgressJob
	logger    *zap.Logger
	done      chan struct{}
	startOnce sync.Once
}

func NewProgressWorker(refresher ProgressRefresher, queueSize int, logger *zap.Logger) *ProgressWorker {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressWorker{
		refresher: refresher,
		jobs:      make(chan ProgressJob, queueSize),
		logger:    logger.Named("progress_worker"),
		done:      make(chan struct{}),
	}
}

// Start runs the worker until ctx is cancelled. Done is closed once it exits.
func (w *ProgressWorker) Start(ctx context.Context) {
	w.startOnce.Do(func() {
		go func() {
			defer close(w.done)
			w.logger.Info("progress worker started")
			for {
				select {
				case job := <-w.jobs:
					w.processJob(ctx, job)
				case <-ctx.Done():
					w.logger.Info("progress worker shutting down")
					return
				}
			}
		}()
	})
}

func (w *ProgressWorker) Done() <-chan struct{} {
	return w.done
}

// Enqueue never blocks. When the queue is full the job is dropped and the next
// read recomputes on demand.
func (w *ProgressWorker) Enqueue(profileID string) {
	select {
	case w.jobs <- ProgressJob{ProfileID: profileID}:
	default:
		w.logger.Warn("queue full, dropping job", zap.String("profile_id", profileID))
	}
}

func (w *ProgressWorker) processJob(ctx context.Context, job ProgressJob) {
	progress, err := w.refresher.Refresh(ctx, job.ProfileID)
	if err != nil {
		w.logger.Error("failed to refresh progress", zap.String("profile_id", job.ProfileID), zap.Error(err))
		return
	}
	w.logger.Debug("progress refreshed",
		zap.String("profile_id", job.ProfileID),
		zap.Int("current_streak", progress.Garden.CurrentStreak),
		zap.Int("points", progress.Points))
}
