package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

// ProgressQueue receives profiles whose progress snapshot should be rebuilt.
type ProgressQueue interface {
	Enqueue(profileID string)
}

// changeNotifier drops the cached snapshot of a profile after a write and asks
// the queue to rebuild it. Both collaborators are optional.
type changeNotifier struct {
	cache  domain.ProgressCache
	queue  ProgressQueue
	logger *zap.Logger
}

func newChangeNotifier(cache domain.ProgressCache, queue ProgressQueue, logger *zap.Logger) *changeNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &changeNotifier{cache: cache, queue: queue, logger: logger}
}

func (n *changeNotifier) touch(ctx context.Context, profileID string) {
	if n.cache != nil {
		if err := n.cache.Invalidate(ctx, profileID); err != nil {
			n.logger.Warn("failed to invalidate progress cache",
				zap.String("profile_id", profileID), zap.Error(err))
		}
	}
	if n.queue != nil {
		n.queue.Enqueue(profileID)
	}
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrReminderNotFound) || errors.Is(err, domain.ErrHabitNotFound)
}
