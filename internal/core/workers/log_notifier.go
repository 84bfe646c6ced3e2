package workers

import (
	"context"

	"go.uber.org/zap"

	"github.com/comitanigiacomo/habit-garden/internal/core/domain"
)

// LogNotifier delivers notifications to the log. It is the default channel of
// the API server and the CLI.
type LogNotifier struct {
	logger *zap.Logger
}

var _ domain.Notifier = (*LogNotifier)(nil)

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger.Named("notifications")}
}

func (n *LogNotifier) Notify(_ context.Context, msg domain.Notification) error {
	n.logger.Info(msg.Title, zap.String("body", msg.Body), zap.String("tag", msg.Tag))
	return nil
}
