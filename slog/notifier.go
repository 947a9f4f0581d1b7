package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jqin/bidwatch"
)

// Ensure LoggingNotifier implements bidwatch.Notifier.
var _ bidwatch.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with operation logging.
type LoggingNotifier struct {
	next   bidwatch.Notifier
	logger *slog.Logger

	// channel labels the destination in log lines when one process sends
	// to both the regular and the alert webhook.
	channel string
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next bidwatch.Notifier, logger *slog.Logger, channel string) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger, channel: channel}
}

// Send delegates to the wrapped notifier and logs the operation.
func (n *LoggingNotifier) Send(ctx context.Context, message string) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("notification sent",
			"channel", n.channel,
			"bytes", len(message),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Send(ctx, message)
}
