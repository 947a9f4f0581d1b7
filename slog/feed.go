// Package slog provides logging decorators for bidwatch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/jqin/bidwatch"
)

// Ensure LoggingFeedSource implements bidwatch.FeedSource.
var _ bidwatch.FeedSource = (*LoggingFeedSource)(nil)

// LoggingFeedSource wraps a FeedSource with operation logging.
type LoggingFeedSource struct {
	next   bidwatch.FeedSource
	logger *slog.Logger
}

// NewLoggingFeedSource creates a new LoggingFeedSource.
func NewLoggingFeedSource(next bidwatch.FeedSource, logger *slog.Logger) *LoggingFeedSource {
	return &LoggingFeedSource{next: next, logger: logger}
}

// FetchLatest delegates to the wrapped source and logs the operation.
func (s *LoggingFeedSource) FetchLatest(ctx context.Context) (docs []*bidwatch.Document, err error) {
	defer func(begin time.Time) {
		s.logger.Info("feed fetch",
			"count", len(docs),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FetchLatest(ctx)
}
