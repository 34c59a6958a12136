package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
)

// Ensure LoggingSearcher implements scout.Searcher.
var _ scout.Searcher = (*LoggingSearcher)(nil)

// LoggingSearcher wraps a Searcher with logging.
type LoggingSearcher struct {
	next   scout.Searcher
	logger *slog.Logger
}

// NewLoggingSearcher creates a new LoggingSearcher.
func NewLoggingSearcher(next scout.Searcher, logger *slog.Logger) *LoggingSearcher {
	return &LoggingSearcher{next: next, logger: logger}
}

// Search logs the query and the top result, then returns the wrapped
// searcher's results unchanged.
func (s *LoggingSearcher) Search(ctx context.Context, query string, limit int) (results []scout.SearchResult, err error) {
	defer func(begin time.Time) {
		var top string
		if len(results) > 0 {
			top = results[0].URL
		}
		s.logger.Info("search",
			"query", query,
			"limit", limit,
			"count", len(results),
			"top", top,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Search(ctx, query, limit)
}
