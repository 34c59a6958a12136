package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
	"github.com/google/uuid"
)

// Ensure LoggingRunner implements scout.Runner.
var _ scout.Runner = (*LoggingRunner)(nil)

// LoggingRunner wraps a Runner and logs one line per run.
type LoggingRunner struct {
	next   scout.Runner
	logger *slog.Logger
}

// NewLoggingRunner creates a new LoggingRunner.
func NewLoggingRunner(next scout.Runner, logger *slog.Logger) *LoggingRunner {
	return &LoggingRunner{next: next, logger: logger}
}

// Run delegates to the wrapped runner and logs the outcome under a fresh
// run_id.
func (r *LoggingRunner) Run(ctx context.Context, raw string) *scout.ExtractionResult {
	begin := time.Now()
	runID := uuid.NewString()

	result := r.next.Run(ctx, raw)

	attrs := []any{
		"run_id", runID,
		"input", raw,
		"duration", time.Since(begin),
	}
	if result.Site != nil {
		attrs = append(attrs,
			"url", result.Site.OriginURL,
			"discovered_via", string(result.Site.DiscoveredVia),
		)
	}
	if result.OK() {
		attrs = append(attrs, "fields", len(result.Record.Present()))
		r.logger.Info("run succeeded", attrs...)
		return result
	}

	attrs = append(attrs, "kind", result.Kind(), "detail", result.Detail())
	r.logger.Warn("run failed", attrs...)
	return result
}
