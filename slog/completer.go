package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/scout"
)

// Ensure LoggingCompleter implements scout.Completer.
var _ scout.Completer = (*LoggingCompleter)(nil)

// LoggingCompleter wraps a Completer with logging. Prompts and responses are
// logged by size only.
type LoggingCompleter struct {
	next   scout.Completer
	model  string
	logger *slog.Logger
}

// NewLoggingCompleter creates a new LoggingCompleter. The model name is only
// used as a log attribute.
func NewLoggingCompleter(next scout.Completer, model string, logger *slog.Logger) *LoggingCompleter {
	return &LoggingCompleter{next: next, model: model, logger: logger}
}

// Complete delegates to the wrapped completer and logs the call.
func (c *LoggingCompleter) Complete(ctx context.Context, prompt string) (text string, err error) {
	defer func(begin time.Time) {
		c.logger.Info("completion",
			"model", c.model,
			"prompt_bytes", len(prompt),
			"response_bytes", len(text),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Complete(ctx, prompt)
}
