package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var _ scout.Runner = (*Runner)(nil)

// Runner is a mock implementation of scout.Runner.
type Runner struct {
	RunFn func(ctx context.Context, raw string) *scout.ExtractionResult
}

func (r *Runner) Run(ctx context.Context, raw string) *scout.ExtractionResult {
	return r.RunFn(ctx, raw)
}
