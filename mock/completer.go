package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var _ scout.Completer = (*Completer)(nil)

// Completer is a mock implementation of scout.Completer.
type Completer struct {
	CompleteFn func(ctx context.Context, prompt string) (string, error)
}

func (c *Completer) Complete(ctx context.Context, prompt string) (string, error) {
	return c.CompleteFn(ctx, prompt)
}

var _ scout.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of scout.Extractor.
type Extractor struct {
	ExtractFn func(ctx context.Context, bundle *scout.PageBundle) (*scout.CandidateRecord, error)
}

func (e *Extractor) Extract(ctx context.Context, bundle *scout.PageBundle) (*scout.CandidateRecord, error) {
	return e.ExtractFn(ctx, bundle)
}
