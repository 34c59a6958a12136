// Package extract turns a page bundle into a structured company record with
// a single language model completion.
package extract

import (
	"context"
	"errors"
	"time"

	"github.com/fwojciec/scout"
)

// DefaultTimeout bounds one model completion when none is configured.
const DefaultTimeout = 60 * time.Second

// Ensure Engine implements scout.Extractor at compile time.
var _ scout.Extractor = (*Engine)(nil)

// Engine implements scout.Extractor on top of a scout.Completer.
type Engine struct {
	completer scout.Completer
	timeout   time.Duration
}

// NewEngine creates an Engine that calls completer with cfg.ModelTimeout.
func NewEngine(completer scout.Completer, cfg scout.Config) *Engine {
	timeout := cfg.ModelTimeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{completer: completer, timeout: timeout}
}

// Extract asks the model once for the company record in bundle. A response
// that fails to parse gets exactly one repair pass through StripWrapper.
func (e *Engine) Extract(ctx context.Context, bundle *scout.PageBundle) (*scout.CandidateRecord, error) {
	if bundle == nil || len(bundle.Pages) == 0 {
		return nil, scout.Errorf(scout.EINVALID, "bundle has no pages")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	text, err := e.completer.Complete(ctx, BuildPrompt(bundle))
	if err != nil {
		switch scout.ErrorCode(err) {
		case scout.EQUOTA, scout.EUNAVAILABLE:
			return nil, err
		}
		return nil, scout.WrapError(scout.EUNAVAILABLE, err, "model call failed")
	}

	rec, err := ParseStrict(text)
	if err == nil {
		return rec, nil
	}

	rec, err = ParseStrict(StripWrapper(text))
	if err != nil {
		return nil, scout.WrapError(scout.EUNPARSABLE, &ParseError{Raw: text, Err: errors.Unwrap(err)}, "model response is not a valid record")
	}
	return rec, nil
}
