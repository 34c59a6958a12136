package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var _ scout.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of scout.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*scout.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*scout.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ scout.ContentFetcher = (*ContentFetcher)(nil)

// ContentFetcher is a mock implementation of scout.ContentFetcher.
type ContentFetcher struct {
	FetchBundleFn func(ctx context.Context, url string) (*scout.PageBundle, error)
}

func (f *ContentFetcher) FetchBundle(ctx context.Context, url string) (*scout.PageBundle, error) {
	return f.FetchBundleFn(ctx, url)
}
