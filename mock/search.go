package mock

import (
	"context"

	"github.com/fwojciec/scout"
)

var _ scout.Searcher = (*Searcher)(nil)

// Searcher is a mock implementation of scout.Searcher.
type Searcher struct {
	SearchFn func(ctx context.Context, query string, limit int) ([]scout.SearchResult, error)
}

func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]scout.SearchResult, error) {
	return s.SearchFn(ctx, query, limit)
}

var _ scout.WebsiteResolver = (*WebsiteResolver)(nil)

// WebsiteResolver is a mock implementation of scout.WebsiteResolver.
type WebsiteResolver struct {
	ResolveFn func(ctx context.Context, name string) (*scout.ResolvedSite, error)
}

func (r *WebsiteResolver) Resolve(ctx context.Context, name string) (*scout.ResolvedSite, error) {
	return r.ResolveFn(ctx, name)
}
