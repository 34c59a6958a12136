package pipeline

import (
	"context"
	"strings"

	"github.com/fwojciec/scout"
)

// Ensure Resolver implements scout.WebsiteResolver at compile time.
var _ scout.WebsiteResolver = (*Resolver)(nil)

// Resolver picks a company's website from web search results: the first
// result, by rank, whose host is not denylisted.
type Resolver struct {
	searcher scout.Searcher
	cfg      scout.Config
}

// NewResolver creates a Resolver using the search settings of cfg.
func NewResolver(searcher scout.Searcher, cfg scout.Config) *Resolver {
	return &Resolver{searcher: searcher, cfg: cfg}
}

// Resolve searches for name and returns the origin of the first acceptable
// result. Every failure, including search timeouts, is EWEBSITENOTFOUND.
func (r *Resolver) Resolve(ctx context.Context, name string) (*scout.ResolvedSite, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, scout.Errorf(scout.EWEBSITENOTFOUND, "company name is empty")
	}

	ctx, cancel := context.WithTimeout(ctx, r.cfg.SearchTimeout)
	defer cancel()

	results, err := r.searcher.Search(ctx, r.cfg.Query(name), r.cfg.SearchResults)
	if err != nil {
		return nil, scout.WrapError(scout.EWEBSITENOTFOUND, err, "search for %q failed", name)
	}
	if len(results) == 0 {
		return nil, scout.Errorf(scout.EWEBSITENOTFOUND, "no search results for %q", name)
	}

	for _, result := range results {
		if r.cfg.Denylist.Match(result.URL) {
			continue
		}
		origin, err := scout.Origin(result.URL)
		if err != nil {
			continue
		}
		return &scout.ResolvedSite{
			OriginURL:     origin,
			DiscoveredVia: scout.DiscoveredSearch,
		}, nil
	}

	return nil, scout.Errorf(scout.EWEBSITENOTFOUND, "all %d search results for %q are denylisted", len(results), name)
}
