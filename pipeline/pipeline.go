// Package pipeline runs the company extraction pipeline: classify the input,
// resolve the website, collect its pages and extract a record.
package pipeline

import (
	"context"
	"errors"

	"github.com/fwojciec/scout"
)

// Ensure Pipeline implements scout.Runner at compile time.
var _ scout.Runner = (*Pipeline)(nil)

// Pipeline sequences the pipeline stages. It holds no per-run state and is
// safe for concurrent use if its stages are.
type Pipeline struct {
	resolver  scout.WebsiteResolver
	fetcher   scout.ContentFetcher
	extractor scout.Extractor
}

// New creates a Pipeline from its stages.
func New(resolver scout.WebsiteResolver, fetcher scout.ContentFetcher, extractor scout.Extractor) *Pipeline {
	return &Pipeline{resolver: resolver, fetcher: fetcher, extractor: extractor}
}

// Run executes one extraction for raw. It stops at the first failing stage
// and never retries.
func (p *Pipeline) Run(ctx context.Context, raw string) *scout.ExtractionResult {
	in := scout.Classify(raw)

	site, target, err := p.site(ctx, in)
	if err != nil {
		return fail(nil, err, scout.EWEBSITENOTFOUND, scout.EWEBSITENOTFOUND)
	}

	bundle, err := p.fetcher.FetchBundle(ctx, target)
	if err != nil {
		return fail(site, err, scout.EFETCHFAILED, scout.EFETCHFAILED, scout.EEMPTYCONTENT)
	}

	rec, err := p.extractor.Extract(ctx, bundle)
	if err != nil {
		return fail(site, err, scout.EUNAVAILABLE, scout.EQUOTA, scout.EUNAVAILABLE, scout.EUNPARSABLE)
	}

	rec = rec.Clone()
	if _, ok := rec.Get(scout.FieldWebsite); !ok {
		rec.Set(scout.FieldWebsite, site.OriginURL)
	}
	if _, ok := rec.Get(scout.FieldCompanyName); !ok && in.Kind == scout.InputCompanyName {
		rec.Set(scout.FieldCompanyName, in.Value)
	}

	return &scout.ExtractionResult{Record: rec, Site: site}
}

// site returns the website the run operates on and the URL to fetch first.
// A direct URL is fetched as given; its site is reduced to the origin.
func (p *Pipeline) site(ctx context.Context, in scout.ClassifiedInput) (*scout.ResolvedSite, string, error) {
	if in.Kind == scout.InputDirectURL {
		origin, err := scout.Origin(in.Value)
		if err != nil {
			origin = in.Value
		}
		return &scout.ResolvedSite{
			OriginURL:     origin,
			DiscoveredVia: scout.DiscoveredDirect,
		}, in.Value, nil
	}
	site, err := p.resolver.Resolve(ctx, in.Value)
	if err != nil {
		return nil, "", err
	}
	return site, site.OriginURL, nil
}

// fail builds a failed result. Errors whose code is not one of the stage's
// allowed kinds are reported as fallback with the original error as cause.
func fail(site *scout.ResolvedSite, err error, fallback string, allowed ...string) *scout.ExtractionResult {
	var e *scout.Error
	code := scout.ErrorCode(err)
	for _, a := range allowed {
		if code == a && errors.As(err, &e) {
			return &scout.ExtractionResult{Site: site, Err: e}
		}
	}
	return &scout.ExtractionResult{
		Site: site,
		Err:  scout.WrapError(fallback, err, "unexpected %s error", code),
	}
}
