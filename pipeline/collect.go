package pipeline

import (
	"context"
	"net/url"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/scout"
	"golang.org/x/sync/errgroup"
)

// Ensure Collector implements scout.ContentFetcher at compile time.
var _ scout.ContentFetcher = (*Collector)(nil)

// Collector builds a PageBundle from a site's root page and its best
// contact/about candidates.
type Collector struct {
	fetcher  scout.Fetcher
	links    scout.LinkSelector
	text     scout.TextExtractor
	sitemaps scout.SitemapService

	keywords     scout.Keywords
	maxPages     int
	maxPageChars int
	timeout      time.Duration
}

// NewCollector creates a Collector using the fetch settings of cfg. The
// sitemap fallback is used only when cfg.UseSitemap is set and sitemaps is
// not nil.
func NewCollector(fetcher scout.Fetcher, links scout.LinkSelector, text scout.TextExtractor, sitemaps scout.SitemapService, cfg scout.Config) *Collector {
	if !cfg.UseSitemap {
		sitemaps = nil
	}
	return &Collector{
		fetcher:      fetcher,
		links:        links,
		text:         text,
		sitemaps:     sitemaps,
		keywords:     cfg.LinkKeywords,
		maxPages:     cfg.MaxPages,
		maxPageChars: cfg.MaxPageChars,
		timeout:      cfg.FetchTimeout,
	}
}

// FetchBundle fetches rawURL and up to MaxPages-1 candidate pages.
// Candidate failures are dropped silently; only the root page can fail
// the bundle.
func (c *Collector) FetchBundle(ctx context.Context, rawURL string) (*scout.PageBundle, error) {
	rootCtx, cancel := context.WithTimeout(ctx, c.timeout)
	resp, err := c.fetcher.Fetch(rootCtx, rawURL)
	cancel()
	if err != nil {
		return nil, scout.WrapError(scout.EFETCHFAILED, err, "fetch %s", rawURL)
	}

	root, err := c.page(resp)
	if err != nil {
		return nil, scout.WrapError(scout.EEMPTYCONTENT, err, "read %s", resp.URL)
	}
	if root == nil {
		return nil, scout.Errorf(scout.EEMPTYCONTENT, "%s has no readable text", resp.URL)
	}

	bundle := &scout.PageBundle{
		PrimaryURL: resp.URL,
		Pages:      []scout.Page{*root},
	}
	if c.maxPages <= 1 {
		return bundle, nil
	}

	candidates := c.candidates(ctx, resp)
	if len(candidates) == 0 {
		return bundle, nil
	}

	// Results are stored by position so the bundle keeps priority order.
	pages := make([]*scout.Page, len(candidates))
	var g errgroup.Group
	for i, u := range candidates {
		g.Go(func() error {
			pages[i] = c.fetchCandidate(ctx, u)
			return nil
		})
	}
	_ = g.Wait()

	// Sites often serve the home page for unknown paths; drop repeats.
	seen := map[uint64]bool{xxhash.Sum64String(root.Text): true}
	for _, p := range pages {
		if p == nil {
			continue
		}
		h := xxhash.Sum64String(p.Text)
		if seen[h] {
			continue
		}
		seen[h] = true
		bundle.Pages = append(bundle.Pages, *p)
	}

	return bundle, nil
}

// candidates returns up to maxPages-1 candidate URLs in fetch priority
// order. Sitemap URLs are consulted only when the root page links to no
// candidate.
func (c *Collector) candidates(ctx context.Context, root *scout.Response) []string {
	limit := c.maxPages - 1
	exclude := map[string]bool{
		normalizeURL(root.URL): true,
	}

	var urls []string
	add := func(u string) bool {
		key := normalizeURL(u)
		if exclude[key] {
			return len(urls) < limit
		}
		exclude[key] = true
		urls = append(urls, u)
		return len(urls) < limit
	}

	if scout.IsHTML(root.ContentType) && c.links != nil {
		links, err := c.links.SelectLinks(root.Body, root.URL)
		if err == nil {
			for _, l := range links {
				if !add(l.URL) {
					return urls
				}
			}
		}
	}
	if len(urls) > 0 || c.sitemaps == nil {
		return urls
	}

	smCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	found, err := c.sitemaps.DiscoverURLs(smCtx, root.URL)
	if err != nil {
		return urls
	}

	base, err := url.Parse(root.URL)
	if err != nil {
		return urls
	}
	type scored struct {
		url   string
		score int
	}
	var ranked []scored
	for _, u := range found {
		parsed, err := url.Parse(u)
		if err != nil || bareHost(parsed.Host) != bareHost(base.Host) {
			continue
		}
		if s := c.keywords.ScoreURL(u); s > 0 {
			ranked = append(ranked, scored{url: u, score: s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	for _, r := range ranked {
		if !add(r.url) {
			break
		}
	}
	return urls
}

// fetchCandidate fetches one candidate page. It returns nil when the page
// cannot be fetched or has no readable text.
func (c *Collector) fetchCandidate(ctx context.Context, u string) *scout.Page {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.fetcher.Fetch(ctx, u)
	if err != nil {
		return nil
	}
	page, err := c.page(resp)
	if err != nil {
		return nil
	}
	return page
}

// page extracts the visible text of resp. It returns nil without error when
// the response carries no readable text.
func (c *Collector) page(resp *scout.Response) (*scout.Page, error) {
	var title, text string
	switch {
	case scout.IsHTML(resp.ContentType):
		result, err := c.text.Extract(resp.Body)
		if err != nil {
			return nil, err
		}
		title, text = result.Title, result.Text
	case scout.IsPlainText(resp.ContentType):
		text = strings.TrimSpace(resp.Body)
	default:
		return nil, nil
	}

	if strings.TrimSpace(text) == "" {
		return nil, nil
	}
	return &scout.Page{
		URL:         resp.URL,
		Title:       title,
		Text:        truncate(text, c.maxPageChars),
		ContentType: resp.ContentType,
	}, nil
}

// truncate caps s at n characters.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// normalizeURL returns a comparison key for u: lowercased host without
// "www.", no fragment and no trailing slash.
func normalizeURL(u string) string {
	parsed, err := url.Parse(u)
	if err != nil {
		return u
	}
	parsed.Fragment = ""
	parsed.Host = bareHost(parsed.Host)
	return strings.TrimSuffix(parsed.String(), "/")
}

func bareHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}
