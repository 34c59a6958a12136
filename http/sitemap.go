package http

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/scout"
)

// Sitemap traversal bounds. Company sites are only consulted for a handful of
// candidate pages, so large sitemap trees are cut short.
const (
	DefaultMaxSitemaps = 5
	DefaultMaxURLs     = 1000

	// DefaultMaxSitemapBytes caps how much of one sitemap document is read.
	DefaultMaxSitemapBytes = 10 << 20
)

// Ensure SitemapService implements scout.SitemapService.
var _ scout.SitemapService = (*SitemapService)(nil)

// SitemapService discovers URLs from website sitemaps via HTTP.
type SitemapService struct {
	client      *http.Client
	userAgent   string
	maxSitemaps int
	maxURLs     int
	maxBytes    int64
}

// NewSitemapService creates a new SitemapService with the given HTTP client.
// If client is nil, http.DefaultClient is used.
func NewSitemapService(client *http.Client) *SitemapService {
	if client == nil {
		client = http.DefaultClient
	}
	return &SitemapService{
		client:      client,
		userAgent:   DefaultUserAgent,
		maxSitemaps: DefaultMaxSitemaps,
		maxURLs:     DefaultMaxURLs,
		maxBytes:    DefaultMaxSitemapBytes,
	}
}

// WithUserAgent sets the User-Agent header sent with sitemap requests.
func (s *SitemapService) WithUserAgent(ua string) *SitemapService {
	s.userAgent = ua
	return s
}

// DiscoverURLs finds URLs from a site's sitemap.
// Returns an empty slice (not nil) if no sitemaps are found.
// At most DefaultMaxSitemaps sitemap documents are read and at most
// DefaultMaxURLs URLs are returned.
//
// A sitemap that cannot be fetched or parsed is skipped. The skipped
// failures are returned as an error only when no URL was found at all.
// Context cancellation always aborts.
func (s *SitemapService) DiscoverURLs(ctx context.Context, baseURL string) ([]string, error) {
	// Check for context cancellation early
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	// For sitemap discovery, use the root of the domain (strip any path)
	sitemapBase := *base
	sitemapBase.Path = ""
	sitemapBase.RawQuery = ""
	sitemapBase.Fragment = ""

	sitemapURLs, err := s.findSitemapURLs(ctx, &sitemapBase)
	if err != nil {
		return nil, err
	}

	if len(sitemapURLs) == 0 {
		return []string{}, nil
	}

	w := &sitemapWalk{
		seenSitemaps: make(map[string]bool),
		seenURLs:     make(map[string]bool),
		urls:         []string{},
	}
	for _, sitemapURL := range sitemapURLs {
		if err := s.processSitemap(ctx, sitemapURL, w); err != nil {
			return nil, err
		}
	}

	if len(w.urls) == 0 && len(w.failures) > 0 {
		return w.urls, errors.Join(w.failures...)
	}
	return w.urls, nil
}

// sitemapWalk tracks traversal state across nested sitemaps.
type sitemapWalk struct {
	seenSitemaps map[string]bool
	seenURLs     map[string]bool
	urls         []string
	failures     []error
}

// skip records a failed sitemap. Context errors are returned so the walk
// stops.
func (w *sitemapWalk) skip(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	w.failures = append(w.failures, err)
	return nil
}

func (s *SitemapService) full(w *sitemapWalk) bool {
	return len(w.seenSitemaps) >= s.maxSitemaps || len(w.urls) >= s.maxURLs
}

// findSitemapURLs discovers sitemap URLs from robots.txt or falls back to /sitemap.xml.
func (s *SitemapService) findSitemapURLs(ctx context.Context, base *url.URL) ([]string, error) {
	// Try robots.txt first
	robotsURL := base.ResolveReference(&url.URL{Path: "/robots.txt"})
	sitemaps, err := s.parseSitemapsFromRobots(ctx, robotsURL.String())
	if err == nil && len(sitemaps) > 0 {
		return sitemaps, nil
	}

	// Fall back to /sitemap.xml
	sitemapURL := base.ResolveReference(&url.URL{Path: "/sitemap.xml"})
	exists, err := s.urlExists(ctx, sitemapURL.String())
	if err != nil {
		// Propagate context errors, treat other errors as "not found"
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, nil
	}
	if exists {
		return []string{sitemapURL.String()}, nil
	}

	return nil, nil
}

// parseSitemapsFromRobots extracts Sitemap: directives from robots.txt.
func (s *SitemapService) parseSitemapsFromRobots(ctx context.Context, robotsURL string) ([]string, error) {
	body, err := s.fetchURL(ctx, robotsURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	var sitemaps []string
	scanner := bufio.NewScanner(body)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		// Case-insensitive check for Sitemap: directive
		if strings.HasPrefix(strings.ToLower(line), "sitemap:") {
			sitemapURL := strings.TrimSpace(line[8:]) // len("sitemap:") == 8
			if sitemapURL != "" {
				sitemaps = append(sitemaps, sitemapURL)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading robots.txt: %w", err)
	}

	return sitemaps, nil
}

// processSitemap fetches and parses a sitemap, handling both urlset and sitemapindex.
func (s *SitemapService) processSitemap(ctx context.Context, sitemapURL string, w *sitemapWalk) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Avoid processing the same sitemap twice
	if w.seenSitemaps[sitemapURL] || s.full(w) {
		return nil
	}
	w.seenSitemaps[sitemapURL] = true

	body, err := s.fetchURL(ctx, sitemapURL)
	if err != nil {
		return w.skip(ctx, err)
	}
	defer body.Close()

	doc := etree.NewDocument()
	if _, err := doc.ReadFrom(io.LimitReader(body, s.maxBytes)); err != nil {
		return w.skip(ctx, fmt.Errorf("parsing sitemap XML %s: %w", sitemapURL, err))
	}

	root := doc.Root()
	if root == nil {
		return w.skip(ctx, fmt.Errorf("empty sitemap XML %s", sitemapURL))
	}

	if root.Tag == "sitemapindex" {
		return s.processSitemapIndex(ctx, root, w)
	}

	s.parseURLSet(root, w)
	return nil
}

// processSitemapIndex processes a <sitemapindex> element recursively.
func (s *SitemapService) processSitemapIndex(ctx context.Context, root *etree.Element, w *sitemapWalk) error {
	for _, sitemap := range root.SelectElements("sitemap") {
		loc := sitemap.SelectElement("loc")
		if loc == nil {
			continue
		}
		sitemapURL := strings.TrimSpace(loc.Text())
		if sitemapURL == "" {
			continue
		}

		if err := s.processSitemap(ctx, sitemapURL, w); err != nil {
			return err
		}
	}
	return nil
}

// parseURLSet collects URLs from a <urlset> element.
func (s *SitemapService) parseURLSet(root *etree.Element, w *sitemapWalk) {
	for _, urlEl := range root.SelectElements("url") {
		if len(w.urls) >= s.maxURLs {
			return
		}
		loc := urlEl.SelectElement("loc")
		if loc == nil {
			continue
		}
		u := strings.TrimSpace(loc.Text())
		if u == "" || w.seenURLs[u] {
			continue
		}
		w.seenURLs[u] = true
		w.urls = append(w.urls, u)
	}
}

// fetchURL fetches a URL and returns the response body.
func (s *SitemapService) fetchURL(ctx context.Context, targetURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, targetURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, targetURL)
	}

	return resp.Body, nil
}

// urlExists checks if a URL returns 200 OK.
func (s *SitemapService) urlExists(ctx context.Context, targetURL string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, targetURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	return resp.StatusCode == http.StatusOK, nil
}
