// Package duckduckgo implements scout.Searcher against the DuckDuckGo HTML
// endpoint, which needs no API key.
package duckduckgo

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scout"
)

// DefaultBaseURL is the script-free DuckDuckGo results page.
const DefaultBaseURL = "https://html.duckduckgo.com/html/"

// Ensure Searcher implements scout.Searcher at compile time.
var _ scout.Searcher = (*Searcher)(nil)

// Searcher scrapes organic results from DuckDuckGo.
type Searcher struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL sets a custom endpoint (for testing).
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *Searcher) {
		s.userAgent = ua
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Searcher) {
		s.client = hc
	}
}

// NewSearcher creates a new Searcher.
func NewSearcher(opts ...Option) *Searcher {
	s := &Searcher{
		baseURL:   DefaultBaseURL,
		userAgent: "Mozilla/5.0 (compatible; scout/1.0)",
		client:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs query and returns up to limit organic results in rank order.
// Sponsored results are skipped.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]scout.SearchResult, error) {
	reqURL := s.baseURL + "?" + url.Values{"q": {query}}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("duckduckgo: parse results: %w", err)
	}

	results := []scout.SearchResult{}
	doc.Find(".result").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if len(results) >= limit {
			return false
		}
		if sel.HasClass("result--ad") {
			return true
		}

		a := sel.Find("a.result__a").First()
		href, ok := a.Attr("href")
		if !ok {
			return true
		}
		target := unwrap(href)
		if target == "" {
			return true
		}

		results = append(results, scout.SearchResult{
			URL:     target,
			Title:   strings.Join(strings.Fields(a.Text()), " "),
			Snippet: strings.Join(strings.Fields(sel.Find(".result__snippet").First().Text()), " "),
		})
		return true
	})

	return results, nil
}

// unwrap returns the destination of a result link. DuckDuckGo routes clicks
// through /l/?uddg=<target>; direct links are returned as is.
func unwrap(href string) string {
	if strings.HasPrefix(href, "//") {
		href = "https:" + href
	}
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if target := u.Query().Get("uddg"); target != "" {
		return target
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	if strings.HasSuffix(u.Hostname(), "duckduckgo.com") {
		return ""
	}
	return u.String()
}
