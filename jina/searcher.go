// Package jina implements scout.Searcher using the Jina AI search API.
package jina

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/fwojciec/scout"
)

// DefaultBaseURL is the Jina search endpoint.
const DefaultBaseURL = "https://s.jina.ai"

// Ensure Searcher implements scout.Searcher at compile time.
var _ scout.Searcher = (*Searcher)(nil)

// searchResponse is the subset of the Jina search payload we read.
type searchResponse struct {
	Code int `json:"code"`
	Data []struct {
		Title       string `json:"title"`
		URL         string `json:"url"`
		Description string `json:"description"`
	} `json:"data"`
}

// Searcher queries Jina AI search.
type Searcher struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// Option configures a Searcher.
type Option func(*Searcher)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(u string) Option {
	return func(s *Searcher) {
		s.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Searcher) {
		s.client = hc
	}
}

// NewSearcher creates a Searcher authenticating with apiKey.
func NewSearcher(apiKey string, opts ...Option) *Searcher {
	s := &Searcher{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Search runs query and returns up to limit results in rank order.
// Content bodies are not requested; only titles, URLs and descriptions.
func (s *Searcher) Search(ctx context.Context, query string, limit int) ([]scout.SearchResult, error) {
	if limit <= 0 {
		return []scout.SearchResult{}, nil
	}

	reqURL := fmt.Sprintf("%s/%s", s.baseURL, url.PathEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("jina: create search request: %w", err)
	}
	if s.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Respond-With", "no-content")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("jina: search request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("jina: read response body: %w", err)
	}

	// Jina returns 422 when no results are available for the query.
	if resp.StatusCode == http.StatusUnprocessableEntity {
		return []scout.SearchResult{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jina: search unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var payload searchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("jina: unmarshal search response: %w", err)
	}

	results := make([]scout.SearchResult, 0, min(limit, len(payload.Data)))
	for _, d := range payload.Data {
		if len(results) >= limit {
			break
		}
		if d.URL == "" {
			continue
		}
		results = append(results, scout.SearchResult{
			URL:     d.URL,
			Title:   d.Title,
			Snippet: d.Description,
		})
	}
	return results, nil
}
