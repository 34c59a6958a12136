package scout

import (
	"context"
	"net/url"
	"strings"
)

// Discovery records how a site's URL was obtained.
type Discovery string

// Discovery values.
const (
	DiscoveredDirect Discovery = "direct"
	DiscoveredSearch Discovery = "search_engine"
)

// ResolvedSite is the website a pipeline run operates on. OriginURL is
// always scheme and host only, even when the run started from a deeper URL.
type ResolvedSite struct {
	OriginURL     string    `json:"originUrl"`
	DiscoveredVia Discovery `json:"discoveredVia"`
}

// SearchResult is a single entry returned by a search provider.
type SearchResult struct {
	URL     string `json:"url"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Searcher queries a web search provider.
type Searcher interface {
	// Search runs a free-text query and returns at most limit results in
	// rank order. The context controls timeout and cancellation.
	Search(ctx context.Context, query string, limit int) ([]SearchResult, error)
}

// WebsiteResolver finds the official website for a company name.
type WebsiteResolver interface {
	// Resolve returns the most plausible official site for name.
	// Returns EWEBSITENOTFOUND on any failure, with the cause wrapped.
	Resolve(ctx context.Context, name string) (*ResolvedSite, error)
}

// Denylist holds domains of aggregator, social and directory sites that are
// never accepted as a company's official website. Entries match the domain
// itself and all of its subdomains.
type Denylist []string

// Match reports whether rawURL's host is on the denylist.
// Unparsable URLs and URLs without a host always match.
func (d Denylist) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return true
	}
	host := strings.ToLower(strings.TrimSuffix(u.Hostname(), "."))
	for _, entry := range d {
		entry = strings.ToLower(strings.TrimSpace(entry))
		if entry == "" {
			continue
		}
		if host == entry || strings.HasSuffix(host, "."+entry) {
			return true
		}
	}
	return false
}

// Origin reduces rawURL to its scheme and host, e.g. "https://example.com".
func Origin(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", Errorf(EINVALID, "unsupported URL scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", Errorf(EINVALID, "URL %q has no host", rawURL)
	}
	return u.Scheme + "://" + strings.ToLower(u.Host), nil
}
