package scout

import (
	"context"
	"mime"
)

// Response is a document retrieved over HTTP.
type Response struct {
	// URL is the final URL after following redirects.
	URL         string
	ContentType string
	Body        string
}

// Fetcher retrieves documents from URLs without executing scripts.
type Fetcher interface {
	// Fetch retrieves the URL, following redirects.
	// Non-2xx responses are returned as errors.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases any resources held by the fetcher.
	Close() error
}

// Page is the visible text of one fetched page.
type Page struct {
	URL         string `json:"url"`
	Title       string `json:"title,omitempty"`
	Text        string `json:"text"`
	ContentType string `json:"contentType"`
}

// PageBundle holds the pages collected for a site in fetch-priority order:
// the root page first, then candidate pages by descending score.
type PageBundle struct {
	PrimaryURL string `json:"primaryUrl"`
	Pages      []Page `json:"pages"`
}

// ContentFetcher collects the root page and its contact/about candidates.
type ContentFetcher interface {
	// FetchBundle fetches url and a bounded number of candidate sub-pages.
	// Returns EFETCHFAILED when the root page cannot be retrieved and
	// EEMPTYCONTENT when it has no usable text.
	FetchBundle(ctx context.Context, url string) (*PageBundle, error)
}

// ExtractResult holds the text extracted from an HTML page.
type ExtractResult struct {
	// Title is the page title from document metadata.
	Title string

	// Text is the visible content with markup, scripts and styles removed.
	Text string
}

// TextExtractor turns raw HTML into visible text.
type TextExtractor interface {
	Extract(html string) (*ExtractResult, error)
}

// SitemapService discovers URLs from website sitemaps.
type SitemapService interface {
	// DiscoverURLs finds URLs from a site's sitemap.
	// It first checks robots.txt for sitemap directives, then falls back
	// to /sitemap.xml. Sitemap indexes are resolved recursively.
	DiscoverURLs(ctx context.Context, baseURL string) ([]string, error)
}

// IsHTML reports whether a Content-Type header denotes an HTML document.
func IsHTML(contentType string) bool {
	mt := mediaType(contentType)
	return mt == "text/html" || mt == "application/xhtml+xml"
}

// IsPlainText reports whether a Content-Type header denotes plain text.
func IsPlainText(contentType string) bool {
	return mediaType(contentType) == "text/plain"
}

func mediaType(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ""
	}
	return mt
}
