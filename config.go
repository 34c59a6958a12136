package scout

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Text formats produced by the content fetcher.
const (
	TextFormatPlain    = "text"
	TextFormatMarkdown = "markdown"
)

// Config holds the tunables threaded into every pipeline component.
type Config struct {
	// Timeouts for each outbound call.
	SearchTimeout time.Duration `validate:"gt=0"`
	FetchTimeout  time.Duration `validate:"gt=0"`
	ModelTimeout  time.Duration `validate:"gt=0"`

	// SearchResults is the number of search results inspected.
	SearchResults int `validate:"min=1,max=50"`

	// QueryTemplate builds the search query; "{name}" is replaced by the
	// company name.
	QueryTemplate string `validate:"required,contains={name}"`

	Denylist     Denylist
	LinkKeywords Keywords `validate:"min=1,dive,required"`

	// MaxPages caps the bundle size, root page included.
	MaxPages int `validate:"min=1,max=10"`

	// MaxPageChars caps the text kept per page, in characters.
	MaxPageChars int `validate:"min=100"`

	// MaxBodyBytes caps the bytes read from any single response.
	MaxBodyBytes int64 `validate:"min=1024"`

	// UseSitemap enables sitemap lookups when the root page links to no
	// candidate pages.
	UseSitemap bool

	TextFormat string `validate:"oneof=text markdown"`
	UserAgent  string `validate:"required"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		SearchTimeout: 10 * time.Second,
		FetchTimeout:  15 * time.Second,
		ModelTimeout:  60 * time.Second,
		SearchResults: 10,
		QueryTemplate: "{name} official website",
		Denylist:      DefaultDenylist(),
		LinkKeywords:  DefaultKeywords(),
		MaxPages:      4,
		MaxPageChars:  8000,
		MaxBodyBytes:  2 << 20,
		UseSitemap:    true,
		TextFormat:    TextFormatPlain,
		UserAgent:     "Mozilla/5.0 (compatible; scout/1.0; +https://github.com/fwojciec/scout)",
	}
}

// DefaultDenylist returns search portals, social networks, marketplaces and
// business directories.
func DefaultDenylist() Denylist {
	return Denylist{
		// search portals
		"google.com", "bing.com", "duckduckgo.com", "yahoo.com", "baidu.com", "yandex.ru",
		// social networks
		"facebook.com", "instagram.com", "twitter.com", "x.com", "linkedin.com",
		"youtube.com", "tiktok.com", "pinterest.com", "reddit.com", "quora.com", "medium.com",
		// marketplaces
		"amazon.com", "ebay.com", "alibaba.com", "aliexpress.com", "indiamart.com", "etsy.com",
		// directories and reference
		"wikipedia.org", "crunchbase.com", "zoominfo.com", "bloomberg.com", "dnb.com",
		"glassdoor.com", "indeed.com", "tracxn.com", "yelp.com", "yellowpages.com",
		"justdial.com", "tripadvisor.com", "bbb.org", "opencorporates.com",
	}
}

// DefaultKeywords returns the candidate-page hints, strongest first.
func DefaultKeywords() Keywords {
	return Keywords{"contact", "about", "team", "support", "reach", "impressum", "company", "locations"}
}

// Query returns the search query for a company name.
func (c Config) Query(name string) string {
	return strings.ReplaceAll(c.QueryTemplate, "{name}", name)
}

// Validate returns an EINVALID error if the configuration is unusable.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return WrapError(EINVALID, err, "invalid configuration")
	}
	return nil
}
