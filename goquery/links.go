// Package goquery implements scout.LinkSelector and scout.TextExtractor on
// top of github.com/PuerkitoBio/goquery.
package goquery

import (
	"net/url"
	"path"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scout"
)

// Ensure LinkSelector implements scout.LinkSelector at compile time.
var _ scout.LinkSelector = (*LinkSelector)(nil)

// LinkSelector finds same-site links whose text or path mentions one of
// its keywords.
type LinkSelector struct {
	keywords scout.Keywords
}

// NewLinkSelector creates a LinkSelector scoring links against keywords.
func NewLinkSelector(keywords scout.Keywords) *LinkSelector {
	return &LinkSelector{keywords: keywords}
}

// SelectLinks parses HTML and returns candidate links with a positive score.
// Links are deduplicated by URL, keeping the highest score. External links,
// non-HTTP links and links to static assets are skipped.
func (s *LinkSelector) SelectLinks(html string, baseURL string) ([]scout.CandidateLink, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, scout.Errorf(scout.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scout.Errorf(scout.EINVALID, "failed to parse HTML: %v", err)
	}

	// Track seen URLs with their index in the result slice
	seen := make(map[string]int)
	var links []scout.CandidateLink

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if href == "" || isNonHTTPLink(href) {
			return
		}

		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		u, err := url.Parse(resolved)
		if err != nil || !sameSite(base, u) || isAsset(u.Path) {
			return
		}

		text := linkText(sel)
		score := s.keywords.Score(text, u.Path)
		if score <= 0 {
			return
		}

		link := scout.CandidateLink{URL: resolved, Text: text, Score: score}
		if idx, ok := seen[resolved]; ok {
			if score > links[idx].Score {
				links[idx] = link
			}
			return
		}
		seen[resolved] = len(links)
		links = append(links, link)
	})

	sort.SliceStable(links, func(i, j int) bool {
		return links[i].Score > links[j].Score
	})

	return links, nil
}

// linkText returns the anchor's visible text, falling back to its title and
// aria-label attributes for icon-only links.
func linkText(sel *goquery.Selection) string {
	text := strings.Join(strings.Fields(sel.Text()), " ")
	if text != "" {
		return text
	}
	if title, ok := sel.Attr("title"); ok && strings.TrimSpace(title) != "" {
		return strings.TrimSpace(title)
	}
	label, _ := sel.Attr("aria-label")
	return strings.TrimSpace(label)
}

// resolveURL resolves a relative URL against a base URL.
// Returns empty string if the href cannot be parsed or if the resolved URL
// points back at the base page. Fragments are stripped.
func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	resolved.Fragment = ""

	result := resolved.String()
	baseNoFragment := *base
	baseNoFragment.Fragment = ""
	if strings.TrimSuffix(result, "/") == strings.TrimSuffix(baseNoFragment.String(), "/") {
		return ""
	}
	return result
}

// sameSite reports whether u is served by the base host. A leading "www."
// is ignored on both sides.
func sameSite(base, u *url.URL) bool {
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return bareHost(u.Host) == bareHost(base.Host)
}

func bareHost(host string) string {
	return strings.TrimPrefix(strings.ToLower(host), "www.")
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:") ||
		strings.HasPrefix(href, "#")
}

var assetExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".css": true, ".js": true,
	".zip": true, ".mp4": true, ".mp3": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true, ".xml": true,
}

func isAsset(p string) bool {
	return assetExtensions[strings.ToLower(path.Ext(p))]
}
