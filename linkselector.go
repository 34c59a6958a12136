package scout

import (
	"net/url"
	"strings"
)

// CandidateLink is a same-site URL that may hold contact or company details.
type CandidateLink struct {
	URL   string
	Text  string
	Score int
}

// LinkSelector extracts and scores candidate links from HTML.
type LinkSelector interface {
	// SelectLinks parses HTML and returns links with a positive score,
	// ordered by score descending and then by document order.
	// The baseURL is used to resolve relative URLs.
	SelectLinks(html string, baseURL string) ([]CandidateLink, error)
}

// Keywords are the hints that mark a link as a candidate page. Earlier
// keywords weigh more than later ones.
type Keywords []string

// Score rates a link by its text and URL path. Each keyword found in the
// text (case-insensitive substring) adds twice its weight; found in the path
// it adds its weight once. The first of n keywords weighs n, the last 1.
func (k Keywords) Score(text, path string) int {
	text = strings.ToLower(text)
	path = strings.ToLower(path)

	var score int
	for i, kw := range k {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		weight := len(k) - i
		if strings.Contains(text, kw) {
			score += 2 * weight
		}
		if strings.Contains(path, kw) {
			score += weight
		}
	}
	return score
}

// ScoreURL rates a bare URL by its path alone.
func (k Keywords) ScoreURL(rawURL string) int {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0
	}
	return k.Score("", u.Path)
}
