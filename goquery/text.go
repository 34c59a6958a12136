package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scout"
	"golang.org/x/net/html"
)

// Ensure TextExtractor implements scout.TextExtractor at compile time.
var _ scout.TextExtractor = (*TextExtractor)(nil)

// invisible lists elements whose content never renders as text.
const invisible = "script, style, noscript, svg, template, iframe, canvas, head"

var blockElements = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "dd": true, "div": true, "dl": true, "dt": true,
	"fieldset": true, "figcaption": true, "figure": true, "footer": true,
	"form": true, "h1": true, "h2": true, "h3": true, "h4": true, "h5": true,
	"h6": true, "header": true, "hr": true, "li": true, "main": true,
	"nav": true, "ol": true, "p": true, "pre": true, "section": true,
	"table": true, "td": true, "th": true, "tr": true, "ul": true,
}

// TextExtractor returns the visible text of a whole page, header and footer
// included. Contact links keep their targets so that addresses hidden behind
// "Email us" style anchors survive.
type TextExtractor struct{}

// NewTextExtractor creates a new TextExtractor.
func NewTextExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract parses HTML and returns its title and visible text, one block per
// line with runs of whitespace collapsed.
func (e *TextExtractor) Extract(rawHTML string) (*scout.ExtractResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, scout.Errorf(scout.EINVALID, "failed to parse HTML: %v", err)
	}

	title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")
	description, _ := doc.Find(`meta[name="description"]`).First().Attr("content")

	doc.Find(invisible).Remove()
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if target := contactTarget(href); target != "" && !strings.Contains(sel.Text(), target) {
			sel.AppendHtml(" (" + html.EscapeString(target) + ")")
		}
	})

	w := &textWriter{}
	for _, n := range doc.Find("body").Nodes {
		w.walk(n)
	}
	if len(doc.Find("body").Nodes) == 0 {
		for _, n := range doc.Nodes {
			w.walk(n)
		}
	}

	text := w.String()
	if description = strings.TrimSpace(description); description != "" && !strings.Contains(text, description) {
		text = strings.TrimSpace(description + "\n" + text)
	}

	return &scout.ExtractResult{Title: title, Text: text}, nil
}

// contactTarget returns the address of a mailto: or tel: link.
func contactTarget(href string) string {
	href = strings.TrimSpace(href)
	lower := strings.ToLower(href)
	var target string
	switch {
	case strings.HasPrefix(lower, "mailto:"):
		target = href[len("mailto:"):]
	case strings.HasPrefix(lower, "tel:"):
		target = href[len("tel:"):]
	default:
		return ""
	}
	if i := strings.IndexByte(target, '?'); i >= 0 {
		target = target[:i]
	}
	return strings.TrimSpace(target)
}

// textWriter accumulates text nodes into lines split at block elements.
type textWriter struct {
	lines []string
	cur   strings.Builder
}

func (w *textWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.cur.WriteString(n.Data)
		return
	case html.ElementNode:
		if blockElements[n.Data] {
			w.flush()
			defer w.flush()
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *textWriter) flush() {
	line := strings.Join(strings.Fields(w.cur.String()), " ")
	w.cur.Reset()
	if line != "" {
		w.lines = append(w.lines, line)
	}
}

func (w *textWriter) String() string {
	w.flush()
	return strings.Join(w.lines, "\n")
}
