// Package htmltomarkdown implements scout.TextExtractor by rendering pages as
// Markdown, which keeps headings, lists and tables legible to the model.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/scout"
)

// Ensure Extractor implements scout.TextExtractor at compile time.
var _ scout.TextExtractor = (*Extractor)(nil)

// stripped lists elements that carry no text worth sending to the model.
const stripped = "script, style, noscript, svg, template, iframe, canvas, img, picture, video, audio, form button"

// Extractor converts whole pages to Markdown.
type Extractor struct {
	conv *converter.Converter
}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Extractor{conv: conv}
}

// Extract returns the page title and the Markdown rendering of its body.
// Blank input and pages without visible text yield an empty Text.
func (e *Extractor) Extract(html string) (*scout.ExtractResult, error) {
	if strings.TrimSpace(html) == "" {
		return &scout.ExtractResult{}, nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scout.Errorf(scout.EINVALID, "failed to parse HTML: %v", err)
	}
	title := strings.Join(strings.Fields(doc.Find("title").First().Text()), " ")

	doc.Find(stripped).Remove()
	doc.Find("a").FilterFunction(func(_ int, a *goquery.Selection) bool {
		return strings.TrimSpace(a.Text()) == ""
	}).Remove()

	body := doc.Find("body")
	visible := body.Text()
	if body.Length() == 0 {
		visible = doc.Text()
	}
	// Leftover structure such as empty table cells still renders as Markdown.
	if strings.TrimSpace(visible) == "" {
		return &scout.ExtractResult{Title: title}, nil
	}

	cleaned, err := goquery.OuterHtml(body)
	if err != nil || body.Length() == 0 {
		cleaned, err = doc.Html()
		if err != nil {
			return nil, scout.Errorf(scout.EINVALID, "failed to render HTML: %v", err)
		}
	}

	md, err := e.conv.ConvertString(cleaned)
	if err != nil {
		return nil, err
	}

	return &scout.ExtractResult{Title: title, Text: strings.TrimSpace(md)}, nil
}
