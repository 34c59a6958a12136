package mock

import "github.com/fwojciec/scout"

var _ scout.LinkSelector = (*LinkSelector)(nil)

// LinkSelector is a mock implementation of scout.LinkSelector.
type LinkSelector struct {
	SelectLinksFn func(html string, baseURL string) ([]scout.CandidateLink, error)
}

func (s *LinkSelector) SelectLinks(html string, baseURL string) ([]scout.CandidateLink, error) {
	return s.SelectLinksFn(html, baseURL)
}

var _ scout.TextExtractor = (*TextExtractor)(nil)

// TextExtractor is a mock implementation of scout.TextExtractor.
type TextExtractor struct {
	ExtractFn func(html string) (*scout.ExtractResult, error)
}

func (e *TextExtractor) Extract(html string) (*scout.ExtractResult, error) {
	return e.ExtractFn(html)
}
