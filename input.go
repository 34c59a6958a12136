package scout

import (
	"strings"
	"unicode"

	"golang.org/x/net/publicsuffix"
)

// InputKind identifies how a raw query should be treated.
type InputKind int

// Input kinds.
const (
	InputCompanyName InputKind = iota
	InputDirectURL
)

// String returns the kind's identifier.
func (k InputKind) String() string {
	switch k {
	case InputDirectURL:
		return "direct_url"
	default:
		return "company_name"
	}
}

// ClassifiedInput is a raw query tagged as either a company name or a URL.
// For InputDirectURL the Value always carries an http or https scheme.
type ClassifiedInput struct {
	Kind  InputKind
	Value string
}

// Classify decides whether raw is a URL or a company name. It never fails:
// anything that does not look like a URL is treated as a name.
//
// Strings starting with http:// or https:// are URLs. Bare domains such as
// "example.com" or "www.example.co.uk/contact" are URLs too, normalized with
// an https:// scheme, provided their top-level label is an ICANN suffix.
func Classify(raw string) ClassifiedInput {
	s := strings.TrimSpace(raw)
	lower := strings.ToLower(s)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return ClassifiedInput{Kind: InputDirectURL, Value: s}
	}
	if isBareDomain(s) {
		return ClassifiedInput{Kind: InputDirectURL, Value: "https://" + s}
	}
	return ClassifiedInput{Kind: InputCompanyName, Value: s}
}

// isBareDomain reports whether s is a scheme-less host with an optional path.
func isBareDomain(s string) bool {
	if s == "" || strings.ContainsFunc(s, unicode.IsSpace) || strings.Contains(s, "@") {
		return false
	}

	host := s
	if i := strings.IndexAny(host, "/?#"); i >= 0 {
		host = host[:i]
	}
	if i := strings.LastIndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if !strings.Contains(host, ".") {
		return false
	}

	labels := strings.Split(host, ".")
	for _, label := range labels {
		if !validLabel(label) {
			return false
		}
	}

	tld := labels[len(labels)-1]
	if _, icann := publicsuffix.PublicSuffix(tld); !icann {
		return false
	}
	_, err := publicsuffix.EffectiveTLDPlusOne(host)
	return err == nil
}

func validLabel(label string) bool {
	if label == "" || len(label) > 63 {
		return false
	}
	if label[0] == '-' || label[len(label)-1] == '-' {
		return false
	}
	for _, r := range label {
		if !(r >= 'a' && r <= 'z') && !(r >= '0' && r <= '9') && r != '-' {
			return false
		}
	}
	return true
}
