package scout

import "context"

// ExtractionResult is the outcome of one pipeline run. Exactly one of Record
// and Err is set. Site is set on success and on failures that happen after
// the website was resolved.
type ExtractionResult struct {
	Record *CandidateRecord
	Site   *ResolvedSite
	Err    *Error
}

// OK reports whether the run succeeded.
func (r *ExtractionResult) OK() bool {
	return r.Err == nil
}

// Kind returns the failure code, or "" on success.
func (r *ExtractionResult) Kind() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Code
}

// Detail returns the failure's diagnostic detail, or "" on success.
func (r *ExtractionResult) Detail() string {
	if r.Err == nil {
		return ""
	}
	if r.Err.Err != nil {
		return r.Err.Message + ": " + r.Err.Err.Error()
	}
	return r.Err.Message
}

// Runner executes the extraction pipeline for a single raw query.
type Runner interface {
	// Run never returns nil; failures are reported in the result.
	Run(ctx context.Context, raw string) *ExtractionResult
}
