package enrich

import "errors"

var (
	ErrSearch      = errors.New("search failed")
	ErrNoResults   = errors.New("search returned no results")
	ErrNoCandidate = errors.New("no usable homepage among search results")
	ErrFetch       = errors.New("fetch failed")
	ErrNoImage     = errors.New("no image found on homepage")
	ErrNotImage    = errors.New("response is not an image")
	ErrWrite       = errors.New("cannot write image")
)

type FailureKind string

const (
	FailureNone       FailureKind = ""
	FailureSearch     FailureKind = "search"
	FailureFetch      FailureKind = "fetch"
	FailureValidation FailureKind = "validation"
	FailureIO         FailureKind = "io"
)

// Classify maps an enrichment error to the failure kind reported per run.
func Classify(err error) FailureKind {
	switch {
	case err == nil:
		return FailureNone
	case errors.Is(err, ErrSearch), errors.Is(err, ErrNoResults), errors.Is(err, ErrNoCandidate):
		return FailureSearch
	case errors.Is(err, ErrFetch):
		return FailureFetch
	case errors.Is(err, ErrNoImage), errors.Is(err, ErrNotImage):
		return FailureValidation
	case errors.Is(err, ErrWrite):
		return FailureIO
	default:
		return FailureFetch
	}
}
