package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrMissingGeminiKey is returned when the Gemini API key is absent or blank
	ErrMissingGeminiKey = errors.New("Missing GEMINI_API_KEY")
)

// ErrorKind classifies a synthesis failure. The orchestrator branches on the
// kind, never on the detail text.
type ErrorKind int

const (
	// KindBadRequest is a model HTTP 400. The orchestrator reacts by dropping
	// image evidence and retrying once.
	KindBadRequest ErrorKind = iota

	// KindUpstreamOther is any non-200 status outside the transient set.
	KindUpstreamOther

	// KindTransport is a transport-level fault (timeout, connection error).
	KindTransport

	// KindExhausted means every model in the ladder was tried without success.
	KindExhausted

	// KindParse means the model answered but its output was not valid
	// structured data.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindBadRequest:
		return "bad_request"
	case KindUpstreamOther:
		return "upstream_other"
	case KindTransport:
		return "transport"
	case KindExhausted:
		return "exhausted"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// SynthesisError is the typed failure half of a synthesis outcome. Detail is
// the human-readable status surfaced to the caller; Body carries a truncated
// copy of the upstream response for the kinds that have one.
type SynthesisError struct {
	Kind   ErrorKind
	Detail string
	Body   string
}

func (e *SynthesisError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: %s", e.Detail, e.Body)
	}
	return e.Detail
}

// Status renders the failure as a ProductRecord status string.
func (e *SynthesisError) Status() string {
	if e.Body != "" {
		return fmt.Sprintf("%s Body: %s", e.Detail, e.Body)
	}
	return e.Detail
}
