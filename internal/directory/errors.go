package directory

import (
	"errors"
	"fmt"
	"strings"
)

// Kind classifies a failed directory call. Call sites branch on Kind, never
// on raw error text.
type Kind int

const (
	// KindTransport covers network failures, timeouts, and non-2xx responses
	// without a parseable application error.
	KindTransport Kind = iota
	// KindRemote covers structured application-level errors returned by the
	// directory (bad enum, constraint violation, ...).
	KindRemote
	// KindNotFound means the referenced entity does not exist remotely.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindRemote:
		return "remote"
	case KindNotFound:
		return "not_found"
	default:
		return "unknown"
	}
}

// Error is the single error type surfaced by the directory client.
type Error struct {
	Kind     Kind
	Op       string
	Status   int
	Messages []string
	Err      error
}

func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "directory %s: %s", e.Op, e.Kind)
	if e.Status != 0 {
		fmt.Fprintf(&b, " (HTTP %d)", e.Status)
	}
	if len(e.Messages) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Messages, "; "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// notFoundPhrases are the known substrings the directory emits for a lookup
// of an entity that does not exist. The service reports this condition as a
// free-text GraphQL error rather than a structured code, so detection is a
// phrase match by necessity. Keep the set in sync with ClassifyMessages tests.
var notFoundPhrases = []string{
	"resource mapping failed",
	"internal server error",
}

// ClassifyMessages decides whether a set of GraphQL error messages signals a
// missing entity. Anything that does not match is a generic remote error.
func ClassifyMessages(messages []string) Kind {
	for _, m := range messages {
		lower := strings.ToLower(m)
		for _, phrase := range notFoundPhrases {
			if strings.Contains(lower, phrase) {
				return KindNotFound
			}
		}
	}
	return KindRemote
}

// KindOf extracts the Kind from err. Errors that did not originate from the
// directory client count as transport failures.
func KindOf(err error) Kind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}
	return KindTransport
}
