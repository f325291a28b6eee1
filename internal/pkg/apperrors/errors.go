// FILE: internal/pkg/apperrors/errors.go
// PURPOSE: Central error taxonomy shared by the retrieval core and the HTTP layer
package apperrors

import (
	"errors"
	"fmt"
)

// Sentinel errors. Handlers translate these into HTTP statuses; the core only
// ever wraps them with context via fmt.Errorf("...: %w", ...).
var (
	// ErrInvalidArgument: bad caller input (k <= 0, empty utterance). Never retried.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound: a corpus item id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNoPriorResult: an utterance referenced a previous result but the
	// session has no result set yet.
	ErrNoPriorResult = errors.New("no prior result to resolve")

	// ErrDimensionMismatch: embedding dimensionality disagrees with the index.
	// Fatal at startup, a client error at query time.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")

	// ErrMalformedSnapshot: the corpus snapshot failed validation. The load
	// aborts as a whole; there is no partial-load mode.
	ErrMalformedSnapshot = errors.New("malformed corpus snapshot")

	// ErrAmbiguousReference: a fuzzy function lookup matched several corpus
	// items equally well. Surfaced as a clarification request.
	ErrAmbiguousReference = errors.New("ambiguous reference")

	// ErrExplanationUnavailable: the explanation generator failed. Surfaced as
	// a degraded response, not retried.
	ErrExplanationUnavailable = errors.New("explanation unavailable")
)

// InvalidArgumentf wraps ErrInvalidArgument with a formatted reason.
func InvalidArgumentf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrInvalidArgument)...)
}

// NotFoundf wraps ErrNotFound with a formatted reason.
func NotFoundf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
}

// MalformedSnapshotf wraps ErrMalformedSnapshot with a formatted reason.
func MalformedSnapshotf(format string, args ...interface{}) error {
	return fmt.Errorf(format+": %w", append(args, ErrMalformedSnapshot)...)
}
