package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCandidate is matched by every InvalidCandidateError.
	ErrInvalidCandidate = errors.New("invalid candidate")
	// ErrDataUnavailable is matched by every DataUnavailableError.
	ErrDataUnavailable = errors.New("word list unavailable")
)

// InvalidCandidateError reports a candidate with no letters left after normalization.
// Its score would divide by zero, so it can never be ranked.
// Index is the position in the ranked list, or NoIndex for a single candidate.
type InvalidCandidateError struct {
	Candidate string
	Index     int
}

// NoIndex marks an InvalidCandidateError that did not come from a list.
const NoIndex = -1

func (e *InvalidCandidateError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("invalid candidate %q: no letters after normalization", e.Candidate)
	}
	return fmt.Sprintf("invalid candidate %q at index %d: no letters after normalization", e.Candidate, e.Index)
}

// Is reports whether target is ErrInvalidCandidate.
func (e *InvalidCandidateError) Is(target error) bool {
	return target == ErrInvalidCandidate
}

// DataUnavailableError reports that a word list could not be produced by its source.
type DataUnavailableError struct {
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("word list unavailable from %s", e.Source)
	}
	return fmt.Sprintf("word list unavailable from %s: %v", e.Source, e.Err)
}

// Unwrap returns the underlying cause.
func (e *DataUnavailableError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrDataUnavailable.
func (e *DataUnavailableError) Is(target error) bool {
	return target == ErrDataUnavailable
}
