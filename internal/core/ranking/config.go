package ranking

import (
	"errors"
	"fmt"
	"strings"
)

// InvalidPolicy decides what happens to candidates with no letters after normalization.
type InvalidPolicy int

const (
	// RejectInvalid fails the whole ranking with an InvalidCandidateError.
	RejectInvalid InvalidPolicy = iota
	// SkipInvalid leaves degenerate candidates out of the result.
	SkipInvalid
)

// String returns the flag name of the policy.
func (p InvalidPolicy) String() string {
	if p == SkipInvalid {
		return "skip"
	}
	return "reject"
}

// ParseInvalidPolicy maps a flag value to an InvalidPolicy.
func ParseInvalidPolicy(name string) (InvalidPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "reject":
		return RejectInvalid, nil
	case "skip":
		return SkipInvalid, nil
	default:
		return RejectInvalid, fmt.Errorf("unknown invalid-candidate policy %q: must be 'reject' or 'skip'", name)
	}
}

// Config holds configuration for the ranker.
type Config struct {
	Policy InvalidPolicy
	// Workers is the number of goroutines used to score large lists. 0 or 1 scores sequentially.
	Workers int
	// ParallelThreshold is the minimum list size scored in parallel.
	ParallelThreshold int
}

// DefaultConfig returns a default configuration.
func DefaultConfig() Config {
	return Config{
		Policy:            RejectInvalid,
		Workers:           1,
		ParallelThreshold: 4096,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.Policy != RejectInvalid && c.Policy != SkipInvalid {
		return errors.New("policy must be RejectInvalid or SkipInvalid")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if c.ParallelThreshold < 0 {
		return errors.New("parallelThreshold must not be negative")
	}
	return nil
}
