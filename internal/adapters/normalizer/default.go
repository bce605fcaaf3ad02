package normalizer

import (
	"strings"

	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// DefaultNormalizer implements the reference word normalization strategy.
type DefaultNormalizer struct{}

// NewDefaultNormalizer creates a new default normalizer.
func NewDefaultNormalizer() ports.Normalizer {
	return &DefaultNormalizer{}
}

// Normalize lowercases ASCII letters and drops every rune outside a-z.
// Digits, punctuation, whitespace and non-ASCII letters are all removed.
func (n *DefaultNormalizer) Normalize(word string) string {
	var sb strings.Builder
	sb.Grow(len(word))
	for i := 0; i < len(word); i++ {
		b := word[i]
		switch {
		case b >= 'a' && b <= 'z':
			sb.WriteByte(b)
		case b >= 'A' && b <= 'Z':
			sb.WriteByte(b + ('a' - 'A'))
		}
	}
	return sb.String()
}
