package normalizer

import (
	"unicode"

	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// FoldingNormalizer strips diacritics before applying the default rule, so
// accented Latin letters count as their base letter instead of being dropped.
type FoldingNormalizer struct {
	base ports.Normalizer
}

// NewFoldingNormalizer creates a normalizer that folds accents on top of base.
// A nil base selects the default normalizer.
func NewFoldingNormalizer(base ports.Normalizer) ports.Normalizer {
	if base == nil {
		base = NewDefaultNormalizer()
	}
	return &FoldingNormalizer{base: base}
}

// Normalize decomposes word, removes combining marks and normalizes the result.
func (n *FoldingNormalizer) Normalize(word string) string {
	// transform.Chain is stateful, so a fresh one is built per call.
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, word)
	if err != nil {
		folded = word
	}
	return n.base.Normalize(folded)
}
