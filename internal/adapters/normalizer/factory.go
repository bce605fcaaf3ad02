package normalizer

import (
	"fmt"
	"strings"

	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// NormalizerFactory creates the appropriate normalizer based on requirements
type NormalizerFactory struct{}

// NewNormalizerFactory creates a new normalizer factory
func NewNormalizerFactory() *NormalizerFactory {
	return &NormalizerFactory{}
}

// NormalizerType selects a normalizer implementation.
type NormalizerType int

const (
	// DefaultNormalizerType is the reference normalizer
	DefaultNormalizerType NormalizerType = iota
	// OptimizedNormalizerType uses a lookup table and buffer pooling
	OptimizedNormalizerType
	// FoldingNormalizerType strips diacritics before normalizing
	FoldingNormalizerType
)

// String returns the flag name of the normalizer type.
func (t NormalizerType) String() string {
	switch t {
	case OptimizedNormalizerType:
		return "optimized"
	case FoldingNormalizerType:
		return "folding"
	default:
		return "default"
	}
}

// ParseNormalizerType maps a flag value to a NormalizerType.
func ParseNormalizerType(name string) (NormalizerType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return DefaultNormalizerType, nil
	case "optimized":
		return OptimizedNormalizerType, nil
	case "folding":
		return FoldingNormalizerType, nil
	default:
		return DefaultNormalizerType, fmt.Errorf("unknown normalizer %q: must be 'default', 'optimized' or 'folding'", name)
	}
}

// CreateNormalizer creates a normalizer of the specified type
func (f *NormalizerFactory) CreateNormalizer(normalizerType NormalizerType) ports.Normalizer {
	switch normalizerType {
	case OptimizedNormalizerType:
		return NewOptimizedNormalizer()
	case FoldingNormalizerType:
		return NewFoldingNormalizer(NewOptimizedNormalizer())
	default:
		return NewDefaultNormalizer()
	}
}
