package normalizer

import (
	"github.com/baditaflorin/go_anagram_similarity/internal/pool"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// OptimizedNormalizer produces the same output as DefaultNormalizer using a
// precomputed byte table and pooled buffers.
type OptimizedNormalizer struct {
	// Output byte for every input byte; 0 means drop.
	table [256]byte

	bytePool *pool.BufferPool
}

// NewOptimizedNormalizer creates a new optimized normalizer
func NewOptimizedNormalizer() ports.Normalizer {
	n := &OptimizedNormalizer{
		bytePool: pool.NewBufferPool(256),
	}

	for c := 'a'; c <= 'z'; c++ {
		n.table[c] = byte(c)
		n.table[c-('a'-'A')] = byte(c)
	}

	return n
}

// Normalize lowercases ASCII letters and drops everything else.
func (n *OptimizedNormalizer) Normalize(word string) string {
	// Fast path for empty strings
	if len(word) == 0 {
		return ""
	}

	// Fast path for words that are already normalized
	clean := true
	for i := 0; i < len(word); i++ {
		if b := word[i]; b < 'a' || b > 'z' {
			clean = false
			break
		}
	}
	if clean {
		return word
	}

	buffer := n.bytePool.Get()
	defer n.bytePool.Put(buffer)

	if cap(*buffer) < len(word) {
		*buffer = make([]byte, 0, len(word))
	}

	// Multi-byte UTF-8 sequences only contain bytes >= 0x80, which map to 0.
	for i := 0; i < len(word); i++ {
		if out := n.table[word[i]]; out != 0 {
			*buffer = append(*buffer, out)
		}
	}

	return string(*buffer)
}
