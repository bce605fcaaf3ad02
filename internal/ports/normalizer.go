package ports

// Normalizer defines the interface for word normalization.
type Normalizer interface {
	Normalize(word string) string
}
