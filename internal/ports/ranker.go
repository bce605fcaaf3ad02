package ports

import (
	"context"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
)

// Ranker defines the interface for ordering candidates by anagram similarity to a query.
type Ranker interface {
	Rank(ctx context.Context, query string, candidates []string) ([]domain.ScoredCandidate, error)
}
