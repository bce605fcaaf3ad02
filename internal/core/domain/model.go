package domain

// ScoredCandidate pairs a candidate word with its distance from the query.
// Lower scores are more similar; 0 means the letter multisets match exactly.
type ScoredCandidate struct {
	Word       string
	Normalized string
	Score      float64
}
