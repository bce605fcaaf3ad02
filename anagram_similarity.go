// anagram_similarity.go
// Package anagramsimilarity ranks candidate words by how closely their letter
// composition matches a scrambled query.
//
// Both words are normalized to lowercase ASCII letters, counted into letter
// multisets and compared:
//
//	score = sum(|candidate[l] - query[l]|) / |letters(candidate) ∪ letters(query)|
//
// A score of 0 means the two words are exact anagrams; higher scores are less
// similar. Results are sorted ascending and ties keep the input order.
package anagramsimilarity

import (
	"context"

	"github.com/baditaflorin/go_anagram_similarity/pkg/anagram"
)

// ScoredCandidate pairs a candidate with its score.
type ScoredCandidate = anagram.ScoredCandidate

var (
	// ErrInvalidCandidate is returned when a candidate has no letters.
	ErrInvalidCandidate = anagram.ErrInvalidCandidate
	// ErrDataUnavailable is returned when a word list cannot be loaded.
	ErrDataUnavailable = anagram.ErrDataUnavailable
)

var defaultRanker = mustRanker()

func mustRanker() *anagram.Ranker {
	r, err := anagram.New(anagram.WithoutLogging())
	if err != nil {
		panic(err)
	}
	return r
}

// Normalize converts word to lowercase and drops everything but the letters a-z.
func Normalize(word string) string {
	return defaultRanker.Normalize(word)
}

// Rank scores every candidate against query and returns them most similar first.
// A candidate without letters fails the call with an error matching ErrInvalidCandidate.
func Rank(query string, candidates []string) ([]ScoredCandidate, error) {
	return defaultRanker.Rank(context.Background(), query, candidates)
}

// Similarity returns the score of a single candidate against query.
func Similarity(query, candidate string) (float64, error) {
	return defaultRanker.Score(query, candidate)
}
