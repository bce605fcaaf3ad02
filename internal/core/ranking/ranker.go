// Package ranking orders candidate words by how closely their letters match a query.
package ranking

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/letters"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// Ranker scores every candidate against a query and sorts them, most similar first.
type Ranker struct {
	config     Config
	logger     ports.Logger
	normalizer ports.Normalizer
}

// NewRanker creates a new ranker.
func NewRanker(config Config, logger ports.Logger, normalizer ports.Normalizer) (*Ranker, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Ranker{
		config:     config,
		logger:     logger,
		normalizer: normalizer,
	}, nil
}

// slot is the scoring outcome for the candidate at the same index.
type slot struct {
	scored  domain.ScoredCandidate
	invalid bool
}

// Rank returns every candidate with its score, sorted ascending by score.
// Ties keep the order of the input list.
//
// The score is the sum of absolute per-letter count differences divided by
// the number of distinct letters in either word. Candidates without letters
// are handled according to the configured InvalidPolicy.
func (r *Ranker) Rank(ctx context.Context, query string, candidates []string) ([]domain.ScoredCandidate, error) {
	normalizedQuery := r.normalizer.Normalize(query)
	r.logger.Debug("Starting anagram ranking",
		"query", query,
		"normalizedQuery", normalizedQuery,
		"candidates", len(candidates),
	)

	// Check context cancellation.
	if err := ctx.Err(); err != nil {
		r.logger.Error("Ranking cancelled", "error", err)
		return nil, err
	}

	if len(candidates) == 0 {
		return []domain.ScoredCandidate{}, nil
	}

	queryLetters := letters.Count(normalizedQuery)
	slots := make([]slot, len(candidates))

	if r.config.Workers > 1 && len(candidates) >= r.config.ParallelThreshold {
		if err := r.scoreParallel(ctx, queryLetters, candidates, slots); err != nil {
			r.logger.Error("Ranking cancelled", "error", err)
			return nil, err
		}
	} else {
		r.scoreRange(queryLetters, candidates, slots, 0, len(candidates))
	}

	results := make([]domain.ScoredCandidate, 0, len(candidates))
	for i, s := range slots {
		if !s.invalid {
			results = append(results, s.scored)
			continue
		}
		if r.config.Policy == RejectInvalid {
			r.logger.Error("Candidate has no letters", "candidate", candidates[i], "index", i)
			return nil, &domain.InvalidCandidateError{Candidate: candidates[i], Index: i}
		}
		r.logger.Warn("Skipping candidate with no letters", "candidate", candidates[i], "index", i)
	}

	slices.SortStableFunc(results, func(a, b domain.ScoredCandidate) int {
		return cmp.Compare(a.Score, b.Score)
	})

	r.logger.Debug("Computed anagram ranking",
		"query", query,
		"ranked", len(results),
		"skipped", len(candidates)-len(results),
	)

	return results, nil
}

// Score returns the distance between a query and a single candidate.
func (r *Ranker) Score(query, candidate string) (float64, error) {
	s := r.scoreOne(letters.Count(r.normalizer.Normalize(query)), candidate)
	if s.invalid {
		return 0, &domain.InvalidCandidateError{Candidate: candidate, Index: domain.NoIndex}
	}
	return s.scored.Score, nil
}

func (r *Ranker) scoreOne(query letters.Multiset, candidate string) slot {
	normalized := r.normalizer.Normalize(candidate)
	if normalized == "" {
		return slot{invalid: true}
	}

	total, distinct := letters.Distance(query, letters.Count(normalized))
	return slot{scored: domain.ScoredCandidate{
		Word:       candidate,
		Normalized: normalized,
		Score:      float64(total) / float64(distinct),
	}}
}

func (r *Ranker) scoreRange(query letters.Multiset, candidates []string, slots []slot, from, to int) {
	for i := from; i < to; i++ {
		slots[i] = r.scoreOne(query, candidates[i])
	}
}

// scoreParallel splits candidates into contiguous chunks, one per worker.
// Each worker writes only its own range of slots.
func (r *Ranker) scoreParallel(ctx context.Context, query letters.Multiset, candidates []string, slots []slot) error {
	workers := r.config.Workers
	if workers > len(candidates) {
		workers = len(candidates)
	}
	chunk := (len(candidates) + workers - 1) / workers

	r.logger.Debug("Scoring candidates in parallel", "workers", workers, "chunk", chunk)

	var wg sync.WaitGroup
	for from := 0; from < len(candidates); from += chunk {
		to := min(from+chunk, len(candidates))

		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()

			// Check for context cancellation
			select {
			case <-ctx.Done():
				return
			default:
			}

			r.scoreRange(query, candidates, slots, from, to)
		}(from, to)
	}
	wg.Wait()

	return ctx.Err()
}

// TopK returns at most k of the best ranked candidates. k <= 0 returns everything.
func TopK(results []domain.ScoredCandidate, k int) []domain.ScoredCandidate {
	if k <= 0 || k >= len(results) {
		return results
	}
	return results[:k]
}
