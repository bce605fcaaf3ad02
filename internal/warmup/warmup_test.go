package warmup

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRanker struct {
	calls atomic.Int64
}

func (c *countingRanker) Rank(ctx context.Context, query string, candidates []string) ([]domain.ScoredCandidate, error) {
	c.calls.Add(1)
	return nil, nil
}

func TestWarmUpRunsEveryComponent(t *testing.T) {
	cfg := WarmupConfig{Concurrency: 2, Iterations: 3, SampleWords: 20}
	mgr := NewManager(logger.NewNopLogger(), cfg)

	counting := &countingRanker{}
	mgr.RegisterRanker(counting)
	mgr.RegisterNormalizer(normalizer.NewOptimizedNormalizer())

	done := mgr.WarmUp(context.Background())

	// 2 routines * 3 iterations for normalizers and again for rankers
	assert.Equal(t, int64(12), done)
	// 3 queries per iteration
	assert.Equal(t, int64(18), counting.calls.Load())
}

func TestWarmUpWithRealRanker(t *testing.T) {
	cfg := ranking.DefaultConfig()
	cfg.Policy = ranking.SkipInvalid
	r, err := ranking.NewRanker(cfg, logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
	require.NoError(t, err)

	mgr := NewManager(logger.NewNopLogger(), WarmupConfig{Concurrency: 2, Iterations: 2, SampleWords: 50, Duration: time.Second})
	mgr.RegisterRanker(r)

	assert.Equal(t, int64(4), mgr.WarmUp(context.Background()))
}

func TestWarmUpStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	mgr := NewManager(logger.NewNopLogger(), WarmupConfig{Concurrency: 4, Iterations: 1000, SampleWords: 10})
	mgr.RegisterRanker(&countingRanker{})

	assert.Equal(t, int64(0), mgr.WarmUp(ctx))
}

func TestWarmUpWithoutComponents(t *testing.T) {
	mgr := NewManager(logger.NewNopLogger(), DefaultWarmupConfig())
	assert.Equal(t, int64(0), mgr.WarmUp(context.Background()))
}

func TestGenerateSampleWords(t *testing.T) {
	words := generateSampleWords(40)
	assert.Len(t, words, 40)
	assert.Equal(t, "Bulbasaur", words[0])
	assert.NotEqual(t, words[0], words[18])
}

func TestSampleWordsRankUnderRejectPolicy(t *testing.T) {
	r, err := ranking.NewRanker(ranking.DefaultConfig(), logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
	require.NoError(t, err)

	words := generateSampleWords(100)
	got, err := r.Rank(context.Background(), "pikachu", words)
	require.NoError(t, err)
	assert.Len(t, got, len(words))
}
