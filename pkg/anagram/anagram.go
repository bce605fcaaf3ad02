// Package anagram ranks candidate words by how closely their letters match a
// scrambled query.
package anagram

import (
	"context"

	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
	"github.com/baditaflorin/go_anagram_similarity/internal/warmup"
	"github.com/baditaflorin/l"
)

// ScoredCandidate pairs a candidate with its score; lower is more similar.
type ScoredCandidate = domain.ScoredCandidate

// InvalidCandidateError reports a candidate with no letters after normalization.
type InvalidCandidateError = domain.InvalidCandidateError

// InvalidPolicy decides what happens to candidates with no letters.
type InvalidPolicy = ranking.InvalidPolicy

const (
	// RejectInvalid fails the ranking on the first candidate without letters.
	RejectInvalid = ranking.RejectInvalid
	// SkipInvalid leaves candidates without letters out of the result.
	SkipInvalid = ranking.SkipInvalid
)

var (
	// ErrInvalidCandidate matches every InvalidCandidateError.
	ErrInvalidCandidate = domain.ErrInvalidCandidate
	// ErrDataUnavailable matches every word list loading failure.
	ErrDataUnavailable = domain.ErrDataUnavailable
)

// Ranker provides methods to rank candidate words against a scrambled query.
type Ranker struct {
	ranker     *ranking.Ranker
	logger     ports.Logger
	normalizer ports.Normalizer
	ownsLogger bool
	warmed     bool
}

// RankerOption defines a functional option for configuring Ranker.
type RankerOption func(*rankerConfig)

type rankerConfig struct {
	Policy            InvalidPolicy
	Workers           int
	ParallelThreshold int
	Logger            ports.Logger
	Normalizer        ports.Normalizer
	WarmUp            bool
	WarmUpConfig      warmup.WarmupConfig
}

// WithPolicy sets how candidates without letters are handled.
func WithPolicy(p InvalidPolicy) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.Policy = p
	}
}

// WithSkipInvalid drops candidates without letters instead of failing.
func WithSkipInvalid() RankerOption {
	return WithPolicy(SkipInvalid)
}

// WithWorkers sets the number of goroutines used to score large lists.
func WithWorkers(n int) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.Workers = n
	}
}

// WithParallelThreshold sets the minimum list size scored in parallel.
func WithParallelThreshold(n int) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.ParallelThreshold = n
	}
}

// WithLogger sets a custom logger.
func WithLogger(lg l.Logger) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.Logger = logger.FromExisting(lg)
	}
}

// WithPortsLogger sets a logger implementing the internal logging port.
func WithPortsLogger(lg ports.Logger) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.Logger = lg
	}
}

// WithoutLogging discards all log output.
func WithoutLogging() RankerOption {
	return WithPortsLogger(logger.NewNopLogger())
}

// WithNormalizer sets a custom normalizer.
func WithNormalizer(n ports.Normalizer) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.Normalizer = n
	}
}

// WithNormalizerType selects one of the built-in normalizers.
func WithNormalizerType(t normalizer.NormalizerType) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.Normalizer = normalizer.NewNormalizerFactory().CreateNormalizer(t)
	}
}

// WithOptimizedNormalizer sets the table-driven normalizer.
func WithOptimizedNormalizer() RankerOption {
	return WithNormalizerType(normalizer.OptimizedNormalizerType)
}

// WithFoldingNormalizer makes accented letters count as their base letter.
func WithFoldingNormalizer() RankerOption {
	return WithNormalizerType(normalizer.FoldingNormalizerType)
}

// WithWarmUp enables warm-up on initialization.
func WithWarmUp(enable bool) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.WarmUp = enable
	}
}

// WithWarmUpConfig sets a custom warm-up configuration.
func WithWarmUpConfig(config warmup.WarmupConfig) RankerOption {
	return func(cfg *rankerConfig) {
		cfg.WarmUpConfig = config
		cfg.WarmUp = true
	}
}

// New creates a new Ranker instance.
func New(opts ...RankerOption) (*Ranker, error) {
	// Default configuration
	defaultConfig := ranking.DefaultConfig()

	config := &rankerConfig{
		Policy:            defaultConfig.Policy,
		Workers:           defaultConfig.Workers,
		ParallelThreshold: defaultConfig.ParallelThreshold,
		WarmUp:            false,
		WarmUpConfig:      warmup.DefaultWarmupConfig(),
	}

	// Apply options
	for _, opt := range opts {
		opt(config)
	}

	// Set up logger if not provided
	ownsLogger := config.Logger == nil
	if ownsLogger {
		var err error
		config.Logger, err = logger.NewStdLogger()
		if err != nil {
			return nil, err
		}
	}

	// Set up normalizer if not provided
	if config.Normalizer == nil {
		config.Normalizer = normalizer.NewDefaultNormalizer()
	}

	coreConfig := ranking.Config{
		Policy:            config.Policy,
		Workers:           config.Workers,
		ParallelThreshold: config.ParallelThreshold,
	}
	r, err := ranking.NewRanker(coreConfig, config.Logger, config.Normalizer)
	if err != nil {
		return nil, err
	}

	ar := &Ranker{
		ranker:     r,
		logger:     config.Logger,
		normalizer: config.Normalizer,
		ownsLogger: ownsLogger,
	}

	// Perform warm-up if configured
	if config.WarmUp {
		ar.WarmUp(context.Background(), config.WarmUpConfig)
	}

	return ar, nil
}

// Rank returns every candidate with its score, most similar first.
func (ar *Ranker) Rank(ctx context.Context, query string, candidates []string) ([]ScoredCandidate, error) {
	return ar.ranker.Rank(ctx, query, candidates)
}

// Score returns the score of a single candidate against query.
func (ar *Ranker) Score(query, candidate string) (float64, error) {
	return ar.ranker.Score(query, candidate)
}

// Normalize returns the letters-only lowercase form of word.
func (ar *Ranker) Normalize(word string) string {
	return ar.normalizer.Normalize(word)
}

// Close flushes the default logger created by New. A logger passed in with
// WithLogger or WithPortsLogger belongs to the caller and is left open.
func (ar *Ranker) Close() error {
	if !ar.ownsLogger {
		return nil
	}
	return ar.logger.Close()
}

// WarmUp exercises the normalizer and ranker before first use.
func (ar *Ranker) WarmUp(ctx context.Context, config warmup.WarmupConfig) {
	if ar.warmed {
		ar.logger.Debug("System already warmed up, skipping")
		return
	}

	warmupMgr := warmup.NewManager(ar.logger, config)
	warmupMgr.RegisterRanker(ar.ranker)
	warmupMgr.RegisterNormalizer(ar.normalizer)

	warmupMgr.WarmUp(ctx)
	ar.warmed = true
}

// TopK returns at most k of the best ranked candidates.
func TopK(results []ScoredCandidate, k int) []ScoredCandidate {
	return ranking.TopK(results, k)
}
