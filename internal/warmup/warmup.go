package warmup

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// WarmupConfig defines configuration for warming up the system
type WarmupConfig struct {
	// Number of concurrent warmup routines to run
	Concurrency int
	// Number of iterations per routine
	Iterations int
	// Number of candidate words ranked per iteration
	SampleWords int
	// Warmup duration (0 means no time limit)
	Duration time.Duration
	// Whether to perform GC after warmup
	ForceGC bool
}

// DefaultWarmupConfig returns the default warmup configuration
func DefaultWarmupConfig() WarmupConfig {
	return WarmupConfig{
		Concurrency: runtime.NumCPU(),
		Iterations:  200,
		SampleWords: 500,
		Duration:    5 * time.Second,
		ForceGC:     true,
	}
}

// Manager handles system warmup operations
type Manager struct {
	logger      ports.Logger
	rankers     []ports.Ranker
	normalizers []ports.Normalizer
	config      WarmupConfig
}

// NewManager creates a new warmup manager
func NewManager(logger ports.Logger, config WarmupConfig) *Manager {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	return &Manager{
		logger: logger,
		config: config,
	}
}

// RegisterRanker adds a ranker to be warmed up
func (wm *Manager) RegisterRanker(r ports.Ranker) {
	wm.rankers = append(wm.rankers, r)
}

// RegisterNormalizer adds a normalizer to be warmed up
func (wm *Manager) RegisterNormalizer(norm ports.Normalizer) {
	wm.normalizers = append(wm.normalizers, norm)
}

// WarmUp runs the warmup process for all registered components.
// It returns the number of completed iterations across all routines.
func (wm *Manager) WarmUp(ctx context.Context) int64 {
	startTime := time.Now()
	wm.logger.Info("Starting system warmup",
		"components", len(wm.rankers)+len(wm.normalizers),
		"concurrency", wm.config.Concurrency,
		"iterations", wm.config.Iterations,
	)

	// Create a context with timeout if duration is specified
	warmupCtx := ctx
	if wm.config.Duration > 0 {
		var cancel context.CancelFunc
		warmupCtx, cancel = context.WithTimeout(ctx, wm.config.Duration)
		defer cancel()
	}

	words := generateSampleWords(wm.config.SampleWords)

	done := wm.run(warmupCtx, len(wm.normalizers), func() {
		for _, normalizer := range wm.normalizers {
			for _, w := range words {
				_ = normalizer.Normalize(w)
			}
		}
	})

	done += wm.run(warmupCtx, len(wm.rankers), func() {
		for _, ranker := range wm.rankers {
			for _, q := range []string{"pact", "aceps", "Nidoran"} {
				_, _ = ranker.Rank(warmupCtx, q, words)
			}
		}
	})

	// Force garbage collection if configured
	if wm.config.ForceGC {
		wm.logger.Debug("Forcing garbage collection after warmup")
		runtime.GC()
	}

	wm.logger.Info("System warmup completed",
		"duration", time.Since(startTime),
		"iterations", done,
	)
	return done
}

// run executes step on Concurrency goroutines, Iterations times each.
func (wm *Manager) run(ctx context.Context, components int, step func()) int64 {
	if components == 0 {
		return 0
	}

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		total int64
	)
	for i := 0; i < wm.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			var n int64
		loop:
			for j := 0; j < wm.config.Iterations; j++ {
				// Check for context cancellation
				select {
				case <-ctx.Done():
					break loop
				default:
				}

				step()
				n++
			}

			mu.Lock()
			total += n
			mu.Unlock()
		}()
	}

	wg.Wait()
	return total
}

// generateSampleWords creates size pseudo-words with punctuation and accents
// mixed in. Every word keeps at least one letter, so rankers using
// RejectInvalid can score the whole list.
func generateSampleWords(size int) []string {
	// Sample words to use in generating the list
	base := []string{
		"Bulbasaur", "Ivysaur", "Charmander", "Squirtle", "Pikachu", "Raichu",
		"Nidoran♀", "Nidoran♂", "Mr. Mime", "Farfetch'd", "Ho-Oh", "Porygon-Z",
		"Flabébé", "Type: Null", "space", "apple", "grape", "pact",
	}

	words := make([]string, 0, size)
	for i := 0; len(words) < size; i++ {
		w := []rune(base[i%len(base)])
		if i >= len(base) {
			// Rotate to vary letter order between rounds
			shift := (i / len(base)) % len(w)
			w = append(append([]rune{}, w[shift:]...), w[:shift]...)
		}
		words = append(words, string(w))
	}
	return words
}
