package config

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/wordlist"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	assert.NoError(t, Default().Validate())
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	cfg.RegisterServerFlags(fs)

	err := fs.Parse([]string{
		"-words", "names.json",
		"-top", "5",
		"-normalizer", "folding",
		"-invalid", "skip",
		"-workers", "4",
		"-language", "fr",
		"-fetch-timeout", "3s",
		"-port", "9090",
		"-warm-up",
	})
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "names.json", cfg.WordsFile)
	assert.Equal(t, 5, cfg.TopK)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "fr", cfg.Fetcher.Language)
	assert.Equal(t, 3*time.Second, cfg.Fetcher.Timeout)
	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.WarmUp)

	nt, err := cfg.NormalizerType()
	require.NoError(t, err)
	assert.Equal(t, normalizer.FoldingNormalizerType, nt)

	policy, err := cfg.InvalidPolicy()
	require.NoError(t, err)
	assert.Equal(t, ranking.SkipInvalid, policy)
}

func TestValidateRejects(t *testing.T) {
	mutations := map[string]func(*Config){
		"empty words file":   func(c *Config) { c.WordsFile = "" },
		"zero top":           func(c *Config) { c.TopK = 0 },
		"negative workers":   func(c *Config) { c.Workers = -2 },
		"unknown normalizer": func(c *Config) { c.Normalizer = "nfkc" },
		"unknown policy":     func(c *Config) { c.Policy = "drop" },
		"bad fetcher":        func(c *Config) { c.Fetcher.Limit = 0 },
		"bad port":           func(c *Config) { c.Port = 70000 },
		"zero request size":  func(c *Config) { c.MaxRequestSize = 0 },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestNoFetchSkipsFetcherValidation(t *testing.T) {
	cfg := Default()
	cfg.NoFetch = true
	cfg.Fetcher.Limit = 0
	assert.NoError(t, cfg.Validate())
}

func TestNewWordListProviderNoFetch(t *testing.T) {
	cfg := Default()
	cfg.NoFetch = true
	cfg.WordsFile = filepath.Join(t.TempDir(), "names.json")

	p, err := cfg.NewWordListProvider(logger.NewNopLogger())
	require.NoError(t, err)
	_, err = p.Words(context.Background())
	assert.ErrorIs(t, err, domain.ErrDataUnavailable)

	require.NoError(t, wordlist.NewFileStore(cfg.WordsFile).Save([]string{"Pikachu"}))
	words, err := p.Words(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Pikachu"}, words)
}

func TestCandidatesFlag(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cfg.RegisterFlags(fs)

	require.NoError(t, fs.Parse([]string{"-candidates", " space, pact,,apple "}))
	assert.Equal(t, []string{"space", "pact", "apple"}, cfg.Candidates)

	p, err := cfg.NewWordListProvider(logger.NewNopLogger())
	require.NoError(t, err)
	words, err := p.Words(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"space", "pact", "apple"}, words)

	assert.Error(t, fs.Parse([]string{"-candidates", " , "}))
}

func TestNewLoggerOpensLogFile(t *testing.T) {
	cfg := Default()
	cfg.LogFile = filepath.Join(t.TempDir(), "app.log")

	lg, err := cfg.NewLogger(io.Discard)
	require.NoError(t, err)
	assert.NoError(t, lg.Close())
	assert.FileExists(t, cfg.LogFile)

	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	cfg.LogFile = filepath.Join(blocker, "app.log")
	_, err = cfg.NewLogger(io.Discard)
	assert.Error(t, err)
}

func TestNewLoggerLeavesFallbackOpen(t *testing.T) {
	fallback, err := os.CreateTemp(t.TempDir(), "stderr")
	require.NoError(t, err)
	defer fallback.Close()

	lg, err := Default().NewLogger(fallback)
	require.NoError(t, err)
	lg.Info("starting")
	require.NoError(t, lg.Close())

	_, err = fallback.WriteString("still writable\n")
	assert.NoError(t, err)
}
