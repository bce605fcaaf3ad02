// Package config holds the command-line configuration shared by the anagram
// shell and the HTTP server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/wordlist"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// Default configuration
const (
	DefaultWordsFile      = "pokemon_names.json"
	DefaultTopK           = 10
	DefaultPort           = 8080
	DefaultReadTimeout    = 30 * time.Second
	DefaultWriteTimeout   = 30 * time.Second
	DefaultMaxRequestSize = 1024 * 1024 // 1MB
)

// Config is the complete runtime configuration.
type Config struct {
	WordsFile  string
	NoFetch    bool
	Candidates []string
	TopK       int
	Normalizer string
	Policy     string
	Workers    int

	LogFile string
	LogJSON bool

	Fetcher wordlist.FetcherConfig

	Port           int
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestSize int
	Concurrency    int
	WarmUp         bool
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		WordsFile:      DefaultWordsFile,
		TopK:           DefaultTopK,
		Normalizer:     normalizer.DefaultNormalizerType.String(),
		Policy:         ranking.RejectInvalid.String(),
		Workers:        1,
		Fetcher:        wordlist.DefaultFetcherConfig(),
		Port:           DefaultPort,
		ReadTimeout:    DefaultReadTimeout,
		WriteTimeout:   DefaultWriteTimeout,
		MaxRequestSize: DefaultMaxRequestSize,
	}
}

// RegisterFlags binds the word list, ranking and logging flags to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.WordsFile, "words", c.WordsFile, "Path to the cached JSON word list")
	fs.BoolVar(&c.NoFetch, "no-fetch", c.NoFetch, "Fail instead of fetching the word list when the cache is missing")
	fs.Func("candidates", "Comma-separated words to rank against instead of the word list", func(v string) error {
		c.Candidates = splitList(v)
		if len(c.Candidates) == 0 {
			return errors.New("no words given")
		}
		return nil
	})
	fs.IntVar(&c.TopK, "top", c.TopK, "Number of results to show")
	fs.StringVar(&c.Normalizer, "normalizer", c.Normalizer, "Normalizer: 'default', 'optimized' or 'folding'")
	fs.StringVar(&c.Policy, "invalid", c.Policy, "Candidates without letters: 'reject' or 'skip'")
	fs.IntVar(&c.Workers, "workers", c.Workers, "Goroutines used to score large word lists")

	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "Log file path (empty = stderr)")
	fs.BoolVar(&c.LogJSON, "log-json", c.LogJSON, "Write logs as JSON")

	fs.StringVar(&c.Fetcher.BaseURL, "api-url", c.Fetcher.BaseURL, "PokeAPI base URL")
	fs.StringVar(&c.Fetcher.Language, "language", c.Fetcher.Language, "Language of fetched names")
	fs.IntVar(&c.Fetcher.Limit, "fetch-limit", c.Fetcher.Limit, "Number of pokemon to fetch")
	fs.IntVar(&c.Fetcher.Concurrency, "fetch-concurrency", c.Fetcher.Concurrency, "Concurrent PokeAPI requests")
	fs.DurationVar(&c.Fetcher.Timeout, "fetch-timeout", c.Fetcher.Timeout, "Timeout per PokeAPI request")
}

// RegisterServerFlags binds the HTTP server flags to fs.
func (c *Config) RegisterServerFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Port, "port", c.Port, "HTTP server port")
	fs.DurationVar(&c.ReadTimeout, "read-timeout", c.ReadTimeout, "HTTP read timeout")
	fs.DurationVar(&c.WriteTimeout, "write-timeout", c.WriteTimeout, "HTTP write timeout")
	fs.IntVar(&c.MaxRequestSize, "max-request-size", c.MaxRequestSize, "Maximum request size in bytes")
	fs.IntVar(&c.Concurrency, "concurrency", c.Concurrency, "Maximum number of concurrent requests (0 = fasthttp default)")
	fs.BoolVar(&c.WarmUp, "warm-up", c.WarmUp, "Perform warm-up on startup")
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.WordsFile == "" {
		return errors.New("words file must not be empty")
	}
	if c.TopK <= 0 {
		return errors.New("top must be greater than 0")
	}
	if c.Workers < 0 {
		return errors.New("workers must not be negative")
	}
	if _, err := c.NormalizerType(); err != nil {
		return err
	}
	if _, err := c.InvalidPolicy(); err != nil {
		return err
	}
	if !c.NoFetch {
		if err := c.Fetcher.Validate(); err != nil {
			return fmt.Errorf("fetcher: %w", err)
		}
	}
	if c.Port <= 0 || c.Port > 65535 {
		return errors.New("port must be between 1 and 65535")
	}
	if c.MaxRequestSize <= 0 {
		return errors.New("max-request-size must be greater than 0")
	}
	return nil
}

// NormalizerType parses the normalizer flag.
func (c Config) NormalizerType() (normalizer.NormalizerType, error) {
	return normalizer.ParseNormalizerType(c.Normalizer)
}

// InvalidPolicy parses the invalid-candidate flag.
func (c Config) InvalidPolicy() (ranking.InvalidPolicy, error) {
	return ranking.ParseInvalidPolicy(c.Policy)
}

// NewLogger creates the configured logger. Without a log file, output goes to fallback,
// which stays open after the logger is closed.
func (c Config) NewLogger(fallback io.Writer) (ports.Logger, error) {
	var (
		lg  ports.Logger
		err error
	)
	if c.LogFile != "" {
		lg, err = logger.NewFileLogger(c.LogFile, c.LogJSON)
	} else {
		lg, err = logger.NewWriterLogger(fallback, c.LogJSON)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return lg, nil
}

// NewWordListProvider creates the populate-then-cache provider for WordsFile,
// or a fixed provider when Candidates were given.
func (c Config) NewWordListProvider(lg ports.Logger) (ports.WordListProvider, error) {
	if len(c.Candidates) > 0 {
		lg.Info("Using inline candidates", "count", len(c.Candidates))
		return wordlist.StaticProvider(c.Candidates), nil
	}

	store := wordlist.NewFileStore(c.WordsFile)
	if c.NoFetch {
		return wordlist.NewCachedProvider(store, nil, lg), nil
	}

	fetcher, err := wordlist.NewPokeAPIFetcher(c.Fetcher, nil, lg)
	if err != nil {
		return nil, err
	}
	return wordlist.NewCachedProvider(store, fetcher, lg), nil
}

func splitList(v string) []string {
	var out []string
	for _, w := range strings.Split(v, ",") {
		if w = strings.TrimSpace(w); w != "" {
			out = append(out, w)
		}
	}
	return out
}
