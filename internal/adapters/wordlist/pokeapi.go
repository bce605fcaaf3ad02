package wordlist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
	"github.com/valyala/fasthttp"
	"golang.org/x/sync/errgroup"
)

// PokeAPISource names the remote source in errors and logs.
const PokeAPISource = "pokeapi"

// FetcherConfig holds configuration for the PokeAPI fetcher.
type FetcherConfig struct {
	BaseURL string
	// Language is the PokeAPI language name whose localized names are kept.
	Language string
	// Limit is the number of pokemon to enumerate.
	Limit    int
	PageSize int
	// Concurrency bounds the number of requests in flight.
	Concurrency  int
	MaxRetries   int
	RetryBackoff time.Duration
	Timeout      time.Duration
}

// DefaultFetchLimit covers pokemon IDs 1 to 1024.
const DefaultFetchLimit = 1024

// DefaultFetcherConfig returns a default configuration.
func DefaultFetcherConfig() FetcherConfig {
	return FetcherConfig{
		BaseURL:      "https://pokeapi.co/api/v2",
		Language:     "en",
		Limit:        DefaultFetchLimit,
		PageSize:     200,
		Concurrency:  16,
		MaxRetries:   3,
		RetryBackoff: 250 * time.Millisecond,
		Timeout:      15 * time.Second,
	}
}

// Validate checks if the configuration is valid.
func (c FetcherConfig) Validate() error {
	if c.BaseURL == "" {
		return errors.New("baseURL must not be empty")
	}
	if c.Language == "" {
		return errors.New("language must not be empty")
	}
	if c.Limit <= 0 {
		return errors.New("limit must be greater than 0")
	}
	if c.PageSize <= 0 {
		return errors.New("pageSize must be greater than 0")
	}
	if c.Concurrency <= 0 {
		return errors.New("concurrency must be greater than 0")
	}
	if c.MaxRetries < 0 {
		return errors.New("maxRetries must not be negative")
	}
	if c.Timeout <= 0 {
		return errors.New("timeout must be greater than 0")
	}
	return nil
}

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type resourcePage struct {
	Count   int             `json:"count"`
	Next    *string         `json:"next"`
	Results []namedResource `json:"results"`
}

type localizedName struct {
	Name     string        `json:"name"`
	Language namedResource `json:"language"`
}

type pokemonDoc struct {
	Name    string          `json:"name"`
	Species namedResource   `json:"species"`
	Forms   []namedResource `json:"forms"`
}

type namesDoc struct {
	Names []localizedName `json:"names"`
}

// statusError is a non-200 response.
type statusError struct {
	url    string
	status int
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %d", e.url, e.status)
}

func (e *statusError) retryable() bool {
	return e.status == fasthttp.StatusTooManyRequests || e.status >= 500
}

// PokeAPIFetcher retrieves every localized pokemon name, including alternate
// form names, from PokeAPI.
type PokeAPIFetcher struct {
	config FetcherConfig
	client *fasthttp.Client
	logger ports.Logger
}

var _ ports.WordListProvider = (*PokeAPIFetcher)(nil)

// NewPokeAPIFetcher creates a fetcher. A nil client selects a default fasthttp client.
func NewPokeAPIFetcher(config FetcherConfig, client *fasthttp.Client, logger ports.Logger) (*PokeAPIFetcher, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if client == nil {
		client = &fasthttp.Client{
			Name:                "go_anagram_similarity",
			MaxConnsPerHost:     config.Concurrency,
			ReadTimeout:         config.Timeout,
			WriteTimeout:        config.Timeout,
			MaxIdleConnDuration: 30 * time.Second,
		}
	}

	return &PokeAPIFetcher{
		config: config,
		client: client,
		logger: logger,
	}, nil
}

// Words returns species names followed by form names, both in pokemon order.
// Any failure is reported as a DataUnavailableError.
func (f *PokeAPIFetcher) Words(ctx context.Context) ([]string, error) {
	startTime := time.Now()
	f.logger.Info("Fetching names from PokeAPI",
		"base_url", f.config.BaseURL,
		"limit", f.config.Limit,
		"language", f.config.Language,
	)

	words, err := f.fetch(ctx)
	if err != nil {
		f.logger.Error("PokeAPI fetch failed", "error", err)
		return nil, &domain.DataUnavailableError{Source: PokeAPISource, Err: err}
	}

	f.logger.Info("Fetched names from PokeAPI",
		"count", len(words),
		"duration", time.Since(startTime),
	)
	return words, nil
}

func (f *PokeAPIFetcher) fetch(ctx context.Context) ([]string, error) {
	entries, err := f.listPokemon(ctx)
	if err != nil {
		return nil, err
	}

	speciesNames := make([][]string, len(entries))
	formNames := make([][]string, len(entries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(f.config.Concurrency)

	for i, entry := range entries {
		g.Go(func() error {
			var pokemon pokemonDoc
			if err := f.getJSON(gctx, f.resolve(entry.URL), &pokemon); err != nil {
				return err
			}

			var species namesDoc
			if err := f.getJSON(gctx, f.resolve(pokemon.Species.URL), &species); err != nil {
				return err
			}
			speciesNames[i] = f.localized(species.Names)

			for _, form := range pokemon.Forms {
				var doc namesDoc
				if err := f.getJSON(gctx, f.resolve(form.URL), &doc); err != nil {
					return err
				}
				formNames[i] = append(formNames[i], f.localized(doc.Names)...)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	words := make([]string, 0, len(entries)*2)
	for _, names := range speciesNames {
		words = append(words, names...)
	}
	for _, names := range formNames {
		words = append(words, names...)
	}
	return words, nil
}

// listPokemon walks the paginated pokemon index until Limit entries are collected.
func (f *PokeAPIFetcher) listPokemon(ctx context.Context) ([]namedResource, error) {
	entries := make([]namedResource, 0, f.config.Limit)
	next := fmt.Sprintf("%s/pokemon?limit=%d&offset=0", f.config.BaseURL, min(f.config.PageSize, f.config.Limit))

	for next != "" && len(entries) < f.config.Limit {
		var page resourcePage
		if err := f.getJSON(ctx, next, &page); err != nil {
			return nil, err
		}
		f.logger.Debug("Fetched pokemon index page", "url", next, "results", len(page.Results))

		remaining := f.config.Limit - len(entries)
		if len(page.Results) > remaining {
			page.Results = page.Results[:remaining]
		}
		entries = append(entries, page.Results...)

		if page.Next == nil || len(page.Results) == 0 {
			break
		}
		next = f.resolve(*page.Next)
	}

	return entries, nil
}

func (f *PokeAPIFetcher) localized(names []localizedName) []string {
	out := make([]string, 0, 1)
	for _, n := range names {
		if n.Language.Name == f.config.Language {
			out = append(out, n.Name)
		}
	}
	return out
}

func (f *PokeAPIFetcher) resolve(url string) string {
	if strings.HasPrefix(url, "http://") || strings.HasPrefix(url, "https://") {
		return url
	}
	return f.config.BaseURL + "/" + strings.TrimLeft(url, "/")
}

// getJSON fetches url into v, retrying transport errors, 429 and 5xx with
// exponential backoff.
func (f *PokeAPIFetcher) getJSON(ctx context.Context, url string, v interface{}) error {
	for attempt := 0; ; attempt++ {
		// Check context cancellation.
		if err := ctx.Err(); err != nil {
			return err
		}

		body, err := f.get(url)
		if err == nil {
			if err := json.Unmarshal(body, v); err != nil {
				return fmt.Errorf("decoding %s: %w", url, err)
			}
			return nil
		}

		var se *statusError
		if errors.As(err, &se) && !se.retryable() {
			return err
		}
		if attempt >= f.config.MaxRetries {
			return fmt.Errorf("giving up after %d attempts: %w", attempt+1, err)
		}

		backoff := f.config.RetryBackoff << attempt
		f.logger.Warn("Retrying PokeAPI request", "url", url, "attempt", attempt+1, "backoff", backoff, "error", err)

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}

func (f *PokeAPIFetcher) get(url string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(url)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	if err := f.client.DoTimeout(req, resp, f.config.Timeout); err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	if status := resp.StatusCode(); status != fasthttp.StatusOK {
		return nil, &statusError{url: url, status: status}
	}

	// The response body is released with resp.
	return append([]byte(nil), resp.Body()...), nil
}
