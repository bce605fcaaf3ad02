package wordlist

import (
	"context"
	"errors"
	"fmt"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// CachedProvider serves the word list from a store, populating the store from
// a remote provider the first time.
type CachedProvider struct {
	store  ports.WordListStore
	remote ports.WordListProvider
	logger ports.Logger
}

var _ ports.WordListProvider = (*CachedProvider)(nil)

// NewCachedProvider creates a populate-then-cache provider. remote may be nil,
// in which case a missing store is an error.
func NewCachedProvider(store ports.WordListStore, remote ports.WordListProvider, logger ports.Logger) *CachedProvider {
	return &CachedProvider{store: store, remote: remote, logger: logger}
}

// Words returns the cached list, or fetches, de-duplicates and caches it.
// The result is never empty: an empty list is a DataUnavailableError.
func (p *CachedProvider) Words(ctx context.Context) ([]string, error) {
	if p.store.Exists() {
		words, err := p.store.Load()
		if err != nil {
			return nil, err
		}
		if len(words) == 0 {
			return nil, &domain.DataUnavailableError{Source: "cache", Err: errors.New("cached word list is empty")}
		}
		p.logger.Info(fmt.Sprintf("Loaded %d words", len(words)), "count", len(words))
		return words, nil
	}

	if p.remote == nil {
		return nil, &domain.DataUnavailableError{Source: "cache", Err: errors.New("no cached word list and no remote source configured")}
	}

	fetched, err := p.remote.Words(ctx)
	if err != nil {
		return nil, err
	}

	words := Dedupe(fetched)
	if len(words) == 0 {
		return nil, &domain.DataUnavailableError{Source: PokeAPISource, Err: errors.New("remote source returned no words")}
	}

	if err := p.store.Save(words); err != nil {
		// The list is still usable for this run.
		p.logger.Warn("Failed to cache word list", "error", err)
	}

	p.logger.Info(fmt.Sprintf("Fetched %d words", len(words)), "count", len(words), "duplicates", len(fetched)-len(words))
	return words, nil
}

// Dedupe drops repeated words, keeping the first occurrence of each.
func Dedupe(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		out = append(out, w)
	}
	return out
}

// StaticProvider serves a fixed list.
type StaticProvider []string

// Words returns the list, or a DataUnavailableError when it is empty.
func (s StaticProvider) Words(context.Context) ([]string, error) {
	if len(s) == 0 {
		return nil, &domain.DataUnavailableError{Source: "static", Err: errors.New("word list is empty")}
	}
	return []string(s), nil
}
