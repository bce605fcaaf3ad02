package ports

import "context"

// WordListProvider supplies the candidate word list.
type WordListProvider interface {
	Words(ctx context.Context) ([]string, error)
}

// WordListStore persists a word list between runs.
type WordListStore interface {
	Exists() bool
	Load() ([]string, error)
	Save(words []string) error
}
