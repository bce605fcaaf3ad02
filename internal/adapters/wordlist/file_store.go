// Package wordlist loads, fetches and caches the candidate word list.
package wordlist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// FileStore persists a word list as a UTF-8 JSON array of strings.
type FileStore struct {
	path string
}

var _ ports.WordListStore = (*FileStore)(nil)

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Exists reports whether the backing file is present.
func (s *FileStore) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Load reads the word list. A missing or malformed file is a DataUnavailableError.
func (s *FileStore) Load() ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &domain.DataUnavailableError{Source: s.path, Err: err}
	}

	var words []string
	if err := json.Unmarshal(data, &words); err != nil {
		return nil, &domain.DataUnavailableError{Source: s.path, Err: fmt.Errorf("decoding word list: %w", err)}
	}
	if words == nil {
		return nil, &domain.DataUnavailableError{Source: s.path, Err: errors.New("word list is null")}
	}

	return words, nil
}

// Save writes the word list with two-space indentation and without escaping
// non-ASCII or HTML characters. The file is replaced atomically.
func (s *FileStore) Save(words []string) error {
	if words == nil {
		words = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(words); err != nil {
		return fmt.Errorf("encoding word list: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing word list: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing word list: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing word list: %w", err)
	}

	return nil
}
