// Package shell implements the interactive prompt that ranks scrambled words
// against a loaded word list.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/baditaflorin/go_anagram_similarity/internal/ports"
)

// Prompt is printed before each read.
const Prompt = "Enter the scrambled word: "

// DefaultTopK is the number of results printed per query.
const DefaultTopK = 10

var exitCommands = map[string]bool{
	"exit": true,
	"quit": true,
	":q":   true,
}

// Shell reads scrambled words and prints the best matching candidates.
type Shell struct {
	in     io.Reader
	out    io.Writer
	ranker ports.Ranker
	words  []string
	topK   int
	logger ports.Logger
}

// New creates a shell ranking against words. topK <= 0 selects DefaultTopK.
func New(in io.Reader, out io.Writer, ranker ports.Ranker, words []string, topK int, logger ports.Logger) *Shell {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Shell{
		in:     in,
		out:    out,
		ranker: ranker,
		words:  words,
		topK:   topK,
		logger: logger,
	}
}

// Run loops until the input ends, an exit command is entered or ctx is done.
// Blank lines re-prompt. A ranking error is printed and the loop continues.
func (s *Shell) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)

	// The reader goroutine may stay blocked on a terminal read after ctx is done.
	go func() {
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		if _, err := fmt.Fprint(s.out, Prompt); err != nil {
			return err
		}

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			s.logger.Debug("Shell interrupted", "error", ctx.Err())
			return nil
		case err := <-readErr:
			fmt.Fprintln(s.out)
			if err != nil {
				return fmt.Errorf("reading input: %w", err)
			}
			return nil
		case line = <-lines:
		}

		query := strings.TrimSpace(line)
		if query == "" {
			continue
		}
		if exitCommands[strings.ToLower(query)] {
			return nil
		}

		if err := s.handle(ctx, query); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			s.logger.Warn("Ranking failed", "query", query, "error", err)
			fmt.Fprintf(s.out, "error: %v\n", err)
		}
	}
}

func (s *Shell) handle(ctx context.Context, query string) error {
	results, err := s.ranker.Rank(ctx, query, s.words)
	if err != nil {
		return err
	}
	return Print(s.out, ranking.TopK(results, s.topK))
}

// Print writes results numbered from 1 with the score to two decimal places.
func Print(w io.Writer, results []domain.ScoredCandidate) error {
	for i, r := range results {
		if _, err := fmt.Fprintf(w, "%d. %s @ %.2f\n", i+1, r.Word, r.Score); err != nil {
			return err
		}
	}
	return nil
}
