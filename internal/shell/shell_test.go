package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/logger"
	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/normalizer"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/domain"
	"github.com/baditaflorin/go_anagram_similarity/internal/core/ranking"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testWords = []string{"apple", "space", "grape", "pact"}

func newRanker(t *testing.T, policy ranking.InvalidPolicy) *ranking.Ranker {
	t.Helper()
	cfg := ranking.DefaultConfig()
	cfg.Policy = policy
	r, err := ranking.NewRanker(cfg, logger.NewNopLogger(), normalizer.NewDefaultNormalizer())
	require.NoError(t, err)
	return r
}

func TestShellPrintsTopResults(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("aceps\n")
	s := New(in, &out, newRanker(t, ranking.RejectInvalid), testWords, 2, logger.NewNopLogger())

	require.NoError(t, s.Run(context.Background()))

	assert.Equal(t, Prompt+"1. space @ 0.00\n2. pact @ 0.50\n"+Prompt+"\n", out.String())
}

func TestShellExitCommands(t *testing.T) {
	for _, cmd := range []string{"exit", "QUIT", ":q"} {
		t.Run(cmd, func(t *testing.T) {
			var out bytes.Buffer
			in := strings.NewReader(cmd + "\ntacp\n")
			s := New(in, &out, newRanker(t, ranking.RejectInvalid), testWords, 0, logger.NewNopLogger())

			require.NoError(t, s.Run(context.Background()))
			assert.Equal(t, Prompt, out.String())
		})
	}
}

func TestShellSkipsBlankLines(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("\n   \ntacp\nexit\n")
	s := New(in, &out, newRanker(t, ranking.RejectInvalid), []string{"pact"}, 10, logger.NewNopLogger())

	require.NoError(t, s.Run(context.Background()))
	assert.Equal(t, strings.Repeat(Prompt, 3)+"1. pact @ 0.00\n"+Prompt, out.String())
}

func TestShellReportsRankingErrors(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("cat\n")
	s := New(in, &out, newRanker(t, ranking.RejectInvalid), []string{"123", "cat"}, 10, logger.NewNopLogger())

	require.NoError(t, s.Run(context.Background()))
	assert.Contains(t, out.String(), "error: invalid candidate \"123\"")
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}

func TestShellStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	s := New(blockingReader{}, io.Discard, newRanker(t, ranking.RejectInvalid), testWords, 10, logger.NewNopLogger())

	go func() { done <- s.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("shell did not stop after cancel")
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("tty gone")
}

func TestShellReturnsReadErrors(t *testing.T) {
	s := New(failingReader{}, io.Discard, newRanker(t, ranking.RejectInvalid), testWords, 10, logger.NewNopLogger())

	err := s.Run(context.Background())
	assert.ErrorContains(t, err, "tty gone")
}

func TestPrint(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, Print(&out, []domain.ScoredCandidate{
		{Word: "Pikachu", Score: 0},
		{Word: "Raichu", Score: 1.0 / 3.0},
	}))
	assert.Equal(t, "1. Pikachu @ 0.00\n2. Raichu @ 0.33\n", out.String())
}
