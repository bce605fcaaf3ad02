package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/baditaflorin/go_anagram_similarity/internal/config"
	"github.com/baditaflorin/go_anagram_similarity/internal/shell"
	"github.com/baditaflorin/go_anagram_similarity/pkg/anagram"
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [scrambled words...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nWith no arguments an interactive prompt is started; enter 'exit' or press Ctrl-D to leave.\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --top=5 chupika\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --words=names.json --no-fetch --normalizer=folding\n", os.Args[0])
	}
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, cfg, flag.Args(), os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run ranks each query once when queries are given, otherwise it starts the
// interactive shell on stdin. It returns the process exit code.
func run(ctx context.Context, cfg config.Config, queries []string, stdin io.Reader, stdout, stderr io.Writer) int {
	logger, err := cfg.NewLogger(stderr)
	if err != nil {
		fmt.Fprintf(stderr, "Error creating logger: %v\n", err)
		return 1
	}
	defer logger.Close()

	provider, err := cfg.NewWordListProvider(logger)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	words, err := provider.Words(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error loading word list: %v\n", err)
		return 1
	}

	normalizerType, _ := cfg.NormalizerType()
	policy, _ := cfg.InvalidPolicy()
	ranker, err := anagram.New(
		anagram.WithPortsLogger(logger),
		anagram.WithNormalizerType(normalizerType),
		anagram.WithPolicy(policy),
		anagram.WithWorkers(cfg.Workers),
	)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	// One-shot mode
	if len(queries) > 0 {
		for _, q := range queries {
			results, err := ranker.Rank(ctx, q, words)
			if err != nil {
				fmt.Fprintf(stderr, "Error ranking %q: %v\n", q, err)
				return 1
			}
			if len(queries) > 1 {
				fmt.Fprintf(stdout, "%s:\n", q)
			}
			if err := shell.Print(stdout, anagram.TopK(results, cfg.TopK)); err != nil {
				return 1
			}
		}
		return 0
	}

	if err := shell.New(stdin, stdout, ranker, words, cfg.TopK, logger).Run(ctx); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
