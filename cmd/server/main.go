package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/baditaflorin/go_anagram_similarity/internal/adapters/httpapi"
	"github.com/baditaflorin/go_anagram_similarity/internal/config"
	"github.com/baditaflorin/go_anagram_similarity/pkg/anagram"
	"github.com/valyala/fasthttp"
)

func main() {
	cfg := config.Default()
	cfg.LogJSON = true
	cfg.RegisterFlags(flag.CommandLine)
	cfg.RegisterServerFlags(flag.CommandLine)
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		flag.Usage()
		os.Exit(2)
	}

	// Set up logger
	logger, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Close()

	logger.Info("Starting anagram HTTP server",
		"port", cfg.Port,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"max_request_size", cfg.MaxRequestSize,
		"concurrency", cfg.Concurrency,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider, err := cfg.NewWordListProvider(logger)
	if err != nil {
		logger.Error("Failed to configure word list", "error", err)
		os.Exit(1)
	}
	words, err := provider.Words(ctx)
	if err != nil {
		logger.Error("Failed to load word list", "error", err)
		os.Exit(1)
	}

	normalizerType, _ := cfg.NormalizerType()
	policy, _ := cfg.InvalidPolicy()
	opts := []anagram.RankerOption{
		anagram.WithPortsLogger(logger),
		anagram.WithNormalizerType(normalizerType),
		anagram.WithPolicy(policy),
		anagram.WithWorkers(cfg.Workers),
	}
	if cfg.WarmUp {
		opts = append(opts, anagram.WithWarmUp(true))
	}

	ranker, err := anagram.New(opts...)
	if err != nil {
		logger.Error("Failed to initialize ranker", "error", err)
		os.Exit(1)
	}

	logger.Info("Ranker initialized successfully",
		"words", len(words),
		"normalizer", normalizerType.String(),
		"invalid_policy", policy.String(),
		"warm_up", cfg.WarmUp,
		"cpus", runtime.NumCPU(),
	)

	handler := httpapi.NewHandler(ranker, ranker, words, cfg.TopK, logger)

	// Create HTTP server with fasthttp
	server := &fasthttp.Server{
		Handler:               handler.Handle,
		Name:                  "AnagramServer",
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		MaxRequestBodySize:    cfg.MaxRequestSize,
		Concurrency:           cfg.Concurrency,
		TCPKeepalive:          true,
		TCPKeepalivePeriod:    3 * time.Minute,
		MaxIdleWorkerDuration: 10 * time.Second,
	}

	// Set up graceful shutdown
	idleConnsClosed := make(chan struct{})
	go func() {
		<-ctx.Done()

		logger.Info("Shutting down server...")
		if err := server.Shutdown(); err != nil {
			logger.Error("Error during server shutdown", "error", err)
		}
		close(idleConnsClosed)
	}()

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Server listening", "address", addr)
	if err := server.ListenAndServe(addr); err != nil {
		logger.Error("Server error", "error", err)
		stop()
	}

	<-idleConnsClosed
	logger.Info("Server stopped")
}
