package main

import (
	"context"
	"log/slog"
	"runtime"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"
)

// handler turns one message into an output record.
type handler func(name, text string) (record, error)

// result holds the outcome of one source.
type result struct {
	source source
	rec    record
	err    error
}

// processBatch runs h over sources with at most workers in flight.
// Results keep the input order. A failed source does not stop the others;
// cancellation of ctx fails the sources not yet started.
func processBatch(ctx context.Context, sources []source, workers int, h handler, logger *slog.Logger) []result {
	results := make([]result, len(sources))

	var g errgroup.Group
	g.SetLimit(max(workers, 1))
	for i, src := range sources {
		g.Go(func() error {
			results[i] = processOne(ctx, src, h, logger)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors; failures live in results

	return results
}

func processOne(ctx context.Context, src source, h handler, logger *slog.Logger) result {
	if err := ctx.Err(); err != nil {
		return result{source: src, err: err}
	}

	start := time.Now()
	text, err := src.load()
	if err != nil {
		return result{source: src, err: err}
	}
	if !utf8.ValidString(text) {
		logger.Warn("input is not valid UTF-8", "input", src.name)
	}

	rec, err := h(src.name, text)
	logger.Debug("processed", "input", src.name, "bytes", len(text), "duration", time.Since(start))
	return result{source: src, rec: rec, err: err}
}

// resolvePoolSize determines the worker count.
// Priority: explicit value > GOMAXPROCS-based calculation.
func resolvePoolSize(workers int) int {
	if workers > 0 {
		return workers
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers
	n := runtime.GOMAXPROCS(0) / 2

	// Minimum 1, maximum 8
	if n < 1 {
		return 1
	}
	if n > 8 {
		return 8
	}
	return n
}
