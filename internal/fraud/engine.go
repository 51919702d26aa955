// Package fraud detects suspicious patterns in a batch of ledger
// transactions.
//
// An Engine builds the per-day, per-day-category, per-category and merchant
// tables once, then runs thirteen detectors in a fixed order. Output is
// deterministic for a given batch whether or not detectors run in parallel.
package fraud

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"ledgerguard/internal/domain"
)

// ErrNoData is returned for an empty batch.
var ErrNoData = errors.New("no data")

// Options tunes an Engine.
type Options struct {
	// Parallel runs detectors concurrently. Report order is unchanged.
	Parallel bool
	// MaxTransactions caps the batch size; 0 means no cap.
	MaxTransactions int
}

// Engine runs the detector pipeline. It holds no state between runs and is
// safe for concurrent use.
type Engine struct {
	opts Options
}

// NewEngine creates an engine with the given options.
func NewEngine(opts Options) *Engine {
	return &Engine{opts: opts}
}

// Analyze returns every warning for txs in detector order. On failure no
// warnings are returned.
func (e *Engine) Analyze(ctx context.Context, txs []domain.Transaction) ([]domain.Warning, error) {
	if len(txs) == 0 {
		return nil, ErrNoData
	}

	agg, err := BuildAggregates(txs, e.opts.MaxTransactions)
	if err != nil {
		return nil, fmt.Errorf("could not build aggregates: %w", err)
	}

	results := make([][]domain.Warning, len(pipeline))
	if e.opts.Parallel {
		g, gctx := errgroup.WithContext(ctx)
		for i, d := range pipeline {
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				results[i] = d.run(txs, agg)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, fmt.Errorf("detector pipeline: %w", err)
		}
	} else {
		for i, d := range pipeline {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("detector %s: %w", d.kind, err)
			}
			results[i] = d.run(txs, agg)
		}
	}

	var warnings []domain.Warning
	for _, r := range results {
		warnings = append(warnings, r...)
	}
	return warnings, nil
}
