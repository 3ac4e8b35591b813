package backtest

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/quantforge/lobsim/statistics"
)

// SweepResult couples a finished engine with its report
type SweepResult struct {
	Engine *Engine
	Report *statistics.Report
}

// Sweep runs every settings entry as an independent engine in parallel and
// returns their results in input order. Each entry needs its own Source and
// Strategy instance, they hold per run state. The first failure cancels the
// remaining runs
func Sweep(ctx context.Context, settings []*Settings) ([]SweepResult, error) {
	results := make([]SweepResult, len(settings))
	g, ctx := errgroup.WithContext(ctx)
	for i := range settings {
		i := i
		g.Go(func() error {
			engine, err := New(settings[i])
			if err != nil {
				return err
			}
			if err := engine.Run(ctx); err != nil {
				return err
			}
			report, err := engine.Results()
			if err != nil {
				return err
			}
			results[i] = SweepResult{Engine: engine, Report: report}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
