package ranking

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// ScoreAll computes the breakdown for every input using up to workers
// goroutines. Results are returned in input order. A workers value below 1
// uses GOMAXPROCS.
func ScoreAll(ctx context.Context, inputs []Input, workers int) ([]Components, error) {
	if workers < 1 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]Components, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i := range inputs {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = Breakdown(inputs[i])
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
