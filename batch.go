package promptcast

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Batch runs fn over every input concurrently, at most limit at a time
// (limit <= 0 means no cap), and returns the results in input order. The
// first failure cancels the group context and is returned; calls already
// in flight finish on their own.
//
// Calls are fully independent: no deduplication of identical inputs and
// no shared state beyond the Caster itself.
func Batch[T any](ctx context.Context, limit int, inputs []string, fn func(context.Context, string) (T, error)) ([]T, error) {
	results := make([]T, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			v, err := fn(gctx, input)
			if err != nil {
				return err
			}
			results[i] = v
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
