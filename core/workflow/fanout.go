package workflow

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// FanOut runs fn for every input with at most limit calls in flight and returns
// the outputs in input order. The first error cancels the rest.
// fn should absorb per-item failures it can recover from (e.g. with a fallback value).
func FanOut[T, R any](ctx context.Context, limit int, in []T, fn func(context.Context, T) (R, error)) ([]R, error) {
	if limit < 1 {
		limit = 1
	}
	out := make([]R, len(in))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, item := range in {
		i, item := i, item
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := fn(gctx, item)
			if err != nil {
				return err
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
