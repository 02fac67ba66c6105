package workflow

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mentorhub/core"
)

// ErrUnknownKey marks a batch item whose display key has no backend id.
var ErrUnknownKey = errors.New("unknown key")

type (
	// Mutation is one backend write.
	Mutation func(ctx context.Context) error

	// Refresh re-fetches the affected collection.
	Refresh func(ctx context.Context) error

	// Item is one named write of a batch.
	Item struct {
		Name string
		Do   Mutation
	}
)

// Items builds one Item per name, all sharing do.
func Items(names []string, do func(ctx context.Context, name string) error) []Item {
	items := make([]Item, 0, len(names))
	for _, name := range names {
		name := name
		items = append(items, Item{Name: name, Do: func(ctx context.Context) error { return do(ctx, name) }})
	}
	return items
}

// Runner executes mutate-then-reconcile workflows and logs their failures.
type Runner struct {
	logger core.Logger
}

func NewRunner(logger core.Logger) *Runner {
	if logger == nil {
		logger = core.NopLogger
	}
	return &Runner{logger: logger}
}

// Reconcile runs a single mutation, then refreshes whatever the outcome.
func (r *Runner) Reconcile(ctx context.Context, name string, mutate Mutation, refresh Refresh) Result {
	return r.Batch(ctx, []Item{{Name: name, Do: mutate}}, refresh)
}

// Batch issues the writes one at a time. A failing item is recorded and the batch goes on;
// a cancelled context fails the remaining items. The refresh always runs, once.
func (r *Runner) Batch(ctx context.Context, items []Item, refresh Refresh) Result {
	var (
		succeeded int
		failed    []string
		lastErr   error
	)
	for _, item := range items {
		err := ctx.Err()
		if err == nil {
			if item.Do == nil {
				err = ErrUnknownKey
			} else {
				err = item.Do(ctx)
			}
		}
		if err != nil {
			failed = append(failed, item.Name)
			lastErr = err
			r.logFailure(item.Name, err)
			continue
		}
		succeeded++
	}

	res := newResult(succeeded, failed, lastErr)
	if refresh != nil {
		// refresh even when ctx is done
		refreshCtx := ctx
		if ctx.Err() != nil {
			refreshCtx = context.Background()
		}
		if err := refresh(refreshCtx); err != nil {
			res.RefreshErr = err
			r.logger.Error("refreshing after mutation", err)
		}
	}
	return res
}

func (r *Runner) logFailure(name string, err error) {
	if errors.Cause(err) == ErrUnknownKey {
		r.logger.Warn("skipping "+name, err)
		return
	}
	r.logger.Error("mutation failed: "+name, err)
}
