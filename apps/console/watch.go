package console

import (
	"context"

	"github.com/pkg/errors"
	"github.com/robfig/cron/v3"

	"github.com/trezcool/mentorhub/core"
)

// Watch re-runs load on schedule (a cron spec or "@every <duration>") until ctx is done.
// Runs never overlap; a failed run is logged and the next one still happens.
func Watch(ctx context.Context, schedule string, logger core.Logger, load func(context.Context) error) error {
	if logger == nil {
		logger = core.NopLogger
	}
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	_, err := c.AddFunc(schedule, func() {
		if err := load(ctx); err != nil && !IsQuiet(err) {
			logger.Warn("watch: reload failed", err)
		}
	})
	if err != nil {
		return errors.Wrapf(err, "parsing schedule %q", schedule)
	}

	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
