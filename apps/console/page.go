// Package console holds the role pages: each one loads its collections through the API client,
// renders them into view containers and runs the mutate-then-reconcile workflows.
package console

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/notify"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/workflow"
	apisvc "github.com/trezcool/mentorhub/services/api"
)

var (
	// ErrStale is returned by a load whose response was superseded by a newer one and dropped.
	ErrStale = errors.New("stale load discarded")

	// ErrCancelled is returned when the user declines a confirmation.
	ErrCancelled = errors.New("cancelled")
)

// Env is what every page needs.
type Env struct {
	API            *apisvc.Client
	Sessions       *session.Service
	Validate       *core.Validator
	Notifier       notify.Notifier
	Logger         core.Logger
	MaxConcurrency int
}

func NewEnv(
	conf *core.Config,
	api *apisvc.Client,
	sessions *session.Service,
	validate *core.Validator,
	notifier notify.Notifier,
	logger core.Logger,
) *Env {
	if logger == nil {
		logger = core.NopLogger
	}
	return &Env{
		API:            api,
		Sessions:       sessions,
		Validate:       validate,
		Notifier:       notifier,
		Logger:         logger,
		MaxConcurrency: conf.API.MaxConcurrency,
	}
}

type page struct {
	*Env
	runner *workflow.Runner
	gen    *workflow.Generation
}

func newPage(env *Env) *page {
	return &page{Env: env, runner: workflow.NewRunner(env.Logger), gen: new(workflow.Generation)}
}

func (p *page) require(ctx context.Context, roles ...session.Role) (session.Session, error) {
	return p.Sessions.Require(ctx, roles...)
}

// load runs fetch as the page's latest load. apply (when non-nil) runs only if no newer
// load started meanwhile, even when fetch failed, so a fetch can render its own failure.
func (p *page) load(ctx context.Context, fetch func(ctx context.Context) (apply func(), err error)) error {
	loadCtx, tok, release := p.gen.Next(ctx)
	defer release()

	apply, err := fetch(loadCtx)
	applied := p.gen.Apply(tok, func() {
		if apply != nil {
			apply()
		}
	})
	if !applied {
		return ErrStale
	}
	return err
}

// render applies a locally computed view as the page's latest load.
// Any load still in flight is cancelled and its response dropped.
func (p *page) render(fn func()) {
	_ = p.load(context.Background(), func(context.Context) (func(), error) { return fn, nil })
}

// fail logs err and posts msg as an error notification.
// Validation errors stay with the caller and stale loads are silent.
func (p *page) fail(msg string, err error) {
	if err == nil || IsQuiet(err) || core.IsValidationError(err) {
		return
	}
	if _, ok := session.IsRedirect(err); ok {
		return
	}
	p.Logger.Error(msg, err)
	p.Notifier.Notify(notify.KindError, msg)
}

// announce posts the single summary notification of a workflow run.
func (p *page) announce(res workflow.Result, msgs workflow.Messages) {
	kind := notify.KindSuccess
	switch res.Outcome {
	case workflow.Partial:
		kind = notify.KindInfo
	case workflow.Failure:
		kind = notify.KindError
	}
	p.Notifier.Notify(kind, res.Message(msgs))
}

// IsQuiet reports errors that never reach the user: superseded loads and cancellations.
func IsQuiet(err error) bool {
	cause := errors.Cause(err)
	return cause == ErrStale || cause == ErrCancelled || cause == context.Canceled
}

// apiMessage prefers the backend's own wording for a failed call.
func apiMessage(err error, fallback string) string {
	if apiErr, ok := core.AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	if core.IsNetworkError(err) {
		return "Unable to reach the server. Please try again later."
	}
	return fallback
}

// classField validates a single class label.
type classField struct {
	Class string `json:"class" validate:"required,classlabel"`
}
