// Package di wires the tutor console with go.uber.org/dig.
package di

import (
	"log"
	"os"

	"github.com/pkg/errors"
	"go.uber.org/dig"

	"github.com/trezcool/mentorhub/apps/console"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/notify"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
	apisvc "github.com/trezcool/mentorhub/services/api"
	logsvc "github.com/trezcool/mentorhub/services/logger"
	notifysvc "github.com/trezcool/mentorhub/services/notify"
	filestore "github.com/trezcool/mentorhub/storage/session/file"
)

func newLogger(conf *core.Config) (core.Logger, error) {
	zl, err := logsvc.NewZapLogger(conf)
	if err != nil {
		return nil, errors.Wrap(err, "building console logger")
	}
	logger := logsvc.NewRollbarLogger(zl, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger, nil
}

// NewValidator returns the validator with every form tag registered.
func NewValidator() *core.Validator {
	v := core.NewValidator()
	user.InitValidators(v)
	goal.InitValidators(v)
	feedback.InitValidators(v)
	roster.InitValidators(v)
	return v
}

func newSessionStore(conf *core.Config) session.Store {
	return filestore.NewStore(conf)
}

func newNotificationCenter(conf *core.Config) *notify.Center {
	sink := notifysvc.NewConsoleSink(os.Stdout)
	prompter := notifysvc.NewTermPrompter(os.Stdin, os.Stdout, conf.Notify.AssumeYes)
	return notify.NewCenter(sink, prompter, conf.Notify.Lifetime)
}

func newNotifier(center *notify.Center) notify.Notifier { return center }

func newAuthGateway(client *apisvc.Client) user.Gateway { return client }

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(NewValidator))
	must(c.Provide(newSessionStore))
	must(c.Provide(session.NewService))
	must(c.Provide(apisvc.NewClient))
	must(c.Provide(newAuthGateway))
	must(c.Provide(user.NewService))
	must(c.Provide(newNotificationCenter))
	must(c.Provide(newNotifier))
	must(c.Provide(console.NewEnv))
	must(c.Provide(console.NewApp))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
