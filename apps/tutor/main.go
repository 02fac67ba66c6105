package main

import (
	"fmt"
	"os"

	"github.com/trezcool/mentorhub/apps/console"
	"github.com/trezcool/mentorhub/apps/tutor/di"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/notify"
	"github.com/trezcool/mentorhub/core/session"
)

func main() {
	var code int
	c := di.New()
	err := c.Invoke(func(conf *core.Config, app *console.App, sessions *session.Service, center *notify.Center, logger core.Logger) {
		defer center.Close()

		cli := commandLine{
			conf:     conf,
			app:      app,
			sessions: sessions,
			logger:   logger,
			out:      os.Stdout,
		}
		if err := cli.run(os.Args); err != nil {
			if err != errHelp {
				fmt.Fprintf(os.Stderr, "\nerror: %s\n", describe(err))
			}
			code = 1
		}
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		code = 1
	}
	os.Exit(code)
}
