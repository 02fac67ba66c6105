package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/trezcool/mentorhub/apps/console"
)

// watchers maps a page name to a load-and-print run.
func (cli *commandLine) watchers(class string) map[string]func(context.Context) error {
	printed := func(load func(context.Context) error, show func()) func(context.Context) error {
		return func(ctx context.Context) error {
			if err := load(ctx); err != nil {
				return err
			}
			fmt.Fprintf(cli.out, "\n-- %s --", time.Now().Format("15:04:05"))
			show()
			return nil
		}
	}
	app := cli.app
	return map[string]func(context.Context) error{
		"pending": printed(app.Approvals.Load, func() { cli.show(app.Approvals.Students, app.Approvals.Mentors) }),
		"mentors": printed(app.Mentors.Load, func() { cli.show(app.Mentors.View) }),
		"roster": printed(func(ctx context.Context) error { return app.Classes.Load(ctx, class) },
			func() { cli.show(app.Classes.View) }),
		"students": printed(func(ctx context.Context) error { return app.Students.Load(ctx, class) },
			func() { cli.show(app.Students.View) }),
		"class-reports": printed(func(ctx context.Context) error { return app.Reports.Load(ctx, class) },
			func() { cli.show(app.Reports.View) }),
		"goals":       printed(app.Goals.Load, func() { cli.show(app.Goals.Summary, app.Goals.View) }),
		"my-feedback": printed(app.MyFeedback.Load, func() { cli.show(app.MyFeedback.View) }),
		"my-reports": printed(app.MyReports.Load,
			func() { cli.show(app.MyReports.Current, app.MyReports.Summary, app.MyReports.History) }),
	}
}

// watch loads a page once, then reloads it on the configured schedule until interrupted.
func (cli *commandLine) watch(ctx context.Context, args []string) error {
	fs := cli.flagSet("watch")
	page := fs.String("page", "", "pending, mentors, roster, students, class-reports, goals, my-feedback or my-reports.")
	class := fs.String("class", "", "The class label, for roster, students and class-reports.")
	if err := parse(fs, args); err != nil {
		return err
	}
	run, ok := cli.watchers(*class)[*page]
	if !ok {
		fs.Usage()
		return errHelp
	}
	if err := run(ctx); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	fmt.Fprintf(cli.out, "\nwatching %s (%s), Ctrl+C to stop\n", *page, cli.conf.Watch.Schedule)
	return console.Watch(ctx, cli.conf.Watch.Schedule, cli.logger, run)
}
