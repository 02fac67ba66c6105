package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"

	"github.com/trezcool/mentorhub/apps/console"
	"github.com/trezcool/mentorhub/apps/views"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/workflow"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	conf     *core.Config
	app      *console.App
	sessions *session.Service
	logger   core.Logger
	out      io.Writer
}

type command struct {
	usage string
	run   func(cli *commandLine, ctx context.Context, args []string) error
}

func commandTable() map[string]command {
	return map[string]command{
		// auth
		"login":    {"-email EMAIL - log in (the password is prompted)", (*commandLine).login},
		"register": {"-name NAME -email EMAIL|PHONE -role STUDENT|MENTOR [-class A|B|C] - sign up (the password is prompted)", (*commandLine).register},
		"logout":   {"- log out", (*commandLine).logout},
		"whoami":   {"- show the logged in user", (*commandLine).whoami},

		// admin
		"pending":  {"- list registrations awaiting approval", (*commandLine).pending},
		"approve":  {"-id ID - approve a registration", (*commandLine).approve},
		"deny":     {"-id ID - reject a registration", (*commandLine).deny},
		"mentors":  {"[-batch A|B|C] - list mentors and their batches", (*commandLine).mentors},
		"assign":   {"-mentor ID -batches A,B - assign batches to a mentor", (*commandLine).assign},
		"unassign": {"-mentor ID -batches A,B - remove batches from a mentor", (*commandLine).unassign},
		"roster":   {"-class A|B|C - list the students of a class with their goals", (*commandLine).roster},
		"promote":  {"- promote every class", (*commandLine).promote},

		// mentor
		"students":      {"[-class A|B|C] [-search TEXT] - list your students", (*commandLine).students},
		"assign-task":   {"-title TITLE [-desc TEXT] [-due YYYY-MM-DD] (-student ID | -class A|B|C) - assign a task", (*commandLine).assignTask},
		"student-goals": {"-student ID [-status all|PENDING|IN_PROGRESS|COMPLETED] - a student's goals and tasks", (*commandLine).studentGoals},
		"class-reports": {"-class A|B|C [-search TEXT] - current weekly report of each student", (*commandLine).classReports},
		"feedback":      {"-student ID [-choice positive|neutral|improve -text TEXT] - feedback history, or give feedback", (*commandLine).feedback},

		// student
		"goals":       {"- list your goals and tasks", (*commandLine).goals},
		"add-goal":    {"-title TITLE [-desc TEXT] [-due YYYY-MM-DD] [-status STATUS] [-progress 0-100] - add a goal", (*commandLine).addGoal},
		"edit-goal":   {"-id ID [-title TITLE] [-desc TEXT] [-due YYYY-MM-DD] [-status STATUS] [-progress 0-100] - edit a goal", (*commandLine).editGoal},
		"delete-goal": {"-id ID - delete a goal", (*commandLine).deleteGoal},
		"update-task": {"-id ID [-status STATUS] [-progress 0-100] - update a mentor task", (*commandLine).updateTask},
		"my-feedback": {"- list the feedback you received", (*commandLine).myFeedback},
		"my-reports":  {"- your weekly reports", (*commandLine).myReports},

		"watch": {"-page PAGE [-class A|B|C] - reload a page on the configured schedule", (*commandLine).watch},
	}
}

func (cli *commandLine) printUsage() {
	commands := commandTable()
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(cli.out, "Usage:")
	for _, name := range names {
		fmt.Fprintf(cli.out, "  %s %s\n", name, commands[name].usage)
	}
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	cmd, ok := commandTable()[args[1]]
	if !ok {
		cli.printUsage()
		return errHelp
	}
	return cmd.run(cli, context.Background(), args[2:])
}

func (cli *commandLine) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

// parse parses args and turns -h and parse failures into errHelp.
func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errHelp
	}
	return nil
}

// isSet reports whether the flag was given on the command line.
func isSet(fs *flag.FlagSet, name string) bool {
	var set bool
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func (cli *commandLine) show(containers ...*views.Container) {
	for _, c := range containers {
		fmt.Fprintln(cli.out)
		_, _ = c.WriteTo(cli.out)
	}
}

func (cli *commandLine) readPassword(prompt string) (string, error) {
	fmt.Fprint(cli.out, prompt)
	pwd, err := readPasswordFunc(int(os.Stdin.Fd()))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}

// outcome maps a workflow result to the exit status: only a total failure is an error.
func outcome(res workflow.Result, err error) error {
	if err != nil {
		return err
	}
	if res.Outcome == workflow.Failure {
		if res.Err != nil {
			return res.Err
		}
		return errors.New(res.Outcome.String())
	}
	return nil
}

// describe renders err for the terminal.
func describe(err error) string {
	var vErr *core.ValidationError
	if errors.As(err, &vErr) && len(vErr.Fields) > 0 {
		lines := make([]string, 0, len(vErr.Fields))
		for _, fld := range vErr.Fields {
			lines = append(lines, fmt.Sprintf("  %s: %s", fld.Field, fld.Error))
		}
		return "invalid input\n" + strings.Join(lines, "\n")
	}
	if redirect, ok := session.IsRedirect(err); ok {
		return fmt.Sprintf("%v; run `tutor login` first", redirect.Reason)
	}
	return err.Error()
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
