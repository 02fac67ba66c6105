package main

import (
	"context"

	"github.com/trezcool/mentorhub/core/workflow"
)

func (cli *commandLine) pending(ctx context.Context, _ []string) error {
	page := cli.app.Approvals
	if err := page.Load(ctx); err != nil {
		return err
	}
	cli.show(page.Students, page.Mentors)
	return nil
}

func (cli *commandLine) approve(ctx context.Context, args []string) error {
	return cli.decide(ctx, "approve", args, cli.app.Approvals.Approve)
}

func (cli *commandLine) deny(ctx context.Context, args []string) error {
	return cli.decide(ctx, "deny", args, cli.app.Approvals.Deny)
}

func (cli *commandLine) decide(ctx context.Context, name string, args []string, do func(context.Context, int64) (workflow.Result, error)) error {
	fs := cli.flagSet(name)
	id := fs.Int64("id", 0, "The user id of the registration.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}
	if err := outcome(do(ctx, *id)); err != nil {
		return err
	}
	cli.show(cli.app.Approvals.Students, cli.app.Approvals.Mentors)
	return nil
}

func (cli *commandLine) mentors(ctx context.Context, args []string) error {
	fs := cli.flagSet("mentors")
	batch := fs.String("batch", "", "Only show mentors of this batch (A, B or C).")
	if err := parse(fs, args); err != nil {
		return err
	}
	page := cli.app.Mentors
	if err := page.Load(ctx); err != nil {
		return err
	}
	if err := page.Filter(*batch); err != nil {
		return err
	}
	cli.show(page.View)
	return nil
}

func (cli *commandLine) assign(ctx context.Context, args []string) error {
	return cli.batches(ctx, "assign", args, cli.app.Mentors.Assign)
}

func (cli *commandLine) unassign(ctx context.Context, args []string) error {
	return cli.batches(ctx, "unassign", args, cli.app.Mentors.Unassign)
}

func (cli *commandLine) batches(ctx context.Context, name string, args []string, do func(context.Context, int64, []string) (workflow.Result, error)) error {
	fs := cli.flagSet(name)
	mentorID := fs.Int64("mentor", 0, "The mentor's user id.")
	batches := fs.String("batches", "", "Comma-separated batches, e.g. A,B.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *mentorID <= 0 || *batches == "" {
		fs.Usage()
		return errHelp
	}
	if err := outcome(do(ctx, *mentorID, splitList(*batches))); err != nil {
		return err
	}
	cli.show(cli.app.Mentors.View)
	return nil
}

func (cli *commandLine) roster(ctx context.Context, args []string) error {
	fs := cli.flagSet("roster")
	class := fs.String("class", "", "The class label (A, B or C).")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *class == "" {
		fs.Usage()
		return errHelp
	}
	page := cli.app.Classes
	if err := page.Load(ctx, *class); err != nil {
		return err
	}
	cli.show(page.View)
	return nil
}

func (cli *commandLine) promote(ctx context.Context, _ []string) error {
	return outcome(cli.app.Classes.Promote(ctx))
}
