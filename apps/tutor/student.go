package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/trezcool/mentorhub/core/goal"
)

func (cli *commandLine) goals(ctx context.Context, _ []string) error {
	page := cli.app.Goals
	if err := page.Load(ctx); err != nil {
		return err
	}
	cli.show(page.Summary, page.View)
	return nil
}

func (cli *commandLine) addGoal(ctx context.Context, args []string) error {
	fs := cli.flagSet("add-goal")
	title := fs.String("title", "", "The goal title.")
	desc := fs.String("desc", "", "The goal description.")
	due := fs.String("due", "", "The due date (YYYY-MM-DD).")
	status := fs.String("status", "", "PENDING, IN_PROGRESS or COMPLETED; derived from -progress when omitted.")
	progress := fs.Int("progress", 0, "Progress percentage (0-100).")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *title == "" {
		fs.Usage()
		return errHelp
	}

	sg := goal.SaveGoal{
		Title:              *title,
		Description:        *desc,
		DueDate:            *due,
		Status:             goal.Status(strings.ToUpper(*status)),
		ProgressPercentage: *progress,
	}
	if err := outcome(cli.app.Goals.Add(ctx, sg)); err != nil {
		return err
	}
	cli.show(cli.app.Goals.Summary, cli.app.Goals.View)
	return nil
}

// editGoal starts from the stored goal and applies the given flags only.
func (cli *commandLine) editGoal(ctx context.Context, args []string) error {
	fs := cli.flagSet("edit-goal")
	id := fs.Int64("id", 0, "The goal id.")
	title := fs.String("title", "", "The goal title.")
	desc := fs.String("desc", "", "The goal description.")
	due := fs.String("due", "", "The due date (YYYY-MM-DD).")
	status := fs.String("status", "", "PENDING, IN_PROGRESS or COMPLETED.")
	progress := fs.Int("progress", 0, "Progress percentage (0-100).")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}

	page := cli.app.Goals
	if err := page.Load(ctx); err != nil {
		return err
	}
	current, ok := page.Item(*id)
	if !ok {
		return fmt.Errorf("goal %d not found", *id)
	}
	sg := goal.SaveGoal{
		Title:              current.Title,
		Description:        current.Description,
		DueDate:            current.DueDate,
		Status:             current.Status,
		ProgressPercentage: current.ProgressPercentage,
	}
	if isSet(fs, "title") {
		sg.Title = *title
	}
	if isSet(fs, "desc") {
		sg.Description = *desc
	}
	if isSet(fs, "due") {
		sg.DueDate = *due
	}
	switch {
	case isSet(fs, "status"):
		sg.Status = goal.Status(strings.ToUpper(*status))
		if isSet(fs, "progress") {
			sg.ProgressPercentage = *progress
		}
	case isSet(fs, "progress"):
		sg.Status = "" // progress decides
		sg.ProgressPercentage = *progress
	}

	if err := outcome(page.Edit(ctx, *id, sg)); err != nil {
		return err
	}
	cli.show(page.Summary, page.View)
	return nil
}

func (cli *commandLine) deleteGoal(ctx context.Context, args []string) error {
	fs := cli.flagSet("delete-goal")
	id := fs.Int64("id", 0, "The goal id.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 {
		fs.Usage()
		return errHelp
	}
	if err := outcome(cli.app.Goals.Delete(ctx, *id)); err != nil {
		return err
	}
	cli.show(cli.app.Goals.Summary, cli.app.Goals.View)
	return nil
}

func (cli *commandLine) updateTask(ctx context.Context, args []string) error {
	fs := cli.flagSet("update-task")
	id := fs.Int64("id", 0, "The task id.")
	status := fs.String("status", "", "PENDING, IN_PROGRESS or COMPLETED.")
	progress := fs.Int("progress", 0, "Progress percentage (0-100).")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *id <= 0 || (!isSet(fs, "status") && !isSet(fs, "progress")) {
		fs.Usage()
		return errHelp
	}

	page := cli.app.Goals
	ut := goal.UpdateTask{Status: goal.Status(strings.ToUpper(*status)), ProgressPercentage: *progress}
	if !isSet(fs, "progress") {
		if err := page.Load(ctx); err != nil {
			return err
		}
		if task, ok := page.Item(*id); ok {
			ut.ProgressPercentage = task.ProgressPercentage
		}
	}
	if err := outcome(page.UpdateTask(ctx, *id, ut)); err != nil {
		return err
	}
	cli.show(page.Summary, page.View)
	return nil
}

func (cli *commandLine) myFeedback(ctx context.Context, _ []string) error {
	page := cli.app.MyFeedback
	if err := page.Load(ctx); err != nil {
		return err
	}
	cli.show(page.View)
	return nil
}

func (cli *commandLine) myReports(ctx context.Context, _ []string) error {
	page := cli.app.MyReports
	if err := page.Load(ctx); err != nil {
		return err
	}
	cli.show(page.Current, page.Summary, page.History)
	return nil
}
