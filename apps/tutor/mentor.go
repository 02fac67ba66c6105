package main

import (
	"context"

	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/workflow"
)

func (cli *commandLine) students(ctx context.Context, args []string) error {
	fs := cli.flagSet("students")
	class := fs.String("class", "", "Only show this class (A, B or C).")
	search := fs.String("search", "", "Search every student by name or email.")
	if err := parse(fs, args); err != nil {
		return err
	}
	page := cli.app.Students
	if *search != "" {
		if err := page.Search(ctx, *search); err != nil {
			return err
		}
	} else if err := page.Load(ctx, *class); err != nil {
		return err
	}
	cli.show(page.View)
	return nil
}

func (cli *commandLine) assignTask(ctx context.Context, args []string) error {
	fs := cli.flagSet("assign-task")
	title := fs.String("title", "", "The task title.")
	desc := fs.String("desc", "", "The task description.")
	due := fs.String("due", "", "The due date (YYYY-MM-DD).")
	studentID := fs.Int64("student", 0, "Assign to this student.")
	class := fs.String("class", "", "Assign to every student of this class.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if (*studentID > 0) == (*class != "") {
		fs.Usage()
		return errHelp
	}

	task := goal.NewTask{Title: *title, Description: *desc, DueDate: *due}
	var (
		res workflow.Result
		err error
	)
	if *studentID > 0 {
		res, err = cli.app.Students.AssignTask(ctx, *studentID, task)
	} else {
		res, err = cli.app.Students.AssignClassTask(ctx, *class, task)
	}
	return outcome(res, err)
}

func (cli *commandLine) classReports(ctx context.Context, args []string) error {
	fs := cli.flagSet("class-reports")
	class := fs.String("class", "", "The class label (A, B or C).")
	search := fs.String("search", "", "Only show students whose name or email matches.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *class == "" {
		fs.Usage()
		return errHelp
	}
	page := cli.app.Reports
	if err := page.Load(ctx, *class); err != nil {
		return err
	}
	page.Search(*search)
	cli.show(page.View)
	return nil
}

func (cli *commandLine) studentGoals(ctx context.Context, args []string) error {
	fs := cli.flagSet("student-goals")
	studentID := fs.Int64("student", 0, "The student's user id.")
	status := fs.String("status", "all", "all, PENDING, IN_PROGRESS or COMPLETED.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *studentID <= 0 {
		fs.Usage()
		return errHelp
	}
	page := cli.app.StudentGoals
	if err := page.Open(ctx, *studentID); err != nil {
		return err
	}
	if err := page.Filter(*status); err != nil {
		return err
	}
	cli.show(page.View)
	return nil
}

func (cli *commandLine) feedback(ctx context.Context, args []string) error {
	fs := cli.flagSet("feedback")
	studentID := fs.Int64("student", 0, "The student's user id.")
	choice := fs.String("choice", "", "positive, neutral or improve.")
	text := fs.String("text", "", "The feedback text.")
	if err := parse(fs, args); err != nil {
		return err
	}
	if *studentID <= 0 {
		fs.Usage()
		return errHelp
	}

	page := cli.app.Feedback
	if *choice == "" && *text == "" {
		err := page.Open(ctx, *studentID)
		cli.show(page.History)
		return err
	}
	nf := feedback.NewFeedback{FeedbackChoice: feedback.Choice(*choice), FeedbackText: *text}
	if err := outcome(page.Submit(ctx, *studentID, nf)); err != nil {
		return err
	}
	cli.show(page.History)
	return nil
}
