package console

import (
	"context"
	"strconv"
	"sync"

	"github.com/trezcool/mentorhub/apps/views"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/workflow"
)

// Goals is the student dashboard: personal goals and mentor tasks with a summary header.
type Goals struct {
	*page
	View    *views.Container
	Summary *views.Container

	mu    sync.Mutex
	items []goal.Goal
}

func NewGoals(env *Env) *Goals {
	return &Goals{
		page:    newPage(env),
		View:    views.NewContainer("Goals & Tasks"),
		Summary: views.NewContainer("Summary"),
	}
}

func (g *Goals) Load(ctx context.Context) error {
	sess, err := g.require(ctx, session.RoleStudent)
	if err != nil {
		return err
	}
	if err := g.refresh(ctx, sess); err != nil {
		g.fail(views.DashboardLoadFailedText, err)
		return err
	}
	return nil
}

func (g *Goals) refresh(ctx context.Context, sess session.Session) error {
	return g.load(ctx, func(ctx context.Context) (func(), error) {
		items, err := g.API.Dashboard(ctx, sess, sess.User.UserID)
		if err != nil {
			return nil, err
		}
		return func() {
			g.mu.Lock()
			g.items = items
			g.mu.Unlock()
			g.View.Render(views.Goals(items))
			g.Summary.Render(views.GoalSummary(goal.Summarize(items)))
		}, nil
	})
}

// Item looks a goal or task up in the last snapshot.
func (g *Goals) Item(id int64) (goal.Goal, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, item := range g.items {
		if item.ID == id {
			return item, true
		}
	}
	return goal.Goal{}, false
}

func (g *Goals) Add(ctx context.Context, sg goal.SaveGoal) (workflow.Result, error) {
	sess, err := g.prepare(ctx, &sg)
	if err != nil {
		return workflow.Result{}, err
	}
	res := g.runner.Reconcile(ctx, sg.Title,
		func(ctx context.Context) error {
			_, err := g.API.CreateGoal(ctx, sess, sess.User.UserID, sg)
			return err
		},
		func(ctx context.Context) error { return g.refresh(ctx, sess) },
	)
	g.announce(res, workflow.Messages{
		Success: "Goal added successfully!",
		Failure: "Failed to add goal: " + apiMessage(res.Err, "please try again."),
	})
	return res, nil
}

func (g *Goals) Edit(ctx context.Context, id int64, sg goal.SaveGoal) (workflow.Result, error) {
	sess, err := g.prepare(ctx, &sg)
	if err != nil {
		return workflow.Result{}, err
	}
	if item, ok := g.Item(id); ok && item.IsTask() {
		return workflow.Result{}, core.NewValidationError(nil, core.FieldError{
			Field: "id", Error: "mentor tasks can only have their status or progress updated",
		})
	}
	res := g.runner.Reconcile(ctx, strconv.FormatInt(id, 10),
		func(ctx context.Context) error {
			_, err := g.API.UpdateGoal(ctx, sess, id, sg)
			return err
		},
		func(ctx context.Context) error { return g.refresh(ctx, sess) },
	)
	g.announce(res, workflow.Messages{
		Success: "Goal updated successfully!",
		Failure: "Failed to update goal: " + apiMessage(res.Err, "please try again."),
	})
	return res, nil
}

// Delete removes a goal once the student confirms.
func (g *Goals) Delete(ctx context.Context, id int64) (workflow.Result, error) {
	sess, err := g.require(ctx, session.RoleStudent)
	if err != nil {
		return workflow.Result{}, err
	}
	if !g.Notifier.Confirm("Are you sure you want to delete this goal?") {
		return workflow.Result{}, ErrCancelled
	}
	res := g.runner.Reconcile(ctx, strconv.FormatInt(id, 10),
		func(ctx context.Context) error { return g.API.DeleteGoal(ctx, sess, id) },
		func(ctx context.Context) error { return g.refresh(ctx, sess) },
	)
	g.announce(res, workflow.Messages{
		Success: "Goal deleted successfully!",
		Failure: "Failed to delete goal: " + apiMessage(res.Err, "please try again."),
	})
	return res, nil
}

// UpdateTask moves a mentor task along; status and progress are kept in sync.
func (g *Goals) UpdateTask(ctx context.Context, taskID int64, ut goal.UpdateTask) (workflow.Result, error) {
	sess, err := g.require(ctx, session.RoleStudent)
	if err != nil {
		return workflow.Result{}, err
	}
	if err := g.Validate.Struct(ut); err != nil {
		return workflow.Result{}, err
	}
	ut.Normalize()
	res := g.runner.Reconcile(ctx, strconv.FormatInt(taskID, 10),
		func(ctx context.Context) error { return g.API.UpdateTask(ctx, sess, sess.User.UserID, taskID, ut) },
		func(ctx context.Context) error { return g.refresh(ctx, sess) },
	)
	g.announce(res, workflow.Messages{
		Success: "Task updated successfully!",
		Failure: "Failed to update task: " + apiMessage(res.Err, "please try again."),
	})
	return res, nil
}

func (g *Goals) prepare(ctx context.Context, sg *goal.SaveGoal) (session.Session, error) {
	sess, err := g.require(ctx, session.RoleStudent)
	if err != nil {
		return session.Session{}, err
	}
	if err := g.Validate.Struct(sg); err != nil {
		return session.Session{}, err
	}
	sg.Normalize()
	return sess, nil
}

// MyFeedback lists the feedback the student received.
type MyFeedback struct {
	*page
	View *views.Container
}

func NewMyFeedback(env *Env) *MyFeedback {
	return &MyFeedback{page: newPage(env), View: views.NewContainer("Mentor Feedback")}
}

func (f *MyFeedback) Load(ctx context.Context) error {
	sess, err := f.require(ctx, session.RoleStudent)
	if err != nil {
		return err
	}
	err = f.load(ctx, func(ctx context.Context) (func(), error) {
		items, err := f.API.StudentFeedback(ctx, sess, sess.User.UserID)
		if err != nil {
			return nil, err
		}
		return func() { f.View.Render(views.StudentFeedback(items)) }, nil
	})
	if err != nil {
		f.fail("Failed to load feedback.", err)
	}
	return err
}

// MyReports shows the current week and the weekly report history with its summary.
type MyReports struct {
	*page
	Current *views.Container
	History *views.Container
	Summary *views.Container
}

func NewMyReports(env *Env) *MyReports {
	return &MyReports{
		page:    newPage(env),
		Current: views.NewContainer("This Week"),
		History: views.NewContainer("Report History"),
		Summary: views.NewContainer("Summary"),
	}
}

func (r *MyReports) Load(ctx context.Context) error {
	sess, err := r.require(ctx, session.RoleStudent)
	if err != nil {
		return err
	}
	err = r.load(ctx, func(ctx context.Context) (func(), error) {
		weeks, err := r.API.ReportHistory(ctx, sess, sess.User.UserID)
		if err != nil {
			return nil, err
		}
		var current *report.Current
		cur, err := r.API.CurrentReport(ctx, sess, sess.User.UserID)
		switch {
		case err == nil:
			current = &cur
		case ctx.Err() != nil:
			return nil, ctx.Err()
		default:
			r.Logger.Warn("loading current report", err)
		}
		usr := sess.User
		progress := report.NewStudentProgress(usr.UserID, usr.Name, usr.Email, current)
		return func() {
			r.Current.Render(views.ClassReports([]report.StudentProgress{progress}))
			r.History.Render(views.ReportHistory(weeks))
			r.Summary.Render(views.ReportSummary(report.Summarize(weeks)))
		}, nil
	})
	if err != nil {
		r.fail("Failed to load reports.", err)
	}
	return err
}
