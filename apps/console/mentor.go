package console

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/trezcool/mentorhub/apps/views"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/workflow"
)

// Students lists the mentor's students by class and searches them.
type Students struct {
	*page
	View *views.Container

	mu        sync.Mutex
	className string
	shown     []roster.Member
	cache     []roster.Member // every student, fetched on the first search
}

func NewStudents(env *Env) *Students {
	return &Students{page: newPage(env), View: views.NewContainer("My Students")}
}

// Load shows the students of className, or of every class when it is empty.
func (s *Students) Load(ctx context.Context, className string) error {
	sess, err := s.require(ctx, session.RoleMentor)
	if err != nil {
		return err
	}
	className = normalizeClass(className)
	if className != "" {
		if err := s.Validate.Struct(classField{Class: className}); err != nil {
			return err
		}
	}
	if err := s.refresh(ctx, sess, className); err != nil {
		s.fail(views.StudentsLoadFailedText, err)
		return err
	}
	return nil
}

func (s *Students) refresh(ctx context.Context, sess session.Session, className string) error {
	return s.load(ctx, func(ctx context.Context) (func(), error) {
		rows, err := s.API.MentorStudents(ctx, sess, sess.User.UserID, className)
		if err != nil {
			return nil, err
		}
		return func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.className = className
			s.shown = rows
			s.View.Render(views.Students(rows))
		}, nil
	})
}

// Search filters every student by name or email. Only the first search fetches; later ones filter locally.
func (s *Students) Search(ctx context.Context, query string) error {
	sess, err := s.require(ctx, session.RoleMentor)
	if err != nil {
		return err
	}
	s.mu.Lock()
	cache := s.cache
	s.mu.Unlock()
	if cache != nil {
		s.render(func() { s.View.Render(views.Students(roster.Search(cache, query))) })
		return nil
	}

	err = s.load(ctx, func(ctx context.Context) (func(), error) {
		rows, err := s.API.MentorStudents(ctx, sess, sess.User.UserID, "")
		if err != nil {
			return nil, err
		}
		if rows == nil {
			rows = []roster.Member{}
		}
		return func() {
			s.mu.Lock()
			s.cache = rows
			s.mu.Unlock()
			s.View.Render(views.Students(roster.Search(rows, query)))
		}, nil
	})
	if err != nil {
		s.fail(views.StudentsLoadFailedText, err)
	}
	return err
}

// ClearSearch drops the search snapshot and shows the last class list again.
func (s *Students) ClearSearch() {
	s.render(func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.cache = nil
		s.View.Render(views.Students(s.shown))
	})
}

// AssignTask gives one student a task, then reloads the class on screen.
func (s *Students) AssignTask(ctx context.Context, studentID int64, task goal.NewTask) (workflow.Result, error) {
	return s.assign(ctx, strconv.FormatInt(studentID, 10), task, func(ctx context.Context, sess session.Session, task goal.NewTask) (string, error) {
		return s.API.AssignTaskToStudent(ctx, sess, sess.User.UserID, studentID, task)
	})
}

// AssignClassTask gives every student of className a task, then reloads the class on screen.
func (s *Students) AssignClassTask(ctx context.Context, className string, task goal.NewTask) (workflow.Result, error) {
	className = normalizeClass(className)
	if err := s.Validate.Struct(classField{Class: className}); err != nil {
		return workflow.Result{}, err
	}
	return s.assign(ctx, "class "+className, task, func(ctx context.Context, sess session.Session, task goal.NewTask) (string, error) {
		return s.API.AssignTaskToClass(ctx, sess, sess.User.UserID, className, task)
	})
}

func (s *Students) assign(
	ctx context.Context,
	name string,
	task goal.NewTask,
	call func(context.Context, session.Session, goal.NewTask) (string, error),
) (workflow.Result, error) {
	sess, err := s.require(ctx, session.RoleMentor)
	if err != nil {
		return workflow.Result{}, err
	}
	if err := s.Validate.Struct(task); err != nil {
		return workflow.Result{}, err
	}
	task.Normalize()

	s.mu.Lock()
	className := s.className
	s.mu.Unlock()

	var reply string
	res := s.runner.Reconcile(ctx, name,
		func(ctx context.Context) (err error) {
			reply, err = call(ctx, sess, task)
			return err
		},
		func(ctx context.Context) error { return s.refresh(ctx, sess, className) },
	)
	if reply == "" {
		reply = "Task assigned successfully!"
	}
	s.announce(res, workflow.Messages{Success: reply, Failure: "Failed to assign task: " + apiMessage(res.Err, "please try again.")})
	return res, nil
}

// Reports shows the current weekly report of every student of a class.
type Reports struct {
	*page
	View *views.Container

	mu    sync.Mutex
	rows  []report.StudentProgress
	query string
}

func NewReports(env *Env) *Reports {
	return &Reports{page: newPage(env), View: views.NewContainer("Class Reports")}
}

// Load fetches the class, then each student's current report with bounded concurrency.
// A student whose report cannot be fetched gets the "No Report" row.
func (r *Reports) Load(ctx context.Context, className string) error {
	sess, err := r.require(ctx, session.RoleMentor)
	if err != nil {
		return err
	}
	className = normalizeClass(className)
	if err := r.Validate.Struct(classField{Class: className}); err != nil {
		return err
	}
	err = r.load(ctx, func(ctx context.Context) (func(), error) {
		members, err := r.API.MentorStudents(ctx, sess, sess.User.UserID, className)
		if err != nil {
			return nil, err
		}
		rows, err := workflow.FanOut(ctx, r.MaxConcurrency, members, func(ctx context.Context, mbr roster.Member) (report.StudentProgress, error) {
			cur, err := r.API.CurrentReport(ctx, sess, mbr.Key())
			if err != nil {
				if ctx.Err() != nil {
					return report.StudentProgress{}, ctx.Err()
				}
				r.Logger.Warn("loading report of student "+strconv.FormatInt(mbr.Key(), 10), err)
				return report.NewStudentProgress(mbr.Key(), mbr.Name, mbr.Email, nil), nil
			}
			return report.NewStudentProgress(mbr.Key(), mbr.Name, mbr.Email, &cur), nil
		})
		if err != nil {
			return nil, err
		}
		return func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.rows = rows
			r.renderLocked()
		}, nil
	})
	if err != nil {
		r.fail(views.ReportsLoadFailedText, err)
	}
	return err
}

// Search narrows the last loaded class to students whose name or email matches query.
// It never fetches; an empty query shows the whole class again.
func (r *Reports) Search(query string) {
	r.render(func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		r.query = core.CleanString(query)
		r.renderLocked()
	})
}

func (r *Reports) renderLocked() {
	r.View.Render(views.ClassReportsMatching(report.Search(r.rows, r.query), r.query))
}

// StudentGoals shows one student's goals and tasks to their mentor, filtered by status.
type StudentGoals struct {
	*page
	View *views.Container

	mu     sync.Mutex
	items  []goal.Goal
	status goal.Status
}

func NewStudentGoals(env *Env) *StudentGoals {
	return &StudentGoals{page: newPage(env), View: views.NewContainer("Student Goals")}
}

// Open fetches the student's dashboard and shows every item.
func (g *StudentGoals) Open(ctx context.Context, studentID int64) error {
	sess, err := g.require(ctx, session.RoleMentor)
	if err != nil {
		return err
	}
	err = g.load(ctx, func(ctx context.Context) (func(), error) {
		items, err := g.API.Dashboard(ctx, sess, studentID)
		if err != nil {
			return nil, err
		}
		return func() {
			g.mu.Lock()
			defer g.mu.Unlock()
			g.items = items
			g.status = ""
			g.renderLocked()
		}, nil
	})
	if err != nil {
		g.fail(views.DashboardLoadFailedText, err)
	}
	return err
}

// Filter shows only the items in status ("" or "all" for every item). It never fetches.
func (g *StudentGoals) Filter(status string) error {
	st := goal.Status(strings.ToUpper(core.CleanString(status)))
	if st == "ALL" {
		st = ""
	}
	if st != "" && !st.Valid() {
		return core.NewValidationError(nil, core.FieldError{
			Field: "status", Error: "status must be one of PENDING, IN_PROGRESS or COMPLETED",
		})
	}
	g.render(func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.status = st
		g.renderLocked()
	})
	return nil
}

func (g *StudentGoals) renderLocked() {
	g.View.Render(views.StudentGoals(goal.FilterByStatus(g.items, g.status), g.status))
}

// FeedbackPanel shows the mentor's feedback history for one student and submits new feedback.
type FeedbackPanel struct {
	*page
	History *views.Container
}

func NewFeedbackPanel(env *Env) *FeedbackPanel {
	return &FeedbackPanel{page: newPage(env), History: views.NewContainer("Feedback History")}
}

// Open loads the history of studentID. A failed fetch renders the failed-to-load placeholder.
func (f *FeedbackPanel) Open(ctx context.Context, studentID int64) error {
	sess, err := f.require(ctx, session.RoleMentor)
	if err != nil {
		return err
	}
	err = f.refresh(ctx, sess, studentID)
	if err != nil && !IsQuiet(err) {
		f.Logger.Error("loading feedback history", err)
	}
	return err
}

func (f *FeedbackPanel) refresh(ctx context.Context, sess session.Session, studentID int64) error {
	return f.load(ctx, func(ctx context.Context) (func(), error) {
		items, err := f.API.FeedbackHistory(ctx, sess, sess.User.UserID, studentID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, err
			}
			placeholder := views.FeedbackFailure(err)
			return func() { f.History.Fail(placeholder) }, err
		}
		return func() { f.History.Render(views.FeedbackHistory(items)) }, nil
	})
}

// Submit sends feedback for studentID, then reloads the history.
func (f *FeedbackPanel) Submit(ctx context.Context, studentID int64, nf feedback.NewFeedback) (workflow.Result, error) {
	sess, err := f.require(ctx, session.RoleMentor)
	if err != nil {
		return workflow.Result{}, err
	}
	nf.Normalize()
	if err := f.Validate.Struct(nf); err != nil {
		return workflow.Result{}, err
	}
	res := f.runner.Reconcile(ctx, strconv.FormatInt(studentID, 10),
		func(ctx context.Context) error { return f.API.SubmitFeedback(ctx, sess, sess.User.UserID, studentID, nf) },
		func(ctx context.Context) error { return f.refresh(ctx, sess, studentID) },
	)
	f.announce(res, workflow.Messages{
		Success: "Feedback submitted successfully!",
		Failure: "Failed to submit feedback: " + apiMessage(res.Err, "please try again."),
	})
	return res, nil
}
