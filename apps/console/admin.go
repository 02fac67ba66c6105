package console

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/trezcool/mentorhub/apps/views"
	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/workflow"
	apisvc "github.com/trezcool/mentorhub/services/api"
)

// Approvals lists pending student and mentor registrations.
type Approvals struct {
	*page
	Students *views.Container
	Mentors  *views.Container
}

func NewApprovals(env *Env) *Approvals {
	return &Approvals{
		page:     newPage(env),
		Students: views.NewContainer("Pending Students"),
		Mentors:  views.NewContainer("Pending Mentors"),
	}
}

func (a *Approvals) Load(ctx context.Context) error {
	sess, err := a.require(ctx, session.RoleAdmin)
	if err != nil {
		return err
	}
	if err := a.refresh(ctx, sess); err != nil {
		a.fail("Failed to load pending registrations.", err)
		return err
	}
	return nil
}

func (a *Approvals) refresh(ctx context.Context, sess session.Session) error {
	return a.load(ctx, func(ctx context.Context) (func(), error) {
		students, err := a.API.PendingRegistrations(ctx, sess, apisvc.PendingStudents)
		if err != nil {
			return nil, err
		}
		mentors, err := a.API.PendingRegistrations(ctx, sess, apisvc.PendingMentors)
		if err != nil {
			return nil, err
		}
		return func() {
			a.Students.Render(views.PendingStudents(students))
			a.Mentors.Render(views.PendingMentors(mentors))
		}, nil
	})
}

// Approve accepts a registration, then reloads both lists.
func (a *Approvals) Approve(ctx context.Context, userID int64) (workflow.Result, error) {
	return a.decide(ctx, userID, a.API.Approve, workflow.Messages{
		Success: "User approved successfully!",
		Failure: "Failed to approve user.",
	})
}

// Deny rejects a registration, then reloads both lists.
func (a *Approvals) Deny(ctx context.Context, userID int64) (workflow.Result, error) {
	return a.decide(ctx, userID, a.API.Reject, workflow.Messages{
		Success: "User rejected successfully!",
		Failure: "Failed to reject user.",
	})
}

func (a *Approvals) decide(
	ctx context.Context,
	userID int64,
	call func(context.Context, session.Session, int64) error,
	msgs workflow.Messages,
) (workflow.Result, error) {
	sess, err := a.require(ctx, session.RoleAdmin)
	if err != nil {
		return workflow.Result{}, err
	}
	res := a.runner.Reconcile(ctx, strconv.FormatInt(userID, 10),
		func(ctx context.Context) error { return call(ctx, sess, userID) },
		func(ctx context.Context) error { return a.refresh(ctx, sess) },
	)
	a.announce(res, msgs)
	return res, nil
}

// Mentors lists approved mentors with their batches.
type Mentors struct {
	*page
	View *views.Container

	mu     sync.Mutex
	all    []roster.Summary
	filter string
}

func NewMentors(env *Env) *Mentors {
	return &Mentors{page: newPage(env), View: views.NewContainer("Mentors")}
}

func (m *Mentors) Load(ctx context.Context) error {
	sess, err := m.require(ctx, session.RoleAdmin)
	if err != nil {
		return err
	}
	if err := m.refresh(ctx, sess); err != nil {
		m.fail("Failed to load mentors.", err)
		return err
	}
	return nil
}

func (m *Mentors) refresh(ctx context.Context, sess session.Session) error {
	return m.load(ctx, func(ctx context.Context) (func(), error) {
		rows, err := m.API.Mentors(ctx, sess)
		if err != nil {
			return nil, err
		}
		return func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			m.all = roster.Group(rows)
			m.renderLocked()
		}, nil
	})
}

// Filter shows only the mentors of batch label; an empty label shows everyone. No fetch is made.
func (m *Mentors) Filter(label string) error {
	label = normalizeClass(label)
	if label != "" && !roster.IsClass(label) {
		return core.NewValidationError(nil, core.FieldError{Field: "class", Error: "class must be one of A, B or C"})
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.filter = label
	m.renderLocked()
	return nil
}

func (m *Mentors) renderLocked() {
	m.View.Render(views.Mentors(roster.FilterByClass(m.all, m.filter)))
}

// Mentor looks a mentor up in the last snapshot.
func (m *Mentors) Mentor(id int64) (roster.Summary, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.all {
		if s.UserID == id {
			return s, true
		}
	}
	return roster.Summary{}, false
}

// Assign adds the mentor to every listed batch they are not yet in.
// Batches that are unknown or already assigned fail individually; the others go through.
func (m *Mentors) Assign(ctx context.Context, mentorID int64, classes []string) (workflow.Result, error) {
	sess, mentor, err := m.prepare(ctx, mentorID, classes)
	if err != nil {
		return workflow.Result{}, err
	}
	items := m.batchItems(classes, mentor.AssignableClasses(), func(ctx context.Context, classID int) error {
		return m.API.AssignMentor(ctx, sess, classID, mentorID)
	})
	res := m.runner.Batch(ctx, items, func(ctx context.Context) error { return m.refresh(ctx, sess) })
	name := escapeVerb(mentor.Name)
	m.announce(res, workflow.Messages{
		Success: fmt.Sprintf("Successfully assigned %d batch(es) to %s!", res.Succeeded, mentor.Name),
		Partial: "Successfully assigned %d batch(es) to " + name + "! Failed to assign: %s",
		Failure: "Failed to assign any batches. Please try again.",
	})
	return res, nil
}

// Unassign removes the mentor from every listed batch they are in.
func (m *Mentors) Unassign(ctx context.Context, mentorID int64, classes []string) (workflow.Result, error) {
	sess, mentor, err := m.prepare(ctx, mentorID, classes)
	if err != nil {
		return workflow.Result{}, err
	}
	items := m.batchItems(classes, mentor.Classes, func(ctx context.Context, classID int) error {
		return m.API.RemoveMentor(ctx, sess, classID, mentorID)
	})
	res := m.runner.Batch(ctx, items, func(ctx context.Context) error { return m.refresh(ctx, sess) })
	name := escapeVerb(mentor.Name)
	m.announce(res, workflow.Messages{
		Success: fmt.Sprintf("Successfully unassigned %d batch(es) from %s!", res.Succeeded, mentor.Name),
		Partial: "Successfully unassigned %d batch(es) from " + name + "! Failed to unassign: %s",
		Failure: "Failed to unassign any batches. Please try again.",
	})
	return res, nil
}

func (m *Mentors) prepare(ctx context.Context, mentorID int64, classes []string) (session.Session, roster.Summary, error) {
	sess, err := m.require(ctx, session.RoleAdmin)
	if err != nil {
		return session.Session{}, roster.Summary{}, err
	}
	if err := m.Validate.Struct(roster.ClassSelection{Classes: classes}); err != nil {
		return session.Session{}, roster.Summary{}, err
	}
	mentor, ok := m.Mentor(mentorID)
	if !ok {
		if err := m.refresh(ctx, sess); err != nil && !IsQuiet(err) {
			return session.Session{}, roster.Summary{}, err
		}
		if mentor, ok = m.Mentor(mentorID); !ok {
			return session.Session{}, roster.Summary{}, core.NewValidationError(nil, core.FieldError{
				Field: "mentorId", Error: fmt.Sprintf("no mentor with id %d", mentorID),
			})
		}
	}
	return sess, mentor, nil
}

// batchItems maps class labels to writes; labels outside offered get no write (unknown key).
func (m *Mentors) batchItems(classes, offered []string, do func(ctx context.Context, classID int) error) []workflow.Item {
	items := make([]workflow.Item, 0, len(classes))
	for _, label := range classes {
		label = normalizeClass(label)
		item := workflow.Item{Name: label}
		if classID, ok := roster.ClassID(label); ok && contains(offered, label) {
			item.Do = func(ctx context.Context) error { return do(ctx, classID) }
		}
		items = append(items, item)
	}
	return items
}

// Classes shows the roster of one class with each student's goal counts.
type Classes struct {
	*page
	View *views.Container

	mu      sync.Mutex
	current string
}

func NewClasses(env *Env) *Classes {
	return &Classes{page: newPage(env), View: views.NewContainer("Class Roster")}
}

func (c *Classes) Load(ctx context.Context, label string) error {
	sess, err := c.require(ctx, session.RoleAdmin)
	if err != nil {
		return err
	}
	label = normalizeClass(label)
	if err := c.Validate.Struct(classField{Class: label}); err != nil {
		return err
	}
	if err := c.refresh(ctx, sess, label); err != nil {
		c.fail("Failed to load class students.", err)
		return err
	}
	return nil
}

func (c *Classes) refresh(ctx context.Context, sess session.Session, label string) error {
	classID, _ := roster.ClassID(label)
	return c.load(ctx, func(ctx context.Context) (func(), error) {
		members, err := c.API.ClassStudents(ctx, sess, classID)
		if err != nil {
			return nil, err
		}
		rows, err := workflow.FanOut(ctx, c.MaxConcurrency, members, func(ctx context.Context, mbr roster.Member) (views.RosterRow, error) {
			items, err := c.API.Dashboard(ctx, sess, mbr.Key())
			if err != nil {
				if ctx.Err() != nil {
					return views.RosterRow{}, ctx.Err()
				}
				c.Logger.Warn("loading goals of student "+strconv.FormatInt(mbr.Key(), 10), err)
				return views.RosterRow{Member: mbr}, nil
			}
			sum := goal.Summarize(items)
			return views.RosterRow{Member: mbr, Goals: sum.Total, Completed: sum.Completed, GoalsLoaded: true}, nil
		})
		if err != nil {
			return nil, err
		}
		return func() {
			c.mu.Lock()
			c.current = label
			c.mu.Unlock()
			c.View.Render(views.ClassRoster(rows))
		}, nil
	})
}

// Promote moves every class up a level once the admin confirms, then reloads the shown class.
func (c *Classes) Promote(ctx context.Context) (workflow.Result, error) {
	sess, err := c.require(ctx, session.RoleAdmin)
	if err != nil {
		return workflow.Result{}, err
	}
	if !c.Notifier.Confirm("Promote all classes? Every student moves up one class.") {
		return workflow.Result{}, ErrCancelled
	}
	c.mu.Lock()
	current := c.current
	c.mu.Unlock()

	var refresh workflow.Refresh
	if current != "" {
		refresh = func(ctx context.Context) error { return c.refresh(ctx, sess, current) }
	}
	res := c.runner.Reconcile(ctx, "promote",
		func(ctx context.Context) error { return c.API.PromoteClasses(ctx, sess) },
		refresh,
	)
	c.announce(res, workflow.Messages{
		Success: "Classes promoted successfully!",
		Failure: "Failed to promote classes.",
	})
	return res, nil
}

func normalizeClass(label string) string {
	return strings.ToUpper(core.CleanString(label))
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// escapeVerb keeps user text literal inside a format string.
func escapeVerb(s string) string {
	return strings.ReplaceAll(s, "%", "%%")
}
