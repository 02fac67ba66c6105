package apisvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/report"
	"github.com/trezcool/mentorhub/core/session"
)

// Dashboard returns the student's goals and mentor tasks together.
func (c *Client) Dashboard(ctx context.Context, sess session.Session, studentID int64) ([]goal.Goal, error) {
	var items []goal.Goal
	if err := c.Do(ctx, sess, http.MethodGet, fmt.Sprintf("/dashboard/student/%d", studentID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) StudentGoals(ctx context.Context, sess session.Session, studentID int64) ([]goal.Goal, error) {
	var items []goal.Goal
	if err := c.Do(ctx, sess, http.MethodGet, fmt.Sprintf("/goals/student/%d", studentID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CreateGoal(ctx context.Context, sess session.Session, studentID int64, sg goal.SaveGoal) (goal.Goal, error) {
	var g goal.Goal
	if err := c.Do(ctx, sess, http.MethodPost, fmt.Sprintf("/goals/student/%d", studentID), sg, &g); err != nil {
		return goal.Goal{}, err
	}
	return g, nil
}

func (c *Client) UpdateGoal(ctx context.Context, sess session.Session, goalID int64, sg goal.SaveGoal) (goal.Goal, error) {
	var g goal.Goal
	if err := c.Do(ctx, sess, http.MethodPatch, fmt.Sprintf("/goals/%d", goalID), sg, &g); err != nil {
		return goal.Goal{}, err
	}
	return g, nil
}

// DeleteGoal succeeds on any 2xx, whatever the body.
func (c *Client) DeleteGoal(ctx context.Context, sess session.Session, goalID int64) error {
	return c.Do(ctx, sess, http.MethodDelete, fmt.Sprintf("/goals/%d", goalID), nil, nil)
}

func (c *Client) UpdateTask(ctx context.Context, sess session.Session, studentID, taskID int64, ut goal.UpdateTask) error {
	return c.Do(ctx, sess, http.MethodPatch, fmt.Sprintf("/tasks/student/%d/task/%d", studentID, taskID), ut, nil)
}

func (c *Client) StudentFeedback(ctx context.Context, sess session.Session, studentID int64) ([]feedback.Feedback, error) {
	var items []feedback.Feedback
	if err := c.Do(ctx, sess, http.MethodGet, fmt.Sprintf("/students/%d/feedback", studentID), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) CurrentReport(ctx context.Context, sess session.Session, studentID int64) (report.Current, error) {
	var cur report.Current
	if err := c.Do(ctx, sess, http.MethodGet, fmt.Sprintf("/reports/student/%d/current", studentID), nil, &cur); err != nil {
		return report.Current{}, err
	}
	return cur, nil
}

func (c *Client) ReportHistory(ctx context.Context, sess session.Session, studentID int64) ([]report.WeeklyReport, error) {
	var weeks []report.WeeklyReport
	if err := c.Do(ctx, sess, http.MethodGet, fmt.Sprintf("/reports/student/%d/history", studentID), nil, &weeks); err != nil {
		return nil, err
	}
	return weeks, nil
}
