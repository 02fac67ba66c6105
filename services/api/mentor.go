package apisvc

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
)

// MentorStudents lists the mentor's students across all classes; an empty className means all.
func (c *Client) MentorStudents(ctx context.Context, sess session.Session, mentorID int64, className string) ([]roster.Member, error) {
	path := fmt.Sprintf("/mentors/%d/students", mentorID)
	if className != "" {
		path += "/class/" + url.PathEscape(className)
	}
	var rows []roster.Member
	if err := c.Do(ctx, sess, http.MethodGet, path, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// AssignTaskToStudent returns the backend's plain-text confirmation.
func (c *Client) AssignTaskToStudent(ctx context.Context, sess session.Session, mentorID, studentID int64, task goal.NewTask) (string, error) {
	var msg string
	path := fmt.Sprintf("/tasks/mentors/%d/student/%d", mentorID, studentID)
	if err := c.Do(ctx, sess, http.MethodPost, path, task, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

// AssignTaskToClass returns the backend's plain-text confirmation.
func (c *Client) AssignTaskToClass(ctx context.Context, sess session.Session, mentorID int64, className string, task goal.NewTask) (string, error) {
	var msg string
	path := fmt.Sprintf("/tasks/mentors/%d/class/%s", mentorID, url.PathEscape(className))
	if err := c.Do(ctx, sess, http.MethodPost, path, task, &msg); err != nil {
		return "", err
	}
	return msg, nil
}

func (c *Client) FeedbackHistory(ctx context.Context, sess session.Session, mentorID, studentID int64) ([]feedback.Feedback, error) {
	var items []feedback.Feedback
	path := fmt.Sprintf("/mentors/%d/feedback/student/%d", mentorID, studentID)
	if err := c.Do(ctx, sess, http.MethodGet, path, nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) SubmitFeedback(ctx context.Context, sess session.Session, mentorID, studentID int64, fb feedback.NewFeedback) error {
	path := fmt.Sprintf("/mentors/%d/feedback/student/%d", mentorID, studentID)
	return c.Do(ctx, sess, http.MethodPost, path, fb, nil)
}
