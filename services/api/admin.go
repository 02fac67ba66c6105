package apisvc

import (
	"context"
	"fmt"
	"net/http"

	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
)

// Registration request kinds
const (
	PendingStudents = "students"
	PendingMentors  = "mentors"
)

// PendingRegistrations lists sign-ups of kind (PendingStudents or PendingMentors) awaiting approval.
func (c *Client) PendingRegistrations(ctx context.Context, sess session.Session, kind string) ([]roster.PendingRegistration, error) {
	var regs []roster.PendingRegistration
	if err := c.Do(ctx, sess, http.MethodGet, "/admin/requests/"+kind, nil, &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

func (c *Client) Approve(ctx context.Context, sess session.Session, userID int64) error {
	return c.Do(ctx, sess, http.MethodPost, fmt.Sprintf("/admin/approve/%d", userID), nil, nil)
}

func (c *Client) Reject(ctx context.Context, sess session.Session, userID int64) error {
	return c.Do(ctx, sess, http.MethodPost, fmt.Sprintf("/admin/reject/%d", userID), nil, nil)
}

// Mentors returns one row per mentor per assigned class.
func (c *Client) Mentors(ctx context.Context, sess session.Session) ([]roster.Member, error) {
	var rows []roster.Member
	if err := c.Do(ctx, sess, http.MethodGet, "/admin/mentors", nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) AssignMentor(ctx context.Context, sess session.Session, classID int, mentorID int64) error {
	return c.Do(ctx, sess, http.MethodPost, fmt.Sprintf("/admin/classes/%d/assign-mentor/%d", classID, mentorID), nil, nil)
}

func (c *Client) RemoveMentor(ctx context.Context, sess session.Session, classID int, mentorID int64) error {
	return c.Do(ctx, sess, http.MethodDelete, fmt.Sprintf("/admin/classes/%d/remove-mentor/%d", classID, mentorID), nil, nil)
}

func (c *Client) ClassStudents(ctx context.Context, sess session.Session, classID int) ([]roster.Member, error) {
	var rows []roster.Member
	if err := c.Do(ctx, sess, http.MethodGet, fmt.Sprintf("/admin/classes/%d/students", classID), nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// PromoteClasses moves every class up a level on the backend.
func (c *Client) PromoteClasses(ctx context.Context, sess session.Session) error {
	return c.Do(ctx, sess, http.MethodPost, "/admin/classes/promote", nil, nil)
}
