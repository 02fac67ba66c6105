package apisvc

import (
	"context"
	"net/http"

	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
)

var _ user.Gateway = (*Client)(nil)

// Login posts {email,password} and returns {token, user}.
func (c *Client) Login(ctx context.Context, creds user.Credentials) (user.LoginResponse, error) {
	var resp user.LoginResponse
	if err := c.Do(ctx, session.Session{}, http.MethodPost, "/auth/login", creds, &resp); err != nil {
		return user.LoginResponse{}, err
	}
	return resp, nil
}

// Register posts a sign-up request; the reply body is informational text.
func (c *Client) Register(ctx context.Context, reg user.Registration) error {
	var msg string
	return c.Do(ctx, session.Session{}, http.MethodPost, "/auth/register", reg, &msg)
}
