package console

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/notify"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
)

// Auth drives login, registration and logout.
type Auth struct {
	*page
	users *user.Service
}

func NewAuth(env *Env, users *user.Service) *Auth {
	return &Auth{page: newPage(env), users: users}
}

// Login stores the session and returns the landing page of the user's role.
func (a *Auth) Login(ctx context.Context, creds user.Credentials) (session.Session, string, error) {
	sess, landing, err := a.users.Login(ctx, creds)
	if err != nil {
		switch {
		case core.IsValidationError(err):
		case errors.Is(err, session.ErrUnknownRole):
			a.Logger.Warn("login with unknown role", err)
			a.Notifier.Notify(notify.KindError, "Unknown user role. Please contact support.")
		default:
			a.fail("Login failed: "+apiMessage(err, "please try again."), err)
		}
		return session.Session{}, "", err
	}
	a.Notifier.Notify(notify.KindSuccess, "Welcome, "+sess.User.Name+"!")
	return sess, landing, nil
}

func (a *Auth) Register(ctx context.Context, reg user.Registration) error {
	if err := a.users.Register(ctx, reg); err != nil {
		a.fail("Registration failed: "+apiMessage(err, "please try again."), err)
		return err
	}
	a.Notifier.Notify(notify.KindSuccess, "Registration successful! Please wait for admin approval.")
	return nil
}

// Logout asks for confirmation, then drops the session and returns the home page.
func (a *Auth) Logout(ctx context.Context) (string, error) {
	if !a.Notifier.Confirm("Are you sure you want to logout?") {
		return "", ErrCancelled
	}
	home, err := a.users.Logout(ctx)
	if err != nil {
		a.fail("Logout failed.", err)
		return "", err
	}
	a.Notifier.Notify(notify.KindInfo, "You have been logged out.")
	return home, nil
}
