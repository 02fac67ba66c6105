package session

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// Store persists the session between runs.
// Load returns ErrNoSession when nothing is stored.
type Store interface {
	Load(ctx context.Context) (Session, error)
	Save(ctx context.Context, sess Session) error
	Clear(ctx context.Context) error
}

type Service struct {
	store Store
	now   func() time.Time // mockable
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Get returns the stored session. It never touches the network.
func (svc *Service) Get(ctx context.Context) (Session, error) {
	sess, err := svc.store.Load(ctx)
	if err != nil {
		if errors.Cause(err) == ErrNoSession {
			return Session{}, ErrNoSession
		}
		return Session{}, errors.Wrap(err, "loading session")
	}
	if sess.IsZero() {
		return Session{}, ErrNoSession
	}
	return sess, nil
}

// Require fails fast with a *RedirectError to the login page when there is no usable session
// or when the user's role is not one of roles.
func (svc *Service) Require(ctx context.Context, roles ...Role) (Session, error) {
	sess, err := svc.Get(ctx)
	if err != nil {
		if err == ErrNoSession {
			return Session{}, &RedirectError{To: LoginPath, Reason: err}
		}
		return Session{}, err
	}
	if Expired(sess.Token, svc.now()) {
		return Session{}, &RedirectError{To: LoginPath, Reason: ErrExpired}
	}
	if !sess.Is(roles...) {
		return Session{}, &RedirectError{
			To:     LoginPath,
			Reason: errors.Errorf("role %q not allowed", sess.User.Role),
		}
	}
	return sess, nil
}

func (svc *Service) Save(ctx context.Context, sess Session) error {
	if sess.IsZero() {
		return errors.New("saving session: empty token")
	}
	return errors.Wrap(svc.store.Save(ctx, sess), "saving session")
}

// Clear destroys the stored session (logout).
func (svc *Service) Clear(ctx context.Context) error {
	return errors.Wrap(svc.store.Clear(ctx), "clearing session")
}
