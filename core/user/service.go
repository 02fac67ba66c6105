package user

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/session"
)

// Gateway is the remote side of authentication.
type Gateway interface {
	Login(ctx context.Context, creds Credentials) (LoginResponse, error)
	Register(ctx context.Context, reg Registration) error
}

type Service struct {
	gw       Gateway
	sessions *session.Service
	validate *core.Validator
}

func NewService(gw Gateway, sessions *session.Service, validate *core.Validator) *Service {
	return &Service{gw: gw, sessions: sessions, validate: validate}
}

// Login authenticates, stores the session and returns the role's landing path.
// A login whose role has no landing path is rejected and nothing is stored.
func (svc *Service) Login(ctx context.Context, creds Credentials) (session.Session, string, error) {
	if err := creds.Validate(svc.validate); err != nil {
		return session.Session{}, "", err
	}
	resp, err := svc.gw.Login(ctx, creds)
	if err != nil {
		return session.Session{}, "", err
	}
	sess := resp.Session()
	landing, err := session.LandingPath(sess.User.Role)
	if err != nil {
		return session.Session{}, "", err
	}
	if sess.User.Email == "" {
		sess.User.Email = creds.Email
	}
	if err := svc.sessions.Save(ctx, sess); err != nil {
		return session.Session{}, "", err
	}
	return sess, landing, nil
}

func (svc *Service) Register(ctx context.Context, reg Registration) error {
	if err := reg.Validate(svc.validate); err != nil {
		return err
	}
	return errors.Wrap(svc.gw.Register(ctx, reg), "registering")
}

// Logout drops the stored session and returns where the UI goes next.
func (svc *Service) Logout(ctx context.Context) (string, error) {
	if err := svc.sessions.Clear(ctx); err != nil {
		return "", err
	}
	return session.HomePath, nil
}
