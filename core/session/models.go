package session

import (
	"errors"
	"fmt"
)

// Roles
const (
	RoleStudent Role = "STUDENT"
	RoleMentor  Role = "MENTOR"
	RoleAdmin   Role = "ADMIN"
)

// Paths the UI navigates to.
const (
	LoginPath          = "login.html"
	HomePath           = "home.html"
	StudentLandingPath = "student/stdboard.html"
	MentorLandingPath  = "mentor/mentor_complete_updated.html"
	AdminLandingPath   = "admin/admin.html"
)

var (
	// errors
	ErrNoSession   = errors.New("no active session")
	ErrExpired     = errors.New("session expired")
	ErrUnknownRole = errors.New("unknown role")

	AllRoles = []Role{RoleStudent, RoleMentor, RoleAdmin}

	landingPaths = map[Role]string{
		RoleStudent: StudentLandingPath,
		RoleMentor:  MentorLandingPath,
		RoleAdmin:   AdminLandingPath,
	}
)

type Role string

func (r Role) Valid() bool {
	_, ok := landingPaths[r]
	return ok
}

type (
	// User is the profile stored next to the token at login.
	User struct {
		UserID int64  `json:"userId"`
		Name   string `json:"name"`
		Email  string `json:"email,omitempty"`
		Role   Role   `json:"role"`
	}

	// Session is the authenticated identity threaded through every API call.
	Session struct {
		Token string `json:"jwtToken"`
		User  User   `json:"currentUser"`
	}
)

func (s Session) IsZero() bool {
	return s.Token == ""
}

func (s Session) Is(roles ...Role) bool {
	if len(roles) == 0 {
		return true
	}
	for _, role := range roles {
		if s.User.Role == role {
			return true
		}
	}
	return false
}

// LandingPath returns the dashboard a freshly logged-in user is sent to.
// An unknown or missing role is reported as ErrUnknownRole instead of being ignored.
func LandingPath(role Role) (string, error) {
	if path, ok := landingPaths[role]; ok {
		return path, nil
	}
	if role == "" {
		return "", fmt.Errorf("%w: missing", ErrUnknownRole)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, role)
}

// RedirectError signals that the current page cannot be served and the UI must go elsewhere.
type RedirectError struct {
	To     string
	Reason error
}

func (err RedirectError) Error() string {
	if err.Reason != nil {
		return fmt.Sprintf("redirect to %s: %v", err.To, err.Reason)
	}
	return "redirect to " + err.To
}

func (err RedirectError) Unwrap() error { return err.Reason }

func IsRedirect(err error) (*RedirectError, bool) {
	var redirErr *RedirectError
	if errors.As(err, &redirErr) {
		return redirErr, true
	}
	return nil, false
}
