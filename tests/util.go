package testutil

import (
	"strconv"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/feedback"
	"github.com/trezcool/mentorhub/core/goal"
	"github.com/trezcool/mentorhub/core/roster"
	"github.com/trezcool/mentorhub/core/session"
	"github.com/trezcool/mentorhub/core/user"
)

// SigningKey signs the tokens issued by the fake backend.
var SigningKey = []byte("test-signing-key")

// Claims is what the fake backend puts in its tokens.
type Claims struct {
	jwt.StandardClaims
	Name string       `json:"name,omitempty"`
	Role session.Role `json:"role,omitempty"`
}

// NewToken signs a token for usr valid for ttl (negative ttl yields an expired token).
func NewToken(t *testing.T, usr session.User, ttl time.Duration) string {
	t.Helper()
	token, err := signToken(usr, ttl)
	if err != nil {
		t.Fatalf("NewToken() failed: %v", err)
	}
	return token
}

func signToken(usr session.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		StandardClaims: jwt.StandardClaims{
			Subject:   strconv.FormatInt(usr.UserID, 10),
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(ttl).Unix(),
		},
		Name: usr.Name,
		Role: usr.Role,
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(SigningKey)
}

func parseToken(token string) (*Claims, error) {
	claims := new(Claims)
	_, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return SigningKey, nil
	})
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// NewSession builds a valid session for a throwaway user with role.
func NewSession(t *testing.T, role session.Role) session.Session {
	t.Helper()
	usr := session.User{UserID: 1, Name: "Test " + string(role), Email: "test@test.cd", Role: role}
	return session.Session{Token: NewToken(t, usr, time.Hour), User: usr}
}

// NewValidator returns a validator with every domain tag registered.
func NewValidator() *core.Validator {
	v := core.NewValidator()
	user.InitValidators(v)
	goal.InitValidators(v)
	feedback.InitValidators(v)
	roster.InitValidators(v)
	return v
}
