package session

import (
	"time"

	"github.com/dgrijalva/jwt-go"
)

var tokenParser = new(jwt.Parser)

// ExpiresAt reads the `exp` claim of a JWT bearer token without verifying its signature.
// The token is otherwise opaque to the client: ok is false when it is not a JWT or carries no expiry.
func ExpiresAt(token string) (exp time.Time, ok bool) {
	claims := jwt.MapClaims{}
	if _, _, err := tokenParser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	switch v := claims["exp"].(type) {
	case float64:
		return time.Unix(int64(v), 0), true
	case int64:
		return time.Unix(v, 0), true
	}
	return time.Time{}, false
}

// Expired reports whether the token's expiry is at or before now.
func Expired(token string, now time.Time) bool {
	exp, ok := ExpiresAt(token)
	return ok && !now.Before(exp)
}
