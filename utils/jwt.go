package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// TokenExpiry extracts the "exp" claim from a JWT access token without
// verifying the signature. The backend signs and validates tokens; the client
// only needs the expiry to decide when to refresh proactively.
func TokenExpiry(tokenString string) (time.Time, error) {
	parser := jwt.Parser{}
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return time.Time{}, err
	}

	exp, ok := claims["exp"].(float64)
	if !ok {
		return time.Time{}, errors.New("token does not contain a valid 'exp' claim")
	}
	return time.Unix(int64(exp), 0), nil
}

// ExpiresWithin reports whether the token expires within the given window.
// Tokens that cannot be parsed are treated as expiring, so callers fall back
// to the refresh-on-401 path.
func ExpiresWithin(tokenString string, window time.Duration) bool {
	exp, err := TokenExpiry(tokenString)
	if err != nil {
		return true
	}
	return time.Until(exp) < window
}
