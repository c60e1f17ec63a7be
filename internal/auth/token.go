package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// tokenExpired decodes the token payload locally, without signature
// verification, and compares exp to the current time. Signature checking
// is the backend's job; this is only a quick pre-filter before the
// profile round trip.
func tokenExpired(token string) (bool, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false, err
	}
	if exp == nil {
		return false, nil
	}

	return exp.Time.Before(time.Now()), nil
}
