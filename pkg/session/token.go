package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry peeks at the expiry claim of a bearer token without verifying
// its signature. The result is for display and diagnostics only (e.g.
// "session expires in 2h"): authorization decisions always belong to the
// server, and the client keeps trusting a restored token until a request
// fails. Returns false for opaque tokens and tokens without an exp claim.
func TokenExpiry(token string) (time.Time, bool) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, false
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
