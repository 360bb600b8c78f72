package identity

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// refreshMargin is how long before expiry a credential counts as stale, so
// the background refresher renews it while the old token still works.
const refreshMargin = 5 * time.Minute

// TokenExpiry reads the exp claim off a provider-issued ID token. The token
// is not verified here: the provider signed it and the server verifies it;
// the client only needs the timestamp to schedule renewal.
func TokenExpiry(idToken string) (time.Time, error) {
	parser := jwt.NewParser()

	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(idToken, claims); err != nil {
		return time.Time{}, err
	}

	exp, err := claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, errors.New("token has no exp claim")
	}

	return exp.Time, nil
}

// Stale reports whether the credential should be renewed now.
func (c *Credential) Stale(now time.Time) bool {
	if c.ExpiresAt.IsZero() {
		return true
	}
	return !now.Before(c.ExpiresAt.Add(-refreshMargin))
}
