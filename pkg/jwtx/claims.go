package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Default token TTLs. Short access tokens bound the exposure window of a
// stolen credential; the refresh TTL trades that off against how often
// users have to log in again.
const (
	// DefaultAccessTokenTTL is the default lifetime for access tokens.
	DefaultAccessTokenTTL = 15 * time.Minute

	// DefaultRefreshTokenTTL is the default lifetime for refresh tokens.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// AccessClaims are the claims embedded in access tokens. They are
// self-contained (email and active flag travel with the token) so
// authenticated requests need no user lookup.
type AccessClaims struct {
	jwt.RegisteredClaims

	// Email of the authenticated user.
	Email string `json:"email,omitempty"`

	// Active mirrors the user's active flag at issuance time.
	Active bool `json:"active"`
}

// RefreshClaims carry only the subject. The user record is re-fetched at
// rotation time, so a deactivated account cannot keep refreshing.
type RefreshClaims struct {
	jwt.RegisteredClaims
}

// NewAccessClaims builds minimally-correct access claims.
func NewAccessClaims(subject, email string, active bool, ttl time.Duration, issuer string, now time.Time) AccessClaims {
	return AccessClaims{
		RegisteredClaims: registered(subject, ttl, issuer, now),
		Email:            email,
		Active:           active,
	}
}

// NewRefreshClaims builds minimally-correct refresh claims.
func NewRefreshClaims(subject string, ttl time.Duration, issuer string, now time.Time) RefreshClaims {
	return RefreshClaims{RegisteredClaims: registered(subject, ttl, issuer, now)}
}

func registered(subject string, ttl time.Duration, issuer string, now time.Time) jwt.RegisteredClaims {
	return jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
}
