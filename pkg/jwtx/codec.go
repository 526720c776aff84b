package jwtx

import (
	"crypto/subtle"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the minimum accepted length for signing secrets.
// 32 bytes matches the HS256 output size; anything shorter weakens the MAC.
const MinSecretLength = 32

var (
	ErrMalformed  = errors.New("jwtx: malformed token")
	ErrInvalidSig = errors.New("jwtx: invalid signature")
	ErrExpired    = errors.New("jwtx: token expired")
	ErrNoExpiry   = errors.New("jwtx: token carries no expiry claim")

	ErrSecretTooShort = errors.New("jwtx: signing secret too short")
	ErrSecretsEqual   = errors.New("jwtx: access and refresh secrets must differ")
)

// Codec signs and verifies HS256 access and refresh tokens. The two token
// classes use separate secrets so a leaked access secret cannot be used to
// forge refresh tokens, and vice versa.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte

	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// NewCodec validates the secrets and returns a ready Codec. Zero TTLs fall
// back to the package defaults.
func NewCodec(accessSecret, refreshSecret []byte, accessTTL, refreshTTL time.Duration, issuer string) (*Codec, error) {
	if len(accessSecret) < MinSecretLength || len(refreshSecret) < MinSecretLength {
		return nil, ErrSecretTooShort
	}
	if len(accessSecret) == len(refreshSecret) &&
		subtle.ConstantTimeCompare(accessSecret, refreshSecret) == 1 {
		return nil, ErrSecretsEqual
	}
	if accessTTL <= 0 {
		accessTTL = DefaultAccessTokenTTL
	}
	if refreshTTL <= 0 {
		refreshTTL = DefaultRefreshTokenTTL
	}

	return &Codec{
		accessSecret:  accessSecret,
		refreshSecret: refreshSecret,
		AccessTTL:     accessTTL,
		RefreshTTL:    refreshTTL,
		Issuer:        issuer,
	}, nil
}

// IssueAccess signs a self-contained access token for the user.
func (c *Codec) IssueAccess(subject, email string, active bool) (string, error) {
	return c.IssueAccessAt(subject, email, active, time.Now().UTC())
}

// IssueAccessAt is IssueAccess with an explicit issuance time.
func (c *Codec) IssueAccessAt(subject, email string, active bool, now time.Time) (string, error) {
	claims := NewAccessClaims(subject, email, active, c.AccessTTL, c.Issuer, now)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.accessSecret)
}

// IssueRefresh signs a refresh token carrying only the subject id.
func (c *Codec) IssueRefresh(subject string) (string, error) {
	return c.IssueRefreshAt(subject, time.Now().UTC())
}

// IssueRefreshAt is IssueRefresh with an explicit issuance time.
func (c *Codec) IssueRefreshAt(subject string, now time.Time) (string, error) {
	claims := NewRefreshClaims(subject, c.RefreshTTL, c.Issuer, now)
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.refreshSecret)
}

// VerifyAccess checks signature and expiry against the access secret.
func (c *Codec) VerifyAccess(token string) (AccessClaims, error) {
	var claims AccessClaims
	if err := c.verify(token, &claims, c.accessSecret); err != nil {
		return AccessClaims{}, err
	}
	return claims, nil
}

// VerifyRefresh checks signature and expiry against the refresh secret.
func (c *Codec) VerifyRefresh(token string) (RefreshClaims, error) {
	var claims RefreshClaims
	if err := c.verify(token, &claims, c.refreshSecret); err != nil {
		return RefreshClaims{}, err
	}
	return claims, nil
}

func (c *Codec) verify(token string, claims jwt.Claims, secret []byte) error {
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return mapParseError(err)
	}
	return nil
}

// mapParseError flattens golang-jwt's error tree onto the codec's three
// verification outcomes. Callers must not surface these distinctly to end
// users; the split exists for logging and tests only.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	default:
		return ErrMalformed
	}
}

// ExpiryOf decodes the exp claim WITHOUT verifying the signature. Used by
// revocation bookkeeping, which must record the expiry of tokens it will
// never honor again. Never use this to authenticate anything.
func ExpiryOf(token string) (time.Time, error) {
	var claims jwt.RegisteredClaims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}, ErrMalformed
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, ErrNoExpiry
	}
	return claims.ExpiresAt.Time, nil
}
