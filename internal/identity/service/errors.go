package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers every login failure: unknown email,
	// wrong password, inactive account. Collapsing them keeps the
	// endpoint from confirming which addresses exist.
	ErrInvalidCredentials = errors.New("service: invalid credentials")

	// ErrInvalidToken covers every token rejection a caller may see:
	// malformed, bad signature, expired, revoked.
	ErrInvalidToken = errors.New("service: invalid token")

	// ErrTokenRevoked is the revoked-token case of ErrInvalidToken.
	// Boundaries still answer with the uniform rejection; the distinct
	// value exists for logs and tests.
	ErrTokenRevoked = fmt.Errorf("%w: revoked", ErrInvalidToken)

	ErrUserNotFound    = errors.New("service: user not found")
	ErrAccountInactive = errors.New("service: account inactive")
	ErrEmailTaken      = errors.New("service: email already registered")

	ErrInvalidEmail     = errors.New("service: invalid email address")
	ErrPasswordTooShort = errors.New("service: password too short")
)

// MinPasswordLength applies at registration and password change.
const MinPasswordLength = 8
