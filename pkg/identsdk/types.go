// Package identsdk holds the wire types of the identity HTTP API and a
// small client for them. The server handlers and the client share these
// structs so the two cannot drift apart.
package identsdk

import "time"

// Error codes returned in ErrorResponse.Error.
const (
	CodeBadRequest   = "BAD_REQUEST"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeConflict     = "CONFLICT"
	CodeRateLimited  = "RATE_LIMITED"
	CodeInternal     = "INTERNAL"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest is the optional logout body. The access token in the
// Authorization header is always revoked; this adds the refresh token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// UserRef is the short user shape embedded in login responses.
type UserRef struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// UserSummary is the full user shape returned by /me and registration.
type UserSummary struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

type TokenResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	User         *UserRef `json:"user,omitempty"`
}
