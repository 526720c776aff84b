package domain

// TokenPair is what login and refresh hand back: a short-lived
// self-contained access token and a longer-lived refresh token, both
// HS256-signed JWTs.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}
