// Package http wires the identity service's HTTP surface: one handler
// per endpoint, a shared auth gate, rate limiting on the credential
// endpoints and request logging on everything.
package http

import (
	"log/slog"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/jwtx"
	"github.com/hallowdale/identity/pkg/slogx"
)

type RouterConfig struct {
	Codec       *jwtx.Codec
	Auth        *service.AuthService
	Sessions    *service.SessionService
	Revocations *service.RevocationService
	Users       *service.UserService
	Store       store.Store
	Log         *slog.Logger

	// LoginRPS/LoginBurst bound the per-client rate on the credential
	// endpoints. Zero values fall back to 1 rps with a burst of 5.
	LoginRPS   float64
	LoginBurst int
}

func NewRouter(cfg RouterConfig) http.Handler {
	rps, burst := cfg.LoginRPS, cfg.LoginBurst
	if rps <= 0 {
		rps = 1
	}
	if burst <= 0 {
		burst = 5
	}
	limited := httpx.NewRateLimiter(rps, burst).Middleware()
	authed := httpx.RequireAuth(cfg.Codec, cfg.Revocations)

	mux := http.NewServeMux()

	mux.Handle("POST /login", limited(&LoginHandler{auth: cfg.Auth}))
	mux.Handle("POST /refresh", limited(&RefreshHandler{sessions: cfg.Sessions}))
	mux.Handle("POST /users", limited(&RegisterHandler{users: cfg.Users}))

	mux.Handle("POST /logout", authed(&LogoutHandler{sessions: cfg.Sessions}))
	mux.Handle("GET /me", authed(&MeHandler{users: cfg.Users}))
	mux.Handle("POST /me/password", authed(&ChangePasswordHandler{users: cfg.Users}))

	mux.Handle("GET /livez", LivezHandler{})
	mux.Handle("GET /readyz", &ReadyzHandler{store: cfg.Store})

	return httpx.Chain(mux, slogx.HTTPMiddleware(cfg.Log))
}
