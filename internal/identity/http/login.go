package http

import (
	"errors"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
)

// LoginHandler exchanges credentials for a token pair.
type LoginHandler struct {
	auth *service.AuthService
}

func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identsdk.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	pair, user, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			httpx.Unauthorized(w)
			return
		}
		internalError(w, r, err)
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, identsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		User:         &identsdk.UserRef{ID: user.ID, Email: user.Email},
	})
}
