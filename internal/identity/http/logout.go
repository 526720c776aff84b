package http

import (
	"errors"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
	"github.com/hallowdale/identity/pkg/jwtx"
)

// LogoutHandler revokes the access token the request authenticated
// with, so it stops working before its expiry. The body is optional; a
// {refreshToken} body additionally revokes that refresh token. Runs
// behind the auth gate.
type LogoutHandler struct {
	sessions *service.SessionService
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	// The gate already verified this header; re-extract the raw token
	// to put it on the revocation list.
	accessToken, ok := jwtx.ParseBearer(r.Header.Get("Authorization"))
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req identsdk.LogoutRequest
	if !decodeJSONOptional(w, r, &req) {
		return
	}

	if err := h.sessions.Logout(r.Context(), accessToken, req.RefreshToken, id.UserID); err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
			return
		}
		internalError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
