package http

import (
	"errors"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
)

// RefreshHandler rotates a refresh token into a new pair.
type RefreshHandler struct {
	sessions *service.SessionService
}

func (h *RefreshHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identsdk.RefreshRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		return
	}

	pair, err := h.sessions.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidToken),
			errors.Is(err, service.ErrUserNotFound),
			errors.Is(err, service.ErrAccountInactive):
			// One body for every rejection; the reason stays in the logs.
			httpx.Unauthorized(w)
		default:
			internalError(w, r, err)
		}
		return
	}

	httpx.NoCache(w)
	httpx.WriteJSON(w, http.StatusOK, identsdk.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}
