package http

import (
	"errors"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
)

// MeHandler returns the authenticated caller's profile.
type MeHandler struct {
	users *service.UserService
}

func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	user, err := h.users.GetByID(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			// Token outlived the account.
			httpx.Unauthorized(w)
			return
		}
		internalError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, identsdk.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	})
}
