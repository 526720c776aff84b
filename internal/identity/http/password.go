package http

import (
	"errors"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
)

// ChangePasswordHandler lets the authenticated caller rotate their own
// password after re-confirming the current one.
type ChangePasswordHandler struct {
	users *service.UserService
}

func (h *ChangePasswordHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, ok := httpx.IdentityFromContext(r.Context())
	if !ok {
		httpx.Unauthorized(w)
		return
	}

	var req identsdk.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	err := h.users.ChangePassword(r.Context(), id.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		case errors.Is(err, service.ErrInvalidCredentials), errors.Is(err, service.ErrUserNotFound):
			httpx.Unauthorized(w)
		default:
			internalError(w, r, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, struct{}{})
}
