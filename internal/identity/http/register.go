package http

import (
	"errors"
	"net/http"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
)

// RegisterHandler creates a new account.
type RegisterHandler struct {
	users *service.UserService
}

func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req identsdk.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail), errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		case errors.Is(err, service.ErrEmailTaken):
			writeError(w, http.StatusConflict, identsdk.CodeConflict)
		default:
			internalError(w, r, err)
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, identsdk.UserSummary{
		ID:        user.ID,
		Email:     user.Email,
		Active:    user.Active,
		CreatedAt: user.CreatedAt,
	})
}
