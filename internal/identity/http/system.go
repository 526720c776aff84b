package http

import (
	"context"
	"net/http"
	"time"

	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/pkg/httpx"
)

// LivezHandler answers as long as the process is serving.
type LivezHandler struct{}

func (LivezHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ReadyzHandler additionally checks the database.
type ReadyzHandler struct {
	store store.Store
}

func (h *ReadyzHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		httpx.WriteJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
