package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/hallowdale/identity/pkg/httpx"
	"github.com/hallowdale/identity/pkg/identsdk"
	"github.com/hallowdale/identity/pkg/slogx"
)

const maxBodyBytes = 1 << 20

// decodeJSON reads the request body into dst. On failure it writes the
// 400 response itself and returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		return false
	}
	// Trailing garbage after the JSON value is also a malformed body.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		return false
	}
	return true
}

// decodeJSONOptional is decodeJSON for endpoints where an absent body
// is valid. An empty body leaves dst untouched and returns true; a
// present but malformed body still gets the 400.
func decodeJSONOptional(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if errors.Is(err, io.EOF) {
		return true
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		return false
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, identsdk.CodeBadRequest)
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, code string) {
	httpx.WriteJSON(w, status, identsdk.ErrorResponse{Error: code})
}

// internalError logs the cause and hides it from the client.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed", "error", err)
	writeError(w, http.StatusInternalServerError, identsdk.CodeInternal)
}
