package httpx

import (
	"context"
	"net/http"
	"time"

	"github.com/hallowdale/identity/pkg/jwtx"
	"github.com/hallowdale/identity/pkg/slogx"
)

// DefaultRevocationTimeout bounds the revocation lookup per request so a
// stalled database cannot hold every authenticated request hostage.
const DefaultRevocationTimeout = 3 * time.Second

// RevocationChecker reports whether a token has been revoked.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type errorBody struct {
	Error string `json:"error"`
}

// Unauthorized writes the uniform 401 response. Every authentication
// failure gets the same body so callers cannot probe for why a token
// was rejected.
func Unauthorized(w http.ResponseWriter) {
	WriteJSON(w, http.StatusUnauthorized, errorBody{Error: "UNAUTHORIZED"})
}

// RequireAuth gates a handler behind bearer-token authentication. It
// verifies the access token, consults the revocation list with a bounded
// timeout, and attaches the caller's Identity to the request context.
// A nil revocations checker skips the revocation lookup.
func RequireAuth(codec *jwtx.Codec, revocations RevocationChecker) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			raw, ok := jwtx.ParseBearer(r.Header.Get("Authorization"))
			if !ok {
				Unauthorized(w)
				return
			}

			claims, err := codec.VerifyAccess(raw)
			if err != nil {
				log.Debug("access token rejected", "error", err)
				Unauthorized(w)
				return
			}
			if !claims.Active {
				Unauthorized(w)
				return
			}

			if revocations != nil {
				ctx, cancel := context.WithTimeout(r.Context(), DefaultRevocationTimeout)
				revoked, err := revocations.IsRevoked(ctx, raw)
				cancel()
				if err != nil {
					// Deadline or cancellation: without an answer from the
					// revocation list the token cannot be trusted.
					log.Warn("revocation lookup failed", "error", err)
					Unauthorized(w)
					return
				}
				if revoked {
					Unauthorized(w)
					return
				}
			}

			ctx := WithIdentity(r.Context(), Identity{
				UserID: claims.Subject,
				Email:  claims.Email,
				Active: claims.Active,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
