package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hallowdale/identity/internal/identity/domain"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/pkg/jwtx"
)

// RevocationService maintains the server-side token denylist. Tokens are
// keyed by their literal string; a record lives until the token's own
// expiry, after which the janitor removes it.
type RevocationService struct {
	store store.Store
	log   *slog.Logger
}

func NewRevocationService(st store.Store, log *slog.Logger) *RevocationService {
	return &RevocationService{store: st, log: log}
}

// Revoke invalidates a token immediately. The expiry for the record is
// read from the token itself without signature verification; a token
// whose expiry cannot be decoded is rejected rather than recorded with
// a guessed lifetime. Revoking an already-revoked token succeeds.
func (s *RevocationService) Revoke(ctx context.Context, token, userID string) error {
	return revokeToken(ctx, s.store, token, userID)
}

// revokeToken is the shared insert path, usable inside a transaction
// because store.Tx satisfies store.Store.
func revokeToken(ctx context.Context, st store.Store, token, userID string) error {
	exp, err := jwtx.ExpiryOf(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	rec := domain.RevocationRecord{
		Token:         token,
		UserID:        userID,
		InvalidatedAt: time.Now().UTC(),
		ExpiresAt:     exp.UTC(),
	}

	err = st.Revocations().CreateRevocation(ctx, rec)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Already on the list: the state the caller asked for holds.
		return nil
	}
	return err
}

// IsRevoked reports whether a token is on the denylist. A storage error
// is logged and answered with false so a degraded database does not lock
// every holder of a valid token out; a context deadline or cancellation
// propagates, leaving the fail-closed decision to the caller.
func (s *RevocationService) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := s.store.Revocations().IsRevoked(ctx, token)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			return false, err
		}
		s.log.Error("revocation lookup failed, treating token as live", "error", err)
		return false, nil
	}
	return revoked, nil
}

// PurgeExpired deletes every record whose token has outlived its own
// expiry. Safe to run concurrently; overlapping sweeps just race to
// delete the same rows.
func (s *RevocationService) PurgeExpired(ctx context.Context) (int64, error) {
	return s.store.Revocations().DeleteExpiredRevocations(ctx, time.Now().UTC())
}
