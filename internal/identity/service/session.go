package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/hallowdale/identity/internal/identity/domain"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/pkg/jwtx"
)

// SessionService rotates refresh tokens and ends sessions.
type SessionService struct {
	store       store.Store
	codec       *jwtx.Codec
	revocations *RevocationService
	log         *slog.Logger
}

func NewSessionService(st store.Store, codec *jwtx.Codec, revocations *RevocationService, log *slog.Logger) *SessionService {
	return &SessionService{store: st, codec: codec, revocations: revocations, log: log}
}

// Refresh exchanges a refresh token for a new access/refresh pair. The
// presented token is revoked before the new pair is issued, so each
// refresh token is good for exactly one exchange; a replay after a
// successful rotation fails at the revocation check.
func (s *SessionService) Refresh(ctx context.Context, raw string) (domain.TokenPair, error) {
	revoked, err := s.revocations.IsRevoked(ctx, raw)
	if err != nil {
		return domain.TokenPair{}, err
	}
	if revoked {
		s.log.Debug("refresh rejected: token revoked")
		return domain.TokenPair{}, ErrTokenRevoked
	}

	claims, err := s.codec.VerifyRefresh(raw)
	if err != nil {
		s.log.Debug("refresh token rejected", "error", err)
		return domain.TokenPair{}, ErrInvalidToken
	}

	// Re-fetch and revoke in one transaction so the user snapshot the
	// new pair is minted from matches the state the old token died in.
	var user domain.User
	err = s.store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if !u.Active {
			return ErrAccountInactive
		}
		user = u
		return revokeToken(ctx, tx, raw, u.ID)
	})
	if err != nil {
		return domain.TokenPair{}, err
	}

	access, err := s.codec.IssueAccess(user.ID, user.Email, user.Active)
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.codec.IssueRefresh(user.ID)
	if err != nil {
		return domain.TokenPair{}, err
	}
	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Logout revokes the presented access token, so the auth gate rejects
// it for the remainder of its lifetime, and optionally the session's
// refresh token as well. Logging out twice with the same tokens
// succeeds both times.
func (s *SessionService) Logout(ctx context.Context, accessToken, refreshToken, userID string) error {
	if err := s.revocations.Revoke(ctx, accessToken, userID); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}
	return s.revocations.Revoke(ctx, refreshToken, userID)
}
