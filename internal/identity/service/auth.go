package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hallowdale/identity/internal/identity/domain"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/pkg/cryptox"
	"github.com/hallowdale/identity/pkg/jwtx"
)

// dummyHash is verified against when the email is unknown, so a login
// attempt costs the same whether or not the account exists.
var dummyHash = func() string {
	h, err := cryptox.HashPassword("decoy")
	if err != nil {
		panic(err)
	}
	return h
}()

// AuthService authenticates credentials and mints token pairs.
type AuthService struct {
	store store.Store
	codec *jwtx.Codec
	log   *slog.Logger
}

func NewAuthService(st store.Store, codec *jwtx.Codec, log *slog.Logger) *AuthService {
	return &AuthService{store: st, codec: codec, log: log}
}

// Login verifies the credentials and, on success, issues a fresh
// access/refresh pair. Unknown email, wrong password and inactive
// account all surface as ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.TokenPair, domain.User, error) {
	email = NormalizeEmail(email)
	if email == "" || password == "" {
		return domain.TokenPair{}, domain.User{}, ErrInvalidCredentials
	}

	user, err := s.store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			_ = cryptox.VerifyPassword(password, dummyHash)
			return domain.TokenPair{}, domain.User{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, domain.User{}, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			s.log.Debug("login rejected: password mismatch", "user_id", user.ID)
			return domain.TokenPair{}, domain.User{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, domain.User{}, err
	}

	if !user.Active {
		s.log.Debug("login rejected: account inactive", "user_id", user.ID)
		return domain.TokenPair{}, domain.User{}, ErrInvalidCredentials
	}

	pair, err := s.issuePair(user)
	if err != nil {
		return domain.TokenPair{}, domain.User{}, err
	}
	return pair, user, nil
}

func (s *AuthService) issuePair(user domain.User) (domain.TokenPair, error) {
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

// NormalizeEmail lowercases and trims an address so lookups and the
// unique index agree on a single spelling.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
