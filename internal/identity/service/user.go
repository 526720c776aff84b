package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/hallowdale/identity/internal/identity/domain"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/pkg/cryptox"
	"github.com/hallowdale/identity/pkg/idx"
)

// UserService handles account creation and self-service operations.
type UserService struct {
	store store.Store
	log   *slog.Logger
}

func NewUserService(st store.Store, log *slog.Logger) *UserService {
	return &UserService{store: st, log: log}
}

// Register creates an active account. Only shape is validated here;
// anything stricter belongs to the caller's policy layer.
func (s *UserService) Register(ctx context.Context, email, password string) (domain.User, error) {
	email = NormalizeEmail(email)
	if err := validateEmail(email); err != nil {
		return domain.User{}, err
	}
	if len(password) < MinPasswordLength {
		return domain.User{}, ErrPasswordTooShort
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        email,
		PasswordHash: hash,
		Active:       true,
	}
	if err := s.store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrEmailTaken
		}
		return domain.User{}, err
	}

	s.log.Info("user registered", "user_id", user.ID)

	// Re-read for the database-assigned timestamps.
	return s.store.Users().GetUserByID(ctx, user.ID)
}

// GetByID fetches a user, mapping absence to ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, userID string) (domain.User, error) {
	user, err := s.store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}
	return user, nil
}

// ChangePassword re-confirms the current password before storing the
// new hash. Read and write share a transaction so a concurrent change
// cannot slip between the confirmation and the update.
func (s *UserService) ChangePassword(ctx context.Context, userID, currentPassword, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	return s.store.WithTx(ctx, func(tx store.Tx) error {
		user, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if err := cryptox.VerifyPassword(currentPassword, user.PasswordHash); err != nil {
			if errors.Is(err, cryptox.ErrPasswordMismatch) {
				return ErrInvalidCredentials
			}
			return err
		}

		hash, err := cryptox.HashPassword(newPassword)
		if err != nil {
			return err
		}
		return tx.Users().UpdatePasswordHash(ctx, userID, hash)
	})
}

func validateEmail(email string) error {
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 || len(email) > 254 {
		return ErrInvalidEmail
	}
	return nil
}
