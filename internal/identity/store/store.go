package store

import (
	"context"
	"errors"
	"time"

	"github.com/hallowdale/identity/internal/identity/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite for
// now) implement this. Sub-repositories keep concerns tidy and make it
// obvious which tables a service touches.
type Store interface {
	Users() Users
	Revocations() Revocations

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Prefer this
	// over Tx for multi-step operations that must be atomic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Same repos, plus Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by the app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// SetUserActive flips the active flag and bumps updated_at.
	SetUserActive(ctx context.Context, userID string, active bool) error
}

type Revocations interface {
	// CreateRevocation inserts a revocation record keyed by the raw token
	// string. Inserting a token that is already revoked returns
	// ErrAlreadyExists; callers decide whether that matters.
	CreateRevocation(ctx context.Context, rec domain.RevocationRecord) error

	// IsRevoked reports whether a record exists for the literal token
	// string. Indexed lookup on the primary key.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// DeleteExpiredRevocations removes all records with expires_at before
	// now and returns how many were deleted. Idempotent and safe to run
	// concurrently with inserts.
	DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error)
}
