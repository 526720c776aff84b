package sqlite

import (
	"context"
	"time"

	"github.com/hallowdale/identity/internal/identity/domain"
)

type revocationsRepo struct {
	db executor
}

func (r *revocationsRepo) CreateRevocation(ctx context.Context, rec domain.RevocationRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO revoked_tokens (token, user_id, invalidated_at, expires_at)
		 VALUES (?, ?, ?, ?)`,
		rec.Token, rec.UserID, rec.InvalidatedAt.UTC(), rec.ExpiresAt.UTC())
	return mapConstraint(err)
}

func (r *revocationsRepo) IsRevoked(ctx context.Context, token string) (bool, error) {
	var exists int
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM revoked_tokens WHERE token = ?)`, token).
		Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (r *revocationsRepo) DeleteExpiredRevocations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM revoked_tokens WHERE expires_at < ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
