package domain

import "time"

// RevocationRecord marks a token that must be rejected regardless of
// cryptographic validity. A record exists iff the token is revoked.
// ExpiresAt mirrors the token's own expiry so the record can be purged
// once the token could no longer verify anyway.
type RevocationRecord struct {
	Token         string // primary key: the raw token string
	UserID        string
	InvalidatedAt time.Time
	ExpiresAt     time.Time
}
