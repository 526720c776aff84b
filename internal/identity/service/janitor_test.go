package service_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/hallowdale/identity/internal/identity/domain"
	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/stretchr/testify/require"
)

func TestJanitor(t *testing.T) {
	env := newTestEnv(t)
	ctx := t.Context()
	now := time.Now().UTC()

	expired := domain.RevocationRecord{
		Token: "stale", UserID: "u", InvalidatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour),
	}
	live := domain.RevocationRecord{
		Token: "fresh", UserID: "u", InvalidatedAt: now, ExpiresAt: now.Add(time.Hour),
	}
	require.NoError(t, env.store.Revocations().CreateRevocation(ctx, expired))
	require.NoError(t, env.store.Revocations().CreateRevocation(ctx, live))

	j := service.NewJanitor(env.revocations, time.Hour, slog.New(slog.DiscardHandler))
	j.Start(ctx)

	// The startup sweep runs immediately; poll briefly for it to land.
	require.Eventually(t, func() bool {
		revoked, err := env.revocations.IsRevoked(ctx, "stale")
		return err == nil && !revoked
	}, 2*time.Second, 10*time.Millisecond)

	revoked, err := env.revocations.IsRevoked(ctx, "fresh")
	require.NoError(t, err)
	require.True(t, revoked)

	j.Stop()

	// Stop waits for the loop to exit; a second Stop must not panic.
	j.Stop()
}
