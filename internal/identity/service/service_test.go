package service_test

import (
	"log/slog"
	"testing"

	"github.com/hallowdale/identity/internal/identity/domain"
	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/internal/identity/store/drivers/sqlite"
	"github.com/hallowdale/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	store       store.Store
	codec       *jwtx.Codec
	auth        *service.AuthService
	sessions    *service.SessionService
	revocations *service.RevocationService
	users       *service.UserService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(
		[]byte("test-access-secret-0123456789abcdef"),
		[]byte("test-refresh-secret-0123456789abcde"),
		0, 0, "identity-test")
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	revocations := service.NewRevocationService(st, log)

	return &testEnv{
		store:       st,
		codec:       codec,
		auth:        service.NewAuthService(st, codec, log),
		sessions:    service.NewSessionService(st, codec, revocations, log),
		revocations: revocations,
		users:       service.NewUserService(st, log),
	}
}

func (e *testEnv) register(t *testing.T, email, password string) domain.User {
	t.Helper()
	u, err := e.users.Register(t.Context(), email, password)
	require.NoError(t, err)
	return u
}
