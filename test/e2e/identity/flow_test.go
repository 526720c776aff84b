package identity_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	identityhttp "github.com/hallowdale/identity/internal/identity/http"
	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/internal/identity/store/drivers/sqlite"
	"github.com/hallowdale/identity/pkg/identsdk"
	"github.com/hallowdale/identity/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *identsdk.Client {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	codec, err := jwtx.NewCodec(
		[]byte("e2e-access-secret-0123456789abcdef!"),
		[]byte("e2e-refresh-secret-0123456789abcde!"),
		0, 0, "identity-e2e")
	require.NoError(t, err)

	log := slog.New(slog.DiscardHandler)
	revocations := service.NewRevocationService(st, log)

	router := identityhttp.NewRouter(identityhttp.RouterConfig{
		Codec:       codec,
		Auth:        service.NewAuthService(st, codec, log),
		Sessions:    service.NewSessionService(st, codec, revocations, log),
		Revocations: revocations,
		Users:       service.NewUserService(st, log),
		Store:       st,
		Log:         log,
		LoginRPS:    1000,
		LoginBurst:  1000,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return identsdk.NewClient(srv.URL, identsdk.WithHTTPClient(srv.Client()))
}

func TestSessionLifecycle(t *testing.T) {
	client := newTestServer(t)
	ctx := t.Context()

	created, err := client.Register(ctx, "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	require.True(t, created.Active)

	tokens, err := client.Login(ctx, "ada@example.com", "correct horse battery")
	require.NoError(t, err)
	require.NotNil(t, tokens.User)
	require.Equal(t, created.ID, tokens.User.ID)

	me, err := client.Me(ctx, tokens.AccessToken)
	require.NoError(t, err)
	require.Equal(t, created.ID, me.ID)

	// Rotate: old refresh token becomes single-use.
	rotated, err := client.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	_, err = client.Refresh(ctx, tokens.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized)

	// The rotated pair works end to end.
	_, err = client.Me(ctx, rotated.AccessToken)
	require.NoError(t, err)

	require.NoError(t, client.Logout(ctx, rotated.AccessToken, rotated.RefreshToken))

	// The access token still verifies cryptographically but the gate
	// rejects it for the rest of its lifetime.
	_, err = client.Me(ctx, rotated.AccessToken)
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = client.Refresh(ctx, rotated.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized)

	// The dead session cannot authenticate a second logout either.
	err = client.Logout(ctx, rotated.AccessToken, rotated.RefreshToken)
	requireAPIError(t, err, http.StatusUnauthorized)
}

func TestCredentialHardening(t *testing.T) {
	client := newTestServer(t)
	ctx := t.Context()

	_, err := client.Register(ctx, "ada@example.com", "correct horse battery")
	require.NoError(t, err)

	_, wrongPw := client.Login(ctx, "ada@example.com", "wrong")
	_, unknown := client.Login(ctx, "ghost@example.com", "wrong")

	requireAPIError(t, wrongPw, http.StatusUnauthorized)
	requireAPIError(t, unknown, http.StatusUnauthorized)

	// The two failures are indistinguishable on the wire.
	require.Equal(t, wrongPw.Error(), unknown.Error())
}

func TestPasswordChangeFlow(t *testing.T) {
	client := newTestServer(t)
	ctx := t.Context()

	_, err := client.Register(ctx, "ada@example.com", "original password")
	require.NoError(t, err)

	tokens, err := client.Login(ctx, "ada@example.com", "original password")
	require.NoError(t, err)

	err = client.ChangePassword(ctx, tokens.AccessToken, "wrong", "replacement pw")
	requireAPIError(t, err, http.StatusUnauthorized)

	require.NoError(t, client.ChangePassword(ctx, tokens.AccessToken, "original password", "replacement pw"))

	_, err = client.Login(ctx, "ada@example.com", "original password")
	requireAPIError(t, err, http.StatusUnauthorized)

	_, err = client.Login(ctx, "ada@example.com", "replacement pw")
	require.NoError(t, err)
}

func requireAPIError(t *testing.T, err error, status int) {
	t.Helper()
	var apiErr *identsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode)
}
