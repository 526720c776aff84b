package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func setRequiredSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("IDENTITY_ACCESS_SECRET", testSecret)
	t.Setenv("IDENTITY_REFRESH_SECRET", testSecret+"-refresh")
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		setRequiredSecrets(t)

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, ":8080", cfg.Addr)
		require.Equal(t, "identity.db", cfg.DBPath)
		require.Equal(t, 15*time.Minute, cfg.AccessTTL)
		require.Equal(t, 168*time.Hour, cfg.RefreshTTL)
		require.Equal(t, 24*time.Hour, cfg.JanitorInterval)
		require.Equal(t, 10*time.Second, cfg.ShutdownGrace)
		require.Equal(t, float64(1), cfg.LoginRPS)
		require.Equal(t, 5, cfg.LoginBurst)
	})

	t.Run("overrides", func(t *testing.T) {
		setRequiredSecrets(t)
		t.Setenv("IDENTITY_ADDR", ":9999")
		t.Setenv("IDENTITY_ACCESS_TTL", "5m")
		t.Setenv("IDENTITY_JANITOR_INTERVAL", "1h")
		t.Setenv("IDENTITY_LOGIN_BURST", "20")

		cfg, err := LoadConfig()
		require.NoError(t, err)
		require.Equal(t, ":9999", cfg.Addr)
		require.Equal(t, 5*time.Minute, cfg.AccessTTL)
		require.Equal(t, time.Hour, cfg.JanitorInterval)
		require.Equal(t, 20, cfg.LoginBurst)
	})

	t.Run("missing access secret", func(t *testing.T) {
		t.Setenv("IDENTITY_ACCESS_SECRET", "")
		t.Setenv("IDENTITY_REFRESH_SECRET", testSecret)

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("short refresh secret", func(t *testing.T) {
		t.Setenv("IDENTITY_ACCESS_SECRET", testSecret)
		t.Setenv("IDENTITY_REFRESH_SECRET", "short")

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("bad duration", func(t *testing.T) {
		setRequiredSecrets(t)
		t.Setenv("IDENTITY_ACCESS_TTL", "fifteen minutes")

		_, err := LoadConfig()
		require.Error(t, err)
	})
}
