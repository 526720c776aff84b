package app

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/pkg/jwtx"
)

// Config is loaded once from the environment at startup and passed into
// constructors; nothing reads the environment after this.
type Config struct {
	Addr   string
	DBPath string

	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string

	JanitorInterval time.Duration
	ShutdownGrace   time.Duration

	LoginRPS   float64
	LoginBurst int

	Env       string
	LogLevel  string
	LogFormat string
}

// LoadConfig reads IDENTITY_* variables, applying defaults for
// everything except the two signing secrets.
func LoadConfig() (Config, error) {
	cfg := Config{
		Addr:   getEnvOrDefault("IDENTITY_ADDR", ":8080"),
		DBPath: getEnvOrDefault("IDENTITY_DB_PATH", "identity.db"),

		AccessSecret:  []byte(os.Getenv("IDENTITY_ACCESS_SECRET")),
		RefreshSecret: []byte(os.Getenv("IDENTITY_REFRESH_SECRET")),
		Issuer:        getEnvOrDefault("IDENTITY_ISSUER", "identity"),

		Env:       getEnvOrDefault("IDENTITY_ENV", "dev"),
		LogLevel:  getEnvOrDefault("IDENTITY_LOG_LEVEL", "info"),
		LogFormat: getEnvOrDefault("IDENTITY_LOG_FORMAT", "json"),
	}

	var err error
	if cfg.AccessTTL, err = getDurationOrDefault("IDENTITY_ACCESS_TTL", jwtx.DefaultAccessTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.RefreshTTL, err = getDurationOrDefault("IDENTITY_REFRESH_TTL", jwtx.DefaultRefreshTokenTTL); err != nil {
		return Config{}, err
	}
	if cfg.JanitorInterval, err = getDurationOrDefault("IDENTITY_JANITOR_INTERVAL", service.DefaultJanitorInterval); err != nil {
		return Config{}, err
	}
	if cfg.ShutdownGrace, err = getDurationOrDefault("IDENTITY_SHUTDOWN_GRACE", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.LoginRPS, err = getFloatOrDefault("IDENTITY_LOGIN_RPS", 1); err != nil {
		return Config{}, err
	}
	if cfg.LoginBurst, err = getIntOrDefault("IDENTITY_LOGIN_BURST", 5); err != nil {
		return Config{}, err
	}

	if len(cfg.AccessSecret) < jwtx.MinSecretLength {
		return Config{}, fmt.Errorf("IDENTITY_ACCESS_SECRET must be at least %d bytes", jwtx.MinSecretLength)
	}
	if len(cfg.RefreshSecret) < jwtx.MinSecretLength {
		return Config{}, fmt.Errorf("IDENTITY_REFRESH_SECRET must be at least %d bytes", jwtx.MinSecretLength)
	}

	return cfg, nil
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDurationOrDefault(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

func getIntOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getFloatOrDefault(key string, fallback float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}
