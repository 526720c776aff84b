// Package app assembles the identity service: config, logger, store,
// services, router and lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	identityhttp "github.com/hallowdale/identity/internal/identity/http"
	"github.com/hallowdale/identity/internal/identity/service"
	"github.com/hallowdale/identity/internal/identity/store"
	"github.com/hallowdale/identity/internal/identity/store/drivers/sqlite"
	"github.com/hallowdale/identity/pkg/jwtx"
	"github.com/hallowdale/identity/pkg/slogx"
)

// Version is stamped via -ldflags at release time.
var Version = "dev"

type Application struct {
	cfg     Config
	log     *slog.Logger
	store   store.Store
	janitor *service.Janitor
	server  *http.Server
}

// New builds the full application graph. Nothing is started yet.
func New(cfg Config) (*Application, error) {
	log := slogx.New(slogx.Config{
		Service: "identity",
		Version: Version,
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	st, err := sqlite.NewStore(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := st.ApplyMigrations(); err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	codec, err := jwtx.NewCodec(cfg.AccessSecret, cfg.RefreshSecret, cfg.AccessTTL, cfg.RefreshTTL, cfg.Issuer)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("token codec: %w", err)
	}

	revocations := service.NewRevocationService(st, log)

	router := identityhttp.NewRouter(identityhttp.RouterConfig{
		Codec:       codec,
		Auth:        service.NewAuthService(st, codec, log),
		Sessions:    service.NewSessionService(st, codec, revocations, log),
		Revocations: revocations,
		Users:       service.NewUserService(st, log),
		Store:       st,
		Log:         log,
		LoginRPS:    cfg.LoginRPS,
		LoginBurst:  cfg.LoginBurst,
	})

	return &Application{
		cfg:     cfg,
		log:     log,
		store:   st,
		janitor: service.NewJanitor(revocations, cfg.JanitorInterval, log),
		server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           router,
			ReadHeaderTimeout: 5 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
	}, nil
}

// Run serves until ctx is cancelled, then shuts down within the
// configured grace period.
func (a *Application) Run(ctx context.Context) error {
	a.janitor.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.Info("listening", "addr", a.cfg.Addr)
		if err := a.server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		a.shutdown(context.Background())
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownGrace)
	defer cancel()
	return a.shutdown(shutdownCtx)
}

func (a *Application) shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	a.janitor.Stop()
	if cerr := a.store.Close(); err == nil {
		err = cerr
	}
	return err
}
