package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/dmoreno/invitado/internal/auth"
	"github.com/dmoreno/invitado/internal/config"
	"github.com/dmoreno/invitado/internal/preview"
	"github.com/dmoreno/invitado/internal/remote"
	"github.com/dmoreno/invitado/internal/rsvp"
	"github.com/dmoreno/invitado/internal/server"
	"github.com/dmoreno/invitado/internal/storage/sqlite"
	"github.com/dmoreno/invitado/internal/store"
	"github.com/dmoreno/invitado/pkg/logging"
)

func main() {
	logging.Setup()
	cfg := config.Load()

	if cfg.JWTSecret == "" || cfg.AdminHash == "" {
		slog.Error("JWT_SECRET and ADMIN_PASSWORD_HASH must be set")
		os.Exit(1)
	}

	cache, err := sqlite.New(cfg.DBPath)
	if err != nil {
		slog.Error("failed to open local cache", "error", err)
		os.Exit(1)
	}
	defer cache.Close()
	slog.Info("local cache ready", "database", cfg.DBPath)

	var rc remote.Client
	if cfg.RemoteBaseURL != "" {
		rc = remote.NewHTTPClient(cfg.RemoteBaseURL, cfg.RemoteToken)
	} else {
		// No remote configured: run against an in-memory document store so
		// local development works without credentials.
		slog.Warn("REMOTE_BASE_URL not set, using in-memory document store")
		rc = remote.NewMemory()
	}

	storeOpts := []store.Option{
		store.WithPushErrorFunc(func(err error) {
			slog.Error("remote push failed", "error", err)
		}),
	}
	if cfg.MaxDocBytes > 0 {
		storeOpts = append(storeOpts, store.WithMaxDocumentBytes(cfg.MaxDocBytes))
	}
	st := store.New(cfg.EventID, cache, rc, storeOpts...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loadCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	if err := st.LoadFromRemote(loadCtx); err != nil {
		// Cached/default state still serves the page; keep going.
		slog.Warn("initial remote load failed, serving cached state", "error", err)
	}
	cancel()

	bus := preview.NewBus()
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, 24*time.Hour)
	authenticator := auth.NewPasswordAuthenticator(cfg.AdminHash)

	_, router := server.New(server.Options{
		Store:         st,
		RSVP:          rsvp.New(st),
		Bus:           bus,
		JWT:           jwtManager,
		Authenticator: authenticator,
		BaseURL:       cfg.BaseURL,
		CORSOrigins:   []string{cfg.CORSOrigins},
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h2c.NewHandler(router, &http2.Server{}),
	}

	go func() {
		slog.Info("server starting", "address", srv.Addr, "event", cfg.EventID)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
	st.Flush()
	slog.Info("server stopped")
}
