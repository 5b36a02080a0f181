// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/freightdesk/freightdesk/internal/access"
	"github.com/freightdesk/freightdesk/internal/api"
	"github.com/freightdesk/freightdesk/internal/auth"
	authpg "github.com/freightdesk/freightdesk/internal/auth/postgres"
	"github.com/freightdesk/freightdesk/internal/config"
	"github.com/freightdesk/freightdesk/internal/logging"
	"github.com/freightdesk/freightdesk/internal/observability"
	"github.com/freightdesk/freightdesk/internal/shipping"
	shippg "github.com/freightdesk/freightdesk/internal/shipping/postgres"
	"github.com/freightdesk/freightdesk/internal/store"
)

const (
	shutdownTimeout      = 10 * time.Second
	sessionSweepInterval = time.Hour
)

// newServeCmd creates the serve subcommand.
func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long: `Start the HTTP API server together with the metrics and health
endpoints. Requires DATABASE_URL and an up-to-date schema; run
"freightdesk migrate up" first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd)
		},
	}

	config.RegisterFlags(cmd.Flags())

	return cmd
}

func runServe(cmd *cobra.Command) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("freightdesk", version, cfg.Log.Format, logging.ParseLevel(cfg.Log.Level))

	databaseURL, err := config.DatabaseURL()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := ensureSchemaCurrent(databaseURL); err != nil {
		return err
	}

	// Repositories and services.
	userRepo := authpg.NewUserRepository(pool)
	sessionRepo := authpg.NewSessionRepository(pool)
	authSvc, err := auth.NewService(userRepo, sessionRepo, auth.NewArgon2idHasher())
	if err != nil {
		return err
	}

	shipSvc, err := shipping.NewService(
		shippg.NewClientRepository(pool),
		shippg.NewRecipientRepository(pool),
		shippg.NewPackageRepository(pool),
		shippg.NewLocationRepository(pool),
		shippg.NewHistoryRepository(pool),
		shippg.NewTransactor(pool),
	)
	if err != nil {
		return err
	}

	// Observability server carries the metrics registry; the API router
	// records into it.
	var ready atomic.Bool
	obsServer := observability.NewServer(cfg.Observability.Addr, ready.Load)
	obsErrCh, err := obsServer.Start()
	if err != nil {
		return oops.With("operation", "start observability server").Wrap(err)
	}

	router := api.NewRouter(authSvc, shipSvc, access.NewGuard(), obsServer.Metrics())
	apiServer := api.NewServer(cfg.Server.Addr, router)
	apiErrCh, err := apiServer.Start()
	if err != nil {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer stopCancel()
		_ = obsServer.Stop(stopCtx) //nolint:errcheck
		return oops.With("operation", "start api server").Wrap(err)
	}
	ready.Store(true)

	go sweepSessions(ctx, sessionRepo)

	slog.Info("freightdesk ready",
		"api_addr", apiServer.Addr(),
		"observability_addr", obsServer.Addr(),
	)
	cmd.Println("FreightDesk server started on " + apiServer.Addr())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case serveErr = <-apiErrCh:
	case serveErr = <-obsErrCh:
	}

	ready.Store(false)
	cancel()

	stopCtx, stopCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stopCancel()

	if err := apiServer.Stop(stopCtx); err != nil {
		slog.Error("api server shutdown failed", "error", err)
	}
	if err := obsServer.Stop(stopCtx); err != nil {
		slog.Error("observability server shutdown failed", "error", err)
	}

	if serveErr != nil {
		return oops.With("operation", "serve").Wrap(serveErr)
	}
	return nil
}

// ensureSchemaCurrent refuses to serve against a database with pending
// migrations.
func ensureSchemaCurrent(databaseURL string) error {
	migrator, err := store.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := migrator.Close(); closeErr != nil {
			slog.Warn("migrator close failed", "error", closeErr)
		}
	}()

	pending, err := migrator.PendingMigrations()
	if err != nil {
		return err
	}
	if len(pending) > 0 {
		return oops.Code("MIGRATION_PENDING").
			With("pending", len(pending)).
			Errorf("%d pending migration(s); run \"freightdesk migrate up\"", len(pending))
	}
	return nil
}

// sweepSessions periodically removes expired sessions so the table
// does not grow without bound.
func sweepSessions(ctx context.Context, sessions auth.SessionRepository) {
	ticker := time.NewTicker(sessionSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sessions.DeleteExpired(ctx)
			if err != nil {
				slog.Error("session sweep failed", "error", err)
				continue
			}
			if removed > 0 {
				slog.Info("expired sessions removed", "count", removed)
			}
		}
	}
}
