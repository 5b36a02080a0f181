// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package main

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/freightdesk/freightdesk/internal/auth"
	authpg "github.com/freightdesk/freightdesk/internal/auth/postgres"
	"github.com/freightdesk/freightdesk/internal/config"
	"github.com/freightdesk/freightdesk/internal/shipping"
	shippg "github.com/freightdesk/freightdesk/internal/shipping/postgres"
	"github.com/freightdesk/freightdesk/internal/store"
)

// Default timeout for seed command.
const defaultSeedTimeout = 30 * time.Second

// seedLocationID is a fixed ULID so repeated seeds hit the primary key
// instead of inserting duplicates.
const seedLocationID = "01J0000000000000000000SEED"

// seedConfig holds configuration for the seed command.
type seedConfig struct {
	adminUser     string
	adminPassword string
	timeout       time.Duration
}

// newSeedCmd creates the seed subcommand.
func newSeedCmd() *cobra.Command {
	cfg := &seedConfig{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the initial supervisor account and agency location",
		Long: `Creates the first supervisor account and the main agency location.
This command is idempotent - it will not create duplicates if run multiple times.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd, args, cfg)
		},
	}

	cmd.Flags().StringVar(&cfg.adminUser, "admin-user", "admin", "username for the initial supervisor")
	cmd.Flags().StringVar(&cfg.adminPassword, "admin-password", "", "password for the initial supervisor")
	cmd.Flags().DurationVar(&cfg.timeout, "timeout", defaultSeedTimeout, "timeout for database operations (e.g., 30s, 1m)")

	return cmd
}

func runSeed(cmd *cobra.Command, _ []string, cfg *seedConfig) error {
	if cfg.adminPassword == "" {
		return oops.Code("CONFIG_INVALID").Errorf("--admin-password is required")
	}

	databaseURL, err := config.DatabaseURL()
	if err != nil {
		return err
	}

	// Use cmd.Context() to respect SIGINT/SIGTERM signals
	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.timeout)
	defer cancel()

	cmd.Println("Connecting to database...")
	pool, err := store.Connect(ctx, databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	authSvc, err := auth.NewService(
		authpg.NewUserRepository(pool),
		authpg.NewSessionRepository(pool),
		auth.NewArgon2idHasher(),
	)
	if err != nil {
		return err
	}

	if _, err := authSvc.Register(ctx, cfg.adminUser, cfg.adminPassword, auth.RoleSupervisor); err != nil {
		if errors.Is(err, auth.ErrDuplicateUsername) {
			cmd.Printf("Supervisor %q already exists, skipping\n", cfg.adminUser)
		} else {
			return oops.Code("SEED_FAILED").
				With("operation", "create supervisor").
				Wrap(err)
		}
	} else {
		cmd.Printf("Supervisor %q created\n", cfg.adminUser)
	}

	if err := seedMainLocation(ctx, shippg.NewLocationRepository(pool), cmd); err != nil {
		return err
	}

	cmd.Println("Seed completed")
	return nil
}

// seedMainLocation inserts the main agency location under a well-known
// ID; a primary key conflict means it is already seeded.
func seedMainLocation(ctx context.Context, locations shipping.LocationRepository, cmd *cobra.Command) error {
	id, err := ulid.Parse(seedLocationID)
	if err != nil {
		return oops.Code("SEED_FAILED").With("operation", "parse seed location ID").Wrap(err)
	}

	location := &shipping.Location{
		ID:        id,
		Name:      "Main Office",
		Address:   "Agency headquarters",
		CreatedAt: time.Now().UTC(),
	}

	if err := locations.Create(ctx, location); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			cmd.Println("Main location already exists, skipping")
			return nil
		}
		slog.Error("seed location insert failed", "location_id", seedLocationID, "error", err)
		return oops.Code("SEED_FAILED").With("operation", "create main location").Wrap(err)
	}

	cmd.Println("Main location created")
	return nil
}
