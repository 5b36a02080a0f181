// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package main

import (
	"fmt"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/freightdesk/freightdesk/internal/config"
	"github.com/freightdesk/freightdesk/internal/store"
)

// newMigrateCmd creates the migrate subcommand with its actions.
func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database migrations",
		Long:  `Apply, roll back, and inspect schema migrations against the PostgreSQL database.`,
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			RunE:  runMigrateUp,
		},
		&cobra.Command{
			Use:   "down",
			Short: "Roll back all migrations",
			RunE:  runMigrateDown,
		},
		&cobra.Command{
			Use:   "status",
			Short: "Show applied and pending migrations",
			RunE:  runMigrateStatus,
		},
		&cobra.Command{
			Use:   "force <version>",
			Short: "Force the schema version without running migrations",
			Long: `Set the schema version record directly, clearing a dirty state left by
a failed migration. Use only after fixing the database by hand.`,
			Args: cobra.ExactArgs(1),
			RunE: runMigrateForce,
		},
	)

	return cmd
}

// openMigrator builds a Migrator from DATABASE_URL.
func openMigrator() (*store.Migrator, error) {
	databaseURL, err := config.DatabaseURL()
	if err != nil {
		return nil, err
	}
	return store.NewMigrator(databaseURL)
}

func closeMigrator(cmd *cobra.Command, m *store.Migrator) {
	if err := m.Close(); err != nil {
		cmd.PrintErrln("warning: migrator close failed:", err)
	}
}

func runMigrateUp(cmd *cobra.Command, _ []string) error {
	migrator, err := openMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(cmd, migrator)

	cmd.Println("Applying migrations...")
	if err := migrator.Up(); err != nil {
		return err
	}

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	cmd.Printf("Schema is at version %d (dirty=%t)\n", version, dirty)
	return nil
}

func runMigrateDown(cmd *cobra.Command, _ []string) error {
	migrator, err := openMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(cmd, migrator)

	cmd.Println("Rolling back all migrations...")
	if err := migrator.Down(); err != nil {
		return err
	}

	cmd.Println("Schema rolled back")
	return nil
}

func runMigrateStatus(cmd *cobra.Command, _ []string) error {
	migrator, err := openMigrator()
	if err != nil {
		return err
	}
	defer closeMigrator(cmd, migrator)

	version, dirty, err := migrator.Version()
	if err != nil {
		return err
	}
	if version == 0 {
		cmd.Println("Schema version: none")
	} else {
		cmd.Printf("Schema version: %d (dirty=%t)\n", version, dirty)
	}

	applied, err := migrator.AppliedMigrations()
	if err != nil {
		return err
	}
	pending, err := migrator.PendingMigrations()
	if err != nil {
		return err
	}

	printMigrationList(cmd, "Applied", applied)
	printMigrationList(cmd, "Pending", pending)
	return nil
}

func printMigrationList(cmd *cobra.Command, label string, versions []uint) {
	if len(versions) == 0 {
		cmd.Printf("%s: none\n", label)
		return
	}
	cmd.Printf("%s:\n", label)
	for _, v := range versions {
		name, err := store.MigrationName(v)
		if err != nil {
			name = fmt.Sprintf("%06d_unknown", v)
		}
		cmd.Printf("  %s\n", name)
	}
}

func runMigrateForce(cmd *cobra.Command, args []string) error {
	version, err := parseForceVersion(args[0])
	if err != nil {
		return err
	}

	migrator, migErr := openMigrator()
	if migErr != nil {
		return migErr
	}
	defer closeMigrator(cmd, migrator)

	if err := migrator.Force(version); err != nil {
		return err
	}

	cmd.Printf("Schema version forced to %d\n", version)
	return nil
}

// parseForceVersion parses a non-negative migration version argument.
func parseForceVersion(s string) (int, error) {
	var version int
	if _, err := fmt.Sscanf(s, "%d", &version); err != nil {
		return 0, oops.Code("INVALID_VERSION").
			With("input", s).
			Errorf("version must be an integer")
	}
	if version < 0 {
		return 0, oops.Code("INVALID_VERSION").
			With("input", s).
			Errorf("version cannot be negative")
	}
	return version, nil
}
