// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 FreightDesk Contributors

package main

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var configFile string

// NewRootCmd creates the root command for the FreightDesk CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "freightdesk",
		Short: "FreightDesk - shipping agency administration backend",
		Long: `FreightDesk is the administration backend for a shipping agency:
staff accounts with role-based access, and client, recipient, and
package records backed by PostgreSQL.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			// A .env file is a development convenience; absence is fine.
			_ = godotenv.Load() //nolint:errcheck
		},
	}

	// Global flag for config file path
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path")

	// Add subcommands
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newSeedCmd())

	return cmd
}
