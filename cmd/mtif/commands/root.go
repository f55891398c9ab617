// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package commands implements the mtif command line.
package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-mtif/internal/version"
)

var (
	// Global flags
	dbPath     string
	envFile    string
	jsonOutput bool

	buildInfo version.Info
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "mtif",
	Short: "Import Movable Type exports into oCMS",
	Long: `mtif reads Movable Type Import Format (MTIF) exports and writes their
posts, authors, categories, tags and comments into an oCMS database.

Every imported row is recorded under a batch so the import can be undone
with "mtif delete".

Configuration is read from MTIF_* environment variables and an optional
.env file.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute(info version.Info) {
	buildInfo = info
	rootCmd.Version = info.String()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (overrides MTIF_DB_PATH)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load if present")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}
