// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if jsonOutput {
			return json.NewEncoder(os.Stdout).Encode(map[string]string{
				"version":    buildInfo.Version,
				"git_commit": buildInfo.GitCommit,
				"build_time": buildInfo.BuildTime,
			})
		}
		fmt.Printf("mtif %s\n", buildInfo)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
