// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-mtif/cmd/mtif/output"
	"github.com/olegiv/ocms-mtif/internal/model"
	"github.com/olegiv/ocms-mtif/modules/migrator"
	"github.com/olegiv/ocms-mtif/modules/migrator/sources/mtif"
)

var confirmDelete bool

var deleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete everything imported from MTIF exports",
	Long: `Delete the posts, comments, tags, categories and authors recorded by
previous imports. Content created in oCMS itself is never touched.

Examples:
  mtif delete          # Show what would be deleted
  mtif delete --yes    # Delete it`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runDelete()
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)

	deleteCmd.Flags().BoolVarP(&confirmDelete, "yes", "y", false, "Confirm the deletion")
}

func runDelete() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	m := migrator.New(a.db, a.logger)
	source := mtif.NewSource().Name()

	counts, err := m.ImportedCounts(ctx, source)
	if err != nil {
		return err
	}

	if !confirmDelete {
		if jsonOutput {
			return writeCountsJSON(counts)
		}
		if len(counts) == 0 {
			output.Info("Nothing has been imported")
			return nil
		}
		output.Section("Imported content")
		printCounts(counts)
		output.Warning("Run again with --yes to delete it")
		return nil
	}

	deleted, err := m.DeleteImported(ctx, source)
	if jsonOutput {
		if encErr := writeCountsJSON(deleted); encErr != nil && err == nil {
			err = encErr
		}
		return err
	}

	output.Section("Deleted")
	printCounts(deleted)
	if err != nil {
		return err
	}
	output.Success("Imported content removed")
	return nil
}

func writeCountsJSON(counts map[string]int) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(counts)
}

func printCounts(counts map[string]int) {
	output.Row("Posts", counts[model.EntityPost])
	output.Row("Comments", counts[model.EntityComment])
	output.Row("Categories", counts[model.EntityCategory])
	output.Row("Tags", counts[model.EntityTag])
	output.Row("Authors", counts[model.EntityUser])
}
