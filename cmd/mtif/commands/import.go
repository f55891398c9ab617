// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-mtif/cmd/mtif/output"
	"github.com/olegiv/ocms-mtif/internal/config"
	"github.com/olegiv/ocms-mtif/modules/migrator"
	"github.com/olegiv/ocms-mtif/modules/migrator/sources/mtif"
)

var (
	// Import flags
	dryRun         bool
	skipExisting   bool
	noComments     bool
	noTags         bool
	noCategories   bool
	noAuthors      bool
	importWorkers  int
	defaultAuthor  string
	importTimezone string
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import an MTIF export",
	Long: `Import posts, authors, categories, tags and comments from an MTIF export.

Examples:
  mtif import export.txt                   # Import everything
  mtif import export.txt --dry-run         # Count what would be imported
  mtif import export.txt --skip-existing   # Leave posts with known slugs alone
  mtif import export.txt --no-comments     # Posts and taxonomy only`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runImport(args[0])
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Parse and count without writing")
	importCmd.Flags().BoolVar(&skipExisting, "skip-existing", false, "Skip posts whose slug already exists")
	importCmd.Flags().BoolVar(&noComments, "no-comments", false, "Do not import comments")
	importCmd.Flags().BoolVar(&noTags, "no-tags", false, "Do not import keywords as tags")
	importCmd.Flags().BoolVar(&noCategories, "no-categories", false, "Do not import categories")
	importCmd.Flags().BoolVar(&noAuthors, "no-authors", false, "Assign every post to the default author")
	importCmd.Flags().IntVarP(&importWorkers, "workers", "w", 0, "Parse workers (overrides MTIF_WORKERS)")
	importCmd.Flags().StringVar(&defaultAuthor, "default-author", "", "Login for posts without AUTHOR (overrides MTIF_DEFAULT_AUTHOR)")
	importCmd.Flags().StringVar(&importTimezone, "timezone", "", "Time zone for export dates (overrides MTIF_TIMEZONE)")
}

func runImport(path string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := migrator.New(a.db, a.logger)
	source, ok := migrator.GetSource(mtif.NewSource().Name())
	if !ok {
		return migrator.ErrSourceNotFound
	}

	cfg, err := migrator.BuildConfig(source, sourceOverrides(a.cfg, path))
	if err != nil {
		return err
	}
	if err := m.TestConnection(source.Name(), cfg); err != nil {
		return fmt.Errorf("checking export: %w", err)
	}

	result, err := m.Import(ctx, source.Name(), cfg, importOptions(a.cfg))
	if result != nil {
		printResult(result)
	}
	return err
}

// sourceOverrides maps configuration and flags onto the source's config keys.
// Flags win over the environment.
func sourceOverrides(cfg *config.Config, path string) map[string]string {
	overrides := map[string]string{
		mtif.ConfigFilePath:      path,
		mtif.ConfigDefaultAuthor: cfg.DefaultAuthor,
		mtif.ConfigTimezone:      cfg.Timezone,
		mtif.ConfigTranscode:     strconv.FormatBool(cfg.Transcode),
	}
	if defaultAuthor != "" {
		overrides[mtif.ConfigDefaultAuthor] = defaultAuthor
	}
	if importTimezone != "" {
		overrides[mtif.ConfigTimezone] = importTimezone
	}
	return overrides
}

func importOptions(cfg *config.Config) migrator.ImportOptions {
	opts := migrator.DefaultImportOptions()
	opts.ImportAuthors = !noAuthors
	opts.ImportCategories = !noCategories
	opts.ImportTags = !noTags
	opts.ImportComments = !noComments
	opts.SkipExisting = skipExisting
	opts.DryRun = dryRun
	opts.Workers = cfg.Workers
	if importWorkers > 0 {
		opts.Workers = importWorkers
	}
	opts.RateLimit = cfg.RateLimit
	return opts
}

func printResult(result *migrator.ImportResult) {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(result)
		return
	}

	title := "Import"
	if dryRun {
		title = "Import (dry run)"
	}
	output.Section(title)
	output.Count("Posts", result.PostsImported, result.PostsSkipped)
	output.Count("Comments", result.CommentsImported, result.CommentsSkipped)
	output.Count("Categories", result.CategoriesImported, result.CategoriesSkipped)
	output.Count("Tags", result.TagsImported, result.TagsSkipped)
	output.Count("Authors", result.UsersImported, result.UsersSkipped)
	if result.BatchID != "" {
		output.Row("Batch", result.BatchID)
	}

	if result.HasErrors() {
		output.Section(fmt.Sprintf("Errors (%d)", len(result.Errors)))
		for _, msg := range result.Errors {
			output.Error("%s", msg)
		}
		return
	}
	output.Success("Imported %d items", result.TotalImported())
}
