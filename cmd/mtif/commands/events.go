// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-mtif/cmd/mtif/output"
	"github.com/olegiv/ocms-mtif/internal/service"
)

var (
	// Events flags
	eventsLimit int
	eventsPrune time.Duration
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Show the import event log",
	Long: `Show recent import runs, warnings and errors recorded in the events table.

Examples:
  mtif events                  # Latest 50 events
  mtif events --limit 10       # Latest 10 events
  mtif events --prune 720h     # Delete events older than 30 days`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEvents()
	},
}

func init() {
	rootCmd.AddCommand(eventsCmd)

	eventsCmd.Flags().IntVarP(&eventsLimit, "limit", "n", service.DefaultEventLimit, "Number of events to show")
	eventsCmd.Flags().DurationVar(&eventsPrune, "prune", 0, "Delete events older than this before listing")
}

func runEvents() error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := context.Background()
	svc := service.NewEventService(a.db)

	if eventsPrune > 0 {
		if err := svc.DeleteOldEvents(ctx, eventsPrune); err != nil {
			return fmt.Errorf("pruning events: %w", err)
		}
		if !jsonOutput {
			output.Success("Deleted events older than %s", eventsPrune)
		}
	}

	events, err := svc.ListEvents(ctx, eventsLimit, 0)
	if err != nil {
		return fmt.Errorf("listing events: %w", err)
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(events)
	}

	if len(events) == 0 {
		output.Info("No events recorded")
		return nil
	}

	w := tabwriter.NewWriter(output.Writer, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "TIME\tLEVEL\tCATEGORY\tMESSAGE")
	for _, e := range events {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.CreatedAt.Local().Format(time.DateTime), e.Level, e.Category, e.Message)
	}
	return w.Flush()
}
