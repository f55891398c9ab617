// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-mtif/cmd/mtif/output"
	mt "github.com/olegiv/ocms-mtif/internal/mtif"
)

var encodingCmd = &cobra.Command{
	Use:   "encoding <file>",
	Short: "Detect the text encoding of an MTIF export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEncoding(args[0])
	},
}

func init() {
	rootCmd.AddCommand(encodingCmd)
}

func runEncoding(path string) error {
	p := mt.NewParser(path)
	defer func() { _ = p.Close() }()
	if err := p.Err(); err != nil {
		return fmt.Errorf("opening export: %w", err)
	}

	enc := p.DetectEncoding()
	if enc == "" {
		return fmt.Errorf("could not read %s", path)
	}

	if jsonOutput {
		fmt.Printf("{\"file\":%q,\"encoding\":%q}\n", path, enc)
		return nil
	}
	output.Success("%s: %s", path, enc)
	if enc != mt.EncodingUTF8 && enc != mt.EncodingASCII {
		output.Muted("Set MTIF_TRANSCODE=true to convert it to UTF-8 during import.")
	}
	return nil
}
