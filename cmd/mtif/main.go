// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Command mtif imports Movable Type export files into an oCMS database.
package main

import (
	"github.com/olegiv/ocms-mtif/cmd/mtif/commands"
	"github.com/olegiv/ocms-mtif/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	commands.Execute(version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	})
}
