// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"os"
	"path/filepath"
	"testing"
)

const samplePost = `AUTHOR: jdoe
TITLE: Hello World
BASENAME: hello_world
STATUS: Publish
ALLOW COMMENTS: 1
CONVERT BREAKS: __default__
ALLOW PINGS: 0
PRIMARY CATEGORY: News
CATEGORY: News
CATEGORY: Tech
CATEGORY: News
DATE: 01/31/2002 03:31:05 PM
-----
BODY:
This is the body.
Second line.
-----
EXTENDED BODY:
-----
EXCERPT:
Short excerpt.
-----
KEYWORDS:
go, parsing , ,mtif
-----
COMMENT:
AUTHOR: Alice
EMAIL: alice@example.com
IP: 10.0.0.1
URL: http://alice.example.com
DATE: 02/01/2002 10:00:00 AM
First comment.
-----
COMMENT:
AUTHOR: Bob
DATE: 02/02/2002 11:30:00 PM
Second comment
spans lines.
-----
COMMENT:
AUTHOR: Carol
No date here.
-----
`

// writeExport writes content to a temporary export file and returns its path.
func writeExport(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "export.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing export: %v", err)
	}
	return path
}
