// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := Writer
	Writer = &buf
	t.Cleanup(func() { Writer = prev })
	return &buf
}

func TestMessages(t *testing.T) {
	buf := capture(t)

	Success("imported %d posts", 3)
	Warning("careful")
	Error("failed: %s", "boom")
	Info("note")

	out := buf.String()
	assert.Contains(t, out, "imported 3 posts")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "failed: boom")
	assert.Contains(t, out, "note")
}

func TestCount(t *testing.T) {
	buf := capture(t)

	Count("Posts", 5, 0)
	assert.Contains(t, buf.String(), "5")
	assert.NotContains(t, buf.String(), "skipped")

	buf.Reset()
	Count("Posts", 5, 2)
	assert.Contains(t, buf.String(), "2 skipped")
}

func TestSection(t *testing.T) {
	buf := capture(t)
	Section("Import")
	assert.Contains(t, buf.String(), "Import")
	assert.Contains(t, buf.String(), "══════")
}
