// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package output prints styled CLI messages.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	colorSuccess = lipgloss.Color("#10B981")
	colorWarning = lipgloss.Color("#F59E0B")
	colorError   = lipgloss.Color("#EF4444")
	colorInfo    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")
	colorPrimary = lipgloss.Color("#7C3AED")

	successStyle = lipgloss.NewStyle().Foreground(colorSuccess).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarning).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(colorInfo)
	mutedStyle   = lipgloss.NewStyle().Foreground(colorMuted)
	primaryStyle = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true)
	labelStyle   = lipgloss.NewStyle().Width(14)
)

// Writer receives all output. Tests swap it for a buffer.
var Writer io.Writer = os.Stdout

// Success prints a success message
func Success(format string, args ...any) {
	printIcon(successStyle, "✓", format, args...)
}

// Warning prints a warning message
func Warning(format string, args ...any) {
	printIcon(warningStyle, "⚠", format, args...)
}

// Error prints an error message
func Error(format string, args ...any) {
	printIcon(errorStyle, "✗", format, args...)
}

// Info prints an info message
func Info(format string, args ...any) {
	printIcon(infoStyle, "ℹ", format, args...)
}

// Muted prints a muted message
func Muted(format string, args ...any) {
	_, _ = fmt.Fprintln(Writer, mutedStyle.Render(fmt.Sprintf(format, args...)))
}

// Section prints a section header
func Section(title string) {
	_, _ = fmt.Fprintln(Writer)
	_, _ = fmt.Fprintln(Writer, primaryStyle.Render(title))
	_, _ = fmt.Fprintln(Writer, mutedStyle.Render(strings.Repeat("═", lipgloss.Width(title))))
}

// Row prints a label and value pair aligned with other rows.
func Row(label string, value any) {
	_, _ = fmt.Fprintf(Writer, "  %s %v\n", mutedStyle.Render(labelStyle.Render(label)), value)
}

// Count prints an imported/skipped pair for one entity type. Zero skips are
// left out.
func Count(label string, imported, skipped int) {
	value := fmt.Sprintf("%d", imported)
	if skipped > 0 {
		value += mutedStyle.Render(fmt.Sprintf(" (%d skipped)", skipped))
	}
	Row(label, value)
}

func printIcon(style lipgloss.Style, icon, format string, args ...any) {
	_, _ = fmt.Fprintf(Writer, "%s %s\n", style.Render(icon), fmt.Sprintf(format, args...))
}
