// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package content turns imported post and comment text into stored HTML.
package content

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// Text filters with dedicated renderers.
const (
	FilterMarkdown            = "markdown"
	FilterMarkdownSmartypants = "markdown_with_smartypants"
	FilterNone                = "0"
)

var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)
	smartypants = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Typographer),
		goldmark.WithRendererOptions(html.WithUnsafe()),
	)

	// commentSanitizer allows the safe subset of HTML expected in reader comments.
	commentSanitizer = bluemonday.UGCPolicy()

	paragraphSplit = regexp.MustCompile(`\n{2,}`)
	blockStart     = regexp.MustCompile(`(?i)^<(?:p|div|h[1-6]|ul|ol|li|dl|table|pre|blockquote|form|hr|address|fieldset|noscript|script|style|figure)[\s/>]`)
)

// RenderBody converts post text to HTML according to its text filter. When
// convert is false the text is returned unchanged.
func RenderBody(text, filter string, convert bool) (string, error) {
	if !convert || filter == FilterNone || strings.TrimSpace(text) == "" {
		return text, nil
	}

	switch strings.ToLower(strings.TrimSpace(filter)) {
	case FilterMarkdown:
		return renderMarkdown(markdown, text)
	case FilterMarkdownSmartypants:
		return renderMarkdown(smartypants, text)
	default:
		return ConvertBreaks(text), nil
	}
}

func renderMarkdown(md goldmark.Markdown, text string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// ConvertBreaks wraps blank-line separated chunks in paragraphs and turns the
// remaining single newlines into line breaks. Chunks that already start with a
// block-level element are kept as they are.
func ConvertBreaks(text string) string {
	text = strings.TrimSpace(strings.ReplaceAll(text, "\r\n", "\n"))
	if text == "" {
		return ""
	}

	chunks := paragraphSplit.Split(text, -1)
	out := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		if blockStart.MatchString(chunk) {
			out = append(out, chunk)
			continue
		}
		out = append(out, "<p>"+strings.ReplaceAll(chunk, "\n", "<br />\n")+"</p>")
	}
	return strings.Join(out, "\n\n")
}

// SanitizeComment strips unsafe markup from a reader comment.
func SanitizeComment(body string) string {
	return strings.TrimSpace(commentSanitizer.Sanitize(body))
}
