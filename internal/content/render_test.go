// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBody_NoConversion(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		filter  string
		convert bool
	}{
		{"convert disabled", "line one\nline two", "wysiwyg", false},
		{"default filter", "*not markdown*", "__default__", false},
		{"explicit zero", "a\n\nb", "0", true},
		{"blank text", "  \n ", "markdown", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := RenderBody(tt.text, tt.filter, tt.convert)
			require.NoError(t, err)
			assert.Equal(t, tt.text, got)
		})
	}
}

func TestRenderBody_Markdown(t *testing.T) {
	got, err := RenderBody("# Title\n\nSome *emphasis* here.", "markdown", true)
	require.NoError(t, err)
	assert.Contains(t, got, "<h1>Title</h1>")
	assert.Contains(t, got, "<em>emphasis</em>")
}

func TestRenderBody_MarkdownKeepsRawHTML(t *testing.T) {
	got, err := RenderBody("<div class=\"note\">hi</div>\n\ntext", "Markdown", true)
	require.NoError(t, err)
	assert.Contains(t, got, `<div class="note">hi</div>`)
}

func TestRenderBody_Smartypants(t *testing.T) {
	got, err := RenderBody(`He said "hello" -- twice...`, "markdown_with_smartypants", true)
	require.NoError(t, err)
	assert.Contains(t, got, "&ldquo;hello&rdquo;")
	assert.Contains(t, got, "&hellip;")
}

func TestRenderBody_ConvertBreaks(t *testing.T) {
	for _, filter := range []string{"1", "richtext", "textile_2"} {
		t.Run(filter, func(t *testing.T) {
			got, err := RenderBody("first line\nsecond line\n\nnext paragraph", filter, true)
			require.NoError(t, err)
			assert.Equal(t, "<p>first line<br />\nsecond line</p>\n\n<p>next paragraph</p>", got)
		})
	}
}

func TestConvertBreaks(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"single line", "hello", "<p>hello</p>"},
		{"crlf", "a\r\nb", "<p>a<br />\nb</p>"},
		{"many blank lines", "a\n\n\n\nb", "<p>a</p>\n\n<p>b</p>"},
		{"block element kept", "<blockquote>quoted</blockquote>\n\ntext", "<blockquote>quoted</blockquote>\n\n<p>text</p>"},
		{"inline element wrapped", "<em>hi</em>", "<p><em>hi</em></p>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ConvertBreaks(tt.in))
		})
	}
}

func TestSanitizeComment(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		contains    string
		notContains string
	}{
		{"script removed", `nice post<script>alert(1)</script>`, "nice post", "<script"},
		{"handler removed", `<a href="http://example.com" onclick="evil()">link</a>`, `href="http://example.com"`, "onclick"},
		{"formatting kept", "<strong>bold</strong>", "<strong>bold</strong>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeComment(tt.in)
			assert.Contains(t, got, tt.contains)
			if tt.notContains != "" {
				assert.NotContains(t, got, tt.notContains)
			}
		})
	}
}
