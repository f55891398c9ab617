// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"regexp"
	"strings"
)

// Field patterns run against text whose line endings are already "\n".
var patterns = struct {
	author        *regexp.Regexp
	authorEmail   *regexp.Regexp
	authorName    *regexp.Regexp
	title         *regexp.Regexp
	date          *regexp.Regexp
	status        *regexp.Regexp
	basename      *regexp.Regexp
	primaryCat    *regexp.Regexp
	category      *regexp.Regexp
	allowComments *regexp.Regexp
	allowPings    *regexp.Regexp
	convertBreaks *regexp.Regexp
	keywords      *regexp.Regexp
	body          *regexp.Regexp
	extendedBody  *regexp.Regexp
	excerpt       *regexp.Regexp
	commentStart  *regexp.Regexp
	commentEnd    *regexp.Regexp
	email         *regexp.Regexp
	ip            *regexp.Regexp
	url           *regexp.Regexp
	commentBody   *regexp.Regexp
	commentHeader *regexp.Regexp
}{
	author:        fieldPattern("AUTHOR"),
	authorEmail:   fieldPattern("AUTHOR EMAIL"),
	authorName:    fieldPattern("AUTHOR NAME"),
	title:         fieldPattern("TITLE"),
	date:          fieldPattern("DATE"),
	status:        fieldPattern("STATUS"),
	basename:      fieldPattern("BASENAME"),
	primaryCat:    fieldPattern("PRIMARY CATEGORY"),
	category:      fieldPattern("CATEGORY"),
	allowComments: fieldPattern("ALLOW COMMENTS"),
	allowPings:    fieldPattern("ALLOW PINGS"),
	convertBreaks: fieldPattern("CONVERT BREAKS"),
	keywords:      regexp.MustCompile(`(?s)(?:^|\n)KEYWORDS:(.*?)(?:\n-----(?:\n|$)|\n[A-Z][A-Z ]*:|$)`),
	body:          blockPattern("BODY"),
	extendedBody:  blockPattern("EXTENDED BODY"),
	excerpt:       blockPattern("EXCERPT"),
	commentStart:  regexp.MustCompile(`(?m)^COMMENT:[ \t]*\n`),
	commentEnd:    regexp.MustCompile(`(?m)^(?:-----|COMMENT:[ \t]*|(?:AUTHOR: [^\n]*\n)?--------)$`),
	email:         fieldPattern("EMAIL"),
	ip:            fieldPattern("IP"),
	url:           fieldPattern("URL"),
	commentBody:   regexp.MustCompile(`(?s)(?:^|\n)DATE:[^\n]*(?:\n(.*)|$)`),
	commentHeader: regexp.MustCompile(`^(?:AUTHOR|EMAIL|IP|URL):[^\n]*(?:\n|$)`),
}

// fieldPattern matches a single-line "KEY: value" field and captures the value.
func fieldPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(key) + `:[ \t]*(.*)$`)
}

// blockPattern matches a "KEY:" line followed by text up to the next "-----" line.
// An empty block ("KEY:\n-----") captures nothing.
func blockPattern(key string) *regexp.Regexp {
	return regexp.MustCompile(`(?s)(?:^|\n)` + regexp.QuoteMeta(key) + `:[ \t]*\n(?:(.*?)\n)??-----(?:\n|$)`)
}

// firstValue returns the trimmed first capture of re in s.
func firstValue(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// allValues returns the trimmed first capture of every match of re in s.
func allValues(re *regexp.Regexp, s string) []string {
	matches := re.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}
	values := make([]string, 0, len(matches))
	for _, m := range matches {
		values = append(values, strings.TrimSpace(m[1]))
	}
	return values
}

// blockValue returns the content of a bounded block.
func blockValue(re *regexp.Regexp, s string) (string, bool) {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

var lineEndings = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines converts "\r\n" and lone "\r" to "\n".
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	return lineEndings.Replace(s)
}
