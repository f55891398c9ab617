// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"strings"
	"time"
)

// dateLayouts lists the DATE formats seen in Movable Type and TypePad exports,
// most common first.
var dateLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04 PM",
	"1/2/2006 15:04",
	"1/2/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02",
}

// ParseDate parses an MTIF DATE value. Values without an offset are read in
// loc, or in time.Local when loc is nil.
func ParseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
