// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"testing"
	"time"
)

func TestParseComment(t *testing.T) {
	post := NewPost()
	raw := "AUTHOR: Alice\nEMAIL: alice@example.com\nIP: 127.0.0.1\nURL: https://alice.example\n" +
		"DATE: 12/24/2005 08:15:00 PM\nMerry\nChristmas"

	c := ParseComment(raw, post)

	if c.Author != "Alice" {
		t.Errorf("Author = %q, want %q", c.Author, "Alice")
	}
	if c.Email != "alice@example.com" {
		t.Errorf("Email = %q, want %q", c.Email, "alice@example.com")
	}
	if c.IP != "127.0.0.1" {
		t.Errorf("IP = %q, want %q", c.IP, "127.0.0.1")
	}
	if c.URL != "https://alice.example" {
		t.Errorf("URL = %q, want %q", c.URL, "https://alice.example")
	}
	if c.Body != "Merry\nChristmas" {
		t.Errorf("Body = %q, want %q", c.Body, "Merry\nChristmas")
	}
	want := time.Date(2005, 12, 24, 20, 15, 0, 0, time.Local)
	if !c.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", c.Date, want)
	}
	if c.Post() != post {
		t.Error("Post() should return the owning post")
	}
}

func TestParseComment_MissingDate(t *testing.T) {
	c := ParseComment("AUTHOR: Anonymous\nURL: http://example.com\nHello there", nil)

	if c.HasDate() {
		t.Errorf("HasDate() = true, want false (Date = %v)", c.Date)
	}
	if c.Body != "Hello there" {
		t.Errorf("Body = %q, want %q", c.Body, "Hello there")
	}
	if c.Post() != nil {
		t.Error("Post() should be nil")
	}
}

func TestParseComment_UnparseableDate(t *testing.T) {
	c := ParseComment("AUTHOR: x\nDATE: yesterday\nbody", nil)

	if c.HasDate() {
		t.Error("HasDate() = true for an unparseable date")
	}
	if c.Body != "body" {
		t.Errorf("Body = %q, want %q", c.Body, "body")
	}
}

func TestParseComment_OptionalFields(t *testing.T) {
	c := ParseComment("DATE: 01/01/2010 12:00:00 AM\nonly a body", nil)

	if c.Author != "" || c.Email != "" || c.IP != "" || c.URL != "" {
		t.Errorf("expected empty optional fields, got %+v", c)
	}
	if c.Body != "only a body" {
		t.Errorf("Body = %q, want %q", c.Body, "only a body")
	}
	if !c.HasDate() {
		t.Error("HasDate() = false, want true")
	}
}

func TestComment_SetPost(t *testing.T) {
	a, b := NewPost(), NewPost()
	c := a.NewComment()
	c.SetPost(b)

	if c.Post() != b {
		t.Error("SetPost did not rebind the comment")
	}
}
