// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import "time"

// Comment is a single comment left on a Post.
type Comment struct {
	Author string
	Email  string
	URL    string
	IP     string
	Date   time.Time // Zero when the export has no DATE line
	Body   string

	post *Post
}

// ParseComment parses a raw COMMENT block and binds the result to post.
func ParseComment(raw string, post *Post) *Comment {
	c := &Comment{post: post}
	c.ParseString(raw)
	return c
}

// ParseString fills the comment from a raw COMMENT block. Every field is
// optional; missing fields keep their current value.
func (c *Comment) ParseString(raw string) {
	raw = normalizeNewlines(raw)

	if v, ok := firstValue(patterns.author, raw); ok {
		c.Author = v
	}
	if v, ok := firstValue(patterns.email, raw); ok {
		c.Email = v
	}
	if v, ok := firstValue(patterns.ip, raw); ok {
		c.IP = v
	}
	if v, ok := firstValue(patterns.url, raw); ok {
		c.URL = v
	}

	if v, ok := firstValue(patterns.date, raw); ok {
		if t, ok := ParseDate(v, c.location()); ok {
			c.Date = t
		}
		if m := patterns.commentBody.FindStringSubmatch(raw); m != nil {
			c.Body = m[1]
		}
		return
	}

	// No DATE line: the body starts after the leading header lines.
	rest := raw
	for {
		loc := patterns.commentHeader.FindStringIndex(rest)
		if loc == nil {
			break
		}
		rest = rest[loc[1]:]
	}
	c.Body = rest
}

// location is the owning post's time zone, or time.Local for a detached
// comment.
func (c *Comment) location() *time.Location {
	if c.post == nil {
		return time.Local
	}
	return c.post.Location()
}

// HasDate reports whether the comment carries a date.
func (c *Comment) HasDate() bool {
	return !c.Date.IsZero()
}

// Post returns the post the comment was left on.
func (c *Comment) Post() *Post {
	return c.post
}

// SetPost binds the comment to a post.
func (c *Comment) SetPost(p *Post) {
	c.post = p
}
