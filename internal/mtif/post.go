// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"strings"
	"time"
)

// Status is the publication status of a post. Values other than the two
// constants are kept verbatim from the export.
type Status string

const (
	StatusDraft   Status = "draft"
	StatusPublish Status = "publish"
)

// ParseStatus maps an MTIF STATUS value to a Status.
func ParseStatus(value string) Status {
	value = strings.TrimSpace(value)
	switch strings.ToLower(value) {
	case "draft":
		return StatusDraft
	case "publish", "":
		return StatusPublish
	default:
		return Status(value)
	}
}

// IsDraft reports whether the status is a draft.
func (s Status) IsDraft() bool {
	return s == StatusDraft
}

// Text filters that mean "leave line breaks alone".
const (
	FilterWYSIWYG = "wysiwyg"
	FilterDefault = "__default__"
)

// DefaultPostType is the post type of every parsed record.
const DefaultPostType = "post"

// Post is a single blog post from an MTIF export.
type Post struct {
	ID              int64     // Assigned by the importer
	Date            time.Time // Construction time unless DATE parses
	Author          Author
	Title           string
	PrimaryCategory string
	Categories      []string // Secondary categories in order of appearance
	Keywords        []string
	Status          Status
	Basename        string // URL alias
	AllowComments   bool
	AllowPings      bool
	ConvertBreaks   bool
	TextFilter      string // Raw CONVERT BREAKS value
	RawBody         string
	ExtendedBody    string
	RawExcerpt      string
	PostType        string
	MenuOrder       int

	comments []*Comment
	loc      *time.Location
}

// NewPost returns an empty published post dated now.
func NewPost() *Post {
	return &Post{
		Date:     time.Now(),
		Status:   StatusPublish,
		PostType: DefaultPostType,
	}
}

// ParsePost builds a post from the raw text of one record, reading dates in
// time.Local.
func ParsePost(raw string) *Post {
	return ParsePostIn(raw, nil)
}

// ParsePostIn builds a post from the raw text of one record, reading dates
// without an offset in loc.
func ParsePostIn(raw string, loc *time.Location) *Post {
	p := NewPost()
	p.loc = loc
	if raw != "" {
		p.ParseString(raw)
	}
	return p
}

// Location returns the time zone the post and its comments read dates in.
func (p *Post) Location() *time.Location {
	if p.loc == nil {
		return time.Local
	}
	return p.loc
}

// ParseString extracts every field it can find in raw. Fields are independent
// of each other; a missing field leaves the current value in place.
func (p *Post) ParseString(raw string) {
	text := normalizeNewlines(raw)
	header := text
	if loc := patterns.commentStart.FindStringIndex(text); loc != nil {
		header = text[:loc[0]]
	}

	if v, ok := firstValue(patterns.author, header); ok {
		p.Author = NewAuthor(v)
	}
	if v, ok := firstValue(patterns.authorEmail, header); ok {
		p.Author.Email = v
	}
	if v, ok := firstValue(patterns.authorName, header); ok {
		p.Author.DisplayName = v
	}
	if v, ok := firstValue(patterns.title, header); ok {
		p.Title = v
	}
	if v, ok := firstValue(patterns.date, header); ok {
		if t, ok := ParseDate(v, p.Location()); ok {
			p.Date = t
		}
	}
	if v, ok := firstValue(patterns.status, header); ok {
		p.Status = ParseStatus(v)
	}
	if v, ok := firstValue(patterns.basename, header); ok {
		p.Basename = v
	}
	if v, ok := firstValue(patterns.primaryCat, header); ok {
		p.PrimaryCategory = v
	}
	p.Categories = append(p.Categories, allValues(patterns.category, header)...)

	if m := patterns.keywords.FindStringSubmatch(header); m != nil {
		p.Keywords = append(p.Keywords, splitKeywords(m[1])...)
	}

	if v, ok := blockValue(patterns.body, header); ok {
		p.RawBody = v
	}
	if v, ok := blockValue(patterns.extendedBody, header); ok {
		p.ExtendedBody = v
	}
	if v, ok := blockValue(patterns.excerpt, header); ok {
		p.RawExcerpt = v
	}

	if v, ok := firstValue(patterns.allowComments, header); ok {
		p.AllowComments = v == "1"
	}
	if v, ok := firstValue(patterns.allowPings, header); ok {
		p.AllowPings = v == "1"
	}
	if v, ok := firstValue(patterns.convertBreaks, header); ok {
		p.TextFilter = v
		p.ConvertBreaks = v != FilterWYSIWYG && v != FilterDefault
	}

	p.parseComments(text)
}

// parseComments scans text for COMMENT blocks. Each iteration starts where the
// previous comment body ended; the scan stops if it cannot move forward.
func (p *Post) parseComments(text string) {
	offset := 0
	for offset < len(text) {
		loc := patterns.commentStart.FindStringIndex(text[offset:])
		if loc == nil {
			return
		}
		start := offset + loc[1]

		end := len(text)
		if e := patterns.commentEnd.FindStringIndex(text[start:]); e != nil {
			end = start + e[0]
		}

		body := strings.TrimSuffix(text[start:end], "\n")
		p.comments = append(p.comments, ParseComment(body, p))

		next := start + len(body)
		if next <= offset {
			return
		}
		offset = next
	}
}

// splitKeywords splits a KEYWORDS payload on commas and line breaks. A value
// on the KEYWORDS line itself wins over a block payload on the following lines.
func splitKeywords(payload string) []string {
	first, rest, _ := strings.Cut(payload, "\n")
	if strings.TrimSpace(first) == "" {
		payload = rest
	} else {
		payload = first
	}

	var keywords []string
	for _, k := range strings.FieldsFunc(payload, isKeywordSeparator) {
		if k = strings.TrimSpace(k); k != "" {
			keywords = append(keywords, k)
		}
	}
	return keywords
}

func isKeywordSeparator(r rune) bool {
	return r == ',' || r == '\n'
}

// Body returns the full text of the post: the extended body when there is
// one, the body otherwise.
func (p *Post) Body() string {
	if p.ExtendedBody != "" {
		return normalizeNewlines(p.ExtendedBody)
	}
	return normalizeNewlines(p.RawBody)
}

// Excerpt returns the teaser text: the body when an extended body exists,
// the EXCERPT block otherwise.
func (p *Post) Excerpt() string {
	if p.ExtendedBody != "" {
		return normalizeNewlines(p.RawBody)
	}
	return normalizeNewlines(p.RawExcerpt)
}

// Comments returns the post's comments in order of appearance.
func (p *Post) Comments() []*Comment {
	return p.comments
}

// NewComment appends an empty comment bound to the post and returns it.
func (p *Post) NewComment() *Comment {
	c := &Comment{post: p}
	p.comments = append(p.comments, c)
	return c
}

// AllCategories returns the primary category followed by the secondary
// categories, without duplicates.
func (p *Post) AllCategories() []string {
	seen := make(map[string]bool, len(p.Categories)+1)
	var all []string
	for _, c := range append([]string{p.PrimaryCategory}, p.Categories...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		all = append(all, c)
	}
	return all
}
