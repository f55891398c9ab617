// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mtif parses Movable Type Import Format (MTIF) exports into posts,
// authors and comments.
//
// An export is a sequence of records separated by a line of eight dashes.
// Each record holds "KEY: value" header lines, bounded blocks (BODY,
// EXTENDED BODY, EXCERPT, KEYWORDS) ended by a line of five dashes, and zero
// or more COMMENT blocks. Parsing never fails: a field that cannot be found
// keeps its default.
package mtif

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Record delimiters, one per line-ending convention.
const (
	delimiterLF   = "--------\n"
	delimiterCRLF = "--------\r\n"
	delimiterCR   = "--------\r"
)

// Option configures a Parser.
type Option func(*Parser)

// WithTranscoding makes the parser decode non-UTF-8 exports to UTF-8 using
// the detected encoding.
func WithTranscoding() Option {
	return func(p *Parser) {
		p.transcode = true
	}
}

// WithLocation sets the time zone for dates without an explicit offset.
// The default is time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Parser) {
		p.loc = loc
	}
}

// Parser reads an MTIF export one record at a time. It is not safe for
// concurrent use.
type Parser struct {
	path      string
	file      *os.File
	reader    *bufio.Reader
	transcode bool
	loc       *time.Location
	err       error

	encoding       string
	encodingCached bool
}

// NewParser returns a parser for the export at path. Check Err or the result
// of Open when the file may be missing.
func NewParser(path string, opts ...Option) *Parser {
	p := &Parser{}
	for _, opt := range opts {
		opt(p)
	}
	if path != "" {
		p.Open(path)
	}
	return p
}

// Open opens the export at path, closing any previously opened file.
// It returns false if the file cannot be opened.
func (p *Parser) Open(path string) bool {
	_ = p.Close()
	p.path = path
	p.encoding = ""
	p.encodingCached = false
	return p.open()
}

func (p *Parser) open() bool {
	f, err := os.Open(p.path)
	if err != nil {
		p.err = err
		return false
	}
	p.file = f
	p.err = nil

	// A leading byte order mark is always dropped. When it names UTF-16 the
	// stream is decoded from UTF-16 whatever the detected encoding.
	var fallback transform.Transformer = transform.Nop
	if p.transcode {
		if enc := p.DetectEncoding(); enc != "" && enc != EncodingUTF8 && enc != EncodingASCII {
			if e, _ := charset.Lookup(enc); e != nil {
				fallback = e.NewDecoder()
			} else {
				p.err = fmt.Errorf("unsupported encoding %q", enc)
			}
		}
	}
	p.reader = bufio.NewReader(transform.NewReader(f, unicode.BOMOverride(fallback)))
	return true
}

// Location returns the time zone used for dates without an explicit offset.
func (p *Parser) Location() *time.Location {
	if p.loc == nil {
		return time.Local
	}
	return p.loc
}

// Rewind restarts iteration from the first record by reopening the file.
func (p *Parser) Rewind() bool {
	if p.path == "" {
		return false
	}
	_ = p.Close()
	return p.open()
}

// Close closes the underlying file.
func (p *Parser) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	p.reader = nil
	return err
}

// Path returns the path of the export.
func (p *Parser) Path() string {
	return p.path
}

// Err returns the last open or read error.
func (p *Parser) Err() error {
	return p.err
}

// Next returns the next post. It returns false at the end of the export; text
// after the last delimiter line is not a complete record and is dropped.
func (p *Parser) Next() (*Post, bool) {
	block, ok := p.NextBlock()
	if !ok {
		return nil, false
	}
	return ParsePostIn(block, p.Location()), true
}

// NextBlock returns the raw text of the next record, without its delimiter.
func (p *Parser) NextBlock() (string, bool) {
	if p.reader == nil {
		return "", false
	}

	var block strings.Builder
	for {
		line, err := readLine(p.reader)
		if line != "" {
			if isDelimiter(line) {
				return block.String(), true
			}
			block.WriteString(line)
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				p.err = err
			}
			return "", false
		}
	}
}

// isDelimiter reports whether line is a record delimiter in any line-ending
// convention.
func isDelimiter(line string) bool {
	return line == delimiterLF || line == delimiterCRLF || line == delimiterCR
}

// readLine reads one line including its terminator. "\n", "\r\n" and a lone
// "\r" all end a line.
func readLine(r *bufio.Reader) (string, error) {
	var sb strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			return sb.String(), err
		}
		sb.WriteByte(b)
		switch b {
		case '\n':
			return sb.String(), nil
		case '\r':
			next, err := r.Peek(1)
			if err == nil && next[0] == '\n' {
				_, _ = r.ReadByte()
				sb.WriteByte('\n')
			}
			return sb.String(), nil
		}
	}
}
