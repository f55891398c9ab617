// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
)

// encodingSampleSize is how much of the export DetectEncoding inspects.
const encodingSampleSize = 125000

// Encoding names returned by DetectEncoding. They are valid labels for
// golang.org/x/net/html/charset.
const (
	EncodingASCII       = "us-ascii"
	EncodingUTF8        = "utf-8"
	EncodingUTF16LE     = "utf-16le"
	EncodingUTF16BE     = "utf-16be"
	EncodingWindows1252 = "windows-1252"
	EncodingISO88591    = "iso-8859-1"
)

// DetectEncoding guesses the text encoding of the export from its first
// 125,000 bytes. The result is cached until Open is called again. It returns
// an empty string when the file cannot be read.
func (p *Parser) DetectEncoding() string {
	if p.encodingCached {
		return p.encoding
	}
	if p.path == "" {
		return ""
	}

	f, err := os.Open(p.path)
	if err != nil {
		return ""
	}
	defer func() { _ = f.Close() }()

	sample, err := io.ReadAll(io.LimitReader(f, encodingSampleSize))
	if err != nil {
		return ""
	}

	if len(sample) == encodingSampleSize {
		sample = trimPartialRune(sample)
	}
	p.encoding = DetectEncoding(sample)
	p.encodingCached = true
	return p.encoding
}

// DetectEncoding guesses the encoding of sample, which is treated as complete
// text.
func DetectEncoding(sample []byte) string {
	// A byte order mark is authoritative; DetermineEncoding reports it as certain.
	if _, name, certain := charset.DetermineEncoding(sample, "text/plain"); certain {
		switch name {
		case "utf-16le":
			return EncodingUTF16LE
		case "utf-16be":
			return EncodingUTF16BE
		default:
			return EncodingUTF8
		}
	}

	if isASCII(sample) {
		return EncodingASCII
	}
	if utf8.Valid(sample) {
		return EncodingUTF8
	}

	// C1 control bytes are printable characters in Windows-1252 only.
	for _, b := range sample {
		if b >= 0x80 && b <= 0x9f {
			return EncodingWindows1252
		}
	}
	return EncodingISO88591
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// trimPartialRune drops an incomplete UTF-8 sequence cut off by the sample
// limit.
func trimPartialRune(b []byte) []byte {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if utf8.RuneStart(b[i]) {
			if !utf8.FullRune(b[i:]) {
				return b[:i]
			}
			break
		}
	}
	return b
}
