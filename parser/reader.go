// This file is part of bali.
//
// Copyright 2026 The Bali Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser turns source text into the value tree package value
// describes, in either of the two surface syntaxes: classical S-expressions
// (sexpr.go) or the infix M-expression syntax (mexpr.go). Both share a
// single rune-at-a-time reader (this file) that tracks 1-based line and
// column, the way the reference parser threads an explicit (line, column)
// pair through every read rather than relying on a token package.
package parser

import (
	"unicode"
	"unicode/utf8"

	"github.com/RauliL/bali/internal/litutil"
	"github.com/RauliL/bali/value"
)

// reader walks a source string one decoded rune at a time, tracking
// position. It never holds a byte offset the caller can see: every
// consumer works purely in terms of peek/read/eof.
type reader struct {
	input  string
	offset int
	line   int
	column int
}

func newReader(input string, line int) *reader {
	return &reader{input: input, offset: 0, line: line, column: 1}
}

func (r *reader) eof() bool {
	return r.offset >= len(r.input)
}

func (r *reader) pos() value.Pos {
	return value.Pos{Line: r.line, Column: r.column}
}

// peek returns the next rune without consuming it. ok is false at eof.
func (r *reader) peek() (rn rune, ok bool) {
	if r.eof() {
		return 0, false
	}
	rn, size := utf8.DecodeRuneInString(r.input[r.offset:])
	if rn == utf8.RuneError && size <= 1 {
		return utf8.RuneError, true
	}
	return rn, true
}

// read consumes and returns the next rune, advancing line/column. It fails
// on an invalid or incomplete UTF-8 sequence and on disallowed codepoints
// (surrogates, noncharacters).
func (r *reader) read() (rune, error) {
	if r.eof() {
		return 0, value.NewError(r.pos(), "Unexpected end of input.")
	}

	rn, size := utf8.DecodeRuneInString(r.input[r.offset:])
	if rn == utf8.RuneError && size <= 1 {
		return 0, value.NewError(r.pos(), "Invalid UTF-8 sequence.")
	}
	if !litutil.IsValidCodepoint(rn) {
		return 0, value.NewError(r.pos(), "Invalid UTF-8 sequence.")
	}

	r.offset += size
	if rn == '\n' {
		r.line++
		r.column = 1
	} else {
		r.column++
	}

	return rn, nil
}

// peekReadByte consumes the next rune and reports true if it equals b,
// leaving the reader untouched otherwise.
func (r *reader) peekReadByte(b byte) (bool, error) {
	rn, ok := r.peek()
	if !ok || rn != rune(b) {
		return false, nil
	}
	if _, err := r.read(); err != nil {
		return false, err
	}
	return true, nil
}

// skipWhitespace skips runs of whitespace and, when comment is non-zero,
// comment-to-end-of-line runs introduced by that byte.
func (r *reader) skipWhitespace(comment byte) error {
	for !r.eof() {
		if comment != 0 {
			skipped, err := r.peekReadByte(comment)
			if err != nil {
				return err
			}
			if skipped {
				for !r.eof() {
					rn, ok := r.peek()
					if !ok || rn == '\n' || rn == '\r' {
						break
					}
					if _, err := r.read(); err != nil {
						return err
					}
				}
				continue
			}
		}

		rn, ok := r.peek()
		if !ok || !unicode.IsSpace(rn) {
			return nil
		}
		if _, err := r.read(); err != nil {
			return err
		}
	}
	return nil
}

// parseEscapeSequence reads the body of a backslash escape (the backslash
// itself has already been consumed) and appends the decoded rune(s) to buf.
func parseEscapeSequence(buf *[]rune, r *reader) error {
	startPos := r.pos()

	if r.eof() {
		return value.NewError(startPos, "Unexpected end of input; Missing escape sequence.")
	}

	c, err := r.read()
	if err != nil {
		return err
	}

	switch c {
	case 'b':
		*buf = append(*buf, '\b')
	case 't':
		*buf = append(*buf, '\t')
	case 'n':
		*buf = append(*buf, '\n')
	case 'f':
		*buf = append(*buf, '\f')
	case 'r':
		*buf = append(*buf, '\r')
	case '"', '\'', '\\', '/':
		*buf = append(*buf, c)
	case 'u':
		var result rune
		for i := 0; i < 4; i++ {
			if r.eof() {
				return value.NewError(startPos, "Unterminated escape sequence.")
			}
			rn, ok := r.peek()
			if !ok || !isHexDigit(rn) {
				return value.NewError(startPos, "Illegal Unicode hex escape sequence.")
			}
			digit, err := r.read()
			if err != nil {
				return err
			}
			result = result*16 + hexValue(digit)
		}
		if !litutil.IsValidCodepoint(result) {
			return value.NewError(startPos, "Illegal Unicode hex escape sequence.")
		}
		*buf = append(*buf, result)
	default:
		return value.NewError(r.pos(), "Illegal escape sequence.")
	}

	return nil
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func hexValue(r rune) rune {
	switch {
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10
	default:
		return r - '0'
	}
}

// skipShebang consumes a leading "#!...\n" line, if the input starts with
// one. It must be called before anything else has been read.
func (r *reader) skipShebang() error {
	if r.offset != 0 {
		return nil
	}
	rest := r.input
	if len(rest) < 2 || rest[0] != '#' || rest[1] != '!' {
		return nil
	}
	for {
		if r.eof() {
			return nil
		}
		rn, ok := r.peek()
		if !ok {
			return nil
		}
		if _, err := r.read(); err != nil {
			return err
		}
		if rn == '\n' {
			return nil
		}
	}
}
