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

package parser

import "github.com/RauliL/bali/value"

const sexprCommentChar = ';'

// ParseSExpressions parses the classical parenthesised prefix surface
// syntax starting at the given line, returning every top-level form in
// source order. A leading "#!...\n" shebang is skipped.
func ParseSExpressions(input string, line int) ([]value.Value, error) {
	r := newReader(input, line)
	if err := r.skipShebang(); err != nil {
		return nil, err
	}

	var result []value.Value
	for {
		if err := r.skipWhitespace(sexprCommentChar); err != nil {
			return nil, err
		}
		if r.eof() {
			return result, nil
		}
		v, err := parseSExprValue(r)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
}

func isSExprAtomTerminator(rn rune) bool {
	switch rn {
	case ';', '(', ')', '\'':
		return true
	}
	return false
}

func parseSExprValue(r *reader) (value.Value, error) {
	if err := r.skipWhitespace(sexprCommentChar); err != nil {
		return nil, err
	}

	pos := r.pos()

	if r.eof() {
		return nil, value.NewError(pos, "Unexpected end of input, missing token.")
	}

	open, err := r.peekReadByte('(')
	if err != nil {
		return nil, err
	}
	if open {
		var elements []value.Value
		for {
			if err := r.skipWhitespace(sexprCommentChar); err != nil {
				return nil, err
			}
			if r.eof() {
				return nil, value.NewError(pos, "Unterminated list: Missing `)'.")
			}
			closed, err := r.peekReadByte(')')
			if err != nil {
				return nil, err
			}
			if closed {
				break
			}
			v, err := parseSExprValue(r)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
		}
		return value.NewList(elements, pos), nil
	}

	quoted, err := r.peekReadByte('\'')
	if err != nil {
		return nil, err
	}
	if quoted {
		inner, err := parseSExprValue(r)
		if err != nil {
			return nil, err
		}
		return value.NewList([]value.Value{
			value.NewAtom("quote", pos),
			inner,
		}, pos), nil
	}

	var buf []rune

	quote, err := r.peekReadByte('"')
	if err != nil {
		return nil, err
	}
	if quote {
		for {
			if r.eof() {
				return nil, value.NewError(pos, "Unterminated string: Missing `\"'.")
			}
			closed, err := r.peekReadByte('"')
			if err != nil {
				return nil, err
			}
			if closed {
				break
			}
			esc, err := r.peekReadByte('\\')
			if err != nil {
				return nil, err
			}
			if esc {
				if err := parseEscapeSequence(&buf, r); err != nil {
					return nil, err
				}
				continue
			}
			rn, err := r.read()
			if err != nil {
				return nil, err
			}
			buf = append(buf, rn)
		}
	} else {
		for {
			esc, err := r.peekReadByte('\\')
			if err != nil {
				return nil, err
			}
			if esc {
				if err := parseEscapeSequence(&buf, r); err != nil {
					return nil, err
				}
			} else {
				rn, err := r.read()
				if err != nil {
					return nil, err
				}
				buf = append(buf, rn)
			}

			if r.eof() {
				break
			}
			next, ok := r.peek()
			if !ok {
				break
			}
			if isSpaceRune(next) || isSExprAtomTerminator(next) {
				break
			}
		}
	}

	return value.NewAtom(string(buf), pos), nil
}

func isSpaceRune(rn rune) bool {
	switch rn {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}
