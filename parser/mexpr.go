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

const mexprCommentChar = '#'

type mtokenKind int

const (
	mtokAtom mtokenKind = iota
	mtokLParen
	mtokRParen
	mtokLBracket
	mtokRBracket
	mtokComma
	mtokSemicolon
)

func (k mtokenKind) String() string {
	switch k {
	case mtokAtom:
		return "atom"
	case mtokLParen:
		return "`('"
	case mtokRParen:
		return "`)'"
	case mtokLBracket:
		return "`['"
	case mtokRBracket:
		return "`]'"
	case mtokComma:
		return "`,'"
	case mtokSemicolon:
		return "`;'"
	default:
		return "unknown token"
	}
}

type mtoken struct {
	kind   mtokenKind
	symbol string
	pos    value.Pos
}

var mexprSeparators = map[rune]mtokenKind{
	'(': mtokLParen,
	')': mtokRParen,
	'[': mtokLBracket,
	']': mtokRBracket,
	',': mtokComma,
	';': mtokSemicolon,
}

// isMExprSymbolRune reports whether rn may appear inside an M-expression
// identifier. The exclusion set mirrors the reference tokeniser: the
// separators, plus '#', '+', '-', '*', '/', '=' and '"'. '<' and '>' are
// not excluded: they start their own token only at the start of a token,
// so "1<2" reads as the single atom "1<2" while "1 < 2" reads as three.
func isMExprSymbolRune(rn rune) bool {
	if _, isSeparator := mexprSeparators[rn]; isSeparator {
		return false
	}
	switch rn {
	case '#', '+', '-', '*', '/', '=', '"':
		return false
	}
	return true
}

func tokenizeMExpr(r *reader) ([]mtoken, error) {
	var tokens []mtoken

	for {
		if err := r.skipWhitespace(mexprCommentChar); err != nil {
			return nil, err
		}
		if r.eof() {
			break
		}

		pos := r.pos()
		rn, _ := r.peek()

		if kind, isSeparator := mexprSeparators[rn]; isSeparator {
			if _, err := r.read(); err != nil {
				return nil, err
			}
			tokens = append(tokens, mtoken{kind: kind, pos: pos})
			continue
		}

		if lt, err := r.peekReadByte('<'); err != nil {
			return nil, err
		} else if lt {
			eq, err := r.peekReadByte('=')
			if err != nil {
				return nil, err
			}
			symbol := "<"
			if eq {
				symbol = "<="
			}
			tokens = append(tokens, mtoken{kind: mtokAtom, symbol: symbol, pos: pos})
			continue
		}

		if gt, err := r.peekReadByte('>'); err != nil {
			return nil, err
		} else if gt {
			eq, err := r.peekReadByte('=')
			if err != nil {
				return nil, err
			}
			symbol := ">"
			if eq {
				symbol = ">="
			}
			tokens = append(tokens, mtoken{kind: mtokAtom, symbol: symbol, pos: pos})
			continue
		}

		if minus, err := r.peekReadByte('-'); err != nil {
			return nil, err
		} else if minus {
			tokens = append(tokens, mtoken{kind: mtokAtom, symbol: "-", pos: pos})
			continue
		}

		for _, op := range []byte{'+', '*', '/', '='} {
			matched, err := r.peekReadByte(op)
			if err != nil {
				return nil, err
			}
			if matched {
				tokens = append(tokens, mtoken{kind: mtokAtom, symbol: string(op), pos: pos})
				rn = 0
				break
			}
		}
		if rn == 0 {
			continue
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
				c, err := r.read()
				if err != nil {
					return nil, err
				}
				buf = append(buf, c)
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
					c, err := r.read()
					if err != nil {
						return nil, err
					}
					buf = append(buf, c)
				}
				if r.eof() {
					break
				}
				next, ok := r.peek()
				if !ok || isSpaceRune(next) || !isMExprSymbolRune(next) {
					break
				}
			}
		}

		tokens = append(tokens, mtoken{kind: mtokAtom, symbol: string(buf), pos: pos})
	}

	return tokens, nil
}

// mparser walks a flat token slice with a single cursor; every production
// below consumes tokens strictly left to right, same as the reference
// precedence climber.
type mparser struct {
	tokens []mtoken
	pos    int
}

func (p *mparser) atEnd() bool { return p.pos >= len(p.tokens) }

func (p *mparser) peekKind(k mtokenKind) bool {
	return !p.atEnd() && p.tokens[p.pos].kind == k
}

func (p *mparser) peekReadKind(k mtokenKind) bool {
	if p.peekKind(k) {
		p.pos++
		return true
	}
	return false
}

func (p *mparser) peekAtom(symbol string) bool {
	return p.peekKind(mtokAtom) && p.tokens[p.pos].symbol == symbol
}

func (p *mparser) peekReadAtom(symbol string) bool {
	if p.peekAtom(symbol) {
		p.pos++
		return true
	}
	return false
}

// ParseMExpressions parses the bracketed/infix surface syntax starting at
// the given line, returning every top-level form in source order. A
// leading "#!...\n" shebang is skipped.
func ParseMExpressions(input string, line int) ([]value.Value, error) {
	r := newReader(input, line)
	if err := r.skipShebang(); err != nil {
		return nil, err
	}

	tokens, err := tokenizeMExpr(r)
	if err != nil {
		return nil, err
	}

	p := &mparser{tokens: tokens}
	var result []value.Value
	for !p.atEnd() {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return result, nil
}

// parseBracketList parses a `[ e1 ; e2 ; ... ]` literal, the opening
// bracket already confirmed but not yet consumed.
func (p *mparser) parseBracketList() ([]value.Value, error) {
	pos := p.tokens[p.pos].pos
	p.pos++ // consume '['

	var elements []value.Value
	if p.peekReadKind(mtokRBracket) {
		return elements, nil
	}
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
		if p.peekReadKind(mtokRBracket) {
			return elements, nil
		}
		if p.peekReadKind(mtokSemicolon) {
			continue
		}
		return nil, value.NewError(pos, "Unterminated list, missing `]'.")
	}
}

// parseCallArguments parses the comma-separated argument list of an
// `IDENT [ ... ]` call or definition form.
func (p *mparser) parseCallArguments() ([]value.Value, error) {
	pos := p.tokens[p.pos].pos
	p.pos++ // consume '['

	var elements []value.Value
	if p.peekReadKind(mtokRBracket) {
		return elements, nil
	}
	for {
		v, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		elements = append(elements, v)
		if p.peekReadKind(mtokRBracket) {
			return elements, nil
		}
		if p.peekReadKind(mtokComma) {
			continue
		}
		return nil, value.NewError(pos, "Unterminated list, missing `]'.")
	}
}

func (p *mparser) parsePrimary() (value.Value, error) {
	if p.atEnd() {
		return nil, value.NewError(value.Pos{}, "Unexpected end of input, missing expression.")
	}

	pos := p.tokens[p.pos].pos

	if p.peekReadKind(mtokLParen) {
		var elements []value.Value
		if !p.peekReadKind(mtokRParen) {
			for {
				v, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				elements = append(elements, v)
				if p.peekReadKind(mtokRParen) {
					break
				}
				if p.peekReadKind(mtokComma) {
					continue
				}
				return nil, value.NewError(pos, "Unterminated list, missing `)'.")
			}
		}
		return value.NewList([]value.Value{
			value.NewAtom("quote", pos),
			value.NewList(elements, pos),
		}, pos), nil
	}

	if p.peekKind(mtokLBracket) {
		elements, err := p.parseBracketList()
		if err != nil {
			return nil, err
		}
		return value.NewList([]value.Value{
			value.NewAtom("quote", pos),
			value.NewList(elements, pos),
		}, pos), nil
	}

	if p.peekKind(mtokAtom) {
		symbol := p.tokens[p.pos].symbol
		p.pos++
		atom := value.NewAtom(symbol, pos)

		if p.peekKind(mtokLBracket) {
			arguments, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}

			if p.peekReadAtom("<=") {
				body, err := p.parseExpression()
				if err != nil {
					return nil, err
				}
				params := make([]value.Value, len(arguments))
				copy(params, arguments)
				return value.NewList([]value.Value{
					value.NewAtom("defun", pos),
					atom,
					value.NewList(params, pos),
					body,
				}, pos), nil
			}

			call := make([]value.Value, 0, len(arguments)+1)
			call = append(call, value.NewList([]value.Value{
				value.NewAtom("quote", pos),
				atom,
			}, pos))
			call = append(call, arguments...)
			return value.NewList(call, pos), nil
		}

		return atom, nil
	}

	return nil, value.NewError(pos, "Unexpected %s, missing expression.", p.tokens[p.pos].kind)
}

func (p *mparser) parseBinary(operands []string, next func() (value.Value, error)) (value.Value, error) {
	expr, err := next()
	if err != nil {
		return nil, err
	}

	for {
		matched := false
		for _, op := range operands {
			if p.peekAtom(op) {
				opPos := p.tokens[p.pos].pos
				p.pos++
				rhs, err := next()
				if err != nil {
					return nil, err
				}
				expr = value.NewList([]value.Value{
					value.NewAtom(op, opPos),
					expr,
					rhs,
				}, expr.Pos())
				matched = true
				break
			}
		}
		if !matched {
			return expr, nil
		}
	}
}

func (p *mparser) parseMultiplicative() (value.Value, error) {
	return p.parseBinary([]string{"*", "/"}, p.parsePrimary)
}

func (p *mparser) parseAdditive() (value.Value, error) {
	return p.parseBinary([]string{"+", "-"}, p.parseMultiplicative)
}

func (p *mparser) parseRelational() (value.Value, error) {
	return p.parseBinary([]string{"<", ">", "<=", ">="}, p.parseAdditive)
}

func (p *mparser) parseExpression() (value.Value, error) {
	return p.parseBinary([]string{"="}, p.parseRelational)
}
