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

// Package value implements the homogeneous value tree that the parsers
// build and the evaluator reduces: a closed, three-case tagged union (atom,
// list, function) plus the shared source-position metadata every case
// carries. There is no separate number or boolean type: numeric-ness and
// truthiness are properties observed on atoms, not distinct representations
// (see Kind, and ToNumber and ToBool in package bali, for where that is
// decided).
//
// The absent value ("nil" in source text) has no dedicated type: it is the
// Go nil value of the Value interface, shared across every case.
package value

import (
	"strings"

	"github.com/RauliL/bali/internal/litutil"
)

// Pos is a source position. The zero value means "no position known",
// mirroring the convention used by text/scanner.Position: a Pos is valid
// only once Line is set to something greater than zero.
type Pos struct {
	Line   int
	Column int
}

// IsValid reports whether p refers to an actual source location.
func (p Pos) IsValid() bool {
	return p.Line > 0
}

// Kind discriminates the three Value cases.
type Kind int

const (
	KindAtom Kind = iota
	KindList
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindAtom:
		return "atom"
	case KindList:
		return "list"
	case KindFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Value is the common interface implemented by exactly three types: *Atom,
// *List and *Function. The set is closed: callers switch on Kind (or type
// switch on the three pointer types) rather than expecting the set to grow.
type Value interface {
	Kind() Kind
	Pos() Pos
	String() string
}

// Atom is a leaf value carrying a symbol. Atoms stand in for identifiers,
// numeric literals and string literals alike; there is no separate number
// or string case. An atom's symbol is never empty.
type Atom struct {
	pos    Pos
	symbol string
}

// NewAtom constructs an atom from a symbol. symbol must not be empty.
func NewAtom(symbol string, pos Pos) *Atom {
	if symbol == "" {
		panic("value: atom symbol must not be empty")
	}
	return &Atom{pos: pos, symbol: symbol}
}

// NewNumberAtom constructs an atom printing v in general format, trimming
// trailing zeros (1.5, 42 — never 42.0000).
func NewNumberAtom(v float64, pos Pos) *Atom {
	return NewAtom(litutil.FormatNumber(v), pos)
}

// NewBoolAtom constructs the canonical boolean encoding: true becomes the
// atom "true"; false becomes the absent value (a nil Value).
func NewBoolAtom(b bool, pos Pos) Value {
	if b {
		return NewAtom("true", pos)
	}
	return nil
}

func (a *Atom) Kind() Kind   { return KindAtom }
func (a *Atom) Pos() Pos     { return a.pos }
func (a *Atom) Symbol() string { return a.symbol }
func (a *Atom) String() string { return a.symbol }

// List is an ordered, immutable sequence of values.
type List struct {
	pos      Pos
	elements []Value
}

// NewList constructs a list from elements. The slice is copied so that
// later mutation by the caller cannot reach back into the list.
func NewList(elements []Value, pos Pos) *List {
	cp := make([]Value, len(elements))
	copy(cp, elements)
	return &List{pos: pos, elements: cp}
}

func (l *List) Kind() Kind        { return KindList }
func (l *List) Pos() Pos          { return l.pos }
func (l *List) Elements() []Value { return l.elements }

func (l *List) String() string {
	var b strings.Builder
	b.WriteByte('(')
	for i, e := range l.elements {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(ToString(e))
	}
	b.WriteByte(')')
	return b.String()
}

// Function is a first-class callable value. It further splits into two
// shapes: a builtin (a named reference to a host-implemented operator) and
// a custom function (named parameters closing over an unevaluated body,
// with an optional name). The split is a nested tag, not a type hierarchy:
// callers check IsBuiltin before reading the shape-specific fields.
type Function struct {
	pos Pos

	isBuiltin   bool
	builtinName string

	params  []string
	body    Value
	name    string
	isNamed bool
}

// NewBuiltinFunction constructs the builtin shape of a function value,
// referring to the host operator registered under name.
func NewBuiltinFunction(name string, pos Pos) *Function {
	return &Function{pos: pos, isBuiltin: true, builtinName: name}
}

// NewCustomFunction constructs the custom shape of a function value. An
// empty name denotes an anonymous (lambda) function.
func NewCustomFunction(params []string, body Value, name string, pos Pos) *Function {
	p := make([]string, len(params))
	copy(p, params)
	return &Function{
		pos:     pos,
		params:  p,
		body:    body,
		name:    name,
		isNamed: name != "",
	}
}

func (f *Function) Kind() Kind { return KindFunction }
func (f *Function) Pos() Pos   { return f.pos }

// IsBuiltin reports whether this value is the builtin shape.
func (f *Function) IsBuiltin() bool { return f.isBuiltin }

// BuiltinName returns the referenced builtin's name. Only meaningful when
// IsBuiltin is true.
func (f *Function) BuiltinName() string { return f.builtinName }

// Params returns the custom function's parameter names. Only meaningful
// when IsBuiltin is false.
func (f *Function) Params() []string { return f.params }

// Body returns the custom function's unevaluated body expression. Only
// meaningful when IsBuiltin is false.
func (f *Function) Body() Value { return f.body }

// Name returns the function's name and whether it has one. Builtins always
// report their builtin name; custom functions report ok == false when
// anonymous.
func (f *Function) Name() (name string, ok bool) {
	if f.isBuiltin {
		return f.builtinName, true
	}
	return f.name, f.isNamed
}

func (f *Function) String() string {
	if f.isBuiltin {
		return "<builtin " + f.builtinName + ">"
	}
	var b strings.Builder
	b.WriteByte('(')
	if f.isNamed {
		b.WriteString("defun ")
		b.WriteString(f.name)
		b.WriteByte(' ')
	} else {
		b.WriteString("lambda ")
	}
	b.WriteByte('(')
	for i, p := range f.params {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(p)
	}
	b.WriteString(") ")
	b.WriteString(ToString(f.body))
	b.WriteByte(')')
	return b.String()
}

// ToString prints v the way the language's `write` builtin and the REPL
// report values: the absent value prints as "nil"; every other value
// prints through its own String method.
func ToString(v Value) string {
	if v == nil {
		return "nil"
	}
	return v.String()
}
