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

// Package bali implements the interpreter proper: the lexical scope chain,
// the evaluator, and the builtin dispatcher. It is not safe for concurrent
// use by multiple goroutines — exactly one evaluator reduction may be in
// flight on a given Interpreter at a time, matching the single-threaded,
// synchronous execution model the language spec requires.
package bali

import (
	"io"
	"os"

	"github.com/RauliL/bali/parser"
	"github.com/RauliL/bali/value"
)

// Interpreter holds everything that the language spec describes as
// process-wide: the top-level scope and the custom-function registry. Both
// are kept as fields on Interpreter rather than as package-level state, so
// that multiple interpreters can coexist in the same program (each gets its
// own global scope and its own function table); the builtin table itself
// has no interpreter-specific state and is shared package-level data, the
// same way a VM's opcode table is shared across instances.
type Interpreter struct {
	Globals *Scope
	Output  io.Writer
	Syntax  parser.Syntax

	functions map[string]*value.Function
}

// Option configures an Interpreter at construction time.
type Option func(*Interpreter)

// WithOutput sets the writer used by the `write` builtin. The default is
// os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(ip *Interpreter) { ip.Output = w }
}

// WithSyntax selects which surface syntax the `load` builtin parses files
// with. The default is parser.SExpression.
func WithSyntax(s parser.Syntax) Option {
	return func(ip *Interpreter) { ip.Syntax = s }
}

// New creates a fresh Interpreter with an empty top-level scope and an
// empty custom-function registry.
func New(opts ...Option) *Interpreter {
	ip := &Interpreter{
		Globals:   NewScope(nil),
		Output:    os.Stdout,
		Syntax:    parser.SExpression,
		functions: make(map[string]*value.Function),
	}
	for _, opt := range opts {
		opt(ip)
	}
	return ip
}

// EvalTopLevel evaluates v in the interpreter's global scope. It is the
// entry point used by the REPL and the file/stdin driver — the two
// boundaries that catch *Error — and it also catches an
// unhandled non-local return escaping past the top level, reporting it as
// the ordinary error the spec calls for ("Unexpected 'return'.") rather
// than letting the internal returnSignal type leak out of this package.
func (ip *Interpreter) EvalTopLevel(v value.Value) (value.Value, error) {
	result, err := ip.Eval(v, ip.Globals)
	if _, ok := err.(*returnSignal); ok {
		return nil, value.NewError(value.Pos{}, "Unexpected 'return'.")
	}
	return result, err
}

// DefineFunction registers a named custom function in this interpreter's
// global registry, overwriting any prior entry under the same name, and
// returns the function value. It is the mechanism `defun` uses, exposed so
// that embedders can pre-define functions without going through source
// text.
func (ip *Interpreter) DefineFunction(name string, params []string, body value.Value, pos value.Pos) *value.Function {
	fn := value.NewCustomFunction(params, body, name, pos)
	ip.functions[name] = fn
	return fn
}
