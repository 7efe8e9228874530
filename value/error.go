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

package value

import "fmt"

// Error is the interpreter's own structured error value: a message plus an
// optional source position. Both the parsers and the evaluator raise it;
// it is caught only at the REPL and file/stdin driver boundaries. It lives
// next to Pos (rather than in package bali, alongside Scope and Eval) so
// that the parser package can report positional errors without importing
// the evaluator.
type Error struct {
	Message string
	Pos     Pos
}

// NewError constructs an Error at pos. A zero Pos means "no position known".
func NewError(pos Pos, format string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(format, args...), Pos: pos}
}

// Error implements the error interface, formatting as
// "line:column: message", "line: message" or bare "message" depending on
// how much of Pos is known.
func (e *Error) Error() string {
	if !e.Pos.IsValid() {
		return e.Message
	}
	if e.Pos.Column > 0 {
		return fmt.Sprintf("%d:%d: %s", e.Pos.Line, e.Pos.Column, e.Message)
	}
	return fmt.Sprintf("%d: %s", e.Pos.Line, e.Message)
}
