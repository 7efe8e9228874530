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

package bali

import "github.com/RauliL/bali/value"

// Error is the interpreter's structured error value. It is defined in
// package value (alongside Pos) so that the parsers can raise it without
// importing the evaluator; it is aliased here so callers of package bali
// do not need to reach into package value just to catch it.
type Error = value.Error

// NewError constructs an *Error at pos.
func NewError(pos value.Pos, format string, args ...interface{}) *Error {
	return value.NewError(pos, format, args...)
}

// returnSignal is the non-local control transfer raised by the `return`
// builtin. It is disjoint from *Error on purpose: the function application
// protocol catches exactly this type and nothing else, letting every other
// error propagate untouched. Escaping all the way to the top level is
// reported to the caller as an ordinary *Error (see
// Interpreter.EvalTopLevel).
type returnSignal struct {
	value value.Value
}

func (r *returnSignal) Error() string {
	return "Unexpected 'return'."
}
