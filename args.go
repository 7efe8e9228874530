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

// Args is a cursor over a builtin's unevaluated argument expressions. A
// builtin consumes it left to right with eat/finish, deciding for itself
// how many expressions to take and whether (and through which coercion
// helper) to evaluate each one — this is the mechanism that lets `if`,
// `quote`, `and`, `or`, `setq`, `let`, `defun`, `lambda`, `return` and
// `apply` diverge from the uniform evaluate-every-argument protocol
// ordinary functions use.
type Args struct {
	exprs []value.Value
	pos   int
}

func newArgs(exprs []value.Value) *Args {
	return &Args{exprs: exprs}
}

// Next returns the next unevaluated expression and advances the cursor.
// ok is false once every expression has been consumed.
func (a *Args) Next() (value.Value, bool) {
	if a.pos >= len(a.exprs) {
		return nil, false
	}
	v := a.exprs[a.pos]
	a.pos++
	return v, true
}

// Done reports whether every expression has been consumed.
func (a *Args) Done() bool {
	return a.pos >= len(a.exprs)
}

// Rest returns every remaining unevaluated expression without consuming
// them.
func (a *Args) Rest() []value.Value {
	return a.exprs[a.pos:]
}

// eat takes the next argument expression or fails with the builtin's
// standard "Not enough arguments" message.
func eat(name string, args *Args, pos value.Pos) (value.Value, error) {
	v, ok := args.Next()
	if !ok {
		return nil, value.NewError(pos, "%s: Not enough arguments.", name)
	}
	return v, nil
}

// finish fails with the builtin's standard "Too many arguments" message
// if any argument expression remains unconsumed.
func finish(name string, args *Args, pos value.Pos) error {
	if !args.Done() {
		return value.NewError(pos, "%s: Too many arguments.", name)
	}
	return nil
}
