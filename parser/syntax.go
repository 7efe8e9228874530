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

// Syntax selects which surface syntax a source text is parsed with.
type Syntax int

const (
	SExpression Syntax = iota
	MExpression
)

func (s Syntax) String() string {
	if s == MExpression {
		return "m-expression"
	}
	return "s-expression"
}

// Parse dispatches to ParseSExpressions or ParseMExpressions according to
// syntax. It is the single entry point the REPL, the file/stdin driver,
// and the `load` builtin all go through.
func Parse(syntax Syntax, input string, line int) ([]value.Value, error) {
	if syntax == MExpression {
		return ParseMExpressions(input, line)
	}
	return ParseSExpressions(input, line)
}
