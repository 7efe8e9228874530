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

package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"

	"github.com/RauliL/bali"
	"github.com/RauliL/bali/parser"
	"github.com/RauliL/bali/value"
)

// countParens returns the net change in open-parenthesis depth contributed
// by a line of input; both surface syntaxes use '(' and ')' for grouping,
// so a single counter serves either one.
func countParens(s string) int {
	count := 0
	for _, r := range s {
		switch r {
		case '(':
			count++
		case ')':
			count--
		}
	}
	return count
}

// runREPL drives the interactive prompt: input is buffered line by line
// until the open-paren count returns to zero, then parsed and evaluated as
// a batch of top-level forms. Each form's value is printed; a caught
// *bali.Error is printed and the REPL continues.
func runREPL(syntax parser.Syntax, stdin *os.File, stdout, stderr io.Writer) int {
	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	ip := bali.New(bali.WithOutput(stdout), bali.WithSyntax(syntax))

	var script strings.Builder
	completedLines := 0
	linesInChunk := 0
	openParens := 0

	for {
		prompt := fmt.Sprintf("bali:%d:%d> ", completedLines, openParens)
		input, err := line.Prompt(prompt)
		if err != nil {
			if err == io.EOF || err == liner.ErrPromptAborted {
				fmt.Fprintln(stdout)
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 1
		}

		line.AppendHistory(input)
		script.WriteString(input)
		script.WriteByte('\n')
		linesInChunk++
		openParens += countParens(input)

		if openParens != 0 {
			continue
		}

		forms, err := parser.Parse(syntax, script.String(), completedLines+1)
		if err != nil {
			fmt.Fprintln(stdout, err)
			completedLines += linesInChunk
			linesInChunk = 0
			script.Reset()
			continue
		}

		for _, form := range forms {
			result, err := ip.EvalTopLevel(form)
			if err != nil {
				fmt.Fprintln(stdout, err)
				break
			}
			fmt.Fprintln(stdout, value.ToString(result))
		}

		completedLines += linesInChunk
		linesInChunk = 0
		script.Reset()
	}
}
