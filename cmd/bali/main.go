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
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"

	"github.com/RauliL/bali"
	"github.com/RauliL/bali/parser"
)

const version = "0.1.0"

// expandClusteredFlags splits a clustered short-flag argument such as
// "-mx" into "-m", "-x" before the stdlib flag package ever sees it. Long
// flags ("--help", "--version") and anything that isn't a bare run of
// letters after a single dash pass through untouched.
func expandClusteredFlags(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if len(a) > 2 && a[0] == '-' && a[1] != '-' && isAllLetters(a[1:]) {
			for _, c := range a[1:] {
				out = append(out, "-"+string(c))
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

func isAllLetters(s string) bool {
	for _, r := range s {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin *os.File, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bali", flag.ContinueOnError)
	fs.SetOutput(stderr)

	mexpr := fs.Bool("m", false, "use M-expression syntax instead of S-expression")
	help := fs.Bool("help", false, "print usage and exit")
	showVersion := fs.Bool("version", false, "print the version number and exit")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: bali [switches] [programfile]\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(expandClusteredFlags(args)); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if *help {
		fs.Usage()
		return 0
	}
	if *showVersion {
		fmt.Fprintf(stdout, "bali %s\n", version)
		return 0
	}

	syntax := parser.SExpression
	if *mexpr {
		syntax = parser.MExpression
	}

	switch fs.NArg() {
	case 0:
		if isatty.IsTerminal(stdin.Fd()) || isatty.IsCygwinTerminal(stdin.Fd()) {
			return runREPL(syntax, stdin, stdout, stderr)
		}
		return runSource(syntax, stdin, stdout, stderr)

	case 1:
		file, err := os.Open(fs.Arg(0))
		if err != nil {
			fmt.Fprintf(stderr, "bali: %s\n", err)
			return 1
		}
		defer file.Close()
		return runSource(syntax, file, stdout, stderr)

	default:
		fs.Usage()
		return 1
	}
}

func runSource(syntax parser.Syntax, src io.Reader, stdout, stderr io.Writer) int {
	contents, err := io.ReadAll(src)
	if err != nil {
		fmt.Fprintf(stderr, "bali: %s\n", err)
		return 1
	}

	forms, err := parser.Parse(syntax, string(contents), 1)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	ip := bali.New(bali.WithOutput(stdout), bali.WithSyntax(syntax))
	for _, form := range forms {
		if _, err := ip.EvalTopLevel(form); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
	}
	return 0
}
