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

// Command bali is the command line front end for the interpreter in
// github.com/RauliL/bali: a REPL when run interactively, a script runner
// otherwise.
//
// Usage:
//
//	bali [switches] [programfile]
//
//	-m    parse the program as M-expressions instead of S-expressions
//	--help
//	      print usage and exit
//	--version
//	      print the version number and exit
//
// With no programfile argument, bali reads a script from standard input
// when it is not a terminal, and otherwise starts an interactive REPL.
// With a programfile argument, that file is evaluated and the process
// exits with a non-zero status if evaluation raised an unhandled error.
package main
