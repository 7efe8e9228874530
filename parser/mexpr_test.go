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

package parser_test

import (
	"strings"
	"testing"

	"github.com/RauliL/bali"
	"github.com/RauliL/bali/parser"
	"github.com/RauliL/bali/value"
)

func parseOneM(t *testing.T, source string) value.Value {
	t.Helper()
	forms, err := parser.ParseMExpressions(source, 1)
	if err != nil {
		t.Fatalf("ParseMExpressions(%q) error: %v", source, err)
	}
	if len(forms) != 1 {
		t.Fatalf("ParseMExpressions(%q) = %d forms, want 1", source, len(forms))
	}
	return forms[0]
}

func TestParseMExpressionsAtom(t *testing.T) {
	if got, want := parseOneM(t, "foo").String(), "foo"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsAdditivePrecedence(t *testing.T) {
	if got, want := parseOneM(t, "1+2*3").String(), "(+ 1 (* 2 3))"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsLeftAssociative(t *testing.T) {
	if got, want := parseOneM(t, "1-2-3").String(), "(- (- 1 2) 3)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsParenthesesOverridePrecedence(t *testing.T) {
	if got, want := parseOneM(t, "(1,2)*3").String(), "(* (quote (1 2)) 3)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsRelationalAndEquality(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"1 < 2", "(< 1 2)"},
		{"1 <= 2", "(<= 1 2)"},
		{"1 >= 2", "(>= 1 2)"},
		{"1=1", "(= 1 1)"},
	}
	for _, tt := range tests {
		if got := parseOneM(t, tt.source).String(); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestParseMExpressionsBracketListLiteral(t *testing.T) {
	if got, want := parseOneM(t, "[1;2;3]").String(), "(quote (1 2 3))"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsEmptyBracketList(t *testing.T) {
	if got, want := parseOneM(t, "[]").String(), "(quote ())"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsDefinitionSugar(t *testing.T) {
	got := parseOneM(t, "double[x] <= x*2").String()
	want := "(defun double (x) (* x 2))"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsCallUsesCommaSeparators(t *testing.T) {
	_, err := parser.ParseMExpressions("f[1;2]", 1)
	if err == nil {
		t.Fatal("expected an error parsing a semicolon-separated call argument list")
	}
}

func TestParseMExpressionsBracketListRejectsCommaSeparators(t *testing.T) {
	_, err := parser.ParseMExpressions("[1,2]", 1)
	if err == nil {
		t.Fatal("expected an error parsing a comma-separated bracket literal")
	}
}

// evalM parses source as an M-expression and evaluates the single
// resulting form against a fresh interpreter.
func evalM(t *testing.T, source string) value.Value {
	t.Helper()
	forms, err := parser.ParseMExpressions(source, 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := bali.New(bali.WithSyntax(parser.MExpression))
	var result value.Value
	for _, form := range forms {
		result, err = ip.EvalTopLevel(form)
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}
	}
	return result
}

func TestMExpressionsCallSugarEvaluatesLikeSExpression(t *testing.T) {
	got := value.ToString(evalM(t, "f[x,y] <= x\nf[1,2]"))
	if got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}

func TestMExpressionsCallSugarMatchesEquivalentSExpression(t *testing.T) {
	mForms, err := parser.ParseMExpressions("f[1,2]", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	sForms, err := parser.ParseSExpressions("(defun f (a b) (+ a b))", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	ip := bali.New()
	if _, err := ip.EvalTopLevel(sForms[0]); err != nil {
		t.Fatalf("eval error: %v", err)
	}
	got, err := ip.EvalTopLevel(mForms[0])
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}
	if want := "3"; value.ToString(got) != want {
		t.Errorf("got %q, want %q", value.ToString(got), want)
	}
}

func TestMExpressionsDefinitionSugarIsCallable(t *testing.T) {
	got := value.ToString(evalM(t, "square[x] <= x*x\nsquare[5]"))
	if got != "25" {
		t.Errorf("got %q, want %q", got, "25")
	}
}

func TestParseMExpressionsShebang(t *testing.T) {
	forms, err := parser.ParseMExpressions("#!/usr/bin/env bali -m\n1+2", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(forms) != 1 || forms[0].String() != "(+ 1 2)" {
		t.Fatalf("got %v, want a single (+ 1 2) form", forms)
	}
}

func TestParseMExpressionsComment(t *testing.T) {
	forms, err := parser.ParseMExpressions("# a comment\n1+2 # trailing\n", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(forms) != 1 || forms[0].String() != "(+ 1 2)" {
		t.Fatalf("got %v, want a single (+ 1 2) form", forms)
	}
}

func TestParseMExpressionsString(t *testing.T) {
	if got, want := parseOneM(t, `"hello"`).String(), "hello"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestParseMExpressionsUnterminatedBracketList(t *testing.T) {
	_, err := parser.ParseMExpressions("[1;2", 1)
	if err == nil || !strings.Contains(err.Error(), "Unterminated list") {
		t.Errorf("got %v, want an Unterminated list error", err)
	}
}

func TestParseMExpressionsUnexpectedEndOfInput(t *testing.T) {
	_, err := parser.ParseMExpressions("1+", 1)
	if err == nil {
		t.Fatal("expected an error")
	}
}
