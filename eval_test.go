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

package bali_test

import (
	"strings"
	"testing"

	"github.com/RauliL/bali"
	"github.com/RauliL/bali/parser"
	"github.com/RauliL/bali/value"
)

// evalAll parses source as S-expressions and evaluates every top-level
// form against a fresh interpreter, returning the last form's value.
func evalAll(t *testing.T, source string) (value.Value, *bali.Interpreter) {
	t.Helper()
	forms, err := parser.ParseSExpressions(source, 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := bali.New()
	var result value.Value
	for _, form := range forms {
		result, err = ip.EvalTopLevel(form)
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}
	}
	return result, ip
}

func eval(t *testing.T, source string) value.Value {
	t.Helper()
	v, _ := evalAll(t, source)
	return v
}

func TestUnboundAtomEvaluatesToItself(t *testing.T) {
	if got, want := eval(t, "foo").String(), "foo"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestNilAtomEvaluatesToAbsent(t *testing.T) {
	if got := eval(t, "nil"); got != nil {
		t.Errorf("got %v, want nil", got)
	}
}

func TestQuoteReturnsArgumentUnevaluated(t *testing.T) {
	if got, want := eval(t, "(quote (+ 1 2))").String(), "(+ 1 2)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestArithmetic(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"(+ 1 2 3)", "6"},
		{"(+)", "0"},
		{"(- 5)", "-5"},
		{"(- 10 3 2)", "5"},
		{"(* 2 3 4)", "24"},
		{"(*)", "1"},
		{"(/ 10 2)", "5"},
	}
	for _, tt := range tests {
		if got := value.ToString(eval(t, tt.source)); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestDivisionByZero(t *testing.T) {
	forms, err := parser.ParseSExpressions("(/ 1 0)", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := bali.New()
	if _, err := ip.EvalTopLevel(forms[0]); err == nil {
		t.Fatal("expected division by zero error")
	}
}

func TestComparisonChains(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"(= 1 1 1)", "true"},
		{"(< 1 2 3)", "true"},
		{"(< 1 3 2)", "nil"},
		{"(=)", "true"},
		{"(< 1)", "true"},
	}
	for _, tt := range tests {
		if got := value.ToString(eval(t, tt.source)); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestIf(t *testing.T) {
	if got, want := value.ToString(eval(t, "(if (> 5 3) (quote yes) (quote no))")), "yes"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := value.ToString(eval(t, "(if nil (quote yes))")), "nil"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestEmptyListIsTruthy(t *testing.T) {
	if got, want := value.ToString(eval(t, "(if (list) (quote yes) (quote no))")), "yes"; got != want {
		t.Errorf("got %q, want %q (empty list must be truthy)", got, want)
	}
}

func TestLet(t *testing.T) {
	if got, want := value.ToString(eval(t, "(let ((x 10) (y 20)) (+ x y))")), "30"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLetBareSymbolBindsAbsent(t *testing.T) {
	if got, want := value.ToString(eval(t, "(let (x) x)")), "nil"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestLetMalformedBinding(t *testing.T) {
	forms, err := parser.ParseSExpressions("(let ((x 1 2)) x)", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := bali.New()
	if _, err := ip.EvalTopLevel(forms[0]); err == nil {
		t.Fatal("expected malformed let binding error")
	}
}

func TestNestedSetqMutatesNearestScope(t *testing.T) {
	got := value.ToString(eval(t, "(let ((x 1)) (let ((x 2)) (setq x 3)) x)"))
	if got != "1" {
		t.Errorf("got %q, want %q", got, "1")
	}
}

func TestTopLevelSetqCreatesBinding(t *testing.T) {
	got := value.ToString(eval(t, "(setq y 5) y"))
	if got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}

func TestDefunAndRecursion(t *testing.T) {
	src := "(defun fact (n) (if (<= n 1) 1 (* n (fact (- n 1))))) (fact 5)"
	if got, want := value.ToString(eval(t, src)), "120"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReturnUnwindsToEnclosingCall(t *testing.T) {
	src := "(defun f () (if true (return 1) 2)) (f)"
	if got, want := value.ToString(eval(t, src)), "1"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDefunNameIsReadLiterally(t *testing.T) {
	src := "(let ((f 5)) (defun f (x) x)) (f 1)"
	if got, want := value.ToString(eval(t, src)), "1"; got != want {
		t.Errorf("got %q, want %q (defun's name must not be evaluated against a shadowing binding)", got, want)
	}
}

func TestUnhandledReturnAtTopLevel(t *testing.T) {
	forms, err := parser.ParseSExpressions("(return 1)", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := bali.New()
	_, err = ip.EvalTopLevel(forms[0])
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "Unexpected 'return'") {
		t.Errorf("got %q, want it to mention Unexpected 'return'", err.Error())
	}
}

func TestLambdaIsAnonymous(t *testing.T) {
	if got, want := value.ToString(eval(t, "(apply (lambda (x) (* x x)) (list 4))")), "16"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestMapAndFilter(t *testing.T) {
	if got, want := value.ToString(eval(t, "(map (quote (1 2 3)) (lambda (x) (* x x)))")), "(1 4 9)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := value.ToString(eval(t, "(filter (quote (1 2 3 4)) (lambda (x) (> x 2)))")), "(3 4)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestListOps(t *testing.T) {
	tests := []struct {
		source string
		want   string
	}{
		{"(length (list 1 2 3))", "3"},
		{"(cons 1 (list 2 3))", "(1 2 3)"},
		{"(car (list 1 2 3))", "1"},
		{"(cdr (list 1 2 3))", "(2 3)"},
		{"(append (list 1 2) (list 3 4))", "(1 2 3 4)"},
	}
	for _, tt := range tests {
		if got := value.ToString(eval(t, tt.source)); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.source, got, tt.want)
		}
	}
}

func TestCarCdrOfEmptyListFail(t *testing.T) {
	for _, src := range []string{"(car (list))", "(cdr (list))"} {
		forms, err := parser.ParseSExpressions(src, 1)
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		ip := bali.New()
		if _, err := ip.EvalTopLevel(forms[0]); err == nil {
			t.Errorf("%s: expected error", src)
		}
	}
}

func TestConsCarCdrRoundTrip(t *testing.T) {
	if got, want := value.ToString(eval(t, "(cons (car (list 1 2 3)) (cdr (list 1 2 3)))")), "(1 2 3)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyDoesNotReEvaluateArguments(t *testing.T) {
	src := "(defun f (x) x) (apply (quote f) (list (quote (1 2 3))))"
	if got, want := value.ToString(eval(t, src)), "(1 2 3)"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyWithFunctionValue(t *testing.T) {
	src := "(apply (lambda (x y) (+ x y)) (list 3 4))"
	if got, want := value.ToString(eval(t, src)), "7"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestUnrecognizedFunction(t *testing.T) {
	forms, err := parser.ParseSExpressions("(frobnicate 1)", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	ip := bali.New()
	_, err = ip.EvalTopLevel(forms[0])
	if err == nil || !strings.Contains(err.Error(), "Unrecognized function") {
		t.Errorf("got %v, want an Unrecognized function error", err)
	}
}

func TestArityErrors(t *testing.T) {
	tests := []string{"(car)", "(car 1 2)", "(if 1)"}
	for _, src := range tests {
		forms, err := parser.ParseSExpressions(src, 1)
		if err != nil {
			t.Fatalf("parse error for %s: %v", src, err)
		}
		ip := bali.New()
		if _, err := ip.EvalTopLevel(forms[0]); err == nil {
			t.Errorf("%s: expected arity error", src)
		}
	}
}

func TestStringsAreAtoms(t *testing.T) {
	if got, want := eval(t, `"hello"`).String(), "hello"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	if got, want := value.ToString(eval(t, `(= "42" 42)`)), "true"; got != want {
		t.Errorf("got %q, want %q (a string equal to \"42\" must be numeric)", got, want)
	}
}

func TestMultipleInterpretersDoNotShareCustomFunctions(t *testing.T) {
	forms, err := parser.ParseSExpressions("(defun f () 1)", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	a := bali.New()
	if _, err := a.EvalTopLevel(forms[0]); err != nil {
		t.Fatalf("eval error: %v", err)
	}

	callForms, err := parser.ParseSExpressions("(f)", 1)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	b := bali.New()
	if _, err := b.EvalTopLevel(callForms[0]); err == nil {
		t.Fatal("expected Unrecognized function on a fresh interpreter")
	}
}
