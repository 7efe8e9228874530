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

import (
	"github.com/RauliL/bali/internal/litutil"
	"github.com/RauliL/bali/value"
)

// Eval reduces v against sc. The absent value and function values evaluate
// to themselves; an atom resolves through the scope chain or, failing
// that, stands for itself (this is how numbers and strings are
// self-evaluating — they are simply atoms nothing ever binds); a
// non-empty list is an application, dispatched through Args.
func (ip *Interpreter) Eval(v value.Value, sc *Scope) (value.Value, error) {
	if v == nil {
		return nil, nil
	}

	switch t := v.(type) {
	case *value.Atom:
		return ip.evalAtom(t, sc)
	case *value.List:
		return ip.evalList(t, sc)
	case *value.Function:
		return t, nil
	default:
		return v, nil
	}
}

func (ip *Interpreter) evalAtom(a *value.Atom, sc *Scope) (value.Value, error) {
	if bound, ok := sc.Get(a.Symbol()); ok {
		return bound, nil
	}
	if a.Symbol() == "nil" {
		return nil, nil
	}
	return a, nil
}

func (ip *Interpreter) evalList(l *value.List, sc *Scope) (value.Value, error) {
	elements := l.Elements()
	if len(elements) == 0 {
		return l, nil
	}

	name, err := ip.ToAtom(elements[0], sc)
	if err != nil {
		return nil, err
	}

	return ip.callFunction(name, elements[1:], sc, l.Pos())
}

func posOf(v value.Value) value.Pos {
	if v == nil {
		return value.Pos{}
	}
	return v.Pos()
}

// ToAtom evaluates v in sc (unless sc is nil, in which case v is taken
// literally) and requires the result to be an atom, returning its symbol.
// Binding forms (setq's target, let/defun/lambda parameter names) call
// this with a nil scope so that the name is read without triggering
// variable lookup.
func (ip *Interpreter) ToAtom(v value.Value, sc *Scope) (string, error) {
	result, err := ip.evalOrPass(v, sc)
	if err != nil {
		return "", err
	}
	if a, ok := result.(*value.Atom); ok {
		return a.Symbol(), nil
	}
	return "", value.NewError(posOf(v), "Value is not an atom.")
}

// ToBool evaluates v in sc and reports its truthiness: the absent value
// and the atom `nil` are false; every other value, including the empty
// list and numeric zero, is true.
func (ip *Interpreter) ToBool(v value.Value, sc *Scope) (bool, error) {
	result, err := ip.evalOrPass(v, sc)
	if err != nil {
		return false, err
	}
	if result == nil {
		return false, nil
	}
	if a, ok := result.(*value.Atom); ok {
		return a.Symbol() != "nil", nil
	}
	return true, nil
}

// ToList evaluates v in sc and requires the result to be a list, returning
// its elements.
func (ip *Interpreter) ToList(v value.Value, sc *Scope) ([]value.Value, error) {
	result, err := ip.evalOrPass(v, sc)
	if err != nil {
		return nil, err
	}
	if l, ok := result.(*value.List); ok {
		return l.Elements(), nil
	}
	return nil, value.NewError(posOf(v), "Value is not a list.")
}

// ToNumber evaluates v in sc and requires the result to be an atom whose
// symbol has the lexical shape of a numeric literal, returning the parsed
// value.
func (ip *Interpreter) ToNumber(v value.Value, sc *Scope) (float64, error) {
	result, err := ip.evalOrPass(v, sc)
	if err != nil {
		return 0, err
	}
	if a, ok := result.(*value.Atom); ok && litutil.IsNumber(a.Symbol()) {
		return litutil.ParseNumber(a.Symbol())
	}
	return 0, value.NewError(posOf(v), "Value is not a number.")
}

// ToFunction evaluates v in sc and requires the result to be a function
// value.
func (ip *Interpreter) ToFunction(v value.Value, sc *Scope) (*value.Function, error) {
	result, err := ip.evalOrPass(v, sc)
	if err != nil {
		return nil, err
	}
	if f, ok := result.(*value.Function); ok {
		return f, nil
	}
	return nil, value.NewError(posOf(v), "Value is not a function.")
}

func (ip *Interpreter) evalOrPass(v value.Value, sc *Scope) (value.Value, error) {
	if sc == nil {
		return v, nil
	}
	return ip.Eval(v, sc)
}

// callFunction looks up name first in the custom-function registry, then
// in the builtin table, and dispatches accordingly. Custom functions
// always evaluate their arguments in sc before binding; builtins receive
// the unevaluated argument expressions and decide for themselves.
func (ip *Interpreter) callFunction(name string, argExprs []value.Value, sc *Scope, pos value.Pos) (value.Value, error) {
	if fn, ok := ip.functions[name]; ok {
		args := make([]value.Value, len(argExprs))
		for i, expr := range argExprs {
			v, err := ip.Eval(expr, sc)
			if err != nil {
				return nil, err
			}
			args[i] = v
		}
		return ip.callCustom(fn, args, sc)
	}

	if b, ok := builtins[name]; ok {
		return b(ip, newArgs(argExprs), sc, pos)
	}

	return nil, value.NewError(pos, "Unrecognized function: `%s'", name)
}

// callCustom applies fn to already-evaluated args. The child scope (only
// created when fn has at least one parameter) is parented to sc, the
// scope active at the call site — custom functions in this language are
// not lexical closures over their definition environment; they resolve
// free variables against the caller's scope chain, exactly as the
// reference implementation does by threading the call-site scope through
// every application.
func (ip *Interpreter) callCustom(fn *value.Function, args []value.Value, sc *Scope) (value.Value, error) {
	params := fn.Params()
	label := functionLabel(fn)

	if len(args) < len(params) {
		return nil, value.NewError(fn.Pos(), "%s: Not enough arguments.", label)
	}
	if len(args) > len(params) {
		return nil, value.NewError(fn.Pos(), "%s: Too many arguments.", label)
	}

	callScope := sc
	if len(params) > 0 {
		callScope = NewScope(sc)
		for i, p := range params {
			callScope.Let(p, args[i])
		}
	}

	result, err := ip.Eval(fn.Body(), callScope)
	if err != nil {
		if rs, ok := err.(*returnSignal); ok {
			return rs.value, nil
		}
		return nil, err
	}
	return result, nil
}

// callFunctionValue applies a function value directly, bypassing name
// lookup: used by `apply`, `map` and `filter`, which already hold the
// callee as a value rather than as a name to resolve.
func (ip *Interpreter) callFunctionValue(fn *value.Function, args []value.Value, sc *Scope, pos value.Pos) (value.Value, error) {
	if !fn.IsBuiltin() {
		return ip.callCustom(fn, args, sc)
	}
	return ip.callFunction(fn.BuiltinName(), quoteWrap(args, pos), sc, pos)
}

// quoteWrap wraps each already-evaluated value in a (quote v) form, so
// that passing it through the unevaluated-argument-expression protocol a
// builtin expects (evaluate each expression itself) returns the value
// unchanged rather than re-evaluating it.
func quoteWrap(values []value.Value, pos value.Pos) []value.Value {
	wrapped := make([]value.Value, len(values))
	for i, v := range values {
		wrapped[i] = value.NewList([]value.Value{value.NewAtom("quote", pos), v}, pos)
	}
	return wrapped
}

func functionLabel(fn *value.Function) string {
	if name, ok := fn.Name(); ok {
		return name
	}
	return "<anonymous>"
}
