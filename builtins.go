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
	"fmt"
	"os"

	"github.com/RauliL/bali/internal/iowriter"
	"github.com/RauliL/bali/parser"
	"github.com/RauliL/bali/value"
)

// builtinFunc is the shape every primitive operator implements: given the
// caller's unevaluated argument expressions and scope, produce a value or
// an error. The builtin decides for itself which expressions to evaluate
// and with which coercion helper.
type builtinFunc func(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error)

// builtins is the complete, package-level primitive vocabulary, shared by
// every Interpreter instance — unlike the custom-function registry, a
// builtin has no per-instance state, so there is nothing to gain by
// duplicating this table per Interpreter.
var builtins map[string]builtinFunc

func init() {
	builtins = map[string]builtinFunc{
		"+":      biAdd,
		"-":      biSubtract,
		"*":      biMultiply,
		"/":      biDivide,
		"=":      biEq,
		"<":      biLt,
		">":      biGt,
		"<=":     biLte,
		">=":     biGte,
		"length": biLength,
		"cons":   biCons,
		"car":    biCar,
		"cdr":    biCdr,
		"list":   biList,
		"append": biAppend,
		"filter": biFilter,
		"map":    biMap,
		"not":    biNot,
		"and":    biAnd,
		"or":     biOr,
		"if":     biIf,
		"setq":   biSetq,
		"let":    biLet,
		"quote":  biQuote,
		"apply":  biApply,
		"defun":  biDefun,
		"lambda": biLambda,
		"return": biReturn,
		"load":   biLoad,
		"write":  biWrite,
	}
}

func biAdd(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	var result float64
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		n, err := ip.ToNumber(expr, sc)
		if err != nil {
			return nil, err
		}
		result += n
	}
	return value.NewNumberAtom(result, pos), nil
}

func biSubtract(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	first, err := eat("-", args, pos)
	if err != nil {
		return nil, err
	}
	result, err := ip.ToNumber(first, sc)
	if err != nil {
		return nil, err
	}

	if args.Done() {
		return value.NewNumberAtom(-result, pos), nil
	}
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		n, err := ip.ToNumber(expr, sc)
		if err != nil {
			return nil, err
		}
		result -= n
	}
	return value.NewNumberAtom(result, pos), nil
}

func biMultiply(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	result := 1.0
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		n, err := ip.ToNumber(expr, sc)
		if err != nil {
			return nil, err
		}
		result *= n
	}
	return value.NewNumberAtom(result, pos), nil
}

func biDivide(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	first, err := eat("/", args, pos)
	if err != nil {
		return nil, err
	}
	result, err := ip.ToNumber(first, sc)
	if err != nil {
		return nil, err
	}
	if args.Done() {
		return nil, value.NewError(pos, "/: Not enough arguments.")
	}
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		divisor, err := ip.ToNumber(expr, sc)
		if err != nil {
			return nil, err
		}
		if divisor == 0 {
			return nil, value.NewError(pos, "/: Division by zero.")
		}
		result /= divisor
	}
	return value.NewNumberAtom(result, pos), nil
}

func biCompare(name string, satisfies func(a, b float64) bool) builtinFunc {
	return func(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
		expr, ok := args.Next()
		if !ok {
			return value.NewBoolAtom(true, pos), nil
		}
		operand, err := ip.ToNumber(expr, sc)
		if err != nil {
			return nil, err
		}
		for {
			next, ok := args.Next()
			if !ok {
				break
			}
			n, err := ip.ToNumber(next, sc)
			if err != nil {
				return nil, err
			}
			if !satisfies(operand, n) {
				return value.NewBoolAtom(false, pos), nil
			}
			operand = n
		}
		return value.NewBoolAtom(true, pos), nil
	}
}

var (
	biEq  = biCompare("=", func(a, b float64) bool { return a == b })
	biLt  = biCompare("<", func(a, b float64) bool { return a < b })
	biGt  = biCompare(">", func(a, b float64) bool { return a > b })
	biLte = biCompare("<=", func(a, b float64) bool { return a <= b })
	biGte = biCompare(">=", func(a, b float64) bool { return a >= b })
)

func biLength(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	arg, err := eat("length", args, pos)
	if err != nil {
		return nil, err
	}
	list, err := ip.ToList(arg, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("length", args, pos); err != nil {
		return nil, err
	}
	return value.NewNumberAtom(float64(len(list)), pos), nil
}

func biCons(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	headExpr, err := eat("cons", args, pos)
	if err != nil {
		return nil, err
	}
	head, err := ip.Eval(headExpr, sc)
	if err != nil {
		return nil, err
	}
	tailExpr, err := eat("cons", args, pos)
	if err != nil {
		return nil, err
	}
	tail, err := ip.ToList(tailExpr, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("cons", args, pos); err != nil {
		return nil, err
	}

	result := make([]value.Value, 0, len(tail)+1)
	result = append(result, head)
	result = append(result, tail...)
	return value.NewList(result, pos), nil
}

func biCar(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	arg, err := eat("car", args, pos)
	if err != nil {
		return nil, err
	}
	list, err := ip.ToList(arg, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("car", args, pos); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, value.NewError(pos, "car: Empty list.")
	}
	return list[0], nil
}

func biCdr(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	arg, err := eat("cdr", args, pos)
	if err != nil {
		return nil, err
	}
	list, err := ip.ToList(arg, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("cdr", args, pos); err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, value.NewError(pos, "cdr: Empty list.")
	}
	return value.NewList(list[1:], pos), nil
}

func biList(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	var result []value.Value
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		v, err := ip.Eval(expr, sc)
		if err != nil {
			return nil, err
		}
		result = append(result, v)
	}
	return value.NewList(result, pos), nil
}

func biAppend(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	var result []value.Value
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		list, err := ip.ToList(expr, sc)
		if err != nil {
			return nil, err
		}
		result = append(result, list...)
	}
	return value.NewList(result, pos), nil
}

func biFilter(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	listExpr, err := eat("filter", args, pos)
	if err != nil {
		return nil, err
	}
	fnExpr, err := eat("filter", args, pos)
	if err != nil {
		return nil, err
	}
	if err := finish("filter", args, pos); err != nil {
		return nil, err
	}

	list, err := ip.ToList(listExpr, sc)
	if err != nil {
		return nil, err
	}
	fn, err := ip.ToFunction(fnExpr, sc)
	if err != nil {
		return nil, err
	}

	var result []value.Value
	for _, x := range list {
		v, err := ip.callFunctionValue(fn, []value.Value{x}, sc, pos)
		if err != nil {
			return nil, err
		}
		keep, err := ip.ToBool(v, nil)
		if err != nil {
			return nil, err
		}
		if keep {
			result = append(result, x)
		}
	}
	return value.NewList(result, pos), nil
}

func biMap(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	listExpr, err := eat("map", args, pos)
	if err != nil {
		return nil, err
	}
	fnExpr, err := eat("map", args, pos)
	if err != nil {
		return nil, err
	}
	if err := finish("map", args, pos); err != nil {
		return nil, err
	}

	list, err := ip.ToList(listExpr, sc)
	if err != nil {
		return nil, err
	}
	fn, err := ip.ToFunction(fnExpr, sc)
	if err != nil {
		return nil, err
	}

	result := make([]value.Value, len(list))
	for i, x := range list {
		v, err := ip.callFunctionValue(fn, []value.Value{x}, sc, pos)
		if err != nil {
			return nil, err
		}
		result[i] = v
	}
	return value.NewList(result, pos), nil
}

func biNot(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	arg, err := eat("not", args, pos)
	if err != nil {
		return nil, err
	}
	condition, err := ip.ToBool(arg, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("not", args, pos); err != nil {
		return nil, err
	}
	return value.NewBoolAtom(!condition, pos), nil
}

func biAnd(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		truthy, err := ip.ToBool(expr, sc)
		if err != nil {
			return nil, err
		}
		if !truthy {
			return value.NewBoolAtom(false, pos), nil
		}
	}
	return value.NewBoolAtom(true, pos), nil
}

func biOr(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		truthy, err := ip.ToBool(expr, sc)
		if err != nil {
			return nil, err
		}
		if truthy {
			return value.NewBoolAtom(true, pos), nil
		}
	}
	return value.NewBoolAtom(false, pos), nil
}

func biIf(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	condition, err := eat("if", args, pos)
	if err != nil {
		return nil, err
	}
	thenExpr, err := eat("if", args, pos)
	if err != nil {
		return nil, err
	}
	var elseExpr value.Value
	if !args.Done() {
		elseExpr, _ = args.Next()
	}
	if err := finish("if", args, pos); err != nil {
		return nil, err
	}

	truthy, err := ip.ToBool(condition, sc)
	if err != nil {
		return nil, err
	}
	if truthy {
		return ip.Eval(thenExpr, sc)
	}
	return ip.Eval(elseExpr, sc)
}

func biSetq(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	nameExpr, err := eat("setq", args, pos)
	if err != nil {
		return nil, err
	}
	name, err := ip.ToAtom(nameExpr, nil)
	if err != nil {
		return nil, err
	}
	valueExpr, err := eat("setq", args, pos)
	if err != nil {
		return nil, err
	}
	v, err := ip.Eval(valueExpr, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("setq", args, pos); err != nil {
		return nil, err
	}

	sc.Set(name, v)
	return v, nil
}

func biLet(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	bindingsExpr, err := eat("let", args, pos)
	if err != nil {
		return nil, err
	}
	bindings, err := ip.ToList(bindingsExpr, nil)
	if err != nil {
		return nil, err
	}

	childScope := NewScope(sc)
	for _, entry := range bindings {
		if pair, ok := entry.(*value.List); ok {
			elements := pair.Elements()
			if len(elements) != 2 {
				return nil, value.NewError(entry.Pos(), "Malformed `let` binding.")
			}
			name, err := ip.ToAtom(elements[0], nil)
			if err != nil {
				return nil, err
			}
			v, err := ip.Eval(elements[1], sc)
			if err != nil {
				return nil, err
			}
			childScope.Let(name, v)
		} else {
			name, err := ip.ToAtom(entry, nil)
			if err != nil {
				return nil, err
			}
			childScope.Let(name, nil)
		}
	}

	var result value.Value
	for {
		expr, ok := args.Next()
		if !ok {
			break
		}
		result, err = ip.Eval(expr, childScope)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

func biQuote(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	arg, err := eat("quote", args, pos)
	if err != nil {
		return nil, err
	}
	if err := finish("quote", args, pos); err != nil {
		return nil, err
	}
	return arg, nil
}

func biApply(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	targetExpr, err := eat("apply", args, pos)
	if err != nil {
		return nil, err
	}
	target, err := ip.Eval(targetExpr, sc)
	if err != nil {
		return nil, err
	}
	listExpr, err := eat("apply", args, pos)
	if err != nil {
		return nil, err
	}
	argValues, err := ip.ToList(listExpr, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("apply", args, pos); err != nil {
		return nil, err
	}

	if fn, ok := target.(*value.Function); ok {
		return ip.callFunctionValue(fn, argValues, sc, pos)
	}

	name, err := ip.ToAtom(target, nil)
	if err != nil {
		return nil, err
	}
	return ip.callFunction(name, quoteWrap(argValues, pos), sc, pos)
}

func parseParamNames(ip *Interpreter, raw []value.Value) ([]string, error) {
	params := make([]string, len(raw))
	for i, p := range raw {
		name, err := ip.ToAtom(p, nil)
		if err != nil {
			return nil, err
		}
		params[i] = name
	}
	return params, nil
}

func biDefun(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	nameExpr, err := eat("defun", args, pos)
	if err != nil {
		return nil, err
	}
	name, err := ip.ToAtom(nameExpr, nil)
	if err != nil {
		return nil, err
	}
	paramsExpr, err := eat("defun", args, pos)
	if err != nil {
		return nil, err
	}
	rawParams, err := ip.ToList(paramsExpr, nil)
	if err != nil {
		return nil, err
	}
	body, err := eat("defun", args, pos)
	if err != nil {
		return nil, err
	}
	if err := finish("defun", args, pos); err != nil {
		return nil, err
	}

	params, err := parseParamNames(ip, rawParams)
	if err != nil {
		return nil, err
	}

	return ip.DefineFunction(name, params, body, pos), nil
}

func biLambda(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	paramsExpr, err := eat("lambda", args, pos)
	if err != nil {
		return nil, err
	}
	rawParams, err := ip.ToList(paramsExpr, nil)
	if err != nil {
		return nil, err
	}
	body, err := eat("lambda", args, pos)
	if err != nil {
		return nil, err
	}
	if err := finish("lambda", args, pos); err != nil {
		return nil, err
	}

	params, err := parseParamNames(ip, rawParams)
	if err != nil {
		return nil, err
	}

	return value.NewCustomFunction(params, body, "", pos), nil
}

func biReturn(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	var result value.Value
	if !args.Done() {
		expr, _ := args.Next()
		v, err := ip.Eval(expr, sc)
		if err != nil {
			return nil, err
		}
		result = v
	}
	if err := finish("return", args, pos); err != nil {
		return nil, err
	}
	return nil, &returnSignal{value: result}
}

func biLoad(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	nameExpr, err := eat("load", args, pos)
	if err != nil {
		return nil, err
	}
	filename, err := ip.ToAtom(nameExpr, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("load", args, pos); err != nil {
		return nil, err
	}

	contents, err := os.ReadFile(filename)
	if err != nil {
		return nil, value.NewError(pos, "Unable to open file `%s'.", filename)
	}

	forms, err := parser.Parse(ip.Syntax, string(contents), 1)
	if err != nil {
		return nil, err
	}
	for _, form := range forms {
		if _, err := ip.Eval(form, sc); err != nil {
			return nil, err
		}
	}
	return nil, nil
}

func biWrite(ip *Interpreter, args *Args, sc *Scope, pos value.Pos) (value.Value, error) {
	arg, err := eat("write", args, pos)
	if err != nil {
		return nil, err
	}
	v, err := ip.Eval(arg, sc)
	if err != nil {
		return nil, err
	}
	if err := finish("write", args, pos); err != nil {
		return nil, err
	}

	ew := iowriter.NewErrWriter(ip.Output)
	fmt.Fprintln(ew, value.ToString(v))
	if ew.Err != nil {
		return nil, value.NewError(pos, "write: %s", ew.Err)
	}
	return nil, nil
}
