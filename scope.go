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

// Scope is a parent-linked name-to-value environment. Every let/lambda/defun
// invocation that binds at least one parameter creates a child scope; the
// top-level scope is the distinguished root with a nil parent.
type Scope struct {
	parent    *Scope
	variables map[string]value.Value
}

// NewScope creates a scope with the given parent. A nil parent makes it a
// top-level scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, variables: make(map[string]value.Value)}
}

// has reports whether name is bound in this scope or any of its ancestors.
func (s *Scope) has(name string) bool {
	if _, ok := s.variables[name]; ok {
		return true
	}
	if s.parent != nil {
		return s.parent.has(name)
	}
	return false
}

// Get returns the binding for name from the nearest scope in the chain that
// has it. The second return value reports whether it was found; it never
// fails outright.
func (s *Scope) Get(name string) (value.Value, bool) {
	if v, ok := s.variables[name]; ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.Get(name)
	}
	return nil, false
}

// Let binds name in this scope. Any shadowed outer binding of the same name
// is left untouched.
func (s *Scope) Let(name string, v value.Value) {
	s.variables[name] = v
}

// Set overwrites the nearest enclosing binding of name, checking this scope
// itself before walking up the parent chain. If no scope in the chain has
// name, it is created in the current scope. Set never fails.
func (s *Scope) Set(name string, v value.Value) {
	if _, ok := s.variables[name]; ok {
		s.variables[name] = v
		return
	}
	if s.parent != nil && s.parent.has(name) {
		s.parent.Set(name, v)
		return
	}
	s.variables[name] = v
}
