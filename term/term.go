// Copyright (c) 2014, Kevin Walsh.  All rights reserved.
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

// Package term implements the hash-consed term language of the reasoning
// kernel: sorts, variables, standard names, and function applications.
//
// Equality of two terms coming from the same Factory is decided by their
// interned identity, the same trick the reference datalog engine uses for
// its Var/Const/Pred values: two objects are "the same" iff they are the
// same object, and the factory is the only thing that hands out objects.
package term

import (
	"fmt"
	"strings"
)

// Kind tags what a Term is.
type Kind int

const (
	// Variable is an unbound placeholder, e.g. X, Y.
	Variable Kind = iota
	// Name is a standard name. Arity zero unless its sort is rigid.
	Name
	// Function is a function symbol applied to arguments.
	Function
)

func (k Kind) String() string {
	switch k {
	case Variable:
		return "variable"
	case Name:
		return "name"
	case Function:
		return "function"
	default:
		return "unknown"
	}
}

// Sort is an opaque sort identifier. Equality is identity, compared by id.
// A rigid sort allows standard names of arity > 0 (co-designating complex
// names); every other sort only allows arity-0 names.
type Sort struct {
	id    uint64
	label string
	rigid bool
}

// Rigid reports whether names of this sort may carry arguments.
func (s Sort) Rigid() bool { return s.rigid }

// Equal reports whether two sorts are the same sort.
func (s Sort) Equal(o Sort) bool { return s.id == o.id }

// Less gives sorts a total order, used to make term comparisons deterministic.
func (s Sort) Less(o Sort) bool { return s.id < o.id }

func (s Sort) String() string {
	if s.label != "" {
		return s.label
	}
	return fmt.Sprintf("sort%d", s.id)
}

// Term is a variable, a standard name, or a function application. Terms
// produced by the same Factory compare equal iff they are the identical
// intern; terms built by hand (e.g. after Substitute) compare equal iff
// structurally equal, so Equal never needs a Factory.
type Term struct {
	kind   Kind
	sort   Sort
	id     uint64 // unique per variable and per interned 0-arity name/application
	symbol string // display name of the name/function symbol
	args   []Term // function arguments, or arguments of a complex rigid name
}

// Sort returns the term's sort.
func (t Term) Sort() Sort { return t.sort }

// Kind returns the term's kind.
func (t Term) Kind() Kind { return t.kind }

// IsVariable reports whether t is a variable.
func (t Term) IsVariable() bool { return t.kind == Variable }

// IsName reports whether t is a standard name.
func (t Term) IsName() bool { return t.kind == Name }

// IsFunction reports whether t is a function application.
func (t Term) IsFunction() bool { return t.kind == Function }

// Symbol returns the display symbol of a name or function term.
func (t Term) Symbol() string { return t.symbol }

// ID returns the term's intern id: unique per variable and per interned
// 0-arity name/application within a Factory. Used as a map key by callers
// that need to deduplicate variables (e.g. query.FreeVariables).
func (t Term) ID() uint64 { return t.id }

// Args returns the arguments of a function application or complex name.
// Returns nil for variables and arity-0 names.
func (t Term) Args() []Term { return t.args }

// IsGround reports whether no variable occurs in t.
func (t Term) IsGround() bool {
	switch t.kind {
	case Variable:
		return false
	case Name:
		return true // names are built only from names, recursively ground
	case Function:
		for _, a := range t.args {
			if !a.IsGround() {
				return false
			}
		}
		return true
	}
	return false
}

// IsPrimitive reports whether t is a function applied only to names, i.e.
// it is the left-hand side shape a quasi-primitive literal requires.
func (t Term) IsPrimitive() bool {
	if t.kind != Function {
		return false
	}
	for _, a := range t.args {
		if a.Kind() != Name {
			return false
		}
	}
	return true
}

// Equal reports whether two terms denote the same thing: same kind, same
// sort, same identity (for leaves) or same symbol and equal arguments (for
// compounds). This is defined structurally so it works for terms that were
// never re-interned after a Substitute.
func (t Term) Equal(o Term) bool {
	if t.kind != o.kind || !t.sort.Equal(o.sort) {
		return false
	}
	switch t.kind {
	case Variable:
		return t.id == o.id
	case Name:
		if len(t.args) == 0 && len(o.args) == 0 {
			return t.id == o.id
		}
		return t.symbol == o.symbol && equalArgs(t.args, o.args)
	case Function:
		return t.symbol == o.symbol && equalArgs(t.args, o.args)
	}
	return false
}

func equalArgs(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Less gives terms a total, deterministic order: first by kind, then sort,
// then identity/symbol, then arguments lexicographically. This ordering is
// load-bearing for clause and setup canonicalisation (spec.md 4.1).
func (t Term) Less(o Term) bool {
	if t.kind != o.kind {
		return t.kind < o.kind
	}
	if !t.sort.Equal(o.sort) {
		return t.sort.Less(o.sort)
	}
	switch t.kind {
	case Variable:
		return t.id < o.id
	case Name:
		if len(t.args) == 0 && len(o.args) == 0 {
			return t.id < o.id
		}
		if t.symbol != o.symbol {
			return t.symbol < o.symbol
		}
		return lessArgs(t.args, o.args)
	case Function:
		if t.symbol != o.symbol {
			return t.symbol < o.symbol
		}
		return lessArgs(t.args, o.args)
	}
	return false
}

func lessArgs(a, b []Term) bool {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Equal(b[i]) {
			continue
		}
		return a[i].Less(b[i])
	}
	return len(a) < len(b)
}

func (t Term) String() string {
	switch t.kind {
	case Variable:
		if t.symbol != "" {
			return t.symbol
		}
		return fmt.Sprintf("_%d", t.id)
	case Name:
		if len(t.args) == 0 {
			return t.symbol
		}
		return t.symbol + argsString(t.args)
	case Function:
		return t.symbol + argsString(t.args)
	}
	return "?"
}

func argsString(args []Term) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = a.String()
	}
	return "(" + strings.Join(parts, ",") + ")"
}
