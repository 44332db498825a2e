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

// Package eslk is the module root: the shared error type every other
// package in this repository returns for a caller-facing shape error
// (spec.md 7). Reasoning-level types (terms, clauses, setups, the
// entailment front end) live in their own subpackages; this file only
// holds the cross-cutting error taxonomy so that none of them need to
// import each other just to report a malformed sort or a non-primitive
// literal.
package eslk

import "fmt"

// Kind distinguishes the caller-bug shape errors spec.md 7 names from
// each other, so a caller can switch on the failure without parsing a
// message string.
type Kind int

const (
	// FaultUnknownSort means a sort was referenced that was never
	// created via a factory, or was used in a way it does not allow
	// (a complex name declared on a non-rigid sort).
	FaultUnknownSort Kind = iota
	// FaultArityMismatch means a function or name symbol was applied
	// to the wrong number of arguments.
	FaultArityMismatch
	// FaultFreeVariable means a query or axiom contains a variable not
	// bound by any enclosing quantifier.
	FaultFreeVariable
	// FaultNonPrimitive means a literal's left-hand side was not a
	// function applied to names or variables, or its right-hand side was
	// neither a name nor a variable; it is also returned when a complex
	// name is given an argument that is not a standard name.
	FaultNonPrimitive
	// FaultNotInitialized means a query was asked of an Engine before
	// Init had ever been called on it.
	FaultNotInitialized
)

func (k Kind) String() string {
	switch k {
	case FaultUnknownSort:
		return "unknown sort"
	case FaultArityMismatch:
		return "arity mismatch"
	case FaultFreeVariable:
		return "query contains free variables"
	case FaultNonPrimitive:
		return "non-primitive literal"
	case FaultNotInitialized:
		return "engine not initialized"
	default:
		return "unknown fault"
	}
}

// Fault is a shape error (spec.md 7): a caller bug that fails fast at
// the API boundary rather than corrupting engine state. It is never
// returned for a budget-exhausted entailment result — that is the
// tri-valued kb.Unknown outcome, not an error.
type Fault struct {
	Kind    Kind
	Detail  string
	Wrapped error
}

// NewFault builds a Fault of the given kind with a human-readable detail
// string.
func NewFault(kind Kind, detail string) *Fault {
	return &Fault{Kind: kind, Detail: detail}
}

func (f *Fault) Error() string {
	if f.Detail == "" {
		return f.Kind.String()
	}
	return fmt.Sprintf("%s: %s", f.Kind, f.Detail)
}

func (f *Fault) Unwrap() error { return f.Wrapped }
