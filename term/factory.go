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

package term

import (
	"fmt"
	"strconv"

	"github.com/lakemeyer-levesque/eslk"
)

// FuncSymbol identifies a function symbol of fixed arity and result sort.
type FuncSymbol struct {
	id    uint64
	sort  Sort
	arity int
	label string
}

// Arity returns the function symbol's arity.
func (f FuncSymbol) Arity() int { return f.arity }

// Sort returns the function symbol's result sort.
func (f FuncSymbol) Sort() Sort { return f.sort }

func (f FuncSymbol) String() string { return f.label }

// NameSymbol identifies a standard-name symbol. Only rigid sorts may have
// arity > 0 (co-designating complex names).
type NameSymbol struct {
	id    uint64
	sort  Sort
	arity int
	label string
}

// Arity returns the name symbol's arity.
func (n NameSymbol) Arity() int { return n.arity }

func (n NameSymbol) String() string { return n.label }

// Factory interns sorts, variables, names, and function symbols. It is the
// one shared, read-mostly structure in the engine (spec.md 5): new symbols
// only ever get appended, existing ones are never renumbered or mutated, so
// a Factory can be safely handed by reference to many setups.
type Factory struct {
	nextID uint64

	sorts []Sort

	nameZero map[nameKey]Term   // interned arity-0 names
	nameApp  map[string]Term    // interned complex (rigid-sort) names
	funcApp  map[string]Term    // interned function applications

	freshCounter map[uint64]uint64 // per-sort counter for FreshName
}

type nameKey struct {
	sort  uint64
	label string
}

// NewFactory returns an empty term factory.
func NewFactory() *Factory {
	return &Factory{
		nameZero:     make(map[nameKey]Term),
		nameApp:      make(map[string]Term),
		funcApp:      make(map[string]Term),
		freshCounter: make(map[uint64]uint64),
	}
}

func (f *Factory) fresh() uint64 {
	f.nextID++
	return f.nextID
}

// CreateSort allocates a fresh sort. If rigid, standard names of this sort
// may carry arguments (complex, co-designating names).
func (f *Factory) CreateSort(label string, rigid bool) Sort {
	s := Sort{id: f.fresh(), label: label, rigid: rigid}
	f.sorts = append(f.sorts, s)
	return s
}

// CreateVar returns a fresh variable of the given sort, distinct from every
// other variable ever created by this factory.
func (f *Factory) CreateVar(sort Sort) Term {
	return Term{kind: Variable, sort: sort, id: f.fresh()}
}

// NamedVar returns a fresh variable that also carries a display label (only
// used for pretty-printing; identity is still by id).
func (f *Factory) NamedVar(sort Sort, label string) Term {
	t := f.CreateVar(sort)
	t.symbol = label
	return t
}

// CreateNameSymbol declares a name symbol of the given arity. Arity > 0 is
// only allowed for rigid sorts.
func (f *Factory) CreateNameSymbol(sort Sort, label string, arity int) (NameSymbol, error) {
	if arity > 0 && !sort.Rigid() {
		return NameSymbol{}, eslk.NewFault(eslk.FaultUnknownSort, fmt.Sprintf("non-rigid sort %s cannot carry a complex name %s/%d", sort, label, arity))
	}
	return NameSymbol{id: f.fresh(), sort: sort, arity: arity, label: label}, nil
}

// Name constructs (and interns) a standard name from a name symbol and its
// arguments, which must all be ground names. Arity-0 names are interned by
// (sort, label); complex names are interned by symbol id and argument
// identity.
func (f *Factory) Name(sym NameSymbol, args ...Term) (Term, error) {
	if len(args) != sym.arity {
		return Term{}, eslk.NewFault(eslk.FaultArityMismatch, fmt.Sprintf("name %s: want %d args, got %d", sym.label, sym.arity, len(args)))
	}
	for _, a := range args {
		if a.Kind() != Name {
			return Term{}, eslk.NewFault(eslk.FaultNonPrimitive, fmt.Sprintf("name %s argument %s is not a standard name", sym.label, a))
		}
	}
	if sym.arity == 0 {
		key := nameKey{sort: sym.sort.id, label: sym.label}
		if t, ok := f.nameZero[key]; ok {
			return t, nil
		}
		t := Term{kind: Name, sort: sym.sort, id: f.fresh(), symbol: sym.label}
		f.nameZero[key] = t
		return t, nil
	}
	key := internKey(sym.id, args)
	if t, ok := f.nameApp[key]; ok {
		return t, nil
	}
	t := Term{kind: Name, sort: sym.sort, id: f.fresh(), symbol: sym.label, args: append([]Term(nil), args...)}
	f.nameApp[key] = t
	return t, nil
}

// CreateFunSymbol declares a function symbol of the given result sort and
// arity.
func (f *Factory) CreateFunSymbol(sort Sort, label string, arity int) FuncSymbol {
	return FuncSymbol{id: f.fresh(), sort: sort, arity: arity, label: label}
}

// Apply constructs (and interns) a function application. Arguments may be
// variables or names (or further applications); the result is ground iff
// every argument is ground.
func (f *Factory) Apply(sym FuncSymbol, args ...Term) (Term, error) {
	if len(args) != sym.arity {
		return Term{}, eslk.NewFault(eslk.FaultArityMismatch, fmt.Sprintf("function %s: want %d args, got %d", sym.label, sym.arity, len(args)))
	}
	key := internKey(sym.id, args)
	if t, ok := f.funcApp[key]; ok {
		return t, nil
	}
	t := Term{kind: Function, sort: sym.sort, id: f.fresh(), symbol: sym.label, args: append([]Term(nil), args...)}
	f.funcApp[key] = t
	return t, nil
}

// FreshName returns a new arity-0 standard name of the given sort, distinct
// from every name returned so far (for this sort, by this factory). Used by
// the grounder to pad H+ with placeholders (spec.md 4.4.1).
func (f *Factory) FreshName(sort Sort) Term {
	n := f.freshCounter[sort.id]
	f.freshCounter[sort.id] = n + 1
	label := "#" + sort.String() + "_" + strconv.FormatUint(n, 10)
	sym, err := f.CreateNameSymbol(sort, label, 0)
	if err != nil {
		// CreateNameSymbol only errors for arity > 0.
		panic(err)
	}
	t, err := f.Name(sym)
	if err != nil {
		panic(err)
	}
	return t
}

func internKey(symID uint64, args []Term) string {
	// Arguments of an interned application are always themselves interned
	// (or variables, which are unique by id), so identifying by id chains
	// is enough; we never need to recurse into structural equality here.
	b := make([]byte, 0, 8+8*len(args))
	b = appendUint(b, symID)
	for _, a := range args {
		b = append(b, byte(a.kind))
		b = appendUint(b, a.sort.id)
		b = appendUint(b, a.id)
	}
	return string(b)
}

func appendUint(b []byte, v uint64) []byte {
	for i := 0; i < 8; i++ {
		b = append(b, byte(v))
		v >>= 8
	}
	return b
}
