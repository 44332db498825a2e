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

package query

import (
	"strings"

	"github.com/lakemeyer-levesque/eslk/term"
)

// FreeVariables collects every variable occurring in f that is not bound
// by an enclosing Exists/ForAll within f itself. Called after Normalise,
// where every quantifier has already been grounded away, any variable
// this returns is a genuinely free one a caller-facing query must reject
// (spec.md 6, 7).
func FreeVariables(f Formula) []term.Term {
	bound := make(map[uint64]bool)
	out := make(map[uint64]term.Term)
	var walk func(Formula)
	walk = func(f Formula) {
		switch n := f.(type) {
		case constFormula:
		case eqFormula:
			collectVar(n.t1, bound, out)
			collectVar(n.t2, bound, out)
		case litFormula:
			for _, t := range n.lit.Z {
				collectVar(t, bound, out)
			}
			collectVar(n.lit.LHS, bound, out)
			collectVar(n.lit.RHS, bound, out)
		case notFormula:
			walk(n.f)
		case andFormula:
			for _, fi := range n.fs {
				walk(fi)
			}
		case orFormula:
			for _, fi := range n.fs {
				walk(fi)
			}
		case boxFormula:
			collectVar(n.action, bound, out)
			walk(n.f)
		case existsFormula:
			bound[n.v.ID()] = true
			walk(n.f)
		case forallFormula:
			bound[n.v.ID()] = true
			walk(n.f)
		case knowFormula:
			for _, t := range n.z {
				collectVar(t, bound, out)
			}
			walk(n.f)
		case belFormula:
			for _, t := range n.z {
				collectVar(t, bound, out)
			}
			walk(n.negPhi)
			walk(n.psi)
		}
	}
	walk(f)
	vs := make([]term.Term, 0, len(out))
	for _, t := range out {
		vs = append(vs, t)
	}
	return vs
}

func collectVar(t term.Term, bound map[uint64]bool, out map[uint64]term.Term) {
	if t.IsVariable() && !bound[t.ID()] {
		out[t.ID()] = t
		return
	}
	for _, a := range t.Args() {
		collectVar(a, bound, out)
	}
}

// Names collects every standard name occurring literally in f: literal
// situations and sides, term-equality sides, and box/K/Bel action
// prefixes. The entailment front end diffs this against what it has
// already grounded to tell whether a query introduces a name no earlier
// axiom or query mentioned (spec.md 2, 4.4.1).
func Names(f Formula) []term.Term {
	out := make(map[string]term.Term)
	var walk func(Formula)
	walk = func(f Formula) {
		switch n := f.(type) {
		case constFormula:
		case eqFormula:
			collectName(n.t1, out)
			collectName(n.t2, out)
		case litFormula:
			for _, t := range n.lit.Z {
				collectName(t, out)
			}
			collectName(n.lit.LHS, out)
			collectName(n.lit.RHS, out)
		case notFormula:
			walk(n.f)
		case andFormula:
			for _, fi := range n.fs {
				walk(fi)
			}
		case orFormula:
			for _, fi := range n.fs {
				walk(fi)
			}
		case boxFormula:
			collectName(n.action, out)
			walk(n.f)
		case existsFormula:
			walk(n.f)
		case forallFormula:
			walk(n.f)
		case knowFormula:
			for _, t := range n.z {
				collectName(t, out)
			}
			walk(n.f)
		case belFormula:
			for _, t := range n.z {
				collectName(t, out)
			}
			walk(n.negPhi)
			walk(n.psi)
		}
	}
	walk(f)
	vs := make([]term.Term, 0, len(out))
	for _, t := range out {
		vs = append(vs, t)
	}
	return vs
}

func collectName(t term.Term, out map[string]term.Term) {
	if t.IsName() {
		out[t.String()] = t
	}
	for _, a := range t.Args() {
		collectName(a, out)
	}
}

// ActionSequences returns every distinct, non-empty action sequence f
// mentions, in action-box nesting order: a litFormula's own Z, a
// knowFormula/belFormula's situation z (with any enclosing box actions
// prepended), and every box nesting reaching one of those leaves. The
// front end diffs this against what it has already grounded boxed axioms
// into, to tell whether a query references a situation no "actions"
// declaration covered (spec.md 2, 4.4.1 phase 3).
func ActionSequences(f Formula) [][]term.Term {
	seen := make(map[string]bool)
	var out [][]term.Term
	record := func(z []term.Term) {
		if len(z) == 0 {
			return
		}
		key := seqKey(z)
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, append([]term.Term(nil), z...))
	}
	var walk func(actions []term.Term, f Formula)
	walk = func(actions []term.Term, f Formula) {
		switch n := f.(type) {
		case constFormula, eqFormula:
		case litFormula:
			record(append(append([]term.Term(nil), actions...), n.lit.Z...))
		case notFormula:
			walk(actions, n.f)
		case andFormula:
			for _, fi := range n.fs {
				walk(actions, fi)
			}
		case orFormula:
			for _, fi := range n.fs {
				walk(actions, fi)
			}
		case boxFormula:
			walk(append(append([]term.Term(nil), actions...), n.action), n.f)
		case existsFormula:
			walk(actions, n.f)
		case forallFormula:
			walk(actions, n.f)
		case knowFormula:
			record(append(append([]term.Term(nil), actions...), n.z...))
			walk(actions, n.f)
		case belFormula:
			record(append(append([]term.Term(nil), actions...), n.z...))
			walk(actions, n.negPhi)
			walk(actions, n.psi)
		}
	}
	walk(nil, f)
	return out
}

func seqKey(z []term.Term) string {
	var b strings.Builder
	for _, t := range z {
		b.WriteString(t.String())
		b.WriteByte(',')
	}
	return b.String()
}

// IsModalFree reports whether f contains no K/Bel operator anywhere, the
// condition under which the whole formula can be clausified in one shot
// via ToClauses rather than decomposed connective-by-connective (spec.md
// 4.6, 8: decomposing a disjunction per-disjunct loses joint disjunctive
// entailment a single clause split could otherwise prove).
func IsModalFree(f Formula) bool {
	switch n := f.(type) {
	case knowFormula, belFormula:
		return false
	case notFormula:
		return IsModalFree(n.f)
	case andFormula:
		return allModalFree(n.fs)
	case orFormula:
		return allModalFree(n.fs)
	case existsFormula:
		return IsModalFree(n.f)
	case forallFormula:
		return IsModalFree(n.f)
	default:
		return true
	}
}

func allModalFree(fs []Formula) bool {
	for _, f := range fs {
		if !IsModalFree(f) {
			return false
		}
	}
	return true
}

// AsNot reports whether f is a structural negation and returns its
// operand.
func AsNot(f Formula) (Formula, bool) {
	n, ok := f.(notFormula)
	if !ok {
		return nil, false
	}
	return n.f, true
}

// AsAnd reports whether f is a conjunction and returns its conjuncts.
func AsAnd(f Formula) ([]Formula, bool) {
	n, ok := f.(andFormula)
	if !ok {
		return nil, false
	}
	return n.fs, true
}

// AsOr reports whether f is a disjunction and returns its disjuncts.
func AsOr(f Formula) ([]Formula, bool) {
	n, ok := f.(orFormula)
	if !ok {
		return nil, false
	}
	return n.fs, true
}

// AsKnow reports whether f is a knowledge leaf K_k(inner)@z and returns
// its parts.
func AsKnow(f Formula) (z []term.Term, k int, inner Formula, ok bool) {
	n, isK := f.(knowFormula)
	if !isK {
		return nil, 0, nil, false
	}
	return n.z, n.k, n.f, true
}

// AsBel reports whether f is a conditional-belief leaf
// Bel(negPhi => psi, k)@z and returns its parts.
func AsBel(f Formula) (z []term.Term, negPhi, psi Formula, k int, ok bool) {
	n, isB := f.(belFormula)
	if !isB {
		return nil, nil, nil, 0, false
	}
	return n.z, n.negPhi, n.psi, n.k, true
}
