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

// Package ewff implements the equality/sort well-formed-formula guard
// language used to qualify universal clauses (spec.md 4.2). An Ewff is built
// from term equalities/inequalities, sort-membership checks, negation, and
// disjunction; Eval decides it under a variable assignment and Models
// enumerates every satisfying assignment over a Herbrand universe.
package ewff

import (
	"fmt"

	"github.com/lakemeyer-levesque/eslk/term"
)

// Truth is the tri-valued result of evaluating an Ewff against a partial
// assignment: Yes/No when fully decided, Maybe when free variables remain.
type Truth int

const (
	Maybe Truth = iota
	Yes
	No
)

func (t Truth) String() string {
	switch t {
	case Yes:
		return "true"
	case No:
		return "false"
	default:
		return "unknown"
	}
}

// Ewff is the guard language. Implementations are produced only by the
// constructors in this package (True, False, Equal, Unequal, Sort, Neg, Or,
// And), mirroring the tagged-variant AST design note (spec.md 9).
type Ewff interface {
	eval(s term.Subst) Truth
	substitute(s term.Subst) Ewff
	variables(out map[uint64]term.Term)
	names(out map[uint64]term.Term)
	String() string
}

// Eval decides e under the empty assignment.
func Eval(e Ewff) Truth { return e.eval(term.NewSubst()) }

// EvalUnder decides e under assignment s.
func EvalUnder(e Ewff, s term.Subst) Truth { return e.eval(s) }

// Substitute applies s to e, producing a residual Ewff. A ground literal
// inside e collapses to True()/False() as soon as it is decided.
func Substitute(e Ewff, s term.Subst) Ewff { return e.substitute(s) }

// Variables returns the free variables of e.
func Variables(e Ewff) []term.Term {
	out := make(map[uint64]term.Term)
	e.variables(out)
	return values(out)
}

// Names returns the standard names mentioned literally in e.
func Names(e Ewff) []term.Term {
	out := make(map[uint64]term.Term)
	e.names(out)
	return values(out)
}

func values(m map[uint64]term.Term) []term.Term {
	out := make([]term.Term, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out
}

// --- constant ---

type constant struct{ v Truth }

func (c constant) eval(term.Subst) Truth           { return c.v }
func (c constant) substitute(term.Subst) Ewff       { return c }
func (c constant) variables(map[uint64]term.Term)   {}
func (c constant) names(map[uint64]term.Term)       {}
func (c constant) String() string {
	if c.v == Yes {
		return "true"
	}
	return "false"
}

// True returns the trivially-satisfied guard.
func True() Ewff { return constant{Yes} }

// False returns the trivially-unsatisfiable guard; when a clause's guard
// substitutes to False, the clause is vacuously valid and should be dropped
// (spec.md 4.2).
func False() Ewff { return constant{No} }

// --- equality ---

type equality struct {
	t1, t2 term.Term
	sign   bool // true: t1 = t2, false: t1 != t2
}

// Equal builds the guard t1 = t2.
func Equal(t1, t2 term.Term) Ewff { return equality{t1, t2, true} }

// Unequal builds the guard t1 != t2.
func Unequal(t1, t2 term.Term) Ewff { return equality{t1, t2, false} }

func (e equality) eval(s term.Subst) Truth {
	a := e.t1.Chase(s)
	b := e.t2.Chase(s)
	if a.IsVariable() || b.IsVariable() {
		return Maybe
	}
	eq := a.Equal(b)
	if eq == e.sign {
		return Yes
	}
	return No
}

func (e equality) substitute(s term.Subst) Ewff {
	a := e.t1.Substitute(s)
	b := e.t2.Substitute(s)
	r := equality{a, b, e.sign}
	if a.IsGround() && b.IsGround() {
		if r.eval(term.NewSubst()) == Yes {
			return True()
		}
		return False()
	}
	return r
}

func (e equality) variables(out map[uint64]term.Term) {
	collectVar(e.t1, out)
	collectVar(e.t2, out)
}

func (e equality) names(out map[uint64]term.Term) {
	collectName(e.t1, out)
	collectName(e.t2, out)
}

func (e equality) String() string {
	op := "="
	if !e.sign {
		op = "!="
	}
	return fmt.Sprintf("%s%s%s", e.t1, op, e.t2)
}

func collectVar(t term.Term, out map[uint64]term.Term) {
	if t.IsVariable() {
		out[hashString(t.String())] = t
		return
	}
	for _, a := range t.Args() {
		collectVar(a, out)
	}
}

func hashString(s string) uint64 {
	var h uint64 = 1469598103934665603
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}

func collectName(t term.Term, out map[uint64]term.Term) {
	if t.IsName() {
		out[hashString(t.String())] = t
		for _, a := range t.Args() {
			collectName(a, out)
		}
		return
	}
	for _, a := range t.Args() {
		collectName(a, out)
	}
}

// --- sort check ---

type sortCheck struct {
	t    term.Term
	pred func(term.Term) bool
	desc string
}

// Sort builds a guard that checks whether t (once ground) satisfies pred,
// e.g. membership in a particular sort's name set (spec.md 3, 9).
func Sort(t term.Term, desc string, pred func(term.Term) bool) Ewff {
	return sortCheck{t, pred, desc}
}

func (s sortCheck) eval(subst term.Subst) Truth {
	g := s.t.Chase(subst)
	if g.IsVariable() {
		return Maybe
	}
	if s.pred(g) {
		return Yes
	}
	return No
}

func (s sortCheck) substitute(subst term.Subst) Ewff {
	g := s.t.Substitute(subst)
	r := sortCheck{g, s.pred, s.desc}
	if g.IsGround() {
		if r.eval(term.NewSubst()) == Yes {
			return True()
		}
		return False()
	}
	return r
}

func (s sortCheck) variables(out map[uint64]term.Term) { collectVar(s.t, out) }
func (s sortCheck) names(out map[uint64]term.Term)     { collectName(s.t, out) }
func (s sortCheck) String() string                     { return fmt.Sprintf("%s(%s)", s.desc, s.t) }

// --- negation ---

type negation struct{ e Ewff }

// Neg builds the negation of e.
func Neg(e Ewff) Ewff {
	if c, ok := e.(constant); ok {
		if c.v == Yes {
			return False()
		}
		return True()
	}
	return negation{e}
}

func (n negation) eval(s term.Subst) Truth {
	switch n.e.eval(s) {
	case Yes:
		return No
	case No:
		return Yes
	default:
		return Maybe
	}
}

func (n negation) substitute(s term.Subst) Ewff { return Neg(n.e.substitute(s)) }
func (n negation) variables(out map[uint64]term.Term) { n.e.variables(out) }
func (n negation) names(out map[uint64]term.Term)     { n.e.names(out) }
func (n negation) String() string                     { return fmt.Sprintf("~%s", n.e) }

// --- disjunction ---

type disjunction struct{ e1, e2 Ewff }

// Or builds the disjunction e1 v e2.
func Or(e1, e2 Ewff) Ewff {
	if c, ok := e1.(constant); ok {
		if c.v == Yes {
			return True()
		}
		return e2
	}
	if c, ok := e2.(constant); ok {
		if c.v == Yes {
			return True()
		}
		return e1
	}
	return disjunction{e1, e2}
}

func (d disjunction) eval(s term.Subst) Truth {
	a := d.e1.eval(s)
	if a == Yes {
		return Yes
	}
	b := d.e2.eval(s)
	if b == Yes {
		return Yes
	}
	if a == No && b == No {
		return No
	}
	return Maybe
}

func (d disjunction) substitute(s term.Subst) Ewff {
	return Or(d.e1.substitute(s), d.e2.substitute(s))
}
func (d disjunction) variables(out map[uint64]term.Term) {
	d.e1.variables(out)
	d.e2.variables(out)
}
func (d disjunction) names(out map[uint64]term.Term) {
	d.e1.names(out)
	d.e2.names(out)
}
func (d disjunction) String() string { return fmt.Sprintf("(%s v %s)", d.e1, d.e2) }

// And builds the conjunction of zero or more guards (spec.md 4.2 lists Or as
// primitive and And derived via De Morgan: e1 ^ e2 = ~(~e1 v ~e2)).
func And(es ...Ewff) Ewff {
	if len(es) == 0 {
		return True()
	}
	acc := es[0]
	for _, e := range es[1:] {
		acc = Neg(Or(Neg(acc), Neg(e)))
	}
	return acc
}
