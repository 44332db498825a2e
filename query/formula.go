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

// Package query implements the modal query language the entailment front
// end accepts: objective literals and term equalities composed with
// negation, conjunction, disjunction, quantifiers, action boxes, and the
// two black-box modal operators (knowledge and conditional belief) that
// bottom out in Setup/Setups entailment calls (spec.md 4.6).
package query

import (
	"fmt"
	"strings"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/term"
)

// Formula is the query/axiom AST. Like Ewff, only this package's
// constructors may produce one (spec.md 9's tagged-variant design note).
type Formula interface {
	isFormula()
	String() string
}

// constFormula is the normalised-away true/false leaf, produced by
// Simplify once a sub-formula is fully decided.
type constFormula struct{ v bool }

func (constFormula) isFormula() {}
func (c constFormula) String() string {
	if c.v {
		return "true"
	}
	return "false"
}

// TrueF is the trivially valid formula.
func TrueF() Formula { return constFormula{true} }

// FalseF is the trivially unsatisfiable formula.
func FalseF() Formula { return constFormula{false} }

// eqFormula is a raw term equality/inequality (not a fluent literal): the
// "literal equalities" the query normaliser eliminates once both sides are
// ground (spec.md 4.6 step 4).
type eqFormula struct {
	t1, t2 term.Term
	sign   bool
}

// EqF builds t1 = t2.
func EqF(t1, t2 term.Term) Formula { return eqFormula{t1, t2, true} }

// NeqF builds t1 != t2.
func NeqF(t1, t2 term.Term) Formula { return eqFormula{t1, t2, false} }

func (eqFormula) isFormula() {}
func (e eqFormula) String() string {
	op := "="
	if !e.sign {
		op = "!="
	}
	return fmt.Sprintf("%s%s%s", e.t1, op, e.t2)
}

// litFormula wraps a fluent/predicate literal (spec.md 3) as a formula
// leaf.
type litFormula struct{ lit atom.Literal }

// LitF lifts a literal into the formula language.
func LitF(l atom.Literal) Formula { return litFormula{l} }

func (litFormula) isFormula()       {}
func (l litFormula) String() string { return l.lit.String() }

// notFormula is classical negation.
type notFormula struct{ f Formula }

// NotF negates f.
func NotF(f Formula) Formula { return notFormula{f} }

func (notFormula) isFormula()       {}
func (n notFormula) String() string { return fmt.Sprintf("~%s", n.f) }

// andFormula / orFormula are n-ary conjunction/disjunction.
type andFormula struct{ fs []Formula }
type orFormula struct{ fs []Formula }

// AndF builds the conjunction of fs.
func AndF(fs ...Formula) Formula { return andFormula{append([]Formula(nil), fs...)} }

// OrF builds the disjunction of fs.
func OrF(fs ...Formula) Formula { return orFormula{append([]Formula(nil), fs...)} }

func (andFormula) isFormula() {}
func (a andFormula) String() string {
	parts := make([]string, len(a.fs))
	for i, f := range a.fs {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " ^ ") + ")"
}

func (orFormula) isFormula() {}
func (o orFormula) String() string {
	parts := make([]string, len(o.fs))
	for i, f := range o.fs {
		parts[i] = f.String()
	}
	return "(" + strings.Join(parts, " v ") + ")"
}

// boxFormula is the dynamic-logic action box [a]f: "after executing a, f
// holds". It never survives past the action-pushing pass of Normalise.
type boxFormula struct {
	action term.Term
	f      Formula
}

// BoxF builds [action]f.
func BoxF(action term.Term, f Formula) Formula { return boxFormula{action, f} }

func (boxFormula) isFormula()       {}
func (b boxFormula) String() string { return fmt.Sprintf("[%s]%s", b.action, b.f) }

// existsFormula / forallFormula are object-level quantifiers, ground away
// by Normalise over a Herbrand universe.
type existsFormula struct {
	v term.Term
	f Formula
}
type forallFormula struct {
	v term.Term
	f Formula
}

// ExistsF builds the existential quantification of f over v.
func ExistsF(v term.Term, f Formula) Formula { return existsFormula{v, f} }

// ForAllF builds the universal quantification of f over v.
func ForAllF(v term.Term, f Formula) Formula { return forallFormula{v, f} }

func (existsFormula) isFormula()       {}
func (e existsFormula) String() string { return fmt.Sprintf("E%s.%s", e.v, e.f) }
func (forallFormula) isFormula()       {}
func (a forallFormula) String() string { return fmt.Sprintf("A%s.%s", a.v, a.f) }

// knowFormula is the knowledge operator K_k(f), situated at action prefix
// z. Its inner formula is handed to Setup as a black box once grounded;
// Normalise pushes pending actions into z (and into f, so f's own
// literals are correctly situated) but does not distribute negation
// across it (spec.md 4.6's closing paragraph).
type knowFormula struct {
	z []term.Term
	k int
	f Formula
}

// KnowF builds K_k(f) at the empty (current) situation.
func KnowF(k int, f Formula) Formula { return knowFormula{k: k, f: f} }

func (knowFormula) isFormula() {}
func (k knowFormula) String() string {
	return fmt.Sprintf("K_%d(%s)@%v", k.k, k.f, k.z)
}

// belFormula is the conditional-belief operator negPhi => psi at depth k,
// situated at action prefix z.
type belFormula struct {
	z           []term.Term
	negPhi, psi Formula
	k           int
}

// BelF builds the conditional belief query negPhi => psi at depth k.
func BelF(negPhi, psi Formula, k int) Formula { return belFormula{negPhi: negPhi, psi: psi, k: k} }

func (belFormula) isFormula() {}
func (b belFormula) String() string {
	return fmt.Sprintf("Bel(%s => %s, %d)@%v", b.negPhi, b.psi, b.k, b.z)
}
