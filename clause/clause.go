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

// Package clause implements disjunctive clauses: a finite set of literals
// guarded by an Ewff (spec.md 3, 4.3). A clause with no literals and a
// trivially-true guard denotes the empty clause, bottom.
package clause

import (
	"sort"
	"strings"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/ewff"
	"github.com/lakemeyer-levesque/eslk/term"
)

// Clause is a disjunction of literals qualified by a guard. Literals are
// kept sorted and deduplicated so that two clauses with the same content
// always compare structurally equal (needed for subsumption-minimisation
// and the setup's occurrence index, spec.md 4.4.2).
type Clause struct {
	Guard ewff.Ewff
	Lits  []atom.Literal
}

// New builds a clause from a guard and a set of literals, sorting and
// deduplicating the literals.
func New(guard ewff.Ewff, lits ...atom.Literal) Clause {
	if guard == nil {
		guard = ewff.True()
	}
	cp := append([]atom.Literal(nil), lits...)
	sort.Slice(cp, func(i, j int) bool { return cp[i].Less(cp[j]) })
	out := cp[:0]
	for i, l := range cp {
		if i > 0 && l.Equal(cp[i-1]) {
			continue
		}
		out = append(out, l)
	}
	return Clause{Guard: guard, Lits: out}
}

// Empty is the clause with no literals under a true guard: bottom.
func Empty() Clause { return Clause{Guard: ewff.True()} }

// IsEmpty reports whether c is the empty clause (and thus inconsistent on
// its own).
func (c Clause) IsEmpty() bool { return len(c.Lits) == 0 && ewff.Eval(c.Guard) != ewff.No }

// IsUnit reports whether c has exactly one literal.
func (c Clause) IsUnit() bool { return len(c.Lits) == 1 }

// Len reports the number of literals, used for the (length, lexicographic)
// total order over clauses that the setup relies on (spec.md 5).
func (c Clause) Len() int { return len(c.Lits) }

// Substitute applies s to every literal and to the guard. ok is false when
// the substituted guard collapses to false, meaning the clause is
// vacuously valid and should be dropped (spec.md 4.2).
func (c Clause) Substitute(s term.Subst) (Clause, bool) {
	g := ewff.Substitute(c.Guard, s)
	if ewff.Eval(g) == ewff.No {
		return Clause{}, false
	}
	lits := make([]atom.Literal, len(c.Lits))
	for i, l := range c.Lits {
		lits[i] = l.Substitute(s)
	}
	return New(g, lits...), true
}

// PrependActions extends every literal's action prefix at the front,
// e.g. when grounding a boxed axiom into a specific action sequence.
func (c Clause) PrependActions(z []term.Term) Clause {
	lits := make([]atom.Literal, len(c.Lits))
	for i, l := range c.Lits {
		lits[i] = l.PrependActions(z)
	}
	return Clause{Guard: c.Guard, Lits: lits}
}

// Variables returns every free variable occurring in the guard or in any
// literal.
func (c Clause) Variables() []term.Term {
	seen := make(map[string]term.Term)
	for _, v := range ewff.Variables(c.Guard) {
		seen[v.String()] = v
	}
	for _, l := range c.Lits {
		for _, v := range l.Variables() {
			seen[v.String()] = v
		}
	}
	out := make([]term.Term, 0, len(seen))
	for _, v := range seen {
		out = append(out, v)
	}
	return out
}

// Tautologous reports whether c contains two literals that unify to the
// same atom with opposite sign (spec.md 4.3): such a clause is valid
// regardless of the surrounding setup and carries no information.
func (c Clause) Tautologous() bool {
	for i := range c.Lits {
		for j := i + 1; j < len(c.Lits); j++ {
			a, b := c.Lits[i], c.Lits[j]
			if a.Sign == b.Sign {
				continue
			}
			if _, ok := atom.Unify(a, b, term.NewSubst()); ok {
				return true
			}
		}
	}
	return false
}

// Resolve enumerates every binary resolvent of c and d: for each pair of
// literals with opposite sign that unify, the resolvent is the union of
// the remaining (substituted) literals under the merged guard. Resolvents
// that are tautologous or whose merged guard is unsatisfiable are skipped
// (spec.md 4.3).
func Resolve(c, d Clause) []Clause {
	var out []Clause
	for i, l := range c.Lits {
		for j, m := range d.Lits {
			if l.Sign == m.Sign {
				continue
			}
			s, ok := atom.Unify(l, m, term.NewSubst())
			if !ok {
				continue
			}
			merged := make([]atom.Literal, 0, len(c.Lits)+len(d.Lits)-2)
			for ci, cl := range c.Lits {
				if ci == i {
					continue
				}
				merged = append(merged, cl.Substitute(s))
			}
			for dj, dl := range d.Lits {
				if dj == j {
					continue
				}
				merged = append(merged, dl.Substitute(s))
			}
			guard := ewff.And(ewff.Substitute(c.Guard, s), ewff.Substitute(d.Guard, s))
			if ewff.Eval(guard) == ewff.No {
				continue
			}
			rc := New(guard, merged...)
			if rc.Tautologous() {
				continue
			}
			out = append(out, rc)
		}
	}
	return out
}

// ResolveGround is the fast ground-only path used by the setup's unit
// propagation step (spec.md 4.4.2): l is a ground unit literal; if flip(l)
// occurs in c, the literal is simply dropped (no unifier search needed
// because everything is already ground).
func (c Clause) ResolveGround(l atom.Literal) (Clause, bool) {
	flip := l.Flip()
	idx := -1
	for i, cl := range c.Lits {
		if cl.Equal(flip) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return c, false
	}
	lits := make([]atom.Literal, 0, len(c.Lits)-1)
	lits = append(lits, c.Lits[:idx]...)
	lits = append(lits, c.Lits[idx+1:]...)
	return New(c.Guard, lits...), true
}

// Subsumes reports whether c subsumes d: some substitution theta (applied
// only to c's variables) maps c's literals into a subset of d's, and d's
// guard implies c's (substituted) guard. Guard implication is decided
// exactly when either guard is already a constant (the common case once
// clauses are ground, per spec.md 4.4.1's grounding phases always leaving
// a trivial guard behind); otherwise two structurally identical guards are
// treated as implying each other and anything else is treated
// conservatively as non-implication, which only costs completeness of
// minimisation, never soundness (spec.md 4.4.2).
func (c Clause) Subsumes(d Clause) bool {
	if len(c.Lits) > len(d.Lits) {
		return false
	}
	s, ok := subsumesRec(c.Lits, d.Lits, term.NewSubst())
	if !ok {
		return false
	}
	cg := ewff.Substitute(c.Guard, s)
	if ewff.Eval(cg) == ewff.Yes {
		return true
	}
	if ewff.Eval(d.Guard) == ewff.No {
		return true
	}
	return cg.String() == d.Guard.String()
}

func subsumesRec(cls, dls []atom.Literal, s term.Subst) (term.Subst, bool) {
	if len(cls) == 0 {
		return s, true
	}
	first := cls[0]
	for _, dl := range dls {
		if ns, ok := matchLiteral(first, dl, s); ok {
			if fs, ok2 := subsumesRec(cls[1:], dls, ns); ok2 {
				return fs, true
			}
		}
	}
	return nil, false
}

func matchLiteral(pat, target atom.Literal, s term.Subst) (term.Subst, bool) {
	if pat.Sign != target.Sign || len(pat.Z) != len(target.Z) {
		return nil, false
	}
	cur := s
	var ok bool
	for i := range pat.Z {
		cur, ok = matchTerm(pat.Z[i], target.Z[i], cur)
		if !ok {
			return nil, false
		}
	}
	cur, ok = matchTerm(pat.LHS, target.LHS, cur)
	if !ok {
		return nil, false
	}
	cur, ok = matchTerm(pat.RHS, target.RHS, cur)
	if !ok {
		return nil, false
	}
	return cur, true
}

func matchTerm(pat, target term.Term, s term.Subst) (term.Subst, bool) {
	p := pat.Chase(s)
	if p.IsVariable() {
		return s.Bind(p, target), true
	}
	if p.Kind() != target.Kind() || p.Symbol() != target.Symbol() || len(p.Args()) != len(target.Args()) {
		return nil, false
	}
	if len(p.Args()) == 0 {
		if p.Equal(target) {
			return s, true
		}
		return nil, false
	}
	cur := s
	for i := range p.Args() {
		var ok bool
		cur, ok = matchTerm(p.Args()[i], target.Args()[i], cur)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// PEL collects the atoms (literals with their sign normalised to positive)
// in c that share an underlying ground primitive with some literal of
// goal: these are the candidates whose splitting could let goal resolve
// against c (spec.md 4.3). Setup.RelevantAtoms uses it to find the clauses
// that share a primitive with a goal.
func (c Clause) PEL(goal Clause) []atom.Literal {
	var out []atom.Literal
	seen := make(map[string]bool)
	for _, gl := range goal.Lits {
		for _, cl := range c.Lits {
			if !sameSituatedLHS(cl, gl) {
				continue
			}
			key := cl.AtomKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, cl.Positive())
		}
	}
	return out
}

func sameSituatedLHS(a, b atom.Literal) bool {
	if len(a.Z) != len(b.Z) {
		return false
	}
	for i := range a.Z {
		if !a.Z[i].Equal(b.Z[i]) {
			return false
		}
	}
	return a.LHS.Equal(b.LHS)
}

func (c Clause) String() string {
	if len(c.Lits) == 0 {
		return "[]"
	}
	parts := make([]string, len(c.Lits))
	for i, l := range c.Lits {
		parts[i] = l.String()
	}
	return strings.Join(parts, " v ")
}
