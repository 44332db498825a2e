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

// Package setup implements the ground clause set a query is checked
// against: grounding, subsumption-minimisation, unit propagation,
// inconsistency-by-k, entailment-by-k via splitting, and copy-on-split
// (spec.md 3, 4.4). A Setup is immutable once Init has been called, except
// for AddSensingResult, which extends the live setup in place; every other
// mutation (splitting during entailment search) happens on a lightweight
// child view linked back to its parent.
package setup

import (
	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/term"
)

// Setup is a ground clause set, possibly layered on top of a parent (the
// copy-on-split structure of spec.md 4.4.5): first is the global index of
// this level's first clause, clauses holds this level's own clauses
// indexed locally, and del is a full copy of the parent's disabled-clause
// map extended with this level's own disables (mirroring
// Setup::Setup(parent) in the reference design, which copies del_
// wholesale because the map is assumed cheap to copy).
type Setup struct {
	parent *Setup
	first  int
	hplus  term.Universe

	clauses []clause.Clause
	occurs  map[string][]int // local occurrence index: lhs string -> global indices

	del map[int]bool

	inconsistentCache map[int]bool

	// depth counts Splits since the nearest root/Extend ancestor, the
	// recursion-step counter spec.md 4.4.3's SF even-step restriction is
	// stated against. NewRoot and Extend both start a fresh count at 0: an
	// Extend'd belief level is its own base for the k-budget, not a split
	// step of the setup it was built from (spec.md 4.5).
	depth int
}

// NewRoot returns an empty root setup grounded over hplus.
func NewRoot(hplus term.Universe) *Setup {
	return &Setup{
		hplus:             hplus,
		occurs:            make(map[string][]int),
		del:               make(map[int]bool),
		inconsistentCache: make(map[int]bool),
	}
}

// sfSymbol is the distinguished sensing-result predicate's function symbol
// label (spec.md 3, 4.4.4): "SF(a)" denotes the sensing outcome of action a.
const sfSymbol = "SF"

func isSensingAtom(l atom.Literal) bool { return l.LHS.Symbol() == sfSymbol }

func zEqual(a, b []term.Term) bool {
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

// AddClause appends c at this level, returning its global index. Safe to
// call repeatedly before Init; after Init only AddSensingResult and Split
// should touch the setup.
func (s *Setup) AddClause(c clause.Clause) int {
	s.clauses = append(s.clauses, c)
	return s.last() - 1
}

func (s *Setup) last() int { return s.first + len(s.clauses) }

// Clause returns the clause at global index i, walking up to the level
// that actually stores it.
func (s *Setup) Clause(i int) clause.Clause {
	if i >= s.first {
		return s.clauses[i-s.first]
	}
	return s.parent.Clause(i)
}

// Enabled reports whether the clause at global index i counts as part of
// this setup (not disabled by minimisation at this level or an ancestor).
func (s *Setup) Enabled(i int) bool { return !s.del[i] }

func (s *Setup) disable(i int) { s.del[i] = true }

func occursKey(l atom.Literal) string { return l.LHS.String() }

func (s *Setup) updateOccurrences(i int) {
	c := s.Clause(i)
	for _, l := range c.Lits {
		key := occursKey(l)
		s.occurs[key] = append(s.occurs[key], i)
	}
}

// candidatesFor returns every clause index (at this level or an ancestor)
// whose occurrence index mentions key, without filtering by enabled: the
// caller filters.
func (s *Setup) candidatesFor(key string) []int {
	var out []int
	for lvl := s; lvl != nil; lvl = lvl.parent {
		out = append(out, lvl.occurs[key]...)
	}
	return out
}

// Init grounds the occurrence index, subsumption-minimises, and runs unit
// propagation to fixpoint (spec.md 4.4.2).
func (s *Setup) Init() {
	for i := s.first; i < s.last(); i++ {
		s.updateOccurrences(i)
	}
	s.minimize()
	s.propagateUnits()
}

func (s *Setup) minimize() {
	for i := s.first; i < s.last(); i++ {
		if !s.Enabled(i) {
			continue
		}
		c := s.Clause(i)
		if c.Tautologous() {
			s.disable(i)
			continue
		}
		s.removeSubsumed(i)
	}
}

func (s *Setup) removeSubsumed(i int) {
	c := s.Clause(i)
	for _, l := range c.Lits {
		for _, j := range s.candidatesFor(occursKey(l)) {
			if j == i || !s.Enabled(j) {
				continue
			}
			if c.Subsumes(s.Clause(j)) {
				s.disable(j)
			}
		}
	}
}

func (s *Setup) unitIndices() []int {
	var out []int
	for i := 0; i < s.last(); i++ {
		if s.Enabled(i) && s.Clause(i).IsUnit() {
			out = append(out, i)
		}
	}
	return out
}

func (s *Setup) propagateUnits() {
	for {
		changed := false
		for _, i := range s.unitIndices() {
			l := s.Clause(i).Lits[0]
			for _, j := range s.candidatesFor(occursKey(l)) {
				if j == i || !s.Enabled(j) {
					continue
				}
				cj := s.Clause(j)
				rc, ok := cj.ResolveGround(l)
				if !ok {
					continue
				}
				if s.subsumesAny(rc) {
					continue
				}
				k := s.AddClause(rc)
				s.updateOccurrences(k)
				s.removeSubsumed(k)
				changed = true
			}
		}
		if !changed {
			break
		}
	}
}

func (s *Setup) subsumesAny(c clause.Clause) bool {
	for i := 0; i < s.last(); i++ {
		if s.Enabled(i) && s.Clause(i).Subsumes(c) {
			return true
		}
	}
	return false
}

// IsBottom reports whether the empty clause is (transitively) present,
// i.e. the setup is permanently inconsistent (spec.md 3, invariant I3).
func (s *Setup) IsBottom() bool {
	for i := 0; i < s.last(); i++ {
		if s.Enabled(i) && s.Clause(i).IsEmpty() {
			return true
		}
	}
	return false
}

// AllPrimitiveAtoms returns one representative (positive) literal per
// distinct ground primitive equation mentioned anywhere in the setup.
func (s *Setup) AllPrimitiveAtoms() []atom.Literal {
	seen := make(map[string]bool)
	var out []atom.Literal
	for i := 0; i < s.last(); i++ {
		if !s.Enabled(i) {
			continue
		}
		for _, l := range s.Clause(i).Lits {
			key := l.AtomKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, l.Positive())
		}
	}
	return out
}

// RelevantAtoms returns the splitting candidates for proving goal
// (spec.md 4.4.4): goal's own atoms, plus the atoms of every clause
// sharing a ground primitive with goal (one hop of the "transitive closure
// bounded by PEL" the spec describes — see DESIGN.md for why one hop is
// sound though not necessarily exhaustive). An empty goal (the bottom
// clause, used by Inconsistent) has no atoms of its own to anchor on, so
// every primitive atom in the setup is relevant.
func (s *Setup) RelevantAtoms(goal clause.Clause) []atom.Literal {
	if len(goal.Lits) == 0 {
		return s.AllPrimitiveAtoms()
	}
	seen := make(map[string]bool)
	var out []atom.Literal
	for _, l := range goal.Lits {
		key := l.AtomKey()
		if !seen[key] {
			seen[key] = true
			out = append(out, l.Positive())
		}
	}
	for i := 0; i < s.last(); i++ {
		if !s.Enabled(i) {
			continue
		}
		c := s.Clause(i)
		if len(c.PEL(goal)) == 0 {
			continue
		}
		for _, l := range c.Lits {
			key := l.AtomKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, l.Positive())
		}
	}
	return out
}

// Split returns a child setup extending self with the unit clause [l],
// without mutating self (spec.md 4.4.5). The child is immediately
// minimised and unit-propagated.
func (s *Setup) Split(l atom.Literal) *Setup {
	child := &Setup{
		parent:            s,
		first:             s.last(),
		hplus:             s.hplus,
		occurs:            make(map[string][]int),
		del:               copyDel(s.del),
		inconsistentCache: make(map[int]bool),
		depth:             s.depth + 1,
	}
	child.AddClause(clause.New(nil, l))
	child.Init()
	return child
}

// Extend returns a child setup extending self with the given clauses,
// minimised and unit-propagated. Unlike Split (a single splitting
// literal), this is the general copy-on-split building block the belief
// ranking uses to add a whole conditional clause per plausibility level
// (spec.md 4.5).
func (s *Setup) Extend(cs ...clause.Clause) *Setup {
	child := &Setup{
		parent:            s,
		first:             s.last(),
		hplus:             s.hplus,
		occurs:            make(map[string][]int),
		del:               copyDel(s.del),
		inconsistentCache: make(map[int]bool),
	}
	for _, c := range cs {
		child.AddClause(c)
	}
	child.Init()
	return child
}

func copyDel(del map[int]bool) map[int]bool {
	out := make(map[int]bool, len(del))
	for k, v := range del {
		out[k] = v
	}
	return out
}

// Inconsistent decides whether the setup is inconsistent at split depth k
// (spec.md 4.4.3), caching the result. Splitting candidates go through
// splittableAtoms, which enforces the even-step restriction on SF literals.
func (s *Setup) Inconsistent(k int) bool {
	if v, ok := s.inconsistentCache[k]; ok {
		return v
	}
	result := s.IsBottom()
	if !result && k > 0 {
		for _, a := range s.splittableAtoms(s.RelevantAtoms(clause.Empty()), k) {
			pos := s.Split(a.Positive())
			if !pos.Inconsistent(k - 1) {
				continue
			}
			neg := s.Split(a.Negative())
			if neg.Inconsistent(k - 1) {
				result = true
				break
			}
		}
	}
	s.inconsistentCache[k] = result
	return result
}

// Entails decides whether the setup entails clause c at split depth k
// (spec.md 4.4.4). Candidates are RelevantAtoms(c), filtered by
// splittableAtoms for the SF even-step restriction, plus, at the terminal
// depth (k==1, the last split this budget allows), c's own situated SF
// atoms via sensingCandidates even when they share no literal with c.
func (s *Setup) Entails(c clause.Clause, k int) bool {
	if s.Inconsistent(k) {
		return true
	}
	if s.subsumesAny(c) {
		return true
	}
	if k < 1 {
		return false
	}
	candidates := s.splittableAtoms(s.RelevantAtoms(c), k)
	if k == 1 {
		candidates = append(candidates, s.sensingCandidates(c, candidates)...)
	}
	for _, a := range candidates {
		pos := s.Split(a.Positive())
		if !pos.Entails(c, k-1) {
			continue
		}
		neg := s.Split(a.Negative())
		if neg.Entails(c, k-1) {
			return true
		}
	}
	return false
}

// splittableAtoms enforces spec.md 4.4.3's restriction that an SF literal
// may be split only at even steps or the deepest (terminal) level of the
// current k-budget: depth 0, 2, 4, ... counting Splits since the nearest
// root/Extend ancestor, or the last split this call's k allows (k==1).
// Every other candidate is always splittable.
func (s *Setup) splittableAtoms(atoms []atom.Literal, k int) []atom.Literal {
	if s.depth%2 == 0 || k == 1 {
		return atoms
	}
	out := make([]atom.Literal, 0, len(atoms))
	for _, a := range atoms {
		if isSensingAtom(a) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// sensingCandidates implements spec.md 4.4.4's sensing interaction: for a
// literal situated at z = <a1...am>, SF(a_i+1) in situation z[:i] is made
// available for splitting even though it need not share a literal with
// goal, for every i. It only ever surfaces an SF atom some enabled clause
// in the setup already mentions (sensing results or axioms establish the
// term; this step widens which existing atoms are offered, it does not
// mint new ones), and skips anything already present in existing.
func (s *Setup) sensingCandidates(goal clause.Clause, existing []atom.Literal) []atom.Literal {
	seen := make(map[string]bool, len(existing))
	for _, a := range existing {
		seen[a.AtomKey()] = true
	}
	var out []atom.Literal
	for _, l := range goal.Lits {
		for i := range l.Z {
			for _, sf := range s.sensingAtomsAt(l.Z[:i], l.Z[i]) {
				key := sf.AtomKey()
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, sf)
			}
		}
	}
	return out
}

// sensingAtomsAt returns every enabled clause's SF(action) literal situated
// at prefix, positive-normalised and deduplicated by atom key.
func (s *Setup) sensingAtomsAt(prefix []term.Term, action term.Term) []atom.Literal {
	seen := make(map[string]bool)
	var out []atom.Literal
	for i := 0; i < s.last(); i++ {
		if !s.Enabled(i) {
			continue
		}
		for _, l := range s.Clause(i).Lits {
			if !isSensingAtom(l) || !zEqual(l.Z, prefix) {
				continue
			}
			args := l.LHS.Args()
			if len(args) != 1 || !args[0].Equal(action) {
				continue
			}
			key := l.AtomKey()
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, l.Positive())
		}
	}
	return out
}

// AddSensingResult appends the unit clause asserting the sensed value of
// a in situation z (or its flip, when r is false) to the live setup and
// recomputes minimisation, unit propagation, and the inconsistency cache
// (spec.md 3's lifecycle: "AddSensingResult... recomputes the
// inconsistency cache incrementally"; clearing it is sound because
// Inconsistent is monotone in the clause set, so only previously-false
// entries can change).
func (s *Setup) AddSensingResult(sf atom.Literal, r bool) {
	l := sf
	if !r {
		l = sf.Flip()
	}
	i := s.AddClause(clause.New(nil, l))
	s.updateOccurrences(i)
	s.removeSubsumed(i)
	s.propagateUnits()
	s.inconsistentCache = make(map[int]bool)
}

// GuaranteeConsistency asserts, without proof, that the setup is
// consistent up to depth k (spec.md 6): used when the caller already
// knows the basic action theory is consistent and wants to skip the
// (potentially expensive) proof search.
func (s *Setup) GuaranteeConsistency(k int) {
	for kk := 0; kk <= k; kk++ {
		if _, ok := s.inconsistentCache[kk]; !ok {
			s.inconsistentCache[kk] = false
		}
	}
}

// HPlus returns the Herbrand universe this setup was grounded over.
func (s *Setup) HPlus() term.Universe { return s.hplus }
