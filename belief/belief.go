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

// Package belief implements the plausibility-ranked list of setups a
// conditional belief `neg_phi => psi` is checked against (spec.md 3, 4.5):
// a Theorem-7-style construction that migrates conditionals to less
// plausible levels as long as the current level already entails their
// negated antecedent, entailment routing to the most plausible consistent
// level, and the reduction of conditional belief to a pair of plain
// entailment queries.
package belief

import (
	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/ewff"
	"github.com/lakemeyer-levesque/eslk/setup"
)

// Conditional is a belief conditional neg_phi => psi pinned to a split
// depth k. Level is the plausibility level it currently sits at; Propagate
// resets it to 0 and then only ever moves it forward (spec.md 4.5).
type Conditional struct {
	NegPhi clause.Clause
	Psi    clause.Clause
	K      int
	Level  int
}

// Setups is the ordered plausibility ranking s0, s1, ..., sn (spec.md 3):
// base is the static+dynamic setup every level is built on top of.
type Setups struct {
	base         *setup.Setup
	levels       []*setup.Setup
	conditionals []*Conditional
}

// NewSetups returns a belief ranking with no conditionals yet, backed by
// base.
func NewSetups(base *setup.Setup) *Setups {
	return &Setups{base: base}
}

// AddBeliefConditional appends a new conditional at level 0 and reruns
// propagation (spec.md 6).
func (s *Setups) AddBeliefConditional(negPhi, psi clause.Clause, k int) {
	s.conditionals = append(s.conditionals, &Conditional{NegPhi: negPhi, Psi: psi, K: k, Level: 0})
	s.Propagate()
}

// Propagate rebuilds the plausibility levels from scratch via the
// Theorem-7 construction (spec.md 4.5): repeatedly build the next level
// from every conditional still sitting at it, then migrate any
// conditional whose negated antecedent the new level already entails.
// The number of levels is bounded by the number of conditionals plus one,
// so this always terminates.
func (s *Setups) Propagate() {
	for _, c := range s.conditionals {
		c.Level = 0
	}
	s.levels = s.levels[:0]
	p := 0
	for {
		var atP []*Conditional
		for _, c := range s.conditionals {
			if c.Level == p {
				atP = append(atP, c)
			}
		}
		if len(atP) == 0 {
			break
		}
		parent := s.base
		if p > 0 {
			parent = s.levels[p-1]
		}
		added := make([]clause.Clause, len(atP))
		for i, c := range atP {
			added[i] = disjoin(c.NegPhi, c.Psi)
		}
		sp := parent.Extend(added...)
		s.levels = append(s.levels, sp)

		migrated := false
		for _, c := range atP {
			if sp.Entails(c.NegPhi, c.K) {
				c.Level = p + 1
				migrated = true
			}
		}
		if !migrated {
			break
		}
		p++
	}
}

func disjoin(a, b clause.Clause) clause.Clause {
	lits := make([]atom.Literal, 0, len(a.Lits)+len(b.Lits))
	lits = append(lits, a.Lits...)
	lits = append(lits, b.Lits...)
	return clause.New(ewff.And(a.Guard, b.Guard), lits...)
}

// levelsOrBase returns the plausibility levels, or a single-element slice
// holding the base setup when no conditional has ever produced a level
// (an empty belief ranking behaves exactly like the underlying setup).
func (s *Setups) levelsOrBase() []*setup.Setup {
	if len(s.levels) == 0 {
		return []*setup.Setup{s.base}
	}
	return s.levels
}

// Levels returns the current plausibility ranking, most plausible first.
func (s *Setups) Levels() []*setup.Setup { return s.levelsOrBase() }

// Entails finds the least-implausible level not inconsistent at k and
// returns its entailment verdict for c. If every level is inconsistent at
// k, the query trivially holds (spec.md 4.5, 8).
func (s *Setups) Entails(c clause.Clause, k int) bool {
	for _, sp := range s.levelsOrBase() {
		if !sp.Inconsistent(k) {
			return sp.Entails(c, k)
		}
	}
	return true
}

// GuaranteeConsistency asserts, without proof, that every plausibility
// level is consistent up to depth k (spec.md 6, 11): forwarded to each
// level's own Setup.GuaranteeConsistency.
func (s *Setups) GuaranteeConsistency(k int) {
	for _, sp := range s.levelsOrBase() {
		sp.GuaranteeConsistency(k)
	}
}

// EntailsConditional decides the conditional belief query negPhi => psi at
// split depth k: there exists a level p such that sp entails (negPhi v
// psi) at k and sp does not entail negPhi at k (spec.md 4.5).
func (s *Setups) EntailsConditional(negPhi, psi clause.Clause, k int) bool {
	disj := disjoin(negPhi, psi)
	for _, sp := range s.levelsOrBase() {
		if sp.Entails(disj, k) && !sp.Entails(negPhi, k) {
			return true
		}
	}
	return false
}
