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
	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/ewff"
	"github.com/lakemeyer-levesque/eslk/term"
)

// Normalise runs the full ENNF pipeline (spec.md 4.6): push actions
// inward to literals and modal operators, push negation inward to
// literal polarity, ground every quantifier over hplus, then simplify
// away decided ground equalities and the true/false leaves that fall out
// of it.
func Normalise(f Formula, hplus term.Universe) Formula {
	f = pushActions(nil, f)
	f = pushNegation(f)
	f = groundQuantifiers(f, hplus)
	f = simplify(f)
	return f
}

// pushActions consumes every boxFormula node, accumulating the pending
// action sequence and prepending it to literal action prefixes and to
// the situation tag of K/Bel leaves once it reaches them. No boxFormula
// survives this pass.
func pushActions(actions []term.Term, f Formula) Formula {
	switch n := f.(type) {
	case constFormula, eqFormula:
		return f
	case litFormula:
		if len(actions) == 0 {
			return n
		}
		return litFormula{n.lit.PrependActions(actions)}
	case notFormula:
		return notFormula{pushActions(actions, n.f)}
	case andFormula:
		return andFormula{pushActionsAll(actions, n.fs)}
	case orFormula:
		return orFormula{pushActionsAll(actions, n.fs)}
	case boxFormula:
		return pushActions(append(append([]term.Term(nil), actions...), n.action), n.f)
	case existsFormula:
		return existsFormula{n.v, pushActions(actions, n.f)}
	case forallFormula:
		return forallFormula{n.v, pushActions(actions, n.f)}
	case knowFormula:
		z := append(append([]term.Term(nil), actions...), n.z...)
		return knowFormula{z: z, k: n.k, f: pushActions(actions, n.f)}
	case belFormula:
		z := append(append([]term.Term(nil), actions...), n.z...)
		return belFormula{
			z:      z,
			negPhi: pushActions(actions, n.negPhi),
			psi:    pushActions(actions, n.psi),
			k:      n.k,
		}
	}
	return f
}

func pushActionsAll(actions []term.Term, fs []Formula) []Formula {
	out := make([]Formula, len(fs))
	for i, g := range fs {
		out[i] = pushActions(actions, g)
	}
	return out
}

// pushNegation pushes classical negation down to literal polarity and
// term-equality sign, via De Morgan through conjunction/disjunction and
// quantifier duality. It does not distribute across K/Bel: a negated
// modal query stays a structural Not wrapping an opaque leaf, since
// knowledge and belief are not classically self-dual (spec.md 4.6).
func pushNegation(f Formula) Formula {
	switch n := f.(type) {
	case constFormula:
		return n
	case eqFormula:
		return n
	case litFormula:
		return n
	case andFormula:
		return andFormula{pushNegationAll(n.fs)}
	case orFormula:
		return orFormula{pushNegationAll(n.fs)}
	case existsFormula:
		return existsFormula{n.v, pushNegation(n.f)}
	case forallFormula:
		return forallFormula{n.v, pushNegation(n.f)}
	case knowFormula:
		return knowFormula{z: n.z, k: n.k, f: pushNegation(n.f)}
	case belFormula:
		return belFormula{z: n.z, negPhi: pushNegation(n.negPhi), psi: pushNegation(n.psi), k: n.k}
	case boxFormula:
		// pushActions should already have consumed every box; if one
		// somehow remains (a formula normalised without ever calling
		// pushActions first), leave it for a later pass rather than
		// guess at its polarity.
		return boxFormula{n.action, pushNegation(n.f)}
	case notFormula:
		return pushNegationInto(n.f)
	}
	return f
}

func pushNegationAll(fs []Formula) []Formula {
	out := make([]Formula, len(fs))
	for i, g := range fs {
		out[i] = pushNegation(g)
	}
	return out
}

// pushNegationInto computes pushNegation(NotF(f)).
func pushNegationInto(f Formula) Formula {
	switch n := f.(type) {
	case constFormula:
		return constFormula{!n.v}
	case eqFormula:
		return eqFormula{n.t1, n.t2, !n.sign}
	case litFormula:
		return litFormula{n.lit.Flip()}
	case notFormula:
		return pushNegation(n.f)
	case andFormula:
		out := make([]Formula, len(n.fs))
		for i, g := range n.fs {
			out[i] = pushNegationInto(g)
		}
		return orFormula{out}
	case orFormula:
		out := make([]Formula, len(n.fs))
		for i, g := range n.fs {
			out[i] = pushNegationInto(g)
		}
		return andFormula{out}
	case existsFormula:
		return forallFormula{n.v, pushNegationInto(n.f)}
	case forallFormula:
		return existsFormula{n.v, pushNegationInto(n.f)}
	case knowFormula, belFormula:
		return notFormula{pushNegation(f)}
	}
	return notFormula{f}
}

// groundQuantifiers replaces every Exists/ForAll with a finite
// disjunction/conjunction over hplus's names for the bound variable's
// sort (spec.md 4.4.1's H+, 4.6 step 3).
func groundQuantifiers(f Formula, hplus term.Universe) Formula {
	switch n := f.(type) {
	case constFormula, eqFormula, litFormula:
		return f
	case notFormula:
		return notFormula{groundQuantifiers(n.f, hplus)}
	case andFormula:
		return andFormula{groundQuantifiersAll(n.fs, hplus)}
	case orFormula:
		return orFormula{groundQuantifiersAll(n.fs, hplus)}
	case boxFormula:
		return boxFormula{n.action, groundQuantifiers(n.f, hplus)}
	case knowFormula:
		return knowFormula{z: n.z, k: n.k, f: groundQuantifiers(n.f, hplus)}
	case belFormula:
		return belFormula{
			z:      n.z,
			negPhi: groundQuantifiers(n.negPhi, hplus),
			psi:    groundQuantifiers(n.psi, hplus),
			k:      n.k,
		}
	case existsFormula:
		names := hplus.Names(n.v.Sort())
		disjuncts := make([]Formula, len(names))
		for i, name := range names {
			disjuncts[i] = groundQuantifiers(substituteFormula(n.f, n.v, name), hplus)
		}
		return orFormula{disjuncts}
	case forallFormula:
		names := hplus.Names(n.v.Sort())
		conjuncts := make([]Formula, len(names))
		for i, name := range names {
			conjuncts[i] = groundQuantifiers(substituteFormula(n.f, n.v, name), hplus)
		}
		return andFormula{conjuncts}
	}
	return f
}

func groundQuantifiersAll(fs []Formula, hplus term.Universe) []Formula {
	out := make([]Formula, len(fs))
	for i, g := range fs {
		out[i] = groundQuantifiers(g, hplus)
	}
	return out
}

// substituteFormula replaces every occurrence of v with name throughout
// f, recursing into every node kind including the modal leaves (whose
// inner literals may still mention v).
func substituteFormula(f Formula, v, name term.Term) Formula {
	s := term.NewSubst().Bind(v, name)
	var walk func(Formula) Formula
	walkAll := func(fs []Formula) []Formula {
		out := make([]Formula, len(fs))
		for i, g := range fs {
			out[i] = walk(g)
		}
		return out
	}
	walk = func(f Formula) Formula {
		switch n := f.(type) {
		case constFormula:
			return n
		case eqFormula:
			return eqFormula{n.t1.Substitute(s), n.t2.Substitute(s), n.sign}
		case litFormula:
			return litFormula{n.lit.Substitute(s)}
		case notFormula:
			return notFormula{walk(n.f)}
		case andFormula:
			return andFormula{walkAll(n.fs)}
		case orFormula:
			return orFormula{walkAll(n.fs)}
		case boxFormula:
			return boxFormula{n.action.Substitute(s), walk(n.f)}
		case existsFormula:
			if n.v.Equal(v) {
				return n
			}
			return existsFormula{n.v, walk(n.f)}
		case forallFormula:
			if n.v.Equal(v) {
				return n
			}
			return forallFormula{n.v, walk(n.f)}
		case knowFormula:
			return knowFormula{z: substituteTerms(n.z, s), k: n.k, f: walk(n.f)}
		case belFormula:
			return belFormula{z: substituteTerms(n.z, s), negPhi: walk(n.negPhi), psi: walk(n.psi), k: n.k}
		}
		return f
	}
	return walk(f)
}

func substituteTerms(ts []term.Term, s term.Subst) []term.Term {
	out := make([]term.Term, len(ts))
	for i, t := range ts {
		out[i] = t.Substitute(s)
	}
	return out
}

// simplify collapses ground term equalities to true/false and removes
// the resulting constants from conjunctions/disjunctions (spec.md 4.6
// step 4): true drops out of an And, false drops out of an Or, and a
// single false in an And (or true in an Or) collapses the whole node.
func simplify(f Formula) Formula {
	switch n := f.(type) {
	case constFormula, litFormula:
		return n
	case eqFormula:
		if n.t1.IsGround() && n.t2.IsGround() {
			eq := n.t1.Equal(n.t2)
			return constFormula{eq == n.sign}
		}
		return n
	case notFormula:
		inner := simplify(n.f)
		if c, ok := inner.(constFormula); ok {
			return constFormula{!c.v}
		}
		return notFormula{inner}
	case andFormula:
		var kept []Formula
		for _, g := range n.fs {
			sg := simplify(g)
			if c, ok := sg.(constFormula); ok {
				if !c.v {
					return constFormula{false}
				}
				continue
			}
			kept = append(kept, sg)
		}
		if len(kept) == 0 {
			return constFormula{true}
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return andFormula{kept}
	case orFormula:
		var kept []Formula
		for _, g := range n.fs {
			sg := simplify(g)
			if c, ok := sg.(constFormula); ok {
				if c.v {
					return constFormula{true}
				}
				continue
			}
			kept = append(kept, sg)
		}
		if len(kept) == 0 {
			return constFormula{false}
		}
		if len(kept) == 1 {
			return kept[0]
		}
		return orFormula{kept}
	case boxFormula:
		return boxFormula{n.action, simplify(n.f)}
	case knowFormula:
		return knowFormula{z: n.z, k: n.k, f: simplify(n.f)}
	case belFormula:
		return belFormula{z: n.z, negPhi: simplify(n.negPhi), psi: simplify(n.psi), k: n.k}
	}
	return f
}

// ToCNF distributes disjunction over conjunction on an already-grounded,
// quantifier-free formula, so ToClauses can read off an And-of-Or-of-
// literals directly. K/Bel/Not-of-K leaves are left untouched; they are
// not part of the clausal fragment and must be evaluated separately.
func ToCNF(f Formula) Formula {
	switch n := f.(type) {
	case constFormula, litFormula, eqFormula:
		return n
	case notFormula:
		return notFormula{n.f}
	case knowFormula, belFormula:
		return n
	case andFormula:
		parts := make([]Formula, len(n.fs))
		for i, g := range n.fs {
			parts[i] = ToCNF(g)
		}
		return andFormula{flattenAnd(parts)}
	case orFormula:
		parts := make([]Formula, len(n.fs))
		for i, g := range n.fs {
			parts[i] = ToCNF(g)
		}
		return distributeOr(parts)
	}
	return f
}

func flattenAnd(fs []Formula) []Formula {
	var out []Formula
	for _, f := range fs {
		if a, ok := f.(andFormula); ok {
			out = append(out, flattenAnd(a.fs)...)
			continue
		}
		out = append(out, f)
	}
	return out
}

// distributeOr builds the disjunction of fs, distributing over any
// conjunctions among them until the result is a single clause (an Or of
// non-And formulas) or, if one of the disjuncts is itself still a
// conjunction after distribution bottoms out, an And of such clauses.
func distributeOr(fs []Formula) Formula {
	clauses := [][]Formula{nil}
	for _, f := range fs {
		if a, ok := f.(andFormula); ok {
			var next [][]Formula
			for _, conjunct := range a.fs {
				for _, prefix := range clauses {
					next = append(next, append(append([]Formula(nil), prefix...), conjunct))
				}
			}
			clauses = next
			continue
		}
		for i := range clauses {
			clauses[i] = append(clauses[i], f)
		}
	}
	if len(clauses) == 1 {
		return orFormula{clauses[0]}
	}
	out := make([]Formula, len(clauses))
	for i, c := range clauses {
		out[i] = orFormula{c}
	}
	return andFormula{out}
}

// ToClauses reads a CNF'd, ground, quantifier-free formula off as a list
// of clause.Clause, for handoff to setup/belief. ok is false if some
// conjunct of the CNF is anything other than a constant, a literal, or an
// Or of literals — e.g. it still has a K/Bel leaf that must be evaluated by
// the caller instead of clausified, or a term equality left unsimplified.
func ToClauses(f Formula) ([]clause.Clause, bool) {
	top := ToCNF(f)
	var conjuncts []Formula
	if a, ok := top.(andFormula); ok {
		conjuncts = a.fs
	} else {
		conjuncts = []Formula{top}
	}
	clauses := make([]clause.Clause, 0, len(conjuncts))
	for _, c := range conjuncts {
		if cst, ok := c.(constFormula); ok {
			if cst.v {
				continue // trivially satisfied conjunct, no constraint to add
			}
			clauses = append(clauses, clause.Empty())
			continue
		}
		lits, ok := disjunctLiterals(c)
		if !ok {
			return nil, false
		}
		clauses = append(clauses, clause.New(ewff.True(), lits...))
	}
	return clauses, true
}

// disjunctLiterals reads a single clause's literals off a formula that
// should already be an Or of literals (or a bare literal). It returns
// ok=false for anything that isn't plain literals, signalling the caller
// that this conjunct still has a K/Bel leaf (or a stray negated one)
// that must be evaluated separately rather than clausified.
func disjunctLiterals(f Formula) ([]atom.Literal, bool) {
	switch n := f.(type) {
	case litFormula:
		return []atom.Literal{n.lit}, true
	case orFormula:
		var out []atom.Literal
		for _, g := range n.fs {
			ls, ok := disjunctLiterals(g)
			if !ok {
				return nil, false
			}
			out = append(out, ls...)
		}
		return out, true
	}
	return nil, false
}
