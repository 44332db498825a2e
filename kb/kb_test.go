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

package kb

import (
	"testing"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/query"
	"github.com/lakemeyer-levesque/eslk/term"
)

// TestForwardActionRequiresSplitToResolveDisjunction mirrors the
// forward/sonar scenario's shape (spec.md 8): a static disjunction and an
// implication that only resolve into the queried disjunction through a
// case split, situated after a boxed action via persistence axioms.
//
// Static: D(i1) v D(i2), ~D(i1) v D(i3) (situation 0).
// Boxed: D(iN) persists across the action f for iN in {i1,i2,i3}.
// Query (after f): D(i2) v D(i3).
//
// Splitting on D(i2)@[f] proves both branches: the positive branch
// directly contains the split atom; the negative branch resolves back
// through the persistence axioms and ~D(i1) v D(i3) to derive D(i3)@[f].
// Neither static clause alone subsumes the query clause, so no split
// means no proof.
func TestForwardActionRequiresSplitToResolveDisjunction(t *testing.T) {
	f := term.NewFactory()
	atom.RegisterFactory(f)

	boolSort := f.CreateSort("bool", false)
	tSym, _ := f.CreateNameSymbol(boolSort, "true", 0)
	tn, _ := f.Name(tSym)

	idxSort := f.CreateSort("idx", false)
	i1Sym, _ := f.CreateNameSymbol(idxSort, "i1", 0)
	i1, _ := f.Name(i1Sym)
	i2Sym, _ := f.CreateNameSymbol(idxSort, "i2", 0)
	i2, _ := f.Name(i2Sym)
	i3Sym, _ := f.CreateNameSymbol(idxSort, "i3", 0)
	i3, _ := f.Name(i3Sym)

	actionSort := f.CreateSort("action", false)
	fwdSym, _ := f.CreateNameSymbol(actionSort, "f", 0)
	fwd, _ := f.Name(fwdSym)

	a := f.CreateVar(actionSort) // the generic action variable boxed clauses range over

	d := f.CreateFunSymbol(boolSort, "D", 1)
	dLit := func(z []term.Term, idx term.Term, sign bool) atom.Literal {
		lhs, err := f.Apply(d, idx)
		if err != nil {
			t.Fatal(err)
		}
		return atom.New(z, sign, lhs, tn)
	}

	e := NewEngine(nil)
	e.Factory = f
	atom.RegisterFactory(f)

	// D(i1) v D(i2)
	e.AddStaticClause(nil, dLit(nil, i1, true), dLit(nil, i2, true))
	// ~D(i1) v D(i3)
	e.AddStaticClause(nil, dLit(nil, i1, false), dLit(nil, i3, true))

	// Persistence across f, for every index: D(iN)@[] <-> D(iN)@[a].
	for _, idx := range []term.Term{i1, i2, i3} {
		e.AddBoxedClause(nil, dLit(nil, idx, false), dLit([]term.Term{a}, idx, true))
		e.AddBoxedClause(nil, dLit(nil, idx, true), dLit([]term.Term{a}, idx, false))
	}

	// Ensure H+ contains the action name f: it never appears as a literal
	// name in any axiom (only the variable a does) since the axioms are
	// meant to range over every action, but the query sequence needs a
	// concrete name to ground the boxed clauses against.
	hint := clause.New(nil, dLit([]term.Term{fwd}, i1, true))

	if err := e.Init(hint, []term.Term{fwd}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	goal := clause.New(nil, dLit([]term.Term{fwd}, i2, true), dLit([]term.Term{fwd}, i3, true))

	if e.EntailsClause(goal, 0) {
		t.Fatal("D(i2) v D(i3) after f should not be entailed at k=0 without a split")
	}
	if !e.EntailsClause(goal, 1) {
		t.Fatal("D(i2) v D(i3) after f should be entailed at k=1 via a split on D(i2)")
	}

	// Same check through the formula-level front end.
	queryFormula := query.OrF(
		query.LitF(dLit([]term.Term{fwd}, i2, true)),
		query.LitF(dLit([]term.Term{fwd}, i3, true)),
	)
	if r, err := e.EntailsFormula(queryFormula, 0); err != nil || r == Yes {
		t.Fatalf("expected formula-level query to not be Yes at k=0, got %v, %v", r, err)
	}
	if r, err := e.EntailsFormula(queryFormula, 1); err != nil || r != Yes {
		t.Fatalf("expected formula-level query to be Yes at k=1, got %v, %v", r, err)
	}
}

// TestSensingResultEntailedThroughEngine is the "sensing integration"
// testable property (spec.md 8) exercised end-to-end through the Engine
// front end: after AddSensingResult(z, a, true), K_0([z]SF(a)=true) holds.
func TestSensingResultEntailedThroughEngine(t *testing.T) {
	f := term.NewFactory()
	atom.RegisterFactory(f)

	boolSort := f.CreateSort("bool", false)
	tSym, _ := f.CreateNameSymbol(boolSort, "true", 0)
	tn, _ := f.Name(tSym)

	actionSort := f.CreateSort("action", false)
	aSym, _ := f.CreateNameSymbol(actionSort, "sonar", 0)
	sonar, _ := f.Name(aSym)

	sf := f.CreateFunSymbol(boolSort, "SF", 1)
	lhs, err := f.Apply(sf, sonar)
	if err != nil {
		t.Fatal(err)
	}
	sfLit := atom.New(nil, true, lhs, tn)

	e := NewEngine(nil)
	e.Factory = f
	atom.RegisterFactory(f)

	hint := clause.New(nil, sfLit)
	if err := e.Init(hint); err != nil {
		t.Fatalf("Init: %v", err)
	}

	e.AddSensingResult(sfLit, true)

	if !e.EntailsClause(clause.New(nil, sfLit), 0) {
		t.Fatal("expected the sensed literal to be entailed at k=0")
	}

	result, err := e.EntailsFormula(query.KnowF(0, query.LitF(sfLit)), 0)
	if err != nil {
		t.Fatalf("EntailsFormula: %v", err)
	}
	if result != Yes {
		t.Fatalf("expected K_0(SF(sonar)=true) to be Yes after sensing, got %v", result)
	}
}
