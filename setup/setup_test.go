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

package setup

import (
	"testing"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/ewff"
	"github.com/lakemeyer-levesque/eslk/term"
)

// buildBool creates a two-valued "bool" sort and its true/false names.
func buildBool(f *term.Factory) (term.Sort, term.Term, term.Term) {
	b := f.CreateSort("bool", false)
	tSym, _ := f.CreateNameSymbol(b, "true", 0)
	tn, _ := f.Name(tSym)
	fSym, _ := f.CreateNameSymbol(b, "false", 0)
	fn, _ := f.Name(fSym)
	return b, tn, fn
}

// dLiteral builds the ground unit clause d(i) = v.
func dLiteral(f *term.Factory, boolSort term.Sort, d term.FuncSymbol, i term.Term, v term.Term, sign bool) atom.Literal {
	lhs, err := f.Apply(d, i)
	if err != nil {
		panic(err)
	}
	return atom.New(nil, sign, lhs, v)
}

func TestInconsistentDetectsComplementaryUnits(t *testing.T) {
	f := term.NewFactory()
	idx := f.CreateSort("idx", false)
	boolSort, tn, _ := buildBool(f)
	d := f.CreateFunSymbol(boolSort, "D", 1)
	i0sym, _ := f.CreateNameSymbol(idx, "i0", 0)
	i0, _ := f.Name(i0sym)

	s := NewRoot(term.NewUniverse())
	s.AddClause(clause.New(nil, dLiteral(f, boolSort, d, i0, tn, true)))
	s.AddClause(clause.New(nil, dLiteral(f, boolSort, d, i0, tn, false)))
	s.Init()

	if !s.Inconsistent(0) {
		t.Fatal("a setup with d(i0)=true and d(i0)!=true should be inconsistent at k=0")
	}
}

func TestEntailsDisjunctionBySubsumptionAtDepthZero(t *testing.T) {
	f := term.NewFactory()
	idx := f.CreateSort("idx", false)
	boolSort, tn, fn := buildBool(f)
	d := f.CreateFunSymbol(boolSort, "D", 1)
	i2sym, _ := f.CreateNameSymbol(idx, "i2", 0)
	i2, _ := f.Name(i2sym)
	i3sym, _ := f.CreateNameSymbol(idx, "i3", 0)
	i3, _ := f.Name(i3sym)

	// Static clause: d(2) v d(3).
	s := NewRoot(term.NewUniverse())
	s.AddClause(clause.New(nil,
		dLiteral(f, boolSort, d, i2, tn, true),
		dLiteral(f, boolSort, d, i3, tn, true),
	))
	s.Init()

	goal := clause.New(nil,
		dLiteral(f, boolSort, d, i2, tn, true),
		dLiteral(f, boolSort, d, i3, tn, true),
	)
	if !s.Entails(goal, 0) {
		t.Fatal("the setup should already subsume its own disjunctive clause at k=0")
	}

	narrower := clause.New(nil, dLiteral(f, boolSort, d, i2, tn, true))
	if s.Entails(narrower, 0) {
		t.Fatal("d(2) alone should not be entailed at k=0 without splitting")
	}
	_ = fn
}

func TestSensingResultIsEntailedAtDepthZero(t *testing.T) {
	f := term.NewFactory()
	boolSort, tn, _ := buildBool(f)
	actionSort := f.CreateSort("action", false)
	sf := f.CreateFunSymbol(boolSort, "SF", 1)
	aSym, _ := f.CreateNameSymbol(actionSort, "a", 0)
	a, _ := f.Name(aSym)

	s := NewRoot(term.NewUniverse())
	s.Init()

	lhs, _ := f.Apply(sf, a)
	sfLit := atom.New(nil, true, lhs, tn)
	s.AddSensingResult(sfLit, true)

	goal := clause.New(nil, sfLit)
	if !s.Entails(goal, 0) {
		t.Fatal("after a positive sensing result, SF(a)=true should be entailed at k=0")
	}
}

func TestMinimizeDropsTautologousClause(t *testing.T) {
	f := term.NewFactory()
	boolSort, tn, _ := buildBool(f)
	idx := f.CreateSort("idx", false)
	d := f.CreateFunSymbol(boolSort, "D", 1)
	i0sym, _ := f.CreateNameSymbol(idx, "i0", 0)
	i0, _ := f.Name(i0sym)
	x := f.CreateVar(idx)

	lhsVar, _ := f.Apply(d, x)
	lhsConst, _ := f.Apply(d, i0)
	c := clause.New(nil,
		atom.New(nil, true, lhsVar, tn),
		atom.New(nil, false, lhsConst, tn),
	)
	if !c.Tautologous() {
		t.Fatal("sanity: D(x)=true v D(i0)!=true should be tautologous")
	}

	s := NewRoot(term.NewUniverse())
	idxClause := s.AddClause(c)
	s.Init()
	if s.Enabled(idxClause) {
		t.Fatal("a tautologous clause should be disabled by minimisation")
	}
}

func TestGuardedClauseDroppedWhenGuardFalse(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	boolSort, tn, _ := buildBool(f)
	colorOf := f.CreateFunSymbol(boolSort, "IsRed", 1)
	x := f.CreateVar(block)
	b1Sym, _ := f.CreateNameSymbol(block, "b1", 0)
	b1, _ := f.Name(b1Sym)
	b2Sym, _ := f.CreateNameSymbol(block, "b2", 0)
	b2, _ := f.Name(b2Sym)

	lhs, _ := f.Apply(colorOf, x)
	c := clause.New(ewff.Equal(x, b1), atom.New(nil, true, lhs, tn))
	s := term.NewSubst().Bind(x, b2)
	_, ok := c.Substitute(s)
	if ok {
		t.Fatal("substituting x=b2 into a guard x=b1 should drop the clause")
	}
}
