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

package belief

import (
	"testing"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/setup"
	"github.com/lakemeyer-levesque/eslk/term"
)

func boolLit(f *term.Factory, boolSort term.Sort, pred term.FuncSymbol, sign bool, val term.Term) atom.Literal {
	lhs, err := f.Apply(pred)
	if err != nil {
		panic(err)
	}
	return atom.New(nil, sign, lhs, val)
}

// TestBeliefRevisionBuildsAtLeastOneLevel adds the conditionals of the
// R1/L1/L2 scenario (spec.md 8), true=>!L1, true=>R1, !L1=>R1 and R1=>!L2,
// over an empty base and checks that propagation builds a plausibility
// level. With an empty base no negated antecedent is entailed, so every
// conditional stays at level 0.
func TestBeliefRevisionBuildsAtLeastOneLevel(t *testing.T) {
	f := term.NewFactory()
	boolSort := f.CreateSort("bool", false)
	tSym, _ := f.CreateNameSymbol(boolSort, "true", 0)
	tn, _ := f.Name(tSym)

	r1 := f.CreateFunSymbol(boolSort, "R1", 0)
	l1 := f.CreateFunSymbol(boolSort, "L1", 0)
	l2 := f.CreateFunSymbol(boolSort, "L2", 0)

	base := setup.NewRoot(term.NewUniverse())
	base.Init()

	s := NewSetups(base)

	trivialNegPhi := clause.New(nil) // "true" negated is unsatisfiable: the empty clause as antecedent-negation
	notL1 := clause.New(nil, boolLit(f, boolSort, l1, false, tn))
	s.AddBeliefConditional(trivialNegPhi, notL1, 1) // true => !L1

	yesR1 := clause.New(nil, boolLit(f, boolSort, r1, true, tn))
	s.AddBeliefConditional(trivialNegPhi, yesR1, 1) // true => R1

	l1AsNegPhi := clause.New(nil, boolLit(f, boolSort, l1, true, tn))
	s.AddBeliefConditional(l1AsNegPhi, yesR1, 1) // !L1 => R1

	notR1 := clause.New(nil, boolLit(f, boolSort, r1, false, tn))
	notL2 := clause.New(nil, boolLit(f, boolSort, l2, false, tn))
	s.AddBeliefConditional(notR1, notL2, 1) // R1 => !L2

	if len(s.Levels()) == 0 {
		t.Fatal("expected at least one plausibility level after adding conditionals")
	}
}

func TestEntailsFallsBackToBaseWithoutConditionals(t *testing.T) {
	f := term.NewFactory()
	boolSort := f.CreateSort("bool", false)
	tSym, _ := f.CreateNameSymbol(boolSort, "true", 0)
	tn, _ := f.Name(tSym)
	p := f.CreateFunSymbol(boolSort, "P", 0)

	base := setup.NewRoot(term.NewUniverse())
	base.AddClause(clause.New(nil, boolLit(f, boolSort, p, true, tn)))
	base.Init()

	s := NewSetups(base)
	goal := clause.New(nil, boolLit(f, boolSort, p, true, tn))
	if !s.Entails(goal, 0) {
		t.Fatal("with no conditionals, Setups.Entails should defer to the base setup")
	}
}
