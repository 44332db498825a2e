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
	"github.com/lakemeyer-levesque/eslk/term"
)

// TestGridAllCellsClearedMakesEveryQueryEntailed builds a 3x3 minesweeper
// style board: exactly the kind of "at least one, at most one" counting
// theory the grounder's combinatorial blow-up is meant to survive
// (spec.md 8). Static axioms assert at least one mine among the 9 cells
// and at most one mine per pair. Sensing the center cell with a
// neighbouring-mine count of zero asserts every one of the 9 cells is
// mine-free, which collapses the "at least one" clause to the empty
// clause: the base setup becomes permanently inconsistent, and every
// clause (however unrelated to mines) is entailed at every depth by
// ex falso.
func TestGridAllCellsClearedMakesEveryQueryEntailed(t *testing.T) {
	e := NewEngine(nil)
	f := e.Factory
	atom.RegisterFactory(f)

	boolSort := f.CreateSort("bool", false)
	tSym, _ := f.CreateNameSymbol(boolSort, "true", 0)
	tn, _ := f.Name(tSym)

	cellSort := f.CreateSort("cell", false)
	cellNames := make([]term.Term, 9)
	for i := 0; i < 9; i++ {
		sym, err := f.CreateNameSymbol(cellSort, cellLabel(i), 0)
		if err != nil {
			t.Fatal(err)
		}
		n, err := f.Name(sym)
		if err != nil {
			t.Fatal(err)
		}
		cellNames[i] = n
	}

	mine := f.CreateFunSymbol(boolSort, "Mine", 1)
	mineLit := func(idx int, sign bool) atom.Literal {
		lhs, err := f.Apply(mine, cellNames[idx])
		if err != nil {
			t.Fatal(err)
		}
		return atom.New(nil, sign, lhs, tn)
	}

	// At least one mine somewhere on the board.
	atLeastOne := make([]atom.Literal, 9)
	for i := 0; i < 9; i++ {
		atLeastOne[i] = mineLit(i, true)
	}
	e.AddStaticClause(nil, atLeastOne...)

	// At most one mine: every pair rules out both being mines at once.
	for i := 0; i < 9; i++ {
		for j := i + 1; j < 9; j++ {
			e.AddStaticClause(nil, mineLit(i, false), mineLit(j, false))
		}
	}

	hint := clause.New(nil, mineLit(0, true))
	if err := e.Init(hint); err != nil {
		t.Fatalf("Init: %v", err)
	}

	if e.Inconsistent(0) {
		t.Fatal("board should be consistent before any cell is revealed")
	}

	// Revealing the center with a neighbour-mine count of zero means every
	// cell on a 3x3 board, center included, is mine-free.
	for i := 0; i < 9; i++ {
		e.AddSensingResult(mineLit(i, true), false)
	}

	if !e.Inconsistent(0) {
		t.Fatal("clearing every cell should contradict the at-least-one-mine axiom")
	}

	// Ex falso: any clause at all, even one naming cells not otherwise
	// constrained, is now entailed.
	target := clause.New(nil, mineLit(0, false), mineLit(1, false))
	if !e.EntailsClause(target, 1) {
		t.Fatal("expected Mine(c11)!=true v Mine(c12)!=true to be entailed from an inconsistent board")
	}
}

func cellLabel(i int) string {
	rows := [3]byte{'1', '2', '3'}
	cols := [3]byte{'1', '2', '3'}
	return "c" + string(rows[i/3]) + string(cols[i%3])
}
