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

package ground

import (
	"testing"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/term"
)

func TestComputeHPlusIncludesAxiomAndQueryNames(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	color := f.CreateSort("color", false)
	colorOf := f.CreateFunSymbol(color, "Color", 1)

	b1sym, _ := f.CreateNameSymbol(block, "b1", 0)
	b1, _ := f.Name(b1sym)
	redSym, _ := f.CreateNameSymbol(color, "red", 0)
	red, _ := f.Name(redSym)

	lhs, _ := f.Apply(colorOf, b1)
	c := clause.New(nil, atom.New(nil, true, lhs, red))

	u := ComputeHPlus(f, []clause.Clause{c}, nil, nil)
	if len(u.Names(block)) == 0 {
		t.Fatal("expected b1 to be included in H+ for sort block")
	}
	if len(u.Names(color)) == 0 {
		t.Fatal("expected red to be included in H+ for sort color")
	}
}

func TestComputeHPlusAddsFreshPlaceholdersForVariables(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	color := f.CreateSort("color", false)
	colorOf := f.CreateFunSymbol(color, "Color", 1)

	x := f.CreateVar(block)
	y := f.CreateVar(block)
	redSym, _ := f.CreateNameSymbol(color, "red", 0)
	red, _ := f.Name(redSym)

	lhsX, _ := f.Apply(colorOf, x)
	lhsY, _ := f.Apply(colorOf, y)
	c := clause.New(nil,
		atom.New(nil, true, lhsX, red),
		atom.New(nil, false, lhsY, red),
	)

	u := ComputeHPlus(f, []clause.Clause{c}, nil, nil)
	if got := len(u.Names(block)); got < 2 {
		t.Fatalf("expected at least 2 placeholder names for block (one per variable), got %d", got)
	}
}

func TestPrefixesIncludesEmptyAndFull(t *testing.T) {
	f := term.NewFactory()
	action := f.CreateSort("action", false)
	aSym, _ := f.CreateNameSymbol(action, "a", 0)
	a, _ := f.Name(aSym)
	bSym, _ := f.CreateNameSymbol(action, "b", 0)
	b, _ := f.Name(bSym)

	prefixes := Prefixes([]term.Term{a, b})
	if len(prefixes) != 3 {
		t.Fatalf("expected 3 prefixes ([], [a], [a,b]), got %d", len(prefixes))
	}
	if len(prefixes[0]) != 0 {
		t.Fatal("first prefix should be empty")
	}
	if len(prefixes[2]) != 2 {
		t.Fatal("last prefix should be the full sequence")
	}
}
