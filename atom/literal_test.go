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

package atom

import (
	"testing"

	"github.com/lakemeyer-levesque/eslk/term"
)

func setup(t *testing.T) (*term.Factory, term.Sort, term.FuncSymbol) {
	t.Helper()
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	color := f.CreateSort("color", false)
	on := f.CreateFunSymbol(color, "Color", 1)
	_ = block
	return f, color, on
}

func TestFlipTwiceIsIdentity(t *testing.T) {
	f, color, colorOf := setup(t)
	block := f.CreateSort("block", false)
	b1, _ := f.CreateNameSymbol(block, "b1", 0)
	blk, _ := f.Name(b1)
	red, _ := f.CreateNameSymbol(color, "red", 0)
	r, _ := f.Name(red)

	lhs, err := f.Apply(colorOf, blk)
	if err != nil {
		t.Fatal(err)
	}
	l := New(nil, true, lhs, r)
	if !l.Flip().Flip().Equal(l) {
		t.Fatal("flipping twice should be the identity")
	}
	if l.Flip().Sign {
		t.Fatal("flip should toggle sign")
	}
}

func TestComplementaryDistinctValues(t *testing.T) {
	f, color, colorOf := setup(t)
	block := f.CreateSort("block", false)
	b1, _ := f.CreateNameSymbol(block, "b1", 0)
	blk, _ := f.Name(b1)
	red, _ := f.CreateNameSymbol(color, "red", 0)
	r, _ := f.Name(red)
	green, _ := f.CreateNameSymbol(color, "green", 0)
	g, _ := f.Name(green)

	lhs, _ := f.Apply(colorOf, blk)
	l1 := New(nil, true, lhs, r)
	l2 := New(nil, true, lhs, g)
	if !l1.Complementary(l2) {
		t.Fatal("Color(b1)=red and Color(b1)=green should be complementary")
	}
}

func TestComplementaryEqualityAndInequality(t *testing.T) {
	f, color, colorOf := setup(t)
	block := f.CreateSort("block", false)
	b1, _ := f.CreateNameSymbol(block, "b1", 0)
	blk, _ := f.Name(b1)
	red, _ := f.CreateNameSymbol(color, "red", 0)
	r, _ := f.Name(red)

	lhs, _ := f.Apply(colorOf, blk)
	l1 := New(nil, true, lhs, r)
	l2 := New(nil, false, lhs, r)
	if !l1.Complementary(l2) {
		t.Fatal("Color(b1)=red and Color(b1)!=red should be complementary")
	}
	if l1.Complementary(l1) {
		t.Fatal("a literal is never complementary to itself")
	}
}

func TestSubstituteRewritesAllParts(t *testing.T) {
	f, color, colorOf := setup(t)
	block := f.CreateSort("block", false)
	x := f.CreateVar(block)
	b1, _ := f.CreateNameSymbol(block, "b1", 0)
	blk, _ := f.Name(b1)
	red, _ := f.CreateNameSymbol(color, "red", 0)
	r, _ := f.Name(red)

	lhs, _ := f.Apply(colorOf, x)
	l := New(nil, true, lhs, r)
	if l.IsGround() {
		t.Fatal("literal with a free variable should not be ground")
	}
	s := term.NewSubst().Bind(x, blk)
	g := l.Substitute(s)
	if !g.IsGround() {
		t.Fatal("substituting the last free variable should make the literal ground")
	}
}

func TestUnifySameSymbolDifferentArgs(t *testing.T) {
	f, color, colorOf := setup(t)
	block := f.CreateSort("block", false)
	x := f.CreateVar(block)
	y := f.CreateVar(block)
	red, _ := f.CreateNameSymbol(color, "red", 0)
	r, _ := f.Name(red)

	lhs1, _ := f.Apply(colorOf, x)
	lhs2, _ := f.Apply(colorOf, y)
	l1 := New(nil, true, lhs1, r)
	l2 := New(nil, true, lhs2, r)
	_, ok := Unify(l1, l2, term.NewSubst())
	if !ok {
		t.Fatal("Color(x)=red and Color(y)=red should unify (x bound to y or vice versa)")
	}
}
