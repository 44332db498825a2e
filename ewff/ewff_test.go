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

package ewff

import (
	"testing"

	"github.com/lakemeyer-levesque/eslk/term"
)

func setupUniverse(f *term.Factory, sort term.Sort, labels ...string) term.Universe {
	u := term.NewUniverse()
	for _, l := range labels {
		sym, _ := f.CreateNameSymbol(sort, l, 0)
		n, _ := f.Name(sym)
		u.Add(n)
	}
	return u
}

func TestEqualityModels(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	u := setupUniverse(f, block, "alice", "bob", "carol")
	x := f.CreateVar(block)
	alice, _ := f.CreateNameSymbol(block, "alice", 0)
	a, _ := f.Name(alice)

	guard := Equal(x, a)
	models := Models(guard, []term.Term{x}, u)
	if len(models) != 1 {
		t.Fatalf("expected exactly one model, got %d", len(models))
	}
	bound, ok := models[0].Lookup(x)
	if !ok || !bound.Equal(a) {
		t.Fatal("x should be bound to alice")
	}
}

func TestUnequalModels(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	u := setupUniverse(f, block, "alice", "bob", "carol")
	x := f.CreateVar(block)
	alice, _ := f.CreateNameSymbol(block, "alice", 0)
	a, _ := f.Name(alice)

	guard := Unequal(x, a)
	models := Models(guard, []term.Term{x}, u)
	if len(models) != 2 {
		t.Fatalf("expected two models (bob, carol), got %d", len(models))
	}
}

func TestNegAndOr(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	alice, _ := f.CreateNameSymbol(block, "alice", 0)
	a, _ := f.Name(alice)
	bob, _ := f.CreateNameSymbol(block, "bob", 0)
	b, _ := f.Name(bob)

	g := Or(Equal(a, a), Equal(a, b))
	if Eval(g) != Yes {
		t.Fatal("a=a v a=b should be true")
	}
	if Eval(Neg(g)) != No {
		t.Fatal("negation of a true guard should be false")
	}
}

func TestSubstituteCollapsesToConstant(t *testing.T) {
	f := term.NewFactory()
	block := f.CreateSort("block", false)
	x := f.CreateVar(block)
	alice, _ := f.CreateNameSymbol(block, "alice", 0)
	a, _ := f.Name(alice)

	guard := Equal(x, a)
	s := term.NewSubst().Bind(x, a)
	residual := Substitute(guard, s)
	if Eval(residual) != Yes {
		t.Fatal("substituting x=alice into x=alice should yield true")
	}
}
