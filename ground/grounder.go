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

// Package ground computes the Herbrand universe H+ that the setup grounds
// universal clauses and queries over (spec.md 4.4.1): the union of names
// appearing in the axioms, the names appearing in the query, and enough
// fresh per-sort placeholders to cover the widest variable spread of any
// single clause or the query itself.
package ground

import (
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/ewff"
	"github.com/lakemeyer-levesque/eslk/term"
)

// ComputeHPlus builds H+ from the axiom set, the names occurring literally
// in the query, and the query's own free variables. Fresh placeholders are
// minted through f so that later grounding calls can keep reusing the same
// interned names.
func ComputeHPlus(f *term.Factory, clauses []clause.Clause, queryNames, queryVars []term.Term) term.Universe {
	u := term.NewUniverse()
	u.AddAll(queryNames)
	for _, c := range clauses {
		u.AddAll(ewff.Names(c.Guard))
		for _, l := range c.Lits {
			u.AddAll(l.Names())
		}
	}

	maxPerSort := countBySort(queryVars)
	for _, c := range clauses {
		bumpMax(maxPerSort, countBySort(c.Variables()))
	}
	for sort, n := range maxPerSort {
		for i := 0; i < n; i++ {
			u.Add(f.FreshName(sort))
		}
	}
	return u
}

func countBySort(vars []term.Term) map[term.Sort]int {
	m := make(map[term.Sort]int)
	for _, v := range vars {
		m[v.Sort()]++
	}
	return m
}

func bumpMax(acc map[term.Sort]int, counts map[term.Sort]int) {
	for s, n := range counts {
		if n > acc[s] {
			acc[s] = n
		}
	}
}

// Prefixes returns every prefix of z (including the empty one, the initial
// situation), shortest first, used when grounding a boxed (always-true)
// clause into every situation a query action sequence passes through
// (spec.md 4.4.1 phase 3).
func Prefixes(z []term.Term) [][]term.Term {
	out := make([][]term.Term, 0, len(z)+1)
	for i := 0; i <= len(z); i++ {
		out = append(out, append([]term.Term(nil), z[:i]...))
	}
	return out
}
