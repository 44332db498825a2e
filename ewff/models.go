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

import "github.com/lakemeyer-levesque/eslk/term"

// ForEachModel enumerates every assignment of vars to names from hplus
// (respecting each variable's sort) under which e evaluates to Yes, calling
// yield for each one. Enumeration stops early if yield returns false. This
// is the lazy, one-variable-at-a-time generator the design notes call for
// (spec.md 9): no product of all variables x all names is ever built in
// full, because a partial assignment that already falsifies e prunes the
// remaining variables.
func ForEachModel(e Ewff, vars []term.Term, hplus term.Universe, yield func(term.Subst) bool) {
	var rec func(i int, s term.Subst) bool
	rec = func(i int, s term.Subst) bool {
		if i == len(vars) {
			if e.eval(s) == Yes {
				return yield(s)
			}
			return true
		}
		v := vars[i]
		for _, n := range hplus.Names(v.Sort()) {
			next := s.Bind(v, n)
			partial := e.substitute(next)
			if partial.eval(term.NewSubst()) == No {
				continue // prune: this partial assignment can never be satisfied
			}
			if !rec(i+1, next) {
				return false
			}
		}
		return true
	}
	rec(0, term.NewSubst())
}

// Models collects every satisfying assignment of vars over hplus. Most
// callers (grounding a universal clause) need the full set anyway, so this
// is provided as a convenience over ForEachModel.
func Models(e Ewff, vars []term.Term, hplus term.Universe) []term.Subst {
	var out []term.Subst
	ForEachModel(e, vars, hplus, func(s term.Subst) bool {
		out = append(out, s)
		return true
	})
	return out
}
