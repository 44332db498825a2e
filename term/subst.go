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

package term

// Subst maps variable ids to terms. It is the engine's substitution
// environment, used by atoms, literals, and clauses alike.
type Subst map[uint64]Term

// NewSubst returns an empty substitution.
func NewSubst() Subst { return make(Subst) }

// Bind returns a new substitution extending s with v -> t, leaving s itself
// unmodified. Subst is treated as a persistent structure throughout the
// engine (backtracking search over Ewff models and clause splitting both
// rely on being able to branch from a shared prefix without aliasing).
func (s Subst) Bind(v, t Term) Subst {
	next := make(Subst, len(s)+1)
	for k, val := range s {
		next[k] = val
	}
	next[v.id] = t
	return next
}

// Lookup returns the term bound to v, if any.
func (s Subst) Lookup(v Term) (Term, bool) {
	if s == nil {
		return Term{}, false
	}
	t, ok := s[v.id]
	return t, ok
}

// Substitute applies s to t. Variables not in dom(s) are left unchanged
// (substitution "fails silently" per spec.md 4.1); names are unaffected;
// function applications are rebuilt with substituted arguments.
func (t Term) Substitute(s Subst) Term {
	if len(s) == 0 {
		return t
	}
	switch t.kind {
	case Variable:
		if repl, ok := s[t.id]; ok {
			return repl
		}
		return t
	case Name:
		if len(t.args) == 0 {
			return t
		}
		return t.substituteArgs(s)
	case Function:
		return t.substituteArgs(s)
	}
	return t
}

func (t Term) substituteArgs(s Subst) Term {
	changed := false
	newArgs := make([]Term, len(t.args))
	for i, a := range t.args {
		na := a.Substitute(s)
		if !na.Equal(a) {
			changed = true
		}
		newArgs[i] = na
	}
	if !changed {
		return t
	}
	u := t
	u.args = newArgs
	return u
}

// Chase follows s until a constant or an unmapped variable is reached.
func (t Term) Chase(s Subst) Term {
	cur := t
	for cur.kind == Variable {
		next, ok := s[cur.id]
		if !ok {
			return cur
		}
		cur = next
	}
	return cur
}

// Unify attempts to extend s so that a.Substitute(result) and
// b.Substitute(result) are identical. It returns (nil, false) if no such
// extension exists. Because variables never occur inside other variables,
// the occurs-check reduces to identity (spec.md 4.1).
func Unify(a, b Term, s Subst) (Subst, bool) {
	ca := a.Chase(s)
	cb := b.Chase(s)
	if ca.Equal(cb) {
		return s, true
	}
	switch {
	case ca.IsVariable():
		return s.Bind(ca, cb), true
	case cb.IsVariable():
		return s.Bind(cb, ca), true
	case ca.Kind() != cb.Kind():
		return nil, false
	case ca.Kind() == Function || (ca.Kind() == Name && (len(ca.Args()) > 0 || len(cb.Args()) > 0)):
		if ca.Symbol() != cb.Symbol() || len(ca.Args()) != len(cb.Args()) {
			return nil, false
		}
		cur := s
		for i := range ca.Args() {
			var ok bool
			cur, ok = Unify(ca.Args()[i], cb.Args()[i], cur)
			if !ok {
				return nil, false
			}
		}
		return cur, true
	default:
		// Two distinct arity-0 names: fail.
		return nil, false
	}
}
