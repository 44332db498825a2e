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

// Package atom implements literals: quasi-primitive equations between a
// primitive term and a standard name, each carrying an action-prefix
// situation (spec.md 3, 4.1). "Atom" names the package because the
// component table in spec.md 2 describes this as predicate application with
// an action prefix; NewPredicate below is exactly that, expressed as sugar
// over the underlying functional-equation representation the data model
// (spec.md 3) specifies precisely.
package atom

import (
	"fmt"
	"strings"

	"github.com/lakemeyer-levesque/eslk"
	"github.com/lakemeyer-levesque/eslk/term"
)

// Literal is t1 = t2 or t1 != t2, where (after normalisation) t1 is
// primitive and t2 is a name, each evaluated in the situation given by the
// action prefix Z.
type Literal struct {
	Z    []term.Term
	LHS  term.Term
	Sign bool
	RHS  term.Term
}

// New builds a literal. It does not enforce quasi-primitivity; callers that
// must guarantee the invariant (spec.md 3) should call Validate.
func New(z []term.Term, sign bool, lhs, rhs term.Term) Literal {
	return Literal{Z: append([]term.Term(nil), z...), LHS: lhs, Sign: sign, RHS: rhs}
}

// Validate reports whether the literal is quasi-primitive: its left-hand
// side is a function of names/variables and its right-hand side is a name
// or a variable (spec.md 3).
func (l Literal) Validate() error {
	if l.LHS.Kind() != term.Function {
		return eslk.NewFault(eslk.FaultNonPrimitive, fmt.Sprintf("left-hand side %s is not a function application", l.LHS))
	}
	for _, a := range l.LHS.Args() {
		if a.Kind() != term.Name && a.Kind() != term.Variable {
			return eslk.NewFault(eslk.FaultNonPrimitive, fmt.Sprintf("left-hand side %s has argument %s that is neither a name nor a variable", l.LHS, a))
		}
	}
	if l.RHS.Kind() != term.Name && l.RHS.Kind() != term.Variable {
		return eslk.NewFault(eslk.FaultNonPrimitive, fmt.Sprintf("right-hand side %s is neither a name nor a variable", l.RHS))
	}
	return nil
}

// NewPredicate is sugar for building a predicate-style literal: a function
// symbol representing the predicate, applied to args and equated to
// boolName; sign true builds pred(args)=boolName, sign false builds
// pred(args)!=boolName.
func NewPredicate(z []term.Term, sign bool, pred term.FuncSymbol, boolName term.Term, args ...term.Term) (Literal, error) {
	f := predFactory
	if f == nil {
		return Literal{}, fmt.Errorf("atom: NewPredicate requires RegisterFactory to have been called")
	}
	lhs, err := f.Apply(pred, args...)
	if err != nil {
		return Literal{}, err
	}
	return New(z, sign, lhs, boolName), nil
}

// predFactory backs NewPredicate's Apply call. It is set once via
// RegisterFactory by the owner of the term.Factory (kb), not a hidden
// global state machine: every Apply call is still just interning through
// the same Factory the rest of the engine uses.
var predFactory *term.Factory

// RegisterFactory lets NewPredicate build applications through f.
func RegisterFactory(f *term.Factory) { predFactory = f }

// Flip toggles the literal's polarity; applying Flip twice is the identity.
func (l Literal) Flip() Literal {
	l.Sign = !l.Sign
	return l
}

// Positive forces the literal's sign to true.
func (l Literal) Positive() Literal { l.Sign = true; return l }

// Negative forces the literal's sign to false.
func (l Literal) Negative() Literal { l.Sign = false; return l }

// PrependActions extends the action prefix at the front, used when
// grounding a boxed axiom into a specific situation (spec.md 4.1).
func (l Literal) PrependActions(z []term.Term) Literal {
	nz := make([]term.Term, 0, len(z)+len(l.Z))
	nz = append(nz, z...)
	nz = append(nz, l.Z...)
	l.Z = nz
	return l
}

// AppendActions extends the action prefix at the back.
func (l Literal) AppendActions(z []term.Term) Literal {
	nz := make([]term.Term, 0, len(z)+len(l.Z))
	nz = append(nz, l.Z...)
	nz = append(nz, z...)
	l.Z = nz
	return l
}

// Substitute applies s to the action prefix, left-hand side, and
// right-hand side.
func (l Literal) Substitute(s term.Subst) Literal {
	nz := make([]term.Term, len(l.Z))
	for i, t := range l.Z {
		nz[i] = t.Substitute(s)
	}
	return Literal{Z: nz, LHS: l.LHS.Substitute(s), Sign: l.Sign, RHS: l.RHS.Substitute(s)}
}

// IsGround reports whether every term in the literal (action prefix,
// left-hand side, right-hand side) is ground.
func (l Literal) IsGround() bool {
	for _, t := range l.Z {
		if !t.IsGround() {
			return false
		}
	}
	return l.LHS.IsGround() && l.RHS.IsGround()
}

// IsPrimitive reports whether the left-hand side is primitive (a function
// applied only to names), the shape required after normalisation.
func (l Literal) IsPrimitive() bool { return l.LHS.IsPrimitive() }

// Equal reports structural equality: same action prefix, same sides, same
// sign.
func (l Literal) Equal(o Literal) bool {
	if l.Sign != o.Sign || len(l.Z) != len(o.Z) {
		return false
	}
	for i := range l.Z {
		if !l.Z[i].Equal(o.Z[i]) {
			return false
		}
	}
	return l.LHS.Equal(o.LHS) && l.RHS.Equal(o.RHS)
}

// Complementary reports whether l and o can never both hold: either they
// constrain the same ground primitive to two distinct names, or one
// asserts t=n and the other asserts t!=n for the same n (spec.md 4.4.2's
// unit-propagation step relies on exactly this notion).
func (l Literal) Complementary(o Literal) bool {
	if !sameSituatedTerm(l, o) {
		return false
	}
	if l.Sign && o.Sign {
		return !l.RHS.Equal(o.RHS)
	}
	if l.Sign != o.Sign {
		return l.RHS.Equal(o.RHS)
	}
	return false
}

func sameSituatedTerm(l, o Literal) bool {
	if len(l.Z) != len(o.Z) {
		return false
	}
	for i := range l.Z {
		if !l.Z[i].Equal(o.Z[i]) {
			return false
		}
	}
	return l.LHS.Equal(o.LHS)
}

// Less gives literals a total, deterministic order: by predicate (the
// left-hand side's symbol), sign, action prefix, then arguments. This
// ordering is load-bearing for clause canonicalisation (spec.md 4.1).
func (l Literal) Less(o Literal) bool {
	if l.LHS.Symbol() != o.LHS.Symbol() {
		return l.LHS.Symbol() < o.LHS.Symbol()
	}
	if l.Sign != o.Sign {
		return !l.Sign && o.Sign
	}
	if n := lessTermSeq(l.Z, o.Z); n != 0 {
		return n < 0
	}
	if n := lessTermSeq(l.LHS.Args(), o.LHS.Args()); n != 0 {
		return n < 0
	}
	return l.RHS.Less(o.RHS)
}

func lessTermSeq(a, b []term.Term) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i].Equal(b[i]) {
			continue
		}
		if a[i].Less(b[i]) {
			return -1
		}
		return 1
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Unify attempts to extend s so that l and o denote the same equation: same
// action-prefix length, same predicate/function symbol, unifiable
// arguments, and unifiable right-hand sides. Sign is not unified; callers
// resolving complementary literals check sign themselves.
func Unify(l, o Literal, s term.Subst) (term.Subst, bool) {
	if len(l.Z) != len(o.Z) {
		return nil, false
	}
	cur := s
	var ok bool
	for i := range l.Z {
		cur, ok = term.Unify(l.Z[i], o.Z[i], cur)
		if !ok {
			return nil, false
		}
	}
	cur, ok = term.Unify(l.LHS, o.LHS, cur)
	if !ok {
		return nil, false
	}
	cur, ok = term.Unify(l.RHS, o.RHS, cur)
	if !ok {
		return nil, false
	}
	return cur, true
}

// Variables returns the free variables occurring in l.
func (l Literal) Variables() []term.Term {
	out := make(map[string]term.Term)
	collect(l.Z, out, true)
	collect([]term.Term{l.LHS, l.RHS}, out, true)
	return values(out)
}

// Names returns the standard names occurring literally in l.
func (l Literal) Names() []term.Term {
	out := make(map[string]term.Term)
	collect(l.Z, out, false)
	collect([]term.Term{l.LHS, l.RHS}, out, false)
	return values(out)
}

func collect(ts []term.Term, out map[string]term.Term, wantVar bool) {
	for _, t := range ts {
		collectOne(t, out, wantVar)
	}
}

func collectOne(t term.Term, out map[string]term.Term, wantVar bool) {
	if wantVar && t.IsVariable() {
		out[t.String()] = t
		return
	}
	if !wantVar && t.IsName() {
		out[t.String()] = t
	}
	for _, a := range t.Args() {
		collectOne(a, out, wantVar)
	}
}

func values(m map[string]term.Term) []term.Term {
	out := make([]term.Term, 0, len(m))
	for _, t := range m {
		out = append(out, t)
	}
	return out
}

// AtomKey identifies the underlying ground primitive equation regardless of
// sign: two literals share an AtomKey iff they constrain the same situated
// primitive term to the same value, whether asserted or denied. Used to
// group literals into splitting candidates (spec.md 4.3's PEL).
func (l Literal) AtomKey() string {
	zs := make([]string, len(l.Z))
	for i, t := range l.Z {
		zs[i] = t.String()
	}
	return strings.Join(zs, ",") + "|" + l.LHS.String() + "|" + l.RHS.String()
}

func (l Literal) String() string {
	op := "="
	if !l.Sign {
		op = "!="
	}
	zs := ""
	if len(l.Z) > 0 {
		parts := make([]string, len(l.Z))
		for i, t := range l.Z {
			parts[i] = t.String()
		}
		zs = "[" + strings.Join(parts, ",") + "]"
	}
	return fmt.Sprintf("%s%s%s%s", zs, l.LHS, op, l.RHS)
}
