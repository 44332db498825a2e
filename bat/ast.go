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

// Package bat implements a small textual basic-action-theory DSL: sort and
// name declarations, static and boxed clauses, belief conditionals, action
// sequences, and queries, read from a file or string instead of built up
// one Go call at a time. It is the "external formula/parser layer" outside
// the reasoning kernel proper (spec.md 2): it depends on kb, never the
// reverse.
//
// Grammar sketch, one statement per line:
//
//	sort action
//	sort idx rigid
//	name f, s : action
//	name i1, i2, i3 : idx
//	pred D(idx)
//	static: D(i1) | D(i2)
//	box: ~D(X) | D(X) @ [A]
//	believe: D(i1) => D(i2) at 1
//	actions: [f, s]
//	query: D(i1) | D(i2) at 1
//	query: K 0 D(i1) at 0
package bat

import (
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var batLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Var", Pattern: `[A-Z][a-zA-Z0-9_]*`},
	{Name: "Ident", Pattern: `[a-z][a-zA-Z0-9_]*`},
	{Name: "Arrow", Pattern: `=>`},
	{Name: "Punct", Pattern: `[:(),|~@\[\]]`},
	{Name: "whitespace", Pattern: `\s+`},
})

// Term is either a variable (uppercase-leading, per traditional datalog
// naming convention) or a standard name (lowercase-leading).
type Term struct {
	Pos  lexer.Position `parser:""`
	Var  string         `parser:"  @Var"`
	Name string         `parser:"| @Ident"`
}

// Literal is a (possibly negated) predicate application, optionally
// situated at an explicit action prefix.
type Literal struct {
	Pos  lexer.Position `parser:""`
	Neg  bool           `parser:"@'~'?"`
	Pred string         `parser:"@Ident"`
	Args []*Term        `parser:"'(' (@@ (',' @@)*)? ')'"`
	Z    []*Term        `parser:"('@' '[' (@@ (',' @@)*)? ']')?"`
}

// Disjunction is a non-empty list of literals joined by "|".
type Disjunction struct {
	Pos  lexer.Position `parser:""`
	Lits []*Literal     `parser:"@@ ('|' @@)*"`
}

// SortDecl declares a sort, optionally rigid (able to carry complex names).
type SortDecl struct {
	Pos   lexer.Position `parser:""`
	Name  string         `parser:"'sort' @Ident"`
	Rigid bool           `parser:"@'rigid'?"`
}

// NameDecl declares one or more standard names of a previously declared
// sort.
type NameDecl struct {
	Pos   lexer.Position `parser:""`
	Names []string       `parser:"'name' @Ident (',' @Ident)*"`
	Sort  string         `parser:"':' @Ident"`
}

// PredDecl declares a predicate symbol and its argument sorts.
type PredDecl struct {
	Pos  lexer.Position `parser:""`
	Name string         `parser:"'pred' @Ident"`
	Args []string       `parser:"'(' (@Ident (',' @Ident)*)? ')'"`
}

// ActionsDecl lists one action sequence that boxed clauses should be
// grounded into every prefix of.
type ActionsDecl struct {
	Pos     lexer.Position `parser:""`
	Actions []string       `parser:"'actions' ':' '[' (@Ident (',' @Ident)*)? ']'"`
}

// ClauseDecl is a static or boxed axiom.
type ClauseDecl struct {
	Pos  lexer.Position `parser:""`
	Kind string          `parser:"@('static' | 'box')"`
	Body *Disjunction    `parser:"':' @@"`
}

// ConditionalDecl is a belief conditional negPhi => psi at split depth K.
type ConditionalDecl struct {
	Pos    lexer.Position `parser:""`
	NegPhi *Disjunction   `parser:"'believe' ':' @@"`
	Psi    *Disjunction   `parser:"'=>' @@"`
	K      int            `parser:"('at' @Number)?"`
}

// QueryFormula is either a bare objective disjunction or a K_k-wrapped one;
// the bel-conditional query form is not supported by the DSL (use the Go
// API directly for that).
type QueryFormula struct {
	Pos  lexer.Position `parser:""`
	Know bool           `parser:"(@'K'"`
	KnowK int           `parser:"@Number)?"`
	Body *Disjunction   `parser:"@@"`
}

// QueryDecl is a query at a given split depth.
type QueryDecl struct {
	Pos     lexer.Position `parser:""`
	Formula *QueryFormula  `parser:"'query' ':' @@"`
	K       int            `parser:"'at' @Number"`
}

// Statement is one top-level declaration; exactly one field is non-nil.
type Statement struct {
	Pos         lexer.Position   `parser:""`
	Sort        *SortDecl        `parser:"(  @@"`
	NameD       *NameDecl        `parser:" | @@"`
	Pred        *PredDecl        `parser:" | @@"`
	Actions     *ActionsDecl     `parser:" | @@"`
	Conditional *ConditionalDecl `parser:" | @@"`
	Clause      *ClauseDecl      `parser:" | @@"`
	Query       *QueryDecl       `parser:" | @@)"`
}

// File is a whole BAT source: a sequence of statements.
type File struct {
	Pos        lexer.Position `parser:""`
	Statements []*Statement   `parser:"@@*"`
}

func (t *Term) String() string {
	if t.Var != "" {
		return t.Var
	}
	return t.Name
}

func (l *Literal) String() string {
	var b strings.Builder
	if l.Neg {
		b.WriteByte('~')
	}
	b.WriteString(l.Pred)
	b.WriteByte('(')
	for i, a := range l.Args {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(a.String())
	}
	b.WriteByte(')')
	if len(l.Z) > 0 {
		parts := make([]string, len(l.Z))
		for i, t := range l.Z {
			parts[i] = t.String()
		}
		b.WriteString(" @ [" + strings.Join(parts, ", ") + "]")
	}
	return b.String()
}

func (d *Disjunction) String() string {
	parts := make([]string, len(d.Lits))
	for i, lit := range d.Lits {
		parts[i] = lit.String()
	}
	return strings.Join(parts, " | ")
}

// NewParser builds the participle parser for the BAT grammar.
func NewParser() (*participle.Parser[File], error) {
	return participle.Build[File](
		participle.Lexer(batLexer),
		participle.Elide("whitespace", "Comment"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}

// newDisjunctionParser builds a parser rooted at Disjunction directly,
// reusing the same lexer, for callers (the CLI's ad hoc query/believe
// subcommands) that need to parse one bare disjunction fragment instead of
// a whole File.
func newDisjunctionParser() (*participle.Parser[Disjunction], error) {
	return participle.Build[Disjunction](
		participle.Lexer(batLexer),
		participle.Elide("whitespace", "Comment"),
		participle.UseLookahead(participle.MaxLookahead),
	)
}
