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

package bat

import (
	"fmt"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/kb"
	"github.com/lakemeyer-levesque/eslk/query"
	"github.com/lakemeyer-levesque/eslk/term"
)

// QueryResult is one resolved query from a BAT source, paired with its
// answer once the loader has run Init and evaluated it.
type QueryResult struct {
	Source string
	K      int
	Result kb.Result
}

type predInfo struct {
	sym      term.FuncSymbol
	argSorts []string
}

// Loader turns textual BAT source into a populated kb.Engine, the way the
// teacher's dlengine.Engine turns parsed text into live Term/Predicate
// objects (src/datalog/dlengine/dlengine.go): a set of symbol tables
// ("recovered" once, then reused) stand between the AST and the engine.
type Loader struct {
	Engine *kb.Engine
	Results []QueryResult

	f *term.Factory

	sorts map[string]term.Sort
	names map[string]term.Term
	preds map[string]predInfo

	boolSort  term.Sort
	trueName  term.Term
	falseName term.Term

	actionSeqs [][]term.Term
	hintNames  []term.Term

	pending []pendingQuery
}

type pendingQuery struct {
	source string
	k      int
	f      query.Formula
}

// NewLoader returns an empty loader backed by a fresh engine, with the
// boolean sort and its two names predeclared so BAT source never has to
// spell them out.
func NewLoader(log *zap.Logger) *Loader {
	e := kb.NewEngine(log)
	f := e.Factory
	boolSort := f.CreateSort("bool", false)
	trueSym, _ := f.CreateNameSymbol(boolSort, "true", 0)
	trueName, _ := f.Name(trueSym)
	falseSym, _ := f.CreateNameSymbol(boolSort, "false", 0)
	falseName, _ := f.Name(falseSym)

	return &Loader{
		Engine:    e,
		f:         f,
		sorts:     map[string]term.Sort{"bool": boolSort},
		names:     map[string]term.Term{"true": trueName, "false": falseName},
		preds:     make(map[string]predInfo),
		boolSort:  boolSort,
		trueName:  trueName,
		falseName: falseName,
	}
}

// LoadFile reads path and loads it as BAT source.
func (l *Loader) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("bat: reading %s: %w", path, err)
	}
	return l.LoadString(path, string(data))
}

// LoadString parses and ingests src, then initialises the engine and
// evaluates every query statement, leaving results in l.Results. Errors
// from multiple malformed statements are aggregated into one returned
// error via go.uber.org/multierr rather than failing on the first one
// (SPEC_FULL.md 10).
func (l *Loader) LoadString(name, src string) error {
	parser, err := NewParser()
	if err != nil {
		return fmt.Errorf("bat: building parser: %w", err)
	}
	file, err := parser.ParseString(name, src)
	if err != nil {
		return fmt.Errorf("bat: %s: %w", name, err)
	}

	var errs error
	for _, stmt := range file.Statements {
		if err := l.statement(stmt); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	if errs != nil {
		return errs
	}

	hint := l.buildHint()
	if err := l.Engine.Init(hint, l.actionSeqs...); err != nil {
		return multierr.Append(errs, fmt.Errorf("bat: %s: %w", name, err))
	}

	for _, pq := range l.pending {
		r, err := l.Engine.EntailsFormula(pq.f, pq.k)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		l.Results = append(l.Results, QueryResult{Source: pq.source, K: pq.k, Result: r})
	}
	return errs
}

// ParseDisjunction resolves one bare disjunction fragment (not a whole BAT
// file) against the loader's existing symbol tables. It is meant for ad hoc
// query/believe construction after a BAT file has already declared the
// sorts, names and predicates the fragment references; it does not register
// anything new with the engine or mutate hint names.
func (l *Loader) ParseDisjunction(name, src string) ([]atom.Literal, error) {
	parser, err := newDisjunctionParser()
	if err != nil {
		return nil, fmt.Errorf("bat: building fragment parser: %w", err)
	}
	ast, err := parser.ParseString(name, src)
	if err != nil {
		return nil, fmt.Errorf("bat: %s: %w", name, err)
	}
	scope := make(map[string]term.Term)
	return l.resolveDisjunction(scope, ast)
}

func (l *Loader) buildHint() clause.Clause {
	seed := append([]term.Term(nil), l.hintNames...)
	for _, seq := range l.actionSeqs {
		seed = append(seed, seq...)
	}
	if len(seed) == 0 {
		return clause.New(nil)
	}
	seedPred := l.f.CreateFunSymbol(l.boolSort, "__seed", 0)
	lhs, _ := l.f.Apply(seedPred)
	return clause.New(nil, atom.New(seed, true, lhs, l.trueName))
}

func (l *Loader) statement(s *Statement) error {
	switch {
	case s.Sort != nil:
		return l.sortDecl(s.Sort)
	case s.NameD != nil:
		return l.nameDecl(s.NameD)
	case s.Pred != nil:
		return l.predDecl(s.Pred)
	case s.Actions != nil:
		return l.actionsDecl(s.Actions)
	case s.Conditional != nil:
		return l.conditionalDecl(s.Conditional)
	case s.Clause != nil:
		return l.clauseDecl(s.Clause)
	case s.Query != nil:
		return l.queryDecl(s.Query)
	}
	return nil
}

func (l *Loader) sortDecl(d *SortDecl) error {
	if _, exists := l.sorts[d.Name]; exists {
		return fmt.Errorf("bat: sort %s declared twice", d.Name)
	}
	l.sorts[d.Name] = l.f.CreateSort(d.Name, d.Rigid)
	return nil
}

func (l *Loader) nameDecl(d *NameDecl) error {
	sort, ok := l.sorts[d.Sort]
	if !ok {
		return fmt.Errorf("bat: name declaration uses undeclared sort %s", d.Sort)
	}
	for _, label := range d.Names {
		if _, exists := l.names[label]; exists {
			return fmt.Errorf("bat: name %s declared twice", label)
		}
		sym, err := l.f.CreateNameSymbol(sort, label, 0)
		if err != nil {
			return err
		}
		n, err := l.f.Name(sym)
		if err != nil {
			return err
		}
		l.names[label] = n
	}
	return nil
}

func (l *Loader) predDecl(d *PredDecl) error {
	if _, exists := l.preds[d.Name]; exists {
		return fmt.Errorf("bat: predicate %s declared twice", d.Name)
	}
	for _, s := range d.Args {
		if _, ok := l.sorts[s]; !ok {
			return fmt.Errorf("bat: predicate %s argument sort %s undeclared", d.Name, s)
		}
	}
	sym := l.f.CreateFunSymbol(l.boolSort, d.Name, len(d.Args))
	l.preds[d.Name] = predInfo{sym: sym, argSorts: d.Args}
	return nil
}

func (l *Loader) actionsDecl(d *ActionsDecl) error {
	seq := make([]term.Term, len(d.Actions))
	for i, label := range d.Actions {
		n, ok := l.names[label]
		if !ok {
			return fmt.Errorf("bat: actions sequence references undeclared name %s", label)
		}
		seq[i] = n
	}
	l.actionSeqs = append(l.actionSeqs, seq)
	return nil
}

func (l *Loader) clauseDecl(d *ClauseDecl) error {
	scope := make(map[string]term.Term)
	lits, err := l.resolveDisjunction(scope, d.Body)
	if err != nil {
		return err
	}
	l.collectHintNames(lits)
	switch d.Kind {
	case "static":
		l.Engine.AddStaticClause(nil, lits...)
	case "box":
		l.Engine.AddBoxedClause(nil, lits...)
	default:
		return fmt.Errorf("bat: unknown clause kind %q", d.Kind)
	}
	return nil
}

func (l *Loader) conditionalDecl(d *ConditionalDecl) error {
	scope := make(map[string]term.Term)
	negPhi, err := l.resolveDisjunction(scope, d.NegPhi)
	if err != nil {
		return err
	}
	psi, err := l.resolveDisjunction(scope, d.Psi)
	if err != nil {
		return err
	}
	l.collectHintNames(negPhi)
	l.collectHintNames(psi)
	l.Engine.AddBeliefConditional(clause.New(nil, negPhi...), clause.New(nil, psi...), d.K)
	return nil
}

func (l *Loader) queryDecl(d *QueryDecl) error {
	scope := make(map[string]term.Term)
	lits, err := l.resolveDisjunction(scope, d.Formula.Body)
	if err != nil {
		return err
	}
	l.collectHintNames(lits)

	fs := make([]query.Formula, len(lits))
	for i, lit := range lits {
		fs[i] = query.LitF(lit)
	}
	body := query.OrF(fs...)
	if d.Formula.Know {
		body = query.KnowF(d.Formula.KnowK, body)
	}
	l.pending = append(l.pending, pendingQuery{source: d.Formula.Body.String(), k: d.K, f: body})
	return nil
}

func (l *Loader) collectHintNames(lits []atom.Literal) {
	for _, lit := range lits {
		l.hintNames = append(l.hintNames, lit.Names()...)
	}
}

func (l *Loader) resolveDisjunction(scope map[string]term.Term, d *Disjunction) ([]atom.Literal, error) {
	out := make([]atom.Literal, 0, len(d.Lits))
	var errs error
	for _, lit := range d.Lits {
		resolved, err := l.resolveLiteral(scope, lit)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		out = append(out, resolved)
	}
	if errs != nil {
		return nil, errs
	}
	return out, nil
}

func (l *Loader) resolveLiteral(scope map[string]term.Term, lit *Literal) (atom.Literal, error) {
	info, ok := l.preds[lit.Pred]
	if !ok {
		return atom.Literal{}, fmt.Errorf("bat: undeclared predicate %s", lit.Pred)
	}
	if len(lit.Args) != len(info.argSorts) {
		return atom.Literal{}, fmt.Errorf("bat: predicate %s: want %d args, got %d", lit.Pred, len(info.argSorts), len(lit.Args))
	}
	args := make([]term.Term, len(lit.Args))
	for i, a := range lit.Args {
		sort := l.sorts[info.argSorts[i]]
		t, err := l.resolveTerm(scope, sort, a)
		if err != nil {
			return atom.Literal{}, err
		}
		args[i] = t
	}
	z := make([]term.Term, len(lit.Z))
	for i, t := range lit.Z {
		zt, err := l.resolveSituationTerm(scope, t)
		if err != nil {
			return atom.Literal{}, err
		}
		z[i] = zt
	}
	return atom.NewPredicate(z, !lit.Neg, info.sym, l.trueName, args...)
}

func (l *Loader) resolveTerm(scope map[string]term.Term, sort term.Sort, t *Term) (term.Term, error) {
	if t.Var != "" {
		if v, ok := scope[t.Var]; ok {
			return v, nil
		}
		v := l.f.CreateVar(sort)
		scope[t.Var] = v
		return v, nil
	}
	n, ok := l.names[t.Name]
	if !ok {
		return term.Term{}, fmt.Errorf("bat: undeclared name %s", t.Name)
	}
	return n, nil
}

// resolveSituationTerm resolves a term occurring in an action prefix. A
// name must already be declared; a variable not already bound in scope is
// assumed to range over the sort named "action", the convention a boxed
// clause's free situation variable follows.
func (l *Loader) resolveSituationTerm(scope map[string]term.Term, t *Term) (term.Term, error) {
	if t.Var == "" {
		n, ok := l.names[t.Name]
		if !ok {
			return term.Term{}, fmt.Errorf("bat: situation prefix references undeclared name %s", t.Name)
		}
		return n, nil
	}
	if v, ok := scope[t.Var]; ok {
		return v, nil
	}
	sort, ok := l.sorts["action"]
	if !ok {
		return term.Term{}, fmt.Errorf("bat: free variable %s in an action prefix requires a sort named \"action\" to be declared", t.Var)
	}
	v := l.f.CreateVar(sort)
	scope[t.Var] = v
	return v, nil
}
