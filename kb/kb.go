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

// Package kb is the entailment front end (spec.md 6): it wires the term
// factory, the grounder, a base Setup, and a belief ranking together
// behind the programmatic API external callers actually use, and
// evaluates query.Formula queries against them, including the two modal
// operators the query package leaves as opaque leaves.
package kb

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/lakemeyer-levesque/eslk"
	"github.com/lakemeyer-levesque/eslk/atom"
	"github.com/lakemeyer-levesque/eslk/belief"
	"github.com/lakemeyer-levesque/eslk/clause"
	"github.com/lakemeyer-levesque/eslk/ewff"
	"github.com/lakemeyer-levesque/eslk/ground"
	"github.com/lakemeyer-levesque/eslk/query"
	"github.com/lakemeyer-levesque/eslk/setup"
	"github.com/lakemeyer-levesque/eslk/term"
)

// Result is the tri-valued entailment answer (spec.md 6): Unknown means
// "not provable within the given split budget", not an error.
type Result int

const (
	Unknown Result = iota
	Yes
	No
)

func (r Result) String() string {
	switch r {
	case Yes:
		return "yes"
	case No:
		return "no"
	default:
		return "unknown"
	}
}

type pendingConditional struct {
	negPhi, psi clause.Clause
	k           int
}

type pendingSensingResult struct {
	sf     atom.Literal
	sensed bool
}

// Engine is the ingestion + entailment front end over one basic action
// theory: a term factory, the raw (unground) static and boxed clauses
// accumulated before Init, and, after Init, the grounded base Setup and
// its belief ranking.
type Engine struct {
	Factory *term.Factory
	log     *zap.Logger

	staticClauses []clause.Clause
	boxedClauses  []clause.Clause
	conditionals  []pendingConditional
	sensed        []pendingSensingResult

	// queryNames, queryVars, and actionSeqs are the accumulated grounding
	// inputs reground replays every time it rebuilds hplus/base/beliefs:
	// queryHint's names and variables from Init, widened by every later
	// EntailsFormula call that names something new (spec.md 2).
	queryNames []term.Term
	queryVars  []term.Term
	actionSeqs [][]term.Term

	hplus   term.Universe
	base    *setup.Setup
	beliefs *belief.Setups

	initialized bool
}

// NewEngine returns an empty engine backed by a fresh term factory. A nil
// logger is replaced with a no-op one, matching the "silent by default"
// logging stance (spec.md 5, SPEC_FULL.md 10).
func NewEngine(log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	f := term.NewFactory()
	atom.RegisterFactory(f)
	return &Engine{Factory: f, log: log}
}

// AddStaticClause adds a once-true axiom (spec.md 6). Shape validation is
// deferred to Init, which checks the whole accumulated theory in one
// batch rather than failing fast clause by clause.
func (e *Engine) AddStaticClause(guard ewff.Ewff, lits ...atom.Literal) {
	e.staticClauses = append(e.staticClauses, clause.New(guard, lits...))
}

// AddBoxedClause adds an axiom that holds in every action context
// (spec.md 6): it is grounded into every prefix of every action sequence
// Init is given.
func (e *Engine) AddBoxedClause(guard ewff.Ewff, lits ...atom.Literal) {
	e.boxedClauses = append(e.boxedClauses, clause.New(guard, lits...))
}

// AddBeliefConditional registers neg_phi => psi at split depth k
// (spec.md 6). It only takes effect once Init has built the base setup;
// calling it before Init just queues the conditional.
func (e *Engine) AddBeliefConditional(negPhi, psi clause.Clause, k int) {
	e.conditionals = append(e.conditionals, pendingConditional{negPhi, psi, k})
	if e.initialized {
		e.beliefs.AddBeliefConditional(negPhi, psi, k)
	}
}

// Init performs grounding, minimisation, and unit propagation (spec.md
// 6): queryHint supplies extra names/variables the Herbrand universe
// must cover beyond what the axioms themselves mention (spec.md 4.4.1),
// and actionSeqs is the set of action sequences any query will later
// reference, so boxed axioms can be grounded into every prefix of each.
// Every accumulated static and boxed clause's literals are validated as a
// batch; a malformed axiom anywhere in the theory does not stop the
// others from being reported in the same error (SPEC_FULL.md 10).
func (e *Engine) Init(queryHint clause.Clause, actionSeqs ...[]term.Term) error {
	all := make([]clause.Clause, 0, len(e.staticClauses)+len(e.boxedClauses))
	all = append(all, e.staticClauses...)
	all = append(all, e.boxedClauses...)

	var result *multierror.Error
	for _, c := range all {
		for _, l := range c.Lits {
			if err := l.Validate(); err != nil {
				result = multierror.Append(result, err)
			}
		}
	}
	if result != nil {
		return result.ErrorOrNil()
	}

	for _, l := range queryHint.Lits {
		e.queryNames = append(e.queryNames, l.Names()...)
	}
	e.queryVars = append(e.queryVars, queryHint.Variables()...)
	e.actionSeqs = append(e.actionSeqs, actionSeqs...)

	return e.reground()
}

// reground rebuilds hplus, the base Setup, and the belief ranking from the
// engine's accumulated static/boxed clauses, query names/variables, and
// action sequences (spec.md 4.4.1, 6), then replays every sensing result
// recorded so far against the fresh base, the way AddSensingResult applies
// one directly. Called once from Init and again, later, from
// extendForQuery whenever a query widens what the engine has ever been
// asked to ground (spec.md 2).
func (e *Engine) reground() error {
	all := make([]clause.Clause, 0, len(e.staticClauses)+len(e.boxedClauses))
	all = append(all, e.staticClauses...)
	all = append(all, e.boxedClauses...)

	e.hplus = ground.ComputeHPlus(e.Factory, all, e.queryNames, e.queryVars)
	e.log.Debug("computed Herbrand universe", zap.Int("size", e.hplus.Size()))

	e.base = setup.NewRoot(e.hplus)
	groundCount := 0
	for _, c := range e.staticClauses {
		for _, gc := range groundClause(c, e.hplus) {
			e.base.AddClause(gc)
			groundCount++
		}
	}
	for _, c := range e.boxedClauses {
		for _, seq := range e.actionSeqs {
			for _, prefix := range ground.Prefixes(seq) {
				prefixed := c.PrependActions(prefix)
				for _, gc := range groundClause(prefixed, e.hplus) {
					e.base.AddClause(gc)
					groundCount++
				}
			}
		}
		if len(e.actionSeqs) == 0 {
			for _, gc := range groundClause(c, e.hplus) {
				e.base.AddClause(gc)
				groundCount++
			}
		}
	}
	e.log.Debug("grounded clause set", zap.Int("clauses", groundCount))
	e.base.Init()

	for _, r := range e.sensed {
		e.base.AddSensingResult(r.sf, r.sensed)
	}

	e.beliefs = belief.NewSetups(e.base)
	for _, c := range e.conditionals {
		e.beliefs.AddBeliefConditional(c.negPhi, c.psi, c.k)
	}
	if len(e.sensed) > 0 {
		e.beliefs.Propagate()
	}
	e.initialized = true
	return nil
}

// extendForQuery implements the front-end dataflow spec.md 2 describes:
// "a query φ and action context z̄ arrive at the front end, which extends
// H+ and the cached setups if new names or variables appear". It diffs f
// against what the engine has already grounded and, if f mentions a name
// or an action sequence the base setup was never built for, widens
// queryNames/actionSeqs and regrounds before the caller evaluates f — so
// e.g. a query about an action sequence no "actions" declaration ever
// registered still gets a setup grounded for it, rather than silently
// answering Unknown for want of the relevant boxed-clause instances.
func (e *Engine) extendForQuery(f query.Formula) error {
	if !e.initialized {
		return eslk.NewFault(eslk.FaultNotInitialized, "eslk: Engine.Init must be called before evaluating a query")
	}
	newNames := diffTerms(e.queryNames, query.Names(f))
	newSeqs := diffSeqs(e.actionSeqs, query.ActionSequences(f))
	if len(newNames) == 0 && len(newSeqs) == 0 {
		return nil
	}
	e.log.Debug("extending grounding for a new query",
		zap.Int("newNames", len(newNames)), zap.Int("newActionSeqs", len(newSeqs)))
	e.queryNames = append(e.queryNames, newNames...)
	e.actionSeqs = append(e.actionSeqs, newSeqs...)
	return e.reground()
}

// diffTerms returns the elements of candidates not already present (by
// display string) in existing.
func diffTerms(existing, candidates []term.Term) []term.Term {
	seen := make(map[string]bool, len(existing))
	for _, t := range existing {
		seen[t.String()] = true
	}
	var out []term.Term
	for _, t := range candidates {
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	return out
}

// diffSeqs returns the elements of candidates not already present (by
// joint display string) in existing.
func diffSeqs(existing, candidates [][]term.Term) [][]term.Term {
	seen := make(map[string]bool, len(existing))
	for _, z := range existing {
		seen[seqKey(z)] = true
	}
	var out [][]term.Term
	for _, z := range candidates {
		key := seqKey(z)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, z)
	}
	return out
}

func seqKey(z []term.Term) string {
	var b strings.Builder
	for _, t := range z {
		b.WriteString(t.String())
		b.WriteByte(',')
	}
	return b.String()
}

// groundClause enumerates every full variable assignment (guard and
// literal variables alike) of c against hplus for which the guard
// evaluates to true, substituting each into a ground clause. Variables
// that only occur in literals (never in the guard) are still enumerated
// here, since they must be bound before the clause can enter a ground
// Setup; ewff.Models only prunes on the guard's own sub-formulas; binding
// the rest doesn't change its truth value, just enumerates more models
// that all satisfy the same guard.
func groundClause(c clause.Clause, hplus term.Universe) []clause.Clause {
	vars := c.Variables()
	if len(vars) == 0 {
		if gc, ok := c.Substitute(term.NewSubst()); ok {
			return []clause.Clause{gc}
		}
		return nil
	}
	var out []clause.Clause
	ewff.ForEachModel(c.Guard, vars, hplus, func(s term.Subst) bool {
		if gc, ok := c.Substitute(s); ok {
			out = append(out, gc)
		}
		return true
	})
	return out
}

// AddSensingResult records the sensed value of an action's sense
// fluent, situated at the given action prefix (spec.md 6), and
// re-propagates the belief ranking from the mutated base setup.
func (e *Engine) AddSensingResult(sf atom.Literal, sensed bool) {
	e.sensed = append(e.sensed, pendingSensingResult{sf, sensed})
	e.base.AddSensingResult(sf, sensed)
	e.beliefs.Propagate()
}

// GuaranteeConsistency asserts, without proof, that the base setup and
// every belief level are consistent up to depth k (spec.md 6, 11).
func (e *Engine) GuaranteeConsistency(k int) {
	e.base.GuaranteeConsistency(k)
	e.beliefs.GuaranteeConsistency(k)
}

// Inconsistent reports whether the base setup is inconsistent at depth k
// (spec.md 6).
func (e *Engine) Inconsistent(k int) bool { return e.base.Inconsistent(k) }

// HPlusSize returns the number of standard names in the grounded Herbrand
// universe, valid only after Init. Callers that bound grounder placeholder
// counts (SPEC_FULL.md 2, 10) use this to decide whether a theory blew past
// their configured cap.
func (e *Engine) HPlusSize() int { return e.hplus.Size() }

// BeliefLevels returns the current plausibility ranking, most plausible
// first (spec.md 4.5, 8).
func (e *Engine) BeliefLevels() []*setup.Setup { return e.beliefs.Levels() }

// EntailsClause is the raw clause-level entailment primitive (spec.md 6,
// 8): it is plain bool, not tri-valued, matching the primitive the
// testable properties are stated against.
func (e *Engine) EntailsClause(c clause.Clause, k int) bool { return e.base.Entails(c, k) }

// BeliefEntails routes a clause query through the plausibility ranking
// (spec.md 4.5, 8) instead of the bare base setup.
func (e *Engine) BeliefEntails(c clause.Clause, k int) bool { return e.beliefs.Entails(c, k) }

// EntailsConditionalBelief decides the conditional belief query
// neg_phi => psi at depth k (spec.md 4.5, 11).
func (e *Engine) EntailsConditionalBelief(negPhi, psi clause.Clause, k int) bool {
	return e.beliefs.EntailsConditional(negPhi, psi, k)
}

// EntailsFormula normalises f and evaluates it to a tri-valued Result
// (spec.md 6): Yes if f is entailed at depth k, No if its negation is
// entailed at depth k, Unknown otherwise. Literals and connectives
// evaluate against the base setup by default; a formula wrapped in
// query.KnowF/BelF routes that sub-formula through the base setup or the
// belief ranking respectively, at its own split depth.
func (e *Engine) EntailsFormula(f query.Formula, k int) (Result, error) {
	if err := e.extendForQuery(f); err != nil {
		return Unknown, err
	}
	normalised := query.Normalise(f, e.hplus)
	if free := query.FreeVariables(normalised); len(free) > 0 {
		return Unknown, eslk.NewFault(eslk.FaultFreeVariable, fmt.Sprintf("query contains free variable %s", free[0]))
	}
	return e.eval(normalised, k), nil
}

// eval is the tri-valued combinator (spec.md 6, 9's design note): a
// modal-free subformula, however deep its connectives, is clausified and
// checked as a single unit so a disjunctive query like d(2) v d(3) can be
// entailed by a joint split even when neither disjunct is entailed alone.
// Only once a K/Bel leaf (or a negation/conjunction/disjunction mixing
// modal and non-modal content) is reached does evaluation decompose
// connective-by-connective; And-decomposition is always sound, Or and Not
// are evaluated through their tri-valued duals.
func (e *Engine) eval(f query.Formula, k int) Result {
	if query.IsModalFree(f) {
		return e.evalObjective(f, k)
	}
	if _, k2, inner, ok := query.AsKnow(f); ok {
		return e.evalKnow(inner, k2)
	}
	if _, negPhi, psi, k2, ok := query.AsBel(f); ok {
		return e.evalBel(negPhi, psi, k2)
	}
	if inner, ok := query.AsNot(f); ok {
		return negate(e.eval(inner, k))
	}
	if fs, ok := query.AsAnd(f); ok {
		r := Yes
		for _, fi := range fs {
			r = conjoin(r, e.eval(fi, k))
		}
		return r
	}
	if fs, ok := query.AsOr(f); ok {
		r := No
		for _, fi := range fs {
			r = disjoinResults(r, e.eval(fi, k))
		}
		return r
	}
	// Quantifiers are ground away by Normalise before eval ever runs; this
	// is reachable only if a new Formula kind is added without updating
	// the combinator above.
	return e.evalObjective(f, k)
}

// evalObjective clausifies a modal-free formula wholesale and checks
// entailment of the whole thing (and its negation) against the base
// setup in one shot, so a disjunction of literals is entailed by
// splitting jointly rather than losing that power to a per-literal
// recursive check.
func (e *Engine) evalObjective(f query.Formula, k int) Result {
	clauses, ok := query.ToClauses(f)
	if ok && allEntailed(e.base, clauses, k) {
		return Yes
	}
	negClauses, okNeg := query.ToClauses(query.Normalise(query.NotF(f), e.hplus))
	if okNeg && allEntailed(e.base, negClauses, k) {
		return No
	}
	return Unknown
}

// evalKnow evaluates K_k(inner) by clausifying inner (already situated
// and grounded by the top-level Normalise pass) against the base setup
// directly, the "reduce K to setup entailment" step (spec.md 4.6, 9).
func (e *Engine) evalKnow(inner query.Formula, k int) Result {
	if clauses, ok := query.ToClauses(inner); ok && allEntailed(e.base, clauses, k) {
		return Yes
	}
	negClauses, ok := query.ToClauses(query.Normalise(query.NotF(inner), e.hplus))
	if ok && allEntailed(e.base, negClauses, k) {
		return No
	}
	return Unknown
}

// evalBel evaluates Bel(negPhi => psi, k) by clausifying negPhi and psi
// to a single clause each and deferring to the belief ranking's
// conditional-entailment reduction (spec.md 4.5, 11). The reduction is
// one-directional: it only ever answers Yes or Unknown, never No.
func (e *Engine) evalBel(negPhi, psi query.Formula, k int) Result {
	negPhiClauses, ok1 := query.ToClauses(negPhi)
	psiClauses, ok2 := query.ToClauses(psi)
	if !ok1 || !ok2 || len(negPhiClauses) != 1 || len(psiClauses) != 1 {
		return Unknown
	}
	if e.beliefs.EntailsConditional(negPhiClauses[0], psiClauses[0], k) {
		return Yes
	}
	return Unknown
}

func allEntailed(s *setup.Setup, clauses []clause.Clause, k int) bool {
	if len(clauses) == 0 {
		return false
	}
	for _, c := range clauses {
		if !s.Entails(c, k) {
			return false
		}
	}
	return true
}

func negate(r Result) Result {
	switch r {
	case Yes:
		return No
	case No:
		return Yes
	default:
		return Unknown
	}
}

func conjoin(a, b Result) Result {
	if a == No || b == No {
		return No
	}
	if a == Yes && b == Yes {
		return Yes
	}
	return Unknown
}

func disjoinResults(a, b Result) Result {
	if a == Yes || b == Yes {
		return Yes
	}
	if a == No && b == No {
		return No
	}
	return Unknown
}
