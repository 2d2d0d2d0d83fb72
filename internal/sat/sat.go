// Copyright (c) 2026 The Undertaker Authors.
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

// Package sat hosts the CNF representation and the SAT facade that the
// defect analyzer drives. Spec section 1 treats the SAT back-end as an
// external collaborator exposing solve/push_assumption/model; Solver is
// that contract, and dpll.go ships a reference implementation so the facade
// can be exercised end to end without vendoring a third-party solver (none
// of the example repositories in the retrieval pack bundles one).
package sat

import "fmt"

// Var is a 1-based DIMACS-style variable number. 0 is never a valid Var.
type Var int32

// Lit is a signed DIMACS literal: positive for the variable asserted true,
// negative for its negation. Lit(0) never occurs.
type Lit int32

func (l Lit) Var() Var  { return Var(abs32(int32(l))) }
func (l Lit) Sign() bool { return l > 0 }
func (l Lit) Negate() Lit { return -l }

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}

// CNF is a conjunctive-normal-form formula over numbered variables, plus the
// symbol table that lets callers translate back and forth between variable
// numbers and Kconfig/CPP-block names. This is exactly the shape the DIMACS
// "c sym <name> <var>" convention of spec section 6 serializes.
type CNF struct {
	NumVars int
	Clauses [][]Lit
	// Symbols maps a name to its variable. Names are added via VarFor(name) to
	// keep numbering stable and deterministic (first requested, lowest
	// number), which matters for reproducible DIMACS dumps.
	Symbols map[string]Var
	order   []string
}

// NewCNF returns an empty CNF ready for clause insertion.
func NewCNF() *CNF {
	return &CNF{Symbols: make(map[string]Var)}
}

// VarFor returns the variable number for name, allocating a fresh one on
// first use.
func (c *CNF) VarFor(name string) Var {
	if v, ok := c.Symbols[name]; ok {
		return v
	}
	c.NumVars++
	v := Var(c.NumVars)
	c.Symbols[name] = v
	c.order = append(c.order, name)
	return v
}

// OrderedSymbols returns the symbol names in the order they were first
// requested via VarFor, for deterministic dumping.
func (c *CNF) OrderedSymbols() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// AddClause appends a disjunction of literals to the formula.
func (c *CNF) AddClause(lits ...Lit) {
	clause := make([]Lit, len(lits))
	copy(clause, lits)
	c.Clauses = append(c.Clauses, clause)
}

// LitFor returns the literal for name with the given polarity.
func (c *CNF) LitFor(name string, positive bool) Lit {
	v := c.VarFor(name)
	if positive {
		return Lit(v)
	}
	return Lit(-v)
}

// SatCheckerError wraps a failure reported by the SAT back-end itself
// (resource exhaustion, solver crash) as opposed to a formula being
// unsatisfiable, which is a normal (non-error) outcome. Spec section 7
// requires this distinction: a SatCheckerError fails only the containing
// block, not the rest of the analysis.
type SatCheckerError struct {
	Err error
}

func (e *SatCheckerError) Error() string { return fmt.Sprintf("sat checker failed: %v", e.Err) }
func (e *SatCheckerError) Unwrap() error { return e.Err }

// Solver is the facade spec section 4.B describes: push clauses and
// assumptions, check satisfiability, and read back a satisfying model.
// Model is only valid to call after CheckSatisfiable has returned (true,
// nil).
type Solver interface {
	PushClause(lits ...Lit)
	PushAssumption(name string, polarity bool)
	CheckSatisfiable() (bool, error)
	Model(name string) bool
}
