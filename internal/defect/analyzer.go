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

package defect

import (
	"sort"

	"github.com/delta-one/undertaker/internal/cnf"
	"github.com/delta-one/undertaker/internal/container"
	"github.com/delta-one/undertaker/internal/cpptree"
	"github.com/delta-one/undertaker/internal/expr"
	"github.com/delta-one/undertaker/internal/model"
	"github.com/delta-one/undertaker/internal/sat"
)

// SolverFactory returns a fresh Solver for c. The analyzer never reuses a
// solver instance across blocks (spec section 5: a SatCheckerError on one
// block must not corrupt another's state).
type SolverFactory func(c *sat.CNF) sat.Solver

// Analyzer composes code constraints, model constraints, and missing-symbol
// grounding, and drives the classification pipeline of spec section 4.G.
type Analyzer struct {
	registry  *container.Registry
	newSolver SolverFactory
}

// NewAnalyzer returns an Analyzer over registry. newSolver may be nil, in
// which case every check uses a fresh internal/sat.DPLLSolver.
func NewAnalyzer(registry *container.Registry, newSolver SolverFactory) *Analyzer {
	if newSolver == nil {
		newSolver = func(c *sat.CNF) sat.Solver { return sat.NewDPLLSolver(c) }
	}
	return &Analyzer{registry: registry, newSolver: newSolver}
}

// AnalyzeDead runs the dead-block pipeline for file's block id, per spec
// section 4.G step 1: seed = block.name && block.code_constraints. checker
// gates which in-space-but-unknown symbols are eligible for the missing
// set; pass file.ItemChecker().
func (a *Analyzer) AnalyzeDead(file *cpptree.File, id cpptree.BlockID, checker func(string) bool) (*Defect, error) {
	block := file.Block(id)
	constraints, err := a.fileConstraints(file)
	if err != nil {
		return nil, err
	}
	seed := &expr.Binary{Op: expr.And, X: &expr.Ident{Name: block.Name}, Y: constraints}
	d, err := a.analyze(seed, checker)
	if err != nil || d == nil {
		return d, err
	}
	d.Block = block.Name
	d.Direction = Dead
	return d, nil
}

// AnalyzeUndead runs the undead-block pipeline, per spec section 4.G:
// seed = (parent.name && !block.name) && block.code_constraints. A block
// with no parent (only B00 itself) cannot be undead.
func (a *Analyzer) AnalyzeUndead(file *cpptree.File, id cpptree.BlockID, checker func(string) bool) (*Defect, error) {
	block := file.Block(id)
	if block.Parent == cpptree.NoBlock {
		return nil, nil
	}
	parent := file.Block(block.Parent)
	constraints, err := a.fileConstraints(file)
	if err != nil {
		return nil, err
	}
	seed := &expr.Binary{
		Op: expr.And,
		X: &expr.Binary{
			Op: expr.And,
			X:  &expr.Ident{Name: parent.Name},
			Y:  &expr.Not{X: &expr.Ident{Name: block.Name}},
		},
		Y: constraints,
	}
	d, err := a.analyze(seed, checker)
	if err != nil || d == nil {
		return d, err
	}
	d.Block = block.Name
	d.Direction = Undead
	return d, nil
}

func (a *Analyzer) fileConstraints(file *cpptree.File) (expr.Expr, error) {
	fileSymbol := ""
	if _, ok := a.registry.LookupMain(); ok {
		fileSymbol = cpptree.NormalizeFileSymbol(file.Name)
	}
	return file.CodeConstraints(fileSymbol)
}

func (a *Analyzer) analyze(seed expr.Expr, checker func(string) bool) (*Defect, error) {
	primary, hasPrimary := a.registry.LookupMain()

	var primaryName string
	if hasPrimary {
		primaryName = primary.Name()
	}

	d, err := a.classify(seed, primary, primaryName, checker)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, nil
	}
	if d.Kind != KindImplementation && hasPrimary {
		if err := a.crosscheck(d, seed, checker, primaryName); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// classify implements spec section 4.G steps 2-5 against a single model
// (nil meaning code-only classification).
func (a *Analyzer) classify(seed expr.Expr, m model.Model, arch string, checker func(string) bool) (*Defect, error) {
	ok, err := a.checkSat(seed)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Defect{Kind: KindImplementation, ReportKind: ReportCode, IsGlobal: true}, nil
	}
	if m == nil {
		return nil, nil
	}

	missing := make(map[string]bool)
	symbols := sortedSymbols(seed)
	kconfigClause, _ := m.Intersect(symbols, checker, missing)
	combined := &expr.Binary{Op: expr.And, X: seed, Y: kconfigClause}

	ok2, err := a.checkSat(combined)
	if err != nil {
		return nil, err
	}
	if !ok2 {
		return &Defect{Kind: KindConfiguration, ReportKind: ReportKconfig, Arch: arch}, nil
	}

	if m.IsComplete() && len(missing) > 0 {
		names := make([]string, 0, len(missing))
		for sym := range missing {
			names = append(names, sym)
		}
		sort.Strings(names)
		var disj expr.Expr
		for i, sym := range names {
			ident := &expr.Ident{Name: sym}
			if i == 0 {
				disj = ident
			} else {
				disj = &expr.Binary{Op: expr.Or, X: disj, Y: ident}
			}
		}
		withMissing := &expr.Binary{Op: expr.And, X: combined, Y: &expr.Not{X: disj}}
		ok3, err := a.checkSat(withMissing)
		if err != nil {
			return nil, err
		}
		if !ok3 {
			return &Defect{Kind: KindReferential, ReportKind: ReportMissing, Arch: arch}, nil
		}
	}

	return nil, nil
}

// crosscheck iterates every registered model other than the primary one; if
// any finds the block not defective, its name joins d.OKArches, otherwise
// (all models agree) d.IsGlobal is set.
func (a *Analyzer) crosscheck(d *Defect, seed expr.Expr, checker func(string) bool, primaryName string) error {
	allDefective := true
	var walkErr error
	a.registry.Each(func(name string, m model.Model) bool {
		if name == primaryName {
			return true
		}
		sub, err := a.classify(seed, m, name, checker)
		if err != nil {
			walkErr = err
			return false
		}
		if sub == nil {
			d.OKArches = append(d.OKArches, name)
			allDefective = false
		}
		return true
	})
	if walkErr != nil {
		return walkErr
	}
	if allDefective {
		d.IsGlobal = true
	}
	return nil
}

func (a *Analyzer) checkSat(e expr.Expr) (bool, error) {
	b := cnf.NewBuilder(cnf.ReduceConstants)
	b.PushClause(e)
	solver := a.newSolver(b.CNF())
	ok, err := solver.CheckSatisfiable()
	if err != nil {
		if _, already := err.(*sat.SatCheckerError); already {
			return false, err
		}
		return false, &sat.SatCheckerError{Err: err}
	}
	return ok, nil
}

func sortedSymbols(e expr.Expr) []string {
	set := expr.Symbols(e)
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
