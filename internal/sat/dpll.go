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

package sat

// DPLLSolver is a reference Solver implementation: classic
// Davis-Putnam-Logemann-Loveland with unit propagation and pure-literal
// elimination. It favors clarity over raw throughput, which is acceptable
// here since the core is specified as single-threaded and synchronous
// (spec section 5) and callers are expected to construct one solver per
// check, not reuse a long-lived instance across blocks.
type DPLLSolver struct {
	cnf         *CNF
	assumptions []Lit
	assignment  map[Var]bool
}

// NewDPLLSolver builds a solver seeded from the given CNF. The CNF is not
// copied; callers must not mutate it concurrently with solving.
func NewDPLLSolver(cnf *CNF) *DPLLSolver {
	return &DPLLSolver{cnf: cnf}
}

func (s *DPLLSolver) PushClause(lits ...Lit) {
	s.cnf.AddClause(lits...)
}

func (s *DPLLSolver) PushAssumption(name string, polarity bool) {
	s.assumptions = append(s.assumptions, s.cnf.LitFor(name, polarity))
}

// CheckSatisfiable runs DPLL over the formula's clauses plus one unit clause
// per pushed assumption. It never returns an error itself (the reference
// solver cannot exhaust external resources) but satisfies the Solver
// contract, which allows SatCheckerError for back-ends that can fail.
func (s *DPLLSolver) CheckSatisfiable() (bool, error) {
	clauses := make([][]Lit, 0, len(s.cnf.Clauses)+len(s.assumptions))
	clauses = append(clauses, s.cnf.Clauses...)
	for _, lit := range s.assumptions {
		clauses = append(clauses, []Lit{lit})
	}

	assignment := make(map[Var]bool)
	ok := dpll(clauses, assignment)
	if !ok {
		s.assignment = nil
		return false, nil
	}
	s.assignment = assignment
	return true, nil
}

// Model returns the truth value assigned to name by the last successful
// CheckSatisfiable call. Unconstrained variables (those DPLL never had to
// decide) default to false; callers needing a specific polarity for such
// variables should push an explicit assumption.
func (s *DPLLSolver) Model(name string) bool {
	v, ok := s.cnf.Symbols[name]
	if !ok || s.assignment == nil {
		return false
	}
	return s.assignment[v]
}

func dpll(clauses [][]Lit, assignment map[Var]bool) bool {
	clauses, ok := unitPropagate(clauses, assignment)
	if !ok {
		return false
	}
	clauses = eliminatePureLiterals(clauses, assignment)
	if len(clauses) == 0 {
		return true
	}
	for _, c := range clauses {
		if len(c) == 0 {
			return false
		}
	}

	branchVar := clauses[0][0].Var()
	for _, polarity := range []bool{true, false} {
		trial := cloneAssignment(assignment)
		trial[branchVar] = polarity
		extended := append(cloneClauses(clauses), []Lit{signedLit(branchVar, polarity)})
		if dpll(extended, trial) {
			for k, v := range trial {
				assignment[k] = v
			}
			return true
		}
	}
	return false
}

func signedLit(v Var, positive bool) Lit {
	if positive {
		return Lit(v)
	}
	return Lit(-v)
}

// unitPropagate repeatedly resolves unit clauses against the formula,
// recording forced assignments, until no unit clause remains or a conflict
// (empty clause) is produced.
func unitPropagate(clauses [][]Lit, assignment map[Var]bool) ([][]Lit, bool) {
	for {
		var unit Lit
		found := false
		for _, c := range clauses {
			if len(c) == 1 {
				unit = c[0]
				found = true
				break
			}
		}
		if !found {
			return clauses, true
		}
		assignment[unit.Var()] = unit.Sign()
		clauses = assign(clauses, unit)
		for _, c := range clauses {
			if len(c) == 0 {
				return clauses, false
			}
		}
	}
}

// assign removes clauses satisfied by lit and strips the negation of lit
// from the remaining clauses.
func assign(clauses [][]Lit, lit Lit) [][]Lit {
	out := make([][]Lit, 0, len(clauses))
	for _, c := range clauses {
		if containsLit(c, lit) {
			continue
		}
		out = append(out, removeLit(c, lit.Negate()))
	}
	return out
}

func containsLit(c []Lit, lit Lit) bool {
	for _, l := range c {
		if l == lit {
			return true
		}
	}
	return false
}

func removeLit(c []Lit, lit Lit) []Lit {
	out := make([]Lit, 0, len(c))
	for _, l := range c {
		if l != lit {
			out = append(out, l)
		}
	}
	return out
}

// eliminatePureLiterals assigns and removes variables that appear with only
// one polarity across the remaining clauses.
func eliminatePureLiterals(clauses [][]Lit, assignment map[Var]bool) [][]Lit {
	polarity := make(map[Var]int)
	for _, c := range clauses {
		for _, l := range c {
			if l.Sign() {
				polarity[l.Var()] |= 1
			} else {
				polarity[l.Var()] |= 2
			}
		}
	}
	for v, p := range polarity {
		if p == 1 {
			assignment[v] = true
			clauses = assign(clauses, Lit(v))
		} else if p == 2 {
			assignment[v] = false
			clauses = assign(clauses, Lit(-v))
		}
	}
	return clauses
}

func cloneAssignment(a map[Var]bool) map[Var]bool {
	out := make(map[Var]bool, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

func cloneClauses(clauses [][]Lit) [][]Lit {
	out := make([][]Lit, len(clauses))
	copy(out, clauses)
	return out
}
