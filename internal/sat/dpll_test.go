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

package sat_test

import (
	"bytes"
	"testing"

	"github.com/delta-one/undertaker/internal/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDPLLSolver_TautologyIsSatisfiable(t *testing.T) {
	cnf := sat.NewCNF()
	a := cnf.LitFor("A", true)
	notA := cnf.LitFor("A", false)
	solver := sat.NewDPLLSolver(cnf)
	solver.PushClause(a, notA) // tautology, always true

	ok, err := solver.CheckSatisfiable()
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestDPLLSolver_ContradictionIsUnsat(t *testing.T) {
	cnf := sat.NewCNF()
	solver := sat.NewDPLLSolver(cnf)
	solver.PushClause(cnf.LitFor("A", true))
	solver.PushClause(cnf.LitFor("A", false))

	ok, err := solver.CheckSatisfiable()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDPLLSolver_Assumptions(t *testing.T) {
	cnf := sat.NewCNF()
	solver := sat.NewDPLLSolver(cnf)
	// A <-> B
	a := cnf.LitFor("A", true)
	b := cnf.LitFor("B", true)
	solver.PushClause(-a, b)
	solver.PushClause(a, -b)

	solver.PushAssumption("A", true)
	ok, err := solver.CheckSatisfiable()
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, solver.Model("A"))
	assert.True(t, solver.Model("B"))
}

func TestDPLLSolver_ConflictingAssumptionsAreUnsat(t *testing.T) {
	cnf := sat.NewCNF()
	solver := sat.NewDPLLSolver(cnf)
	solver.PushAssumption("A", true)
	solver.PushAssumption("A", false)

	ok, err := solver.CheckSatisfiable()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDIMACS_RoundTrip(t *testing.T) {
	cnf := sat.NewCNF()
	a := cnf.LitFor("CONFIG_A", true)
	b := cnf.LitFor("CONFIG_B", true)
	cnf.AddClause(a, b)
	cnf.AddClause(-a, b)
	meta := map[string][]string{
		"CONFIGURATION_SPACE_REGEX": {"^CONFIG_[^ ]+$"},
		"ALWAYS_ON":                 {"CONFIG_B"},
	}

	var buf bytes.Buffer
	require.NoError(t, sat.WriteDIMACS(&buf, cnf, meta))

	got, gotMeta, err := sat.ReadDIMACS(&buf)
	require.NoError(t, err)
	assert.Equal(t, cnf.NumVars, got.NumVars)
	assert.Equal(t, len(cnf.Clauses), len(got.Clauses))
	assert.Equal(t, cnf.Symbols, got.Symbols)
	assert.Equal(t, meta, gotMeta)
}
