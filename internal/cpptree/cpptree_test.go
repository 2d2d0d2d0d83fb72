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

package cpptree_test

import (
	"testing"

	"github.com/delta-one/undertaker/internal/cnf"
	"github.com/delta-one/undertaker/internal/cpptree"
	"github.com/delta-one/undertaker/internal/expr"
	"github.com/delta-one/undertaker/internal/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// S1: simple dead block. A single #if block with expression "A && !A" is
// unsatisfiable once asserted true against the file's code constraints.
func TestCodeConstraints_S1_SimpleDeadBlock(t *testing.T) {
	f := cpptree.NewFile("dead.c")
	b0 := f.AddBlock(cpptree.KindIf, "A && !A", cpptree.RootBlock, 1, 3)

	formula, err := f.CodeConstraints("")
	require.NoError(t, err)

	full := &expr.Binary{Op: expr.And, X: &expr.Ident{Name: f.Block(b0).Name}, Y: formula}
	b := cnf.NewBuilder(cnf.ReduceConstants)
	b.PushClause(full)
	solver := sat.NewDPLLSolver(b.CNF())
	ok, err := solver.CheckSatisfiable()
	require.NoError(t, err)
	assert.False(t, ok, "B0 asserted true should be unsatisfiable")
}

// S4: define rewriting.
func TestCodeConstraints_S4_DefineRewriting(t *testing.T) {
	f := cpptree.NewFile("define.c")
	b0 := f.AddBlock(cpptree.KindIf, "FOO", cpptree.RootBlock, 1, 10)
	f.Define("BAR", b0, false)
	b1 := f.AddBlock(cpptree.KindIf, "BAR", b0, 3, 6)
	b2 := f.AddBlock(cpptree.KindElse, "", b0, 7, 9)

	assert.Equal(t, "BAR.", f.Block(b1).Expression)

	c1, err := f.LocalClause(b0)
	require.NoError(t, err)
	assert.Equal(t, "B0 <-> FOO", c1.String())

	c2, err := f.LocalClause(b1)
	require.NoError(t, err)
	assert.Equal(t, "B1 <-> (B0 && BAR.)", c2.String())

	c3, err := f.LocalClause(b2)
	require.NoError(t, err)
	assert.Equal(t, "B2 <-> (B0 && !B1)", c3.String())

	d := f.Defines()["BAR"]
	require.Len(t, d.DefineExpressions, 2)
	assert.Equal(t, "B0 -> BAR.", d.DefineExpressions[0].String())
	assert.Equal(t, "!B0 -> (BAR <-> BAR.)", d.DefineExpressions[1].String())
}

// A block built before a #define of a symbol it references must keep
// referencing the symbol identity that was actually in scope when it was
// written: #define only changes what later-constructed blocks resolve the
// symbol to, it never reaches back and rewrites an earlier block's
// Expression in place.
func TestCodeConstraints_DefineDoesNotRewritePreexistingBlocks(t *testing.T) {
	f := cpptree.NewFile("predefine.c")
	b1 := f.AddBlock(cpptree.KindIf, "BAR", cpptree.RootBlock, 1, 3)

	f.Define("BAR", b1, false)

	b3 := f.AddBlock(cpptree.KindIf, "BAR", cpptree.RootBlock, 5, 7)

	assert.Equal(t, "BAR", f.Block(b1).Expression, "block constructed before the define must be left untouched")
	assert.Equal(t, "BAR.", f.Block(b3).Expression, "block constructed after the define must resolve to the new mangled symbol")
}

func TestCodeConstraints_UndefNegatesPolarity(t *testing.T) {
	f := cpptree.NewFile("undef.c")
	b0 := f.AddBlock(cpptree.KindIf, "FOO", cpptree.RootBlock, 1, 5)
	f.Define("BAR", b0, true)
	d := f.Defines()["BAR"]
	assert.True(t, d.IsUndef["B0"])
	assert.Equal(t, "B0 -> !BAR.", d.DefineExpressions[0].String())
}

// Property 5: block formula round-trip. Asserting a block's parent and its
// own expression true makes its full-formula conjunction satisfiable;
// asserting its negation given the same assumptions makes it unsatisfiable.
func TestLocalClause_RoundTrip(t *testing.T) {
	f := cpptree.NewFile("round.c")
	b0 := f.AddBlock(cpptree.KindIf, "X", cpptree.RootBlock, 1, 5)

	formula, err := f.CodeConstraints("")
	require.NoError(t, err)

	assumeTrue := &expr.Binary{Op: expr.And, X: formula, Y: &expr.Binary{
		Op: expr.And,
		X:  &expr.Ident{Name: "X"},
		Y:  &expr.Ident{Name: f.Block(b0).Name},
	}}
	b := cnf.NewBuilder(cnf.ReduceConstants)
	b.PushClause(assumeTrue)
	ok, err := sat.NewDPLLSolver(b.CNF()).CheckSatisfiable()
	require.NoError(t, err)
	assert.True(t, ok, "block reachable when its own expression holds")

	assumeFalse := &expr.Binary{Op: expr.And, X: formula, Y: &expr.Binary{
		Op: expr.And,
		X:  &expr.Ident{Name: "X"},
		Y:  &expr.Not{X: &expr.Ident{Name: f.Block(b0).Name}},
	}}
	b2 := cnf.NewBuilder(cnf.ReduceConstants)
	b2.PushClause(assumeFalse)
	ok2, err := sat.NewDPLLSolver(b2.CNF()).CheckSatisfiable()
	require.NoError(t, err)
	assert.False(t, ok2, "block must be reachable whenever its defining condition holds")
}

func TestCodeConstraints_MemoizedUntilInvalidate(t *testing.T) {
	f := cpptree.NewFile("memo.c")
	f.AddBlock(cpptree.KindIf, "A", cpptree.RootBlock, 1, 2)

	first, err := f.CodeConstraints("")
	require.NoError(t, err)
	second, err := f.CodeConstraints("")
	require.NoError(t, err)
	assert.Equal(t, first.String(), second.String())

	f.AddBlock(cpptree.KindIf, "B", cpptree.RootBlock, 3, 4)
	third, err := f.CodeConstraints("")
	require.NoError(t, err)
	assert.NotEqual(t, first.String(), third.String())
}

func TestCodeConstraints_ModelLinkClause(t *testing.T) {
	f := cpptree.NewFile("linked.c")
	f.AddBlock(cpptree.KindIf, "A", cpptree.RootBlock, 1, 2)
	formula, err := f.CodeConstraints(cpptree.NormalizeFileSymbol("arch/x86/init.c"))
	require.NoError(t, err)
	assert.Contains(t, formula.String(), "FILE_arch_x86_init.c")
}

func TestNormalizeFileSymbol(t *testing.T) {
	assert.Equal(t, "FILE_arch_x86_init.c", cpptree.NormalizeFileSymbol("arch/x86/init.c"))
	assert.Equal(t, "FILE_drivers_net_e1000_main.c", cpptree.NormalizeFileSymbol("drivers-net:e1000+main.c"))
}

func TestItemChecker_RejectsMangledDefineTokens(t *testing.T) {
	f := cpptree.NewFile("checker.c")
	b0 := f.AddBlock(cpptree.KindIf, "FOO", cpptree.RootBlock, 1, 2)
	f.Define("BAR", b0, false)
	checker := f.ItemChecker()
	assert.False(t, checker("BAR"))
	assert.False(t, checker("BAR."))
	assert.True(t, checker("CONFIG_FOO"))
}

func TestSplitDecisions(t *testing.T) {
	f := cpptree.NewFile("split.c")
	b0 := f.AddBlock(cpptree.KindIf, "A && B && C", cpptree.RootBlock, 1, 10)

	before, err := f.CodeConstraints("")
	require.NoError(t, err)

	require.NoError(t, cpptree.SplitDecisions(f, b0))

	assert.Equal(t, "A", f.Block(b0).Expression)
	require.Len(t, f.Block(b0).Children, 1)
	child1 := f.Block(b0).Children[0]
	assert.Equal(t, "B", f.Block(child1).Expression)
	require.Len(t, f.Block(child1).Children, 1)
	child2 := f.Block(child1).Children[0]
	assert.Equal(t, "C", f.Block(child2).Expression)

	after, err := f.CodeConstraints("")
	require.NoError(t, err)
	assert.NotEqual(t, before.String(), after.String())
}

func TestSplitDecisions_RejectsNonConjunction(t *testing.T) {
	f := cpptree.NewFile("nosplit.c")
	b0 := f.AddBlock(cpptree.KindIf, "A", cpptree.RootBlock, 1, 2)
	assert.Error(t, cpptree.SplitDecisions(f, b0))
}

func TestRewriteSymbol_WordBoundary(t *testing.T) {
	assert.Equal(t, "(BAR. && X)", cpptree.RewriteSymbol("(BAR && X)", "BAR", "BAR."))
	assert.Equal(t, "FOOBAR", cpptree.RewriteSymbol("FOOBAR", "BAR", "BAR."), "no rewrite without a boundary")
	assert.Equal(t, "BAR.", cpptree.RewriteSymbol("BAR", "BAR", "BAR."))
}
