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

// Package cnf Tseitin-converts expr.Expr trees into sat.CNF formulas ready
// for the SAT facade, per spec section 4.B.
package cnf

import (
	"fmt"

	"github.com/delta-one/undertaker/internal/expr"
	"github.com/delta-one/undertaker/internal/sat"
)

// ConstMode controls how the constant literals y/n (true/false) are handled
// during the Tseitin transform. Spec section 4.B calls this a build-time
// mode flag: constants are either reduced away immediately, or kept as free
// variables so that callers computing partial assumptions can still see
// them as named literals in the resulting CNF's symbol table.
type ConstMode int

const (
	// ReduceConstants simplifies constant subexpressions at build time
	// (the default: smaller CNFs, fewer auxiliary variables).
	ReduceConstants ConstMode = iota
	// FreeConstants treats y/n as ordinary free boolean variables named
	// "$true"/"$false", pinned to their value by a unit clause. This is
	// useful for computing assumption sets that must mention every
	// literal the source formula referenced, constants included.
	FreeConstants
)

// Builder performs the Tseitin transform. It is stateful only in the sense
// that it owns the CNF it is building; it holds no reference to the source
// expr.Expr trees once Build returns.
type Builder struct {
	cnf     *sat.CNF
	mode    ConstMode
	auxNext int
}

// NewBuilder returns a Builder targeting a fresh CNF.
func NewBuilder(mode ConstMode) *Builder {
	return &Builder{cnf: sat.NewCNF(), mode: mode}
}

// CNF returns the formula accumulated so far.
func (b *Builder) CNF() *sat.CNF { return b.cnf }

// PushClause Tseitin-converts e and asserts it true (spec's
// `push_clause(ast)`): it introduces a fresh variable for e (reusing
// variables for shared subterms is not attempted across separate PushClause
// calls, matching the fact that each call represents an independently
// asserted top-level formula), adds the defining clauses for every
// subexpression, and asserts the root variable true.
func (b *Builder) PushClause(e expr.Expr) {
	root := b.convert(e)
	b.cnf.AddClause(root)
}

// convert returns a literal equivalent to e, introducing Tseitin auxiliary
// variables and their defining clauses as needed.
func (b *Builder) convert(e expr.Expr) sat.Lit {
	switch n := e.(type) {
	case *expr.Ident:
		return b.cnf.LitFor(n.Name, true)
	case *expr.Lit:
		return b.constLit(n.Value != expr.ConstN)
	case *expr.Not:
		return b.convert(n.X).Negate()
	case *expr.Binary:
		x := b.convert(n.X)
		y := b.convert(n.Y)
		switch n.Op {
		case expr.And:
			return b.defineAnd(x, y)
		case expr.Or:
			return b.defineOr(x, y)
		case expr.Implies:
			return b.defineOr(x.Negate(), y)
		case expr.Iff:
			return b.defineIff(x, y)
		default:
			panic(fmt.Sprintf("undertaker: unhandled binary operator %v", n.Op))
		}
	case *expr.Compare:
		// Bare comparisons reaching the CNF builder (never rewritten into
		// CONFIG_ symbols by the Kconfig prefix rewriter) are opaque:
		// spec Non-goals exclude arithmetic comparison semantics, so they
		// are modeled as a single free boolean variable named after their
		// textual form.
		return b.cnf.LitFor(n.String(), true)
	default:
		panic(fmt.Sprintf("undertaker: unhandled expression node %T", e))
	}
}

func (b *Builder) constLit(value bool) sat.Lit {
	switch b.mode {
	case FreeConstants:
		name := "$false"
		if value {
			name = "$true"
		}
		lit := b.cnf.LitFor(name, true)
		if value {
			b.cnf.AddClause(lit)
		} else {
			b.cnf.AddClause(lit.Negate())
		}
		return lit
	default:
		aux := b.freshAux()
		if value {
			b.cnf.AddClause(aux)
		} else {
			b.cnf.AddClause(aux.Negate())
		}
		return aux
	}
}

func (b *Builder) freshAux() sat.Lit {
	b.auxNext++
	return b.cnf.LitFor(fmt.Sprintf("$aux%d", b.auxNext), true)
}

// defineAnd introduces z <-> (x && y) and returns z.
func (b *Builder) defineAnd(x, y sat.Lit) sat.Lit {
	z := b.freshAux()
	b.cnf.AddClause(z.Negate(), x)
	b.cnf.AddClause(z.Negate(), y)
	b.cnf.AddClause(z, x.Negate(), y.Negate())
	return z
}

// defineOr introduces z <-> (x || y) and returns z.
func (b *Builder) defineOr(x, y sat.Lit) sat.Lit {
	z := b.freshAux()
	b.cnf.AddClause(z, x.Negate())
	b.cnf.AddClause(z, y.Negate())
	b.cnf.AddClause(z.Negate(), x, y)
	return z
}

// defineIff introduces z <-> (x <-> y) and returns z.
func (b *Builder) defineIff(x, y sat.Lit) sat.Lit {
	z := b.freshAux()
	b.cnf.AddClause(z.Negate(), x.Negate(), y)
	b.cnf.AddClause(z.Negate(), x, y.Negate())
	b.cnf.AddClause(z, x, y)
	b.cnf.AddClause(z, x.Negate(), y.Negate())
	return z
}
