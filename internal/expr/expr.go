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

// Package expr implements the propositional expression AST shared by the
// Kconfig model builder and the CPP conditional-block tree: identifiers,
// the tristate constants y/m/n (and their 1/0 aliases), negation, the
// binary connectives && || -> <->, and the comparison operators = != < >.
package expr

import "fmt"

// BinaryOp is a binary connective.
type BinaryOp int

const (
	And BinaryOp = iota
	Or
	Implies
	Iff
)

func (op BinaryOp) String() string {
	switch op {
	case And:
		return "&&"
	case Or:
		return "||"
	case Implies:
		return "->"
	case Iff:
		return "<->"
	default:
		return "?"
	}
}

// CompareOp is a comparison operator. Only = and != carry boolean/tristate
// meaning in this system (spec Non-goals exclude arithmetic comparison
// semantics); < and > are accepted by the grammar and preserved structurally
// but are never given meaning by the rewriter or the CNF builder.
type CompareOp int

const (
	Eq CompareOp = iota
	Neq
	Lt
	Gt
)

func (op CompareOp) String() string {
	switch op {
	case Eq:
		return "="
	case Neq:
		return "!="
	case Lt:
		return "<"
	case Gt:
		return ">"
	default:
		return "?"
	}
}

// Const is one of the tristate/boolean literals. The grammar also accepts 1
// and 0; the parser maps them to ConstY and ConstN, so the original spelling
// is not kept and they print as y and n.
type Const int

const (
	ConstY Const = iota
	ConstM
	ConstN
)

func (c Const) String() string {
	switch c {
	case ConstY:
		return "y"
	case ConstM:
		return "m"
	case ConstN:
		return "n"
	default:
		return "?"
	}
}

// Expr is the sealed interface implemented by every node kind. The marker
// method keeps the hierarchy closed to this package, the same way annotation
// trees are sealed in the teacher's nilability AST.
type Expr interface {
	fmt.Stringer
	isExpr()
	// Equal reports structural equality: same shape, same identifiers,
	// same constants. It does not normalize associativity or commutativity.
	Equal(other Expr) bool
}

// Ident is a leaf identifier (a raw Kconfig or CPP symbol name).
type Ident struct {
	Name string
}

func (*Ident) isExpr() {}
func (i *Ident) String() string { return i.Name }
func (i *Ident) Equal(other Expr) bool {
	o, ok := other.(*Ident)
	return ok && o.Name == i.Name
}

// Lit is a constant literal (y, m, n, 0, 1).
type Lit struct {
	Value Const
}

func (*Lit) isExpr() {}
func (l *Lit) String() string { return l.Value.String() }
func (l *Lit) Equal(other Expr) bool {
	o, ok := other.(*Lit)
	return ok && o.Value == l.Value
}

// Not is logical negation.
type Not struct {
	X Expr
}

func (*Not) isExpr() {}
func (n *Not) String() string { return "!" + paren(n.X) }
func (n *Not) Equal(other Expr) bool {
	o, ok := other.(*Not)
	return ok && o.X.Equal(n.X)
}

// Binary is a binary connective node (&&, ||, ->, <->).
type Binary struct {
	Op   BinaryOp
	X, Y Expr
}

func (*Binary) isExpr() {}
func (b *Binary) String() string {
	return fmt.Sprintf("%s %s %s", paren(b.X), b.Op, paren(b.Y))
}
func (b *Binary) Equal(other Expr) bool {
	o, ok := other.(*Binary)
	return ok && o.Op == b.Op && o.X.Equal(b.X) && o.Y.Equal(b.Y)
}

// Compare is a comparison node (=, !=, <, >). The right-hand side of a
// comparison is kept as a raw token string rather than a full Expr, mirroring
// the grammar: the right side of = and != is either a tristate constant or
// another bare identifier, never a compound expression.
type Compare struct {
	Op    CompareOp
	Left  *Ident
	Right string
}

func (*Compare) isExpr() {}
func (c *Compare) String() string { return fmt.Sprintf("%s%s%s", c.Left, c.Op, c.Right) }
func (c *Compare) Equal(other Expr) bool {
	o, ok := other.(*Compare)
	return ok && o.Op == c.Op && o.Right == c.Right && o.Left.Equal(c.Left)
}

func paren(e Expr) string {
	switch e.(type) {
	case *Ident, *Lit, *Not, *Compare:
		return e.String()
	default:
		return "(" + e.String() + ")"
	}
}

// Symbols returns the set of identifier leaves appearing in e, including the
// left-hand identifiers of Compare nodes.
func Symbols(e Expr) map[string]bool {
	out := make(map[string]bool)
	collectSymbols(e, out)
	return out
}

func collectSymbols(e Expr, out map[string]bool) {
	switch n := e.(type) {
	case *Ident:
		out[n.Name] = true
	case *Lit:
	case *Not:
		collectSymbols(n.X, out)
	case *Binary:
		collectSymbols(n.X, out)
		collectSymbols(n.Y, out)
	case *Compare:
		out[n.Left.Name] = true
	}
}
