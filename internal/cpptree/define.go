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

package cpptree

import (
	"regexp"
	"strings"

	"github.com/delta-one/undertaker/internal/expr"
)

// CppDefine is the symbolic rewriting record of a #define/#undef, per spec
// section 3.
type CppDefine struct {
	DefinedSymbol     string
	ActualSymbol      string
	DefinedIn         []BlockID
	IsUndef           map[string]bool
	DefineExpressions []expr.Expr
}

// boundaryClass is the word-boundary character class spec section 4.F and
// section 9 both call out verbatim: `[()><&|!- ^$]`. It is reproduced
// exactly rather than approximated with \b, since downstream pretty
// printing of the rewritten expression is externally observable.
const boundaryClass = `()><&|!\- ^$`

func symbolBoundaryRegexp(name string) *regexp.Regexp {
	return regexp.MustCompile(`(^|[` + boundaryClass + `])` + regexp.QuoteMeta(name) + `($|[` + boundaryClass + `])`)
}

// RewriteSymbol replaces every word-boundary-delimited occurrence of from in
// s with to, preserving whatever boundary characters delimited the match.
func RewriteSymbol(s, from, to string) string {
	if from == to || from == "" {
		return s
	}
	re := symbolBoundaryRegexp(from)
	return re.ReplaceAllString(s, "${1}"+escapeTemplateDollar(to)+"${2}")
}

func escapeTemplateDollar(s string) string {
	if !strings.Contains(s, "$") {
		return s
	}
	return strings.ReplaceAll(s, "$", "$$")
}

// Define registers a #define (isUndef false) or #undef (isUndef true)
// occurrence of symbol inside block, per spec section 4.F. It mangles the
// symbol by appending one more '.' than the previous definition (or the bare
// symbol if this is the first) and records the two defining clauses:
//
//	(block -> ±newSymbol)            polarity negative for #undef
//	(!block -> (prevSymbol <-> newSymbol))
//
// Only blocks constructed after this call see the new mangled symbol: each
// block's expression is normalized once, at construction, against whatever
// defines are already known (File.addChild's normalizeDefines call). A
// block built before this Define keeps referencing the symbol identity that
// was actually in scope when it was written; Define never reaches back and
// rewrites an already-constructed block's Expression.
func (f *File) Define(symbol string, block BlockID, isUndef bool) *CppDefine {
	d, ok := f.defines[symbol]
	if !ok {
		d = &CppDefine{DefinedSymbol: symbol, ActualSymbol: symbol, IsUndef: make(map[string]bool)}
		f.defines[symbol] = d
		f.order = append(f.order, symbol)
	}

	prevActual := d.ActualSymbol
	newActual := symbol + strings.Repeat(".", len(d.DefinedIn)+1)

	blk := f.blocks[block]
	d.DefinedIn = append(d.DefinedIn, block)
	if isUndef {
		d.IsUndef[blk.Name] = true
	}
	d.ActualSymbol = newActual

	var rhs1 expr.Expr = &expr.Ident{Name: newActual}
	if isUndef {
		rhs1 = &expr.Not{X: rhs1}
	}
	defClause1 := &expr.Binary{Op: expr.Implies, X: &expr.Ident{Name: blk.Name}, Y: rhs1}
	defClause2 := &expr.Binary{
		Op: expr.Implies,
		X:  &expr.Not{X: &expr.Ident{Name: blk.Name}},
		Y:  &expr.Binary{Op: expr.Iff, X: &expr.Ident{Name: prevActual}, Y: &expr.Ident{Name: newActual}},
	}
	d.DefineExpressions = append(d.DefineExpressions, defClause1, defClause2)

	f.cache.Invalidate()
	return d
}

// Defines returns the file's CppDefine table, keyed by original symbol.
func (f *File) Defines() map[string]*CppDefine { return f.defines }
