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
	"fmt"
	"strings"
	"sync"

	"github.com/delta-one/undertaker/internal/expr"
)

// constraintCache memoizes a File's full code-constraints formula, keyed by
// a hash of the block/define state rather than the formula's own (large)
// string form, per spec section 9's "memoization cache on mutated trees"
// design note. Invalidate clears it; the decision-coverage transform in
// decision_split.go is what actually exercises that requirement, since
// nothing else in this package mutates an already-built tree in place.
type constraintCache struct {
	mu      sync.Mutex
	valid   bool
	key     uint64
	formula expr.Expr
}

func newConstraintCache() *constraintCache { return &constraintCache{} }

// Invalidate drops the cached formula unconditionally.
func (c *constraintCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
}

func (c *constraintCache) get(key uint64) (expr.Expr, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.valid || c.key != key {
		return nil, false
	}
	return c.formula, true
}

func (c *constraintCache) set(key uint64, formula expr.Expr) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = true
	c.key = key
	c.formula = formula
}

// conjoinAll folds non-nil parts with &&, skipping nils, and defaults to the
// trivial-true literal when every part was nil.
func conjoinAll(parts []expr.Expr) expr.Expr {
	var out expr.Expr
	for _, p := range parts {
		if p == nil {
			continue
		}
		if out == nil {
			out = p
		} else {
			out = &expr.Binary{Op: expr.And, X: out, Y: p}
		}
	}
	if out == nil {
		return &expr.Lit{Value: expr.ConstY}
	}
	return out
}

// LocalClause computes block id's local clause (spec section 4.F):
//
//	( B <-> p.name && e && !(S0 || S1 || ...) )
//
// with p.name omitted when the parent is the file root, and e omitted for
// Else blocks (whose condition is the negation of their siblings alone).
// For the root block (B00) it returns the bare B00 identifier;
// CodeConstraints asserts B00 directly rather than through this method.
func (f *File) LocalClause(id BlockID) (expr.Expr, error) {
	if id == RootBlock {
		return &expr.Ident{Name: f.blocks[RootBlock].Name}, nil
	}
	b := f.blocks[id]

	var parts []expr.Expr
	if b.Parent != RootBlock {
		parts = append(parts, &expr.Ident{Name: f.blocks[b.Parent].Name})
	}

	switch b.Kind {
	case KindIf, KindElif:
		e, err := expr.ParseString(b.Expression)
		if err != nil {
			return nil, fmt.Errorf("cpptree: block %s: parse expression %q: %w", b.Name, b.Expression, err)
		}
		parts = append(parts, e)
	case KindIfndef:
		e, err := expr.ParseString(b.Expression)
		if err != nil {
			return nil, fmt.Errorf("cpptree: block %s: parse expression %q: %w", b.Name, b.Expression, err)
		}
		parts = append(parts, &expr.Not{X: e})
	case KindElse:
		// no expression term: the block's condition is purely "none of the
		// earlier siblings in the chain held"
	}

	if sibs := f.chainPredecessors(id); len(sibs) > 0 {
		var disj expr.Expr
		for i, s := range sibs {
			ident := &expr.Ident{Name: f.blocks[s].Name}
			if i == 0 {
				disj = ident
			} else {
				disj = &expr.Binary{Op: expr.Or, X: disj, Y: ident}
			}
		}
		parts = append(parts, &expr.Not{X: disj})
	}

	rhs := conjoinAll(parts)
	return &expr.Binary{Op: expr.Iff, X: &expr.Ident{Name: b.Name}, Y: rhs}, nil
}

// CodeConstraints emits the full code-constraints formula for the file, per
// spec section 4.F's four-step emission order. modelFileSymbol, when
// non-empty, is the `FILE_<normalized_filename>` identifier conjoined via
// `(B00 <-> FILE_...)` for step 4 when a model is loaded; pass "" when no
// model is in play.
func (f *File) CodeConstraints(modelFileSymbol string) (expr.Expr, error) {
	key := f.cacheKey() ^ stringHash(modelFileSymbol)
	if cached, ok := f.cache.get(key); ok {
		return cached, nil
	}

	var parts []expr.Expr

	// Step 1: local clause for every non-root block, in document order.
	for i := 1; i < len(f.blocks); i++ {
		clause, err := f.LocalClause(BlockID(i))
		if err != nil {
			return nil, err
		}
		parts = append(parts, clause)
	}

	// Step 2: every CppDefine's clauses, plus the (already-included, so
	// deduplicated via a visited set) local clauses of every block that
	// defined it.
	visited := make(map[BlockID]bool)
	for _, sym := range f.order {
		d := f.defines[sym]
		parts = append(parts, d.DefineExpressions...)
		for _, bid := range d.DefinedIn {
			if visited[bid] {
				continue
			}
			visited[bid] = true
		}
	}

	// Step 3: conjoin B00.
	parts = append(parts, &expr.Ident{Name: f.blocks[RootBlock].Name})

	// Step 4: optional file/model linking clause.
	if modelFileSymbol != "" {
		parts = append(parts, &expr.Binary{
			Op: expr.Iff,
			X:  &expr.Ident{Name: f.blocks[RootBlock].Name},
			Y:  &expr.Ident{Name: modelFileSymbol},
		})
	}

	formula := conjoinAll(parts)
	f.cache.set(key, formula)
	return formula, nil
}

// NormalizeFileSymbol replaces '/', '-', '+', ':' with '_', per spec section
// 4.F step 4's filename normalization rule.
func NormalizeFileSymbol(filename string) string {
	r := strings.NewReplacer("/", "_", "-", "_", "+", "_", ":", "_")
	return "FILE_" + r.Replace(filename)
}

func stringHash(s string) uint64 {
	// FNV-1a, good enough to fold an optional short suffix into the cache
	// key without pulling in a second hash dependency for one string.
	var h uint64 = 14695981039346656037
	for i := 0; i < len(s); i++ {
		h ^= uint64(s[i])
		h *= 1099511628211
	}
	return h
}
