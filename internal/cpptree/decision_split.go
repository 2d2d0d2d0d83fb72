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

	"github.com/delta-one/undertaker/internal/expr"
)

// SplitDecisions rewrites target's expression in place, exploding a
// top-level && or || into a chain of nested single-operand sub-blocks so
// that decision-coverage tooling can target each operand independently.
// target keeps its own kind and the first operand's condition; each
// remaining operand becomes a new If-kind child nested one level deeper
// than the last, so the original presence condition is preserved exactly
// (A && B && C reachable iff the innermost new block is reachable).
//
// This is the transform spec section 5 and section 9 require exist to
// exercise cache invalidation: it mutates an already-built tree, so it must
// and does call file.Invalidate() before returning.
func SplitDecisions(file *File, target BlockID) error {
	if target <= RootBlock || int(target) >= len(file.blocks) {
		return fmt.Errorf("cpptree: invalid block id %d", target)
	}
	b := file.blocks[target]
	if b.Kind == KindElse {
		return fmt.Errorf("cpptree: block %s has no expression to split", b.Name)
	}

	parsed, err := expr.ParseString(b.Expression)
	if err != nil {
		return fmt.Errorf("cpptree: block %s: parse expression %q: %w", b.Name, b.Expression, err)
	}
	bin, ok := parsed.(*expr.Binary)
	if !ok || (bin.Op != expr.And && bin.Op != expr.Or) {
		return fmt.Errorf("cpptree: block %s expression is not a top-level && or || conjunction", b.Name)
	}

	operands := flattenBinary(bin, bin.Op)
	if len(operands) < 2 {
		return fmt.Errorf("cpptree: block %s has fewer than two operands to split", b.Name)
	}

	b.Expression = operands[0].String()
	parent := target
	for _, operand := range operands[1:] {
		parent = file.addChild(KindIf, operand.String(), parent, b.LineStart, b.ColStart, b.LineEnd, b.ColEnd)
	}

	file.Invalidate()
	return nil
}

// flattenBinary collects every leaf operand of a left-associative chain of
// binary nodes sharing op (e.g. ((A && B) && C) -> [A, B, C]).
func flattenBinary(e expr.Expr, op expr.BinaryOp) []expr.Expr {
	bin, ok := e.(*expr.Binary)
	if !ok || bin.Op != op {
		return []expr.Expr{e}
	}
	out := flattenBinary(bin.X, op)
	out = append(out, flattenBinary(bin.Y, op)...)
	return out
}
