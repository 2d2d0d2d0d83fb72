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

// Package ierrors defines the small set of error types spec section 7's
// error-handling design calls for, narrowly scoped the way nilaway keeps
// its own helper packages (util/tokenhelper, util/typeshelper) small and
// single-purpose rather than one catch-all errors package.
package ierrors

import "fmt"

// ParseError wraps a failure to parse an RSF relation, an expression, or a
// block's expression, with enough position context to report usefully.
// Spec section 7: parse errors fail fast, aborting construction of whatever
// they occurred in.
type ParseError struct {
	Source string // file, relation name, or other identifying context
	Line   int    // 0 when not applicable
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("undertaker: parse error in %s line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("undertaker: parse error in %s: %v", e.Source, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// InvariantViolation marks a programming-invariant failure detected only at
// construction time (e.g. a tristate item missing its seeded dependencies).
// Per spec section 7 these are always fatal: raise one with Raise, which
// panics with it, and never return it as an ordinary error. cmd/undertaker
// does not recover it, so the panic terminates the process.
type InvariantViolation struct {
	Where string
	Err   error
}

func (e *InvariantViolation) Error() string {
	return fmt.Sprintf("undertaker: invariant violated in %s: %v", e.Where, e.Err)
}

func (e *InvariantViolation) Unwrap() error { return e.Err }

// Raise panics with an *InvariantViolation. It exists so construction-time
// call sites read as a single statement instead of a three-line
// build-then-panic block.
func Raise(where string, err error) {
	panic(&InvariantViolation{Where: where, Err: err})
}
