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

// Package cppscan is the thin, line-oriented C preprocessor scanner that
// feeds cmd/undertaker. Spec section 1 treats "the C/CPP parser that yields
// the raw block tree" as an external collaborator outside the
// constraint-generation core; this package is that collaborator's minimal
// driver-level implementation, not part of the core itself. It recognizes
// only #if/#ifdef/#ifndef/#elif/#else/#endif/#define/#undef directives and
// does no macro expansion or tokenization beyond that.
package cppscan

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/delta-one/undertaker/internal/cpptree"
)

var directivePrefixes = []string{"#if ", "#ifdef ", "#ifndef ", "#elif ", "#else", "#endif", "#define ", "#undef "}

// Scan reads a source file and builds its cpptree.File, one conditional
// block per #if/#ifdef/#ifndef/#elif/#else directive and one CppDefine
// registration per #define/#undef, nested according to #endif matching.
func Scan(name string, r io.Reader) (*cpptree.File, error) {
	f := cpptree.NewFile(name)

	type frame struct {
		block cpptree.BlockID
	}
	stack := []frame{{block: cpptree.RootBlock}}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if !isDirective(line) {
			continue
		}

		switch {
		case strings.HasPrefix(line, "#ifndef "):
			parent := stack[len(stack)-1].block
			expr := strings.TrimSpace(strings.TrimPrefix(line, "#ifndef "))
			id := f.AddBlock(cpptree.KindIfndef, expr, parent, lineNo, 0)
			stack = append(stack, frame{block: id})

		case strings.HasPrefix(line, "#ifdef "):
			parent := stack[len(stack)-1].block
			expr := strings.TrimSpace(strings.TrimPrefix(line, "#ifdef "))
			id := f.AddBlock(cpptree.KindIf, expr, parent, lineNo, 0)
			stack = append(stack, frame{block: id})

		case strings.HasPrefix(line, "#if "):
			parent := stack[len(stack)-1].block
			expr := strings.TrimSpace(strings.TrimPrefix(line, "#if "))
			id := f.AddBlock(cpptree.KindIf, expr, parent, lineNo, 0)
			stack = append(stack, frame{block: id})

		case strings.HasPrefix(line, "#elif "):
			if len(stack) < 2 {
				return nil, fmt.Errorf("cppscan: %s:%d: #elif without matching #if", name, lineNo)
			}
			closeOpen(f, stack[len(stack)-1].block, lineNo)
			parent := stack[len(stack)-2].block
			expr := strings.TrimSpace(strings.TrimPrefix(line, "#elif "))
			id := f.AddBlock(cpptree.KindElif, expr, parent, lineNo, 0)
			stack[len(stack)-1] = frame{block: id}

		case line == "#else" || strings.HasPrefix(line, "#else "):
			if len(stack) < 2 {
				return nil, fmt.Errorf("cppscan: %s:%d: #else without matching #if", name, lineNo)
			}
			closeOpen(f, stack[len(stack)-1].block, lineNo)
			parent := stack[len(stack)-2].block
			id := f.AddBlock(cpptree.KindElse, "", parent, lineNo, 0)
			stack[len(stack)-1] = frame{block: id}

		case line == "#endif" || strings.HasPrefix(line, "#endif "):
			if len(stack) < 2 {
				return nil, fmt.Errorf("cppscan: %s:%d: #endif without matching #if", name, lineNo)
			}
			closeOpen(f, stack[len(stack)-1].block, lineNo)
			stack = stack[:len(stack)-1]

		case strings.HasPrefix(line, "#define"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "#define"))
			sym := firstToken(rest)
			if sym == "" {
				return nil, fmt.Errorf("cppscan: %s:%d: #define with no symbol", name, lineNo)
			}
			f.Define(sym, stack[len(stack)-1].block, false)

		case strings.HasPrefix(line, "#undef"):
			rest := strings.TrimSpace(strings.TrimPrefix(line, "#undef"))
			sym := firstToken(rest)
			if sym == "" {
				return nil, fmt.Errorf("cppscan: %s:%d: #undef with no symbol", name, lineNo)
			}
			f.Define(sym, stack[len(stack)-1].block, true)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(stack) != 1 {
		return nil, fmt.Errorf("cppscan: %s: %d unterminated #if block(s)", name, len(stack)-1)
	}
	return f, nil
}

func closeOpen(f *cpptree.File, id cpptree.BlockID, endLine int) {
	f.Block(id).LineEnd = endLine
}

func isDirective(line string) bool {
	for _, p := range directivePrefixes {
		if line == strings.TrimSuffix(p, " ") || strings.HasPrefix(line, p) {
			return true
		}
	}
	return false
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
