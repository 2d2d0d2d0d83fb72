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

package expr

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLParen
	tokRParen
	tokNot
	tokAnd
	tokOr
	tokImplies
	tokIff
	tokEq
	tokNeq
	tokLt
	tokGt
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

// tokenizer scans a boolean expression string into tokens. It is
// deliberately small and hand-rolled, in the style of the teacher's
// narrowly-scoped helper files (util/tokenhelper), rather than built on a
// lexer-generator: the grammar is fixed and small enough that a generator
// would add a dependency without removing any real complexity.
type tokenizer struct {
	src  string
	pos  int
	toks []token
}

func tokenize(src string) ([]token, error) {
	t := &tokenizer{src: src}
	for t.pos < len(t.src) {
		c := t.src[t.pos]
		switch {
		case c == ' ' || c == '\t':
			t.pos++
		case c == '(':
			t.push(tokLParen, "(")
			t.pos++
		case c == ')':
			t.push(tokRParen, ")")
			t.pos++
		case c == '!':
			if t.peekAt(1) == '=' {
				t.push(tokNeq, "!=")
				t.pos += 2
			} else {
				t.push(tokNot, "!")
				t.pos++
			}
		case c == '&' && t.peekAt(1) == '&':
			t.push(tokAnd, "&&")
			t.pos += 2
		case c == '|' && t.peekAt(1) == '|':
			t.push(tokOr, "||")
			t.pos += 2
		case c == '-' && t.peekAt(1) == '>':
			t.push(tokImplies, "->")
			t.pos += 2
		case c == '<' && t.peekAt(1) == '-' && t.peekAt(2) == '>':
			t.push(tokIff, "<->")
			t.pos += 3
		case c == '=':
			t.push(tokEq, "=")
			t.pos++
		case c == '<':
			t.push(tokLt, "<")
			t.pos++
		case c == '>':
			t.push(tokGt, ">")
			t.pos++
		case isIdentStart(rune(c)):
			start := t.pos
			for t.pos < len(t.src) && isIdentPart(rune(t.src[t.pos])) {
				t.pos++
			}
			t.push(tokIdent, t.src[start:t.pos])
		default:
			return nil, fmt.Errorf("undertaker: unexpected character %q at offset %d in %q", c, t.pos, src)
		}
	}
	t.push(tokEOF, "")
	return t.toks, nil
}

func (t *tokenizer) push(k tokenKind, text string) {
	t.toks = append(t.toks, token{kind: k, text: text, pos: t.pos})
}

func (t *tokenizer) peekAt(n int) byte {
	if t.pos+n >= len(t.src) {
		return 0
	}
	return t.src[t.pos+n]
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || unicode.IsDigit(r) || r == '.'
}

// normalizeDefined strips "defined(X)" and "defined X" into bare "X", as
// required by spec 3's ConditionalBlock.expression normalization contract.
func normalizeDefined(s string) string {
	for {
		idx := strings.Index(s, "defined")
		if idx == -1 {
			return s
		}
		rest := s[idx+len("defined"):]
		trimmed := strings.TrimLeft(rest, " \t")
		if strings.HasPrefix(trimmed, "(") {
			close := strings.Index(trimmed, ")")
			if close == -1 {
				return s
			}
			name := strings.TrimSpace(trimmed[1:close])
			s = s[:idx] + name + trimmed[close+1:]
			continue
		}
		// defined X (no parens): consume the following identifier.
		i := 0
		for i < len(trimmed) && isIdentPart(rune(trimmed[i])) {
			i++
		}
		if i == 0 {
			return s
		}
		s = s[:idx] + trimmed[:i] + trimmed[i:]
	}
}
