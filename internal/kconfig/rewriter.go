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

package kconfig

import "strings"

// delimiters bound a token eligible for rewriting, per spec section 4.D.1:
// "( ) <space> ! = < > & |".
func isDelim(b byte) bool {
	switch b {
	case '(', ')', ' ', '!', '=', '<', '>', '&', '|':
		return true
	default:
		return false
	}
}

func isIdentChar(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// Rewrite applies the prefix-comparison rewriting algorithm of spec section
// 4.D.1 to a raw Kconfig expression, returning a propositional expression
// over CONFIG_ symbols. It scans left to right, replacing one eligible
// token at a time and resuming the scan immediately past the inserted
// replacement text; because every identifier inside a replacement bears the
// "CONFIG_" prefix, and tokens already bearing that prefix are skipped
// outright (closing the implementers' Open Question in spec section 9), this
// single forward pass is equivalent to restarting the scan from the
// beginning after each replacement, without the quadratic re-scanning cost.
func Rewrite(s string, db *Database) string {
	pos := 0
	for pos < len(s) {
		if !isIdentChar(s[pos]) {
			pos++
			continue
		}
		end := pos
		for end < len(s) && isIdentChar(s[end]) {
			end++
		}
		token := s[pos:end]

		leftOK := pos == 0 || isDelim(s[pos-1])
		rightOK := end == len(s) || isDelim(s[end])
		precededByEquals := pos > 0 && s[pos-1] == '='

		switch {
		case !leftOK || !rightOK:
			// Not a standalone token (e.g. embedded in a longer run);
			// nothing to do here, but we must still advance past it.
			pos = end
		case precededByEquals:
			// This is the right-hand side of a comparison already
			// consumed by the token that preceded it; skip it untouched.
			pos = end
		case strings.HasPrefix(token, "CONFIG_"):
			pos = end
		default:
			replacement, consumedEnd := rewriteToken(token, s, end, db)
			s = s[:pos] + replacement + s[consumedEnd:]
			pos += len(replacement)
		}
	}
	return s
}

// rewriteToken computes the replacement text for the eligible token at
// s[pos:end] (token == s[pos:end]) and returns how much of s (measured from
// the original end) was consumed, so the caller can splice past any
// right-hand-side identifier absorbed by a comparison suffix.
func rewriteToken(token string, s string, end int, db *Database) (replacement string, consumedEnd int) {
	item := db.Lookup("CONFIG_" + token)
	tristate := item.IsTristate()
	x := "CONFIG_" + token
	xm := "CONFIG_" + token + "_MODULE"

	if end+1 < len(s) && s[end] == '!' && s[end+1] == '=' {
		rhs, rhsEnd := scanIdent(s, end+2)
		switch rhs {
		case "n":
			return "(" + xm + " || " + x + ")", rhsEnd
		case "m":
			return "!" + xm, rhsEnd
		case "y":
			return "!" + x, rhsEnd
		default:
			return neqOtherFormula(x, xm, rhs), rhsEnd
		}
	}
	if end < len(s) && s[end] == '=' {
		rhs, rhsEnd := scanIdent(s, end+1)
		switch rhs {
		case "n":
			return "(!" + xm + " && !" + x + ")", rhsEnd
		case "m":
			return xm, rhsEnd
		case "y":
			return x, rhsEnd
		default:
			return eqOtherFormula(x, xm, rhs), rhsEnd
		}
	}
	if tristate {
		return "(" + xm + " || " + x + ")", end
	}
	return x, end
}

func scanIdent(s string, start int) (string, int) {
	end := start
	for end < len(s) && isIdentChar(s[end]) {
		end++
	}
	return s[start:end], end
}

func eqOtherFormula(x, xm, rawY string) string {
	y := "CONFIG_" + rawY
	ym := "CONFIG_" + rawY + "_MODULE"
	return "((" + x + " && " + y + ") || (" + xm + " && " + ym + ") || (!" + x + " && !" + y + " && !" + xm + " && !" + ym + "))"
}

func neqOtherFormula(x, xm, rawY string) string {
	y := "CONFIG_" + rawY
	ym := "CONFIG_" + rawY + "_MODULE"
	return "((" + x + " && !" + y + ") || (" + xm + " && !" + ym + ") || (!" + x + " && " + y + " && !" + xm + " && " + ym + "))"
}
