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

package sat

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteDIMACS serializes cnf in DIMACS CNF format, prefixed by "c sym <name>
// <var>" lines for the symbol table and "c meta_value <key> <value>" lines
// for the given meta keys, per spec section 6.
func WriteDIMACS(w io.Writer, cnf *CNF, meta map[string][]string) error {
	bw := bufio.NewWriter(w)

	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range meta[k] {
			if _, err := fmt.Fprintf(bw, "c meta_value %s %s\n", k, v); err != nil {
				return err
			}
		}
	}

	for _, name := range cnf.OrderedSymbols() {
		if _, err := fmt.Fprintf(bw, "c sym %s %d\n", name, cnf.Symbols[name]); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", cnf.NumVars, len(cnf.Clauses)); err != nil {
		return err
	}
	for _, clause := range cnf.Clauses {
		parts := make([]string, 0, len(clause)+1)
		for _, lit := range clause {
			parts = append(parts, strconv.Itoa(int(lit)))
		}
		parts = append(parts, "0")
		if _, err := fmt.Fprintln(bw, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadDIMACS parses a CNF plus its meta key table from r.
func ReadDIMACS(r io.Reader) (*CNF, map[string][]string, error) {
	cnf := NewCNF()
	meta := make(map[string][]string)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var declaredClauses int
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "c":
			if len(fields) >= 4 && fields[1] == "sym" {
				name := fields[2]
				v, err := strconv.Atoi(fields[3])
				if err != nil {
					return nil, nil, fmt.Errorf("undertaker: bad sym line %q: %w", line, err)
				}
				cnf.Symbols[name] = Var(v)
				cnf.order = append(cnf.order, name)
				if v > cnf.NumVars {
					cnf.NumVars = v
				}
			} else if len(fields) >= 4 && fields[1] == "meta_value" {
				key := fields[2]
				val := strings.Join(fields[3:], " ")
				meta[key] = append(meta[key], val)
			}
		case "p":
			if len(fields) != 4 || fields[1] != "cnf" {
				return nil, nil, fmt.Errorf("undertaker: malformed problem line %q", line)
			}
			n, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, nil, fmt.Errorf("undertaker: bad variable count in %q: %w", line, err)
			}
			if n > cnf.NumVars {
				cnf.NumVars = n
			}
			declaredClauses, err = strconv.Atoi(fields[3])
			if err != nil {
				return nil, nil, fmt.Errorf("undertaker: bad clause count in %q: %w", line, err)
			}
		default:
			clause := make([]Lit, 0, len(fields))
			for _, f := range fields {
				n, err := strconv.Atoi(f)
				if err != nil {
					return nil, nil, fmt.Errorf("undertaker: bad literal %q: %w", f, err)
				}
				if n == 0 {
					break
				}
				clause = append(clause, Lit(n))
			}
			cnf.Clauses = append(cnf.Clauses, clause)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	if declaredClauses != 0 && declaredClauses != len(cnf.Clauses) {
		return nil, nil, fmt.Errorf("undertaker: declared %d clauses but read %d", declaredClauses, len(cnf.Clauses))
	}
	return cnf, meta, nil
}
