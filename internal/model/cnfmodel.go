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

package model

import (
	"strings"

	"github.com/delta-one/undertaker/internal/expr"
	"github.com/delta-one/undertaker/internal/sat"
)

// CNFModel is a Model backed by a precompiled sat.CNF with a binary symbol
// table, per spec section 4.E. Intersect consults only the symbol table and
// the meta lists; the CNF's clauses are not added to the intersect formula.
type CNFModel struct {
	name string
	cnf  *sat.CNF
	meta *Meta
}

// NewCNFModel wraps cnf as a Model named name.
func NewCNFModel(name string, cnf *sat.CNF, meta *Meta) *CNFModel {
	if meta == nil {
		meta = NewMeta()
	}
	return &CNFModel{name: name, cnf: cnf, meta: meta}
}

func (m *CNFModel) Name() string { return m.name }

func (m *CNFModel) ContainsSymbol(name string) bool {
	if strings.HasPrefix(name, "FILE_") {
		return true
	}
	_, ok := m.cnf.Symbols[name]
	return ok
}

func (m *CNFModel) InConfigurationSpace(name string) bool {
	return m.meta.SpaceRegex.MatchString(name)
}

func (m *CNFModel) IsComplete() bool { return !m.meta.Incomplete }

func (m *CNFModel) GetType(name string) ItemType {
	base := configPrefix + normalizeName(name)
	if _, ok := m.cnf.Symbols[base]; !ok {
		return TypeUnknown
	}
	if _, ok := m.cnf.Symbols[base+moduleSuffix]; ok {
		return TypeTristate
	}
	return TypeBoolean
}

func (m *CNFModel) IsBoolean(name string) bool  { return m.GetType(name) == TypeBoolean }
func (m *CNFModel) IsTristate(name string) bool { return m.GetType(name) == TypeTristate }

func (m *CNFModel) Intersect(symbols []string, checker func(string) bool, missing map[string]bool) (expr.Expr, int) {
	var clauses []expr.Expr
	valid := 0
	for _, sym := range symbols {
		if m.ContainsSymbol(sym) {
			valid++
			switch {
			case m.meta.AlwaysOn[sym]:
				clauses = append(clauses, &expr.Ident{Name: sym})
			case m.meta.AlwaysOff[sym]:
				clauses = append(clauses, &expr.Not{X: &expr.Ident{Name: sym}})
			}
			continue
		}
		if m.InConfigurationSpace(sym) && (checker == nil || checker(sym)) && !strings.HasPrefix(sym, "__FREE__") {
			missing[sym] = true
		}
	}
	clauses = append(clauses, markerLiteral(m.name))
	return andAll(clauses), valid
}
