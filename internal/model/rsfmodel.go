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
	"github.com/delta-one/undertaker/internal/kconfig"
)

// RSFModel is a Model backed by an in-memory kconfig.Database, per spec
// section 4.E. It does not rewrite queries: Intersect uses the database only
// to test symbol membership, and the items' dependency clauses are not added
// to the intersect formula.
type RSFModel struct {
	name string
	db   *kconfig.Database
	meta *Meta
}

// NewRSFModel wraps db as a Model named name.
func NewRSFModel(name string, db *kconfig.Database, meta *Meta) *RSFModel {
	if meta == nil {
		meta = NewMeta()
	}
	return &RSFModel{name: name, db: db, meta: meta}
}

func (m *RSFModel) Name() string { return m.name }

func (m *RSFModel) ContainsSymbol(name string) bool {
	if strings.HasPrefix(name, "FILE_") {
		return true
	}
	return m.db.Lookup(name).IsValid()
}

func (m *RSFModel) InConfigurationSpace(name string) bool {
	return m.meta.SpaceRegex.MatchString(name)
}

func (m *RSFModel) IsComplete() bool { return !m.meta.Incomplete }

func (m *RSFModel) GetType(name string) ItemType {
	it := m.db.Lookup(configPrefix + normalizeName(name))
	switch {
	case it.IsTristate():
		return TypeTristate
	case it.IsValid():
		return TypeBoolean
	default:
		return TypeUnknown
	}
}

func (m *RSFModel) IsBoolean(name string) bool  { return m.GetType(name) == TypeBoolean }
func (m *RSFModel) IsTristate(name string) bool { return m.GetType(name) == TypeTristate }

func (m *RSFModel) Intersect(symbols []string, checker func(string) bool, missing map[string]bool) (expr.Expr, int) {
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
