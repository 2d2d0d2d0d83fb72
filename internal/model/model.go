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

// Package model provides the uniform query surface spec section 4.E
// requires over both configuration-model encodings (CNF and RSF):
// contains-symbol, in-configuration-space, type reflection, and the
// symbol/formula intersection used to ground a code formula against a
// loaded Kconfig model.
package model

import (
	"regexp"
	"strings"

	"github.com/delta-one/undertaker/internal/expr"
)

// DefaultConfigurationSpaceRegex is the default pattern for
// in_configuration_space (spec section 4.E), overridable per model via a
// meta key.
const DefaultConfigurationSpaceRegex = `^CONFIG_[^ ]+$`

const moduleSuffix = "_MODULE"
const configPrefix = "CONFIG_"

// Meta holds the small set of meta keys recognized by both encodings:
// CONFIGURATION_SPACE_REGEX, CONFIGURATION_SPACE_INCOMPLETE, ALWAYS_ON,
// ALWAYS_OFF (spec section 6).
type Meta struct {
	SpaceRegex *regexp.Regexp
	Incomplete bool
	AlwaysOn   map[string]bool
	AlwaysOff  map[string]bool
}

// NewMeta returns a Meta with the default configuration-space regex and
// empty whitelist/blacklist sets.
func NewMeta() *Meta {
	return &Meta{
		SpaceRegex: regexp.MustCompile(DefaultConfigurationSpaceRegex),
		AlwaysOn:   make(map[string]bool),
		AlwaysOff:  make(map[string]bool),
	}
}

// Whitelist marks name as ALWAYS_ON.
func (m *Meta) Whitelist(name string) { m.AlwaysOn[name] = true }

// Blacklist marks name as ALWAYS_OFF.
func (m *Meta) Blacklist(name string) { m.AlwaysOff[name] = true }

// ItemType mirrors kconfig.Kind without importing that package, so callers
// that only have a Model (CNF-backed models included) can still ask "is
// this symbol boolean or tristate" without a dependency on the RSF-specific
// builder.
type ItemType int

const (
	TypeUnknown ItemType = iota
	TypeBoolean
	TypeTristate
)

// Model is the uniform interface over a loaded configuration model, per
// spec section 4.E.
type Model interface {
	Name() string
	ContainsSymbol(name string) bool
	InConfigurationSpace(name string) bool
	IsComplete() bool
	IsBoolean(name string) bool
	IsTristate(name string) bool
	GetType(name string) ItemType
	// Intersect classifies each symbol in symbols as either known to the
	// model (counted, and added to the intersect formula as sym or !sym
	// only when listed in ALWAYS_ON/ALWAYS_OFF) or missing-but-in-space
	// (added to missing). The formula always ends with the model's marker
	// literal. It returns the count of symbols the model actually knows
	// about. checker, when non-nil, additionally gates whether an
	// in-space-but-unknown symbol is eligible for the missing set (spec
	// section 3's File.ItemChecker contract).
	Intersect(symbols []string, checker func(string) bool, missing map[string]bool) (formula expr.Expr, validItems int)
}

// normalizeName strips the CONFIG_ prefix and _MODULE suffix, per spec
// section 4.E's type-reflection normalization rule.
func normalizeName(name string) string {
	n := name
	if strings.HasPrefix(n, configPrefix) {
		n = n[len(configPrefix):]
	}
	n = strings.TrimSuffix(n, moduleSuffix)
	return n
}

// markerLiteral is the `._.<model_name>._.` literal spec section 4.E's
// Intersect contract says must always be appended to the accumulated
// formula, regardless of whether any symbol was actually grounded. It acts
// as a per-model provenance tag on the emitted intersection formula.
func markerLiteral(modelName string) *expr.Ident {
	return &expr.Ident{Name: "._." + modelName + "._."}
}

func andAll(exprs []expr.Expr) expr.Expr {
	if len(exprs) == 0 {
		return &expr.Lit{Value: expr.ConstY}
	}
	out := exprs[0]
	for _, e := range exprs[1:] {
		out = &expr.Binary{Op: expr.And, X: out, Y: e}
	}
	return out
}
