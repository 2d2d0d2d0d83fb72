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

package model_test

import (
	"strings"
	"testing"

	"github.com/delta-one/undertaker/internal/expr"
	"github.com/delta-one/undertaker/internal/kconfig"
	"github.com/delta-one/undertaker/internal/model"
	"github.com/delta-one/undertaker/internal/rsf"
	"github.com/delta-one/undertaker/internal/sat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildRSFModel(t *testing.T, src string) *model.RSFModel {
	t.Helper()
	rel, err := rsf.Read(strings.NewReader(src))
	require.NoError(t, err)
	db, err := kconfig.Build(rel)
	require.NoError(t, err)
	return model.NewRSFModel("kconfig", db, model.NewMeta())
}

func buildCNFModel(t *testing.T) *model.CNFModel {
	t.Helper()
	c := sat.NewCNF()
	c.VarFor("CONFIG_FOO")
	c.VarFor("CONFIG_FOO_MODULE")
	c.VarFor("CONFIG_BAR")
	return model.NewCNFModel("code", c, model.NewMeta())
}

func TestRSFModel_TypeReflection(t *testing.T) {
	m := buildRSFModel(t, "Item FOO tristate\nItem BAR boolean\n")
	assert.Equal(t, model.TypeTristate, m.GetType("FOO"))
	assert.True(t, m.IsTristate("CONFIG_FOO"))
	assert.Equal(t, model.TypeBoolean, m.GetType("BAR"))
	assert.True(t, m.IsBoolean("CONFIG_BAR"))
	assert.Equal(t, model.TypeUnknown, m.GetType("NOPE"))
}

func TestCNFModel_TypeReflection(t *testing.T) {
	m := buildCNFModel(t)
	assert.Equal(t, model.TypeTristate, m.GetType("FOO"))
	assert.Equal(t, model.TypeBoolean, m.GetType("BAR"))
	assert.Equal(t, model.TypeUnknown, m.GetType("BAZ"))
}

func TestModel_ContainsSymbol(t *testing.T) {
	r := buildRSFModel(t, "Item FOO boolean\n")
	c := buildCNFModel(t)
	assert.True(t, r.ContainsSymbol("CONFIG_FOO"))
	assert.True(t, r.ContainsSymbol("FILE_foo_c"))
	assert.False(t, r.ContainsSymbol("CONFIG_NOPE"))
	assert.True(t, c.ContainsSymbol("CONFIG_BAR"))
	assert.True(t, c.ContainsSymbol("FILE_foo_c"))
	assert.False(t, c.ContainsSymbol("CONFIG_NOPE"))
}

func mustRead(t *testing.T, src string) *rsf.Relations {
	t.Helper()
	rel, err := rsf.Read(strings.NewReader(src))
	require.NoError(t, err)
	return rel
}

// Property 4: the missing set and the grounded formula's symbol set are
// disjoint, and every in-space-but-unknown symbol lands in missing.
func TestIntersect_MissingSetDisjointFromGrounded(t *testing.T) {
	db, err := kconfig.Build(mustRead(t, "Item FOO boolean\n"))
	require.NoError(t, err)
	meta := model.NewMeta()
	meta.Whitelist("CONFIG_FOO")
	m := model.NewRSFModel("kconfig", db, meta)

	missing := make(map[string]bool)
	formula, valid := m.Intersect([]string{"CONFIG_FOO", "CONFIG_MISSING", "FREE_VAR"}, nil, missing)
	require.NotNil(t, formula)
	assert.Equal(t, 1, valid)
	assert.True(t, missing["CONFIG_MISSING"])
	assert.False(t, missing["FREE_VAR"])

	grounded := expr.Symbols(formula)
	for sym := range missing {
		assert.False(t, grounded[sym], "symbol %s must not appear in both grounded and missing sets", sym)
	}
	assert.True(t, grounded["CONFIG_FOO"])
	assert.True(t, grounded["._.kconfig._."], "Intersect must always append the model's marker literal")
}

func TestIntersect_Blacklist(t *testing.T) {
	db, err := kconfig.Build(mustRead(t, "Item FOO boolean\n"))
	require.NoError(t, err)
	meta := model.NewMeta()
	meta.Blacklist("CONFIG_FOO")
	m := model.NewRSFModel("kconfig", db, meta)

	missing := make(map[string]bool)
	formula, valid := m.Intersect([]string{"CONFIG_FOO"}, nil, missing)
	assert.Equal(t, 1, valid)
	assert.Contains(t, formula.String(), "!CONFIG_FOO")
}

func TestIntersect_CheckerGatesMissing(t *testing.T) {
	db, err := kconfig.Build(mustRead(t, "Item FOO boolean\n"))
	require.NoError(t, err)
	m := model.NewRSFModel("kconfig", db, model.NewMeta())

	missing := make(map[string]bool)
	reject := func(string) bool { return false }
	_, _ = m.Intersect([]string{"CONFIG_OTHER"}, reject, missing)
	assert.False(t, missing["CONFIG_OTHER"])
}

func TestCNFModel_Intersect(t *testing.T) {
	m := buildCNFModel(t)
	missing := make(map[string]bool)
	formula, valid := m.Intersect([]string{"CONFIG_FOO", "CONFIG_NOPE"}, nil, missing)
	assert.Equal(t, 1, valid)
	assert.True(t, missing["CONFIG_NOPE"])
	assert.Contains(t, formula.String(), "._.code._.")
}

func TestRSFModel_InConfigurationSpace(t *testing.T) {
	m := buildRSFModel(t, "Item FOO boolean\n")
	assert.True(t, m.InConfigurationSpace("CONFIG_FOO"))
	assert.False(t, m.InConfigurationSpace("FOO"))
}

func TestModel_IsComplete(t *testing.T) {
	meta := model.NewMeta()
	db, err := kconfig.Build(mustRead(t, "Item FOO boolean\n"))
	require.NoError(t, err)
	m := model.NewRSFModel("kconfig", db, meta)
	assert.True(t, m.IsComplete())
	meta.Incomplete = true
	assert.False(t, m.IsComplete())
}
