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

package container_test

import (
	"strings"
	"testing"

	"github.com/delta-one/undertaker/internal/container"
	"github.com/delta-one/undertaker/internal/kconfig"
	"github.com/delta-one/undertaker/internal/model"
	"github.com/delta-one/undertaker/internal/rsf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func emptyModel(t *testing.T, name string) model.Model {
	t.Helper()
	rel, err := rsf.Read(strings.NewReader(""))
	require.NoError(t, err)
	db, err := kconfig.Build(rel)
	require.NoError(t, err)
	return model.NewRSFModel(name, db, model.NewMeta())
}

func TestRegistry_LookupMainMissingPrimary(t *testing.T) {
	r := container.NewRegistry()
	_, ok := r.LookupMain()
	assert.False(t, ok)
}

func TestRegistry_LookupMainUnregisteredPrimary(t *testing.T) {
	r := container.NewRegistry()
	r.SetPrimary("x86")
	_, ok := r.LookupMain()
	assert.False(t, ok)
}

func TestRegistry_RegisterAndLookupMain(t *testing.T) {
	r := container.NewRegistry()
	m := emptyModel(t, "x86")
	r.Register("x86", m)
	r.SetPrimary("x86")
	got, ok := r.LookupMain()
	require.True(t, ok)
	assert.Equal(t, "x86", got.Name())
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := container.NewRegistry()
	r.Register("x86", emptyModel(t, "x86"))
	r.Register("arm", emptyModel(t, "arm"))
	assert.Equal(t, []string{"arm", "x86"}, r.Names())
}
