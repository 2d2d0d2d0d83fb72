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

// Package container holds the model registry spec section 9 reworks away
// from a singleton: a plain constructed value, passed into the defect
// analyzer's constructor, never reached through a package-level global.
package container

import (
	"sort"

	"github.com/delta-one/undertaker/internal/model"
)

// Registry is a process-wide, read-only-after-load map from architecture/
// model name to its loaded Model, plus the name of the primary model used
// for first-pass classification (spec section 4.G).
type Registry struct {
	models  map[string]model.Model
	primary string
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]model.Model)}
}

// Register adds m under name, overwriting any existing entry of that name.
func (r *Registry) Register(name string, m model.Model) {
	r.models[name] = m
}

// SetPrimary names the registry's primary model. It does not need to have
// been Register-ed yet; LookupMain resolves the name at call time.
func (r *Registry) SetPrimary(name string) { r.primary = name }

// Primary returns the configured primary model name, which may be empty.
func (r *Registry) Primary() string { return r.primary }

// LookupMain returns the primary model and true, or (nil, false) if no
// primary is configured or it is not registered. It never panics: spec
// section 7 requires the analyzer to fall back to code-only classification
// when no model is present.
func (r *Registry) LookupMain() (model.Model, bool) {
	if r.primary == "" {
		return nil, false
	}
	return r.Lookup(r.primary)
}

// Lookup returns the model registered under name.
func (r *Registry) Lookup(name string) (model.Model, bool) {
	m, ok := r.models[name]
	return m, ok
}

// Names returns every registered model name, sorted, for deterministic
// crosscheck iteration order.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.models))
	for name := range r.models {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Each calls fn for every registered model in deterministic (sorted-name)
// order, stopping early if fn returns false.
func (r *Registry) Each(fn func(name string, m model.Model) bool) {
	for _, name := range r.Names() {
		if !fn(name, r.models[name]) {
			return
		}
	}
}
