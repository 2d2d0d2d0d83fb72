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

package kconfig_test

import (
	"strings"
	"testing"

	"github.com/delta-one/undertaker/internal/kconfig"
	"github.com/stretchr/testify/assert"
)

// Property (spec section 9, Open Question 2): a token immediately preceded
// by a literal '=' that was already consumed as the right-hand side of an
// earlier comparison must be skipped untouched, not treated as a fresh
// CONFIG_ candidate. "A=B=C" drives this directly: rewriting "A=B" consumes
// through the second '=', leaving "C" positioned right after a bare '=' the
// main scan never itself produced a comparison for.
func TestRewrite_PrecededByEqualsSkipsDanglingIdentifier(t *testing.T) {
	db := buildFrom(t, "Item A boolean\nItem B boolean\nItem C boolean\n")
	got := kconfig.Rewrite("A=B=C", db)

	assert.True(t, strings.HasSuffix(got, "=C"), "dangling identifier after an already-consumed comparison must be left bare: got %q", got)
	assert.NotContains(t, got, "CONFIG_C", "the skip branch must fire rather than rewriting C as a standalone symbol")
	assert.Contains(t, got, "CONFIG_A")
	assert.Contains(t, got, "CONFIG_B")
}
