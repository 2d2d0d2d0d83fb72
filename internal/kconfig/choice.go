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

// ExclusivityClause returns the "exactly one is on" disjunction for a choice
// item's alternatives, per spec section 4.D.2: the disjunction over every
// "exactly one is on" conjunction, with an extra "all off" disjunct for
// tristate choices (gated on CONFIG_MODULES when the choice is required).
func (it *Item) ExclusivityClause() string {
	if !it.IsChoice() || len(it.ChoiceAlternatives) == 0 {
		return ""
	}

	var terms []string
	for i := range it.ChoiceAlternatives {
		var parts []string
		for j, alt := range it.ChoiceAlternatives {
			if i == j {
				parts = append(parts, alt.Name)
			} else {
				parts = append(parts, "!"+alt.Name)
			}
		}
		terms = append(terms, "("+strings.Join(parts, " && ")+")")
	}

	if it.ChoiceTristate {
		var allOff []string
		for _, alt := range it.ChoiceAlternatives {
			allOff = append(allOff, "!"+alt.Name)
		}
		allOffClause := strings.Join(allOff, " && ")
		if it.Required {
			allOffClause += " && " + ModulesSymbol
		}
		terms = append(terms, "("+allOffClause+")")
	}

	return "(" + strings.Join(terms, " || ") + ")"
}
