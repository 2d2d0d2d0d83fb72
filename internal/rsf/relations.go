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

// Package rsf reads the relational dump of a Kconfig database (spec section
// 4.C and section 6's RSF format) into typed, ordered relations.
package rsf

// ItemType is the Kconfig item type column of the Item relation.
type ItemType string

const (
	TypeBoolean  ItemType = "boolean"
	TypeTristate ItemType = "tristate"
	TypeInteger  ItemType = "integer"
	TypeHex      ItemType = "hex"
	TypeString   ItemType = "string"
)

// ItemRow is one row of the Item relation: `Item <name> <type>`.
type ItemRow struct {
	Name string
	Type ItemType
}

// ChoiceRow is one row of the Choice relation:
// `Choice <name> <required|optional> <boolean|tristate>`.
type ChoiceRow struct {
	Name     string
	Required bool
	Tristate bool
}

// ChoiceItemRow is one row of the ChoiceItem relation:
// `ChoiceItem <member> <choice>`.
type ChoiceItemRow struct {
	Member string
	Choice string
}

// DependsRow is one row of the Depends relation: `Depends <name> <expr>`.
type DependsRow struct {
	Name string
	Expr string
}

// DefaultRow is one row of the Default relation:
// `Default <name> <expr> <visible_expr>`.
type DefaultRow struct {
	Name         string
	Expr         string
	VisibleExpr  string
}

// Relations is the parsed contents of an RSF file: one ordered multimap per
// required relation name (spec section 4.C). Multimaps are keyed by the
// first column of each relation (the item/choice/member name), matching the
// relation's natural key.
type Relations struct {
	Items       *OrderedMultimap[string, ItemRow]
	Choices     *OrderedMultimap[string, ChoiceRow]
	ChoiceItems *OrderedMultimap[string, ChoiceItemRow]
	Depends     *OrderedMultimap[string, DependsRow]
	Defaults    *OrderedMultimap[string, DefaultRow]
	HasPrompts  *OrderedMultimap[string, bool]
}

// NewRelations returns an empty Relations ready for population by Read.
func NewRelations() *Relations {
	return &Relations{
		Items:       NewOrderedMultimap[string, ItemRow](),
		Choices:     NewOrderedMultimap[string, ChoiceRow](),
		ChoiceItems: NewOrderedMultimap[string, ChoiceItemRow](),
		Depends:     NewOrderedMultimap[string, DependsRow](),
		Defaults:    NewOrderedMultimap[string, DefaultRow](),
		HasPrompts:  NewOrderedMultimap[string, bool](),
	}
}

// HasPrompt reports whether name has a nonzero HasPrompts entry. Absent
// entries are treated as zero (no prompt), matching spec section 4.D pass 5
// ("If the companion HasPrompts row is non-zero, skipped").
func (r *Relations) HasPrompt(name string) bool {
	vals, ok := r.HasPrompts.Get(name)
	if !ok {
		return false
	}
	for _, v := range vals {
		if v {
			return true
		}
	}
	return false
}
