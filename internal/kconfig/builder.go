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

import (
	"fmt"

	"github.com/delta-one/undertaker/internal/rsf"
)

// ConfigPrefix and ModuleSuffix are the naming conventions fixed by spec
// section 3 and section 4.D.
const (
	ConfigPrefix  = "CONFIG_"
	ModuleSuffix  = "_MODULE"
	ModulesSymbol = "CONFIG_MODULES"
)

// Build runs the five ordered passes of spec section 4.D over rel and
// returns the populated Database. Passes run strictly in order because each
// depends on state the previous one established (pass 4's dependency
// rewriting needs every item pass 1-3 may create to already exist in the
// database, even though Depends rows in the RSF file are not sorted to
// match).
func Build(rel *rsf.Relations) (*Database, error) {
	db := NewDatabase()

	seedItems(db, rel)
	if err := seedChoices(db, rel); err != nil {
		return nil, err
	}
	if err := seedChoiceAlternatives(db, rel); err != nil {
		return nil, err
	}
	applyDependencies(db, rel)
	applyDefaults(db, rel)

	return db, nil
}

// seedItems is pass 1: item seeding.
func seedItems(db *Database, rel *rsf.Relations) {
	for _, pair := range rel.Items.Pairs {
		for _, row := range pair.Value {
			switch row.Type {
			case rsf.TypeBoolean:
				db.Put(&Item{Name: ConfigPrefix + row.Name, Kind: Boolean})
			case rsf.TypeTristate:
				name := ConfigPrefix + row.Name
				moduleName := name + ModuleSuffix
				db.Put(&Item{
					Name: name,
					Kind: Tristate,
					Dependencies: []string{
						"(!" + moduleName + ")",
					},
				})
				db.Put(&Item{
					Name: moduleName,
					Kind: Boolean,
					Dependencies: []string{
						"(" + ModulesSymbol + ")",
						"(!" + name + ")",
					},
				})
			default:
				// integer/hex/string items never appear in the emitted
				// model (spec section 4.D pass 1).
			}
		}
	}
}

// seedChoices is pass 2: choices.
func seedChoices(db *Database, rel *rsf.Relations) error {
	for _, pair := range rel.Choices.Pairs {
		for _, row := range pair.Value {
			db.Put(&Item{
				Name:           ConfigPrefix + row.Name,
				Kind:           Choice,
				Required:       row.Required,
				ChoiceTristate: row.Tristate,
			})
		}
	}
	return nil
}

// seedChoiceAlternatives is pass 3: choice alternatives.
func seedChoiceAlternatives(db *Database, rel *rsf.Relations) error {
	for _, pair := range rel.ChoiceItems.Pairs {
		for _, row := range pair.Value {
			choice := db.Lookup(ConfigPrefix + row.Choice)
			if !choice.IsChoice() {
				return fmt.Errorf("undertaker: kconfig: ChoiceItem %q references unknown choice %q", row.Member, row.Choice)
			}
			memberName := ConfigPrefix + row.Member
			member := db.Lookup(memberName)
			if !member.IsValid() {
				member = &Item{Name: memberName, Kind: Boolean}
				db.Put(member)
			}
			choice.ChoiceAlternatives = append(choice.ChoiceAlternatives, member)
		}
	}
	return nil
}

// applyDependencies is pass 4: dependencies.
func applyDependencies(db *Database, rel *rsf.Relations) {
	for _, pair := range rel.Depends.Pairs {
		itemName := ConfigPrefix + pair.Key
		item := db.Lookup(itemName)
		if !item.IsValid() {
			continue
		}
		for _, row := range pair.Value {
			clause := "(" + Rewrite(row.Expr, db) + ")"
			item.PrependDependency(clause)
			if item.IsTristate() {
				module := db.Lookup(itemName + ModuleSuffix)
				if module.IsValid() {
					module.PrependDependency(clause)
				}
			}
		}
	}
}

// applyDefaults is pass 5: defaults.
func applyDefaults(db *Database, rel *rsf.Relations) {
	for _, pair := range rel.Defaults.Pairs {
		itemName := ConfigPrefix + pair.Key
		item := db.Lookup(itemName)
		if !item.IsValid() || item.Kind == Choice || item.Kind == Tristate {
			continue
		}
		if rel.HasPrompt(pair.Key) {
			continue
		}
		for _, row := range pair.Value {
			switch {
			case row.Expr == "y" && row.VisibleExpr == "y":
				db.AlwaysOn = append(db.AlwaysOn, item)
			case row.Expr == "y" && row.VisibleExpr != "y":
				item.PrependDependency("(" + Rewrite(row.VisibleExpr, db) + ")")
			case row.Expr != "y" && row.VisibleExpr == "y":
				item.PrependDependency("(" + Rewrite(row.Expr, db) + ")")
			}
		}
	}
}
