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

package rsf

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Read parses a line-oriented RSF dump. Each line is
// "<RelationName> <key> <values...>" (spec section 6); unrecognized
// relation names are ignored rather than rejected, since the RSF format is
// meant to be extensible and this reader only needs the six relations spec
// section 4.C names.
func Read(r io.Reader) (*Relations, error) {
	rel := NewRelations()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("undertaker: rsf line %d: expected at least relation and key, got %q", lineNo, line)
		}
		name, key, rest := fields[0], fields[1], fields[2:]

		switch name {
		case "Item":
			if len(rest) < 1 {
				return nil, fmt.Errorf("undertaker: rsf line %d: Item requires a type", lineNo)
			}
			rel.Items.Append(key, ItemRow{Name: key, Type: ItemType(rest[0])})
		case "Choice":
			if len(rest) < 2 {
				return nil, fmt.Errorf("undertaker: rsf line %d: Choice requires required/optional and boolean/tristate", lineNo)
			}
			rel.Choices.Append(key, ChoiceRow{
				Name:     key,
				Required: rest[0] == "required",
				Tristate: rest[1] == "tristate",
			})
		case "ChoiceItem":
			if len(rest) < 1 {
				return nil, fmt.Errorf("undertaker: rsf line %d: ChoiceItem requires a choice name", lineNo)
			}
			rel.ChoiceItems.Append(key, ChoiceItemRow{Member: key, Choice: rest[0]})
		case "Depends":
			expr := strings.Join(rest, " ")
			rel.Depends.Append(key, DependsRow{Name: key, Expr: expr})
		case "Default":
			if len(rest) < 2 {
				return nil, fmt.Errorf("undertaker: rsf line %d: Default requires expr and visible_expr", lineNo)
			}
			rel.Defaults.Append(key, DefaultRow{Name: key, Expr: rest[0], VisibleExpr: rest[1]})
		case "HasPrompts":
			if len(rest) < 1 {
				return nil, fmt.Errorf("undertaker: rsf line %d: HasPrompts requires a value", lineNo)
			}
			n, err := strconv.Atoi(rest[0])
			if err != nil {
				return nil, fmt.Errorf("undertaker: rsf line %d: bad HasPrompts value %q: %w", lineNo, rest[0], err)
			}
			rel.HasPrompts.Append(key, n != 0)
		default:
			// Unknown relation: accepted but ignored.
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return rel, nil
}
