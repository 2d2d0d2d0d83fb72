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
	"io"
	"strings"
)

// Dump writes the RSF-format model dump described by spec section 4.D.3.
func Dump(w io.Writer, db *Database) error {
	names := db.Names()
	if _, err := fmt.Fprintf(w, "I: Items-Count: %d\n", len(names)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, "I: Format: <variable> [presence condition]"); err != nil {
		return err
	}

	if len(db.AlwaysOn) > 0 {
		quoted := make([]string, len(db.AlwaysOn))
		for i, it := range db.AlwaysOn {
			quoted[i] = `"` + it.Name + `"`
		}
		if _, err := fmt.Fprintf(w, "ALWAYS_ON %s\n", strings.Join(quoted, " ")); err != nil {
			return err
		}
	}

	for _, name := range names {
		it := db.Lookup(name)
		clauses := make([]string, len(it.Dependencies))
		copy(clauses, it.Dependencies)
		if it.IsChoice() {
			if ex := it.ExclusivityClause(); ex != "" {
				clauses = append(clauses, ex)
			}
		}
		if len(clauses) == 0 {
			if _, err := fmt.Fprintln(w, it.Name); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s %q\n", it.Name, strings.Join(clauses, " && ")); err != nil {
			return err
		}
	}
	return nil
}
