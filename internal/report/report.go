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

// Package report writes a Defect to disk per spec section 6's naming and
// content contract. A failed write is logged and the report dropped;
// analysis of the remaining blocks continues (spec section 7).
package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/delta-one/undertaker/internal/cpptree"
	"github.com/delta-one/undertaker/internal/debug"
	"github.com/delta-one/undertaker/internal/defect"
	"github.com/delta-one/undertaker/internal/expr"
)

// Name returns the report file name for d found in source, per spec
// section 6: `<source>.<block>.<code|kconfig|missing>.<arch|globally>.<dead|undead>`.
func Name(source string, d *defect.Defect) string {
	scope := "globally"
	if !d.IsGlobal && d.Arch != "" {
		scope = d.Arch
	}
	return fmt.Sprintf("%s.%s.%s.%s.%s", source, d.Block, d.ReportKind, scope, d.Direction)
}

// Header returns the position-comment line spec section 6 specifies,
// derived from block's line/column span in source.
func Header(source string, block *cpptree.ConditionalBlock) string {
	return fmt.Sprintf("#%s:%s:%d:%d:%s:%d:%d:\n",
		block.Name, source, block.LineStart, block.ColStart, source, block.LineEnd, block.ColEnd)
}

// Write composes a report's contents (Header followed by formula's
// pretty-printed form) and writes it under dir using Name(source, d). A
// failure to create the file is logged via internal/debug and returns nil:
// per spec section 7, a report-file I/O failure never aborts analysis.
func Write(dir, source string, block *cpptree.ConditionalBlock, d *defect.Defect, formula expr.Expr) error {
	path := filepath.Join(dir, Name(source, d))
	content := Header(source, block) + formula.String() + "\n"

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		debug.Logf("report: dropping %s: %v", path, err)
		return nil
	}
	return nil
}
