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

package cppscan_test

import (
	"strings"
	"testing"

	"github.com/delta-one/undertaker/internal/cppscan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScan_SimpleIf(t *testing.T) {
	src := "a\n#if A\nb\n#endif\nc\n"
	f, err := cppscan.Scan("t.c", strings.NewReader(src))
	require.NoError(t, err)

	blocks := f.Blocks()
	require.Len(t, blocks, 2) // B00, B0
	assert.Equal(t, "A", blocks[1].Expression)
	assert.Equal(t, 2, blocks[1].LineStart)
	assert.Equal(t, 4, blocks[1].LineEnd)
}

func TestScan_IfElifElse(t *testing.T) {
	src := "#if A\nx\n#elif B\ny\n#else\nz\n#endif\n"
	f, err := cppscan.Scan("t.c", strings.NewReader(src))
	require.NoError(t, err)

	blocks := f.Blocks()
	require.Len(t, blocks, 4) // B00, if, elif, else
	assert.Equal(t, "A", blocks[1].Expression)
	assert.Equal(t, "B", blocks[2].Expression)
	assert.Equal(t, blocks[1].ID, blocks[2].PreviousSibling)
	assert.Equal(t, blocks[2].ID, blocks[3].PreviousSibling)
}

func TestScan_Nested(t *testing.T) {
	src := "#if A\n#if B\nx\n#endif\n#endif\n"
	f, err := cppscan.Scan("t.c", strings.NewReader(src))
	require.NoError(t, err)

	blocks := f.Blocks()
	require.Len(t, blocks, 3)
	assert.Equal(t, blocks[1].ID, blocks[2].Parent)
}

func TestScan_Ifndef(t *testing.T) {
	src := "#ifndef A\nx\n#endif\n"
	f, err := cppscan.Scan("t.c", strings.NewReader(src))
	require.NoError(t, err)
	blocks := f.Blocks()
	require.Len(t, blocks, 2)
	assert.Equal(t, "A", blocks[1].Expression)
}

func TestScan_DefineRewritesLaterBlocks(t *testing.T) {
	src := "#if A\nx\n#endif\n#define A\n#if A\ny\n#endif\n"
	f, err := cppscan.Scan("t.c", strings.NewReader(src))
	require.NoError(t, err)
	blocks := f.Blocks()
	require.Len(t, blocks, 3)
	assert.NotEqual(t, blocks[1].Expression, blocks[2].Expression)
}

func TestScan_UnterminatedIfErrors(t *testing.T) {
	_, err := cppscan.Scan("t.c", strings.NewReader("#if A\nx\n"))
	assert.Error(t, err)
}

func TestScan_ElifWithoutIfErrors(t *testing.T) {
	_, err := cppscan.Scan("t.c", strings.NewReader("#elif A\n"))
	assert.Error(t, err)
}

func TestScan_DefineWithNoSymbolErrors(t *testing.T) {
	_, err := cppscan.Scan("t.c", strings.NewReader("#define\n"))
	assert.Error(t, err)
}
