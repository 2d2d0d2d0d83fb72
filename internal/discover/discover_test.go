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

package discover_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/delta-one/undertaker/internal/discover"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, f := range files {
		p := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
}

func TestFiles_BasicGlob(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.c", "b.c", "sub/c.c", "readme.md")

	got, err := discover.Files([]string{filepath.Join(dir, "**/*.c")}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}

func TestFiles_Whitelist(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "keep/a.c", "drop/b.c")

	got, err := discover.Files(
		[]string{filepath.Join(dir, "**/*.c")},
		[]string{filepath.Join(dir, "keep/**")},
		nil,
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "keep")
}

func TestFiles_Blacklist(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "keep/a.c", "drop/b.c")

	got, err := discover.Files(
		[]string{filepath.Join(dir, "**/*.c")},
		nil,
		[]string{filepath.Join(dir, "drop/**")},
	)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0], "keep")
}

func TestFiles_DeduplicatesAcrossPatterns(t *testing.T) {
	dir := t.TempDir()
	writeTree(t, dir, "a.c")

	got, err := discover.Files([]string{
		filepath.Join(dir, "*.c"),
		filepath.Join(dir, "a.*"),
	}, nil, nil)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestLoadPatterns_EmptyPathReturnsNil(t *testing.T) {
	got, err := discover.LoadPatterns("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoadPatterns_SkipsBlankAndComments(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "whitelist.txt")
	require.NoError(t, os.WriteFile(path, []byte("# comment\n\nkeep/**\n  \narch/*.c\n"), 0o644))

	got, err := discover.LoadPatterns(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"keep/**", "arch/*.c"}, got)
}

func TestLoadPatterns_MissingFileErrors(t *testing.T) {
	_, err := discover.LoadPatterns("/nonexistent/whitelist.txt")
	assert.Error(t, err)
}
