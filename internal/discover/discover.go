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

// Package discover resolves CLI-supplied glob patterns into an ordered
// list of source files, applying whitelist/blacklist glob filters loaded
// from newline-separated pattern files.
package discover

import (
	"bufio"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Files expands patterns (doublestar globs, e.g. "src/**/*.c") against the
// filesystem and returns the matched paths, deduplicated and sorted, after
// applying whitelist and blacklist glob filters (either may be nil/empty).
// A path survives when either whitelist is nil or it matches at least one
// whitelist pattern, and it matches no blacklist pattern.
func Files(patterns []string, whitelist, blacklist []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if seen[m] {
				continue
			}
			if !allowed(m, whitelist, blacklist) {
				continue
			}
			seen[m] = true
			out = append(out, m)
		}
	}

	sort.Strings(out)
	return out, nil
}

func allowed(path string, whitelist, blacklist []string) bool {
	for _, pattern := range blacklist {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return false
		}
	}
	if len(whitelist) == 0 {
		return true
	}
	for _, pattern := range whitelist {
		if matched, _ := doublestar.Match(pattern, path); matched {
			return true
		}
	}
	return false
}

// LoadPatterns reads a newline-separated glob pattern file (a whitelist or
// blacklist), skipping blank lines and lines starting with '#'. An empty
// path returns (nil, nil): the caller treats a nil list as "no filter".
func LoadPatterns(path string) ([]string, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var patterns []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return patterns, nil
}
