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

// Package dispatch runs one analysis task per source file with bounded
// parallelism, per spec section 5: files share no mutable state, and a
// failure on one file (a SatCheckerError, say) never cancels its siblings.
package dispatch

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"
)

// FileError pairs a source path with the error analyzing it produced.
type FileError struct {
	Path string
	Err  error
}

// Run calls task(path) for every entry in files, at most jobs at a time.
// Unlike errgroup's default behavior, a task error does not cancel the
// others: every file is attempted, and all resulting errors are returned
// together, sorted by path, once every task has finished.
func Run(ctx context.Context, files []string, jobs int, task func(ctx context.Context, path string) error) []FileError {
	if jobs < 1 {
		jobs = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	var mu sync.Mutex
	var failures []FileError

	for _, path := range files {
		path := path
		g.Go(func() error {
			if err := task(gctx, path); err != nil {
				mu.Lock()
				failures = append(failures, FileError{Path: path, Err: err})
				mu.Unlock()
			}
			return nil
		})
	}
	// Run's own tasks never return an error (failures are collected, not
	// propagated), so g.Wait() always returns nil here.
	_ = g.Wait()

	sort.Slice(failures, func(i, j int) bool { return failures[i].Path < failures[j].Path })
	return failures
}
