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

package main

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/delta-one/undertaker/internal/debug"
	"github.com/delta-one/undertaker/internal/defect"
	"github.com/delta-one/undertaker/internal/discover"
	"github.com/fsnotify/fsnotify"
	"github.com/urfave/cli/v2"
)

const watchDebounce = 300 * time.Millisecond

// runWatch re-runs check on individual files as fsnotify reports writes to
// them, debouncing rapid successive writes to the same file into one
// re-check. Unlike check, it reports failures to stderr via debug.Logf
// rather than aggregating them, since it never exits on its own.
func runWatch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		debug.SetLevel(debug.LevelVerbose)
	}

	whitelist, err := discover.LoadPatterns(cfg.Whitelist)
	if err != nil {
		return fmt.Errorf("load whitelist: %w", err)
	}
	blacklist, err := discover.LoadPatterns(cfg.Blacklist)
	if err != nil {
		return fmt.Errorf("load blacklist: %w", err)
	}
	files, err := discover.Files(cfg.Sources, whitelist, blacklist)
	if err != nil {
		return fmt.Errorf("discover sources: %w", err)
	}

	reg, err := loadRegistry(cfg)
	if err != nil {
		return err
	}
	analyzer := defect.NewAnalyzer(reg, nil)

	reportDir := cfg.ReportDir
	if reportDir == "" {
		reportDir = "."
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	watched := make(map[string]bool, len(files))
	dirs := map[string]bool{}
	for _, path := range files {
		watched[path] = true
		dir := filepath.Dir(path)
		if !dirs[dir] {
			if err := watcher.Add(dir); err != nil {
				debug.Logf("watch: add %s: %v", dir, err)
				continue
			}
			dirs[dir] = true
		}
	}
	debug.Logf("watching %d director(ies) for %d file(s)", len(dirs), len(files))

	d := &debouncer{
		delay: watchDebounce,
		run: func(path string) {
			if err := checkFile(analyzer, reportDir, path); err != nil {
				debug.Logf("%s: %v", path, err)
			}
		},
	}

	for {
		select {
		case <-c.Context.Done():
			return c.Context.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !watched[ev.Name] {
				continue
			}
			d.trigger(ev.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			debug.Logf("watch: %v", err)
		}
	}
}

// debouncer coalesces repeated triggers for the same path within delay into
// a single run call, mirroring the batching fsnotify handlers in the
// example pack use to avoid reprocessing a file mid-write.
type debouncer struct {
	delay time.Duration
	run   func(path string)

	mu     sync.Mutex
	timers map[string]*time.Timer
}

func (d *debouncer) trigger(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timers == nil {
		d.timers = make(map[string]*time.Timer)
	}
	if t, ok := d.timers[path]; ok {
		t.Stop()
	}
	d.timers[path] = time.AfterFunc(d.delay, func() { d.run(path) })
}
