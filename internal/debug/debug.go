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

// Package debug is a tiny leveled logger over the standard log package,
// used only at the driver edge (cmd/undertaker, internal/report). The
// constraint-generation core (internal/kconfig, internal/cpptree,
// internal/defect, ...) never logs; it returns values and errors instead.
package debug

import (
	"fmt"
	"log"
	"os"
	"sync/atomic"
)

// Level selects how much gets logged.
type Level int32

const (
	LevelSilent Level = iota
	LevelInfo
	LevelVerbose
)

var current int32 = int32(LevelInfo)

// SetLevel changes the active log level for the process.
func SetLevel(l Level) { atomic.StoreInt32(&current, int32(l)) }

func enabled(l Level) bool { return Level(atomic.LoadInt32(&current)) >= l }

var logger = log.New(os.Stderr, "undertaker: ", 0)

// Logf logs at LevelInfo.
func Logf(format string, args ...any) {
	if enabled(LevelInfo) {
		logger.Output(2, fmt.Sprintf(format, args...))
	}
}

// Verbosef logs at LevelVerbose, for per-file/per-block detail that would
// otherwise drown out a normal run's output.
func Verbosef(format string, args ...any) {
	if enabled(LevelVerbose) {
		logger.Output(2, fmt.Sprintf(format, args...))
	}
}
