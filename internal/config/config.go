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

// Package config is undertaker's layered configuration: an optional
// undertaker.toml provides defaults, CLI flags (registered on a urfave/cli
// v2 app) override them. Nothing here is on the constraint-generation
// core's call path; it only shapes what the driver passes in.
package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Arch names one loaded configuration model: a name (e.g. "x86") and the
// RSF or CNF file backing it.
type Arch struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
	// Primary marks this arch as the one used for first-pass
	// classification; at most one entry should set it.
	Primary bool `toml:"primary"`
}

// Config is undertaker's full set of run parameters.
type Config struct {
	Archs        []Arch   `toml:"archs"`
	Sources      []string `toml:"sources"`
	Whitelist    string   `toml:"whitelist"`
	Blacklist    string   `toml:"blacklist"`
	ReportDir    string   `toml:"report_dir"`
	Jobs         int      `toml:"jobs"`
	SATMode      string   `toml:"sat_mode"`
	Verbose      bool     `toml:"verbose"`
}

// Default returns a Config seeded with this package's constants.
func Default() *Config {
	return &Config{
		ReportDir: DefaultReportDir,
		Jobs:      DefaultJobs,
		SATMode:   DefaultSATMode,
	}
}

// Load reads and parses a TOML config file. A missing file at path is not
// an error when path equals ConfigFileName (the implicit default lookup);
// any other read failure, or a malformed file, is returned as an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && path == ConfigFileName {
			return Default(), nil
		}
		return nil, err
	}
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Merge layers overlay's non-zero fields onto base, returning a new Config.
// Used to apply CLI flags (overlay) on top of a TOML file's settings
// (base): an empty flag value never clobbers a file-provided one.
func Merge(base, overlay *Config) *Config {
	merged := *base
	if len(overlay.Archs) > 0 {
		merged.Archs = overlay.Archs
	}
	if len(overlay.Sources) > 0 {
		merged.Sources = overlay.Sources
	}
	if overlay.Whitelist != "" {
		merged.Whitelist = overlay.Whitelist
	}
	if overlay.Blacklist != "" {
		merged.Blacklist = overlay.Blacklist
	}
	if overlay.ReportDir != "" {
		merged.ReportDir = overlay.ReportDir
	}
	if overlay.Jobs != 0 {
		merged.Jobs = overlay.Jobs
	}
	if overlay.SATMode != "" {
		merged.SATMode = overlay.SATMode
	}
	if overlay.Verbose {
		merged.Verbose = true
	}
	return &merged
}

// PrimaryArch returns the name of the Arch marked Primary, or "" if none is.
func (c *Config) PrimaryArch() string {
	for _, a := range c.Archs {
		if a.Primary {
			return a.Name
		}
	}
	return ""
}
