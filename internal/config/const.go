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

package config

// This file hosts non-user-configurable parameters.

// DefaultConfigurationSpaceRegex is the fallback CONFIGURATION_SPACE_REGEX
// meta value when a loaded model doesn't set its own.
const DefaultConfigurationSpaceRegex = `^CONFIG_[^ ]+$`

// ConfigPrefix and ModuleSuffix are the Kconfig symbol-naming conventions
// used throughout type reflection and rewriting.
const (
	ConfigPrefix = "CONFIG_"
	ModuleSuffix = "_MODULE"
)

// DefaultSATMode is the default value of Config.SATMode, naming the Tseitin
// constant-handling mode ("reduce", i.e. cnf.ReduceConstants). The analyzer
// does not read Config.SATMode: every check builds its CNF with
// ReduceConstants.
const DefaultSATMode = "reduce"

// DefaultJobs is the parallel-dispatch worker count used when neither -jobs
// nor the config file sets one.
const DefaultJobs = 4

// DefaultReportDir is where defect reports land when -report-dir isn't set.
const DefaultReportDir = "."

// ConfigFileName is the TOML file undertaker looks for in the working
// directory when -config isn't given.
const ConfigFileName = "undertaker.toml"
