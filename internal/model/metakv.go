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

package model

import "regexp"

// MetaFromKV builds a Meta from the `c meta_value <key> <value>` table a
// DIMACS CNF dump carries (spec section 6), recognizing
// CONFIGURATION_SPACE_REGEX, CONFIGURATION_SPACE_INCOMPLETE, ALWAYS_ON, and
// ALWAYS_OFF; unrecognized keys are ignored.
func MetaFromKV(kv map[string][]string) (*Meta, error) {
	m := NewMeta()

	if vals, ok := kv["CONFIGURATION_SPACE_REGEX"]; ok && len(vals) > 0 {
		re, err := regexp.Compile(vals[0])
		if err != nil {
			return nil, err
		}
		m.SpaceRegex = re
	}
	if vals, ok := kv["CONFIGURATION_SPACE_INCOMPLETE"]; ok && len(vals) > 0 {
		m.Incomplete = vals[0] == "1" || vals[0] == "true"
	}
	for _, name := range kv["ALWAYS_ON"] {
		m.Whitelist(name)
	}
	for _, name := range kv["ALWAYS_OFF"] {
		m.Blacklist(name)
	}
	return m, nil
}
