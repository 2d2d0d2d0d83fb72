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

// Package defect implements the dead/undead classification pipeline, per
// spec section 4.G: compose code constraints with model constraints and
// missing-symbol grounding, dispatch to the SAT facade, and classify the
// outcome, crosschecking across every loaded model when the primary
// verdict isn't purely code-level.
package defect

import "fmt"

// Kind is where in the classification pipeline a defect was detected.
type Kind int

const (
	KindNone Kind = iota
	KindImplementation
	KindConfiguration
	KindReferential
)

func (k Kind) String() string {
	switch k {
	case KindImplementation:
		return "Implementation"
	case KindConfiguration:
		return "Configuration"
	case KindReferential:
		return "Referential"
	default:
		return "None"
	}
}

// ReportKind is the `<kind>` component of spec section 6's report file
// name, one of {code, kconfig, missing}.
type ReportKind int

const (
	ReportCode ReportKind = iota
	ReportKconfig
	ReportMissing
)

func (k ReportKind) String() string {
	switch k {
	case ReportCode:
		return "code"
	case ReportKconfig:
		return "kconfig"
	case ReportMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Direction distinguishes a dead-block finding from an undead-block one,
// the final path component of spec section 6's report file name.
type Direction int

const (
	Dead Direction = iota
	Undead
)

func (d Direction) String() string {
	if d == Undead {
		return "undead"
	}
	return "dead"
}

// Defect is the outcome of classifying a single block, per spec section
// 4.G's state machine.
type Defect struct {
	Block      string
	Direction  Direction
	Kind       Kind
	ReportKind ReportKind
	// Arch is the architecture/model name responsible for a Configuration
	// or Referential verdict — the primary model's name at first
	// detection, unless crosscheck later needs to report per-arch detail.
	Arch string
	// IsGlobal is true when every loaded model agrees the block is
	// defective (or there was no model to disagree, or the defect was
	// Implementation-level, which is global by construction per spec S1).
	IsGlobal bool
	// OKArches lists model names that, on crosscheck, found the block NOT
	// defective.
	OKArches []string
}

func (d *Defect) String() string {
	scope := "globally"
	if !d.IsGlobal && d.Arch != "" {
		scope = d.Arch
	}
	return fmt.Sprintf("%s block, %s defect (%s), %s", d.Direction, d.Kind, d.ReportKind, scope)
}
