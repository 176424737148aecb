// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
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

package renderer

import (
	"slices"
	"time"

	"github.com/NVIDIA/confmodel/pkg/header"
	"github.com/NVIDIA/confmodel/pkg/registry"
)

// ClassCount is the number of records one class contributed.
type ClassCount struct {
	Class   string `json:"class" yaml:"class"`
	Records int    `json:"records" yaml:"records"`
}

// Report describes one render pass.
type Report struct {
	header.Header `json:",inline" yaml:",inline"`

	// PassID identifies the render pass.
	PassID string `json:"passId" yaml:"passId"`

	// Naming is the naming strategy used.
	Naming string `json:"naming" yaml:"naming"`

	// Records is the total number of records registered by the pass.
	Records int `json:"records" yaml:"records"`

	// Aliases is the number of alias registrations.
	Aliases int `json:"aliases" yaml:"aliases"`

	// TopLevel holds the records per top-level class, covering its whole
	// closure, in model order.
	TopLevel []ClassCount `json:"topLevel" yaml:"topLevel"`

	// Classes holds the records per class in render order.
	Classes []ClassCount `json:"classes" yaml:"classes"`

	// Aspects is the number of aspect records.
	Aspects int `json:"aspects" yaml:"aspects"`

	// Kinds counts records by kind.
	Kinds map[registry.Kind]int `json:"kinds,omitempty" yaml:"kinds,omitempty"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

func newReport(passID, naming string) *Report {
	return &Report{
		PassID:   passID,
		Naming:   naming,
		TopLevel: make([]ClassCount, 0),
		Classes:  make([]ClassCount, 0),
		Kinds:    make(map[registry.Kind]int),
	}
}

// ForClass returns the records class contributed itself.
func (r *Report) ForClass(class string) int {
	return countOf(r.Classes, class)
}

// ForTopLevel returns the records of the closure of a top-level class.
func (r *Report) ForTopLevel(class string) int {
	return countOf(r.TopLevel, class)
}

func countOf(counts []ClassCount, class string) int {
	i := slices.IndexFunc(counts, func(c ClassCount) bool { return c.Class == class })
	if i < 0 {
		return 0
	}
	return counts[i].Records
}

func increment(counts []ClassCount, class string) []ClassCount {
	i := slices.IndexFunc(counts, func(c ClassCount) bool { return c.Class == class })
	if i < 0 {
		return append(counts, ClassCount{Class: class, Records: 1})
	}
	counts[i].Records++
	return counts
}

func ensure(counts []ClassCount, class string) []ClassCount {
	if slices.ContainsFunc(counts, func(c ClassCount) bool { return c.Class == class }) {
		return counts
	}
	return append(counts, ClassCount{Class: class})
}
