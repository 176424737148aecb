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

package graph

import (
	"github.com/NVIDIA/confmodel/pkg/header"
)

// View is the serializable form of an ImportGraph.
type View struct {
	header.Header `json:",inline" yaml:",inline"`

	TopLevel []string    `json:"topLevel,omitempty" yaml:"topLevel,omitempty"`
	Roots    []string    `json:"roots,omitempty" yaml:"roots,omitempty"`
	Order    []string    `json:"order,omitempty" yaml:"order,omitempty"`
	Classes  []ClassNode `json:"classes,omitempty" yaml:"classes,omitempty"`
	Cycles   [][]string  `json:"cycles,omitempty" yaml:"cycles,omitempty"`
}

// ClassNode is one vertex of the View.
type ClassNode struct {
	Name       string   `json:"name" yaml:"name"`
	Potential  bool     `json:"potential,omitempty" yaml:"potential,omitempty"`
	Imports    []string `json:"imports,omitempty" yaml:"imports,omitempty"`
	ImportedBy []string `json:"importedBy,omitempty" yaml:"importedBy,omitempty"`
}

// View returns the serializable form of g stamped with version.
func (g *ImportGraph) View(version string) View {
	var v View
	v.Init(header.KindImportGraph, version)
	v.TopLevel = g.top
	v.Roots = g.Roots()
	v.Cycles = g.Cycles()
	if order, err := g.Order(); err == nil {
		v.Order = order
	}
	for _, name := range g.Classes() {
		v.Classes = append(v.Classes, ClassNode{
			Name:       name,
			Potential:  g.IsPotential(name),
			Imports:    g.Imports(name),
			ImportedBy: g.ImportedBy(name),
		})
	}
	return v
}
