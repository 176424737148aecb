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
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"ocm.software/open-component-model/bindings/go/dag"

	"github.com/NVIDIA/confmodel/pkg/model"
)

const (
	attrPotential = "potential"
	attrBeans     = "beans"
	attrIndex     = "index"
)

// ImportGraph is the directed graph of import edges between the classes of
// a model. Edges point from the importing class to the imported one.
//
// The underlying graph is kept acyclic: an import that would close a cycle
// is not added and the cycle is recorded instead.
type ImportGraph struct {
	dag    *dag.DirectedAcyclicGraph[string]
	top    []string
	cycles [][]string
}

// Build creates the import graph of m. Every class in the closure becomes a
// vertex; edges are added in render order so recorded cycles are
// deterministic.
func Build(m *model.ConfigurationModel) *ImportGraph {
	g := &ImportGraph{dag: dag.NewDirectedAcyclicGraph[string]()}
	if m == nil {
		return g
	}

	for _, c := range m.Classes() {
		g.top = append(g.top, c.Name())
	}

	classes := m.AllClasses()
	for _, c := range classes {
		g.addVertex(c)
	}
	for _, c := range classes {
		for i, imp := range c.Imports() {
			g.addVertex(imp)
			g.addEdge(c.Name(), imp.Name(), i)
		}
	}
	return g
}

func (g *ImportGraph) addVertex(c *model.ConfigurationClass) {
	if g.dag.Contains(c.Name()) {
		return
	}
	_ = g.dag.AddVertex(c.Name(), map[string]any{
		attrPotential: c.IsPotential(),
		attrBeans:     len(c.BeanMethods()) + len(c.AutoBeanMethods()),
	})
}

func (g *ImportGraph) addEdge(from, to string, index int) {
	err := g.dag.AddEdge(from, to, map[string]any{attrIndex: index})
	switch {
	case err == nil:
	case stderrors.Is(err, dag.ErrSelfReference):
		g.recordCycle([]string{from, from})
	default:
		var cycleErr *dag.CycleError
		if !stderrors.As(err, &cycleErr) {
			slog.Warn("failed to add import edge", "from", from, "to", to, "error", err)
			return
		}
		// The rejected edge closes a path already leading from to back to from.
		path := g.path(to, from)
		if path == nil {
			path = cycleErr.Cycle
		}
		g.recordCycle(append([]string{from}, path...))
	}
}

func (g *ImportGraph) recordCycle(cycle []string) {
	slog.Debug("import cycle detected", "cycle", strings.Join(cycle, " -> "))
	g.cycles = append(g.cycles, cycle)
}

// path returns the shortest path from -> ... -> to over existing edges,
// visiting imports in declaration order, or nil if there is none.
func (g *ImportGraph) path(from, to string) []string {
	prev := map[string]string{from: ""}
	queue := []string{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			var p []string
			for n := to; n != ""; n = prev[n] {
				p = append(p, n)
			}
			slices.Reverse(p)
			return p
		}
		for _, next := range g.Imports(cur) {
			if _, seen := prev[next]; !seen {
				prev[next] = cur
				queue = append(queue, next)
			}
		}
	}
	return nil
}

// HasCycles reports whether any import closed a cycle.
func (g *ImportGraph) HasCycles() bool {
	return len(g.cycles) > 0
}

// Cycles returns every recorded cycle as a closed path, e.g. [A B A].
func (g *ImportGraph) Cycles() [][]string {
	out := make([][]string, len(g.cycles))
	for i, c := range g.cycles {
		out[i] = slices.Clone(c)
	}
	return out
}

// Classes returns all vertices sorted by name.
func (g *ImportGraph) Classes() []string {
	return g.dag.GetVertices()
}

// Contains reports whether name is a vertex.
func (g *ImportGraph) Contains(name string) bool {
	return g.dag.Contains(name)
}

// Imports returns the classes name imports, in declaration order.
func (g *ImportGraph) Imports(name string) []string {
	v, ok := g.dag.Vertices[name]
	if !ok {
		return nil
	}
	out := make([]string, 0, len(v.Edges))
	for to := range v.Edges {
		out = append(out, to)
	}
	slices.SortFunc(out, func(a, b string) int {
		return edgeIndex(v.Edges[a]) - edgeIndex(v.Edges[b])
	})
	return out
}

// ImportedBy returns the classes importing name, sorted.
func (g *ImportGraph) ImportedBy(name string) []string {
	var out []string
	for _, e := range g.dag.GetEdges() {
		if e[1] == name {
			out = append(out, e[0])
		}
	}
	return out
}

func edgeIndex(attrs map[string]any) int {
	if i, ok := attrs[attrIndex].(int); ok {
		return i
	}
	return 0
}

// Edges returns all import edges sorted by source, then target.
func (g *ImportGraph) Edges() [][2]string {
	return g.dag.GetEdges()
}

// Roots returns the classes no other class imports, sorted.
func (g *ImportGraph) Roots() []string {
	roots := g.dag.Roots()
	slices.Sort(roots)
	return roots
}

// Order returns every class after all classes it imports. Ties are broken
// by name.
func (g *ImportGraph) Order() ([]string, error) {
	order, err := g.dag.TopologicalSort()
	if err != nil {
		return nil, fmt.Errorf("failed to order import graph: %w", err)
	}
	return order, nil
}

// IsPotential reports whether the class entered the model only as a
// declaring ancestor.
func (g *ImportGraph) IsPotential(name string) bool {
	v, ok := g.dag.Vertices[name]
	if !ok {
		return false
	}
	p, _ := v.Attributes[attrPotential].(bool)
	return p
}
