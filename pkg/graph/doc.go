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

// Package graph builds the import graph of a configuration model.
//
// Every class of the model closure is a vertex and every import an edge from
// the importing class to the imported one. The graph is backed by the OCM
// directed acyclic graph: an import that would close a cycle is rejected by
// the graph and recorded as a cycle path instead, so Order can always
// produce a topological order (imports before importers).
//
//	g := graph.Build(m)
//	for _, cycle := range g.Cycles() {
//	    fmt.Println(strings.Join(cycle, " -> "))
//	}
//	order, _ := g.Order()
//
// The validator uses Cycles to report circular imports in programmatically
// assembled models; the CLI graph command emits View.
package graph
