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

// Package renderer lowers a validated configuration model into registry
// records.
//
// For every class of the flattened model the renderer registers, in order:
//
//  1. a configuration record keyed by the class name
//  2. the shared valueSource record for resource bundles
//  3. one factory-method record per bean method, plus its aliases
//  4. one constructed record per auto bean method
//
// Aspect classes are registered last. Non-public methods go to the hidden
// scope. A scoped-proxy bean becomes a hidden scopedTarget.<name> record and
// a visible proxy:
//
//	reg := registry.NewMemory()
//	r := renderer.New(reg, renderer.WithNamingStrategy(renderer.QualifiedNameStrategy{}))
//	n, err := r.Render(m)
//
// Render returns the number of records registered during the pass, including
// those registered by listeners. Result returns the per-class breakdown.
package renderer
