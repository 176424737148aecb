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

// Package registry defines registration records and the boundary to the
// object container that consumes them.
//
// # Core Types
//
// Record: one registration record (key, kind, factory owner and method,
// scope, visibility, aliases, primary, lazy, hooks, autowire settings).
//
// Registry: the container boundary
//
//	type Registry interface {
//	    RegisterRecord(key string, rec *Record, vis Visibility) error
//	    RegisterAlias(key, alias string, vis Visibility) error
//	    Record(key string) (*Record, bool)
//	    LinkAncestor(class, ancestor string)
//	    RecordCount() int
//	}
//
// # Scopes
//
// Memory keeps two scopes. Public records and aliases are observable through
// Record. Hidden records are written to a nested scope: they never leak into
// the public namespace, but a class, the classes declared inside it and the
// classes importing it can still resolve them through ResolveFrom, which
// walks the links recorded by LinkAncestor and LinkImport.
//
//	reg := registry.NewMemory()
//	_ = reg.RegisterRecord("dataSource", rec, registry.VisibilityHidden)
//	_, ok := reg.Record("dataSource")                          // false
//	_, ok = reg.ResolveFrom("com.acme.AppConfig", "dataSource") // true if produced there
//
// Memory is guarded by a sync.RWMutex because a registry may be shared with
// other populators.
package registry
