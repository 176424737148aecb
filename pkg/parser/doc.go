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

// Package parser converts class descriptors into model entities.
//
// Parse resolves a class through a descriptor.Source and builds its subtree:
// class metadata (never absent), the declaring class, imports in
// declaration order, resource bundles, aspect references and the factory
// methods classified by marker. The parsed class is appended to the target
// model as a top-level class:
//
//	m := model.New()
//	p := parser.New(catalog, m, parser.WithListeners(chain))
//	if err := p.ParseAll("com.acme.AppConfig", "com.acme.DataConfig"); err != nil {
//	    return err
//	}
//
// Classes are memoised by name, so a class imported from several roots is
// parsed once. A stack of classes under construction detects import cycles,
// which fail with ErrCodeCircularImport. Unresolvable classes fail with
// ErrCodeClassNotFound; self-contradictory markers (a scoped proxy without
// the bean marker, more than one factory marker) fail with
// ErrCodeMalformedConfiguration. Parsing never accumulates errors: the first
// failure aborts.
package parser
