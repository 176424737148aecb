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

// Package model defines the structural intermediate representation of
// configuration classes.
//
// # Entities
//
//   - ConfigurationClass: one declarative unit with owned (bean), external
//     and auto bean methods, ordered imports, an optional declaring
//     (enclosing) class and ordered resource bundle declarations
//   - BeanMethod, ExternalBeanMethod, AutoBeanMethod: the three factory
//     method kinds
//   - AspectClass: a class-level aspect declaration
//   - ConfigurationModel: ordered top-level classes plus the aspect set
//
// # Equality
//
// Equality is structural. Method collections compare as sets, while imports,
// resource bundles and top-level classes compare in order because order
// encodes override precedence:
//
//	a := model.New().Add(model.NewConfigurationClass("com.acme.A").
//	    AddBeanMethod(model.NewBeanMethod("x", model.ModPublic)).
//	    AddBeanMethod(model.NewBeanMethod("y", model.ModPublic)))
//	b := model.New().Add(model.NewConfigurationClass("com.acme.A").
//	    AddBeanMethod(model.NewBeanMethod("y", model.ModPublic)).
//	    AddBeanMethod(model.NewBeanMethod("x", model.ModPublic)))
//	a.Equal(b) // true
//
// # Closure
//
// ConfigurationModel.AllClasses flattens every top-level class into the
// authoritative render order: declaring chain, imports, then the class
// itself. Entities are assembled by a parser and are not mutated once handed
// to the validator and renderer.
package model
