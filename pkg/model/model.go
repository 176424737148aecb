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

package model

import (
	"fmt"
	"slices"
)

// AspectClass is a class-level aspect declaration registered separately from
// the configuration classes.
type AspectClass struct {
	Name string

	// Metadata is nil when the referenced class carries no aspect marker.
	Metadata *AspectMetadata
}

// Equal compares name and metadata.
func (a *AspectClass) Equal(o *AspectClass) bool {
	if a == nil || o == nil {
		return a == o
	}
	if (a.Metadata == nil) != (o.Metadata == nil) {
		return false
	}
	return a.Name == o.Name && (a.Metadata == nil || *a.Metadata == *o.Metadata)
}

// ConfigurationModel is the aggregate root: ordered top-level classes plus a
// set of aspect classes.
type ConfigurationModel struct {
	classes []*ConfigurationClass
	aspects map[string]*AspectClass
}

// New creates an empty model.
func New() *ConfigurationModel {
	return &ConfigurationModel{
		aspects: make(map[string]*AspectClass),
	}
}

// Add appends a top-level configuration class.
func (m *ConfigurationModel) Add(c *ConfigurationClass) *ConfigurationModel {
	m.classes = append(m.classes, c)
	return m
}

// AddAspect adds an aspect class. A later declaration carrying metadata
// replaces an earlier bare one with the same name.
func (m *ConfigurationModel) AddAspect(a *AspectClass) *ConfigurationModel {
	if existing, ok := m.aspects[a.Name]; ok && existing.Metadata != nil {
		return m
	}
	m.aspects[a.Name] = a
	return m
}

// Classes returns the top-level classes in declaration order.
func (m *ConfigurationModel) Classes() []*ConfigurationClass {
	return slices.Clone(m.classes)
}

// AspectClasses returns the aspect classes sorted by name.
func (m *ConfigurationModel) AspectClasses() []*AspectClass {
	return sortedValues(m.aspects)
}

// IsEmpty reports whether the model has no top-level classes.
func (m *ConfigurationModel) IsEmpty() bool {
	return len(m.classes) == 0
}

// AllClasses returns the flattened closure consumed by the renderer: for each
// top-level class its declaring chain, then its imports, then itself. A class
// name that appears more than once keeps only its first position.
func (m *ConfigurationModel) AllClasses() []*ConfigurationClass {
	var out []*ConfigurationClass
	_ = m.WalkClasses(func(_, c *ConfigurationClass) error {
		out = append(out, c)
		return nil
	})
	return out
}

// WalkClasses visits the AllClasses sequence, passing each class together
// with the top-level class whose closure first reached it. Walking stops at
// the first error returned by fn.
func (m *ConfigurationModel) WalkClasses(fn func(root, c *ConfigurationClass) error) error {
	walked := make(map[*ConfigurationClass]bool)
	names := make(map[string]bool)

	var walk func(root, c *ConfigurationClass) error
	walk = func(root, c *ConfigurationClass) error {
		if c == nil || walked[c] {
			return nil
		}
		walked[c] = true
		if err := walk(root, c.declaring); err != nil {
			return err
		}
		for _, imp := range c.imports {
			if err := walk(root, imp); err != nil {
				return err
			}
		}
		if names[c.name] {
			return nil
		}
		names[c.name] = true
		return fn(root, c)
	}

	for _, c := range m.classes {
		if err := walk(c, c); err != nil {
			return err
		}
	}
	return nil
}

// Equal reports structural equality. Top-level class order is significant;
// aspect classes compare as a set.
func (m *ConfigurationModel) Equal(o *ConfigurationModel) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.classes) != len(o.classes) {
		return false
	}
	seen := make(map[[2]*ConfigurationClass]bool)
	for i := range m.classes {
		if !classEqual(m.classes[i], o.classes[i], seen) {
			return false
		}
	}
	return mapEqual(m.aspects, o.aspects, (*AspectClass).Equal)
}

// String implements fmt.Stringer.
func (m *ConfigurationModel) String() string {
	return fmt.Sprintf("ConfigurationModel(classes=%d; aspects=%d)", len(m.classes), len(m.aspects))
}
