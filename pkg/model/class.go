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
	"sort"
	"strings"
)

// ConfigurationClass is one declarative configuration unit.
//
// Method collections have set semantics keyed by method name; imports and
// resource bundles are ordered because order encodes override precedence.
type ConfigurationClass struct {
	name      string
	modifiers Modifiers
	metadata  ConfigurationMetadata
	potential bool

	beanMethods     map[string]*BeanMethod
	externalMethods map[string]*ExternalBeanMethod
	valueMethods    map[string]*ExternalValueMethod
	autoMethods     map[string]*AutoBeanMethod

	imports         []*ConfigurationClass
	declaring       *ConfigurationClass
	resourceBundles []ResourceBundles
}

// ClassOption configures a ConfigurationClass at construction.
type ClassOption func(*ConfigurationClass)

// WithModifiers sets the class modifier flags.
func WithModifiers(mods Modifiers) ClassOption {
	return func(c *ConfigurationClass) {
		c.modifiers = mods
	}
}

// WithMetadata sets the class-level metadata.
func WithMetadata(md ConfigurationMetadata) ClassOption {
	return func(c *ConfigurationClass) {
		c.metadata = md
	}
}

// AsPotential marks a class that entered the model only as a declaring
// ancestor and carries no configuration marker of its own.
func AsPotential() ClassOption {
	return func(c *ConfigurationClass) {
		c.potential = true
	}
}

// NewConfigurationClass creates a class with default metadata unless
// overridden by an option.
func NewConfigurationClass(name string, opts ...ClassOption) *ConfigurationClass {
	c := &ConfigurationClass{
		name:            name,
		metadata:        DefaultConfigurationMetadata(),
		beanMethods:     make(map[string]*BeanMethod),
		externalMethods: make(map[string]*ExternalBeanMethod),
		valueMethods:    make(map[string]*ExternalValueMethod),
		autoMethods:     make(map[string]*AutoBeanMethod),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the qualified class name.
func (c *ConfigurationClass) Name() string { return c.name }

// SimpleName returns the last segment of the qualified name.
func (c *ConfigurationClass) SimpleName() string {
	idx := strings.LastIndexAny(c.name, ".$")
	return c.name[idx+1:]
}

// Modifiers returns the class modifier flags.
func (c *ConfigurationClass) Modifiers() Modifiers { return c.modifiers }

// Metadata returns the class-level metadata; it is never absent.
func (c *ConfigurationClass) Metadata() ConfigurationMetadata { return c.metadata }

// IsPotential reports whether the class is only a declaring ancestor.
func (c *ConfigurationClass) IsPotential() bool { return c.potential }

// AddBeanMethod adds or replaces the bean method with the same name.
func (c *ConfigurationClass) AddBeanMethod(m *BeanMethod) *ConfigurationClass {
	c.beanMethods[m.Name] = m
	return c
}

// AddExternalBeanMethod adds or replaces the external method with the same name.
func (c *ConfigurationClass) AddExternalBeanMethod(m *ExternalBeanMethod) *ConfigurationClass {
	c.externalMethods[m.Name] = m
	return c
}

// AddExternalValueMethod adds or replaces the external value method with the same name.
func (c *ConfigurationClass) AddExternalValueMethod(m *ExternalValueMethod) *ConfigurationClass {
	c.valueMethods[m.Name] = m
	return c
}

// AddAutoBeanMethod adds or replaces the auto bean method with the same name.
func (c *ConfigurationClass) AddAutoBeanMethod(m *AutoBeanMethod) *ConfigurationClass {
	c.autoMethods[m.Name] = m
	return c
}

// AddImport appends an imported class.
func (c *ConfigurationClass) AddImport(imported *ConfigurationClass) *ConfigurationClass {
	c.imports = append(c.imports, imported)
	return c
}

// SetDeclaringClass links the enclosing class.
func (c *ConfigurationClass) SetDeclaringClass(declaring *ConfigurationClass) *ConfigurationClass {
	c.declaring = declaring
	return c
}

// AddResourceBundles appends a resource bundle declaration.
func (c *ConfigurationClass) AddResourceBundles(rb ResourceBundles) *ConfigurationClass {
	c.resourceBundles = append(c.resourceBundles, rb)
	return c
}

// BeanMethods returns the bean methods sorted by name.
func (c *ConfigurationClass) BeanMethods() []*BeanMethod {
	return sortedValues(c.beanMethods)
}

// ExternalBeanMethods returns the external bean methods sorted by name.
func (c *ConfigurationClass) ExternalBeanMethods() []*ExternalBeanMethod {
	return sortedValues(c.externalMethods)
}

// ExternalValueMethods returns the external value methods sorted by name.
func (c *ConfigurationClass) ExternalValueMethods() []*ExternalValueMethod {
	return sortedValues(c.valueMethods)
}

// AutoBeanMethods returns the auto bean methods sorted by name.
func (c *ConfigurationClass) AutoBeanMethods() []*AutoBeanMethod {
	return sortedValues(c.autoMethods)
}

// FinalBeanMethods returns the bean methods that may not be overridden.
func (c *ConfigurationClass) FinalBeanMethods() []*BeanMethod {
	var out []*BeanMethod
	for _, m := range c.BeanMethods() {
		if !m.AllowsOverriding() {
			out = append(out, m)
		}
	}
	return out
}

// ContainsBeanMethod reports whether a bean method with name is declared.
func (c *ConfigurationClass) ContainsBeanMethod(name string) bool {
	_, ok := c.beanMethods[name]
	return ok
}

// BeanMethod returns the bean method with name.
func (c *ConfigurationClass) BeanMethod(name string) (*BeanMethod, bool) {
	m, ok := c.beanMethods[name]
	return m, ok
}

// Imports returns the imported classes in declaration order.
func (c *ConfigurationClass) Imports() []*ConfigurationClass {
	return slices.Clone(c.imports)
}

// DeclaringClass returns the enclosing class or nil.
func (c *ConfigurationClass) DeclaringClass() *ConfigurationClass { return c.declaring }

// ResourceBundles returns the resource bundle declarations in order.
func (c *ConfigurationClass) ResourceBundles() []ResourceBundles {
	return slices.Clone(c.resourceBundles)
}

// Methods returns every factory method of the class, bean methods first.
func (c *ConfigurationClass) Methods() []Method {
	out := make([]Method, 0, len(c.beanMethods)+len(c.externalMethods)+len(c.valueMethods)+len(c.autoMethods))
	for _, m := range c.BeanMethods() {
		out = append(out, m)
	}
	for _, m := range c.ExternalBeanMethods() {
		out = append(out, m)
	}
	for _, m := range c.ExternalValueMethods() {
		out = append(out, m)
	}
	for _, m := range c.AutoBeanMethods() {
		out = append(out, m)
	}
	return out
}

// SelfAndAllImports returns the import closure followed by the class itself.
func (c *ConfigurationClass) SelfAndAllImports() []*ConfigurationClass {
	var out []*ConfigurationClass
	seen := make(map[*ConfigurationClass]bool)
	var walk func(*ConfigurationClass)
	walk = func(cc *ConfigurationClass) {
		if seen[cc] {
			return
		}
		seen[cc] = true
		for _, imp := range cc.imports {
			walk(imp)
		}
		out = append(out, cc)
	}
	walk(c)
	return out
}

// Equal reports structural equality, including imports and the declaring chain.
func (c *ConfigurationClass) Equal(o *ConfigurationClass) bool {
	return classEqual(c, o, make(map[[2]*ConfigurationClass]bool))
}

func classEqual(a, b *ConfigurationClass, seen map[[2]*ConfigurationClass]bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a == b {
		return true
	}
	key := [2]*ConfigurationClass{a, b}
	if seen[key] {
		return true
	}
	seen[key] = true

	if a.name != b.name ||
		a.modifiers != b.modifiers ||
		a.metadata != b.metadata ||
		a.potential != b.potential {
		return false
	}
	if !mapEqual(a.beanMethods, b.beanMethods, (*BeanMethod).Equal) ||
		!mapEqual(a.externalMethods, b.externalMethods, (*ExternalBeanMethod).Equal) ||
		!mapEqual(a.valueMethods, b.valueMethods, (*ExternalValueMethod).Equal) ||
		!mapEqual(a.autoMethods, b.autoMethods, (*AutoBeanMethod).Equal) {
		return false
	}
	if !slices.EqualFunc(a.resourceBundles, b.resourceBundles, ResourceBundles.Equal) {
		return false
	}
	if len(a.imports) != len(b.imports) {
		return false
	}
	for i := range a.imports {
		if !classEqual(a.imports[i], b.imports[i], seen) {
			return false
		}
	}
	return classEqual(a.declaring, b.declaring, seen)
}

// String implements fmt.Stringer.
func (c *ConfigurationClass) String() string {
	return fmt.Sprintf("ConfigurationClass(%s; beans=%d; external=%d; auto=%d; imports=%d)",
		c.name, len(c.beanMethods), len(c.externalMethods), len(c.autoMethods), len(c.imports))
}

func mapEqual[V any](a, b map[string]V, eq func(V, V) bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k, va := range a {
		vb, ok := b[k]
		if !ok || !eq(va, vb) {
			return false
		}
	}
	return true
}

func sortedValues[V any](m map[string]V) []V {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]V, 0, len(keys))
	for _, k := range keys {
		out = append(out, m[k])
	}
	return out
}
