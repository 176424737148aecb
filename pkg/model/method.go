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
	"strings"
	"unicode"
)

// MethodKind identifies the marker a classified method carries.
type MethodKind string

const (
	KindBean          MethodKind = "bean"
	KindExternalBean  MethodKind = "external bean"
	KindExternalValue MethodKind = "external value"
	KindAutoBean      MethodKind = "auto bean"
)

// Method is implemented by every classified method kind.
type Method interface {
	MethodName() string
	MethodModifiers() Modifiers
	Kind() MethodKind
}

// BeanMethod is an owned factory method: rendering it yields a record whose
// instance is obtained by invoking the method on the configuration instance.
type BeanMethod struct {
	Name      string
	Modifiers Modifiers
	Metadata  BeanMetadata

	// ScopedProxy is nil unless the method carries the scoped proxy marker.
	ScopedProxy *ScopedProxyMetadata

	// HotSwappable marks the produced object for hot-swap wrapping.
	HotSwappable bool
}

// NewBeanMethod returns a bean method with default metadata.
func NewBeanMethod(name string, mods Modifiers) *BeanMethod {
	return &BeanMethod{
		Name:      name,
		Modifiers: mods,
		Metadata:  DefaultBeanMetadata(),
	}
}

func (b *BeanMethod) MethodName() string         { return b.Name }
func (b *BeanMethod) MethodModifiers() Modifiers { return b.Modifiers }
func (b *BeanMethod) Kind() MethodKind           { return KindBean }

// IsScopedProxy reports whether the record must be split into target and proxy.
func (b *BeanMethod) IsScopedProxy() bool {
	return b.ScopedProxy != nil
}

// AllowsOverriding reports whether later declarations may replace this bean.
func (b *BeanMethod) AllowsOverriding() bool {
	return b.Metadata.AllowOverriding
}

// Equal compares all attributes.
func (b *BeanMethod) Equal(o *BeanMethod) bool {
	if b == nil || o == nil {
		return b == o
	}
	if (b.ScopedProxy == nil) != (o.ScopedProxy == nil) {
		return false
	}
	if b.ScopedProxy != nil && *b.ScopedProxy != *o.ScopedProxy {
		return false
	}
	return b.Name == o.Name &&
		b.Modifiers == o.Modifiers &&
		b.HotSwappable == o.HotSwappable &&
		b.Metadata.Equal(o.Metadata)
}

// ExternalBeanMethod declares a dependency supplied from outside the class.
type ExternalBeanMethod struct {
	Name      string
	Modifiers Modifiers

	// BindingName is the record key the reference resolves to. Empty means
	// the method name.
	BindingName string
}

func (e *ExternalBeanMethod) MethodName() string         { return e.Name }
func (e *ExternalBeanMethod) MethodModifiers() Modifiers { return e.Modifiers }
func (e *ExternalBeanMethod) Kind() MethodKind           { return KindExternalBean }

// Binding returns the record key the method resolves to.
func (e *ExternalBeanMethod) Binding() string {
	if e.BindingName != "" {
		return e.BindingName
	}
	return e.Name
}

// Equal compares all attributes.
func (e *ExternalBeanMethod) Equal(o *ExternalBeanMethod) bool {
	if e == nil || o == nil {
		return e == o
	}
	return *e == *o
}

// ExternalValueMethod declares a value looked up by key in the value source
// registered for the class's resource bundles.
type ExternalValueMethod struct {
	Name       string
	Modifiers  Modifiers
	ReturnType string

	// ValueName is the lookup key. Empty means the key is derived from the
	// method name.
	ValueName string
}

func (e *ExternalValueMethod) MethodName() string         { return e.Name }
func (e *ExternalValueMethod) MethodModifiers() Modifiers { return e.Modifiers }
func (e *ExternalValueMethod) Kind() MethodKind           { return KindExternalValue }

// Key returns the value lookup key. Without an explicit name a getter
// prefix is stripped: getUrl resolves "url", url resolves "url".
func (e *ExternalValueMethod) Key() string {
	if e.ValueName != "" {
		return e.ValueName
	}
	name := e.Name
	if len(name) > 3 && strings.HasPrefix(name, "get") && unicode.IsUpper(rune(name[3])) {
		return strings.ToLower(name[3:4]) + name[4:]
	}
	return name
}

// Equal compares all attributes.
func (e *ExternalValueMethod) Equal(o *ExternalValueMethod) bool {
	if e == nil || o == nil {
		return e == o
	}
	return *e == *o
}

// AutoBeanMethod declares a bean constructed from its return type and
// autowired by the container.
type AutoBeanMethod struct {
	Name       string
	Modifiers  Modifiers
	ReturnType string
	Autowire   Autowire
}

func (a *AutoBeanMethod) MethodName() string         { return a.Name }
func (a *AutoBeanMethod) MethodModifiers() Modifiers { return a.Modifiers }
func (a *AutoBeanMethod) Kind() MethodKind           { return KindAutoBean }

// Equal compares all attributes.
func (a *AutoBeanMethod) Equal(o *AutoBeanMethod) bool {
	if a == nil || o == nil {
		return a == o
	}
	return *a == *o
}
