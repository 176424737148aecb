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
	"strings"
)

// Scope names understood by the container.
const (
	ScopeSingleton = "singleton"
	ScopePrototype = "prototype"
)

// Autowire selects how the container injects dependencies into a record.
type Autowire int

const (
	// AutowireInherited means the value was not set and falls back to the
	// class-level default.
	AutowireInherited Autowire = iota
	AutowireNo
	AutowireByName
	AutowireByType
	AutowireConstructor
)

var autowireNames = map[Autowire]string{
	AutowireInherited:   "inherited",
	AutowireNo:          "no",
	AutowireByName:      "byName",
	AutowireByType:      "byType",
	AutowireConstructor: "constructor",
}

// String returns the descriptor keyword for the mode.
func (a Autowire) String() string {
	if s, ok := autowireNames[a]; ok {
		return s
	}
	return fmt.Sprintf("Autowire(%d)", int(a))
}

// MarshalText implements encoding.TextMarshaler.
func (a Autowire) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// ParseAutowire parses a descriptor keyword. The empty string is AutowireInherited.
func ParseAutowire(s string) (Autowire, error) {
	if strings.TrimSpace(s) == "" {
		return AutowireInherited, nil
	}
	for a, name := range autowireNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return a, nil
		}
	}
	return AutowireInherited, fmt.Errorf("unknown autowire mode %q", s)
}

// Tristate is a boolean that can be left unspecified.
type Tristate int

const (
	Unspecified Tristate = iota
	True
	False
)

// String returns "unspecified", "true" or "false".
func (t Tristate) String() string {
	switch t {
	case True:
		return "true"
	case False:
		return "false"
	default:
		return "unspecified"
	}
}

// ParseTristate parses "true", "false" or the empty string.
func ParseTristate(s string) (Tristate, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "unspecified":
		return Unspecified, nil
	case "true":
		return True, nil
	case "false":
		return False, nil
	default:
		return Unspecified, fmt.Errorf("invalid boolean value %q", s)
	}
}

// TristateOf converts an optional bool.
func TristateOf(b *bool) Tristate {
	switch {
	case b == nil:
		return Unspecified
	case *b:
		return True
	default:
		return False
	}
}

// DependencyCheck is the class-level dependency check policy.
type DependencyCheck int

const (
	DependencyCheckNone DependencyCheck = iota
	DependencyCheckObjects
	DependencyCheckSimple
	DependencyCheckAll
)

var dependencyCheckNames = map[DependencyCheck]string{
	DependencyCheckNone:    "none",
	DependencyCheckObjects: "objects",
	DependencyCheckSimple:  "simple",
	DependencyCheckAll:     "all",
}

// String returns the descriptor keyword for the policy.
func (d DependencyCheck) String() string {
	if s, ok := dependencyCheckNames[d]; ok {
		return s
	}
	return fmt.Sprintf("DependencyCheck(%d)", int(d))
}

// ParseDependencyCheck parses a descriptor keyword. The empty string is none.
func ParseDependencyCheck(s string) (DependencyCheck, error) {
	if strings.TrimSpace(s) == "" {
		return DependencyCheckNone, nil
	}
	for d, name := range dependencyCheckNames {
		if strings.EqualFold(name, strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return DependencyCheckNone, fmt.Errorf("unknown dependency check %q", s)
}

// ConfigurationMetadata holds the class-level defaults of a configuration class.
type ConfigurationMetadata struct {
	DefaultAutowire        Autowire
	DefaultLazy            Tristate
	DefaultDependencyCheck DependencyCheck
}

// DefaultConfigurationMetadata returns the "no special behavior" metadata
// assigned to classes that carry no configuration marker.
func DefaultConfigurationMetadata() ConfigurationMetadata {
	return ConfigurationMetadata{
		DefaultAutowire:        AutowireNo,
		DefaultLazy:            False,
		DefaultDependencyCheck: DependencyCheckNone,
	}
}

// BeanMetadata is the metadata of an owned factory method.
type BeanMetadata struct {
	Scope           string
	Autowire        Autowire
	Aliases         []string
	Primary         Tristate
	Lazy            Tristate
	AllowOverriding bool
	InitMethod      string
	DestroyMethod   string
}

// DefaultBeanMetadata returns singleton scope with overriding allowed.
func DefaultBeanMetadata() BeanMetadata {
	return BeanMetadata{
		Scope:           ScopeSingleton,
		AllowOverriding: true,
	}
}

// Equal compares two metadata values; alias order is significant.
func (b BeanMetadata) Equal(o BeanMetadata) bool {
	return b.Scope == o.Scope &&
		b.Autowire == o.Autowire &&
		slices.Equal(b.Aliases, o.Aliases) &&
		b.Primary == o.Primary &&
		b.Lazy == o.Lazy &&
		b.AllowOverriding == o.AllowOverriding &&
		b.InitMethod == o.InitMethod &&
		b.DestroyMethod == o.DestroyMethod
}

// ScopedProxyMetadata marks a bean method whose record is split into a hidden
// target and a visible proxy.
type ScopedProxyMetadata struct {
	// ProxyTargetClass proxies the concrete type instead of its interfaces.
	ProxyTargetClass bool
}

// AspectMetadata is the metadata of an aspect class.
type AspectMetadata struct {
	PerClause string
}

// ResourceBundles is one resource-bundle declaration on a class.
type ResourceBundles struct {
	Basenames []string
}

// Equal compares basenames in order.
func (r ResourceBundles) Equal(o ResourceBundles) bool {
	return slices.Equal(r.Basenames, o.Basenames)
}
