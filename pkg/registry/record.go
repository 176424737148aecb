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

package registry

import (
	"fmt"
	"maps"
	"slices"

	"github.com/NVIDIA/confmodel/pkg/model"
)

// Visibility selects the registry scope a record or alias is written to.
type Visibility int

const (
	// VisibilityPublic records are observable from the top-level scope.
	VisibilityPublic Visibility = iota
	// VisibilityHidden records live in the nested scope only.
	VisibilityHidden
)

// String returns "public" or "hidden".
func (v Visibility) String() string {
	if v == VisibilityHidden {
		return "hidden"
	}
	return "public"
}

// MarshalText implements encoding.TextMarshaler.
func (v Visibility) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// VisibilityOf derives the visibility of a record from the modifiers of the
// declaration that produced it.
func VisibilityOf(mods model.Modifiers) Visibility {
	if mods.IsPublic() {
		return VisibilityPublic
	}
	return VisibilityHidden
}

// Kind tells the container how a record's instance is obtained.
type Kind string

const (
	KindConfiguration Kind = "configuration"
	KindFactoryMethod Kind = "factory-method"
	KindConstructed   Kind = "constructed"
	KindScopedProxy   Kind = "scoped-proxy"
	KindValueSource   Kind = "value-source"
	KindAspect        Kind = "aspect"
	KindHotSwapProxy  Kind = "hot-swap-proxy"
)

// Record is one registration record consumed by the object container.
type Record struct {
	Key               string            `json:"key" yaml:"key"`
	Kind              Kind              `json:"kind" yaml:"kind"`
	ClassName         string            `json:"className,omitempty" yaml:"className,omitempty"`
	FactoryOwner      string            `json:"factoryOwner,omitempty" yaml:"factoryOwner,omitempty"`
	FactoryMethodName string            `json:"factoryMethodName,omitempty" yaml:"factoryMethodName,omitempty"`
	Scope             string            `json:"scope,omitempty" yaml:"scope,omitempty"`
	Visibility        Visibility        `json:"visibility" yaml:"visibility"`
	Aliases           []string          `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Primary           bool              `json:"primary,omitempty" yaml:"primary,omitempty"`
	Lazy              bool              `json:"lazy,omitempty" yaml:"lazy,omitempty"`
	InitHook          string            `json:"initHook,omitempty" yaml:"initHook,omitempty"`
	DestroyHook       string            `json:"destroyHook,omitempty" yaml:"destroyHook,omitempty"`
	Autowire          model.Autowire    `json:"autowire" yaml:"autowire"`
	AutowireCandidate bool              `json:"autowireCandidate" yaml:"autowireCandidate"`
	ProxyTarget       string            `json:"proxyTarget,omitempty" yaml:"proxyTarget,omitempty"`
	Basenames         []string          `json:"basenames,omitempty" yaml:"basenames,omitempty"`
	Attributes        map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`

	// Origin is the qualified name of the class whose rendering produced the record.
	Origin string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// SetAttribute sets a free-form attribute, allocating the map on first use.
func (r *Record) SetAttribute(key, value string) {
	if r.Attributes == nil {
		r.Attributes = make(map[string]string)
	}
	r.Attributes[key] = value
}

// Attribute returns an attribute value.
func (r *Record) Attribute(key string) (string, bool) {
	v, ok := r.Attributes[key]
	return v, ok
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	c.Aliases = slices.Clone(r.Aliases)
	c.Basenames = slices.Clone(r.Basenames)
	c.Attributes = maps.Clone(r.Attributes)
	return &c
}

// String implements fmt.Stringer.
func (r *Record) String() string {
	return fmt.Sprintf("Record(%s; kind=%s; visibility=%s)", r.Key, r.Kind, r.Visibility)
}

// Registry is the boundary to the external object container. Implementations
// store records; they do not instantiate anything.
type Registry interface {
	// RegisterRecord stores rec under key in the scope selected by vis.
	RegisterRecord(key string, rec *Record, vis Visibility) error

	// RegisterAlias makes alias resolve to key in the scope selected by vis.
	RegisterAlias(key, alias string, vis Visibility) error

	// Record resolves key, or an alias of it, in the top-level scope.
	Record(key string) (*Record, bool)

	// LinkAncestor makes ancestor the fallback resolution scope of class.
	LinkAncestor(class, ancestor string)

	// RecordCount returns the number of stored records across all scopes.
	RecordCount() int
}

// ImportLinker is implemented by registries that let a class resolve the
// hidden records of the classes it imports.
type ImportLinker interface {
	LinkImport(class, imported string)
}
