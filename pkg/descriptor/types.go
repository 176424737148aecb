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

package descriptor

// File is the top-level document of a descriptor file. A file may describe
// any number of classes.
type File struct {
	Classes []*Class `json:"classes" yaml:"classes" hcl:"class,block" validate:"dive,required"`
}

// Class describes one class and the markers it carries.
type Class struct {
	// Name is the qualified class name, e.g. "com.acme.AppConfig". Nested
	// classes use '$' as separator: "com.acme.Outer$Inner".
	Name string `json:"name" yaml:"name" hcl:"name,label" validate:"required,classname"`

	Modifiers []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty" hcl:"modifiers,optional" validate:"dive,modifier"`

	// DeclaringClass is the enclosing class of a nested class.
	DeclaringClass string `json:"declaringClass,omitempty" yaml:"declaringClass,omitempty" hcl:"declaring_class,optional" validate:"omitempty,classname"`

	Configuration *ConfigurationMarker `json:"configuration,omitempty" yaml:"configuration,omitempty" hcl:"configuration,block"`

	Imports         []string                `json:"imports,omitempty" yaml:"imports,omitempty" hcl:"imports,optional" validate:"dive,classname"`
	Aspects         []string                `json:"aspects,omitempty" yaml:"aspects,omitempty" hcl:"aspects,optional" validate:"dive,classname"`
	Aspect          *AspectMarker           `json:"aspect,omitempty" yaml:"aspect,omitempty" hcl:"aspect,block"`
	ResourceBundles []ResourceBundlesMarker `json:"resourceBundles,omitempty" yaml:"resourceBundles,omitempty" hcl:"resource_bundles,block" validate:"dive"`

	Methods []*Method `json:"methods,omitempty" yaml:"methods,omitempty" hcl:"method,block" validate:"dive,required"`
}

// ConfigurationMarker carries the class-level defaults.
type ConfigurationMarker struct {
	DefaultAutowire string `json:"defaultAutowire,omitempty" yaml:"defaultAutowire,omitempty" hcl:"default_autowire,optional" validate:"omitempty,autowire"`
	DefaultLazy     *bool  `json:"defaultLazy,omitempty" yaml:"defaultLazy,omitempty" hcl:"default_lazy,optional"`
	DependencyCheck string `json:"dependencyCheck,omitempty" yaml:"dependencyCheck,omitempty" hcl:"dependency_check,optional" validate:"omitempty,oneof=none objects simple all"`
}

// Method describes one declared method and its markers.
type Method struct {
	Name       string   `json:"name" yaml:"name" hcl:"name,label" validate:"required,identifier"`
	Modifiers  []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty" hcl:"modifiers,optional" validate:"dive,modifier"`
	ReturnType string   `json:"returnType,omitempty" yaml:"returnType,omitempty" hcl:"return_type,optional" validate:"omitempty,classname"`

	Bean         *BeanMarker         `json:"bean,omitempty" yaml:"bean,omitempty" hcl:"bean,block"`
	ExternalBean  *ExternalBeanMarker  `json:"externalBean,omitempty" yaml:"externalBean,omitempty" hcl:"external_bean,block"`
	ExternalValue *ExternalValueMarker `json:"externalValue,omitempty" yaml:"externalValue,omitempty" hcl:"external_value,block"`
	AutoBean      *AutoBeanMarker      `json:"autoBean,omitempty" yaml:"autoBean,omitempty" hcl:"auto_bean,block"`
	ScopedProxy   *ScopedProxyMarker   `json:"scopedProxy,omitempty" yaml:"scopedProxy,omitempty" hcl:"scoped_proxy,block"`
	HotSwappable  bool                 `json:"hotSwappable,omitempty" yaml:"hotSwappable,omitempty" hcl:"hot_swappable,optional"`
}

// BeanMarker marks an owned factory method.
type BeanMarker struct {
	Scope    string   `json:"scope,omitempty" yaml:"scope,omitempty" hcl:"scope,optional" validate:"omitempty,identifier"`
	Autowire string   `json:"autowire,omitempty" yaml:"autowire,omitempty" hcl:"autowire,optional" validate:"omitempty,autowire"`
	Aliases  []string `json:"aliases,omitempty" yaml:"aliases,omitempty" hcl:"aliases,optional" validate:"unique,dive,required"`
	Primary  *bool    `json:"primary,omitempty" yaml:"primary,omitempty" hcl:"primary,optional"`
	Lazy     *bool    `json:"lazy,omitempty" yaml:"lazy,omitempty" hcl:"lazy,optional"`

	// AllowOverriding defaults to true when unset.
	AllowOverriding *bool `json:"allowOverriding,omitempty" yaml:"allowOverriding,omitempty" hcl:"allow_overriding,optional"`

	InitMethod    string `json:"initMethod,omitempty" yaml:"initMethod,omitempty" hcl:"init_method,optional" validate:"omitempty,identifier"`
	DestroyMethod string `json:"destroyMethod,omitempty" yaml:"destroyMethod,omitempty" hcl:"destroy_method,optional" validate:"omitempty,identifier"`
}

// ExternalBeanMarker marks a method whose bean is supplied from outside.
type ExternalBeanMarker struct {
	// Name is the record key the reference binds to; empty means the method name.
	Name string `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
}

// ExternalValueMarker marks a method whose value is resolved from the
// resource bundle value source.
type ExternalValueMarker struct {
	// Name is the lookup key; empty derives it from the method name.
	Name string `json:"name,omitempty" yaml:"name,omitempty" hcl:"name,optional"`
}

// AutoBeanMarker marks a method whose bean is constructed from the return
// type and autowired.
type AutoBeanMarker struct {
	Autowire string `json:"autowire,omitempty" yaml:"autowire,omitempty" hcl:"autowire,optional" validate:"omitempty,autowire"`
}

// ScopedProxyMarker marks a bean method whose record is split into a hidden
// target and a visible proxy.
type ScopedProxyMarker struct {
	ProxyTargetClass bool `json:"proxyTargetClass,omitempty" yaml:"proxyTargetClass,omitempty" hcl:"proxy_target_class,optional"`
}

// AspectMarker marks an aspect class.
type AspectMarker struct {
	PerClause string `json:"perClause,omitempty" yaml:"perClause,omitempty" hcl:"per_clause,optional"`
}

// ResourceBundlesMarker declares message bundle basenames.
type ResourceBundlesMarker struct {
	Basenames []string `json:"basenames" yaml:"basenames" hcl:"basenames" validate:"required,min=1,dive,required"`
}

// FactoryMarkers returns how many method classification markers the method
// carries.
func (m *Method) FactoryMarkers() int {
	n := 0
	if m.Bean != nil {
		n++
	}
	if m.ExternalBean != nil {
		n++
	}
	if m.ExternalValue != nil {
		n++
	}
	if m.AutoBean != nil {
		n++
	}
	return n
}
