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

// ModelView is a serializable snapshot of a model used for diagnostics output.
type ModelView struct {
	Classes []ClassView  `json:"classes" yaml:"classes"`
	Aspects []AspectView `json:"aspects,omitempty" yaml:"aspects,omitempty"`
}

// ClassView describes one configuration class.
type ClassView struct {
	Name            string       `json:"name" yaml:"name"`
	Modifiers       []string     `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Potential       bool         `json:"potential,omitempty" yaml:"potential,omitempty"`
	DefaultAutowire string       `json:"defaultAutowire" yaml:"defaultAutowire"`
	DefaultLazy     string       `json:"defaultLazy" yaml:"defaultLazy"`
	DependencyCheck string       `json:"dependencyCheck" yaml:"dependencyCheck"`
	DeclaringClass  string       `json:"declaringClass,omitempty" yaml:"declaringClass,omitempty"`
	Imports         []string     `json:"imports,omitempty" yaml:"imports,omitempty"`
	ResourceBundles [][]string   `json:"resourceBundles,omitempty" yaml:"resourceBundles,omitempty"`
	Methods         []MethodView `json:"methods,omitempty" yaml:"methods,omitempty"`
}

// MethodView describes one factory method.
type MethodView struct {
	Name        string   `json:"name" yaml:"name"`
	Kind        string   `json:"kind" yaml:"kind"`
	Modifiers   []string `json:"modifiers,omitempty" yaml:"modifiers,omitempty"`
	Scope       string   `json:"scope,omitempty" yaml:"scope,omitempty"`
	Aliases     []string `json:"aliases,omitempty" yaml:"aliases,omitempty"`
	Final       bool     `json:"final,omitempty" yaml:"final,omitempty"`
	ScopedProxy bool     `json:"scopedProxy,omitempty" yaml:"scopedProxy,omitempty"`
	Binding     string   `json:"binding,omitempty" yaml:"binding,omitempty"`
	ReturnType  string   `json:"returnType,omitempty" yaml:"returnType,omitempty"`
}

// AspectView describes one aspect class.
type AspectView struct {
	Name      string `json:"name" yaml:"name"`
	PerClause string `json:"perClause,omitempty" yaml:"perClause,omitempty"`
	Bare      bool   `json:"bare,omitempty" yaml:"bare,omitempty"`
}

// View returns the flattened closure of the model in render order.
func (m *ConfigurationModel) View() ModelView {
	var v ModelView
	for _, c := range m.AllClasses() {
		v.Classes = append(v.Classes, c.view())
	}
	for _, a := range m.AspectClasses() {
		av := AspectView{Name: a.Name, Bare: a.Metadata == nil}
		if a.Metadata != nil {
			av.PerClause = a.Metadata.PerClause
		}
		v.Aspects = append(v.Aspects, av)
	}
	return v
}

func (c *ConfigurationClass) view() ClassView {
	cv := ClassView{
		Name:            c.name,
		Modifiers:       c.modifiers.Names(),
		Potential:       c.potential,
		DefaultAutowire: c.metadata.DefaultAutowire.String(),
		DefaultLazy:     c.metadata.DefaultLazy.String(),
		DependencyCheck: c.metadata.DefaultDependencyCheck.String(),
	}
	if c.declaring != nil {
		cv.DeclaringClass = c.declaring.name
	}
	for _, imp := range c.imports {
		cv.Imports = append(cv.Imports, imp.name)
	}
	for _, rb := range c.resourceBundles {
		cv.ResourceBundles = append(cv.ResourceBundles, rb.Basenames)
	}
	for _, b := range c.BeanMethods() {
		cv.Methods = append(cv.Methods, MethodView{
			Name:        b.Name,
			Kind:        string(KindBean),
			Modifiers:   b.Modifiers.Names(),
			Scope:       b.Metadata.Scope,
			Aliases:     b.Metadata.Aliases,
			Final:       !b.AllowsOverriding(),
			ScopedProxy: b.IsScopedProxy(),
		})
	}
	for _, e := range c.ExternalBeanMethods() {
		cv.Methods = append(cv.Methods, MethodView{
			Name:      e.Name,
			Kind:      string(KindExternalBean),
			Modifiers: e.Modifiers.Names(),
			Binding:   e.Binding(),
		})
	}
	for _, e := range c.ExternalValueMethods() {
		cv.Methods = append(cv.Methods, MethodView{
			Name:       e.Name,
			Kind:       string(KindExternalValue),
			Modifiers:  e.Modifiers.Names(),
			ReturnType: e.ReturnType,
			Binding:    e.Key(),
		})
	}
	for _, a := range c.AutoBeanMethods() {
		cv.Methods = append(cv.Methods, MethodView{
			Name:       a.Name,
			Kind:       string(KindAutoBean),
			Modifiers:  a.Modifiers.Names(),
			ReturnType: a.ReturnType,
		})
	}
	return cv
}
