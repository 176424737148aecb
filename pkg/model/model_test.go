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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(classes []*ConfigurationClass) []string {
	out := make([]string, 0, len(classes))
	for _, c := range classes {
		out = append(out, c.Name())
	}
	return out
}

func TestConfigurationModel_Equal(t *testing.T) {
	build := func(beanOrder []string, importOrder []string, topOrder []string) *ConfigurationModel {
		m := New()
		for _, top := range topOrder {
			c := NewConfigurationClass(top)
			for _, b := range beanOrder {
				c.AddBeanMethod(NewBeanMethod(b, ModPublic))
			}
			for _, imp := range importOrder {
				c.AddImport(NewConfigurationClass(imp).AddBeanMethod(NewBeanMethod("z", ModPublic)))
			}
			m.Add(c)
		}
		return m
	}

	base := build([]string{"a", "b"}, []string{"I1", "I2"}, []string{"A", "B"})

	tests := []struct {
		name  string
		other *ConfigurationModel
		want  bool
	}{
		{"identical", build([]string{"a", "b"}, []string{"I1", "I2"}, []string{"A", "B"}), true},
		{"bean order ignored", build([]string{"b", "a"}, []string{"I1", "I2"}, []string{"A", "B"}), true},
		{"import order matters", build([]string{"a", "b"}, []string{"I2", "I1"}, []string{"A", "B"}), false},
		{"top-level order matters", build([]string{"a", "b"}, []string{"I1", "I2"}, []string{"B", "A"}), false},
		{"different bean set", build([]string{"a"}, []string{"I1", "I2"}, []string{"A", "B"}), false},
		{"nil", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestConfigurationModel_EqualAspectsAsSet(t *testing.T) {
	a := New().Add(NewConfigurationClass("A")).
		AddAspect(&AspectClass{Name: "X", Metadata: &AspectMetadata{}}).
		AddAspect(&AspectClass{Name: "Y", Metadata: &AspectMetadata{}})
	b := New().Add(NewConfigurationClass("A")).
		AddAspect(&AspectClass{Name: "Y", Metadata: &AspectMetadata{}}).
		AddAspect(&AspectClass{Name: "X", Metadata: &AspectMetadata{}})
	c := New().Add(NewConfigurationClass("A")).
		AddAspect(&AspectClass{Name: "X", Metadata: &AspectMetadata{PerClause: "perthis"}}).
		AddAspect(&AspectClass{Name: "Y", Metadata: &AspectMetadata{}})

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestConfigurationModel_AddAspectKeepsMetadata(t *testing.T) {
	m := New().
		AddAspect(&AspectClass{Name: "X", Metadata: &AspectMetadata{PerClause: "perthis"}}).
		AddAspect(&AspectClass{Name: "X"})

	aspects := m.AspectClasses()
	require.Len(t, aspects, 1)
	require.NotNil(t, aspects[0].Metadata)
	assert.Equal(t, "perthis", aspects[0].Metadata.PerClause)

	m = New().
		AddAspect(&AspectClass{Name: "X"}).
		AddAspect(&AspectClass{Name: "X", Metadata: &AspectMetadata{}})
	assert.NotNil(t, m.AspectClasses()[0].Metadata)
}

func TestConfigurationModel_AllClassesOrder(t *testing.T) {
	outer := NewConfigurationClass("com.acme.Outer").AddBeanMethod(NewBeanMethod("o", ModPublic))
	i1 := NewConfigurationClass("com.acme.I1").AddBeanMethod(NewBeanMethod("i1", ModPublic))
	i2 := NewConfigurationClass("com.acme.I2").AddImport(i1)
	a := NewConfigurationClass("com.acme.Outer$A").
		SetDeclaringClass(outer).
		AddImport(i2)
	b := NewConfigurationClass("com.acme.B").AddImport(i1)

	m := New().Add(a).Add(b)

	assert.Equal(t,
		[]string{"com.acme.Outer", "com.acme.I1", "com.acme.I2", "com.acme.Outer$A", "com.acme.B"},
		names(m.AllClasses()))
}

func TestConfigurationModel_AllClassesDedupesByName(t *testing.T) {
	shared1 := NewConfigurationClass("com.acme.Shared")
	shared2 := NewConfigurationClass("com.acme.Shared")
	a := NewConfigurationClass("A").AddImport(shared1)
	b := NewConfigurationClass("B").AddImport(shared2)

	m := New().Add(a).Add(b)
	assert.Equal(t, []string{"com.acme.Shared", "A", "B"}, names(m.AllClasses()))
}

func TestConfigurationModel_AllClassesSurvivesCycle(t *testing.T) {
	a := NewConfigurationClass("A")
	b := NewConfigurationClass("B")
	a.AddImport(b)
	b.AddImport(a)

	m := New().Add(a)
	assert.Equal(t, []string{"B", "A"}, names(m.AllClasses()))
	assert.True(t, a.Equal(a))
}

func TestConfigurationClass_SelfAndAllImports(t *testing.T) {
	i1 := NewConfigurationClass("I1")
	i2 := NewConfigurationClass("I2").AddImport(i1)
	c := NewConfigurationClass("C").AddImport(i2).AddImport(NewConfigurationClass("I3"))

	assert.Equal(t, []string{"I1", "I2", "I3", "C"}, names(c.SelfAndAllImports()))
}

func TestConfigurationClass_Equal(t *testing.T) {
	base := func() *ConfigurationClass {
		return NewConfigurationClass("com.acme.App", WithModifiers(ModPublic)).
			AddBeanMethod(NewBeanMethod("a", ModPublic)).
			AddExternalBeanMethod(&ExternalBeanMethod{Name: "ext", Modifiers: ModPublic}).
			AddAutoBeanMethod(&AutoBeanMethod{Name: "auto", ReturnType: "com.acme.Svc"}).
			AddResourceBundles(ResourceBundles{Basenames: []string{"messages"}})
	}

	tests := []struct {
		name   string
		mutate func(*ConfigurationClass) *ConfigurationClass
		want   bool
	}{
		{"identical", func(c *ConfigurationClass) *ConfigurationClass { return c }, true},
		{"extra bean", func(c *ConfigurationClass) *ConfigurationClass {
			return c.AddBeanMethod(NewBeanMethod("b", ModPublic))
		}, false},
		{"bean metadata differs", func(c *ConfigurationClass) *ConfigurationClass {
			m := NewBeanMethod("a", ModPublic)
			m.Metadata.Scope = ScopePrototype
			return c.AddBeanMethod(m)
		}, false},
		{"scoped proxy differs", func(c *ConfigurationClass) *ConfigurationClass {
			m := NewBeanMethod("a", ModPublic)
			m.ScopedProxy = &ScopedProxyMetadata{}
			return c.AddBeanMethod(m)
		}, false},
		{"extra external value", func(c *ConfigurationClass) *ConfigurationClass {
			return c.AddExternalValueMethod(&ExternalValueMethod{Name: "getUrl", ReturnType: "String"})
		}, false},
		{"extra resource bundle", func(c *ConfigurationClass) *ConfigurationClass {
			return c.AddResourceBundles(ResourceBundles{Basenames: []string{"errors"}})
		}, false},
		{"declaring class differs", func(c *ConfigurationClass) *ConfigurationClass {
			return c.SetDeclaringClass(NewConfigurationClass("com.acme.Outer"))
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base().Equal(tt.mutate(base())))
		})
	}
}

func TestExternalValueMethod_Key(t *testing.T) {
	tests := []struct {
		method ExternalValueMethod
		want   string
	}{
		{ExternalValueMethod{Name: "getUrl"}, "url"},
		{ExternalValueMethod{Name: "getURL"}, "uRL"},
		{ExternalValueMethod{Name: "url"}, "url"},
		{ExternalValueMethod{Name: "get"}, "get"},
		{ExternalValueMethod{Name: "getaway"}, "getaway"},
		{ExternalValueMethod{Name: "getUrl", ValueName: "db.url"}, "db.url"},
	}
	for _, tt := range tests {
		t.Run(tt.method.Name+"/"+tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.method.Key())
			assert.Equal(t, KindExternalValue, tt.method.Kind())
		})
	}
}

func TestConfigurationClass_FinalBeanMethods(t *testing.T) {
	final := NewBeanMethod("locked", ModPublic)
	final.Metadata.AllowOverriding = false
	c := NewConfigurationClass("A").
		AddBeanMethod(final).
		AddBeanMethod(NewBeanMethod("open", ModPublic))

	got := c.FinalBeanMethods()
	require.Len(t, got, 1)
	assert.Equal(t, "locked", got[0].Name)
	assert.True(t, c.ContainsBeanMethod("open"))
	assert.False(t, c.ContainsBeanMethod("missing"))
}

func TestConfigurationClass_SimpleName(t *testing.T) {
	assert.Equal(t, "AppConfig", NewConfigurationClass("com.acme.AppConfig").SimpleName())
	assert.Equal(t, "Inner", NewConfigurationClass("com.acme.Outer$Inner").SimpleName())
	assert.Equal(t, "Plain", NewConfigurationClass("Plain").SimpleName())
}

func TestConfigurationClass_DefaultMetadata(t *testing.T) {
	c := NewConfigurationClass("A")
	assert.Equal(t, DefaultConfigurationMetadata(), c.Metadata())
	assert.False(t, c.IsPotential())
	assert.True(t, NewConfigurationClass("B", AsPotential()).IsPotential())
}

func TestModelView(t *testing.T) {
	proxy := NewBeanMethod("session", ModPublic)
	proxy.ScopedProxy = &ScopedProxyMetadata{}
	c := NewConfigurationClass("com.acme.App").
		AddBeanMethod(proxy).
		AddExternalBeanMethod(&ExternalBeanMethod{Name: "ds", BindingName: "dataSource"})
	m := New().Add(c).AddAspect(&AspectClass{Name: "com.acme.Audit"})

	v := m.View()
	require.Len(t, v.Classes, 1)
	require.Len(t, v.Classes[0].Methods, 2)
	assert.True(t, v.Classes[0].Methods[0].ScopedProxy)
	assert.Equal(t, "dataSource", v.Classes[0].Methods[1].Binding)
	require.Len(t, v.Aspects, 1)
	assert.True(t, v.Aspects[0].Bare)
}

func TestConfigurationModel_WalkClassesRoots(t *testing.T) {
	shared := NewConfigurationClass("Shared")
	a := NewConfigurationClass("A").AddImport(shared)
	b := NewConfigurationClass("B").AddImport(shared)

	roots := make(map[string]string)
	err := New().Add(a).Add(b).WalkClasses(func(root, c *ConfigurationClass) error {
		roots[c.Name()] = root.Name()
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"Shared": "A", "A": "A", "B": "B"}, roots)
}
