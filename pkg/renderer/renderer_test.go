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

package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/header"
	"github.com/NVIDIA/confmodel/pkg/listener"
	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/registry"
)

type aliasCall struct {
	key, alias string
	vis        registry.Visibility
}

// recordingRegistry wraps Memory and records every call.
type recordingRegistry struct {
	*registry.Memory
	records []string
	aliases []aliasCall
}

func newRecordingRegistry() *recordingRegistry {
	return &recordingRegistry{Memory: registry.NewMemory()}
}

func (r *recordingRegistry) RegisterRecord(key string, rec *registry.Record, vis registry.Visibility) error {
	r.records = append(r.records, key)
	return r.Memory.RegisterRecord(key, rec, vis)
}

func (r *recordingRegistry) RegisterAlias(key, alias string, vis registry.Visibility) error {
	r.aliases = append(r.aliases, aliasCall{key: key, alias: alias, vis: vis})
	return r.Memory.RegisterAlias(key, alias, vis)
}

func singleBeanModel(configure func(b *model.BeanMethod)) *model.ConfigurationModel {
	b := model.NewBeanMethod("service", model.ModPublic)
	if configure != nil {
		configure(b)
	}
	return model.New().Add(model.NewConfigurationClass("com.acme.App").AddBeanMethod(b))
}

func TestRender_SingleBean(t *testing.T) {
	reg := registry.NewMemory()
	r := New(reg, WithVersion("1.0.0"))

	n, err := r.Render(singleBeanModel(nil))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, 2, reg.RecordCount())

	cfg, ok := reg.Record("com.acme.App")
	require.True(t, ok)
	assert.Equal(t, registry.KindConfiguration, cfg.Kind)
	v, _ := cfg.Attribute(AttrConfiguration)
	assert.Equal(t, "true", v)

	svc, ok := reg.Record("service")
	require.True(t, ok)
	assert.Equal(t, registry.KindFactoryMethod, svc.Kind)
	assert.Equal(t, "com.acme.App", svc.FactoryOwner)
	assert.Equal(t, "service", svc.FactoryMethodName)
	assert.Equal(t, model.ScopeSingleton, svc.Scope)
	assert.Equal(t, registry.VisibilityPublic, svc.Visibility)
	assert.False(t, svc.Lazy)
	assert.True(t, svc.AutowireCandidate)

	rep := r.Result()
	require.NotNil(t, rep)
	assert.Equal(t, header.KindRenderResult, rep.Kind)
	assert.Equal(t, "1.0.0", rep.Metadata["version"])
	assert.NotEmpty(t, rep.PassID)
	assert.Equal(t, "method", rep.Naming)
	assert.Equal(t, 2, rep.Records)
	assert.Equal(t, 2, rep.ForClass("com.acme.App"))
	assert.Equal(t, 2, rep.ForTopLevel("com.acme.App"))
	assert.Equal(t, 1, rep.Kinds[registry.KindFactoryMethod])
}

func TestRender_ScopedProxy(t *testing.T) {
	reg := registry.NewMemory()
	n, err := New(reg).Render(singleBeanModel(func(b *model.BeanMethod) {
		b.Metadata.Scope = "session"
		b.Metadata.Aliases = []string{"svc"}
		b.ScopedProxy = &model.ScopedProxyMetadata{ProxyTargetClass: true}
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	_, ok := reg.Record("scopedTarget.service")
	assert.False(t, ok, "target is hidden")
	target, ok := reg.HiddenRecord("scopedTarget.service")
	require.True(t, ok)
	assert.Equal(t, registry.KindFactoryMethod, target.Kind)
	assert.Equal(t, "session", target.Scope)
	assert.False(t, target.AutowireCandidate)
	assert.Empty(t, target.Aliases)
	v, _ := target.Attribute(AttrPreserveTargetClass)
	assert.Equal(t, "true", v)

	proxy, ok := reg.Record("service")
	require.True(t, ok)
	assert.Equal(t, registry.KindScopedProxy, proxy.Kind)
	assert.Equal(t, "scopedTarget.service", proxy.ProxyTarget)
	assert.Equal(t, model.ScopeSingleton, proxy.Scope)

	viaAlias, ok := reg.Record("svc")
	require.True(t, ok)
	assert.Equal(t, "service", viaAlias.Key)
}

func TestRender_Aliases(t *testing.T) {
	reg := newRecordingRegistry()
	n, err := New(reg).Render(singleBeanModel(func(b *model.BeanMethod) {
		b.Metadata.Aliases = []string{"a1", "a2", "a3"}
	}))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, []string{"com.acme.App", "service"}, reg.records)
	assert.Equal(t, []aliasCall{
		{key: "service", alias: "a1"},
		{key: "service", alias: "a2"},
		{key: "service", alias: "a3"},
	}, reg.aliases)

	for _, a := range []string{"a1", "a2", "a3"} {
		rec, ok := reg.Record(a)
		require.True(t, ok)
		assert.Equal(t, "service", rec.Key)
	}
}

func TestRender_HiddenRecords(t *testing.T) {
	reg := newRecordingRegistry()
	_, err := New(reg).Render(singleBeanModel(func(b *model.BeanMethod) {
		b.Modifiers = model.ModProtected
		b.Metadata.Aliases = []string{"s"}
	}))
	require.NoError(t, err)

	_, ok := reg.Record("service")
	assert.False(t, ok)
	_, ok = reg.Record("s")
	assert.False(t, ok)

	rec, ok := reg.HiddenRecord("service")
	require.True(t, ok)
	assert.Equal(t, registry.VisibilityHidden, rec.Visibility)
	assert.Equal(t, registry.VisibilityHidden, reg.aliases[0].vis)

	found, ok := reg.ResolveFrom("com.acme.App", "service")
	require.True(t, ok)
	assert.Equal(t, "service", found.Key)
}

func TestRender_ImportersSeeHiddenRecords(t *testing.T) {
	data := model.NewConfigurationClass("DataConfig").
		AddBeanMethod(model.NewBeanMethod("pool", model.ModProtected))
	app := model.NewConfigurationClass("AppConfig").
		AddImport(data).
		AddBeanMethod(model.NewBeanMethod("service", model.ModPublic))
	other := model.NewConfigurationClass("OtherConfig").
		AddBeanMethod(model.NewBeanMethod("other", model.ModPublic))

	reg := registry.NewMemory()
	_, err := New(reg).Render(model.New().Add(app).Add(other))
	require.NoError(t, err)

	_, ok := reg.ResolveFrom("AppConfig", "pool")
	assert.True(t, ok)
	_, ok = reg.ResolveFrom("OtherConfig", "pool")
	assert.False(t, ok)
}

func TestRender_ClassDefaults(t *testing.T) {
	c := model.NewConfigurationClass("App", model.WithMetadata(model.ConfigurationMetadata{
		DefaultAutowire:        model.AutowireByType,
		DefaultLazy:            model.True,
		DefaultDependencyCheck: model.DependencyCheckAll,
	}))
	inherit := model.NewBeanMethod("inherit", model.ModPublic)
	explicit := model.NewBeanMethod("explicit", model.ModPublic)
	explicit.Metadata.Autowire = model.AutowireByName
	explicit.Metadata.Lazy = model.False
	explicit.Metadata.Primary = model.True
	explicit.Metadata.InitMethod = "start"
	explicit.Metadata.DestroyMethod = "stop"
	c.AddBeanMethod(inherit).AddBeanMethod(explicit)

	reg := registry.NewMemory()
	_, err := New(reg).Render(model.New().Add(c))
	require.NoError(t, err)

	rec, _ := reg.Record("inherit")
	assert.Equal(t, model.AutowireByType, rec.Autowire)
	assert.True(t, rec.Lazy)
	assert.False(t, rec.Primary)

	rec, _ = reg.Record("explicit")
	assert.Equal(t, model.AutowireByName, rec.Autowire)
	assert.False(t, rec.Lazy)
	assert.True(t, rec.Primary)
	assert.Equal(t, "start", rec.InitHook)
	assert.Equal(t, "stop", rec.DestroyHook)

	cfg, _ := reg.Record("App")
	v, _ := cfg.Attribute(AttrDependencyCheck)
	assert.Equal(t, "all", v)
}

func TestRender_ForeignOverride(t *testing.T) {
	existing := &registry.Record{Key: "service", Kind: registry.KindFactoryMethod, Origin: "other"}

	t.Run("overridable bean keeps existing record", func(t *testing.T) {
		reg := registry.NewMemory()
		require.NoError(t, reg.RegisterRecord("service", existing, registry.VisibilityPublic))

		n, err := New(reg).Render(singleBeanModel(nil))
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		rec, _ := reg.Record("service")
		assert.Equal(t, "other", rec.Origin)
	})

	t.Run("final bean is an illegal override", func(t *testing.T) {
		reg := registry.NewMemory()
		require.NoError(t, reg.RegisterRecord("service", existing, registry.VisibilityPublic))

		_, err := New(reg).Render(singleBeanModel(func(b *model.BeanMethod) {
			b.Metadata.AllowOverriding = false
		}))
		require.Error(t, err)
		assert.True(t, errors.IsCode(err, errors.ErrCodeIllegalOverride))
	})

	t.Run("later class in the same pass replaces earlier", func(t *testing.T) {
		reg := registry.NewMemory()
		a := model.NewConfigurationClass("A").AddBeanMethod(model.NewBeanMethod("x", model.ModPublic))
		b := model.NewConfigurationClass("B").AddBeanMethod(model.NewBeanMethod("x", model.ModPublic))
		n, err := New(reg).Render(model.New().Add(a).Add(b))
		require.NoError(t, err)
		assert.Equal(t, 3, n, "a replaced record is not a new record")
		assert.Equal(t, n, reg.RecordCount())
		rec, _ := reg.Record("x")
		assert.Equal(t, "B", rec.FactoryOwner)
	})
}

func TestRender_ReplacementCountsOnce(t *testing.T) {
	a := model.NewConfigurationClass("A").AddBeanMethod(model.NewBeanMethod("svc", model.ModPublic))
	b := model.NewConfigurationClass("B").AddBeanMethod(model.NewBeanMethod("svc", model.ModPublic))

	reg := registry.NewMemory()
	r := New(reg)
	n, err := r.Render(model.New().Add(a).Add(b))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, reg.RecordCount(), n)

	rep := r.Result()
	assert.Equal(t, 3, rep.Records)
	assert.Equal(t, 1, rep.Kinds[registry.KindFactoryMethod])
	assert.Equal(t, 2, rep.Kinds[registry.KindConfiguration])
	assert.Equal(t, 2, rep.ForClass("A"))
	assert.Equal(t, 1, rep.ForClass("B"))
}

func TestRender_ForeignValueSource(t *testing.T) {
	reg := registry.NewMemory()
	foreign := &registry.Record{
		Key:       ValueSourceKey,
		Kind:      registry.KindFactoryMethod,
		Basenames: []string{"other"},
		Origin:    "other-writer",
	}
	require.NoError(t, reg.RegisterRecord(ValueSourceKey, foreign, registry.VisibilityPublic))

	c := model.NewConfigurationClass("A").
		AddResourceBundles(model.ResourceBundles{Basenames: []string{"messages"}}).
		AddBeanMethod(model.NewBeanMethod("a", model.ModPublic))
	n, err := New(reg).Render(model.New().Add(c))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	vs, ok := reg.Record(ValueSourceKey)
	require.True(t, ok)
	assert.Equal(t, registry.KindFactoryMethod, vs.Kind)
	assert.Equal(t, "other-writer", vs.Origin)
	assert.Equal(t, []string{"other"}, vs.Basenames)
}

func TestRender_HotSwapListener(t *testing.T) {
	reg := registry.NewMemory()
	r := New(reg, WithListeners(listener.NewChain(listener.NewHotSwapListener())))

	n, err := r.Render(singleBeanModel(func(b *model.BeanMethod) {
		b.HotSwappable = true
		b.Metadata.Aliases = []string{"svc"}
	}))
	require.NoError(t, err)
	assert.Equal(t, 3, n, "listener records are counted")

	proxy, ok := reg.Record("service")
	require.True(t, ok)
	assert.Equal(t, registry.KindHotSwapProxy, proxy.Kind)
	assert.Equal(t, "hotSwapTarget.service", proxy.ProxyTarget)

	target, ok := reg.HiddenRecord("hotSwapTarget.service")
	require.True(t, ok)
	assert.Equal(t, "service", target.FactoryMethodName)

	_, ok = reg.Record("svc")
	assert.True(t, ok)
	assert.Equal(t, 3, r.Result().ForClass("com.acme.App"))
}

func TestRender_SharedImportsRenderOnce(t *testing.T) {
	shared := model.NewConfigurationClass("Shared").AddBeanMethod(model.NewBeanMethod("s", model.ModPublic))
	root1 := model.NewConfigurationClass("Root1").AddImport(shared).AddBeanMethod(model.NewBeanMethod("r1", model.ModPublic))
	root2 := model.NewConfigurationClass("Root2").AddImport(shared).AddBeanMethod(model.NewBeanMethod("r2", model.ModPublic))

	reg := newRecordingRegistry()
	r := New(reg)
	n, err := r.Render(model.New().Add(root1).Add(root2))
	require.NoError(t, err)
	assert.Equal(t, 6, n)
	assert.Equal(t, []string{"Shared", "s", "Root1", "r1", "Root2", "r2"}, reg.records)

	rep := r.Result()
	assert.Equal(t, []ClassCount{{Class: "Root1", Records: 4}, {Class: "Root2", Records: 2}}, rep.TopLevel)
	assert.Equal(t, 2, rep.ForClass("Shared"))
}

func TestRender_DeclaringAncestor(t *testing.T) {
	outer := model.NewConfigurationClass("Outer", model.AsPotential())
	inner := model.NewConfigurationClass("Outer$Inner").
		SetDeclaringClass(outer).
		AddBeanMethod(model.NewBeanMethod("hidden", model.ModProtected))
	other := model.NewConfigurationClass("Outer$Other").
		SetDeclaringClass(outer).
		AddBeanMethod(model.NewBeanMethod("o", model.ModPublic))

	reg := registry.NewMemory()
	n, err := New(reg).Render(model.New().Add(inner).Add(other))
	require.NoError(t, err)
	assert.Equal(t, 5, n, "shared declaring ancestor is registered once")

	ancestor, ok := reg.Ancestor("Outer$Inner")
	require.True(t, ok)
	assert.Equal(t, "Outer", ancestor)

	cfg, ok := reg.Record("Outer")
	require.True(t, ok)
	v, _ := cfg.Attribute(AttrPotential)
	assert.Equal(t, "true", v)
}

func TestRender_ResourceBundles(t *testing.T) {
	a := model.NewConfigurationClass("A").
		AddResourceBundles(model.ResourceBundles{Basenames: []string{"messages"}}).
		AddBeanMethod(model.NewBeanMethod("a", model.ModPublic))
	b := model.NewConfigurationClass("B").
		AddResourceBundles(model.ResourceBundles{Basenames: []string{"errors", "messages"}}).
		AddBeanMethod(model.NewBeanMethod("b", model.ModPublic))

	reg := registry.NewMemory()
	n, err := New(reg).Render(model.New().Add(a).Add(b))
	require.NoError(t, err)
	assert.Equal(t, 5, n)

	vs, ok := reg.Record(ValueSourceKey)
	require.True(t, ok)
	assert.Equal(t, registry.KindValueSource, vs.Kind)
	assert.Equal(t, []string{"messages", "errors"}, vs.Basenames)
}

func TestRender_AutoBeanAndAspects(t *testing.T) {
	c := model.NewConfigurationClass("App", model.WithModifiers(model.ModAbstract))
	c.AddAutoBeanMethod(&model.AutoBeanMethod{Name: "repo", Modifiers: model.ModPublic, ReturnType: "com.acme.Repo"})
	m := model.New().Add(c).
		AddAspect(&model.AspectClass{Name: "com.acme.Logging", Metadata: &model.AspectMetadata{PerClause: "perthis"}}).
		AddAspect(&model.AspectClass{Name: "App", Metadata: &model.AspectMetadata{}})

	reg := registry.NewMemory()
	r := New(reg)
	n, err := r.Render(m)
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, 1, r.Result().Aspects)

	repo, ok := reg.Record("repo")
	require.True(t, ok)
	assert.Equal(t, registry.KindConstructed, repo.Kind)
	assert.Equal(t, "com.acme.Repo", repo.ClassName)
	assert.Empty(t, repo.FactoryMethodName)

	cfg, _ := reg.Record("App")
	assert.Equal(t, registry.KindConfiguration, cfg.Kind, "existing key is not replaced by the aspect")
	v, _ := cfg.Attribute(AttrAbstract)
	assert.Equal(t, "true", v)

	aspect, ok := reg.Record("com.acme.Logging")
	require.True(t, ok)
	assert.Equal(t, registry.KindAspect, aspect.Kind)
	pc, _ := aspect.Attribute(AttrPerClause)
	assert.Equal(t, "perthis", pc)
}

func TestRender_QualifiedNaming(t *testing.T) {
	reg := registry.NewMemory()
	r := New(reg, WithNamingStrategy(QualifiedNameStrategy{}))
	_, err := r.Render(singleBeanModel(nil))
	require.NoError(t, err)
	_, ok := reg.Record("App.service")
	assert.True(t, ok)
	assert.Equal(t, "qualified", r.Result().Naming)
}

func TestRender_InvalidInput(t *testing.T) {
	_, err := New(nil).Render(model.New())
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	_, err = New(registry.NewMemory()).Render(nil)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))

	assert.Nil(t, New(registry.NewMemory()).Result())
}

func TestNamingStrategyFor(t *testing.T) {
	for _, name := range []string{"", "method", "METHOD"} {
		ns, err := NamingStrategyFor(name)
		require.NoError(t, err)
		assert.Equal(t, "method", ns.Name())
	}

	ns, err := NamingStrategyFor("qualified")
	require.NoError(t, err)
	assert.Equal(t, "Inner.x", ns.BeanName(model.NewConfigurationClass("com.acme.Outer$Inner"), "x"))

	_, err = NamingStrategyFor("uuid")
	assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
}
