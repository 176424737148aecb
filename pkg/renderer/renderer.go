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
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/header"
	"github.com/NVIDIA/confmodel/pkg/listener"
	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/registry"
)

const (
	// ScopedTargetPrefix prefixes the key of the hidden target of a scoped proxy.
	ScopedTargetPrefix = "scopedTarget."

	// ValueSourceKey is the key of the shared resource bundle record.
	ValueSourceKey = "valueSource"
)

// Record attribute keys set by the renderer.
const (
	AttrConfiguration       = "configuration"
	AttrAbstract            = "abstract"
	AttrPotential           = "potential"
	AttrDependencyCheck     = "dependencyCheck"
	AttrPreserveTargetClass = "preserveTargetClass"
	AttrPerClause           = "perClause"
)

// Renderer lowers a validated model into registration records.
//
// The renderer does not validate: rendering an invalid model is a caller
// error. A Renderer may be reused; every Render call starts a new pass and
// replaces the report.
type Renderer struct {
	reg       registry.Registry
	naming    NamingStrategy
	listeners *listener.Chain
	version   string

	report   *Report
	produced map[producedKey]registry.Kind
	class    string
	root     string
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithNamingStrategy sets the naming strategy for factory method records.
func WithNamingStrategy(ns NamingStrategy) Option {
	return func(r *Renderer) {
		if ns != nil {
			r.naming = ns
		}
	}
}

// WithListeners sets the chain consulted for rendered classes and bean methods.
func WithListeners(chain *listener.Chain) Option {
	return func(r *Renderer) {
		r.listeners = chain
	}
}

// WithVersion sets the tool version recorded in the report header.
func WithVersion(version string) Option {
	return func(r *Renderer) {
		r.version = version
	}
}

// New creates a Renderer writing into reg.
func New(reg registry.Registry, opts ...Option) *Renderer {
	r := &Renderer{
		reg:    reg,
		naming: MethodNameStrategy{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Result returns the report of the last pass, or nil before the first.
func (r *Renderer) Result() *Report {
	return r.report
}

// Render registers the records of m and returns how many were registered,
// including records added by listeners.
func (r *Renderer) Render(m *model.ConfigurationModel) (int, error) {
	if r.reg == nil {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "renderer requires a registry")
	}
	if m == nil {
		return 0, errors.New(errors.ErrCodeInvalidRequest, "model cannot be nil")
	}

	start := time.Now()
	r.report = newReport(uuid.NewString(), r.naming.Name())
	r.report.Init(header.KindRenderResult, r.version)
	r.produced = make(map[producedKey]registry.Kind)
	tracked := &trackingRegistry{Registry: r.reg, r: r}

	for _, c := range m.Classes() {
		r.report.TopLevel = ensure(r.report.TopLevel, c.Name())
	}

	err := m.WalkClasses(func(root, c *model.ConfigurationClass) error {
		r.root, r.class = root.Name(), c.Name()
		r.report.Classes = ensure(r.report.Classes, c.Name())
		return r.renderClass(tracked, c)
	})
	if err != nil {
		return r.report.Records, err
	}

	r.root, r.class = "", ""
	if err := r.renderAspects(tracked, m); err != nil {
		return r.report.Records, err
	}

	r.report.Duration = time.Since(start)
	renderDuration.Observe(r.report.Duration.Seconds())

	slog.Debug("rendered configuration model",
		"pass", r.report.PassID,
		"records", r.report.Records,
		"aliases", r.report.Aliases,
		"classes", len(r.report.Classes),
		"duration", r.report.Duration)

	return r.report.Records, nil
}

func (r *Renderer) renderClass(reg *trackingRegistry, c *model.ConfigurationClass) error {
	if declaring := c.DeclaringClass(); declaring != nil {
		reg.LinkAncestor(c.Name(), declaring.Name())
	}
	if linker, ok := r.reg.(registry.ImportLinker); ok {
		for _, imp := range c.Imports() {
			linker.LinkImport(c.Name(), imp.Name())
		}
	}

	if err := r.renderConfiguration(reg, c); err != nil {
		return err
	}

	if _, err := r.listeners.Dispatch(&listener.Event{
		Kind:     listener.EventClassRendered,
		Class:    c,
		Registry: reg,
	}); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "class rendered listener failed", err,
			map[string]any{"class": c.Name()})
	}

	for _, rb := range c.ResourceBundles() {
		if err := r.renderResourceBundles(reg, c, rb); err != nil {
			return err
		}
	}

	for _, bm := range c.BeanMethods() {
		if err := r.renderBeanMethod(reg, c, bm); err != nil {
			return err
		}
	}

	for _, am := range c.AutoBeanMethods() {
		if err := r.renderAutoBeanMethod(reg, c, am); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderConfiguration(reg *trackingRegistry, c *model.ConfigurationClass) error {
	key := c.Name()
	if r.producedPublic(key) {
		return nil
	}
	if _, exists := reg.Record(key); exists {
		slog.Debug("configuration record already registered", "class", key)
		return nil
	}

	md := c.Metadata()
	rec := &registry.Record{
		Key:               key,
		Kind:              registry.KindConfiguration,
		ClassName:         key,
		Scope:             model.ScopeSingleton,
		Autowire:          md.DefaultAutowire,
		AutowireCandidate: true,
		Origin:            key,
	}
	rec.SetAttribute(AttrConfiguration, "true")
	if c.Modifiers().IsAbstract() {
		rec.SetAttribute(AttrAbstract, "true")
	}
	if c.IsPotential() {
		rec.SetAttribute(AttrPotential, "true")
	}
	if md.DefaultDependencyCheck != model.DependencyCheckNone {
		rec.SetAttribute(AttrDependencyCheck, md.DefaultDependencyCheck.String())
	}
	return reg.RegisterRecord(key, rec, registry.VisibilityPublic)
}

// renderResourceBundles registers the shared value source record on first
// use and extends its basenames afterwards. Extending is not a new record.
// A value source registered by another writer is left untouched.
func (r *Renderer) renderResourceBundles(reg *trackingRegistry, c *model.ConfigurationClass, rb model.ResourceBundles) error {
	if existing, ok := reg.Record(ValueSourceKey); ok {
		if !r.producedPublic(ValueSourceKey) {
			slog.Debug("value source already registered", "class", c.Name(), "origin", existing.Origin)
			return nil
		}
		for _, b := range rb.Basenames {
			if !slices.Contains(existing.Basenames, b) {
				existing.Basenames = append(existing.Basenames, b)
			}
		}
		return reg.Registry.RegisterRecord(ValueSourceKey, existing, registry.VisibilityPublic)
	}

	rec := &registry.Record{
		Key:       ValueSourceKey,
		Kind:      registry.KindValueSource,
		Scope:     model.ScopeSingleton,
		Basenames: slices.Clone(rb.Basenames),
		Origin:    c.Name(),
	}
	return reg.RegisterRecord(ValueSourceKey, rec, registry.VisibilityPublic)
}

func (r *Renderer) renderBeanMethod(reg *trackingRegistry, c *model.ConfigurationClass, bm *model.BeanMethod) error {
	key := r.naming.BeanName(c, bm.Name)
	vis := registry.VisibilityOf(bm.Modifiers)

	skip, err := r.foreign(reg, key, vis, bm.AllowsOverriding(), c.Name()+"."+bm.Name)
	if err != nil || skip {
		return err
	}

	rec := beanRecord(c, bm, key, vis)
	if !bm.IsScopedProxy() {
		if err := r.dispatchBeanMethod(reg, c, bm, rec); err != nil {
			return err
		}
		return r.register(reg, rec, vis)
	}

	target := rec.Clone()
	target.Key = ScopedTargetPrefix + key
	target.Aliases = nil
	target.Primary = false
	target.AutowireCandidate = false
	target.Visibility = registry.VisibilityHidden
	if bm.ScopedProxy.ProxyTargetClass {
		target.SetAttribute(AttrPreserveTargetClass, "true")
	}
	if err := r.dispatchBeanMethod(reg, c, bm, target); err != nil {
		return err
	}
	if err := reg.RegisterRecord(target.Key, target, registry.VisibilityHidden); err != nil {
		return err
	}

	proxy := &registry.Record{
		Key:               key,
		Kind:              registry.KindScopedProxy,
		ClassName:         rec.ClassName,
		Scope:             model.ScopeSingleton,
		Visibility:        vis,
		Aliases:           rec.Aliases,
		Primary:           rec.Primary,
		Autowire:          rec.Autowire,
		AutowireCandidate: true,
		ProxyTarget:       target.Key,
		Origin:            c.Name(),
	}
	if bm.ScopedProxy.ProxyTargetClass {
		proxy.SetAttribute(AttrPreserveTargetClass, "true")
	}
	return r.register(reg, proxy, vis)
}

func beanRecord(c *model.ConfigurationClass, bm *model.BeanMethod, key string, vis registry.Visibility) *registry.Record {
	md := c.Metadata()

	autowire := bm.Metadata.Autowire
	if autowire == model.AutowireInherited {
		autowire = md.DefaultAutowire
	}
	lazy := bm.Metadata.Lazy
	if lazy == model.Unspecified {
		lazy = md.DefaultLazy
	}
	scope := bm.Metadata.Scope
	if scope == "" {
		scope = model.ScopeSingleton
	}

	return &registry.Record{
		Key:               key,
		Kind:              registry.KindFactoryMethod,
		FactoryOwner:      c.Name(),
		FactoryMethodName: bm.Name,
		Scope:             scope,
		Visibility:        vis,
		Aliases:           slices.Clone(bm.Metadata.Aliases),
		Primary:           bm.Metadata.Primary == model.True,
		Lazy:              lazy == model.True,
		InitHook:          bm.Metadata.InitMethod,
		DestroyHook:       bm.Metadata.DestroyMethod,
		Autowire:          autowire,
		AutowireCandidate: true,
		Origin:            c.Name(),
	}
}

func (r *Renderer) renderAutoBeanMethod(reg *trackingRegistry, c *model.ConfigurationClass, am *model.AutoBeanMethod) error {
	key := r.naming.BeanName(c, am.Name)
	vis := registry.VisibilityOf(am.Modifiers)

	skip, err := r.foreign(reg, key, vis, true, c.Name()+"."+am.Name)
	if err != nil || skip {
		return err
	}

	autowire := am.Autowire
	if autowire == model.AutowireInherited {
		autowire = c.Metadata().DefaultAutowire
	}
	rec := &registry.Record{
		Key:               key,
		Kind:              registry.KindConstructed,
		ClassName:         am.ReturnType,
		Scope:             model.ScopeSingleton,
		Visibility:        vis,
		Autowire:          autowire,
		AutowireCandidate: true,
		Origin:            c.Name(),
	}
	return r.register(reg, rec, vis)
}

func (r *Renderer) renderAspects(reg *trackingRegistry, m *model.ConfigurationModel) error {
	for _, a := range m.AspectClasses() {
		if _, exists := reg.Record(a.Name); exists {
			continue
		}
		rec := &registry.Record{
			Key:               a.Name,
			Kind:              registry.KindAspect,
			ClassName:         a.Name,
			Scope:             model.ScopeSingleton,
			AutowireCandidate: false,
		}
		if a.Metadata != nil && a.Metadata.PerClause != "" {
			rec.SetAttribute(AttrPerClause, a.Metadata.PerClause)
		}
		if err := reg.RegisterRecord(a.Name, rec, registry.VisibilityPublic); err != nil {
			return err
		}
		r.report.Aspects++
	}
	return nil
}

// foreign reports whether a public key is held by a record this pass did
// not produce. Such a record is kept when overriding is allowed and is an
// illegal override otherwise.
func (r *Renderer) foreign(reg *trackingRegistry, key string, vis registry.Visibility, allowOverriding bool, method string) (bool, error) {
	if vis != registry.VisibilityPublic || r.producedPublic(key) {
		return false, nil
	}
	existing, ok := reg.Record(key)
	if !ok {
		return false, nil
	}
	if allowOverriding {
		slog.Debug("keeping existing record", "key", key, "method", method, "origin", existing.Origin)
		return true, nil
	}
	return false, errors.NewWithContext(errors.ErrCodeIllegalOverride,
		fmt.Sprintf("bean %s of %s overrides existing record %s", key, method, existing.Key),
		map[string]any{"key": key, "method": method, "existingOrigin": existing.Origin})
}

func (r *Renderer) dispatchBeanMethod(reg *trackingRegistry, c *model.ConfigurationClass, bm *model.BeanMethod, rec *registry.Record) error {
	if _, err := r.listeners.Dispatch(&listener.Event{
		Kind:     listener.EventBeanMethodRendered,
		Class:    c,
		Method:   bm,
		Record:   rec,
		Registry: reg,
	}); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "bean method listener failed", err,
			map[string]any{"class": c.Name(), "method": bm.Name})
	}
	return nil
}

// register stores rec and its aliases with vis.
func (r *Renderer) register(reg *trackingRegistry, rec *registry.Record, vis registry.Visibility) error {
	if err := reg.RegisterRecord(rec.Key, rec, vis); err != nil {
		return err
	}
	for _, alias := range rec.Aliases {
		if err := reg.RegisterAlias(rec.Key, alias, vis); err != nil {
			return err
		}
	}
	return nil
}

// producedKey identifies a record registered during the current pass.
type producedKey struct {
	key string
	vis registry.Visibility
}

func (r *Renderer) producedPublic(key string) bool {
	_, ok := r.produced[producedKey{key: key, vis: registry.VisibilityPublic}]
	return ok
}

// trackingRegistry counts the records created during a pass, including
// those registered by listeners, and remembers their keys. Replacing a
// record of the same pass is not a new record.
type trackingRegistry struct {
	registry.Registry
	r *Renderer
}

func (t *trackingRegistry) RegisterRecord(key string, rec *registry.Record, vis registry.Visibility) error {
	if err := t.Registry.RegisterRecord(key, rec, vis); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to register record", err,
			map[string]any{"key": key, "visibility": vis.String()})
	}

	pk := producedKey{key: key, vis: vis}
	rep := t.r.report
	if prev, replaced := t.r.produced[pk]; replaced {
		t.r.produced[pk] = rec.Kind
		if prev != rec.Kind {
			rep.Kinds[prev]--
			if rep.Kinds[prev] == 0 {
				delete(rep.Kinds, prev)
			}
			rep.Kinds[rec.Kind]++
		}
		slog.Debug("replaced record of this pass", "key", key, "kind", rec.Kind, "class", t.r.class)
		return nil
	}

	t.r.produced[pk] = rec.Kind
	rep.Records++
	rep.Kinds[rec.Kind]++
	if t.r.class != "" {
		rep.Classes = increment(rep.Classes, t.r.class)
		rep.TopLevel = increment(rep.TopLevel, t.r.root)
	}
	recordsRendered.WithLabelValues(string(rec.Kind)).Inc()

	slog.Debug("registered record",
		"key", key,
		"kind", rec.Kind,
		"visibility", vis.String(),
		"class", t.r.class,
		"aliases", len(rec.Aliases))
	return nil
}

func (t *trackingRegistry) RegisterAlias(key, alias string, vis registry.Visibility) error {
	if err := t.Registry.RegisterAlias(key, alias, vis); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal, "failed to register alias", err,
			map[string]any{"key": key, "alias": alias})
	}
	t.r.report.Aliases++
	return nil
}
