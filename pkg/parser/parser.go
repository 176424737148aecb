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

package parser

import (
	stderrors "errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/NVIDIA/confmodel/pkg/descriptor"
	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/listener"
	"github.com/NVIDIA/confmodel/pkg/model"
)

// inheritedMethods are skipped when enumerating methods; every class has them.
var inheritedMethods = map[string]bool{
	"string":   true,
	"tostring": true,
	"equals":   true,
	"hashcode": true,
	"finalize": true,
	"clone":    true,
}

// Parser converts class descriptors into model entities and accumulates
// the parsed top-level classes into a ConfigurationModel.
//
// A Parser memoises every class it has fully parsed, so a class imported
// from several roots is parsed once and shared by pointer. A Parser is not
// safe for concurrent use.
type Parser struct {
	src       descriptor.Source
	model     *model.ConfigurationModel
	listeners *listener.Chain
	declaring func(name string) bool

	parsed   map[string]*model.ConfigurationClass
	stack    []string
	topLevel map[string]bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithListeners sets the chain notified for every parsed class.
func WithListeners(chain *listener.Chain) Option {
	return func(p *Parser) {
		p.listeners = chain
	}
}

// WithDeclaringClassPolicy replaces the predicate deciding whether a
// declaring class is parsed.
func WithDeclaringClassPolicy(fn func(name string) bool) Option {
	return func(p *Parser) {
		if fn != nil {
			p.declaring = fn
		}
	}
}

// DefaultDeclaringClassPolicy excludes declaring classes named like test
// fixtures.
func DefaultDeclaringClassPolicy(name string) bool {
	return !strings.HasSuffix(name, "Test") && !strings.HasSuffix(name, "Tests")
}

// New creates a Parser resolving descriptors from src and appending to m.
func New(src descriptor.Source, m *model.ConfigurationModel, opts ...Option) *Parser {
	p := &Parser{
		src:       src,
		model:     m,
		declaring: DefaultDeclaringClassPolicy,
		parsed:    make(map[string]*model.ConfigurationClass),
		topLevel:  make(map[string]bool),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Model returns the model the parser appends to.
func (p *Parser) Model() *model.ConfigurationModel {
	return p.model
}

// Parse parses the named class and its closure and appends it to the model
// as a top-level class. Parsing the same name twice appends it once.
func (p *Parser) Parse(name string) (*model.ConfigurationClass, error) {
	if p.src == nil || p.model == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "parser requires a source and a model")
	}

	c, err := p.parse(name, false)
	if err != nil {
		parseFailures.WithLabelValues(string(codeOf(err))).Inc()
		return nil, err
	}
	if !p.topLevel[name] {
		p.topLevel[name] = true
		p.model.Add(c)
	}
	return c, nil
}

// ParseAll parses names in order, stopping at the first failure.
func (p *Parser) ParseAll(names ...string) error {
	for _, name := range names {
		if _, err := p.Parse(name); err != nil {
			return err
		}
	}
	return nil
}

func (p *Parser) parse(name string, asDeclaring bool) (*model.ConfigurationClass, error) {
	if c, ok := p.parsed[name]; ok {
		return c, nil
	}
	if i := slices.Index(p.stack, name); i >= 0 {
		cycle := append(slices.Clone(p.stack[i:]), name)
		return nil, errors.NewWithContext(errors.ErrCodeCircularImport,
			fmt.Sprintf("circular import: %s", strings.Join(cycle, " -> ")),
			map[string]any{"cycle": cycle})
	}

	p.stack = append(p.stack, name)
	defer func() { p.stack = p.stack[:len(p.stack)-1] }()

	d, err := p.resolve(name)
	if err != nil {
		return nil, err
	}

	c, err := p.newClass(d, asDeclaring)
	if err != nil {
		return nil, err
	}

	if d.DeclaringClass != "" {
		if p.declaring(d.DeclaringClass) {
			declaring, err := p.parse(d.DeclaringClass, true)
			if err != nil {
				return nil, err
			}
			c.SetDeclaringClass(declaring)
		} else {
			slog.Debug("skipping declaring class", "class", name, "declaring", d.DeclaringClass)
		}
	}

	for _, imp := range d.Imports {
		imported, err := p.parse(imp, false)
		if err != nil {
			return nil, err
		}
		c.AddImport(imported)
	}

	for _, rb := range d.ResourceBundles {
		c.AddResourceBundles(model.ResourceBundles{Basenames: slices.Clone(rb.Basenames)})
	}

	if err := p.parseAspects(d); err != nil {
		return nil, err
	}

	if err := p.parseMethods(c, d); err != nil {
		return nil, err
	}

	p.parsed[name] = c
	classesParsed.Inc()

	if _, err := p.listeners.Dispatch(&listener.Event{Kind: listener.EventClassParsed, Class: c}); err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "class parsed listener failed", err,
			map[string]any{"class": name})
	}

	slog.Debug("parsed configuration class",
		"class", name,
		"potential", c.IsPotential(),
		"beans", len(c.BeanMethods()),
		"imports", len(c.Imports()))
	return c, nil
}

func (p *Parser) resolve(name string) (*descriptor.Class, error) {
	d, err := p.src.Resolve(name)
	if err != nil {
		var se *errors.StructuredError
		if stderrors.As(err, &se) {
			return nil, err
		}
		return nil, errors.WrapWithContext(errors.ErrCodeClassNotFound,
			fmt.Sprintf("failed to resolve class %s", name), err,
			map[string]any{"class": name})
	}
	if d == nil {
		return nil, errors.NewWithContext(errors.ErrCodeClassNotFound,
			fmt.Sprintf("class not found: %s", name),
			map[string]any{"class": name})
	}
	return d, nil
}

func (p *Parser) newClass(d *descriptor.Class, asDeclaring bool) (*model.ConfigurationClass, error) {
	mods, err := model.ParseModifiers(d.Modifiers)
	if err != nil {
		return nil, malformed(d.Name, "", err)
	}

	md := model.DefaultConfigurationMetadata()
	if cm := d.Configuration; cm != nil {
		if cm.DefaultAutowire != "" {
			if md.DefaultAutowire, err = model.ParseAutowire(cm.DefaultAutowire); err != nil {
				return nil, malformed(d.Name, "", err)
			}
		}
		if cm.DefaultLazy != nil {
			md.DefaultLazy = model.TristateOf(cm.DefaultLazy)
		}
		if md.DefaultDependencyCheck, err = model.ParseDependencyCheck(cm.DependencyCheck); err != nil {
			return nil, malformed(d.Name, "", err)
		}
	}

	opts := []model.ClassOption{model.WithModifiers(mods), model.WithMetadata(md)}
	if asDeclaring && d.Configuration == nil {
		opts = append(opts, model.AsPotential())
	}
	return model.NewConfigurationClass(d.Name, opts...), nil
}

func (p *Parser) parseAspects(d *descriptor.Class) error {
	for _, ref := range d.Aspects {
		ad, err := p.resolve(ref)
		if err != nil {
			return err
		}
		p.model.AddAspect(&model.AspectClass{Name: ref, Metadata: aspectMetadata(ad.Aspect)})
	}
	if d.Aspect != nil {
		p.model.AddAspect(&model.AspectClass{Name: d.Name, Metadata: aspectMetadata(d.Aspect)})
	}
	return nil
}

func aspectMetadata(m *descriptor.AspectMarker) *model.AspectMetadata {
	if m == nil {
		return nil
	}
	return &model.AspectMetadata{PerClause: m.PerClause}
}

func (p *Parser) parseMethods(c *model.ConfigurationClass, d *descriptor.Class) error {
	seen := make(map[string]bool, len(d.Methods))
	for _, dm := range d.Methods {
		if inheritedMethods[strings.ToLower(dm.Name)] {
			continue
		}
		if dm.FactoryMarkers() == 0 {
			if dm.ScopedProxy != nil {
				return scopedProxyWithoutBean(d.Name, dm.Name)
			}
			continue
		}
		if dm.FactoryMarkers() > 1 {
			return errors.NewWithContext(errors.ErrCodeMalformedConfiguration,
				fmt.Sprintf("method carries more than one factory marker: %s.%s", d.Name, dm.Name),
				map[string]any{"class": d.Name, "method": dm.Name})
		}
		if seen[dm.Name] {
			return errors.NewWithContext(errors.ErrCodeMalformedConfiguration,
				fmt.Sprintf("factory method declared twice: %s.%s", d.Name, dm.Name),
				map[string]any{"class": d.Name, "method": dm.Name})
		}
		seen[dm.Name] = true

		mods, err := model.ParseModifiers(dm.Modifiers)
		if err != nil {
			return malformed(d.Name, dm.Name, err)
		}

		switch {
		case dm.Bean != nil:
			bm, err := beanMethod(dm, mods)
			if err != nil {
				return malformed(d.Name, dm.Name, err)
			}
			c.AddBeanMethod(bm)
		case dm.ExternalBean != nil:
			if dm.ScopedProxy != nil {
				return scopedProxyWithoutBean(d.Name, dm.Name)
			}
			c.AddExternalBeanMethod(&model.ExternalBeanMethod{
				Name:        dm.Name,
				Modifiers:   mods,
				BindingName: dm.ExternalBean.Name,
			})
		case dm.ExternalValue != nil:
			if dm.ScopedProxy != nil {
				return scopedProxyWithoutBean(d.Name, dm.Name)
			}
			c.AddExternalValueMethod(&model.ExternalValueMethod{
				Name:       dm.Name,
				Modifiers:  mods,
				ReturnType: dm.ReturnType,
				ValueName:  dm.ExternalValue.Name,
			})
		case dm.AutoBean != nil:
			if dm.ScopedProxy != nil {
				return scopedProxyWithoutBean(d.Name, dm.Name)
			}
			if dm.ReturnType == "" {
				return errors.NewWithContext(errors.ErrCodeMalformedConfiguration,
					fmt.Sprintf("auto bean method must declare a return type: %s.%s", d.Name, dm.Name),
					map[string]any{"class": d.Name, "method": dm.Name})
			}
			aw, err := model.ParseAutowire(dm.AutoBean.Autowire)
			if err != nil {
				return malformed(d.Name, dm.Name, err)
			}
			c.AddAutoBeanMethod(&model.AutoBeanMethod{
				Name:       dm.Name,
				Modifiers:  mods,
				ReturnType: dm.ReturnType,
				Autowire:   aw,
			})
		}

		if dm.HotSwappable && dm.Bean == nil {
			slog.Warn("hot swappable marker ignored on non-bean method", "class", d.Name, "method", dm.Name)
		}
	}
	return nil
}

func beanMethod(dm *descriptor.Method, mods model.Modifiers) (*model.BeanMethod, error) {
	bm := model.NewBeanMethod(dm.Name, mods)
	b := dm.Bean

	if b.Scope != "" {
		bm.Metadata.Scope = b.Scope
	}
	aw, err := model.ParseAutowire(b.Autowire)
	if err != nil {
		return nil, err
	}
	bm.Metadata.Autowire = aw
	bm.Metadata.Aliases = slices.Clone(b.Aliases)
	bm.Metadata.Primary = model.TristateOf(b.Primary)
	bm.Metadata.Lazy = model.TristateOf(b.Lazy)
	if b.AllowOverriding != nil {
		bm.Metadata.AllowOverriding = *b.AllowOverriding
	}
	bm.Metadata.InitMethod = b.InitMethod
	bm.Metadata.DestroyMethod = b.DestroyMethod

	if dm.ScopedProxy != nil {
		bm.ScopedProxy = &model.ScopedProxyMetadata{ProxyTargetClass: dm.ScopedProxy.ProxyTargetClass}
	}
	bm.HotSwappable = dm.HotSwappable
	return bm, nil
}

func scopedProxyWithoutBean(class, method string) error {
	return errors.NewWithContext(errors.ErrCodeMalformedConfiguration,
		fmt.Sprintf("scoped proxy marker requires the bean marker: %s.%s", class, method),
		map[string]any{"class": class, "method": method})
}

func malformed(class, method string, cause error) error {
	ctx := map[string]any{"class": class}
	msg := fmt.Sprintf("malformed configuration class %s", class)
	if method != "" {
		ctx["method"] = method
		msg = fmt.Sprintf("malformed method %s.%s", class, method)
	}
	return errors.WrapWithContext(errors.ErrCodeMalformedConfiguration, msg, cause, ctx)
}

func codeOf(err error) errors.ErrorCode {
	var se *errors.StructuredError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return errors.ErrCodeInternal
}
