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

package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/NVIDIA/confmodel/pkg/descriptor"
	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/listener"
	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/parser"
	"github.com/NVIDIA/confmodel/pkg/registry"
	"github.com/NVIDIA/confmodel/pkg/renderer"
	"github.com/NVIDIA/confmodel/pkg/validator"
)

// Stage names a step of the pipeline.
type Stage string

const (
	StageParse    Stage = "parse"
	StageValidate Stage = "validate"
	StageRender   Stage = "render"
)

// Result is the outcome of a successful run.
type Result struct {
	// Classes are the requested top-level class names.
	Classes []string `json:"classes" yaml:"classes"`

	// Model is the parsed and validated model.
	Model *model.ConfigurationModel `json:"-" yaml:"-"`

	// Records is the number of records registered.
	Records int `json:"records" yaml:"records"`

	// Report is the render report.
	Report *renderer.Report `json:"report" yaml:"report"`

	Duration time.Duration `json:"duration" yaml:"duration"`
}

// PassID returns the id of the render pass.
func (r *Result) PassID() string {
	if r == nil || r.Report == nil {
		return ""
	}
	return r.Report.PassID
}

// Processor runs parse, validate and render once against a registry.
//
// Thread-safety: Process may be called concurrently; only the first call
// runs, later calls fail with ALREADY_PROCESSED.
type Processor struct {
	src       descriptor.Source
	reg       registry.Registry
	naming    renderer.NamingStrategy
	listeners *listener.Chain
	declaring func(string) bool
	version   string

	mu        sync.Mutex
	processed bool
}

// Option configures a Processor.
type Option func(*Processor)

// WithNamingStrategy sets the naming strategy used by the renderer.
func WithNamingStrategy(ns renderer.NamingStrategy) Option {
	return func(p *Processor) {
		if ns != nil {
			p.naming = ns
		}
	}
}

// WithListeners sets the chain shared by the parser and the renderer.
func WithListeners(chain *listener.Chain) Option {
	return func(p *Processor) {
		p.listeners = chain
	}
}

// WithDeclaringClassPolicy sets the parser's declaring class policy.
func WithDeclaringClassPolicy(fn func(name string) bool) Option {
	return func(p *Processor) {
		if fn != nil {
			p.declaring = fn
		}
	}
}

// WithVersion sets the tool version recorded in emitted reports.
func WithVersion(version string) Option {
	return func(p *Processor) {
		p.version = version
	}
}

// New creates a Processor reading descriptors from src and writing records
// into reg.
func New(src descriptor.Source, reg registry.Registry, opts ...Option) *Processor {
	p := &Processor{
		src:       src,
		reg:       reg,
		naming:    renderer.MethodNameStrategy{},
		declaring: parser.DefaultDeclaringClassPolicy,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Processed reports whether Process has been called.
func (p *Processor) Processed() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.processed
}

// Process parses the named classes, refuses an invalid model and renders
// the rest into the registry. Nothing is registered unless the model is
// valid.
func (p *Processor) Process(ctx context.Context, names ...string) (*Result, error) {
	p.mu.Lock()
	if p.processed {
		p.mu.Unlock()
		return nil, errors.New(errors.ErrCodeAlreadyProcessed, "configuration already processed")
	}
	p.processed = true
	p.mu.Unlock()

	if len(names) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "at least one configuration class is required")
	}
	if p.reg == nil {
		return nil, errors.New(errors.ErrCodeInvalidRequest, "processor requires a registry")
	}

	start := time.Now()

	if err := checkContext(ctx, StageParse); err != nil {
		return nil, err
	}
	m, err := Parse(p.src, names, parser.WithListeners(p.listeners), parser.WithDeclaringClassPolicy(p.declaring))
	if err != nil {
		processRuns.WithLabelValues(string(StageParse), "failed").Inc()
		return nil, err
	}

	if err := checkContext(ctx, StageValidate); err != nil {
		return nil, err
	}
	if err := validator.New(validator.WithVersion(p.version)).AssertValid(m); err != nil {
		processRuns.WithLabelValues(string(StageValidate), "failed").Inc()
		return nil, err
	}

	if err := checkContext(ctx, StageRender); err != nil {
		return nil, err
	}
	r := renderer.New(p.reg,
		renderer.WithNamingStrategy(p.naming),
		renderer.WithListeners(p.listeners),
		renderer.WithVersion(p.version))
	n, err := r.Render(m)
	if err != nil {
		processRuns.WithLabelValues(string(StageRender), "failed").Inc()
		return nil, err
	}

	result := &Result{
		Classes:  append([]string(nil), names...),
		Model:    m,
		Records:  n,
		Report:   r.Result(),
		Duration: time.Since(start),
	}
	processRuns.WithLabelValues(string(StageRender), "succeeded").Inc()
	processDuration.Observe(result.Duration.Seconds())

	slog.Info("configuration processed",
		"classes", len(names),
		"records", n,
		"pass", result.PassID(),
		"duration", result.Duration)

	return result, nil
}

// Parse builds a fresh model from the named top-level classes.
func Parse(src descriptor.Source, names []string, opts ...parser.Option) (*model.ConfigurationModel, error) {
	m := model.New()
	if err := parser.New(src, m, opts...).ParseAll(names...); err != nil {
		return nil, err
	}
	return m, nil
}

func checkContext(ctx context.Context, stage Stage) error {
	if err := ctx.Err(); err != nil {
		processRuns.WithLabelValues(string(stage), "cancelled").Inc()
		return errors.WrapWithContext(errors.ErrCodeInternal, "pipeline cancelled", err,
			map[string]any{"stage": string(stage)})
	}
	return nil
}
