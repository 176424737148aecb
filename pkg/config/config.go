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

package config

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/NVIDIA/confmodel/pkg/descriptor"
	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/listener"
	"github.com/NVIDIA/confmodel/pkg/renderer"
	"github.com/NVIDIA/confmodel/pkg/serializer"
)

// SourceMode selects how class descriptors are loaded.
type SourceMode string

const (
	// SourceEager decodes and validates every descriptor under the
	// directory up front.
	SourceEager SourceMode = "eager"
	// SourceDeferred resolves a class from its path on first use.
	SourceDeferred SourceMode = "deferred"
)

// Built-in listener names.
const (
	ListenerHotSwap = "hot-swap"
	ListenerTrace   = "trace"
)

// GetSourceModes returns the supported source modes.
func GetSourceModes() []string {
	return []string{string(SourceEager), string(SourceDeferred)}
}

// GetListeners returns the names of the built-in listeners.
func GetListeners() []string {
	return []string{ListenerHotSwap, ListenerTrace}
}

// Config holds the settings of a confmodel run. Fields are read-only after
// creation.
type Config struct {
	// dir is the root of the descriptor tree.
	dir string

	// classes are the top-level classes to process.
	classes []string

	source SourceMode

	// naming is the renderer naming strategy name.
	naming string

	format serializer.Format

	// output is the output file path; empty is stdout.
	output string

	logLevel string

	// vars are exposed to HCL descriptors as var.<name>.
	vars map[string]string

	// listeners are built-in listener names in chain order.
	listeners []string

	version string
}

// Dir returns the descriptor root directory.
func (c *Config) Dir() string { return c.dir }

// Classes returns a copy of the top-level class names.
func (c *Config) Classes() []string { return slices.Clone(c.classes) }

// Source returns the source mode.
func (c *Config) Source() SourceMode { return c.source }

// Naming returns the naming strategy name.
func (c *Config) Naming() string { return c.naming }

// Format returns the output format.
func (c *Config) Format() serializer.Format { return c.format }

// Output returns the output path.
func (c *Config) Output() string { return c.output }

// LogLevel returns the log level name.
func (c *Config) LogLevel() string { return c.logLevel }

// Vars returns a copy of the HCL variables.
func (c *Config) Vars() map[string]string { return maps.Clone(c.vars) }

// Listeners returns a copy of the listener names.
func (c *Config) Listeners() []string { return slices.Clone(c.listeners) }

// Version returns the tool version.
func (c *Config) Version() string { return c.version }

// Validate checks the settings.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.dir) == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "descriptor directory cannot be empty")
	}
	if !slices.Contains(GetSourceModes(), string(c.source)) {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid source mode: %s (must be one of: %s)", c.source, strings.Join(GetSourceModes(), ", ")))
	}
	if _, err := renderer.NamingStrategyFor(c.naming); err != nil {
		return err
	}
	if c.format.IsUnknown() {
		return errors.New(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid output format: %s (must be one of: %s)", c.format, strings.Join(serializer.SupportedFormats(), ", ")))
	}
	for _, name := range c.listeners {
		if !slices.Contains(GetListeners(), name) {
			return errors.New(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("unknown listener: %s (must be one of: %s)", name, strings.Join(GetListeners(), ", ")))
		}
	}
	for _, name := range c.classes {
		if strings.TrimSpace(name) == "" {
			return errors.New(errors.ErrCodeInvalidRequest, "class name cannot be empty")
		}
	}
	return nil
}

// NamingStrategy returns the configured renderer naming strategy.
func (c *Config) NamingStrategy() (renderer.NamingStrategy, error) {
	return renderer.NamingStrategyFor(c.naming)
}

// DecoderOptions returns the descriptor decoder options.
func (c *Config) DecoderOptions() []descriptor.DecoderOption {
	if len(c.vars) == 0 {
		return nil
	}
	return []descriptor.DecoderOption{descriptor.WithVariables(c.vars)}
}

// OpenSource opens the descriptor source for the configured mode.
func (c *Config) OpenSource(ctx context.Context) (descriptor.Source, error) {
	if c.source == SourceDeferred {
		return descriptor.NewDirSource(c.dir, c.DecoderOptions()...), nil
	}
	return descriptor.LoadDir(ctx, c.dir, c.DecoderOptions()...)
}

// ListenerChain builds the chain of configured listeners. The trace
// listener logs through logger.
func (c *Config) ListenerChain(logger *slog.Logger) *listener.Chain {
	chain := listener.NewChain()
	for _, name := range c.listeners {
		switch name {
		case ListenerHotSwap:
			chain.Add(listener.NewHotSwapListener())
		case ListenerTrace:
			chain.Add(listener.NewTraceListener(logger))
		}
	}
	return chain
}

// Option configures a Config.
type Option func(*Config)

// WithDir sets the descriptor root directory.
func WithDir(dir string) Option {
	return func(c *Config) {
		c.dir = dir
	}
}

// WithClasses appends top-level class names, skipping duplicates.
func WithClasses(names ...string) Option {
	return func(c *Config) {
		for _, n := range names {
			if !slices.Contains(c.classes, n) {
				c.classes = append(c.classes, n)
			}
		}
	}
}

// WithSource sets the source mode.
func WithSource(mode SourceMode) Option {
	return func(c *Config) {
		c.source = mode
	}
}

// WithNaming sets the naming strategy name.
func WithNaming(naming string) Option {
	return func(c *Config) {
		c.naming = naming
	}
}

// WithFormat sets the output format.
func WithFormat(format serializer.Format) Option {
	return func(c *Config) {
		c.format = format
	}
}

// WithOutput sets the output path.
func WithOutput(path string) Option {
	return func(c *Config) {
		c.output = path
	}
}

// WithLogLevel sets the log level name.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.logLevel = level
	}
}

// WithVars merges HCL variables; later values win.
func WithVars(vars map[string]string) Option {
	return func(c *Config) {
		maps.Copy(c.vars, vars)
	}
}

// WithListeners appends listener names, skipping duplicates.
func WithListeners(names ...string) Option {
	return func(c *Config) {
		for _, n := range names {
			if !slices.Contains(c.listeners, n) {
				c.listeners = append(c.listeners, n)
			}
		}
	}
}

// WithVersion sets the tool version.
func WithVersion(version string) Option {
	return func(c *Config) {
		c.version = version
	}
}

// NewConfig returns a Config with default values.
func NewConfig(options ...Option) *Config {
	c := &Config{
		dir:      ".",
		source:   SourceEager,
		naming:   "method",
		format:   serializer.FormatJSON,
		logLevel: "info",
		vars:     make(map[string]string),
		version:  "dev",
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}
