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
	"github.com/NVIDIA/confmodel/pkg/serializer"
)

// File is the on-disk configuration document.
//
//	dir: ./descriptors
//	classes: [com.acme.AppConfig]
//	source: deferred
//	naming: qualified
//	format: yaml
//	listeners: [hot-swap]
//	vars:
//	  scope: prototype
type File struct {
	Dir       string            `json:"dir,omitempty" yaml:"dir,omitempty"`
	Classes   []string          `json:"classes,omitempty" yaml:"classes,omitempty"`
	Source    string            `json:"source,omitempty" yaml:"source,omitempty"`
	Naming    string            `json:"naming,omitempty" yaml:"naming,omitempty"`
	Format    string            `json:"format,omitempty" yaml:"format,omitempty"`
	Output    string            `json:"output,omitempty" yaml:"output,omitempty"`
	LogLevel  string            `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	Vars      map[string]string `json:"vars,omitempty" yaml:"vars,omitempty"`
	Listeners []string          `json:"listeners,omitempty" yaml:"listeners,omitempty"`
}

// LoadFile reads a configuration document. The format follows the
// extension.
func LoadFile(path string) (*File, error) {
	return serializer.FromFile[File](path)
}

// Options returns the options set by the document. Unset fields keep the
// defaults.
func (f *File) Options() []Option {
	if f == nil {
		return nil
	}
	var opts []Option
	if f.Dir != "" {
		opts = append(opts, WithDir(f.Dir))
	}
	if len(f.Classes) > 0 {
		opts = append(opts, WithClasses(f.Classes...))
	}
	if f.Source != "" {
		opts = append(opts, WithSource(SourceMode(f.Source)))
	}
	if f.Naming != "" {
		opts = append(opts, WithNaming(f.Naming))
	}
	if f.Format != "" {
		opts = append(opts, WithFormat(serializer.Format(f.Format)))
	}
	if f.Output != "" {
		opts = append(opts, WithOutput(f.Output))
	}
	if f.LogLevel != "" {
		opts = append(opts, WithLogLevel(f.LogLevel))
	}
	if len(f.Vars) > 0 {
		opts = append(opts, WithVars(f.Vars))
	}
	if len(f.Listeners) > 0 {
		opts = append(opts, WithListeners(f.Listeners...))
	}
	return opts
}

// Load reads path and applies overrides after the document's settings.
// The result is validated.
func Load(path string, overrides ...Option) (*Config, error) {
	f, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := NewConfig(append(f.Options(), overrides...)...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
