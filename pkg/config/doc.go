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

// Package config holds the settings of a confmodel run.
//
// Settings come from functional options, optionally seeded from a YAML or
// JSON document:
//
//	cfg := config.NewConfig(
//	    config.WithDir("descriptors"),
//	    config.WithClasses("com.acme.AppConfig"),
//	    config.WithNaming("qualified"),
//	)
//
//	cfg, err := config.Load("confmodel.yaml", config.WithOutput("out.json"))
//
// Options applied later win, so command-line flags passed as overrides
// replace values from the file. List options (classes, listeners) append.
//
// # Defaults
//
//   - Dir: "."
//   - Source: SourceEager
//   - Naming: "method"
//   - Format: json
//   - LogLevel: "info"
//   - Version: "dev"
//
// The config also builds the run's collaborators: OpenSource returns the
// descriptor source for the mode, NamingStrategy the renderer strategy and
// ListenerChain the configured listeners.
package config
