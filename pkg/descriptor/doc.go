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

// Package descriptor defines class descriptor documents and the sources the
// parser resolves them from.
//
// A descriptor describes one class: its modifiers, declaring class, imports,
// aspects, resource bundles and methods, each method with its marker blocks.
// Descriptors are written in YAML:
//
//	classes:
//	  - name: com.acme.AppConfig
//	    configuration:
//	      defaultLazy: true
//	    imports: [com.acme.DataConfig]
//	    methods:
//	      - name: service
//	        modifiers: [public]
//	        bean:
//	          aliases: [svc]
//
// or in HCL, where var.<name> refers to variables passed with WithVariables:
//
//	class "com.acme.AppConfig" {
//	  configuration {
//	    default_lazy = true
//	  }
//	  imports = ["com.acme.DataConfig"]
//
//	  method "service" {
//	    modifiers = ["public"]
//	    bean {
//	      scope   = var.scope
//	      aliases = ["svc"]
//	    }
//	  }
//	}
//
// Marker blocks are presence markers; in YAML an empty marker is written as
// an empty mapping (bean: {}).
//
// Two Source strategies are provided. Catalog is eager: LoadDir decodes a
// whole directory concurrently and validates every document up front.
// DirSource is deferred: com.acme.AppConfig resolves to
// <root>/com/acme/AppConfig.{yaml,yml,hcl} on first use and is cached.
package descriptor
