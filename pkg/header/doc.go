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

// Package header provides the common header embedded in every document the
// tool emits: configuration model dumps, validation results, render results
// and import graphs.
//
// Documents embed Header inline so kind, apiVersion and metadata appear at
// the top level of the serialized output:
//
//	type RenderResult struct {
//	    header.Header `json:",inline" yaml:",inline"`
//	    Records int `json:"records" yaml:"records"`
//	}
//
//	var r RenderResult
//	r.Init(header.KindRenderResult, version)
//
// Init sets the kind, APIVersion and a metadata map holding a UTC RFC 3339
// timestamp and, when known, the tool version.
package header
