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

// Package validator checks the structural rules of a configuration model.
//
// # Overview
//
// Validate walks a fully assembled model and returns every violation as an
// ordered list of error tokens. The list is the gate before rendering: an
// empty list means the model may be rendered.
//
// # Rules
//
// Rules are cumulative and run in a fixed order:
//
//   - model: a model without top-level classes is invalid
//   - per class, for every class reachable through imports and declaring
//     classes (each checked once): at least one bean unless abstract with
//     external beans or importing other classes; abstract classes need an
//     external or auto bean; classes may not be final; factory methods may
//     not be private; scoped proxies need a custom scope
//   - overrides: a bean that may not be overridden is claimed illegally by
//     any later class in render order declaring the same bean name
//   - aspects: aspect classes must carry aspect metadata
//   - imports: cycles in the import graph
//
// Classes that entered the model only as declaring ancestors are exempt from
// the bean count rules.
//
// # Usage
//
//	v := validator.New(validator.WithVersion(version))
//	if errs := v.Validate(m); !errs.IsEmpty() {
//	    for _, token := range errs {
//	        fmt.Println(token)
//	    }
//	}
//
// AssertValid wraps the tokens in an ErrCodeMalformedConfiguration error;
// Check returns a ValidationResult document for the CLI.
package validator
