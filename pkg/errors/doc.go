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

// Package errors provides structured error types for better observability
// and programmatic error handling across the configuration pipeline.
//
// Two tiers of failure exist. Resolution errors (ErrCodeClassNotFound,
// ErrCodeCircularImport) abort parsing immediately. Malformed configuration
// (ErrCodeMalformedConfiguration) is either raised eagerly by the parser for
// self-contradictory declarations or produced by the validator with every
// accumulated error token.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeClassNotFound,
//	    "failed to resolve imported class",
//	    cause,
//	    map[string]any{
//	        "class":    "com.acme.DataConfig",
//	        "importer": "com.acme.AppConfig",
//	    },
//	)
//
//	if errors.IsCode(err, errors.ErrCodeClassNotFound) {
//	    // handle lookup failure
//	}
package errors
