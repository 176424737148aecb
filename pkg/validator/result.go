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

package validator

import (
	"time"

	"github.com/NVIDIA/confmodel/pkg/header"
)

// Status is the overall validation outcome.
type Status string

const (
	// StatusValid indicates no rule was violated.
	StatusValid Status = "valid"

	// StatusInvalid indicates at least one rule was violated.
	StatusInvalid Status = "invalid"
)

// ValidationResult is the document emitted for one validation run.
type ValidationResult struct {
	header.Header `json:",inline" yaml:",inline"`

	// Summary contains aggregate validation statistics.
	Summary Summary `json:"summary" yaml:"summary"`

	// Errors lists the violations in rule order.
	Errors []string `json:"errors" yaml:"errors"`
}

// Summary contains aggregate statistics about the validation.
type Summary struct {
	// Classes is the number of classes in the model closure.
	Classes int `json:"classes" yaml:"classes"`

	// Aspects is the number of aspect classes.
	Aspects int `json:"aspects" yaml:"aspects"`

	// Errors is the number of violations.
	Errors int `json:"errors" yaml:"errors"`

	// Status is the overall validation status.
	Status Status `json:"status" yaml:"status"`

	// Duration is how long the validation took.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// NewValidationResult creates a new ValidationResult with initialized slices.
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		Errors: make([]string, 0),
	}
}

// IsValid reports whether the run found no violations.
func (r *ValidationResult) IsValid() bool {
	return r.Summary.Status == StatusValid
}
