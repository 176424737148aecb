/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/header"
	"github.com/NVIDIA/confmodel/pkg/model"
)

// Validator checks the structural rules of a configuration model.
type Validator struct {
	// Version is the validator version (typically the CLI version).
	Version string
}

// Option is a functional option for configuring Validator instances.
type Option func(*Validator)

// WithVersion returns an Option that sets the Validator version string.
func WithVersion(version string) Option {
	return func(v *Validator) {
		v.Version = version
	}
}

// New creates a new Validator with the provided options.
func New(opts ...Option) *Validator {
	v := &Validator{}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Validate runs every rule against m and returns all violations. Rules run
// in a fixed order so repeated calls yield identical tokens.
func (v *Validator) Validate(m *model.ConfigurationModel) ValidationErrors {
	errs := ValidationErrors{}
	if m == nil {
		errs.Add("model is empty")
		return errs
	}

	validateModel(m, &errs)
	validateClasses(m, &errs)
	validateOverrides(m, &errs)
	validateAspects(m, &errs)
	validateImportGraph(m, &errs)

	validationErrors.Add(float64(errs.Len()))
	if errs.IsEmpty() {
		validationRuns.WithLabelValues(string(StatusValid)).Inc()
	} else {
		validationRuns.WithLabelValues(string(StatusInvalid)).Inc()
	}
	return errs
}

// AssertValid returns a malformed configuration error listing every token
// when m is invalid.
func (v *Validator) AssertValid(m *model.ConfigurationModel) error {
	errs := v.Validate(m)
	if errs.IsEmpty() {
		return nil
	}
	return errors.WrapWithContext(errors.ErrCodeMalformedConfiguration,
		"configuration model is invalid", errs,
		map[string]any{"errors": errs.Tokens()})
}

// Check validates m and returns the result document.
func (v *Validator) Check(ctx context.Context, m *model.ConfigurationModel) (*ValidationResult, error) {
	start := time.Now()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	result := NewValidationResult()
	result.Init(header.KindValidationResult, v.Version)

	errs := v.Validate(m)
	result.Errors = errs.Tokens()
	if m != nil {
		result.Summary.Classes = len(m.AllClasses())
		result.Summary.Aspects = len(m.AspectClasses())
	}
	result.Summary.Errors = errs.Len()
	result.Summary.Duration = time.Since(start)
	if errs.IsEmpty() {
		result.Summary.Status = StatusValid
	} else {
		result.Summary.Status = StatusInvalid
	}

	slog.Debug("validation completed",
		"classes", result.Summary.Classes,
		"errors", result.Summary.Errors,
		"status", result.Summary.Status,
		"duration", result.Summary.Duration)

	return result, nil
}

// String implements fmt.Stringer.
func (v *Validator) String() string {
	return fmt.Sprintf("Validator(version=%s)", v.Version)
}
