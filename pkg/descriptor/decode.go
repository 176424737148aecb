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

package descriptor

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/serializer"
)

// Supported descriptor file extensions.
const (
	ExtYAML = ".yaml"
	ExtYML  = ".yml"
	ExtHCL  = ".hcl"
)

// Extensions lists the descriptor file extensions in lookup order.
func Extensions() []string {
	return []string{ExtYAML, ExtYML, ExtHCL}
}

var (
	classNamePattern  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*([.$][A-Za-z_$][A-Za-z0-9_$]*)*$`)
	identifierPattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	modifierNames     = map[string]bool{
		"public": true, "protected": true, "private": true,
		"static": true, "final": true, "abstract": true,
	}
)

// Decoder turns descriptor documents into validated Class values.
type Decoder struct {
	validate  *validator.Validate
	variables map[string]string
}

// DecoderOption configures a Decoder.
type DecoderOption func(*Decoder)

// WithVariables exposes vars to HCL documents as var.<name>.
func WithVariables(vars map[string]string) DecoderOption {
	return func(d *Decoder) {
		for k, v := range vars {
			d.variables[k] = v
		}
	}
}

// NewDecoder creates a Decoder.
func NewDecoder(opts ...DecoderOption) *Decoder {
	d := &Decoder{
		validate:  newValidate(),
		variables: make(map[string]string),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func newValidate() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("classname", func(fl validator.FieldLevel) bool {
		return classNamePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("identifier", func(fl validator.FieldLevel) bool {
		return identifierPattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("modifier", func(fl validator.FieldLevel) bool {
		return modifierNames[strings.ToLower(strings.TrimSpace(fl.Field().String()))]
	})
	_ = v.RegisterValidation("autowire", func(fl validator.FieldLevel) bool {
		a, err := model.ParseAutowire(fl.Field().String())
		return err == nil && a != model.AutowireInherited
	})
	return v
}

// Validate checks the document rules of c.
func (d *Decoder) Validate(c *Class) error {
	if c == nil {
		return errors.New(errors.ErrCodeInvalidRequest, "class descriptor cannot be nil")
	}
	if err := d.validate.Struct(c); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("invalid class descriptor %s", c.Name), formatValidationError(err),
			map[string]any{"class": c.Name})
	}
	return nil
}

// formatValidationError joins field errors into one readable message.
func formatValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !stderrors.As(err, &fieldErrs) {
		return err
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, e := range fieldErrs {
		msgs = append(msgs, formatFieldError(e))
	}
	return stderrors.New(strings.Join(msgs, "; "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Namespace()
	switch e.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "classname":
		return fmt.Sprintf("%s must be a qualified class name, got %q", field, e.Value())
	case "identifier":
		return fmt.Sprintf("%s must be an identifier, got %q", field, e.Value())
	case "modifier":
		return fmt.Sprintf("%s must be a modifier keyword, got %q", field, e.Value())
	case "autowire":
		return fmt.Sprintf("%s must be one of: no byName byType constructor", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, e.Param())
	case "unique":
		return fmt.Sprintf("%s must not contain duplicates", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s entries", field, e.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// DecodeFile reads and decodes a descriptor file; the format follows the
// extension.
func (d *Decoder) DecodeFile(path string) ([]*Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "descriptor file not found", err,
				map[string]any{"path": path})
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal, "failed to read descriptor file", err,
			map[string]any{"path": path})
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ExtYAML, ExtYML:
		return d.DecodeYAML(data, path)
	case ExtHCL:
		return d.DecodeHCL(data, path)
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest, "unsupported descriptor file extension",
			map[string]any{"path": path})
	}
}

// DecodeYAML decodes a YAML document holding a File.
func (d *Decoder) DecodeYAML(data []byte, filename string) ([]*Class, error) {
	reader, err := serializer.NewReader(serializer.FormatYAML, bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, "failed to create YAML reader", err)
	}

	var f File
	if err := reader.Deserialize(&f); err != nil {
		if stderrors.Is(err, io.EOF) {
			slog.Warn("empty descriptor file", "path", filename)
			return nil, nil
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to decode YAML descriptor", err,
			map[string]any{"path": filename})
	}
	return d.finish(&f, filename)
}

// DecodeHCL decodes an HCL document of class blocks. Variables configured
// with WithVariables are available as var.<name>.
func (d *Decoder) DecodeHCL(data []byte, filename string) ([]*Class, error) {
	parser := hclparse.NewParser()
	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to parse HCL descriptor", diags,
			map[string]any{"path": filename})
	}

	var f File
	diags = gohcl.DecodeBody(hclFile.Body, d.evalContext(), &f)
	if diags.HasErrors() {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest, "failed to decode HCL descriptor", diags,
			map[string]any{"path": filename})
	}
	return d.finish(&f, filename)
}

func (d *Decoder) evalContext() *hcl.EvalContext {
	vars := make(map[string]cty.Value, len(d.variables))
	for k, v := range d.variables {
		vars[k] = cty.StringVal(v)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"var": cty.ObjectVal(vars),
		},
	}
}

func (d *Decoder) finish(f *File, filename string) ([]*Class, error) {
	seen := make(map[string]bool, len(f.Classes))
	for _, c := range f.Classes {
		if err := d.Validate(c); err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				fmt.Sprintf("class %s declared twice", c.Name),
				map[string]any{"path": filename, "class": c.Name})
		}
		seen[c.Name] = true
	}
	slog.Debug("decoded descriptor file", "path", filename, "classes", len(f.Classes))
	return f.Classes, nil
}

// sortedNames returns the keys of m sorted.
func sortedNames(m map[string]*Class) []string {
	names := make([]string, 0, len(m))
	for n := range m {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
