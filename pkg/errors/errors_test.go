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

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeClassNotFound, "class not found")

	if err.Code != ErrCodeClassNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeClassNotFound, err.Code)
	}
	if err.Message != "class not found" {
		t.Errorf("expected message 'class not found', got %s", err.Message)
	}
	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("underlying error")
	err := Wrap(ErrCodeInternal, "operation failed", cause)

	if err.Code != ErrCodeInternal {
		t.Errorf("expected code %s, got %s", ErrCodeInternal, err.Code)
	}
	if !errors.Is(err, cause) {
		t.Errorf("expected cause to be wrapped")
	}
}

func TestWrapWithContext(t *testing.T) {
	cause := errors.New("no such file")
	ctx := map[string]any{
		"class":    "com.acme.DataConfig",
		"importer": "com.acme.AppConfig",
	}

	err := WrapWithContext(ErrCodeClassNotFound, "import failed", cause, ctx)

	if err.Code != ErrCodeClassNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeClassNotFound, err.Code)
	}
	if err.Context == nil {
		t.Fatal("expected context to be set")
	}
	if err.Context["class"] != "com.acme.DataConfig" {
		t.Errorf("expected class to be com.acme.DataConfig")
	}
}

func TestError(t *testing.T) {
	tests := []struct {
		name     string
		err      *StructuredError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(ErrCodeMalformedConfiguration, "model is empty"),
			expected: "[MALFORMED_CONFIGURATION] model is empty",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeInternal, "failed", errors.New("root cause")),
			expected: "[INTERNAL] failed: root cause",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestIsCode(t *testing.T) {
	inner := New(ErrCodeClassNotFound, "missing")
	outer := Wrap(ErrCodeInternal, "parse failed", inner)
	plain := fmt.Errorf("context: %w", outer)

	tests := []struct {
		name string
		err  error
		code ErrorCode
		want bool
	}{
		{"direct match", inner, ErrCodeClassNotFound, true},
		{"outer match", outer, ErrCodeInternal, true},
		{"nested match", outer, ErrCodeClassNotFound, true},
		{"through fmt wrap", plain, ErrCodeClassNotFound, true},
		{"no match", outer, ErrCodeCircularImport, false},
		{"plain error", errors.New("x"), ErrCodeInternal, false},
		{"nil error", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCode(tt.err, tt.code); got != tt.want {
				t.Errorf("IsCode() = %v, want %v", got, tt.want)
			}
		})
	}
}
