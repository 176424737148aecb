/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationErrors is the ordered, append-only list of error tokens produced
// by one validation run. An empty list means the model is valid.
type ValidationErrors []string

// Add appends a formatted token.
func (e *ValidationErrors) Add(format string, args ...any) {
	*e = append(*e, fmt.Sprintf(format, args...))
}

// Len returns the number of tokens.
func (e ValidationErrors) Len() int {
	return len(e)
}

// IsEmpty reports whether no errors were recorded.
func (e ValidationErrors) IsEmpty() bool {
	return len(e) == 0
}

// Contains reports whether any token contains substr.
func (e ValidationErrors) Contains(substr string) bool {
	return slices.ContainsFunc(e, func(s string) bool {
		return strings.Contains(s, substr)
	})
}

// Tokens returns a copy of the tokens.
func (e ValidationErrors) Tokens() []string {
	return slices.Clone([]string(e))
}

// String joins the tokens with newlines.
func (e ValidationErrors) String() string {
	return strings.Join(e, "\n")
}

// Error implements error.
func (e ValidationErrors) Error() string {
	switch len(e) {
	case 0:
		return "no validation errors"
	case 1:
		return e[0]
	default:
		return fmt.Sprintf("%d validation errors: %s", len(e), strings.Join(e, "; "))
	}
}
