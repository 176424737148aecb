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

package renderer

import (
	"fmt"
	"strings"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/model"
)

// NamingStrategy derives the record key of a factory method.
type NamingStrategy interface {
	Name() string
	BeanName(c *model.ConfigurationClass, method string) string
}

// MethodNameStrategy names records after the method.
type MethodNameStrategy struct{}

func (MethodNameStrategy) Name() string { return "method" }

func (MethodNameStrategy) BeanName(_ *model.ConfigurationClass, method string) string {
	return method
}

// QualifiedNameStrategy names records <class simple name>.<method>.
type QualifiedNameStrategy struct{}

func (QualifiedNameStrategy) Name() string { return "qualified" }

func (QualifiedNameStrategy) BeanName(c *model.ConfigurationClass, method string) string {
	return c.SimpleName() + "." + method
}

// NamingStrategies lists the names accepted by NamingStrategyFor.
func NamingStrategies() []string {
	return []string{MethodNameStrategy{}.Name(), QualifiedNameStrategy{}.Name()}
}

// NamingStrategyFor returns the strategy registered under name. The empty
// name selects MethodNameStrategy.
func NamingStrategyFor(name string) (NamingStrategy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "method":
		return MethodNameStrategy{}, nil
	case "qualified":
		return QualifiedNameStrategy{}, nil
	default:
		return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("unknown naming strategy %q, supported: %s", name, strings.Join(NamingStrategies(), ", ")),
			map[string]any{"naming": name})
	}
}
