/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"strings"

	"github.com/NVIDIA/confmodel/pkg/graph"
	"github.com/NVIDIA/confmodel/pkg/model"
)

func validateModel(m *model.ConfigurationModel, errs *ValidationErrors) {
	if m.IsEmpty() {
		errs.Add("model is empty")
	}
}

// validateClasses applies the per-class rules to every class reachable from
// the top-level classes: the class itself, then its declaring chain, then
// its imports. Each class name is checked once.
func validateClasses(m *model.ConfigurationModel, errs *ValidationErrors) {
	visited := make(map[string]bool)

	var visit func(c *model.ConfigurationClass)
	visit = func(c *model.ConfigurationClass) {
		if c == nil || visited[c.Name()] {
			return
		}
		visited[c.Name()] = true

		validateClass(c, errs)
		visit(c.DeclaringClass())
		for _, imp := range c.Imports() {
			visit(imp)
		}
	}

	for _, c := range m.Classes() {
		visit(c)
	}
}

func validateClass(c *model.ConfigurationClass, errs *ValidationErrors) {
	mods := c.Modifiers()
	beans := len(c.BeanMethods()) + len(c.AutoBeanMethods())
	externals := len(c.ExternalBeanMethods()) + len(c.ExternalValueMethods())

	if !c.IsPotential() {
		if beans == 0 && len(c.Imports()) == 0 && !(mods.IsAbstract() && externals > 0) {
			errs.Add("configuration class must declare at least one bean: %s", c.Name())
		}
		if mods.IsAbstract() && externals == 0 && len(c.AutoBeanMethods()) == 0 {
			errs.Add("abstract configuration class must declare at least one external bean, external value or auto bean: %s", c.Name())
		}
	}

	if mods.IsFinal() {
		errs.Add("configuration class may not be final: %s", c.Name())
	}

	for _, method := range c.Methods() {
		if method.MethodModifiers().IsPrivate() {
			errs.Add("%s method may not be private: %s.%s", method.Kind(), c.Name(), method.MethodName())
		}
	}

	for _, bm := range c.BeanMethods() {
		if bm.IsScopedProxy() && isBuiltinScope(bm.Metadata.Scope) {
			errs.Add("scoped proxy cannot be used on a singleton or prototype bean: %s.%s", c.Name(), bm.Name)
		}
	}
}

func isBuiltinScope(scope string) bool {
	return scope == "" || scope == model.ScopeSingleton || scope == model.ScopePrototype
}

// validateOverrides scans the flattened closure pairwise: a bean method that
// may not be overridden in an earlier class is claimed illegally by every
// later class declaring a bean method with the same name.
func validateOverrides(m *model.ConfigurationModel, errs *ValidationErrors) {
	classes := m.AllClasses()
	for j := 1; j < len(classes); j++ {
		later := classes[j]
		reported := make(map[string]bool)
		for i := 0; i < j; i++ {
			earlier := classes[i]
			for _, final := range earlier.FinalBeanMethods() {
				if reported[final.Name] || !later.ContainsBeanMethod(final.Name) {
					continue
				}
				reported[final.Name] = true
				errs.Add("illegal bean override: %s.%s overrides final bean declared in %s",
					later.Name(), final.Name, earlier.Name())
			}
		}
	}
}

func validateAspects(m *model.ConfigurationModel, errs *ValidationErrors) {
	for _, a := range m.AspectClasses() {
		if a.Metadata == nil {
			errs.Add("aspect class must carry aspect metadata: %s", a.Name)
		}
	}
}

func validateImportGraph(m *model.ConfigurationModel, errs *ValidationErrors) {
	for _, cycle := range graph.Build(m).Cycles() {
		errs.Add("circular import: %s", strings.Join(cycle, " -> "))
	}
}
