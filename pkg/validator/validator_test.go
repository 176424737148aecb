/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/

package validator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/header"
	"github.com/NVIDIA/confmodel/pkg/model"
)

func withBean(name string, beans ...string) *model.ConfigurationClass {
	c := model.NewConfigurationClass(name)
	for _, b := range beans {
		c.AddBeanMethod(model.NewBeanMethod(b, model.ModPublic))
	}
	return c
}

func finalBean(name string) *model.BeanMethod {
	b := model.NewBeanMethod(name, model.ModPublic)
	b.Metadata.AllowOverriding = false
	return b
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		model func() *model.ConfigurationModel
		want  []string
	}{
		{
			name:  "valid single class",
			model: func() *model.ConfigurationModel { return model.New().Add(withBean("A", "a")) },
			want:  []string{},
		},
		{
			name:  "empty model",
			model: model.New,
			want:  []string{"model is empty"},
		},
		{
			name:  "no beans",
			model: func() *model.ConfigurationModel { return model.New().Add(model.NewConfigurationClass("A")) },
			want:  []string{"configuration class must declare at least one bean: A"},
		},
		{
			name: "imports satisfy bean requirement",
			model: func() *model.ConfigurationModel {
				return model.New().Add(model.NewConfigurationClass("A").AddImport(withBean("B", "b")))
			},
			want: []string{},
		},
		{
			name: "abstract with external bean",
			model: func() *model.ConfigurationModel {
				c := model.NewConfigurationClass("A", model.WithModifiers(model.ModPublic|model.ModAbstract))
				c.AddExternalBeanMethod(&model.ExternalBeanMethod{Name: "ds", Modifiers: model.ModPublic})
				return model.New().Add(c)
			},
			want: []string{},
		},
		{
			name: "abstract with only external values",
			model: func() *model.ConfigurationModel {
				c := model.NewConfigurationClass("A", model.WithModifiers(model.ModPublic|model.ModAbstract))
				c.AddExternalValueMethod(&model.ExternalValueMethod{Name: "getUrl", Modifiers: model.ModPublic, ReturnType: "String"})
				return model.New().Add(c)
			},
			want: []string{},
		},
		{
			name: "abstract without external or auto bean",
			model: func() *model.ConfigurationModel {
				c := model.NewConfigurationClass("A", model.WithModifiers(model.ModAbstract))
				return model.New().Add(c.AddBeanMethod(model.NewBeanMethod("a", model.ModPublic)))
			},
			want: []string{"abstract configuration class must declare at least one external bean, external value or auto bean: A"},
		},
		{
			name: "auto bean counts as bean",
			model: func() *model.ConfigurationModel {
				c := model.NewConfigurationClass("A")
				c.AddAutoBeanMethod(&model.AutoBeanMethod{Name: "repo", Modifiers: model.ModPublic, ReturnType: "Repo"})
				return model.New().Add(c)
			},
			want: []string{},
		},
		{
			name: "final class",
			model: func() *model.ConfigurationModel {
				c := model.NewConfigurationClass("A", model.WithModifiers(model.ModFinal))
				c.AddBeanMethod(model.NewBeanMethod("a", model.ModPublic))
				return model.New().Add(c)
			},
			want: []string{"configuration class may not be final: A"},
		},
		{
			name: "private methods of every kind",
			model: func() *model.ConfigurationModel {
				c := model.NewConfigurationClass("A")
				c.AddBeanMethod(model.NewBeanMethod("a", model.ModPrivate))
				c.AddExternalBeanMethod(&model.ExternalBeanMethod{Name: "e", Modifiers: model.ModPrivate})
				c.AddExternalValueMethod(&model.ExternalValueMethod{Name: "getURL", Modifiers: model.ModPrivate})
				c.AddAutoBeanMethod(&model.AutoBeanMethod{Name: "r", Modifiers: model.ModPrivate, ReturnType: "R"})
				return model.New().Add(c)
			},
			want: []string{
				"bean method may not be private: A.a",
				"external bean method may not be private: A.e",
				"external value method may not be private: A.getURL",
				"auto bean method may not be private: A.r",
			},
		},
		{
			name: "scoped proxy on singleton",
			model: func() *model.ConfigurationModel {
				b := model.NewBeanMethod("a", model.ModPublic)
				b.ScopedProxy = &model.ScopedProxyMetadata{}
				s := model.NewBeanMethod("s", model.ModPublic)
				s.Metadata.Scope = "session"
				s.ScopedProxy = &model.ScopedProxyMetadata{}
				return model.New().Add(model.NewConfigurationClass("A").AddBeanMethod(b).AddBeanMethod(s))
			},
			want: []string{"scoped proxy cannot be used on a singleton or prototype bean: A.a"},
		},
		{
			name: "potential declaring class exempt",
			model: func() *model.ConfigurationModel {
				outer := model.NewConfigurationClass("Outer", model.AsPotential())
				return model.New().Add(withBean("Outer$A", "a").SetDeclaringClass(outer))
			},
			want: []string{},
		},
		{
			name: "declaring chain is validated",
			model: func() *model.ConfigurationModel {
				outer := model.NewConfigurationClass("Outer")
				return model.New().Add(withBean("Outer$A", "a").SetDeclaringClass(outer))
			},
			want: []string{"configuration class must declare at least one bean: Outer"},
		},
		{
			name: "bare aspect",
			model: func() *model.ConfigurationModel {
				return model.New().Add(withBean("A", "a")).
					AddAspect(&model.AspectClass{Name: "Bare"}).
					AddAspect(&model.AspectClass{Name: "Good", Metadata: &model.AspectMetadata{}})
			},
			want: []string{"aspect class must carry aspect metadata: Bare"},
		},
		{
			name: "circular import",
			model: func() *model.ConfigurationModel {
				a := withBean("A", "a")
				b := withBean("B", "b")
				a.AddImport(b)
				b.AddImport(a)
				return model.New().Add(a)
			},
			want: []string{"circular import: A -> B -> A"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := New().Validate(tt.model())
			assert.Equal(t, tt.want, errs.Tokens())
		})
	}
}

func TestValidate_PrivateMethodOnlyError(t *testing.T) {
	m := model.New().Add(model.NewConfigurationClass("A").AddBeanMethod(model.NewBeanMethod("a", model.ModPrivate)))
	errs := New().Validate(m)
	require.Equal(t, 1, errs.Len())
	assert.True(t, errs.Contains("may not be private"))
	assert.False(t, errs.Contains("must declare at least one bean"))
}

func TestValidate_IllegalOverrideThroughImport(t *testing.T) {
	build := func(iDeclaresM bool) *model.ConfigurationModel {
		a := model.NewConfigurationClass("A").AddBeanMethod(finalBean("m"))
		i := withBean("I", "other")
		if iDeclaresM {
			i.AddBeanMethod(model.NewBeanMethod("m", model.ModPublic))
		}
		c := model.NewConfigurationClass("C").AddImport(i)
		return model.New().Add(a).Add(c)
	}

	errs := New().Validate(build(true))
	assert.Equal(t, []string{"illegal bean override: I.m overrides final bean declared in A"}, errs.Tokens())

	assert.True(t, New().Validate(build(false)).IsEmpty())
}

func TestValidate_OverrideReportedOncePerClass(t *testing.T) {
	a := model.NewConfigurationClass("A").AddBeanMethod(finalBean("m"))
	b := model.NewConfigurationClass("B").AddBeanMethod(finalBean("m"))
	c := withBean("C", "m")
	errs := New().Validate(model.New().Add(a).Add(b).Add(c))
	assert.Equal(t, []string{
		"illegal bean override: B.m overrides final bean declared in A",
		"illegal bean override: C.m overrides final bean declared in A",
	}, errs.Tokens())
}

func TestValidate_OverridableBeansMayRepeat(t *testing.T) {
	errs := New().Validate(model.New().Add(withBean("A", "m")).Add(withBean("B", "m")))
	assert.True(t, errs.IsEmpty())
}

func TestValidate_Deterministic(t *testing.T) {
	build := func() *model.ConfigurationModel {
		a := model.NewConfigurationClass("A", model.WithModifiers(model.ModFinal))
		a.AddBeanMethod(model.NewBeanMethod("x", model.ModPrivate))
		a.AddBeanMethod(model.NewBeanMethod("y", model.ModPrivate))
		b := model.NewConfigurationClass("B")
		c := model.NewConfigurationClass("C")
		b.AddImport(c)
		c.AddImport(b)
		return model.New().Add(a).Add(b).
			AddAspect(&model.AspectClass{Name: "Z"}).
			AddAspect(&model.AspectClass{Name: "Y"})
	}

	v := New()
	m := build()
	first := v.Validate(m)
	require.NotEmpty(t, first)
	for range 20 {
		assert.Equal(t, first, v.Validate(m))
	}
	assert.Equal(t, first, v.Validate(build()))
}

func TestValidate_Nil(t *testing.T) {
	assert.Equal(t, []string{"model is empty"}, New().Validate(nil).Tokens())
}

func TestAssertValid(t *testing.T) {
	v := New()
	assert.NoError(t, v.AssertValid(model.New().Add(withBean("A", "a"))))

	err := v.AssertValid(model.New())
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeMalformedConfiguration))
	assert.Contains(t, err.Error(), "model is empty")

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Equal(t, 1, errs.Len())
}

func TestValidationErrors(t *testing.T) {
	var errs ValidationErrors
	assert.True(t, errs.IsEmpty())
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("first %d", 1)
	assert.Equal(t, "first 1", errs.Error())
	errs.Add("second")
	assert.Equal(t, 2, errs.Len())
	assert.Equal(t, "2 validation errors: first 1; second", errs.Error())
	assert.Equal(t, "first 1\nsecond", errs.String())
	assert.True(t, errs.Contains("cond"))
	assert.False(t, errs.Contains("third"))

	tokens := errs.Tokens()
	tokens[0] = "changed"
	assert.Equal(t, "first 1", errs[0])
}

func TestCheck(t *testing.T) {
	v := New(WithVersion("1.0.0"))

	result, err := v.Check(context.Background(), model.New().Add(withBean("A", "a").AddImport(withBean("B", "b"))))
	require.NoError(t, err)
	assert.Equal(t, header.KindValidationResult, result.Kind)
	assert.Equal(t, header.APIVersion, result.APIVersion)
	assert.Equal(t, "1.0.0", result.Metadata["version"])
	assert.True(t, result.IsValid())
	assert.Equal(t, 2, result.Summary.Classes)
	assert.Empty(t, result.Errors)

	result, err = v.Check(context.Background(), model.New())
	require.NoError(t, err)
	assert.False(t, result.IsValid())
	assert.Equal(t, StatusInvalid, result.Summary.Status)
	assert.Equal(t, []string{"model is empty"}, result.Errors)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = v.Check(ctx, model.New())
	assert.ErrorIs(t, err, context.Canceled)
}
