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

package registry

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/model"
)

func TestMemory_New(t *testing.T) {
	reg := NewMemory()
	require.NotNil(t, reg)
	assert.True(t, reg.IsEmpty())
	assert.Equal(t, 0, reg.RecordCount())
}

func TestMemory_RegisterRecord(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		rec     *Record
		wantErr bool
	}{
		{"valid", "a", &Record{Kind: KindFactoryMethod}, false},
		{"empty key", "", &Record{}, true},
		{"nil record", "a", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewMemory().RegisterRecord(tt.key, tt.rec, VisibilityPublic)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.IsCode(err, errors.ErrCodeInvalidRequest))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMemory_HiddenScope(t *testing.T) {
	reg := NewMemory()
	require.NoError(t, reg.RegisterRecord("visible", &Record{Kind: KindFactoryMethod}, VisibilityPublic))
	require.NoError(t, reg.RegisterRecord("secret", &Record{Kind: KindFactoryMethod, Origin: "com.acme.Outer"}, VisibilityHidden))

	_, ok := reg.Record("visible")
	assert.True(t, ok)
	_, ok = reg.Record("secret")
	assert.False(t, ok, "hidden record leaked into the public scope")

	rec, ok := reg.HiddenRecord("secret")
	require.True(t, ok)
	assert.Equal(t, VisibilityHidden, rec.Visibility)

	assert.Equal(t, 1, reg.Count(VisibilityPublic))
	assert.Equal(t, 1, reg.Count(VisibilityHidden))
	assert.Equal(t, 2, reg.RecordCount())
}

func TestMemory_ResolveFromAncestors(t *testing.T) {
	reg := NewMemory()
	require.NoError(t, reg.RegisterRecord("secret", &Record{Origin: "com.acme.Outer"}, VisibilityHidden))
	reg.LinkAncestor("com.acme.Outer$Inner", "com.acme.Outer")

	_, ok := reg.ResolveFrom("com.acme.Outer$Inner", "secret")
	assert.True(t, ok, "descendant should see ancestor's hidden record")

	_, ok = reg.ResolveFrom("com.acme.Outer", "secret")
	assert.True(t, ok)

	_, ok = reg.ResolveFrom("com.acme.Unrelated", "secret")
	assert.False(t, ok)

	a, ok := reg.Ancestor("com.acme.Outer$Inner")
	require.True(t, ok)
	assert.Equal(t, "com.acme.Outer", a)
}

func TestMemory_ResolveFromSurvivesAncestorLoop(t *testing.T) {
	reg := NewMemory()
	reg.LinkAncestor("A", "B")
	reg.LinkAncestor("B", "A")
	require.NoError(t, reg.RegisterRecord("x", &Record{Origin: "C"}, VisibilityHidden))

	_, ok := reg.ResolveFrom("A", "x")
	assert.False(t, ok)
}

func TestMemory_ResolveFromImports(t *testing.T) {
	reg := NewMemory()
	require.NoError(t, reg.RegisterRecord("scopedTarget.pool", &Record{Origin: "com.acme.DataConfig"}, VisibilityHidden))
	reg.LinkImport("com.acme.AppConfig", "com.acme.ServiceConfig")
	reg.LinkImport("com.acme.ServiceConfig", "com.acme.DataConfig")
	reg.LinkImport("com.acme.ServiceConfig", "com.acme.DataConfig")
	reg.LinkAncestor("com.acme.AppConfig$Web", "com.acme.AppConfig")

	for _, class := range []string{
		"com.acme.DataConfig",
		"com.acme.ServiceConfig",
		"com.acme.AppConfig",
		"com.acme.AppConfig$Web",
	} {
		_, ok := reg.ResolveFrom(class, "scopedTarget.pool")
		assert.True(t, ok, class)
	}

	_, ok := reg.ResolveFrom("com.acme.Unrelated", "scopedTarget.pool")
	assert.False(t, ok)

	snap := reg.Snapshot()
	assert.Equal(t, []string{"com.acme.DataConfig"}, snap.Imports["com.acme.ServiceConfig"])
}

func TestMemory_ResolveFromSurvivesImportLoop(t *testing.T) {
	reg := NewMemory()
	reg.LinkImport("A", "B")
	reg.LinkImport("B", "A")
	require.NoError(t, reg.RegisterRecord("x", &Record{Origin: "C"}, VisibilityHidden))

	_, ok := reg.ResolveFrom("A", "x")
	assert.False(t, ok)
}

func TestMemory_Aliases(t *testing.T) {
	reg := NewMemory()
	require.NoError(t, reg.RegisterRecord("dataSource", &Record{Kind: KindFactoryMethod}, VisibilityPublic))

	require.NoError(t, reg.RegisterAlias("dataSource", "ds", VisibilityPublic))
	require.NoError(t, reg.RegisterAlias("dataSource", "db", VisibilityPublic))
	require.NoError(t, reg.RegisterAlias("dataSource", "ds", VisibilityPublic), "re-registration is a no-op")

	rec, ok := reg.Record("ds")
	require.True(t, ok)
	assert.Equal(t, "dataSource", rec.Key)
	assert.Equal(t, []string{"db", "ds"}, reg.Aliases("dataSource", VisibilityPublic))

	require.NoError(t, reg.RegisterRecord("other", &Record{}, VisibilityPublic))
	assert.Error(t, reg.RegisterAlias("other", "ds", VisibilityPublic))
	assert.Error(t, reg.RegisterAlias("dataSource", "other", VisibilityPublic))
	assert.Error(t, reg.RegisterAlias("dataSource", "dataSource", VisibilityPublic))
}

func TestMemory_StoresCopies(t *testing.T) {
	reg := NewMemory()
	rec := &Record{Kind: KindFactoryMethod, Aliases: []string{"x"}}
	require.NoError(t, reg.RegisterRecord("a", rec, VisibilityPublic))

	rec.Aliases[0] = "mutated"
	got, ok := reg.Record("a")
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, got.Aliases)

	got.Kind = KindAspect
	again, _ := reg.Record("a")
	assert.Equal(t, KindFactoryMethod, again.Kind)
}

func TestMemory_ReplaceKeepsOrder(t *testing.T) {
	reg := NewMemory()
	require.NoError(t, reg.RegisterRecord("a", &Record{Scope: "singleton"}, VisibilityPublic))
	require.NoError(t, reg.RegisterRecord("b", &Record{}, VisibilityPublic))
	require.NoError(t, reg.RegisterRecord("a", &Record{Scope: "prototype"}, VisibilityPublic))

	snap := reg.Snapshot()
	require.Len(t, snap.Public, 2)
	assert.Equal(t, "a", snap.Public[0].Key)
	assert.Equal(t, "prototype", snap.Public[0].Scope)
	assert.Empty(t, snap.Hidden)
}

func TestMemory_ConcurrentAccess(t *testing.T) {
	reg := NewMemory()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := fmt.Sprintf("bean-%d", n)
			_ = reg.RegisterRecord(key, &Record{Kind: KindFactoryMethod}, VisibilityPublic)
			_, _ = reg.Record(key)
			_ = reg.RecordCount()
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 50, reg.RecordCount())
}

func TestVisibilityOf(t *testing.T) {
	assert.Equal(t, VisibilityPublic, VisibilityOf(model.ModPublic|model.ModFinal))
	assert.Equal(t, VisibilityHidden, VisibilityOf(model.ModProtected))
	assert.Equal(t, VisibilityHidden, VisibilityOf(0))
}

func TestRecord_CloneAndAttributes(t *testing.T) {
	var nilRec *Record
	assert.Nil(t, nilRec.Clone())

	r := &Record{Key: "a"}
	r.SetAttribute("configuration", "true")
	v, ok := r.Attribute("configuration")
	require.True(t, ok)
	assert.Equal(t, "true", v)

	c := r.Clone()
	c.SetAttribute("configuration", "false")
	v, _ = r.Attribute("configuration")
	assert.Equal(t, "true", v)
}
