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
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/NVIDIA/confmodel/pkg/errors"
)

// Source resolves qualified class names to descriptors.
type Source interface {
	Resolve(name string) (*Class, error)
}

// Catalog is an eager Source: every descriptor is materialised and
// validated when it is added.
type Catalog struct {
	mu      sync.RWMutex
	classes map[string]*Class
	decoder *Decoder
}

// NewCatalog creates a catalog holding classes.
func NewCatalog(classes ...*Class) (*Catalog, error) {
	c := &Catalog{
		classes: make(map[string]*Class, len(classes)),
		decoder: NewDecoder(),
	}
	for _, cls := range classes {
		if err := c.Add(cls); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add validates cls and adds it. A name may only be added once.
func (c *Catalog) Add(cls *Class) error {
	if err := c.decoder.Validate(cls); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.classes[cls.Name]; exists {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("class %s already in catalog", cls.Name),
			map[string]any{"class": cls.Name})
	}
	c.classes[cls.Name] = cls
	return nil
}

// Resolve implements Source.
func (c *Catalog) Resolve(name string) (*Class, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	cls, ok := c.classes[name]
	if !ok {
		return nil, errors.NewWithContext(errors.ErrCodeClassNotFound,
			fmt.Sprintf("class not found: %s", name),
			map[string]any{"class": name})
	}
	return cls, nil
}

// Names returns the sorted names of all classes in the catalog.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return sortedNames(c.classes)
}

// Len returns the number of classes.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.classes)
}

// LoadDir walks root and decodes every descriptor file into a Catalog.
// Files are decoded concurrently; the first failure cancels the rest.
func LoadDir(ctx context.Context, root string, opts ...DecoderOption) (*Catalog, error) {
	paths, err := descriptorFiles(root)
	if err != nil {
		return nil, err
	}

	decoder := NewDecoder(opts...)
	results := make([][]*Class, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			classes, err := decoder.DecodeFile(path)
			if err != nil {
				return err
			}
			results[i] = classes
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog := &Catalog{
		classes: make(map[string]*Class),
		decoder: decoder,
	}
	for i, classes := range results {
		for _, cls := range classes {
			if err := catalog.Add(cls); err != nil {
				return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
					"failed to add descriptor to catalog", err,
					map[string]any{"path": paths[i]})
			}
		}
	}

	slog.Debug("loaded descriptor directory", "root", root, "files", len(paths), "classes", catalog.Len())
	return catalog, nil
}

func descriptorFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if isDescriptorFile(path) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeNotFound, "failed to walk descriptor directory", err,
			map[string]any{"root": root})
	}
	return paths, nil
}

func isDescriptorFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range Extensions() {
		if ext == e {
			return true
		}
	}
	return false
}
