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
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/NVIDIA/confmodel/pkg/errors"
)

// DirSource is a deferred Source. A class name maps to a file below root,
// one directory per package segment; the file is decoded on first use and
// cached. Concurrent lookups of the same name share one decode.
type DirSource struct {
	root    string
	decoder *Decoder
	group   singleflight.Group

	mu    sync.RWMutex
	cache map[string]*Class
}

// NewDirSource creates a DirSource rooted at root.
func NewDirSource(root string, opts ...DecoderOption) *DirSource {
	return &DirSource{
		root:    root,
		decoder: NewDecoder(opts...),
		cache:   make(map[string]*Class),
	}
}

// Root returns the directory the source reads from.
func (s *DirSource) Root() string {
	return s.root
}

// Resolve implements Source.
func (s *DirSource) Resolve(name string) (*Class, error) {
	if cls, ok := s.cached(name); ok {
		return cls, nil
	}

	v, err, _ := s.group.Do(name, func() (any, error) {
		if cls, ok := s.cached(name); ok {
			return cls, nil
		}
		cls, err := s.load(name)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.cache[name] = cls
		s.mu.Unlock()
		return cls, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*Class), nil
}

func (s *DirSource) cached(name string) (*Class, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cls, ok := s.cache[name]
	return cls, ok
}

func (s *DirSource) load(name string) (*Class, error) {
	for _, path := range s.Candidates(name) {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		classes, err := s.decoder.DecodeFile(path)
		if err != nil {
			return nil, err
		}
		for _, cls := range classes {
			if cls.Name == name {
				return cls, nil
			}
		}
		return nil, errors.NewWithContext(errors.ErrCodeClassNotFound,
			fmt.Sprintf("descriptor file does not declare class %s", name),
			map[string]any{"class": name, "path": path})
	}
	return nil, errors.NewWithContext(errors.ErrCodeClassNotFound,
		fmt.Sprintf("class not found: %s", name),
		map[string]any{"class": name, "root": s.root})
}

// Candidates returns the file paths probed for name, in lookup order.
// Nested classes live in the file of their outermost class.
func (s *DirSource) Candidates(name string) []string {
	outer := name
	if i := strings.Index(outer, "$"); i >= 0 {
		outer = outer[:i]
	}
	base := filepath.Join(s.root, filepath.FromSlash(strings.ReplaceAll(outer, ".", "/")))

	exts := Extensions()
	paths := make([]string, 0, len(exts))
	for _, ext := range exts {
		paths = append(paths, base+ext)
	}
	return paths
}
