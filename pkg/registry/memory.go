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
	"log/slog"
	"maps"
	"slices"
	"sort"
	"sync"

	"github.com/NVIDIA/confmodel/pkg/errors"
)

// scope is one namespace of records and aliases.
type scope struct {
	records map[string]*Record
	aliases map[string]string
	order   []string
}

func newScope() *scope {
	return &scope{
		records: make(map[string]*Record),
		aliases: make(map[string]string),
	}
}

func (s *scope) resolve(key string) (*Record, bool) {
	if rec, ok := s.records[key]; ok {
		return rec, true
	}
	if target, ok := s.aliases[key]; ok {
		rec, ok := s.records[target]
		return rec, ok
	}
	return nil, false
}

// Memory is an in-memory Registry with a public scope and a nested hidden
// scope. Hidden records are never returned by Record; they resolve only
// through ResolveFrom for the class that produced them, its descendants and
// the classes that import it, directly or transitively.
//
// Memory is safe for concurrent use.
type Memory struct {
	mu        sync.RWMutex
	public    *scope
	hidden    *scope
	ancestors map[string]string
	imports   map[string][]string
}

// NewMemory creates an empty registry.
func NewMemory() *Memory {
	return &Memory{
		public:    newScope(),
		hidden:    newScope(),
		ancestors: make(map[string]string),
		imports:   make(map[string][]string),
	}
}

func (m *Memory) scopeFor(vis Visibility) *scope {
	if vis == VisibilityHidden {
		return m.hidden
	}
	return m.public
}

// RegisterRecord stores rec under key. A record already stored under key in
// the same scope is replaced.
func (m *Memory) RegisterRecord(key string, rec *Record, vis Visibility) error {
	if key == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "record key cannot be empty")
	}
	if rec == nil {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "record cannot be nil",
			map[string]any{"key": key})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.scopeFor(vis)
	if _, exists := s.records[key]; exists {
		slog.Debug("replacing record", "key", key, "visibility", vis.String())
	} else {
		s.order = append(s.order, key)
	}
	stored := rec.Clone()
	stored.Key = key
	stored.Visibility = vis
	s.records[key] = stored
	return nil
}

// RegisterAlias makes alias resolve to key in the scope selected by vis.
// Re-registering the same alias for the same key is a no-op.
func (m *Memory) RegisterAlias(key, alias string, vis Visibility) error {
	if key == "" || alias == "" {
		return errors.New(errors.ErrCodeInvalidRequest, "alias and key cannot be empty")
	}
	if key == alias {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest, "alias cannot equal its key",
			map[string]any{"key": key})
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.scopeFor(vis)
	if existing, ok := s.aliases[alias]; ok && existing != key {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("alias %s already registered for %s", alias, existing),
			map[string]any{"alias": alias, "key": key})
	}
	if _, ok := s.records[alias]; ok {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			fmt.Sprintf("alias %s collides with a record key", alias),
			map[string]any{"alias": alias, "key": key})
	}
	s.aliases[alias] = key
	return nil
}

// Record resolves key, or an alias of it, in the public scope.
func (m *Memory) Record(key string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.public.resolve(key)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// HiddenRecord resolves key, or an alias of it, in the hidden scope.
func (m *Memory) HiddenRecord(key string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rec, ok := m.hidden.resolve(key)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// ResolveFrom resolves key as seen from class: hidden records produced by
// class, its declaring ancestors or anything they import first, then the
// public scope.
func (m *Memory) ResolveFrom(class, key string) (*Record, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if rec, ok := m.hidden.resolve(key); ok && m.sees(class, rec.Origin) {
		return rec.Clone(), true
	}
	rec, ok := m.public.resolve(key)
	if !ok {
		return nil, false
	}
	return rec.Clone(), true
}

// sees walks the ancestors and imports reachable from class looking for
// origin. Callers hold the read lock.
func (m *Memory) sees(class, origin string) bool {
	if class == "" {
		return false
	}
	seen := map[string]bool{class: true}
	queue := []string{class}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == origin {
			return true
		}
		next := m.imports[c]
		if a, ok := m.ancestors[c]; ok {
			next = append([]string{a}, next...)
		}
		for _, n := range next {
			if !seen[n] {
				seen[n] = true
				queue = append(queue, n)
			}
		}
	}
	return false
}

// LinkImport makes the hidden records of imported visible to class.
func (m *Memory) LinkImport(class, imported string) {
	if class == "" || imported == "" || class == imported {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if !slices.Contains(m.imports[class], imported) {
		m.imports[class] = append(m.imports[class], imported)
	}
}

// LinkAncestor makes ancestor the fallback resolution scope of class.
func (m *Memory) LinkAncestor(class, ancestor string) {
	if class == "" || ancestor == "" || class == ancestor {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ancestors[class] = ancestor
}

// Ancestor returns the linked ancestor of class.
func (m *Memory) Ancestor(class string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.ancestors[class]
	return a, ok
}

// Aliases returns the aliases registered for key in the scope selected by
// vis, sorted.
func (m *Memory) Aliases(key string, vis Visibility) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []string
	for alias, target := range m.scopeFor(vis).aliases {
		if target == key {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}

// RecordCount returns the number of stored records across both scopes.
func (m *Memory) RecordCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.public.records) + len(m.hidden.records)
}

// Count returns the number of records in the scope selected by vis.
func (m *Memory) Count(vis Visibility) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.scopeFor(vis).records)
}

// IsEmpty returns true if no records are registered.
func (m *Memory) IsEmpty() bool {
	return m.RecordCount() == 0
}

// Snapshot is a serializable copy of the registry contents. Records are in
// registration order.
type Snapshot struct {
	Public        []*Record           `json:"public" yaml:"public"`
	Hidden        []*Record           `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	PublicAliases map[string]string   `json:"publicAliases,omitempty" yaml:"publicAliases,omitempty"`
	HiddenAliases map[string]string   `json:"hiddenAliases,omitempty" yaml:"hiddenAliases,omitempty"`
	Ancestors     map[string]string   `json:"ancestors,omitempty" yaml:"ancestors,omitempty"`
	Imports       map[string][]string `json:"imports,omitempty" yaml:"imports,omitempty"`
}

// Snapshot copies the current contents.
func (m *Memory) Snapshot() *Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	collect := func(s *scope) []*Record {
		out := make([]*Record, 0, len(s.order))
		for _, key := range s.order {
			out = append(out, s.records[key].Clone())
		}
		return out
	}

	return &Snapshot{
		Public:        collect(m.public),
		Hidden:        collect(m.hidden),
		PublicAliases: maps.Clone(m.public.aliases),
		HiddenAliases: maps.Clone(m.hidden.aliases),
		Ancestors:     maps.Clone(m.ancestors),
		Imports:       cloneImports(m.imports),
	}
}

func cloneImports(in map[string][]string) map[string][]string {
	if len(in) == 0 {
		return nil
	}
	out := make(map[string][]string, len(in))
	for k, v := range in {
		out[k] = slices.Clone(v)
	}
	return out
}
