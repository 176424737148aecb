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

package listener

import (
	"fmt"
	"log/slog"
)

type entry struct {
	name        string
	understands func(*Event) bool
	handle      func(*Event) error
}

// Chain is an ordered set of listeners with a dispatch table keyed by event
// kind. Every listener that understands an event fires; the first error
// aborts the dispatch.
//
// A Chain is built once and then only read; it is not safe to Add while
// dispatching.
type Chain struct {
	listeners []Listener
	table     map[EventKind][]entry
}

// NewChain creates a chain with the given listeners in order.
func NewChain(listeners ...Listener) *Chain {
	c := &Chain{
		table: make(map[EventKind][]entry),
	}
	for _, l := range listeners {
		c.Add(l)
	}
	return c
}

// Add appends a listener and registers it for every event kind whose handler
// interface it implements.
func (c *Chain) Add(l Listener) *Chain {
	if l == nil {
		return c
	}
	c.listeners = append(c.listeners, l)

	registered := 0
	if h, ok := l.(ClassParsedHandler); ok {
		c.table[EventClassParsed] = append(c.table[EventClassParsed], entry{
			name:        h.Name(),
			understands: func(ev *Event) bool { return h.UnderstandsParsedClass(ev.Class) },
			handle:      h.HandleClassParsed,
		})
		registered++
	}
	if h, ok := l.(ClassRenderedHandler); ok {
		c.table[EventClassRendered] = append(c.table[EventClassRendered], entry{
			name:        h.Name(),
			understands: func(ev *Event) bool { return h.UnderstandsRenderedClass(ev.Class) },
			handle:      h.HandleClassRendered,
		})
		registered++
	}
	if h, ok := l.(BeanMethodHandler); ok {
		c.table[EventBeanMethodRendered] = append(c.table[EventBeanMethodRendered], entry{
			name:        h.Name(),
			understands: func(ev *Event) bool { return h.UnderstandsBeanMethod(ev.Class, ev.Method) },
			handle:      h.HandleBeanMethod,
		})
		registered++
	}
	if registered == 0 {
		slog.Warn("listener handles no event kinds", "listener", l.Name())
	}
	return c
}

// Dispatch hands ev to every listener registered for its kind that
// understands it, in registration order, and returns how many fired.
// A nil chain dispatches nothing.
func (c *Chain) Dispatch(ev *Event) (int, error) {
	if c == nil || ev == nil {
		return 0, nil
	}
	fired := 0
	for _, e := range c.table[ev.Kind] {
		if !e.understands(ev) {
			continue
		}
		if err := e.handle(ev); err != nil {
			return fired, fmt.Errorf("listener %s failed on %s: %w", e.name, ev.Kind, err)
		}
		fired++
	}
	return fired, nil
}

// Handles reports whether any listener is registered for kind.
func (c *Chain) Handles(kind EventKind) bool {
	return c != nil && len(c.table[kind]) > 0
}

// Names returns the listener names in registration order.
func (c *Chain) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, 0, len(c.listeners))
	for _, l := range c.listeners {
		names = append(names, l.Name())
	}
	return names
}

// Len returns the number of listeners.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.listeners)
}
