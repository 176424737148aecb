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

	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/registry"
)

// EventKind identifies an extension point of the pipeline.
type EventKind int

const (
	// EventClassParsed fires once a class and its imports have been parsed.
	EventClassParsed EventKind = iota + 1
	// EventClassRendered fires after the configuration record of a class
	// has been registered.
	EventClassRendered
	// EventBeanMethodRendered fires for every bean method record before it
	// is registered.
	EventBeanMethodRendered
)

// String returns the kind name.
func (k EventKind) String() string {
	switch k {
	case EventClassParsed:
		return "ClassParsed"
	case EventClassRendered:
		return "ClassRendered"
	case EventBeanMethodRendered:
		return "BeanMethodRendered"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is the payload handed to listeners. Which fields are set depends on
// Kind:
//
//	EventClassParsed         Class
//	EventClassRendered       Class, Registry
//	EventBeanMethodRendered  Class, Method, Record, Registry
//
// For EventBeanMethodRendered, Record has not been registered yet: handlers
// may rewrite it in place or register additional records through Registry.
type Event struct {
	Kind     EventKind
	Class    *model.ConfigurationClass
	Method   *model.BeanMethod
	Record   *registry.Record
	Registry registry.Registry
}

// Listener is implemented by every listener. A listener takes part in the
// events whose handler interfaces it also implements.
type Listener interface {
	Name() string
}

// ClassParsedHandler reacts to parsed classes.
type ClassParsedHandler interface {
	Listener
	UnderstandsParsedClass(c *model.ConfigurationClass) bool
	HandleClassParsed(ev *Event) error
}

// ClassRenderedHandler reacts to rendered classes.
type ClassRenderedHandler interface {
	Listener
	UnderstandsRenderedClass(c *model.ConfigurationClass) bool
	HandleClassRendered(ev *Event) error
}

// BeanMethodHandler reacts to bean method records before registration.
type BeanMethodHandler interface {
	Listener
	UnderstandsBeanMethod(c *model.ConfigurationClass, m *model.BeanMethod) bool
	HandleBeanMethod(ev *Event) error
}
