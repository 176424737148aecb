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

// Package listener provides the ordered observer chain consulted by the
// parser and the renderer.
//
// Events are tagged with an EventKind. A listener implements Listener and
// any subset of the capability interfaces:
//
//   - ClassParsedHandler: UnderstandsParsedClass / HandleClassParsed
//   - ClassRenderedHandler: UnderstandsRenderedClass / HandleClassRendered
//   - BeanMethodHandler: UnderstandsBeanMethod / HandleBeanMethod
//
// Chain.Add resolves the capabilities once with type assertions and files
// the listener into a dispatch table keyed by event kind. Dispatch consults
// every entry for the event's kind in registration order and fires all that
// understand the event:
//
//	chain := listener.NewChain(
//	    listener.NewHotSwapListener(),
//	    listener.NewTraceListener(nil),
//	)
//	fired, err := chain.Dispatch(&listener.Event{Kind: listener.EventClassParsed, Class: c})
//
// Built-in listeners:
//
//   - HotSwapListener: wraps hot-swappable bean methods in a hidden
//     hotSwapTarget.<name> record plus a visible hot-swap proxy
//   - TraceListener: logs every event at debug level
package listener
