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
	"log/slog"

	"github.com/NVIDIA/confmodel/pkg/errors"
	"github.com/NVIDIA/confmodel/pkg/model"
	"github.com/NVIDIA/confmodel/pkg/registry"
)

// HotSwapTargetPrefix prefixes the key of the hidden record wrapped by a
// hot-swap proxy.
const HotSwapTargetPrefix = "hotSwapTarget."

// HotSwapListener splits the record of a hot-swappable bean method into a
// hidden target and a visible hot-swap proxy that indirects to it.
type HotSwapListener struct{}

// NewHotSwapListener creates the listener.
func NewHotSwapListener() *HotSwapListener {
	return &HotSwapListener{}
}

// Name implements Listener.
func (l *HotSwapListener) Name() string { return "hot-swap" }

// UnderstandsBeanMethod reports whether m carries the hot-swappable marker.
func (l *HotSwapListener) UnderstandsBeanMethod(_ *model.ConfigurationClass, m *model.BeanMethod) bool {
	return m != nil && m.HotSwappable
}

// HandleBeanMethod registers the hidden target and rewrites ev.Record into
// the proxy.
func (l *HotSwapListener) HandleBeanMethod(ev *Event) error {
	if ev.Record == nil || ev.Registry == nil {
		return errors.New(errors.ErrCodeInternal, "hot-swap listener requires a record and a registry")
	}

	target := ev.Record.Clone()
	target.Key = HotSwapTargetPrefix + ev.Record.Key
	target.Aliases = nil
	target.AutowireCandidate = false
	target.Visibility = registry.VisibilityHidden
	if err := ev.Registry.RegisterRecord(target.Key, target, registry.VisibilityHidden); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to register hot-swap target", err)
	}

	ev.Record.Kind = registry.KindHotSwapProxy
	ev.Record.ProxyTarget = target.Key
	ev.Record.FactoryOwner = ""
	ev.Record.FactoryMethodName = ""
	ev.Record.InitHook = ""
	ev.Record.DestroyHook = ""

	slog.Debug("wrapped bean in hot-swap proxy", "key", ev.Record.Key, "target", target.Key)
	return nil
}

// TraceListener logs every event at debug level.
type TraceListener struct {
	logger *slog.Logger
}

// NewTraceListener creates the listener. A nil logger uses slog.Default.
func NewTraceListener(logger *slog.Logger) *TraceListener {
	return &TraceListener{logger: logger}
}

// Name implements Listener.
func (l *TraceListener) Name() string { return "trace" }

func (l *TraceListener) log() *slog.Logger {
	if l.logger != nil {
		return l.logger
	}
	return slog.Default()
}

func (l *TraceListener) UnderstandsParsedClass(*model.ConfigurationClass) bool   { return true }
func (l *TraceListener) UnderstandsRenderedClass(*model.ConfigurationClass) bool { return true }
func (l *TraceListener) UnderstandsBeanMethod(*model.ConfigurationClass, *model.BeanMethod) bool {
	return true
}

func (l *TraceListener) HandleClassParsed(ev *Event) error {
	l.log().Debug("class parsed",
		"class", ev.Class.Name(),
		"beans", len(ev.Class.BeanMethods()),
		"imports", len(ev.Class.Imports()))
	return nil
}

func (l *TraceListener) HandleClassRendered(ev *Event) error {
	l.log().Debug("class rendered", "class", ev.Class.Name())
	return nil
}

func (l *TraceListener) HandleBeanMethod(ev *Event) error {
	l.log().Debug("bean method rendered",
		"class", ev.Class.Name(),
		"method", ev.Method.Name,
		"key", ev.Record.Key,
		"kind", ev.Record.Kind)
	return nil
}
