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

package model

import (
	"fmt"
	"strings"
)

// Modifiers is the modifier flag set of a class or method.
type Modifiers uint16

const (
	ModPublic Modifiers = 1 << iota
	ModProtected
	ModPrivate
	ModStatic
	ModFinal
	ModAbstract
)

var modifierNames = []struct {
	flag Modifiers
	name string
}{
	{ModPublic, "public"},
	{ModProtected, "protected"},
	{ModPrivate, "private"},
	{ModStatic, "static"},
	{ModFinal, "final"},
	{ModAbstract, "abstract"},
}

// ParseModifiers converts modifier keywords (case-insensitive) into a flag set.
func ParseModifiers(names []string) (Modifiers, error) {
	var mods Modifiers
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" {
			continue
		}
		found := false
		for _, mn := range modifierNames {
			if mn.name == name {
				mods |= mn.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("unknown modifier %q", raw)
		}
	}
	if mods.countAccess() > 1 {
		return 0, fmt.Errorf("conflicting access modifiers: %s", mods)
	}
	return mods, nil
}

func (m Modifiers) countAccess() int {
	n := 0
	for _, f := range []Modifiers{ModPublic, ModProtected, ModPrivate} {
		if m.Has(f) {
			n++
		}
	}
	return n
}

// Has reports whether every flag in f is set.
func (m Modifiers) Has(f Modifiers) bool {
	return m&f == f
}

// IsPublic reports whether the public flag is set.
func (m Modifiers) IsPublic() bool { return m.Has(ModPublic) }

// IsPrivate reports whether the private flag is set.
func (m Modifiers) IsPrivate() bool { return m.Has(ModPrivate) }

// IsAbstract reports whether the abstract flag is set.
func (m Modifiers) IsAbstract() bool { return m.Has(ModAbstract) }

// IsFinal reports whether the final flag is set.
func (m Modifiers) IsFinal() bool { return m.Has(ModFinal) }

// Names returns the keywords of the set flags in canonical order.
func (m Modifiers) Names() []string {
	names := make([]string, 0, len(modifierNames))
	for _, mn := range modifierNames {
		if m.Has(mn.flag) {
			names = append(names, mn.name)
		}
	}
	return names
}

// String returns the space separated keywords, e.g. "public abstract".
func (m Modifiers) String() string {
	return strings.Join(m.Names(), " ")
}
