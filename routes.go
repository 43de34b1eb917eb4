// Copyright 2026 The Verse Authors
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

package verse

// RouteInfo describes one registered pattern for introspection: startup
// route dumps, OPTIONS handlers, documentation generators.
type RouteInfo struct {
	// Pattern is the canonical (first-registered) pattern string for the
	// structural shape.
	Pattern string

	// Methods lists the methods with a specific handler, in enum order.
	Methods []Method

	// Any reports whether an any-method handler is registered.
	Any bool

	// Static reports whether the pattern is fully literal and thus served
	// from the static route table.
	Static bool
}

// Routes returns a snapshot of every registered route in registration
// order. Safe to call in either phase; it does not freeze the router.
func (r *Router) Routes() []RouteInfo {
	infos := make([]RouteInfo, 0, len(r.entries))
	for _, e := range r.entries {
		info := RouteInfo{
			Pattern: e.pat.String(),
			Any:     e.any != nil,
			Static:  e.pat.IsStatic(),
		}
		for m := Method(0); m < methodCount; m++ {
			if e.endpoints[m] != nil {
				info.Methods = append(info.Methods, m)
			}
		}
		infos = append(infos, info)
	}
	return infos
}
