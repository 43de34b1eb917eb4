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

import "net/http"

// Method identifies an HTTP request method. Using a small enum instead of
// free-form strings lets method tables be plain arrays with exhaustive
// coverage, so "is this method handled" is an index, not a map lookup.
type Method uint8

const (
	MethodGet Method = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodHead
	MethodOptions
	MethodConnect
	MethodPatch
	MethodTrace

	// methodCount sizes per-method arrays. Keep it last.
	methodCount
)

var methodNames = [methodCount]string{
	MethodGet:     http.MethodGet,
	MethodPost:    http.MethodPost,
	MethodPut:     http.MethodPut,
	MethodDelete:  http.MethodDelete,
	MethodHead:    http.MethodHead,
	MethodOptions: http.MethodOptions,
	MethodConnect: http.MethodConnect,
	MethodPatch:   http.MethodPatch,
	MethodTrace:   http.MethodTrace,
}

// String returns the canonical upper-case method name.
func (m Method) String() string {
	if m >= methodCount {
		return "UNKNOWN"
	}
	return methodNames[m]
}

// ParseMethod maps a method name to its Method value. The name must be
// canonical upper-case, as it appears on the wire. The second return value
// is false for methods outside the supported set.
func ParseMethod(name string) (Method, bool) {
	switch name {
	case http.MethodGet:
		return MethodGet, true
	case http.MethodPost:
		return MethodPost, true
	case http.MethodPut:
		return MethodPut, true
	case http.MethodDelete:
		return MethodDelete, true
	case http.MethodHead:
		return MethodHead, true
	case http.MethodOptions:
		return MethodOptions, true
	case http.MethodConnect:
		return MethodConnect, true
	case http.MethodPatch:
		return MethodPatch, true
	case http.MethodTrace:
		return MethodTrace, true
	default:
		return 0, false
	}
}

// Methods returns all supported methods in declaration order.
func Methods() []Method {
	out := make([]Method, 0, methodCount)
	for m := Method(0); m < methodCount; m++ {
		out = append(out, m)
	}
	return out
}
