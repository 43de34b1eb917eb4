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

import (
	"io"
	"net/http"

	"github.com/verse-web/verse/pattern"
)

// Request is an in-process HTTP request as seen by endpoints. It carries
// the method, the routing path, headers, a body handle, and the parameters
// captured while the route registry resolved the path.
//
// The routing path is the percent-encoded path: an encoded slash inside a
// segment does not split the segment. Mounting with prefix stripping
// rewrites Path for the mounted handler; RawPath always reports the path as
// it arrived at the top-level registry.
type Request struct {
	Method  Method
	Path    string
	Header  http.Header
	Body    io.ReadCloser
	Remote  string // network address of the client, host:port

	rawPath string
	route   string
	params  pattern.Params
	allowed []Method
}

// NewRequest builds a request for the given method and percent-encoded
// path. Primarily useful in tests and when driving an Endpoint directly;
// the HTTP bridge builds requests from *http.Request.
func NewRequest(method Method, path string) *Request {
	return &Request{
		Method:  method,
		Path:    path,
		Header:  make(http.Header),
		rawPath: path,
	}
}

// Param returns the decoded value captured under name by the segment
// matcher, and whether the name was bound for this request.
func (r *Request) Param(name string) (string, bool) {
	return r.params.Get(name)
}

// Params returns all captured parameters in pattern order. The returned
// slice is owned by the request and must not be retained past it.
func (r *Request) Params() pattern.Params { return r.params }

// Route returns the pattern string of the matched route, e.g.
// "/users/:id". Empty until the registry has resolved the request, and for
// not-found outcomes. Intended for logging, metrics, and tracing, where the
// raw path would explode cardinality.
func (r *Request) Route() string { return r.route }

// RawPath returns the path as received by the top-level registry, before
// any mount prefix stripping.
func (r *Request) RawPath() string {
	if r.rawPath != "" {
		return r.rawPath
	}
	return r.Path
}

// Allowed returns the methods that have handlers for the request path.
// Populated only for method-not-allowed outcomes, where the terminal
// endpoint uses it to build the Allow header.
func (r *Request) Allowed() []Method { return r.allowed }

// clone returns a shallow copy. Middleware that rewrites the request
// (prefix stripping, header injection) works on a copy so inner and outer
// layers never observe each other's edits.
func (r *Request) clone() *Request {
	r2 := *r
	return &r2
}
