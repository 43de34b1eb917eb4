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
	"context"
	"net/http"
	"strings"
)

// Endpoint is the minimal request-handling capability: turn a Request into
// a Response. Terminal handlers, middleware-wrapped chains, and the Router
// itself all implement it, which is what makes composition uniform.
//
// Call must always return a non-nil Response; failures are Responses
// carrying an error status. The context is the request's lifecycle context:
// Call may block on it and may be abandoned when it is cancelled, so
// endpoints should avoid non-idempotent side effects before the final
// Response is produced.
//
// Endpoints are invoked through shared references by many concurrent
// requests. They must be safe for concurrent use: stateless, or internally
// synchronized.
type Endpoint interface {
	Call(ctx context.Context, req *Request) *Response
}

// EndpointFunc adapts a function to the Endpoint interface.
type EndpointFunc func(ctx context.Context, req *Request) *Response

// Call implements Endpoint.
func (f EndpointFunc) Call(ctx context.Context, req *Request) *Response {
	return f(ctx, req)
}

// NotFoundEndpoint returns the terminal endpoint used when no pattern
// matches a request path. It is an ordinary endpoint: routers compose it
// into the same middleware chain as matched handlers, so cross-cutting
// middleware observes 404s like any other response.
func NotFoundEndpoint() Endpoint {
	return EndpointFunc(func(_ context.Context, _ *Request) *Response {
		return Problem(http.StatusNotFound, "")
	})
}

// MethodNotAllowedEndpoint returns the terminal endpoint used when a path
// matches at least one pattern but no matching entry handles the request
// method. The Allow header is built from the request's resolved method set.
func MethodNotAllowedEndpoint() Endpoint {
	return EndpointFunc(func(_ context.Context, req *Request) *Response {
		resp := Problem(http.StatusMethodNotAllowed, "")
		if allowed := req.Allowed(); len(allowed) > 0 {
			names := make([]string, len(allowed))
			for i, m := range allowed {
				names[i] = m.String()
			}
			resp.Header.Set("Allow", strings.Join(names, ", "))
		}
		return resp
	})
}
