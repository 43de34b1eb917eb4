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

import "context"

// Middleware transforms one Endpoint into another. Composition happens once
// at construction time; the resulting chain is immutable and shared by all
// requests.
type Middleware interface {
	Transform(next Endpoint) Endpoint
}

// MiddlewareFunc adapts a function to the Middleware interface.
type MiddlewareFunc func(next Endpoint) Endpoint

// Transform implements Middleware.
func (f MiddlewareFunc) Transform(next Endpoint) Endpoint { return f(next) }

// With wraps ep with the given middleware, applied in order. The LAST
// middleware in the list becomes the outermost wrapper: it observes the
// request first and the response last. Reordering the list changes both the
// pre-processing and the post-processing order.
//
//	wrapped := verse.With(ep, A, B)
//	// request:  B → A → ep
//	// response: ep → A → B
func With(ep Endpoint, mws ...Middleware) Endpoint {
	for _, mw := range mws {
		ep = mw.Transform(ep)
	}
	return ep
}

// Before returns middleware that transforms only the request. The function
// may return the request unchanged or return a replacement, and may extend
// the context, which is how request-scoped data reaches later middleware
// and After transforms.
func Before(f func(ctx context.Context, req *Request) (context.Context, *Request)) Middleware {
	return MiddlewareFunc(func(next Endpoint) Endpoint {
		return EndpointFunc(func(ctx context.Context, req *Request) *Response {
			ctx, req = f(ctx, req)
			return next.Call(ctx, req)
		})
	})
}

// After returns middleware that transforms only the response. It does not
// see the request; anything it needs must have been placed in the context
// by an earlier Before or Around.
func After(f func(ctx context.Context, resp *Response) *Response) Middleware {
	return MiddlewareFunc(func(next Endpoint) Endpoint {
		return EndpointFunc(func(ctx context.Context, req *Request) *Response {
			return f(ctx, next.Call(ctx, req))
		})
	})
}

// Around returns middleware with full control: it may inspect and replace
// both request and response, and may short-circuit by returning a Response
// without calling next at all. Short-circuiting is an expected control path
// (an auth rejection, a rate-limit rejection), not an error.
func Around(f func(ctx context.Context, req *Request, next Endpoint) *Response) Middleware {
	return MiddlewareFunc(func(next Endpoint) Endpoint {
		return EndpointFunc(func(ctx context.Context, req *Request) *Response {
			return f(ctx, req, next)
		})
	})
}
