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

package requestid

import (
	"context"

	"github.com/google/uuid"

	"github.com/verse-web/verse"
)

// Option defines functional options for requestid middleware configuration.
type Option func(*config)

type config struct {
	headerName    string
	generator     func() string
	allowClientID bool
}

func defaultConfig() *config {
	return &config{
		headerName:    "X-Request-ID",
		generator:     func() string { return uuid.NewString() },
		allowClientID: true,
	}
}

// WithHeader sets the header carrying the request ID. Default X-Request-ID.
func WithHeader(name string) Option {
	return func(c *config) { c.headerName = name }
}

// WithGenerator replaces the ID generator. The default generates UUIDv4.
func WithGenerator(gen func() string) Option {
	return func(c *config) { c.generator = gen }
}

// WithAllowClientID controls whether an ID supplied by the client in the
// request header is trusted and propagated. Enabled by default.
func WithAllowClientID(allow bool) Option {
	return func(c *config) { c.allowClientID = allow }
}

type ctxKey struct{}

// New returns middleware that attaches a unique request ID to each request.
// The ID is read from the request header when present and allowed, generated
// otherwise, stored in the context for downstream middleware and handlers,
// and echoed in the response header.
//
// Basic usage:
//
//	r := verse.MustNew()
//	r.Use(requestid.New())
//
// Custom header:
//
//	r.Use(requestid.New(requestid.WithHeader("X-Correlation-ID")))
func New(opts ...Option) verse.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			var id string
			if cfg.allowClientID {
				id = req.Header.Get(cfg.headerName)
			}
			if id == "" {
				id = cfg.generator()
			}

			ctx = context.WithValue(ctx, ctxKey{}, id)
			resp := next.Call(ctx, req)
			if resp != nil {
				resp.Header.Set(cfg.headerName, id)
			}
			return resp
		})
	})
}

// FromContext retrieves the request ID stored by the middleware, or "" when
// none has been set.
//
// Example:
//
//	func handler(ctx context.Context, req *verse.Request) *verse.Response {
//	    id := requestid.FromContext(ctx)
//	    ...
//	}
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(ctxKey{}).(string); ok {
		return id
	}
	return ""
}
