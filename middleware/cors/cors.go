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

package cors

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/verse-web/verse"
)

// Option defines functional options for cors middleware configuration.
type Option func(*config)

type config struct {
	origins     []string
	methods     []string
	headers     []string
	credentials bool
	maxAge      int
}

func defaultConfig() *config {
	return &config{
		origins: []string{"*"},
		methods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"},
		headers: []string{"Content-Type", "Authorization"},
		maxAge:  86400,
	}
}

// WithOrigins sets the allowed origins. The default allows any origin.
func WithOrigins(origins ...string) Option {
	return func(c *config) { c.origins = origins }
}

// WithMethods sets the methods advertised in preflight responses.
func WithMethods(methods ...string) Option {
	return func(c *config) { c.methods = methods }
}

// WithHeaders sets the request headers advertised in preflight responses.
func WithHeaders(headers ...string) Option {
	return func(c *config) { c.headers = headers }
}

// WithCredentials allows credentialed requests. Incompatible with the "*"
// origin; configure explicit origins when enabling.
func WithCredentials() Option {
	return func(c *config) { c.credentials = true }
}

// WithMaxAge sets how long, in seconds, browsers may cache preflight
// results. Default 86400.
func WithMaxAge(seconds int) Option {
	return func(c *config) { c.maxAge = seconds }
}

func (c *config) allowOrigin(origin string) string {
	for _, o := range c.origins {
		if o == "*" {
			if c.credentials {
				// "*" is invalid with credentials; echo the origin.
				return origin
			}
			return "*"
		}
		if strings.EqualFold(o, origin) {
			return origin
		}
	}
	return ""
}

// New returns middleware implementing the CORS protocol. Preflight
// requests (OPTIONS with Access-Control-Request-Method) short-circuit with
// 204 and the negotiated headers; ordinary cross-origin requests continue
// to the inner endpoint and get Access-Control-Allow-Origin stamped on the
// response.
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(cors.New(cors.WithOrigins("https://app.example.com")))
func New(opts ...Option) verse.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	allowMethods := strings.Join(cfg.methods, ", ")
	allowHeaders := strings.Join(cfg.headers, ", ")

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			origin := req.Header.Get("Origin")
			if origin == "" {
				return next.Call(ctx, req)
			}

			allowed := cfg.allowOrigin(origin)

			if req.Method == verse.MethodOptions && req.Header.Get("Access-Control-Request-Method") != "" {
				resp := verse.NewResponse(http.StatusNoContent)
				if allowed == "" {
					return resp
				}
				resp.Header.Set("Access-Control-Allow-Origin", allowed)
				resp.Header.Set("Access-Control-Allow-Methods", allowMethods)
				resp.Header.Set("Access-Control-Allow-Headers", allowHeaders)
				resp.Header.Set("Access-Control-Max-Age", strconv.Itoa(cfg.maxAge))
				if cfg.credentials {
					resp.Header.Set("Access-Control-Allow-Credentials", "true")
				}
				resp.Header.Add("Vary", "Origin")
				return resp
			}

			resp := next.Call(ctx, req)
			if resp != nil && allowed != "" {
				resp.Header.Set("Access-Control-Allow-Origin", allowed)
				if cfg.credentials {
					resp.Header.Set("Access-Control-Allow-Credentials", "true")
				}
				resp.Header.Add("Vary", "Origin")
			}
			return resp
		})
	})
}
