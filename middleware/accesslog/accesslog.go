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

package accesslog

import (
	"context"
	"log/slog"
	"time"

	"github.com/verse-web/verse"
	"github.com/verse-web/verse/middleware/requestid"
)

// Option defines functional options for accesslog middleware configuration.
type Option func(*config)

type config struct {
	logger *slog.Logger
	skip   func(req *verse.Request) bool
}

// WithLogger sets the structured logger. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSkip suppresses logging for requests where skip returns true, e.g.
// health-check noise:
//
//	accesslog.New(accesslog.WithSkip(func(req *verse.Request) bool {
//	    return req.Path == "/healthz"
//	}))
func WithSkip(skip func(req *verse.Request) bool) Option {
	return func(c *config) { c.skip = skip }
}

// New returns middleware that logs one structured line per request with
// method, path, matched route pattern, status, and duration. The route
// pattern rather than the raw path is the low-cardinality key for
// aggregation; the raw path is logged alongside it.
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(accesslog.New(accesslog.WithLogger(logger)))
func New(opts ...Option) verse.Middleware {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			if cfg.skip != nil && cfg.skip(req) {
				return next.Call(ctx, req)
			}

			start := time.Now()
			resp := next.Call(ctx, req)
			elapsed := time.Since(start)

			status := 0
			if resp != nil {
				status = resp.Status
			}
			attrs := []slog.Attr{
				slog.String("method", req.Method.String()),
				slog.String("path", req.RawPath()),
				slog.String("route", req.Route()),
				slog.Int("status", status),
				slog.Duration("duration", elapsed),
				slog.String("remote", req.Remote),
			}
			if id := requestid.FromContext(ctx); id != "" {
				attrs = append(attrs, slog.String("request_id", id))
			}

			level := slog.LevelInfo
			if status >= 500 {
				level = slog.LevelError
			}
			cfg.logger.LogAttrs(ctx, level, "request", attrs...)
			return resp
		})
	})
}
