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

package timeout

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/verse-web/verse"
)

// Option defines functional options for timeout middleware configuration.
type Option func(*config)

type config struct {
	timeout time.Duration
	logger  *slog.Logger
	skip    func(req *verse.Request) bool
}

// WithTimeout sets the per-request deadline. Default 30s.
func WithTimeout(d time.Duration) Option {
	return func(c *config) { c.timeout = d }
}

// WithLogger sets the logger for timeout reports. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSkip exempts requests where skip returns true, e.g. streaming or
// long-poll routes.
func WithSkip(skip func(req *verse.Request) bool) Option {
	return func(c *config) { c.skip = skip }
}

// New returns middleware that bounds each request with a deadline. The
// inner endpoint runs with a context that expires after the configured
// duration; when it expires first, the client gets a 408 problem-details
// response. The inner endpoint keeps running until it observes the
// cancellation, so handlers must respect their context for the bound to be
// effective.
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(timeout.New(timeout.WithTimeout(5 * time.Second)))
func New(opts ...Option) verse.Middleware {
	cfg := &config{timeout: 30 * time.Second, logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			if cfg.skip != nil && cfg.skip(req) {
				return next.Call(ctx, req)
			}

			ctx, cancel := context.WithTimeout(ctx, cfg.timeout)
			defer cancel()

			done := make(chan *verse.Response, 1)
			go func() {
				done <- next.Call(ctx, req)
			}()

			select {
			case resp := <-done:
				return resp
			case <-ctx.Done():
				cfg.logger.LogAttrs(ctx, slog.LevelWarn, "request timed out",
					slog.String("method", req.Method.String()),
					slog.String("path", req.RawPath()),
					slog.Duration("timeout", cfg.timeout),
				)
				return verse.Problem(http.StatusRequestTimeout, "request timed out")
			}
		})
	})
}
