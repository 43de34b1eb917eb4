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

package recovery

import (
	"context"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/verse-web/verse"
)

// Option defines functional options for recovery middleware configuration.
type Option func(*config)

type config struct {
	logger  *slog.Logger
	onPanic func(ctx context.Context, req *verse.Request, v any) *verse.Response
}

// WithLogger sets the logger for panic reports. Defaults to slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHandler replaces the response built for a recovered panic. The
// default is a 500 problem-details response that does not leak the panic
// value to the client.
func WithHandler(fn func(ctx context.Context, req *verse.Request, v any) *verse.Response) Option {
	return func(c *config) { c.onPanic = fn }
}

// New returns middleware that converts endpoint panics into 500 responses.
// The panic value and stack are logged; the client sees only a generic
// problem-details body. Install it outermost so it also covers panics in
// other middleware:
//
//	r := verse.MustNew()
//	r.Use(recovery.New(), accesslog.New())
func New(opts ...Option) verse.Middleware {
	cfg := &config{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) (resp *verse.Response) {
			defer func() {
				v := recover()
				if v == nil {
					return
				}
				cfg.logger.LogAttrs(ctx, slog.LevelError, "panic recovered",
					slog.Any("panic", v),
					slog.String("method", req.Method.String()),
					slog.String("path", req.RawPath()),
					slog.String("stack", string(debug.Stack())),
				)
				if cfg.onPanic != nil {
					resp = cfg.onPanic(ctx, req, v)
					return
				}
				resp = verse.Problem(http.StatusInternalServerError, "internal server error")
			}()
			return next.Call(ctx, req)
		})
	})
}
