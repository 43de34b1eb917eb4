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

package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/verse-web/verse"
)

const tracerName = "github.com/verse-web/verse/middleware/tracing"

// Option defines functional options for tracing middleware configuration.
type Option func(*config)

type config struct {
	provider trace.TracerProvider
}

// WithTracerProvider sets the provider used to obtain the tracer. Defaults
// to the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(c *config) {
		if tp != nil {
			c.provider = tp
		}
	}
}

// New returns middleware that opens one server span per request. The span
// name is "METHOD route" built from the matched pattern, so span names stay
// low-cardinality; spans for unmatched requests use the method alone.
// The response status is recorded, and 5xx responses mark the span as
// errored.
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(tracing.New())
func New(opts ...Option) verse.Middleware {
	cfg := &config{provider: otel.GetTracerProvider()}
	for _, opt := range opts {
		opt(cfg)
	}
	tracer := cfg.provider.Tracer(tracerName)

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			name := req.Method.String()
			if route := req.Route(); route != "" {
				name += " " + route
			}

			ctx, span := tracer.Start(ctx, name,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.request.method", req.Method.String()),
					attribute.String("url.path", req.RawPath()),
					attribute.String("http.route", req.Route()),
				),
			)
			defer span.End()

			resp := next.Call(ctx, req)
			if resp != nil {
				span.SetAttributes(attribute.Int("http.response.status_code", resp.Status))
				if resp.Status >= 500 {
					span.SetStatus(codes.Error, "")
				}
			}
			return resp
		})
	})
}
