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

package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/verse-web/verse"
)

// Option defines functional options for metrics middleware configuration.
type Option func(*config)

type config struct {
	registerer prometheus.Registerer
	namespace  string
	buckets    []float64
}

// WithRegisterer sets the Prometheus registerer. Defaults to the global
// registry.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(c *config) {
		if reg != nil {
			c.registerer = reg
		}
	}
}

// WithNamespace prefixes metric names. Default "verse".
func WithNamespace(ns string) Option {
	return func(c *config) { c.namespace = ns }
}

// WithBuckets sets the duration histogram buckets. Defaults to
// prometheus.DefBuckets.
func WithBuckets(buckets []float64) Option {
	return func(c *config) { c.buckets = buckets }
}

// New returns middleware recording a request counter and a duration
// histogram, labeled by method, matched route pattern, and status class.
// The route label uses the pattern string, not the raw path, so label
// cardinality is bounded by the number of registered routes. Unmatched
// requests get the route label "unmatched".
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(metrics.New())
//	r.GET("/metrics", promEndpoint) // expose however the app prefers
func New(opts ...Option) verse.Middleware {
	cfg := &config{
		registerer: prometheus.DefaultRegisterer,
		namespace:  "verse",
		buckets:    prometheus.DefBuckets,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	requests := promauto.With(cfg.registerer).NewCounterVec(prometheus.CounterOpts{
		Namespace: cfg.namespace,
		Name:      "requests_total",
		Help:      "Requests processed, by method, route, and status.",
	}, []string{"method", "route", "status"})

	duration := promauto.With(cfg.registerer).NewHistogramVec(prometheus.HistogramOpts{
		Namespace: cfg.namespace,
		Name:      "request_duration_seconds",
		Help:      "Request duration in seconds, by method and route.",
		Buckets:   cfg.buckets,
	}, []string{"method", "route"})

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			start := time.Now()
			resp := next.Call(ctx, req)
			elapsed := time.Since(start)

			route := req.Route()
			if route == "" {
				route = "unmatched"
			}
			status := "0"
			if resp != nil {
				status = strconv.Itoa(resp.Status)
			}
			method := req.Method.String()

			requests.WithLabelValues(method, route, status).Inc()
			duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
			return resp
		})
	})
}
