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

package ratelimit

import (
	"context"
	"net"
	"net/http"
	"sync"

	"golang.org/x/time/rate"

	"github.com/verse-web/verse"
)

// Option defines functional options for ratelimit middleware configuration.
type Option func(*config)

type config struct {
	limit      rate.Limit
	burst      int
	keyFunc    func(req *verse.Request) string
	maxClients int
}

func defaultConfig() *config {
	return &config{
		limit:      rate.Limit(100),
		burst:      200,
		keyFunc:    clientIP,
		maxClients: 10000,
	}
}

// WithRate sets the sustained request rate per key and the burst size.
// Defaults to 100 req/s with a burst of 200.
func WithRate(limit rate.Limit, burst int) Option {
	return func(c *config) {
		c.limit = limit
		c.burst = burst
	}
}

// WithKeyFunc sets the function that partitions requests into rate-limit
// buckets. The default keys by client IP. Returning "" puts the request in
// a single shared bucket.
func WithKeyFunc(fn func(req *verse.Request) string) Option {
	return func(c *config) { c.keyFunc = fn }
}

// WithMaxClients bounds the number of tracked keys. When exceeded, the
// tracking table resets; limiters restart full. Default 10000.
func WithMaxClients(n int) Option {
	return func(c *config) { c.maxClients = n }
}

// clientIP extracts the host part of the remote address.
func clientIP(req *verse.Request) string {
	host, _, err := net.SplitHostPort(req.Remote)
	if err != nil {
		return req.Remote
	}
	return host
}

// New returns middleware enforcing a token-bucket rate limit per key.
// Requests over the limit are rejected with a 429 problem-details response
// and a Retry-After header, short-circuiting the inner endpoint.
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(ratelimit.New(ratelimit.WithRate(rate.Limit(10), 20)))
func New(opts ...Option) verse.Middleware {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := limiters[key]; ok {
			return l
		}
		if len(limiters) >= cfg.maxClients {
			// Memory bound: reset rather than evict. All limiters restart
			// full, briefly admitting over-limit clients.
			limiters = make(map[string]*rate.Limiter)
		}
		l := rate.NewLimiter(cfg.limit, cfg.burst)
		limiters[key] = l
		return l
	}

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			if !limiterFor(cfg.keyFunc(req)).Allow() {
				resp := verse.Problem(http.StatusTooManyRequests, "rate limit exceeded")
				resp.Header.Set("Retry-After", "1")
				return resp
			}
			return next.Call(ctx, req)
		})
	})
}
