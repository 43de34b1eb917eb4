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
	"log/slog"
	"time"
)

// Option defines functional options for router configuration. Options are
// applied by New and validated immediately, so a misconfigured router fails
// at startup rather than at request time.
type Option func(*Router)

// CapturePrecedence selects which of two sibling patterns wins when they
// have equal literal specificity and differ only in capture kind, e.g.
// "/item/:id<\d+>" versus "/item/:id".
type CapturePrecedence uint8

const (
	// RegexFirst ranks regex captures above plain captures. This is the
	// default: a pattern that constrains a segment is more specific than
	// one that accepts anything.
	RegexFirst CapturePrecedence = iota

	// CaptureFirst ranks plain captures above regex captures.
	CaptureFirst
)

// WithIgnoreCase makes literal pattern segments match request paths
// case-insensitively. Capture and regex segments are unaffected.
//
// Example:
//
//	r := verse.MustNew(verse.WithIgnoreCase())
//	r.GET("/Users", handler) // also matches /users, /USERS
func WithIgnoreCase() Option {
	return func(r *Router) {
		r.ignoreCase = true
	}
}

// WithCapturePrecedence sets the tie-break policy between regex and plain
// captures at the same segment position.
//
// Example:
//
//	r := verse.MustNew(verse.WithCapturePrecedence(verse.CaptureFirst))
func WithCapturePrecedence(p CapturePrecedence) Option {
	return func(r *Router) {
		r.precedence = p
	}
}

// WithLogger sets the logger used for router diagnostics (startup notices,
// serve-time warnings). Defaults to a no-op logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithH2C enables HTTP/2 cleartext support on Serve.
//
// Only use in development or behind a trusted load balancer; do not enable
// on public-facing servers without TLS.
//
// Example:
//
//	r := verse.MustNew(verse.WithH2C(true))
//	r.Serve(":8080")
func WithH2C(enable bool) Option {
	return func(r *Router) {
		r.enableH2C = enable
	}
}

// WithServerTimeouts configures the timeouts of servers started by Serve
// and ServeTLS. These matter for slowloris resistance and resource
// exhaustion; all four values must be positive.
//
// Defaults (if not set): 5s read-header, 15s read, 30s write, 60s idle.
//
// Example:
//
//	r := verse.MustNew(verse.WithServerTimeouts(
//	    10*time.Second,  // ReadHeaderTimeout
//	    30*time.Second,  // ReadTimeout
//	    60*time.Second,  // WriteTimeout
//	    120*time.Second, // IdleTimeout
//	))
func WithServerTimeouts(readHeader, read, write, idle time.Duration) Option {
	return func(r *Router) {
		r.timeouts = &serverTimeouts{
			readHeader: readHeader,
			read:       read,
			write:      write,
			idle:       idle,
		}
	}
}
