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

// Package verse is a request-routing and handler-composition engine: it
// turns route pattern strings into compiled matchers, binds handlers to
// (method, pattern) pairs with deterministic precedence, and composes
// handlers with middleware into a single callable endpoint.
//
// # Quick start
//
//	r := verse.MustNew()
//	r.GET("/users/:id", verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
//	    id, _ := req.Param("id")
//	    return verse.Text(http.StatusOK, "user "+id)
//	}))
//	log.Fatal(r.Serve(":8080"))
//
// # Pattern syntax
//
// Patterns are /-separated segment sequences. Each segment is one of:
//
//	users            literal, matched byte-for-byte
//	:id              capture, binds any single segment as "id"
//	:id<[0-9]+>      regex capture, binds only when the regex matches
//	<[0-9]+>         anonymous regex constraint, matches without binding
//	*rest            wildcard, binds all remaining segments (last only)
//
// Regexes compile once at registration; matching never compiles. Captured
// values are percent-decoded after segmentation, so an encoded slash in a
// request segment decodes into the value without splitting the segment.
//
// # Precedence
//
// When several patterns match one path, the winner is chosen by rule, not
// registration order: more literal segments win first, then regex captures
// outrank plain captures (flip with WithCapturePrecedence(CaptureFirst)),
// and wildcard patterns always lose to exact-length patterns. Two routes
// with identical structure are rejected at registration, so no tie can
// survive to request time. Resolution is deterministic: same registry, same
// request, same handler, always.
//
// # Endpoints and middleware
//
// Endpoint is the uniform handler contract: Call(ctx, *Request) *Response.
// Routers themselves implement Endpoint, so registries nest. Middleware
// transforms an Endpoint into another Endpoint; With(ep, A, B) applies A
// then B, making B outermost. The built-in not-found and
// method-not-allowed responses flow through the same middleware chain as
// matched handlers.
//
// # Mounting
//
// Mount flattens a sub-registry's routes into the parent under a prefix at
// registration time. Mounted routes obey the parent's precedence and
// duplicate detection like any other route; StripPrefix rewrites the path
// seen by mounted handlers.
//
// # Concurrency
//
// A Router is built single-threaded, then frozen by the first request (or
// an explicit Freeze call). After freezing, resolution reads only immutable
// state: no locks, unlimited concurrent lookups.
//
// The middleware subdirectory holds optional middleware packages:
// accesslog, recovery, requestid, ratelimit, cors, tracing, and metrics.
package verse
