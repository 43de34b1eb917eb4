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
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/verse-web/verse/pattern"
)

// noopLogger is a singleton no-op logger used when no logger is configured.
var noopLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// NoopLogger returns the singleton no-op logger. Middleware packages use it
// when logging is disabled.
func NoopLogger() *slog.Logger {
	return noopLogger
}

// Router is the route registry: it accumulates compiled patterns bound to
// per-method endpoints, detects duplicate registrations at build time, and
// resolves incoming paths with deterministic precedence.
//
// A Router has two phases. During the build phase the application registers
// routes, middleware, and mounts; this phase is single-threaded by
// convention (application startup). The first call to Freeze — triggered
// explicitly, or implicitly by the first Resolve/Call/ServeHTTP — sorts the
// candidate entries per segment-count bucket, compiles the static route
// table, and composes the middleware chain around every terminal endpoint.
// After that the Router is immutable: lookups never mutate it, so any
// number of request goroutines may resolve concurrently without locking.
//
// Router itself implements Endpoint, so a Router can be registered as a
// handler, wrapped in middleware, or mounted into another Router.
//
// Example:
//
//	r := verse.MustNew()
//	r.GET("/users/:id", verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
//	    id, _ := req.Param("id")
//	    return verse.Text(http.StatusOK, "user "+id)
//	}))
//	http.ListenAndServe(":8080", r)
type Router struct {
	// Build phase state.
	entries    []*routeEntry
	byShape    map[string]*routeEntry
	middleware []Middleware
	noRoute    Endpoint
	noMethod   Endpoint

	// Configuration.
	ignoreCase bool
	precedence CapturePrecedence
	logger     *slog.Logger
	enableH2C  bool
	timeouts   *serverTimeouts

	// Serving state, guarded by serverMu.
	serverMu sync.Mutex
	server   *http.Server

	// Frozen lookup state, built exactly once.
	frozen      atomic.Bool
	freezeOnce  sync.Once
	buckets     map[int][]*routeEntry
	wildcards   []*routeEntry
	statics     map[uint64]*staticRoute
	staticBloom *pattern.BloomFilter
	notFoundEP  Endpoint
	notAllowEP  Endpoint
}

// routeEntry associates one compiled pattern shape with a method table.
// Entries are created during the build phase and immutable after Freeze.
//
// The pattern stored here is the canonical (first-registered) pattern for
// the shape. Patterns registered later with the same shape but different
// capture names share the entry; their names are kept per method and
// applied positionally after a successful match.
type routeEntry struct {
	pat   *pattern.Pattern
	shape string
	order int

	endpoints [methodCount]Endpoint
	names     [methodCount][]string
	any       Endpoint
	anyNames  []string

	// Middleware-composed endpoints, filled in at freeze time.
	wrapped    [methodCount]Endpoint
	wrappedAny Endpoint
}

// lookup returns the composed endpoint and positional capture names for a
// method, falling back to the any-method slot.
func (e *routeEntry) lookup(m Method) (Endpoint, []string) {
	if ep := e.wrapped[m]; ep != nil {
		return ep, e.names[m]
	}
	if e.wrappedAny != nil {
		return e.wrappedAny, e.anyNames
	}
	return nil, nil
}

// staticRoute is a fully-literal route compiled into the hash table for
// O(1) lookup. The path is kept to disambiguate hash collisions.
type staticRoute struct {
	method   Method
	path     string
	route    string
	endpoint Endpoint
}

// New creates a router with optional configuration. Configuration is
// validated immediately; routes are validated at registration time.
//
// Example:
//
//	r, err := verse.New(verse.WithIgnoreCase())
//	if err != nil {
//	    log.Fatalf("router configuration: %v", err)
//	}
func New(opts ...Option) (*Router, error) {
	r := &Router{
		byShape:    make(map[string]*routeEntry),
		precedence: RegexFirst,
		logger:     noopLogger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if err := r.validate(); err != nil {
		return nil, fmt.Errorf("router configuration validation failed: %w", err)
	}
	return r, nil
}

// MustNew is like New but panics on invalid configuration, for the common
// case where a bad configuration should kill the process at startup.
func MustNew(opts ...Option) *Router {
	r, err := New(opts...)
	if err != nil {
		panic(fmt.Sprintf("verse.MustNew: %v", err))
	}
	return r
}

// validate checks the router configuration for startup errors.
func (r *Router) validate() error {
	if r.precedence != RegexFirst && r.precedence != CaptureFirst {
		return fmt.Errorf("%w: %d", ErrInvalidPrecedence, r.precedence)
	}
	if t := r.timeouts; t != nil {
		if t.readHeader <= 0 || t.read <= 0 || t.write <= 0 || t.idle <= 0 {
			return ErrServerTimeoutInvalid
		}
	}
	return nil
}

// Handle registers an endpoint for one method and pattern. It returns a
// *RegistrationError when the pattern does not compile, when a structurally
// identical pattern is already registered for the method, or when the
// router is already frozen. Registration never partially succeeds.
func (r *Router) Handle(method Method, pat string, ep Endpoint) error {
	if method >= methodCount {
		return &RegistrationError{Method: method, Pattern: pat, Err: ErrInvalidMethod}
	}
	return r.register(method, false, pat, ep)
}

// Any registers an endpoint for every method on the pattern. A specific
// method registered on the same shape takes precedence over the any-method
// endpoint.
func (r *Router) Any(pat string, ep Endpoint) error {
	return r.register(0, true, pat, ep)
}

// GET registers ep for GET requests on pat and panics on registration
// error: malformed route definitions fail loudly at process startup. Use
// Handle to receive the error instead. The same applies to the other
// method shorthands.
func (r *Router) GET(pat string, ep Endpoint) { r.mustRegister(MethodGet, pat, ep) }

// POST registers ep for POST requests on pat, panicking on error.
func (r *Router) POST(pat string, ep Endpoint) { r.mustRegister(MethodPost, pat, ep) }

// PUT registers ep for PUT requests on pat, panicking on error.
func (r *Router) PUT(pat string, ep Endpoint) { r.mustRegister(MethodPut, pat, ep) }

// DELETE registers ep for DELETE requests on pat, panicking on error.
func (r *Router) DELETE(pat string, ep Endpoint) { r.mustRegister(MethodDelete, pat, ep) }

// HEAD registers ep for HEAD requests on pat, panicking on error.
func (r *Router) HEAD(pat string, ep Endpoint) { r.mustRegister(MethodHead, pat, ep) }

// OPTIONS registers ep for OPTIONS requests on pat, panicking on error.
func (r *Router) OPTIONS(pat string, ep Endpoint) { r.mustRegister(MethodOptions, pat, ep) }

// CONNECT registers ep for CONNECT requests on pat, panicking on error.
func (r *Router) CONNECT(pat string, ep Endpoint) { r.mustRegister(MethodConnect, pat, ep) }

// PATCH registers ep for PATCH requests on pat, panicking on error.
func (r *Router) PATCH(pat string, ep Endpoint) { r.mustRegister(MethodPatch, pat, ep) }

// TRACE registers ep for TRACE requests on pat, panicking on error.
func (r *Router) TRACE(pat string, ep Endpoint) { r.mustRegister(MethodTrace, pat, ep) }

func (r *Router) mustRegister(method Method, pat string, ep Endpoint) {
	if err := r.Handle(method, pat, ep); err != nil {
		panic(err)
	}
}

// register is the single registration path for Handle, Any, and Mount.
func (r *Router) register(method Method, isAny bool, rawPat string, ep Endpoint) error {
	fail := func(err error) error {
		return &RegistrationError{Method: method, Pattern: rawPat, Err: err}
	}

	if r.frozen.Load() {
		return fail(ErrRouterFrozen)
	}
	if ep == nil {
		return fail(ErrNilEndpoint)
	}

	pat, err := r.compilePattern(rawPat)
	if err != nil {
		return fail(err)
	}
	return r.addEntry(method, isAny, pat, ep)
}

// compilePattern compiles with the router's case-folding configuration.
func (r *Router) compilePattern(rawPat string) (*pattern.Pattern, error) {
	if r.ignoreCase {
		return pattern.Compile(rawPat, pattern.FoldCase())
	}
	return pattern.Compile(rawPat)
}

// addEntry binds an already-compiled pattern into the registry.
func (r *Router) addEntry(method Method, isAny bool, pat *pattern.Pattern, ep Endpoint) error {
	return r.addEntryNames(method, isAny, pat, pat.CaptureNames(), ep)
}

// addEntryNames is addEntry with an explicit positional capture-name
// binding. Mount uses it to bind the sub-registry's per-method names under
// the joined pattern.
func (r *Router) addEntryNames(method Method, isAny bool, pat *pattern.Pattern, names []string, ep Endpoint) error {
	fail := func(err error) error {
		return &RegistrationError{Method: method, Pattern: pat.String(), Err: err}
	}
	if r.frozen.Load() {
		return fail(ErrRouterFrozen)
	}

	shape := pat.Shape()
	entry := r.byShape[shape]
	if entry == nil {
		entry = &routeEntry{pat: pat, shape: shape, order: len(r.entries)}
		r.entries = append(r.entries, entry)
		r.byShape[shape] = entry
	}

	if isAny {
		if entry.any != nil {
			return fail(ErrDuplicateRoute)
		}
		entry.any = ep
		entry.anyNames = names
		return nil
	}

	if entry.endpoints[method] != nil {
		return fail(ErrDuplicateRoute)
	}
	entry.endpoints[method] = ep
	entry.names[method] = names
	return nil
}

// Use appends middleware to the router's chain. The chain is composed once
// at freeze time around every terminal endpoint, including the not-found
// and method-not-allowed terminals, so cross-cutting middleware observes
// 404s and 405s exactly like matched responses.
//
// Middleware added first runs first: Use(A), Use(B) gives the order
// A-before, B-before, handler, B-after, A-after.
func (r *Router) Use(mws ...Middleware) {
	r.middleware = append(r.middleware, mws...)
}

// NoRoute replaces the default not-found endpoint. The replacement flows
// through the router middleware chain like any handler. Passing nil
// restores the default problem-details response.
func (r *Router) NoRoute(ep Endpoint) {
	r.noRoute = ep
}

// NoMethod replaces the default method-not-allowed endpoint. The request
// passed to it carries the allowed method set (Request.Allowed).
func (r *Router) NoMethod(ep Endpoint) {
	r.noMethod = ep
}

// Freeze transitions the router from the build phase to the serve phase:
// it sorts candidate entries per segment-count bucket by precedence,
// compiles fully-literal routes into a hash table behind a bloom filter,
// and composes the middleware chain around every endpoint. Freeze is
// idempotent; the first Resolve, Call, or ServeHTTP triggers it
// automatically. Registration after Freeze fails with ErrRouterFrozen.
func (r *Router) Freeze() {
	r.freezeOnce.Do(r.doFreeze)
}

func (r *Router) doFreeze() {
	r.frozen.Store(true)

	// Per-entry middleware composition. chain runs r.middleware with the
	// first-added middleware outermost.
	chain := func(ep Endpoint) Endpoint {
		for i := len(r.middleware) - 1; i >= 0; i-- {
			ep = r.middleware[i].Transform(ep)
		}
		return ep
	}

	for _, e := range r.entries {
		for m := Method(0); m < methodCount; m++ {
			if e.endpoints[m] != nil {
				e.wrapped[m] = chain(e.endpoints[m])
			}
		}
		if e.any != nil {
			e.wrappedAny = chain(e.any)
		}
	}

	noRoute := r.noRoute
	if noRoute == nil {
		noRoute = NotFoundEndpoint()
	}
	noMethod := r.noMethod
	if noMethod == nil {
		noMethod = MethodNotAllowedEndpoint()
	}
	r.notFoundEP = chain(noRoute)
	r.notAllowEP = chain(noMethod)

	// Bucket dynamic entries by segment count; wildcard entries go to
	// their own list, tried only after every exact-length candidate.
	r.buckets = make(map[int][]*routeEntry)
	for _, e := range r.entries {
		if e.pat.HasWildcard() {
			r.wildcards = append(r.wildcards, e)
			continue
		}
		n := e.pat.Len()
		r.buckets[n] = append(r.buckets[n], e)
	}
	for _, bucket := range r.buckets {
		r.sortByPrecedence(bucket)
	}
	r.sortByPrecedence(r.wildcards)

	r.compileStatics()
}

// sortByPrecedence orders candidates most-specific first. The ordering is
// computed here, once, so lookup is a scan over a pre-sorted bucket rather
// than a comparison over all registered routes.
func (r *Router) sortByPrecedence(entries []*routeEntry) {
	slices.SortStableFunc(entries, func(a, b *routeEntry) int {
		// More literal segments in matching positions wins.
		if d := b.pat.Literals() - a.pat.Literals(); d != 0 {
			return d
		}
		// Equal literal specificity: regex captures outrank plain
		// captures (or the reverse, under CaptureFirst).
		if d := b.pat.Regexes() - a.pat.Regexes(); d != 0 {
			if r.precedence == CaptureFirst {
				return -d
			}
			return d
		}
		// Longer patterns constrain more segments. Only relevant in the
		// wildcard list, where lengths mix.
		if d := b.pat.Len() - a.pat.Len(); d != 0 {
			return d
		}
		// Registration order: a stable tie-break for diagnostics only;
		// true duplicates were rejected at registration.
		return a.order - b.order
	})
}

// compileStatics builds the hash table + bloom filter for fully-literal
// routes. Keys are Hash(method, canonicalPath); the bloom filter rejects
// most unknown paths before the map is consulted.
func (r *Router) compileStatics() {
	type staticKey struct {
		hash uint64
		sr   *staticRoute
	}
	var keys []staticKey

	for _, e := range r.entries {
		if !e.pat.IsStatic() {
			continue
		}
		canon := e.pat.Canonical()
		for m := Method(0); m < methodCount; m++ {
			ep, _ := e.lookup(m)
			if ep == nil {
				continue
			}
			keys = append(keys, staticKey{
				hash: pattern.Hash(m.String(), canon),
				sr: &staticRoute{
					method:   m,
					path:     canon,
					route:    e.pat.String(),
					endpoint: ep,
				},
			})
		}
	}

	if len(keys) == 0 {
		return
	}

	r.statics = make(map[uint64]*staticRoute, len(keys))
	// About 10 bits per route keeps the false-positive rate near 1%.
	r.staticBloom = pattern.NewBloomFilter(uint64(len(keys)*10), 3)
	for _, k := range keys {
		r.statics[k.hash] = k.sr
		r.staticBloom.Add(k.hash)
	}
}
