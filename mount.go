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
	"context"
	"strings"

	"github.com/verse-web/verse/pattern"
)

// MountOption configures a single Mount call.
type MountOption func(*mountConfig)

type mountConfig struct {
	strip bool
}

// StripPrefix makes mounted handlers observe the path with the mount prefix
// removed: mounting a sub-registry at "/api" with StripPrefix means a
// request for "/api/users" reaches the sub-registry's handlers with Path
// "/users". RawPath still reports the full original path.
func StripPrefix() MountOption {
	return func(c *mountConfig) { c.strip = true }
}

// Mount flattens every route of sub into r under the given prefix at
// registration time: each of sub's patterns is joined with the prefix
// pattern and registered into r's registry, so mounted routes participate
// in r's precedence ordering, duplicate detection, and static route table
// exactly like directly registered routes. There is no per-request
// delegation step.
//
// The prefix may contain captures; its capture names merge into the same
// namespace as each child pattern's names, and a name collision fails the
// whole Mount. A wildcard prefix is rejected. The prefix must not collide
// structurally with routes already in r; the first conflicting child route
// fails the Mount with ErrDuplicateRoute, and earlier children of the same
// Mount call stay registered.
//
// Middleware added to sub via Use wraps each mounted handler, inside r's
// own chain: r's middleware runs first, then sub's, then the handler. Sub's
// NoRoute and NoMethod endpoints do not transfer; r's terminals handle
// unmatched paths.
//
// Example:
//
//	api := verse.MustNew()
//	api.GET("/users/:id", showUser)
//
//	root := verse.MustNew()
//	if err := root.Mount("/v1", api, verse.StripPrefix()); err != nil {
//	    log.Fatal(err)
//	}
//	// GET /v1/users/7 now reaches showUser with Path "/users/7".
func (r *Router) Mount(prefix string, sub *Router, opts ...MountOption) error {
	fail := func(err error) error {
		return &RegistrationError{Pattern: prefix, Err: err}
	}

	if sub == nil {
		return fail(ErrNilRouter)
	}
	if r.frozen.Load() {
		return fail(ErrRouterFrozen)
	}

	var cfg mountConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	prefixPat, err := r.compilePattern(prefix)
	if err != nil {
		return fail(err)
	}
	if prefixPat.HasWildcard() {
		return fail(ErrWildcardPrefix)
	}
	prefixNames := prefixPat.CaptureNames()

	// Sub-registry middleware composes around each mounted handler, with
	// prefix stripping outermost so sub middleware sees the stripped path.
	wrap := func(ep Endpoint) Endpoint {
		for i := len(sub.middleware) - 1; i >= 0; i-- {
			ep = sub.middleware[i].Transform(ep)
		}
		if cfg.strip {
			ep = stripPrefixEndpoint(prefixPat.Len(), ep)
		}
		return ep
	}

	for _, e := range sub.entries {
		joined, err := pattern.Join(prefixPat, e.pat)
		if err != nil {
			return fail(err)
		}
		for m := Method(0); m < methodCount; m++ {
			if e.endpoints[m] == nil {
				continue
			}
			names := mergeNames(prefixNames, e.names[m])
			if err := r.addEntryNames(m, false, joined, names, wrap(e.endpoints[m])); err != nil {
				return err
			}
		}
		if e.any != nil {
			names := mergeNames(prefixNames, e.anyNames)
			if err := r.addEntryNames(0, true, joined, names, wrap(e.any)); err != nil {
				return err
			}
		}
	}
	return nil
}

func mergeNames(prefix, child []string) []string {
	merged := make([]string, 0, len(prefix)+len(child))
	merged = append(merged, prefix...)
	return append(merged, child...)
}

// stripPrefixEndpoint rewrites the request path to drop the first n
// segments before invoking next. The inner endpoint works on a clone;
// callers holding the original request never see the rewrite.
func stripPrefixEndpoint(n int, next Endpoint) Endpoint {
	return EndpointFunc(func(ctx context.Context, req *Request) *Response {
		segs := pattern.Split(req.Path)
		stripped := req.clone()
		if len(segs) >= n {
			stripped.Path = "/" + strings.Join(segs[n:], "/")
		}
		if stripped.rawPath == "" {
			stripped.rawPath = req.Path
		}
		return next.Call(ctx, stripped)
	})
}
