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

	"github.com/verse-web/verse/pattern"
)

// Outcome classifies the result of a lookup.
type Outcome uint8

const (
	// OutcomeResolved means a pattern matched and the method is handled.
	OutcomeResolved Outcome = iota

	// OutcomeNotFound means no registered pattern matched the path.
	OutcomeNotFound

	// OutcomeMethodNotAllowed means at least one pattern matched the path
	// but none of the matching entries handles the request method. This is
	// externally observable as a 405 rather than a 404.
	OutcomeMethodNotAllowed
)

// Resolution is the result of resolving a method and path against the
// registry. For OutcomeResolved, Endpoint carries the handler already
// composed with the router's middleware chain, Params the captured
// parameters, and Route the matched pattern string. For
// OutcomeMethodNotAllowed, Allowed lists the methods that do have handlers
// for the path.
type Resolution struct {
	Outcome  Outcome
	Endpoint Endpoint
	Params   pattern.Params
	Route    string
	Allowed  []Method
}

// Resolve looks up the handler for a method and percent-encoded path.
// It freezes the router on first use; afterwards resolution reads only
// immutable state and is safe for unlimited concurrency.
//
// Resolution order: the static route table first (hash lookup guarded by a
// bloom filter), then the segment-count bucket for the path in precedence
// order, then wildcard patterns in precedence order. The first matching
// entry that handles the method wins.
func (r *Router) Resolve(method Method, path string) Resolution {
	r.Freeze()

	if method >= methodCount {
		return Resolution{Outcome: OutcomeNotFound}
	}

	// Static fast path. Skipped under ignore-case, where the canonical
	// keys are folded and raw paths would miss.
	if r.statics != nil && !r.ignoreCase {
		h := pattern.Hash(method.String(), path)
		if r.staticBloom.Test(h) {
			if sr := r.statics[h]; sr != nil && sr.method == method && sr.path == path {
				return Resolution{Outcome: OutcomeResolved, Endpoint: sr.endpoint, Route: sr.route}
			}
		}
	}

	segCount := len(pattern.Split(path))
	var allowed [methodCount]bool
	matchedAny := false

	scan := func(entries []*routeEntry) *Resolution {
		for _, e := range entries {
			params, ok := e.pat.Match(path)
			if !ok {
				continue
			}
			matchedAny = true
			if ep, names := e.lookup(method); ep != nil {
				return &Resolution{
					Outcome:  OutcomeResolved,
					Endpoint: ep,
					Params:   params.Renamed(names),
					Route:    e.pat.String(),
				}
			}
			for m := Method(0); m < methodCount; m++ {
				if e.endpoints[m] != nil {
					allowed[m] = true
				}
			}
		}
		return nil
	}

	if res := scan(r.buckets[segCount]); res != nil {
		return *res
	}
	// Wildcard entries are strictly lowest priority: consulted only when
	// no exact-length pattern matched with a handler.
	if res := scan(r.wildcards); res != nil {
		return *res
	}

	if matchedAny {
		var methods []Method
		for m := Method(0); m < methodCount; m++ {
			if allowed[m] {
				methods = append(methods, m)
			}
		}
		return Resolution{Outcome: OutcomeMethodNotAllowed, Allowed: methods}
	}
	return Resolution{Outcome: OutcomeNotFound}
}

// Call implements Endpoint. It resolves the request path and invokes the
// winning handler with the captured parameters attached. Not-found and
// method-not-allowed outcomes invoke their terminal endpoints, which were
// composed into the same middleware chain at freeze time, so every outcome
// flows through the same cross-cutting stack.
func (r *Router) Call(ctx context.Context, req *Request) *Response {
	res := r.Resolve(req.Method, req.Path)
	switch res.Outcome {
	case OutcomeResolved:
		matched := req.clone()
		matched.params = res.Params
		matched.route = res.Route
		return res.Endpoint.Call(ctx, matched)

	case OutcomeMethodNotAllowed:
		rejected := req.clone()
		rejected.allowed = res.Allowed
		return r.notAllowEP.Call(ctx, rejected)

	default:
		return r.notFoundEP.Call(ctx, req)
	}
}

var _ Endpoint = (*Router)(nil)
