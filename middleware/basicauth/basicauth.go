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

package basicauth

import (
	"context"
	"crypto/subtle"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/verse-web/verse"
)

// Option defines functional options for basicauth middleware configuration.
type Option func(*config)

type config struct {
	realm    string
	validate func(ctx context.Context, user, pass string) bool
}

// WithRealm sets the realm advertised in the WWW-Authenticate challenge.
// Default "Restricted".
func WithRealm(realm string) Option {
	return func(c *config) { c.realm = realm }
}

// WithValidator sets a custom credential validator, e.g. against a user
// store. Overrides WithCredentials.
func WithValidator(fn func(ctx context.Context, user, pass string) bool) Option {
	return func(c *config) { c.validate = fn }
}

// WithCredentials sets a static user-to-password table. Comparison is
// constant-time per credential pair.
func WithCredentials(creds map[string]string) Option {
	return func(c *config) {
		c.validate = func(_ context.Context, user, pass string) bool {
			want, ok := creds[user]
			if !ok {
				return false
			}
			return subtle.ConstantTimeCompare([]byte(want), []byte(pass)) == 1
		}
	}
}

type userKey struct{}

// New returns middleware enforcing HTTP Basic authentication. Requests
// without valid credentials short-circuit with 401 and a WWW-Authenticate
// challenge. The authenticated username is stored in the context.
//
// Example:
//
//	r := verse.MustNew()
//	r.Use(basicauth.New(basicauth.WithCredentials(map[string]string{
//	    "admin": "s3cret",
//	})))
func New(opts ...Option) verse.Middleware {
	cfg := &config{realm: "Restricted"}
	for _, opt := range opts {
		opt(cfg)
	}

	challenge := `Basic realm="` + cfg.realm + `", charset="UTF-8"`
	deny := func() *verse.Response {
		resp := verse.Problem(http.StatusUnauthorized, "authentication required")
		resp.Header.Set("WWW-Authenticate", challenge)
		return resp
	}

	return verse.MiddlewareFunc(func(next verse.Endpoint) verse.Endpoint {
		return verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
			if cfg.validate == nil {
				return deny()
			}
			user, pass, ok := parseBasic(req.Header.Get("Authorization"))
			if !ok || !cfg.validate(ctx, user, pass) {
				return deny()
			}
			return next.Call(context.WithValue(ctx, userKey{}, user), req)
		})
	})
}

// Username returns the authenticated user stored by the middleware, or ""
// when the request did not pass through it.
func Username(ctx context.Context) string {
	if u, ok := ctx.Value(userKey{}).(string); ok {
		return u
	}
	return ""
}

func parseBasic(header string) (user, pass string, ok bool) {
	const prefix = "Basic "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(header[len(prefix):])
	if err != nil {
		return "", "", false
	}
	user, pass, ok = strings.Cut(string(decoded), ":")
	return user, pass, ok
}
