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

package cors

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-web/verse"
)

func okEndpoint(ran *bool) verse.Endpoint {
	return verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		if ran != nil {
			*ran = true
		}
		return verse.Text(http.StatusOK, "ok")
	})
}

func TestPreflightShortCircuits(t *testing.T) {
	t.Parallel()

	var ran bool
	ep := verse.With(okEndpoint(&ran), New(WithOrigins("https://app.example.com")))

	req := verse.NewRequest(verse.MethodOptions, "/resource")
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")

	resp := ep.Call(context.Background(), req)
	require.NotNil(t, resp)

	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.False(t, ran, "preflight must not reach the endpoint")
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Methods"), "PUT")
	assert.NotEmpty(t, resp.Header.Get("Access-Control-Max-Age"))
}

func TestPreflightDisallowedOrigin(t *testing.T) {
	t.Parallel()

	var ran bool
	ep := verse.With(okEndpoint(&ran), New(WithOrigins("https://app.example.com")))

	req := verse.NewRequest(verse.MethodOptions, "/resource")
	req.Header.Set("Origin", "https://evil.example.com")
	req.Header.Set("Access-Control-Request-Method", "PUT")

	resp := ep.Call(context.Background(), req)
	assert.Equal(t, http.StatusNoContent, resp.Status)
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
	assert.False(t, ran)
}

func TestSimpleRequestStamped(t *testing.T) {
	t.Parallel()

	var ran bool
	ep := verse.With(okEndpoint(&ran), New())

	req := verse.NewRequest(verse.MethodGet, "/resource")
	req.Header.Set("Origin", "https://anywhere.example.com")

	resp := ep.Call(context.Background(), req)
	assert.True(t, ran)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestNonCORSRequestUntouched(t *testing.T) {
	t.Parallel()

	ep := verse.With(okEndpoint(nil), New())
	resp := ep.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/resource"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestCredentialsEchoOrigin(t *testing.T) {
	t.Parallel()

	ep := verse.With(okEndpoint(nil), New(WithCredentials()))

	req := verse.NewRequest(verse.MethodGet, "/resource")
	req.Header.Set("Origin", "https://app.example.com")

	resp := ep.Call(context.Background(), req)
	assert.Equal(t, "https://app.example.com", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", resp.Header.Get("Access-Control-Allow-Credentials"))
}
