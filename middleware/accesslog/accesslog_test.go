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

package accesslog

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-web/verse"
)

func capture() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, nil)), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestLogsRequest(t *testing.T) {
	t.Parallel()

	logger, buf := capture()
	r := verse.MustNew()
	r.Use(New(WithLogger(logger)))
	r.GET("/users/:id", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "ok")
	}))

	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/users/7"))

	entry := lastEntry(t, buf)
	assert.Equal(t, "request", entry["msg"])
	assert.Equal(t, "GET", entry["method"])
	assert.Equal(t, "/users/7", entry["path"])
	assert.Equal(t, "/users/:id", entry["route"])
	assert.Equal(t, float64(http.StatusOK), entry["status"])
	assert.Equal(t, "INFO", entry["level"])
}

func TestErrorStatusLogsAtError(t *testing.T) {
	t.Parallel()

	logger, buf := capture()
	r := verse.MustNew()
	r.Use(New(WithLogger(logger)))
	r.GET("/boom", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Problem(http.StatusInternalServerError, "")
	}))

	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/boom"))
	assert.Equal(t, "ERROR", lastEntry(t, buf)["level"])
}

func TestNotFoundIsLogged(t *testing.T) {
	t.Parallel()

	// Terminals run inside the chain, so misses produce a log line too.
	logger, buf := capture()
	r := verse.MustNew()
	r.Use(New(WithLogger(logger)))
	r.GET("/a", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "a")
	}))

	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/missing"))

	entry := lastEntry(t, buf)
	assert.Equal(t, float64(http.StatusNotFound), entry["status"])
	assert.Equal(t, "", entry["route"])
}

func TestSkip(t *testing.T) {
	t.Parallel()

	logger, buf := capture()
	r := verse.MustNew()
	r.Use(New(
		WithLogger(logger),
		WithSkip(func(req *verse.Request) bool { return req.Path == "/healthz" }),
	))
	r.GET("/healthz", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "ok")
	}))

	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/healthz"))
	assert.Zero(t, buf.Len())
}
