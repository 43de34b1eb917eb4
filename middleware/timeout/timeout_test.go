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

package timeout

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-web/verse"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestFastRequestPasses(t *testing.T) {
	t.Parallel()

	ep := verse.With(verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "fast")
	}), New(WithTimeout(time.Second), quiet()))

	resp := ep.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/"))
	assert.Equal(t, http.StatusOK, resp.Status)
}

func TestSlowRequestTimesOut(t *testing.T) {
	t.Parallel()

	ep := verse.With(verse.EndpointFunc(func(ctx context.Context, _ *verse.Request) *verse.Response {
		select {
		case <-time.After(5 * time.Second):
			return verse.Text(http.StatusOK, "too late")
		case <-ctx.Done():
			return verse.Problem(http.StatusServiceUnavailable, "cancelled")
		}
	}), New(WithTimeout(20*time.Millisecond), quiet()))

	resp := ep.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/"))
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusRequestTimeout, resp.Status)
}

func TestSkippedPathNotBounded(t *testing.T) {
	t.Parallel()

	ep := verse.With(verse.EndpointFunc(func(ctx context.Context, _ *verse.Request) *verse.Response {
		// Would exceed the configured timeout if it were applied.
		time.Sleep(50 * time.Millisecond)
		return verse.Text(http.StatusOK, "slow but exempt")
	}), New(
		WithTimeout(10*time.Millisecond),
		WithSkip(func(req *verse.Request) bool { return req.Path == "/stream" }),
		quiet(),
	))

	resp := ep.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/stream"))
	assert.Equal(t, http.StatusOK, resp.Status)
}
