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

package metrics

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verse-web/verse"
)

func TestRequestCounter(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := verse.MustNew()
	r.Use(New(WithRegisterer(reg)))
	r.GET("/users/:id", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "ok")
	}))

	for range 3 {
		r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/users/7"))
	}
	// Different raw paths share the route label.
	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/users/8"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var found bool
	for _, fam := range families {
		if fam.GetName() != "verse_requests_total" {
			continue
		}
		found = true
		require.Len(t, fam.GetMetric(), 1, "one label set for one route")
		assert.Equal(t, float64(4), fam.GetMetric()[0].GetCounter().GetValue())

		labels := map[string]string{}
		for _, lp := range fam.GetMetric()[0].GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		assert.Equal(t, "GET", labels["method"])
		assert.Equal(t, "/users/:id", labels["route"])
		assert.Equal(t, "200", labels["status"])
	}
	assert.True(t, found, "verse_requests_total not gathered")
}

func TestUnmatchedRouteLabel(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := verse.MustNew()
	r.Use(New(WithRegisterer(reg)))
	r.GET("/a", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "a")
	}))

	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/missing"))

	assert.Equal(t, float64(1), counterValue(t, reg, "verse_requests_total", map[string]string{
		"method": "GET", "route": "unmatched", "status": "404",
	}))
}

func TestHistogramObserved(t *testing.T) {
	t.Parallel()

	reg := prometheus.NewRegistry()
	r := verse.MustNew()
	r.Use(New(WithRegisterer(reg), WithNamespace("app")))
	r.GET("/x", verse.EndpointFunc(func(_ context.Context, _ *verse.Request) *verse.Response {
		return verse.Text(http.StatusOK, "x")
	}))

	r.Call(context.Background(), verse.NewRequest(verse.MethodGet, "/x"))

	families, err := reg.Gather()
	require.NoError(t, err)

	var sampleCount uint64
	for _, fam := range families {
		if fam.GetName() == "app_request_duration_seconds" {
			sampleCount = fam.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	assert.Equal(t, uint64(1), sampleCount)
}

// counterValue reads one counter child with the given labels.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()

	families, err := reg.Gather()
	require.NoError(t, err)

	for _, fam := range families {
		if fam.GetName() != name {
			continue
		}
		for _, m := range fam.GetMetric() {
			matched := true
			for _, lp := range m.GetLabel() {
				if want, ok := labels[lp.GetName()]; ok && want != lp.GetValue() {
					matched = false
					break
				}
			}
			if matched {
				return m.GetCounter().GetValue()
			}
		}
	}
	t.Fatalf("metric %s with labels %v not found", name, labels)
	return 0
}
