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

package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		path    string
		ok      bool
		params  map[string]string
	}{
		{
			name:    "static match",
			pattern: "/users/all",
			path:    "/users/all",
			ok:      true,
		},
		{
			name:    "static mismatch",
			pattern: "/users/all",
			path:    "/users/one",
			ok:      false,
		},
		{
			name:    "length mismatch short",
			pattern: "/users/:id",
			path:    "/users",
			ok:      false,
		},
		{
			name:    "length mismatch long",
			pattern: "/users/:id",
			path:    "/users/7/posts",
			ok:      false,
		},
		{
			name:    "capture binds",
			pattern: "/users/:id",
			path:    "/users/42",
			ok:      true,
			params:  map[string]string{"id": "42"},
		},
		{
			name:    "capture decodes percent escapes",
			pattern: "/files/:name",
			path:    "/files/report%20final",
			ok:      true,
			params:  map[string]string{"name": "report final"},
		},
		{
			name:    "encoded slash decodes without splitting",
			pattern: "/files/:name",
			path:    "/files/a%2Fb",
			ok:      true,
			params:  map[string]string{"name": "a/b"},
		},
		{
			name:    "malformed escape kept raw",
			pattern: "/files/:name",
			path:    "/files/bad%zz",
			ok:      true,
			params:  map[string]string{"name": "bad%zz"},
		},
		{
			name:    "regex accepts",
			pattern: `/items/:id<\d+>`,
			path:    "/items/123",
			ok:      true,
			params:  map[string]string{"id": "123"},
		},
		{
			name:    "regex rejects",
			pattern: `/items/:id<\d+>`,
			path:    "/items/abc",
			ok:      false,
		},
		{
			name:    "regex anchored to whole segment",
			pattern: `/items/:id<\d+>`,
			path:    "/items/12a",
			ok:      false,
		},
		{
			name:    "regex matches decoded value",
			pattern: `/tags/:t<[a-z ]+>`,
			path:    "/tags/hot%20stuff",
			ok:      true,
			params:  map[string]string{"t": "hot stuff"},
		},
		{
			name:    "wildcard captures rest",
			pattern: "/files/*rest",
			path:    "/files/a/b/c",
			ok:      true,
			params:  map[string]string{"rest": "a/b/c"},
		},
		{
			name:    "wildcard captures empty rest",
			pattern: "/files/*rest",
			path:    "/files",
			ok:      true,
			params:  map[string]string{"rest": ""},
		},
		{
			name:    "wildcard decodes per segment",
			pattern: "/files/*rest",
			path:    "/files/a%2Fb/c",
			ok:      true,
			params:  map[string]string{"rest": "a/b/c"},
		},
		{
			name:    "wildcard needs its prefix",
			pattern: "/files/docs/*rest",
			path:    "/files",
			ok:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p := MustCompile(tt.pattern)
			params, ok := p.Match(tt.path)
			require.Equal(t, tt.ok, ok)
			for name, want := range tt.params {
				got, found := params.Get(name)
				require.True(t, found, "param %q not bound", name)
				assert.Equal(t, want, got)
			}
		})
	}
}

func TestMatchFoldCase(t *testing.T) {
	t.Parallel()

	p := MustCompile("/Users/:id", FoldCase())

	_, ok := p.Match("/users/7")
	assert.True(t, ok)
	_, ok = p.Match("/USERS/7")
	assert.True(t, ok)

	// Captures are untouched by folding: the bound value keeps its case.
	params, ok := p.Match("/users/AbC")
	require.True(t, ok)
	id, _ := params.Get("id")
	assert.Equal(t, "AbC", id)
}

func TestMatchAnonymousBindings(t *testing.T) {
	t.Parallel()

	// Anonymous regex segments contribute positional bindings with empty
	// names; Renamed drops them.
	p := MustCompile(`/v<\d+>/users/:id`)
	params, ok := p.Match("/v2/users/9")
	require.True(t, ok)
	require.Len(t, params, 2)
	assert.Equal(t, "", params[0].Name)
	assert.Equal(t, "2", params[0].Value)

	renamed := params.Renamed(p.CaptureNames())
	require.Len(t, renamed, 1)
	assert.Equal(t, "id", renamed[0].Name)
	assert.Equal(t, "9", renamed[0].Value)
}

func TestParamsRenamed(t *testing.T) {
	t.Parallel()

	ps := Params{{Name: "a", Value: "1"}, {Name: "b", Value: "2"}}

	renamed := ps.Renamed([]string{"x", "y"})
	x, _ := renamed.Get("x")
	y, _ := renamed.Get("y")
	assert.Equal(t, "1", x)
	assert.Equal(t, "2", y)

	// Original is untouched.
	a, ok := ps.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", a)
}

func TestMatchDeterministic(t *testing.T) {
	t.Parallel()

	p := MustCompile(`/a/:x<[0-9a-f]+>/b/*rest`)
	for range 100 {
		params, ok := p.Match("/a/deadbeef/b/x/y")
		require.True(t, ok)
		x, _ := params.Get("x")
		rest, _ := params.Get("rest")
		assert.Equal(t, "deadbeef", x)
		assert.Equal(t, "x/y", rest)
	}
}
