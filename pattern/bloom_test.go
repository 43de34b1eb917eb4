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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	t.Parallel()

	// Stable across calls, sensitive to part boundaries and order.
	assert.Equal(t, Hash("GET", "/users"), Hash("GET", "/users"))
	assert.NotEqual(t, Hash("GET", "/users"), Hash("POST", "/users"))
	assert.NotEqual(t, Hash("GET", "/users"), Hash("/users", "GET"))
}

func TestBloomFilter(t *testing.T) {
	t.Parallel()

	bf := NewBloomFilter(1024, 3)

	var added []uint64
	for i := range 50 {
		h := Hash("GET", fmt.Sprintf("/route/%d", i))
		bf.Add(h)
		added = append(added, h)
	}

	for _, h := range added {
		assert.True(t, bf.Test(h), "added hash must test positive")
	}

	// Absent keys mostly test negative; with 1024 bits for 50 keys a run
	// of 100 misses should stay well under a handful of false positives.
	falsePositives := 0
	for i := 1000; i < 1100; i++ {
		if bf.Test(Hash("GET", fmt.Sprintf("/other/%d", i))) {
			falsePositives++
		}
	}
	assert.Less(t, falsePositives, 10)
}
