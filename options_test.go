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
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithIgnoreCase(t *testing.T) {
	t.Parallel()

	r := MustNew(WithIgnoreCase())
	assert.True(t, r.ignoreCase)
}

func TestWithH2C(t *testing.T) {
	t.Parallel()

	r := MustNew(WithH2C(true))
	assert.True(t, r.enableH2C)
}

func TestWithServerTimeouts(t *testing.T) {
	t.Parallel()

	readHeader := 10 * time.Second
	read := 30 * time.Second
	write := 60 * time.Second
	idle := 120 * time.Second

	r := MustNew(WithServerTimeouts(readHeader, read, write, idle))
	require.NotNil(t, r.timeouts)
	assert.Equal(t, readHeader, r.timeouts.readHeader)
	assert.Equal(t, read, r.timeouts.read)
	assert.Equal(t, write, r.timeouts.write)
	assert.Equal(t, idle, r.timeouts.idle)
}

func TestWithLogger(t *testing.T) {
	t.Parallel()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := MustNew(WithLogger(logger))
	assert.Same(t, logger, r.logger)

	// nil keeps the no-op default rather than panicking later.
	r = MustNew(WithLogger(nil))
	assert.Same(t, noopLogger, r.logger)
}
