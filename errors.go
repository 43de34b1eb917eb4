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
	"errors"
	"fmt"
)

var (
	// ErrDuplicateRoute indicates that a structurally identical pattern is
	// already registered for the same method. Registration order never
	// resolves this silently; it is a developer error at build time.
	ErrDuplicateRoute = errors.New("duplicate route registration")

	// ErrRouterFrozen indicates a registration attempt after the router
	// started serving. Routes are build-once; lookups never mutate.
	ErrRouterFrozen = errors.New("router is frozen")

	// ErrNilEndpoint indicates that a nil endpoint was passed to a
	// registration call.
	ErrNilEndpoint = errors.New("nil endpoint")

	// ErrInvalidMethod indicates a Method value outside the supported set.
	ErrInvalidMethod = errors.New("invalid HTTP method")

	// ErrWildcardPrefix indicates a mount prefix containing a wildcard
	// segment, which would leave nothing for the child patterns to match.
	ErrWildcardPrefix = errors.New("mount prefix must not contain a wildcard")

	// ErrNilRouter indicates that a nil sub-router was passed to Mount.
	ErrNilRouter = errors.New("nil sub-router")

	// ErrInvalidPrecedence indicates an unknown CapturePrecedence value.
	ErrInvalidPrecedence = errors.New("invalid capture precedence")

	// ErrServerTimeoutInvalid indicates a non-positive server timeout.
	ErrServerTimeoutInvalid = errors.New("server timeout must be positive")
)

// RegistrationError is the error type returned by Handle and Mount. It
// carries the method and pattern under registration and unwraps to the
// underlying cause (one of the sentinel errors above, or a
// *pattern.CompileError when the pattern itself is malformed).
type RegistrationError struct {
	Method  Method
	Pattern string
	Err     error
}

// Error implements the error interface.
func (e *RegistrationError) Error() string {
	return fmt.Sprintf("register %s %s: %v", e.Method, e.Pattern, e.Err)
}

// Unwrap returns the underlying cause.
func (e *RegistrationError) Unwrap() error { return e.Err }
