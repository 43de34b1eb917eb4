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

// Package pattern compiles route pattern strings into matchable segment
// sequences and matches request paths against them.
//
// A pattern is an ordered list of /-separated segments. Each segment is one
// of four kinds:
//
//	users           literal, matched by exact comparison
//	:id             capture, binds one path segment
//	:id<\d+>        regex capture, binds one segment if the regex matches
//	*rest           wildcard capture, binds all remaining segments (last only)
//
// A bare regex segment (<\d+> with no name) participates in matching but
// does not bind a parameter, as does a bare ":" or "*".
//
// Patterns are compiled once at application startup. Compilation is the only
// place regular expressions are compiled; a malformed regex is a startup
// error, never a request-time error. Compiled patterns are immutable and safe
// for concurrent use.
//
// Example:
//
//	p, err := pattern.Compile("/users/:id<\\d+>/files/*path")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	params, ok := p.Match("/users/42/files/a/b.txt")
//	// ok == true, params: id=42 path=a/b.txt
package pattern
