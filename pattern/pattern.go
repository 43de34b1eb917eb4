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
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var (
	// ErrEmptyPattern indicates that an empty string was given as a route pattern.
	ErrEmptyPattern = errors.New("empty route pattern")

	// ErrDuplicateCapture indicates that two segments bind the same capture name.
	ErrDuplicateCapture = errors.New("duplicate capture name")

	// ErrWildcardNotLast indicates a wildcard segment in a non-final position.
	ErrWildcardNotLast = errors.New("wildcard segment must be the last segment")

	// ErrInvalidRegex indicates that a regex segment failed to compile.
	ErrInvalidRegex = errors.New("invalid regex segment")
)

// CompileError is the error type returned by Compile. It carries the
// offending pattern and segment and unwraps to one of the sentinel errors
// above (and, for regex failures, to the underlying regexp error).
type CompileError struct {
	Pattern string // the full pattern string given to Compile
	Segment string // the segment that caused the failure, if any
	Err     error
}

// Error implements the error interface.
func (e *CompileError) Error() string {
	if e.Segment != "" {
		return fmt.Sprintf("compile %q: segment %q: %v", e.Pattern, e.Segment, e.Err)
	}
	return fmt.Sprintf("compile %q: %v", e.Pattern, e.Err)
}

// Unwrap returns the underlying cause.
func (e *CompileError) Unwrap() error { return e.Err }

// Kind identifies the matching behavior of a single segment.
type Kind uint8

const (
	// KindLiteral matches one path segment by exact comparison.
	KindLiteral Kind = iota

	// KindCapture matches any single path segment and binds it.
	KindCapture

	// KindRegex matches a single path segment against an anchored regex.
	KindRegex

	// KindWildcard matches and binds all remaining path segments.
	KindWildcard
)

// Segment is one /-delimited unit of a compiled pattern.
type Segment struct {
	Kind    Kind
	Literal string         // KindLiteral: the text to compare against
	Name    string         // capture name; empty for literals and anonymous captures
	Regex   *regexp.Regexp // KindRegex: anchored expression, compiled once
}

// Pattern is the compiled form of a route pattern string. Immutable after
// Compile; safe for concurrent use.
type Pattern struct {
	raw      string
	segments []Segment
	foldCase bool

	// Specificity counters, computed at compile time so that registries can
	// order candidate patterns without walking the segments again.
	literals int
	regexes  int
	captures int
	wildcard bool
}

// CompileOption configures pattern compilation.
type CompileOption func(*Pattern)

// FoldCase makes literal segments match case-insensitively. Capture and
// regex segments are unaffected.
func FoldCase() CompileOption {
	return func(p *Pattern) {
		p.foldCase = true
	}
}

// Compile parses a route pattern string into a Pattern.
//
// It fails with a *CompileError on an empty pattern, a duplicate capture
// name, a wildcard segment that is not last, or a regex segment that does
// not compile. All failures are build-time failures: a pattern that compiles
// never errors at match time.
func Compile(raw string, opts ...CompileOption) (*Pattern, error) {
	if raw == "" {
		return nil, &CompileError{Pattern: raw, Err: ErrEmptyPattern}
	}

	p := &Pattern{raw: raw}
	for _, opt := range opts {
		opt(p)
	}

	pieces := Split(raw)
	seen := make(map[string]struct{}, len(pieces))
	for i, piece := range pieces {
		seg, err := compileSegment(piece)
		if err != nil {
			return nil, &CompileError{Pattern: raw, Segment: piece, Err: err}
		}

		if seg.Kind == KindWildcard && i != len(pieces)-1 {
			return nil, &CompileError{Pattern: raw, Segment: piece, Err: ErrWildcardNotLast}
		}

		if seg.Name != "" {
			if _, dup := seen[seg.Name]; dup {
				return nil, &CompileError{Pattern: raw, Segment: piece, Err: ErrDuplicateCapture}
			}
			seen[seg.Name] = struct{}{}
		}

		switch seg.Kind {
		case KindLiteral:
			p.literals++
		case KindRegex:
			p.regexes++
		case KindCapture:
			p.captures++
		case KindWildcard:
			p.wildcard = true
		}
		p.segments = append(p.segments, seg)
	}

	return p, nil
}

// MustCompile is like Compile but panics on error. Intended for patterns
// known at compile time, mirroring regexp.MustCompile.
func MustCompile(raw string, opts ...CompileOption) *Pattern {
	p, err := Compile(raw, opts...)
	if err != nil {
		panic(fmt.Sprintf("pattern.MustCompile: %v", err))
	}
	return p
}

// compileSegment classifies a single non-empty pattern piece.
func compileSegment(piece string) (Segment, error) {
	switch {
	case strings.HasPrefix(piece, "*"):
		return Segment{Kind: KindWildcard, Name: piece[1:]}, nil

	case strings.HasPrefix(piece, ":"):
		name := piece[1:]
		if open := strings.IndexByte(name, '<'); open >= 0 && strings.HasSuffix(name, ">") {
			re, err := compileAnchored(name[open+1 : len(name)-1])
			if err != nil {
				return Segment{}, err
			}
			return Segment{Kind: KindRegex, Name: name[:open], Regex: re}, nil
		}
		return Segment{Kind: KindCapture, Name: name}, nil

	case strings.HasPrefix(piece, "<") && strings.HasSuffix(piece, ">"):
		re, err := compileAnchored(piece[1 : len(piece)-1])
		if err != nil {
			return Segment{}, err
		}
		return Segment{Kind: KindRegex, Regex: re}, nil

	default:
		return Segment{Kind: KindLiteral, Literal: piece}, nil
	}
}

// compileAnchored compiles expr so that it must match a whole segment.
func compileAnchored(expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + expr + ")$")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRegex, err)
	}
	return re, nil
}

// Split breaks a path or pattern string into its non-empty /-separated
// pieces. Both compilation and matching use this same split, so a pattern
// and a path always agree on segment boundaries. The input is not
// percent-decoded: an encoded slash (%2F) stays inside its segment.
func Split(s string) []string {
	s = strings.Trim(s, "/")
	if s == "" {
		return nil
	}
	pieces := strings.Split(s, "/")
	out := pieces[:0]
	for _, piece := range pieces {
		if piece != "" {
			out = append(out, piece)
		}
	}
	return out
}

// String returns the original pattern string.
func (p *Pattern) String() string { return p.raw }

// Segments returns the compiled segments in order. The returned slice must
// not be modified.
func (p *Pattern) Segments() []Segment { return p.segments }

// Len returns the number of segments.
func (p *Pattern) Len() int { return len(p.segments) }

// Literals returns the number of literal segments. Used for precedence
// ordering: a pattern with more literals is more specific.
func (p *Pattern) Literals() int { return p.literals }

// Regexes returns the number of regex capture segments.
func (p *Pattern) Regexes() int { return p.regexes }

// HasWildcard reports whether the final segment is a wildcard capture.
func (p *Pattern) HasWildcard() bool { return p.wildcard }

// IsStatic reports whether the pattern consists solely of literal segments,
// making it eligible for hash-table lookup.
func (p *Pattern) IsStatic() bool {
	return p.captures == 0 && p.regexes == 0 && !p.wildcard
}

// Canonical returns the normalized literal path for a static pattern, e.g.
// "/api//users/" canonicalizes to "/api/users". For non-static patterns the
// result is not a valid lookup key and callers should check IsStatic first.
// Under FoldCase the canonical form is lower-cased.
func (p *Pattern) Canonical() string {
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		if p.foldCase {
			sb.WriteString(strings.ToLower(seg.Literal))
		} else {
			sb.WriteString(seg.Literal)
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// CaptureNames returns the names of binding segments in positional order.
// Anonymous captures contribute an empty string so that positions line up
// across patterns with an identical shape.
func (p *Pattern) CaptureNames() []string {
	var names []string
	for _, seg := range p.segments {
		if seg.Kind != KindLiteral {
			names = append(names, seg.Name)
		}
	}
	return names
}

// Shape returns a canonical string identifying the structural shape of the
// pattern: literal text for literal segments, ":" for captures, "<expr>" for
// regex captures, and "*" for the wildcard. Two patterns with equal shapes
// match exactly the same set of paths (capture names aside), which is what
// registries use for duplicate detection.
func (p *Pattern) Shape() string {
	var sb strings.Builder
	for _, seg := range p.segments {
		sb.WriteByte('/')
		switch seg.Kind {
		case KindLiteral:
			if p.foldCase {
				sb.WriteString(strings.ToLower(seg.Literal))
			} else {
				sb.WriteString(seg.Literal)
			}
		case KindCapture:
			sb.WriteByte(':')
		case KindRegex:
			sb.WriteByte('<')
			sb.WriteString(seg.Regex.String())
			sb.WriteByte('>')
		case KindWildcard:
			sb.WriteByte('*')
		}
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// Join returns a new pattern whose segments are prefix's segments followed
// by suffix's segments, as produced when mounting a sub-registry under a
// prefix. The prefix may itself contain captures; those merge into the same
// capture namespace as the suffix's captures. Join fails if the prefix
// contains a wildcard (nothing could follow it) or if a capture name appears
// in both halves.
func Join(prefix, suffix *Pattern) (*Pattern, error) {
	if prefix.wildcard {
		return nil, &CompileError{Pattern: prefix.raw, Err: ErrWildcardNotLast}
	}

	seen := make(map[string]struct{}, len(prefix.segments)+len(suffix.segments))
	for _, seg := range prefix.segments {
		if seg.Name != "" {
			seen[seg.Name] = struct{}{}
		}
	}
	for _, seg := range suffix.segments {
		if seg.Name == "" {
			continue
		}
		if _, dup := seen[seg.Name]; dup {
			return nil, &CompileError{
				Pattern: prefix.raw + suffix.raw,
				Segment: seg.Name,
				Err:     ErrDuplicateCapture,
			}
		}
		seen[seg.Name] = struct{}{}
	}

	joined := &Pattern{
		raw:      strings.TrimSuffix(prefix.raw, "/") + "/" + strings.TrimPrefix(suffix.raw, "/"),
		segments: make([]Segment, 0, len(prefix.segments)+len(suffix.segments)),
		foldCase: prefix.foldCase || suffix.foldCase,
		literals: prefix.literals + suffix.literals,
		regexes:  prefix.regexes + suffix.regexes,
		captures: prefix.captures + suffix.captures,
		wildcard: suffix.wildcard,
	}
	joined.segments = append(joined.segments, prefix.segments...)
	joined.segments = append(joined.segments, suffix.segments...)
	return joined, nil
}
