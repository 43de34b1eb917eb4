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
	"net/url"
	"strings"
)

// Param is a single captured path parameter.
type Param struct {
	Name  string
	Value string
}

// Params holds the parameters captured during one match, in pattern order.
// A Params value belongs to a single request and is discarded with it.
type Params []Param

// Get returns the value captured under name and whether it exists.
func (ps Params) Get(name string) (string, bool) {
	for _, p := range ps {
		if p.Name == name {
			return p.Value, true
		}
	}
	return "", false
}

// Renamed returns a copy of ps with names replaced positionally. Used when
// two registered patterns share a shape but bind different capture names;
// the match runs once against the canonical pattern and the winning entry
// renames the bindings. Positions with an empty name are dropped.
func (ps Params) Renamed(names []string) Params {
	out := make(Params, 0, len(ps))
	for i, p := range ps {
		if i < len(names) && names[i] != "" {
			out = append(out, Param{Name: names[i], Value: p.Value})
		}
	}
	return out
}

// Match attempts to match path against the pattern.
//
// The path is split the same way patterns are compiled, so segment counts
// are directly comparable: a pattern without a wildcard requires an equal
// count, a pattern ending in a wildcard requires at least len-1 segments and
// the wildcard greedily captures the rest.
//
// Captured values are percent-decoded before they are stored, so an encoded
// slash (%2F) ends up as "/" inside a single captured value without ever
// splitting the path. Literal comparison happens on the raw, undecoded
// segment text.
//
// Bindings are returned in positional order, one per non-literal segment;
// anonymous captures contribute a binding with an empty Name that callers
// drop (or rename, see Params.Renamed) before exposing parameters.
//
// Match is deterministic and side-effect-free: the same inputs always
// produce the same result. A failed segment is a hard reject, not a partial
// match; the caller moves on to its next candidate pattern.
func (p *Pattern) Match(path string) (Params, bool) {
	segs := Split(path)

	if p.wildcard {
		if len(segs) < len(p.segments)-1 {
			return nil, false
		}
	} else if len(segs) != len(p.segments) {
		return nil, false
	}

	var params Params
	for i, seg := range p.segments {
		switch seg.Kind {
		case KindLiteral:
			if p.foldCase {
				if !strings.EqualFold(seg.Literal, segs[i]) {
					return nil, false
				}
			} else if seg.Literal != segs[i] {
				return nil, false
			}

		case KindCapture:
			params = append(params, Param{Name: seg.Name, Value: decodeSegment(segs[i])})

		case KindRegex:
			value := decodeSegment(segs[i])
			if !seg.Regex.MatchString(value) {
				return nil, false
			}
			params = append(params, Param{Name: seg.Name, Value: value})

		case KindWildcard:
			params = append(params, Param{Name: seg.Name, Value: decodeRest(segs[i:])})
			return params, true
		}
	}

	return params, true
}

// decodeSegment percent-decodes one path segment. A malformed escape leaves
// the segment as-is rather than failing the whole match.
func decodeSegment(seg string) string {
	if !strings.ContainsRune(seg, '%') {
		return seg
	}
	decoded, err := url.PathUnescape(seg)
	if err != nil {
		return seg
	}
	return decoded
}

// decodeRest joins the remaining segments with "/" after decoding each one.
func decodeRest(segs []string) string {
	switch len(segs) {
	case 0:
		return ""
	case 1:
		return decodeSegment(segs[0])
	}
	var sb strings.Builder
	for i, seg := range segs {
		if i > 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(decodeSegment(seg))
	}
	return sb.String()
}

