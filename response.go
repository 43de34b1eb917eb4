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
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Response is the in-process HTTP response produced by endpoints: a status
// code, headers, and a body producer. Failure is a Response with an error
// status, never an out-of-band channel, so every composition point has a
// single return type.
type Response struct {
	Status int
	Header http.Header
	Body   io.Reader
}

// NewResponse returns an empty response with the given status.
func NewResponse(status int) *Response {
	return &Response{Status: status, Header: make(http.Header)}
}

// SetHeader sets a header and returns the response for chaining.
func (r *Response) SetHeader(key, value string) *Response {
	r.Header.Set(key, value)
	return r
}

// SetBody sets the body producer and returns the response for chaining.
func (r *Response) SetBody(body io.Reader) *Response {
	r.Body = body
	return r
}

// Text returns a text/plain response with the given status and body.
func Text(status int, body string) *Response {
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "text/plain; charset=utf-8")
	resp.Body = strings.NewReader(body)
	return resp
}

// JSON returns an application/json response with the given status,
// marshaling v. A marshal failure degrades to a plain 500; handlers never
// get an error channel for it.
func JSON(status int, v any) *Response {
	data, err := json.Marshal(v)
	if err != nil {
		return Problem(http.StatusInternalServerError, "response encoding failed")
	}
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "application/json")
	resp.Body = strings.NewReader(string(data))
	return resp
}

// Problem returns an RFC 9457 problem-details response for the given
// status. Used for the built-in not-found, method-not-allowed, and
// recovery responses so machine clients get a structured error body.
func Problem(status int, detail string) *Response {
	body := map[string]any{
		"title":  http.StatusText(status),
		"status": status,
	}
	if detail != "" {
		body["detail"] = detail
	}
	// Marshal of map[string]any over strings cannot fail.
	data, _ := json.Marshal(body)
	resp := NewResponse(status)
	resp.Header.Set("Content-Type", "application/problem+json")
	resp.Body = strings.NewReader(string(data))
	return resp
}
