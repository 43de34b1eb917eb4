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
	"context"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
)

// serverTimeouts holds HTTP server timeout configuration.
type serverTimeouts struct {
	readHeader time.Duration
	read       time.Duration
	write      time.Duration
	idle       time.Duration
}

// defaultServerTimeouts returns production-safe defaults. ReadHeaderTimeout
// in particular guards against slowloris-style connection exhaustion.
func defaultServerTimeouts() *serverTimeouts {
	return &serverTimeouts{
		readHeader: 5 * time.Second,
		read:       15 * time.Second,
		write:      30 * time.Second,
		idle:       60 * time.Second,
	}
}

// ServeHTTP implements http.Handler, bridging net/http requests into the
// endpoint model. The first request freezes the router.
//
// The routing path is the percent-encoded path (URL.EscapedPath), so an
// encoded slash inside a segment never splits routing segments; captured
// values are decoded by the matcher after segmentation.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	method, ok := ParseMethod(req.Method)
	if !ok {
		// Outside the supported method set entirely.
		writeResponse(w, Problem(http.StatusNotImplemented, "unsupported method"))
		return
	}

	path := req.URL.EscapedPath()
	vr := &Request{
		Method:  method,
		Path:    path,
		Header:  req.Header,
		Body:    req.Body,
		Remote:  req.RemoteAddr,
		rawPath: path,
	}

	resp := r.Call(req.Context(), vr)
	writeResponse(w, resp)
}

// writeResponse copies an in-process response onto the wire. A nil response
// from a misbehaving endpoint degrades to an empty 500 rather than a hang.
func writeResponse(w http.ResponseWriter, resp *Response) {
	if resp == nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	h := w.Header()
	for key, values := range resp.Header {
		h[key] = values
	}
	w.WriteHeader(resp.Status)
	if resp.Body != nil {
		io.Copy(w, resp.Body) //nolint:errcheck // client gone, nothing to do
	}
}

// Serve starts an HTTP server on addr with the router as handler, enabling
// h2c when configured via WithH2C. It blocks until the server exits; use
// Shutdown from another goroutine for graceful shutdown.
//
// Example:
//
//	r := verse.MustNew()
//	r.GET("/healthz", verse.EndpointFunc(func(ctx context.Context, req *verse.Request) *verse.Response {
//	    return verse.Text(http.StatusOK, "ok")
//	}))
//
//	go func() {
//	    if err := r.Serve(":8080"); err != nil && err != http.ErrServerClosed {
//	        log.Fatal(err)
//	    }
//	}()
//
//	quit := make(chan os.Signal, 1)
//	signal.Notify(quit, os.Interrupt)
//	<-quit
//
//	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
//	defer cancel()
//	r.Shutdown(ctx)
func (r *Router) Serve(addr string) error {
	h := http.Handler(r)

	if r.enableH2C {
		h = h2c.NewHandler(h, &http2.Server{})
		r.logger.Warn("h2c enabled; use only in dev or behind a trusted load balancer")
	}

	srv := r.newServer(addr, h)

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv.ListenAndServe()
}

// ServeTLS starts an HTTPS server on addr. HTTP/2 is enabled automatically
// over TLS via ALPN, so WithH2C is not needed here.
func (r *Router) ServeTLS(addr, certFile, keyFile string) error {
	srv := r.newServer(addr, r)

	r.serverMu.Lock()
	r.server = srv
	r.serverMu.Unlock()

	return srv.ListenAndServeTLS(certFile, keyFile)
}

// Shutdown gracefully shuts down a server started by Serve or ServeTLS,
// waiting for in-flight requests up to the context deadline. A no-op when
// no server is running.
func (r *Router) Shutdown(ctx context.Context) error {
	r.serverMu.Lock()
	srv := r.server
	r.serverMu.Unlock()

	if srv == nil {
		return nil
	}
	return srv.Shutdown(ctx)
}

func (r *Router) newServer(addr string, h http.Handler) *http.Server {
	timeouts := r.timeouts
	if timeouts == nil {
		timeouts = defaultServerTimeouts()
	}
	return &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: timeouts.readHeader,
		ReadTimeout:       timeouts.read,
		WriteTimeout:      timeouts.write,
		IdleTimeout:       timeouts.idle,
	}
}

var _ http.Handler = (*Router)(nil)
