// Copyright 2025 Tom Barlow
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

package log

import (
	"log/slog"
	"net/http"
	"time"
)

// Transport is an http.RoundTripper that logs each request and its outcome.
// Only the method, host and path are logged; query strings and bodies may
// carry authorization codes and tokens.
type Transport struct {
	// Base is the wrapped transport. Defaults to http.DefaultTransport.
	Base   http.RoundTripper
	Logger *slog.Logger
}

// NewTransport wraps base with request logging. A nil logger discards.
func NewTransport(base http.RoundTripper, logger *slog.Logger) *Transport {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Transport{Base: base, Logger: logger}
}

// RoundTrip implements http.RoundTripper.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	attrs := []any{
		"event", "http_request",
		"method", req.Method,
		"host", req.URL.Host,
		"path", req.URL.Path,
	}

	start := time.Now()
	resp, err := base.RoundTrip(req)
	attrs = append(attrs, "duration_ms", time.Since(start).Milliseconds())

	if err != nil {
		t.Logger.Error("http request failed", append(attrs, "error", err)...)
		return nil, err
	}

	attrs = append(attrs, "status", resp.StatusCode)
	if resp.StatusCode >= 400 {
		t.Logger.Warn("http request completed", attrs...)
	} else {
		t.Logger.Debug("http request completed", attrs...)
	}
	return resp, nil
}
