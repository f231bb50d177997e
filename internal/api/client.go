// Package api is the HTTP client of the canteen backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
)

const (
	// DefaultTimeout bounds a single backend call
	DefaultTimeout = 10 * time.Second

	// LoginEndpoint is the only endpoint whose 401 is a plain API error
	LoginEndpoint = "/auth/login"

	maxBodyBytes   = 4 << 20
	maxErrorRunes  = 200
	invalidJSONMsg = "Invalid JSON response"
)

// Client calls the canteen backend
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the API rooted at baseURL (e.g. http://localhost:5000/api)
func New(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return NewWithHTTPClient(baseURL, &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

// NewWithHTTPClient creates a client that sends requests through hc
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    hc,
	}
}

// Do sends a JSON request to endpoint and decodes a successful JSON answer into out.
// token is sent as a bearer token when not empty. Failures are returned as *Error.
func (c *Client) Do(ctx context.Context, token, method, endpoint string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if token != "" {
		(&oauth2.Token{AccessToken: token}).SetAuthHeader(req)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return &Error{
			Kind:    KindNetwork,
			Status:  0,
			Code:    "network_error",
			Message: NetworkErrorMessage,
			Err:     err,
		}
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, maxBodyBytes))
	if err != nil {
		return &Error{
			Kind:    KindNetwork,
			Status:  0,
			Code:    "network_error",
			Message: NetworkErrorMessage,
			Err:     err,
		}
	}

	ok := res.StatusCode >= 200 && res.StatusCode < 300
	isJSON := strings.Contains(res.Header.Get("Content-Type"), "application/json")

	if ok && isJSON && json.Valid(raw) {
		if out == nil {
			return nil
		}
		if err := json.Unmarshal(raw, out); err != nil {
			return &Error{
				Kind:    KindAPI,
				Status:  res.StatusCode,
				Code:    "invalid_response",
				Message: invalidJSONMsg,
				Fields:  map[string]any{"error": invalidJSONMsg},
				Err:     err,
			}
		}
		return nil
	}

	fields := errorPayload(res.StatusCode, isJSON, raw)
	apiErr := &Error{
		Kind:    KindAPI,
		Status:  res.StatusCode,
		Code:    stringField(fields, "error"),
		Message: errorMessage(res.StatusCode, fields),
		Fields:  fields,
	}
	if res.StatusCode == http.StatusUnauthorized && !strings.Contains(endpoint, LoginEndpoint) {
		apiErr.Kind = KindAuthExpired
	}
	return apiErr
}

// errorPayload normalizes the body of a failed response into a map
func errorPayload(status int, isJSON bool, raw []byte) map[string]any {
	if isJSON {
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
			return map[string]any{"error": invalidJSONMsg}
		}
		return fields
	}
	text := truncate(string(raw), maxErrorRunes)
	if text == "" {
		text = fmt.Sprintf("HTTP %d", status)
	}
	return map[string]any{"error": text}
}

func errorMessage(status int, fields map[string]any) string {
	if msg := stringField(fields, "error"); msg != "" {
		return msg
	}
	if msg := stringField(fields, "message"); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP %d", status)
}

func stringField(fields map[string]any, key string) string {
	if s, ok := fields[key].(string); ok {
		return s
	}
	return ""
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

/*
This project is the web client of the Smart Canteen ordering service. It renders the menu, cart, kitchen and admin pages on top of the canteen backend API.
Smart Canteen Web Copyright (C) 2025 Smart Canteen contributors
    This program is free software: you can redistribute it and/or modify
    it under the terms of the GNU General Public License as published by
    the Free Software Foundation, either version 3 of the License, or
    (at your option) any later version.

    This program is distributed in the hope that it will be useful,
    but WITHOUT ANY WARRANTY; without even the implied warranty of
    MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
    GNU General Public License for more details.

    You should have received a copy of the GNU General Public License
    along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/
