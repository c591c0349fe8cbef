// Lantern: Content-source extensions and a host harness for manga readers.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package network

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"Lantern/pkg/engine/parser/html"
	"Lantern/pkg/errors"
)

// Request represents an HTTP request configuration
type Request struct {
	URL     string
	Method  string
	Headers map[string]string
	Body    []byte

	// Zero values fall back to the client defaults
	Timeout    time.Duration
	MaxRetries int
}

// Clone returns a copy of the request that interceptors may modify freely
func (r *Request) Clone() *Request {
	c := *r
	c.Headers = make(map[string]string, len(r.Headers))
	for k, v := range r.Headers {
		c.Headers[k] = v
	}
	if r.Body != nil {
		c.Body = append([]byte(nil), r.Body...)
	}
	return &c
}

// Header returns a header value using a case-insensitive key match
func (r *Request) Header(key string) string {
	if v, ok := r.Headers[key]; ok {
		return v
	}
	for k, v := range r.Headers {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}

// Response represents an HTTP response with a fully read body
type Response struct {
	StatusCode int
	Status     string
	Headers    http.Header
	Body       []byte

	URL    string
	Method string

	html *html.Document
}

// JSON unmarshals the response body as JSON
func (r *Response) JSON(v interface{}) error {
	if r == nil {
		return errors.New("cannot parse JSON: response is nil").AsParser().Error()
	}

	if len(r.Body) == 0 {
		return errors.New("cannot parse JSON from empty response body").
			WithContext("url", r.URL).
			AsParser().Error()
	}

	if err := json.Unmarshal(r.Body, v); err != nil {
		return errors.Track(err).
			WithContext("url", r.URL).
			WithContext("response_preview", r.preview()).
			WithContext("body_length", len(r.Body)).
			AsParser().Error()
	}

	return nil
}

// HTML returns the parsed HTML document, parsing it on first use
func (r *Response) HTML() (*html.Document, error) {
	if r.html == nil {
		doc, err := html.Parse(r.Body)
		if err != nil {
			return nil, errors.Track(err).
				WithContext("url", r.URL).
				AsParser().
				Error()
		}
		r.html = doc
	}
	return r.html, nil
}

// Text returns the response body as a string
func (r *Response) Text() string {
	return string(r.Body)
}

// IsSuccess checks if the response indicates success
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

func (r *Response) preview() string {
	if len(r.Body) == 0 {
		return "empty response"
	}
	return string(r.Body[:min(len(r.Body), 200)])
}

// RequestBuilder - Builder for creating requests
type RequestBuilder struct {
	req *Request
}

// NewRequest creates a new GET request builder
func NewRequest(url string) *RequestBuilder {
	return &RequestBuilder{
		req: &Request{
			URL:     url,
			Method:  http.MethodGet,
			Headers: make(map[string]string),
		},
	}
}

// Method sets the HTTP method
func (b *RequestBuilder) Method(method string) *RequestBuilder {
	b.req.Method = method
	return b
}

// Header adds a header
func (b *RequestBuilder) Header(key, value string) *RequestBuilder {
	b.req.Headers[key] = value
	return b
}

// Headers adds multiple headers
func (b *RequestBuilder) Headers(headers map[string]string) *RequestBuilder {
	for k, v := range headers {
		b.req.Headers[k] = v
	}
	return b
}

// Body sets the request body and its Content-Length header
func (b *RequestBuilder) Body(body []byte) *RequestBuilder {
	b.req.Body = body
	b.req.Headers["Content-Length"] = strconv.Itoa(len(body))
	return b
}

// JSON marshals v as the request body and switches the request to POST
func (b *RequestBuilder) JSON(v interface{}) (*RequestBuilder, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return b, errors.Track(fmt.Errorf("encode request body: %w", err)).
			WithContext("url", b.req.URL).
			AsParser().Error()
	}
	b.req.Method = http.MethodPost
	b.req.Headers["Content-Type"] = "application/json; charset=utf-8"
	return b.Body(body), nil
}

// Timeout sets the request timeout
func (b *RequestBuilder) Timeout(timeout time.Duration) *RequestBuilder {
	b.req.Timeout = timeout
	return b
}

// Retries sets the maximum number of retries
func (b *RequestBuilder) Retries(retries int) *RequestBuilder {
	b.req.MaxRetries = retries
	return b
}

// Build returns the constructed request
func (b *RequestBuilder) Build() *Request {
	return b.req
}
