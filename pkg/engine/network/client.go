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
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"Lantern/pkg/engine/logger"
	"Lantern/pkg/errors"
)

// Config holds the client defaults applied to every request
type Config struct {
	Timeout      time.Duration
	MaxRetries   int
	UserAgent    string
	RetryBackoff time.Duration
	HTTPClient   *http.Client
}

// DefaultConfig returns the settings used by the CLI
func DefaultConfig() Config {
	return Config{
		Timeout:      30 * time.Second,
		MaxRetries:   2,
		UserAgent:    "Lantern/1.0",
		RetryBackoff: time.Second,
	}
}

// Client executes requests through an interceptor chain.
// Derived clients created with With share the transport and rate limiter.
type Client struct {
	http         *http.Client
	logger       logger.Logger
	limiter      *RateLimiter
	config       Config
	interceptors []Interceptor
}

// NewClient creates a new client
func NewClient(log logger.Logger, config Config) *Client {
	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	if config.RetryBackoff <= 0 {
		config.RetryBackoff = time.Second
	}

	return &Client{
		http:    httpClient,
		logger:  log,
		limiter: NewRateLimiter(),
		config:  config,
	}
}

// With returns a client that runs the given interceptors after the existing ones
func (c *Client) With(interceptors ...Interceptor) *Client {
	derived := *c
	derived.interceptors = append(append([]Interceptor(nil), c.interceptors...), interceptors...)
	return &derived
}

// Limiter returns the rate limiter shared by every client derived from this one
func (c *Client) Limiter() *RateLimiter {
	return c.limiter
}

// Do sends the request through the interceptor chain
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req == nil {
		return nil, errors.Track(errors.ErrInvalidInput).
			WithMessage("request is nil").
			Error()
	}
	return chain(c.interceptors, c.fetchWithRetries)(ctx, req)
}

// fetchWithRetries performs the request, retrying network failures and 5xx responses
func (c *Client) fetchWithRetries(ctx context.Context, req *Request) (*Response, error) {
	timeout := req.Timeout
	if timeout == 0 {
		timeout = c.config.Timeout
	}
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	retries := req.MaxRetries
	if retries == 0 {
		retries = c.config.MaxRetries
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	c.logger.Debug("[HTTP] %s request to %s", method, req.URL)

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			// Exponential backoff
			backoff := c.config.RetryBackoff * time.Duration(1<<uint(attempt-1))
			if backoff > 30*time.Second {
				backoff = 30 * time.Second
			}
			c.logger.Debug("[HTTP] Retrying %s in %v...", req.URL, backoff)

			select {
			case <-ctx.Done():
				return nil, errors.Track(ctx.Err()).
					WithContext("url", req.URL).
					WithRetryContext(attempt, retries+1).
					AsNetwork().Error()
			case <-time.After(backoff):
			}
		}

		httpReq, err := c.newHTTPRequest(ctx, method, req)
		if err != nil {
			return nil, err
		}

		httpResp, err := c.http.Do(httpReq)
		if err != nil {
			c.logger.Debug("[HTTP] Request failed (attempt %d/%d): %v", attempt+1, retries+1, err)
			lastErr = errors.Track(err).
				WithContext("url", req.URL).
				WithRetryContext(attempt+1, retries+1).
				AsNetwork().Error()
			if ctx.Err() != nil {
				return nil, lastErr
			}
			continue
		}

		resp, err := newResponse(httpResp)
		if err != nil {
			return nil, err
		}
		c.logger.Debug("[HTTP] Response received (attempt %d/%d): status %d", attempt+1, retries+1, resp.StatusCode)

		// Retry only for 5xx server errors
		if resp.StatusCode >= 500 {
			lastErr = errors.Track(fmt.Errorf("%w: %s", errors.ErrServerError, resp.Status)).
				WithHTTPContext(method, req.URL, resp.StatusCode).
				AsNetwork().Error()
			continue
		}

		if resp.StatusCode >= 400 {
			return nil, statusError(method, req.URL, resp)
		}

		return resp, nil
	}

	return nil, lastErr
}

func (c *Client) newHTTPRequest(ctx context.Context, method string, req *Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, req.URL, body)
	if err != nil {
		return nil, errors.Track(err).
			WithContext("url", req.URL).
			AsValidation().Error()
	}

	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	for k, v := range req.Headers {
		// net/http derives Content-Length from the body
		if http.CanonicalHeaderKey(k) == "Content-Length" {
			continue
		}
		httpReq.Header.Set(k, v)
	}

	return httpReq, nil
}

// newResponse reads and closes the body of an http.Response
func newResponse(httpResp *http.Response) (*Response, error) {
	defer func() {
		_ = httpResp.Body.Close()
	}()

	body, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Track(err).
			WithContext("url", httpResp.Request.URL.String()).
			WithMessage("Failed to read response body").
			AsNetwork().Error()
	}

	return &Response{
		StatusCode: httpResp.StatusCode,
		Status:     httpResp.Status,
		Headers:    httpResp.Header,
		Body:       body,
		URL:        httpResp.Request.URL.String(),
		Method:     httpResp.Request.Method,
	}, nil
}

// statusError maps 4xx responses to the sentinel errors
func statusError(method, url string, resp *Response) error {
	var sentinel error
	switch resp.StatusCode {
	case http.StatusNotFound:
		sentinel = errors.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = errors.ErrUnauthorized
	case http.StatusTooManyRequests:
		sentinel = errors.ErrRateLimit
	default:
		sentinel = errors.ErrBadRequest
	}

	tracked := errors.Track(fmt.Errorf("%w: %s", sentinel, resp.Status)).
		WithHTTPContext(method, url, resp.StatusCode).
		WithContext("response_preview", resp.preview())
	if sentinel == errors.ErrUnauthorized {
		tracked = tracked.AsAuth()
	}
	return tracked.Error()
}
