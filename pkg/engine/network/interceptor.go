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
	"context"
	"time"
)

// Handler executes a request and returns its response
type Handler func(ctx context.Context, req *Request) (*Response, error)

// Interceptor observes or decorates a request before passing it to next.
// Returning without calling next aborts the request.
type Interceptor func(ctx context.Context, req *Request, next Handler) (*Response, error)

// chain composes interceptors so that the first one runs outermost
func chain(interceptors []Interceptor, final Handler) Handler {
	handler := final
	for i := len(interceptors) - 1; i >= 0; i-- {
		interceptor, next := interceptors[i], handler
		handler = func(ctx context.Context, req *Request) (*Response, error) {
			return interceptor(ctx, req, next)
		}
	}
	return handler
}

// HeadersInterceptor sets the given headers on requests that do not carry them yet
func HeadersInterceptor(headers map[string]string) Interceptor {
	return func(ctx context.Context, req *Request, next Handler) (*Response, error) {
		if len(headers) == 0 {
			return next(ctx, req)
		}
		decorated := req.Clone()
		for k, v := range headers {
			if decorated.Header(k) == "" {
				decorated.Headers[k] = v
			}
		}
		return next(ctx, decorated)
	}
}

// RateLimitInterceptor allows at most permits requests per period for each host
func RateLimitInterceptor(limiter *RateLimiter, permits int, period time.Duration) Interceptor {
	return func(ctx context.Context, req *Request, next Handler) (*Response, error) {
		if err := limiter.Wait(ctx, req.URL, permits, period); err != nil {
			return nil, err
		}
		return next(ctx, req)
	}
}
