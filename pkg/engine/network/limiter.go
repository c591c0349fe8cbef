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
	"net/url"
	"sync"
	"time"

	"Lantern/pkg/errors"
)

// RateLimiter provides per-host sliding window rate limiting
type RateLimiter struct {
	domains map[string]*domainLimiter
	mu      sync.RWMutex
	now     func() time.Time
}

// domainLimiter remembers when the most recent requests to one host started
type domainLimiter struct {
	recent []time.Time
	mu     sync.Mutex
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		domains: make(map[string]*domainLimiter),
		now:     time.Now,
	}
}

// Wait blocks until another request to the host of rawURL fits in the window
func (r *RateLimiter) Wait(ctx context.Context, rawURL string, permits int, period time.Duration) error {
	if permits <= 0 || period <= 0 {
		return nil
	}

	domain, err := extractDomain(rawURL)
	if err != nil {
		return errors.Track(err).WithContext("url", rawURL).AsValidation().Error()
	}

	return r.getLimiter(domain).wait(ctx, r.now, permits, period)
}

// getLimiter returns or creates a limiter for a domain
func (r *RateLimiter) getLimiter(domain string) *domainLimiter {
	r.mu.RLock()
	limiter, exists := r.domains[domain]
	r.mu.RUnlock()

	if exists {
		return limiter
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Double-check after acquiring write lock
	if limiter, exists := r.domains[domain]; exists {
		return limiter
	}

	limiter = &domainLimiter{}
	r.domains[domain] = limiter
	return limiter
}

func (l *domainLimiter) wait(ctx context.Context, now func() time.Time, permits int, period time.Duration) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for {
		current := now()

		// Drop requests that left the window
		kept := l.recent[:0]
		for _, t := range l.recent {
			if current.Sub(t) < period {
				kept = append(kept, t)
			}
		}
		l.recent = kept

		if len(l.recent) < permits {
			l.recent = append(l.recent, current)
			return nil
		}

		waitTime := period - current.Sub(l.recent[0])
		timer := time.NewTimer(waitTime)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return errors.Track(ctx.Err()).
				WithContext("wait_time", waitTime).
				AsRateLimit().
				Error()
		}
	}
}

// extractDomain extracts the host from a URL
func extractDomain(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	return u.Host, nil
}
