package network

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_SpacesRequestsPerHost(t *testing.T) {
	limiter := NewRateLimiter()
	ctx := context.Background()
	period := 60 * time.Millisecond

	start := time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://argosscan.com/graphql", 1, period))
	require.NoError(t, limiter.Wait(ctx, "https://argosscan.com/graphql", 1, period))
	assert.GreaterOrEqual(t, time.Since(start), period)

	// Other hosts are not affected
	start = time.Now()
	require.NoError(t, limiter.Wait(ctx, "https://www.casualvillain.com/Unsounded", 1, period))
	assert.Less(t, time.Since(start), period)
}

func TestRateLimiter_AllowsBurstUpToPermits(t *testing.T) {
	limiter := NewRateLimiter()
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, limiter.Wait(ctx, "http://example.test/a", 3, time.Second))
	}
	assert.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestRateLimiter_HonoursContext(t *testing.T) {
	limiter := NewRateLimiter()
	require.NoError(t, limiter.Wait(context.Background(), "http://example.test", 1, time.Hour))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := limiter.Wait(ctx, "http://example.test", 1, time.Hour)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestRateLimitInterceptor(t *testing.T) {
	limiter := NewRateLimiter()
	interceptor := RateLimitInterceptor(limiter, 1, 40*time.Millisecond)
	next := func(ctx context.Context, req *Request) (*Response, error) { return &Response{StatusCode: 200}, nil }
	req := NewRequest("http://example.test/graphql").Build()

	start := time.Now()
	for i := 0; i < 2; i++ {
		_, err := interceptor(context.Background(), req, next)
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}
