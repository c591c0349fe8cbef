package network

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"Lantern/pkg/engine/logger"
	"Lantern/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(retries int) *Client {
	return NewClient(logger.Nop(), Config{
		Timeout:      5 * time.Second,
		MaxRetries:   retries,
		UserAgent:    "Lantern/test",
		RetryBackoff: time.Millisecond,
	})
}

func TestClient_Do_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Lantern/test", r.Header.Get("User-Agent"))
		assert.Equal(t, "yes", r.Header.Get("X-Test"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"name":"unsounded"}`)
	}))
	defer server.Close()

	client := newTestClient(0)
	resp, err := client.Do(context.Background(), NewRequest(server.URL).Header("X-Test", "yes").Build())
	require.NoError(t, err)
	assert.True(t, resp.IsSuccess())

	var body struct {
		Name string `json:"name"`
	}
	require.NoError(t, resp.JSON(&body))
	assert.Equal(t, "unsounded", body.Name)
}

func TestClient_Do_RetriesServerErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&hits, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = io.WriteString(w, "ok")
	}))
	defer server.Close()

	resp, err := newTestClient(2).Do(context.Background(), NewRequest(server.URL).Build())
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Text())
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_Do_MapsClientErrors(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		switch r.URL.Path {
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
		case "/slow-down":
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer server.Close()

	client := newTestClient(3)
	_, err := client.Do(context.Background(), NewRequest(server.URL+"/missing").Build())
	assert.True(t, errors.IsNotFound(err))
	assert.Equal(t, errors.CategoryNotFound, errors.CategoryOf(err))

	_, err = client.Do(context.Background(), NewRequest(server.URL+"/slow-down").Build())
	assert.True(t, errors.IsRateLimited(err))

	_, err = client.Do(context.Background(), NewRequest(server.URL+"/private").Build())
	assert.True(t, errors.IsUnauthorized(err))
	assert.Equal(t, errors.CategoryAuth, errors.CategoryOf(err))

	// 4xx responses are never retried
	assert.Equal(t, int32(3), atomic.LoadInt32(&hits))
}

func TestClient_With_RunsInterceptorsInOrder(t *testing.T) {
	var order []string
	record := func(name string) Interceptor {
		return func(ctx context.Context, req *Request, next Handler) (*Response, error) {
			order = append(order, name)
			return next(ctx, req)
		}
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "server")
		assert.Equal(t, "https://example.test/", r.Header.Get("Referer"))
	}))
	defer server.Close()

	base := newTestClient(0)
	client := base.With(record("first")).With(record("second"), HeadersInterceptor(map[string]string{
		"Referer": "https://example.test/",
	}))

	_, err := client.Do(context.Background(), NewRequest(server.URL).Build())
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "server"}, order)
	assert.Same(t, base.Limiter(), client.Limiter())
}

func TestClient_Interceptor_CanAbort(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	client := newTestClient(0).With(func(ctx context.Context, req *Request, next Handler) (*Response, error) {
		return nil, errors.Track(errors.ErrMissingConfig).Error()
	})

	_, err := client.Do(context.Background(), NewRequest(server.URL).Build())
	assert.True(t, errors.IsMissingConfig(err))
	assert.Zero(t, atomic.LoadInt32(&hits))
}

func TestHeadersInterceptor_DoesNotOverride(t *testing.T) {
	req := NewRequest("http://example.test").Header("referer", "mine").Build()
	interceptor := HeadersInterceptor(map[string]string{"Referer": "default", "Accept": "*/*"})

	_, err := interceptor(context.Background(), req, func(ctx context.Context, r *Request) (*Response, error) {
		assert.Equal(t, "mine", r.Header("Referer"))
		assert.Equal(t, "*/*", r.Header("Accept"))
		return &Response{}, nil
	})
	require.NoError(t, err)
	assert.Empty(t, req.Header("Accept"), "original request must stay untouched")
}
