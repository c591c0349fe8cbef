package network

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"Lantern/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGraphQLRequest(t *testing.T) {
	req, err := NewGraphQLRequest("https://example.test/graphql", GraphQLQuery{
		OperationName: "getProjects",
		Query:         "query getProjects { getProjects { count } }",
	})
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "application/json; charset=utf-8", req.Header("Content-Type"))
	assert.Equal(t, strconv.Itoa(len(req.Body)), req.Header("Content-Length"))

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(req.Body, &payload))
	assert.Equal(t, "getProjects", payload["operationName"])
	assert.Equal(t, map[string]interface{}{}, payload["variables"])
}

func TestResponse_GraphQL(t *testing.T) {
	var data struct {
		Count int `json:"count"`
	}

	ok := &Response{Body: []byte(`{"data":{"count":3}}`)}
	require.NoError(t, ok.GraphQL(&data))
	assert.Equal(t, 3, data.Count)

	failed := &Response{Body: []byte(`{"data":{"count":4},"errors":[{"message":"token expired"}]}`)}
	err := failed.GraphQL(&data)
	require.Error(t, err)
	assert.True(t, errors.IsUpstream(err))
	assert.Contains(t, err.Error(), "token expired")
	assert.Equal(t, 3, data.Count, "data must not be decoded when errors are present")

	nullErrors := &Response{Body: []byte(`{"data":{"count":5},"errors":null}`)}
	require.NoError(t, nullErrors.GraphQL(&data))
	assert.Equal(t, 5, data.Count)

	noData := &Response{Body: []byte(`{}`)}
	assert.Error(t, noData.GraphQL(&data))
}

func TestClient_GraphQLRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, strconv.Itoa(len(body)), strconv.FormatInt(r.ContentLength, 10))
		assert.Equal(t, "application/json; charset=utf-8", r.Header.Get("Content-Type"))
		_, _ = io.WriteString(w, `{"errors":[{"message":"boom"}]}`)
	}))
	defer server.Close()

	req, err := NewGraphQLRequest(server.URL, GraphQLQuery{OperationName: "op", Query: "query op { x }"})
	require.NoError(t, err)

	resp, err := newTestClient(0).Do(context.Background(), req)
	require.NoError(t, err, "an errors envelope is still a successful HTTP exchange")

	var out map[string]interface{}
	assert.True(t, errors.IsUpstream(resp.GraphQL(&out)))
}
