package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hldiojin/hmes-dashboard-sub001/pkg/api"
)

func TestRequest_AttachesBearerWhenTokenPresent(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr, err := New(server.URL, WithTokenSource(TokenFunc(func() string { return "T" })))
	require.NoError(t, err)

	resp, err := tr.Request(context.Background(), http.MethodGet, "user", nil, nil)
	require.NoError(t, err)
	assert.True(t, resp.Success())
	assert.Equal(t, "Bearer T", gotAuth)
}

func TestRequest_NoAuthorizationWithoutToken(t *testing.T) {
	var sawAuth bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr, err := New(server.URL, WithTokenSource(TokenFunc(func() string { return "" })))
	require.NoError(t, err)

	_, err = tr.Request(context.Background(), http.MethodGet, "user", nil, nil)
	require.NoError(t, err)
	assert.False(t, sawAuth, "empty token must not produce an Authorization header")
}

func TestRequest_SetsRequestIDAndQuery(t *testing.T) {
	var gotID string
	var gotQuery url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotID = r.Header.Get("X-Request-Id")
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr, err := New(server.URL)
	require.NoError(t, err)

	q := url.Values{"pageIndex": {"1"}, "pageSize": {"10"}}
	_, err = tr.Request(context.Background(), http.MethodGet, "product", q, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, gotID)
	assert.Equal(t, "1", gotQuery.Get("pageIndex"))
	assert.Equal(t, "10", gotQuery.Get("pageSize"))
}

func TestRequest_ResolvesAgainstBasePath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	tr, err := New(server.URL + "/api")
	require.NoError(t, err)

	_, err = tr.Request(context.Background(), http.MethodGet, "auth/login", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/login", gotPath)
}

func TestRequest_UnreachableServiceIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listening anymore

	tr, err := New(server.URL)
	require.NoError(t, err)

	_, err = tr.Request(context.Background(), http.MethodGet, "user", nil, nil)
	assert.ErrorIs(t, err, api.ErrNetworkUnavailable)
}

func TestResponse_ErrMapsStatusAndMessage(t *testing.T) {
	resp := &Response{Status: http.StatusUnauthorized, Body: []byte(`{"message":"bad credentials"}`)}
	err := resp.Err()
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.Contains(t, err.Error(), "bad credentials")

	ok := &Response{Status: http.StatusOK}
	assert.NoError(t, ok.Err())
}

func TestNew_RejectsRelativeBaseURL(t *testing.T) {
	_, err := New("not-a-url")
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	tr, err := New(server.URL)
	require.NoError(t, err)
	assert.NoError(t, tr.Ping(context.Background()))
}
