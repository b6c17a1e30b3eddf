package checkout

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPTransport_URL(t *testing.T) {
	tr := NewHTTPTransport("https://sandbox.checkout.rdcard.net/api/v1/", nil)

	assert.Equal(t, "https://sandbox.checkout.rdcard.net/api/v1/sessions", tr.URL("sessions"))
	assert.Equal(t, "https://sandbox.checkout.rdcard.net/api/v1/sessions/pay%20abc", tr.URL("/sessions/pay%20abc"))
}

func TestHTTPTransport_Post(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/sessions", r.URL.Path)
		assert.Equal(t, "key", r.Header.Get("X-API-KEY"))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, `{"a":1}`, string(body))

		w.Header().Set("X-Request-Id", "req-1")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"pay_1"}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL+"/api/v1", server.Client())
	resp, err := tr.Post(context.Background(), "sessions", []byte(`{"a":1}`), http.Header{"X-Api-Key": []string{"key"}})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, `{"id":"pay_1"}`, string(resp.Body))
	assert.Equal(t, "req-1", resp.Header.Get("X-Request-Id"))
}

func TestHTTPTransport_EscapedPath(t *testing.T) {
	var rawPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL, server.Client())
	_, err := tr.Get(context.Background(), "sessions/pay%2Fabc", nil)

	require.NoError(t, err)
	assert.Equal(t, "/sessions/pay%2Fabc", rawPath)
}

func TestHTTPTransport_Non2xx(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Payment not found"}`))
	}))
	defer server.Close()

	tr := NewHTTPTransport(server.URL, server.Client())
	resp, err := tr.Get(context.Background(), "sessions/missing", nil)

	assert.Nil(t, resp)
	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	require.NotNil(t, transportErr.Response)
	assert.Equal(t, http.StatusNotFound, transportErr.Response.StatusCode)
	assert.Equal(t, `{"message":"Payment not found"}`, string(transportErr.Response.Body))
	assert.Equal(t, http.MethodGet, transportErr.Method)
	assert.Contains(t, transportErr.Error(), "404 Not Found")
}

func TestHTTPTransport_NetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	tr := NewHTTPTransport(url, &http.Client{Timeout: time.Second})
	_, err := tr.Get(context.Background(), "sessions/x", nil)

	var transportErr *TransportError
	require.ErrorAs(t, err, &transportErr)
	assert.Nil(t, transportErr.Response)
	assert.NotNil(t, transportErr.Err)
}

func TestHTTPTransport_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tr := NewHTTPTransport(server.URL, server.Client())
	_, err := tr.Get(ctx, "sessions/x", nil)

	assert.True(t, errors.Is(err, context.Canceled))
}

func TestNewClient_AppliesTimeoutToHTTPClient(t *testing.T) {
	httpClient := &http.Client{}
	client, err := NewClient(ClientConfig{APIKey: "key", HTTPClient: httpClient, Timeout: 3 * time.Second})
	require.NoError(t, err)

	tr, ok := client.transport.(*HTTPTransport)
	require.True(t, ok)
	assert.Equal(t, 3*time.Second, tr.httpClient.Timeout)
	assert.Zero(t, httpClient.Timeout)
	assert.Equal(t, "https://sandbox.checkout.rdcard.net/api/v1", tr.baseURL)
}

func TestNewClient_DefaultTimeoutAndLiveURL(t *testing.T) {
	client, err := NewClient(ClientConfig{APIKey: "key", Environment: EnvironmentLive})
	require.NoError(t, err)

	tr := client.transport.(*HTTPTransport)
	assert.Equal(t, DefaultTimeout, tr.httpClient.Timeout)
	assert.Equal(t, "https://checkout.rdcard.net/api/v1", tr.baseURL)
	assert.Nil(t, client.signer)
	assert.IsType(t, NopLogger{}, client.logger)
}
