package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrumentRoundTripper_CountsRequests(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	rt, err := InstrumentRoundTripper(reg, "test", server.Client().Transport)
	require.NoError(t, err)
	client := &http.Client{Transport: rt}

	for _, path := range []string{"/ok", "/ok", "/missing"} {
		resp, err := client.Get(server.URL + path)
		require.NoError(t, err)
		resp.Body.Close()
	}

	count, err := testutil.GatherAndCount(reg, "checkout_client_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	summary, err := Summary(reg)
	require.NoError(t, err)
	assert.Equal(t, float64(2), summary["checkout_client_requests_total{code=200}{method=get}"])
	assert.Equal(t, float64(1), summary["checkout_client_requests_total{code=404}{method=get}"])
	assert.Equal(t, float64(0), summary["checkout_client_in_flight_requests"])
	assert.Equal(t, float64(3), summary["checkout_client_request_duration_seconds{method=get}_count"])
}

func TestInstrumentRoundTripper_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()

	_, err := InstrumentRoundTripper(reg, "test", nil)
	require.NoError(t, err)
	_, err = InstrumentRoundTripper(reg, "test", nil)
	require.NoError(t, err)
}
