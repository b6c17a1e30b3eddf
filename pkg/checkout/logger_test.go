package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedTransport struct {
	resp *Response
}

func (f fixedTransport) Post(context.Context, string, []byte, http.Header) (*Response, error) {
	return f.resp, nil
}

func (f fixedTransport) Get(context.Context, string, http.Header) (*Response, error) {
	return f.resp, nil
}

func decodeLogLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var lines []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		lines = append(lines, m)
	}
	return lines
}

func TestZerologLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger := NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel))

	logger.Debug("debug event", map[string]any{"a": 1})
	logger.Info("info event", nil)
	logger.Error("error event", map[string]any{"status": 400})

	lines := decodeLogLines(t, &buf)
	require.Len(t, lines, 3)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "debug event", lines[0]["message"])
	assert.Equal(t, float64(1), lines[0]["a"])
	assert.Equal(t, "checkout", lines[1]["component"])
	assert.Equal(t, "error", lines[2]["level"])
	assert.Equal(t, float64(400), lines[2]["status"])
}

func TestClient_LogsWithoutSecrets(t *testing.T) {
	var buf bytes.Buffer
	client, err := NewClient(ClientConfig{
		APIKey:    "key",
		APISecret: "super-secret",
		Transport: fixedTransport{resp: &Response{StatusCode: 200, Body: []byte(`{"id":"pay_9","status":"completed"}`)}},
		Logger:    NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
	})
	require.NoError(t, err)

	_, err = client.CreateSession(context.Background(), map[string]any{"amount": 1})
	require.NoError(t, err)
	_, err = client.GetPayment(context.Background(), "pay_9")
	require.NoError(t, err)
	ok, err := client.VerifyWebhookSignature([]byte("{}"), "nope")
	require.NoError(t, err)
	require.False(t, ok)

	out := buf.String()
	assert.Contains(t, out, "Checkout client initialized")
	assert.Contains(t, out, "Payment session created")
	assert.Contains(t, out, `"sessionId":"pay_9"`)
	assert.Contains(t, out, "Payment retrieved")
	assert.Contains(t, out, "Webhook signature verification")
	assert.NotContains(t, out, "super-secret")
	assert.NotContains(t, out, NewHMACSigner("super-secret").Sign([]byte("{}")))
}

func TestClient_LogsSessionAmount(t *testing.T) {
	tests := []struct {
		name    string
		payload any
	}{
		{name: "map", payload: map[string]any{"amount": 5000}},
		{name: "typed request", payload: &PaymentSessionRequest{Amount: 5000, Currency: "USD"}},
		{name: "typed request value", payload: PaymentSessionRequest{Amount: 5000}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			client, err := NewClient(ClientConfig{
				APIKey:    "key",
				APISecret: "secret",
				Transport: fixedTransport{resp: &Response{StatusCode: 201, Body: []byte(`{"id":"pay_1"}`)}},
				Logger:    NewZerologLogger(zerolog.New(&buf).Level(zerolog.DebugLevel)),
			})
			require.NoError(t, err)

			_, err = client.CreateSession(context.Background(), tt.payload)
			require.NoError(t, err)

			var found bool
			for _, line := range decodeLogLines(t, &buf) {
				if line["message"] == "Creating payment session" {
					found = true
					assert.Equal(t, float64(5000), line["amount"])
				}
			}
			assert.True(t, found)
		})
	}
}

func TestPayloadAmount_Unknown(t *testing.T) {
	assert.Nil(t, payloadAmount([]int{1}))
	assert.Nil(t, payloadAmount((*PaymentSessionRequest)(nil)))
}

func TestNopLogger(t *testing.T) {
	var l Logger = NopLogger{}
	l.Debug("x", nil)
	l.Info("x", map[string]any{"a": 1})
	l.Error("x", nil)
}
