package gatewaytest

import (
	"bytes"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidSignature(t *testing.T) {
	s := NewServer("key", "secret")
	defer s.Close()

	payload := []byte(`{"amount":1}`)
	good := s.Sign(payload)

	assert.True(t, s.validSignature(payload, good))
	assert.False(t, s.validSignature(payload, ""))
	assert.False(t, s.validSignature(payload, good[:len(good)-1]))
	assert.False(t, s.validSignature(payload, good+"0"))
	assert.False(t, s.validSignature([]byte(`{"amount":2}`), good))
}

func TestCreateSession_RejectsBadSignature(t *testing.T) {
	s := NewServer("key", "secret")
	defer s.Close()

	body := []byte(`{"amount":100,"currency":"USD","customer":{"email":"a@b.c","name":"A"}}`)
	post := func(signature string) int {
		req, err := http.NewRequest(http.MethodPost, s.URL()+"/sessions", bytes.NewReader(body))
		require.NoError(t, err)
		req.Header.Set("X-API-KEY", "key")
		req.Header.Set("X-SIGNATURE", signature)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusUnauthorized, post("deadbeef"))
	assert.Equal(t, http.StatusCreated, post(s.Sign(body)))
}
