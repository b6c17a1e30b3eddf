package checkout

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
)

// Signer produces the signature string sent in the X-SIGNATURE header.
// Implementations must be deterministic and sign the payload bytes exactly as given.
type Signer interface {
	Sign(payload []byte) string
}

// SignerFunc adapts an ordinary function to the Signer interface.
type SignerFunc func(payload []byte) string

// Sign calls f(payload).
func (f SignerFunc) Sign(payload []byte) string {
	return f(payload)
}

// HMACSigner signs payloads with HMAC-SHA256 over a shared secret
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a signer for the given API secret
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign returns the lowercase hex HMAC-SHA256 of payload
func (s *HMACSigner) Sign(payload []byte) string {
	h := hmac.New(sha256.New, s.secret)
	h.Write(payload)
	return hex.EncodeToString(h.Sum(nil))
}

// signaturesEqual compares two signatures in constant time
func signaturesEqual(expected, received string) bool {
	return hmac.Equal([]byte(expected), []byte(received))
}
