package checkout

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	headerAPIKey      = "X-API-KEY"
	headerSignature   = "X-SIGNATURE"
	headerContentType = "Content-Type"

	sessionsPath = "sessions"
)

var errNoResponse = errors.New("transport returned no response")

// ClientConfig holds the settings used to build a Client
type ClientConfig struct {
	// APIKey is sent verbatim in X-API-KEY. Required.
	APIKey string
	// APISecret builds an HMACSigner when Signer is nil
	APISecret string
	// Signer replaces the built-in HMAC signer
	Signer Signer

	Environment Environment
	// BaseURL overrides the URL selected by Environment
	BaseURL string
	Timeout time.Duration

	// Transport replaces the default HTTP transport entirely
	Transport Transport
	// HTTPClient is used by the default transport. Its Timeout is set from
	// Timeout when unset.
	HTTPClient *http.Client

	Logger Logger
}

// Client is a checkout gateway API client. It is immutable once created and
// safe for concurrent use when its Transport is.
type Client struct {
	apiKey    string
	signer    Signer
	transport Transport
	logger    Logger
}

// RequestOption customizes a single API call
type RequestOption func(*requestOptions)

type requestOptions struct {
	signatureOverride string
}

// WithSignatureOverride sends signature as X-SIGNATURE instead of signing the
// request with the configured signer
func WithSignatureOverride(signature string) RequestOption {
	return func(o *requestOptions) {
		o.signatureOverride = signature
	}
}

// NewClient creates a new checkout API client
func NewClient(config ClientConfig) (*Client, error) {
	if config.APIKey == "" {
		return nil, &ConfigurationError{Message: "apiKey is required"}
	}
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	signer := config.Signer
	if signer == nil && config.APISecret != "" {
		signer = NewHMACSigner(config.APISecret)
	}

	logger := config.Logger
	if logger == nil {
		logger = NopLogger{}
	}

	env := resolveEnvironment(config.Environment)
	baseURL := ResolveBaseURL(env, config.BaseURL)

	transport := config.Transport
	if transport == nil {
		httpClient := config.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{Timeout: config.Timeout}
		} else if httpClient.Timeout == 0 {
			c := *httpClient
			c.Timeout = config.Timeout
			httpClient = &c
		}
		transport = NewHTTPTransport(baseURL, httpClient)
	}

	logger.Debug("Checkout client initialized", map[string]any{
		"environment": string(env),
		"baseUrl":     baseURL,
	})

	return &Client{
		apiKey:    config.APIKey,
		signer:    signer,
		transport: transport,
		logger:    logger,
	}, nil
}

// CreateSession creates a new payment session. payload is typically a
// *PaymentSessionRequest or a map; its JSON encoding is sent and signed as is.
func (c *Client) CreateSession(ctx context.Context, payload any, opts ...RequestOption) (Result, error) {
	body, err := encodeJSON(payload)
	if err != nil {
		c.logger.Error("Failed to encode payload to JSON", map[string]any{"error": err.Error()})
		return nil, &EncodingError{Err: err}
	}

	signature, err := c.resolveSignature(body, opts)
	if err != nil {
		c.logger.Error("No signature available for createSession", nil)
		return nil, err
	}

	c.logger.Debug("Creating payment session", map[string]any{"amount": payloadAmount(payload)})

	resp, err := c.transport.Post(ctx, sessionsPath, body, c.headers(signature, true))
	if err != nil {
		apiErr := normalizeError(err)
		c.logger.Error("Failed to create payment session", map[string]any{
			"error":  err.Error(),
			"status": apiErr.Status,
		})
		return nil, apiErr
	}

	result, err := c.decode(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Payment session created", map[string]any{"sessionId": result["id"]})
	return result, nil
}

// GetPayment retrieves a payment session by id. The raw id is signed; the
// request path carries it with every byte outside the unreserved set
// percent-encoded.
func (c *Client) GetPayment(ctx context.Context, paymentID string, opts ...RequestOption) (Result, error) {
	signature, err := c.resolveSignature([]byte(paymentID), opts)
	if err != nil {
		c.logger.Error("No signature available for getPayment", nil)
		return nil, err
	}

	c.logger.Debug("Retrieving payment", map[string]any{"paymentId": paymentID})

	resp, err := c.transport.Get(ctx, sessionsPath+"/"+escapePathSegment(paymentID), c.headers(signature, false))
	if err != nil {
		apiErr := normalizeError(err)
		c.logger.Error("Failed to retrieve payment", map[string]any{
			"paymentId": paymentID,
			"error":     err.Error(),
			"status":    apiErr.Status,
		})
		return nil, apiErr
	}

	result, err := c.decode(resp)
	if err != nil {
		return nil, err
	}

	c.logger.Info("Payment retrieved", map[string]any{
		"paymentId": paymentID,
		"status":    result["status"],
	})
	return result, nil
}

// VerifyWebhookSignature reports whether signature matches the raw webhook
// payload. The payload must be the exact bytes received.
func (c *Client) VerifyWebhookSignature(payload []byte, signature string) (bool, error) {
	if c.signer == nil {
		c.logger.Error("Attempted to verify webhook signature but no signer is configured", nil)
		return false, &ConfigurationError{Message: "no signer available; provide apiSecret or a custom signer"}
	}

	valid := signaturesEqual(c.signer.Sign(payload), signature)
	c.logger.Debug("Webhook signature verification", map[string]any{"valid": valid})
	return valid, nil
}

func (c *Client) resolveSignature(payload []byte, opts []RequestOption) (string, error) {
	var o requestOptions
	for _, opt := range opts {
		opt(&o)
	}

	signature := o.signatureOverride
	if signature == "" && c.signer != nil {
		signature = c.signer.Sign(payload)
	}
	if signature == "" {
		return "", &ConfigurationError{
			Message: "no signature available; provide apiSecret, a custom signer, or a signature override",
		}
	}
	return signature, nil
}

func (c *Client) headers(signature string, withBody bool) http.Header {
	h := make(http.Header)
	h.Set(headerAPIKey, c.apiKey)
	h.Set(headerSignature, signature)
	if withBody {
		h.Set(headerContentType, "application/json")
	}
	return h
}

// decode parses a successful response body, which must be a JSON object
func (c *Client) decode(resp *Response) (Result, error) {
	if resp == nil {
		c.logger.Error("Transport returned no response", nil)
		return nil, invalidResponseError(&Response{}, errNoResponse)
	}

	var result Result
	if err := json.Unmarshal(resp.Body, &result); err != nil || result == nil {
		c.logger.Error("Invalid JSON response received from API", map[string]any{
			"statusCode": resp.StatusCode,
			"body":       string(resp.Body),
		})
		return nil, invalidResponseError(resp, err)
	}
	return result, nil
}

// encodeJSON marshals v without HTML escaping and without the trailing newline
// added by json.Encoder
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// payloadAmount extracts the amount of a session payload for logging
func payloadAmount(payload any) any {
	switch p := payload.(type) {
	case map[string]any:
		return p["amount"]
	case Result:
		return p["amount"]
	case *PaymentSessionRequest:
		if p != nil {
			return p.Amount
		}
	case PaymentSessionRequest:
		return p.Amount
	}
	return nil
}

// escapePathSegment percent-encodes every byte outside the RFC 3986 unreserved set
func escapePathSegment(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		fmt.Fprintf(&b, "%%%02X", c)
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
