// Package checkout provides a client for the RD Card checkout gateway API.
//
// The gateway exposes payment sessions: a merchant creates a session, sends the
// customer to the returned checkout URL and later retrieves the session to learn
// its status. The gateway also delivers webhook notifications signed with the
// same secret used to sign requests.
//
// # Authentication
//
// All API requests are authenticated using:
//   - API Key: Sent in the X-API-KEY header
//   - Signature: hex HMAC-SHA256 sent in the X-SIGNATURE header. Session creation
//     signs the exact JSON body sent on the wire; payment retrieval signs the raw
//     payment id.
//
// # Basic Usage
//
//	client, err := checkout.NewClient(checkout.ClientConfig{
//	    APIKey:      "your-api-key",
//	    APISecret:   "your-api-secret",
//	    Environment: checkout.EnvironmentSandbox,
//	})
//
//	// Create a payment session
//	session, err := client.CreateSession(ctx, &checkout.PaymentSessionRequest{
//	    Amount:   5000,
//	    Currency: "USD",
//	    Customer: checkout.CustomerInfo{Email: "jane@example.com", Name: "Jane"},
//	})
//
//	// Retrieve it later
//	payment, err := client.GetPayment(ctx, session.String("id"))
//
//	// Verify a webhook
//	ok, err := client.VerifyWebhookSignature(rawBody, r.Header.Get("X-SIGNATURE"))
//
// # Error Handling
//
// Failed exchanges are returned as *APIError carrying the HTTP status, the
// decoded (or raw) body and the response headers:
//
//	_, err := client.GetPayment(ctx, id)
//	var apiErr *checkout.APIError
//	if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
//	    // Unknown session
//	}
//
// Missing credentials are reported as *ConfigurationError and unserializable
// payloads as *EncodingError, both before any request is sent.
package checkout
