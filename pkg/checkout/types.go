package checkout

import (
	"encoding/json"
	"fmt"
	"time"
)

// DefaultTimeout applies to every request when ClientConfig.Timeout is zero
const DefaultTimeout = 15 * time.Second

// Result is the decoded JSON object returned by a successful call.
// The client does not enforce a schema; use Decode to convert it into one of
// the documented response shapes.
type Result map[string]any

// Decode converts the result into v, typically a *PaymentSessionResponse or
// *RetrievePaymentResponse
func (r Result) Decode(v any) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to re-encode result: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

// String returns the string field key, or "" when absent or not a string
func (r Result) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// CustomerInfo identifies the paying customer
type CustomerInfo struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// ServiceItem is a product or service line on a session
type ServiceItem struct {
	Name        string `json:"name"`
	Price       int64  `json:"price"`
	Description string `json:"description,omitempty"`
	Quantity    int    `json:"quantity,omitempty"`
}

// PaymentSessionRequest is the request body for POST /sessions.
// Amounts are in minor units.
type PaymentSessionRequest struct {
	Amount        int64         `json:"amount"`
	Currency      string        `json:"currency"`
	Customer      CustomerInfo  `json:"customer"`
	Description   string        `json:"description,omitempty"`
	CallbackURL   string        `json:"callbackUrl,omitempty"`
	CancelURL     string        `json:"cancelUrl,omitempty"`
	SuccessURL    string        `json:"successUrl,omitempty"`
	TransactionID string        `json:"transactionId,omitempty"`
	ServiceID     string        `json:"serviceId,omitempty"`
	Services      []ServiceItem `json:"services,omitempty"`
}

// PaymentSessionResponse is the result of creating a session
type PaymentSessionResponse struct {
	ID          string       `json:"id"`
	Amount      int64        `json:"amount"`
	Currency    string       `json:"currency"`
	Description string       `json:"description,omitempty"`
	CheckoutURL string       `json:"checkoutUrl"`
	Customer    CustomerInfo `json:"customer"`
	CreatedAt   string       `json:"createdAt"`
	ServiceID   string       `json:"serviceId,omitempty"`
}

// PaymentService is a service line as reported on a retrieved payment
type PaymentService struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Quantity    int     `json:"quantity"`
	Price       int64   `json:"price"`
	Currency    *string `json:"currency"`
	SessionID   string  `json:"sessionId"`
	CreatedAt   string  `json:"createdAt"`
}

// PaymentCustomer is the customer contact reported on a retrieved payment
type PaymentCustomer struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

// RetrievePaymentResponse is the result of GET /sessions/{id}
type RetrievePaymentResponse struct {
	ID            string           `json:"id"`
	Amount        int64            `json:"amount"`
	Currency      string           `json:"currency"`
	Description   *string          `json:"description"`
	TransactionID string           `json:"transactionId"`
	Customer      PaymentCustomer  `json:"customer"`
	CreatedAt     string           `json:"createdAt"`
	Expired       bool             `json:"expired"`
	Services      []PaymentService `json:"services"`
	Status        string           `json:"status"`
	ServiceID     string           `json:"serviceId,omitempty"`
}
