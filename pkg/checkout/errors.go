package checkout

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrInvalidResponse is wrapped by the APIError returned when a successful
// response does not carry a JSON object
var ErrInvalidResponse = errors.New("invalid JSON response")

const defaultErrorMessage = "request failed"

// ConfigurationError reports a client setup problem detected before any request is sent
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return "checkout: " + e.Message
}

// EncodingError reports a payload that could not be serialized to JSON
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("checkout: failed to encode payload to JSON: %v", e.Err)
}

func (e *EncodingError) Unwrap() error {
	return e.Err
}

// APIError represents a failed or malformed exchange with the gateway.
//
// Status and Header are zero when no response was received. Data holds the
// decoded JSON object of the response body when it is one, otherwise the raw
// body text.
type APIError struct {
	Message string
	Status  int
	Data    any
	Header  http.Header
	Err     error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("checkout: %s (status %d)", e.Message, e.Status)
	}
	return "checkout: " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// DataMap returns Data as a JSON object, or nil when the body was not one
func (e *APIError) DataMap() map[string]any {
	m, _ := e.Data.(map[string]any)
	return m
}

// normalizeError turns any transport failure into an APIError. It never fails.
func normalizeError(err error) *APIError {
	apiErr := &APIError{
		Message: err.Error(),
		Err:     err,
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		apiErr.Message = transportErr.Error()
		if resp := transportErr.Response; resp != nil {
			apiErr.Status = resp.StatusCode
			apiErr.Header = resp.Header.Clone()
			apiErr.Data = decodeErrorBody(resp.Body)
			if msg, ok := apiErr.DataMap()["message"].(string); ok && msg != "" {
				apiErr.Message = msg
			}
		}
	}

	if apiErr.Message == "" {
		apiErr.Message = defaultErrorMessage
	}
	return apiErr
}

// decodeErrorBody returns the body as a JSON object when possible. Any other
// JSON value is treated like undecodable text.
func decodeErrorBody(body []byte) any {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err == nil && obj != nil {
		return obj
	}
	if len(body) > 0 {
		return string(body)
	}
	return defaultErrorMessage
}

// invalidResponseError builds the APIError for a 2xx response without a JSON object body
func invalidResponseError(resp *Response, cause error) *APIError {
	err := ErrInvalidResponse
	if cause != nil {
		err = fmt.Errorf("%w: %w", ErrInvalidResponse, cause)
	}
	return &APIError{
		Message: "Invalid JSON response",
		Status:  resp.StatusCode,
		Data:    string(resp.Body),
		Header:  resp.Header.Clone(),
		Err:     err,
	}
}
