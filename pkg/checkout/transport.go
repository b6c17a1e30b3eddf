package checkout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Transport performs the HTTP exchanges on behalf of the client.
// Any non-2xx outcome must be reported as an error; when a response was
// received the error should be a *TransportError carrying it.
type Transport interface {
	Post(ctx context.Context, path string, body []byte, header http.Header) (*Response, error)
	Get(ctx context.Context, path string, header http.Header) (*Response, error)
}

// Response is a fully read HTTP response
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// TransportError describes a failed exchange. Response is nil when the
// request never produced one.
type TransportError struct {
	Method   string
	URL      string
	Response *Response
	Err      error
}

func (e *TransportError) Error() string {
	if e.Response != nil {
		return fmt.Sprintf("%s %s resulted in a %d %s response",
			e.Method, e.URL, e.Response.StatusCode, http.StatusText(e.Response.StatusCode))
	}
	return fmt.Sprintf("%s %s failed: %v", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// HTTPTransport is the default Transport backed by an *http.Client
type HTTPTransport struct {
	baseURL    string
	httpClient *http.Client
}

// NewHTTPTransport creates a transport that resolves request paths against baseURL
func NewHTTPTransport(baseURL string, httpClient *http.Client) *HTTPTransport {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &HTTPTransport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}
}

// Post sends body to path
func (t *HTTPTransport) Post(ctx context.Context, path string, body []byte, header http.Header) (*Response, error) {
	return t.do(ctx, http.MethodPost, path, bytes.NewReader(body), header)
}

// Get fetches path
func (t *HTTPTransport) Get(ctx context.Context, path string, header http.Header) (*Response, error) {
	return t.do(ctx, http.MethodGet, path, nil, header)
}

// URL returns the absolute URL for path. Path must already be escaped.
func (t *HTTPTransport) URL(path string) string {
	return t.baseURL + "/" + strings.TrimLeft(path, "/")
}

func (t *HTTPTransport) do(ctx context.Context, method, path string, body io.Reader, header http.Header) (*Response, error) {
	url := t.URL(path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	for k, v := range header {
		req.Header[k] = append([]string(nil), v...)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: url, Err: fmt.Errorf("failed to read response: %w", err)}
	}

	result := &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       respBody,
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Method:   method,
			URL:      url,
			Response: result,
			Err:      fmt.Errorf("unexpected status code %d", resp.StatusCode),
		}
	}
	return result, nil
}
