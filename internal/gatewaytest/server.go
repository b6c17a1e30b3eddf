// Package gatewaytest provides an in-memory fake of the checkout gateway API
// for tests. It authenticates requests exactly like the real gateway: the API
// key must match and X-SIGNATURE must be the HMAC of the raw body (session
// creation) or of the unescaped payment id (retrieval).
package gatewaytest

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/gorilla/mux"
)

// BasePath is the prefix every API route is mounted under
const BasePath = "/api/v1"

// Session status values reported by the fake gateway
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// RecordedRequest is a request as received by the fake gateway
type RecordedRequest struct {
	Method    string
	Path      string
	RawPath   string
	APIKey    string
	Signature string
	Body      []byte
}

type failure struct {
	status int
	body   string
	header http.Header
}

type session struct {
	ID            string
	Amount        int64
	Currency      string
	Description   string
	TransactionID string
	ServiceID     string
	Customer      checkout.CustomerInfo
	Services      []checkout.ServiceItem
	Status        string
	CreatedAt     time.Time
}

// Server is a running fake gateway
type Server struct {
	apiKey string
	signer *checkout.HMACSigner
	srv    *httptest.Server

	mu       sync.Mutex
	sessions map[string]*session
	requests []RecordedRequest
	failures []failure
}

// NewServer starts a fake gateway accepting apiKey and requests signed with secret
func NewServer(apiKey, secret string) *Server {
	s := &Server{
		apiKey:   apiKey,
		signer:   checkout.NewHMACSigner(secret),
		sessions: make(map[string]*session),
	}
	s.srv = httptest.NewServer(s.Router())
	return s
}

// Router creates the gateway routes
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.UseEncodedPath()

	r.Use(RecoveryMiddleware)
	r.Use(s.recordMiddleware)
	r.Use(s.failureMiddleware)

	api := r.PathPrefix(BasePath).Subrouter()
	api.Use(s.apiKeyMiddleware)

	api.HandleFunc("/sessions", s.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", s.GetSession).Methods("GET")

	r.NotFoundHandler = http.HandlerFunc(NotFoundHandler)
	return r
}

// URL returns the base URL clients should be configured with
func (s *Server) URL() string {
	return s.srv.URL + BasePath
}

// Close shuts the server down
func (s *Server) Close() {
	s.srv.Close()
}

// Requests returns a copy of every request received so far
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// FailNext makes the next request receive status and body verbatim
func (s *Server) FailNext(status int, body string, header http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{status: status, body: body, header: header})
}

// SetStatus changes the status reported for a session
func (s *Server) SetStatus(id, status string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if ok {
		sess.Status = status
	}
	return ok
}

// Sign signs payload with the gateway secret
func (s *Server) Sign(payload []byte) string {
	return s.signer.Sign(payload)
}
