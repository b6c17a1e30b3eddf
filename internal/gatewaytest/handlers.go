package gatewaytest

import (
	"bytes"
	"crypto/hmac"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/alexbotov/rdcheckout/pkg/checkout"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// Error codes returned by the fake gateway
const (
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
	ErrCodeInvalidAPIKey    = "INVALID_API_KEY"
	ErrCodeInvalidSignature = "INVALID_SIGNATURE"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeInternal         = "INTERNAL_ERROR"
)

// ErrorResponse is the error body returned by the gateway
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondJSON(w, status, ErrorResponse{Message: message, Code: code})
}

// CreateSession handles POST /api/v1/sessions
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request body")
		return
	}

	if !s.validSignature(body, r.Header.Get("X-SIGNATURE")) {
		respondError(w, http.StatusUnauthorized, ErrCodeInvalidSignature, "Invalid signature")
		return
	}

	var req checkout.PaymentSessionRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request")
		return
	}
	if req.Amount <= 0 || req.Currency == "" || req.Customer.Email == "" {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid request")
		return
	}

	sess := &session{
		ID:            uuid.New().String(),
		Amount:        req.Amount,
		Currency:      req.Currency,
		Description:   req.Description,
		TransactionID: req.TransactionID,
		ServiceID:     req.ServiceID,
		Customer:      req.Customer,
		Services:      req.Services,
		Status:        StatusPending,
		CreatedAt:     time.Now().UTC(),
	}

	s.mu.Lock()
	s.sessions[sess.ID] = sess
	s.mu.Unlock()

	respondJSON(w, http.StatusCreated, checkout.PaymentSessionResponse{
		ID:          sess.ID,
		Amount:      sess.Amount,
		Currency:    sess.Currency,
		Description: sess.Description,
		CheckoutURL: "https://sandbox.checkout.rdcard.net/pay/" + sess.ID,
		Customer:    sess.Customer,
		CreatedAt:   sess.CreatedAt.Format(time.RFC3339),
		ServiceID:   sess.ServiceID,
	})
}

// GetSession handles GET /api/v1/sessions/{id}
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id, err := url.PathUnescape(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeInvalidRequest, "Invalid payment id")
		return
	}

	if !s.validSignature([]byte(id), r.Header.Get("X-SIGNATURE")) {
		respondError(w, http.StatusUnauthorized, ErrCodeInvalidSignature, "Invalid signature")
		return
	}

	s.mu.Lock()
	sess, ok := s.sessions[id]
	var resp checkout.RetrievePaymentResponse
	if ok {
		resp = retrieveResponse(sess)
	}
	s.mu.Unlock()

	if !ok {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Payment not found")
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// Notification returns a webhook body for session id and its signature
func (s *Server) Notification(id string) ([]byte, string, bool) {
	s.mu.Lock()
	sess, ok := s.sessions[id]
	var resp checkout.RetrievePaymentResponse
	if ok {
		resp = retrieveResponse(sess)
	}
	s.mu.Unlock()

	if !ok {
		return nil, "", false
	}
	body, err := json.Marshal(resp)
	if err != nil {
		return nil, "", false
	}
	return body, s.Sign(body), true
}

func (s *Server) validSignature(payload []byte, signature string) bool {
	return signature != "" && hmac.Equal([]byte(s.Sign(payload)), []byte(signature))
}

func retrieveResponse(sess *session) checkout.RetrievePaymentResponse {
	var description *string
	if sess.Description != "" {
		d := sess.Description
		description = &d
	}

	email := sess.Customer.Email
	var phone *string
	if sess.Customer.Phone != "" {
		p := sess.Customer.Phone
		phone = &p
	}

	services := make([]checkout.PaymentService, 0, len(sess.Services))
	for _, item := range sess.Services {
		svc := checkout.PaymentService{
			ID:        uuid.New().String(),
			Name:      item.Name,
			Quantity:  item.Quantity,
			Price:     item.Price,
			SessionID: sess.ID,
			CreatedAt: sess.CreatedAt.Format(time.RFC3339),
		}
		if item.Description != "" {
			d := item.Description
			svc.Description = &d
		}
		services = append(services, svc)
	}

	return checkout.RetrievePaymentResponse{
		ID:            sess.ID,
		Amount:        sess.Amount,
		Currency:      sess.Currency,
		Description:   description,
		TransactionID: sess.TransactionID,
		Customer:      checkout.PaymentCustomer{Email: &email, Phone: phone},
		CreatedAt:     sess.CreatedAt.Format(time.RFC3339),
		Expired:       false,
		Services:      services,
		Status:        sess.Status,
		ServiceID:     sess.ServiceID,
	}
}

// NotFoundHandler handles unknown routes
func NotFoundHandler(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusNotFound, ErrCodeNotFound, "Resource not found")
}
