package gatewaytest

import (
	"bytes"
	"io"
	"net/http"
)

// apiKeyMiddleware rejects requests without the configured X-API-KEY
func (s *Server) apiKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != s.apiKey {
			respondError(w, http.StatusUnauthorized, ErrCodeInvalidAPIKey, "Invalid API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recordMiddleware keeps a copy of every request, body included
func (s *Server) recordMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body []byte
		if r.Body != nil {
			body, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewReader(body))
		}

		s.mu.Lock()
		s.requests = append(s.requests, RecordedRequest{
			Method:    r.Method,
			Path:      r.URL.Path,
			RawPath:   r.URL.EscapedPath(),
			APIKey:    r.Header.Get("X-API-KEY"),
			Signature: r.Header.Get("X-SIGNATURE"),
			Body:      body,
		})
		s.mu.Unlock()

		next.ServeHTTP(w, r)
	})
}

// failureMiddleware serves responses queued with FailNext
func (s *Server) failureMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var f *failure
		if len(s.failures) > 0 {
			f = &s.failures[0]
			s.failures = s.failures[1:]
		}
		s.mu.Unlock()

		if f == nil {
			next.ServeHTTP(w, r)
			return
		}
		for k, v := range f.header {
			w.Header()[k] = v
		}
		w.WriteHeader(f.status)
		w.Write([]byte(f.body))
	})
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
