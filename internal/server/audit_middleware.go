package server

import (
	"bytes"
	"io"
	"net/http"
	"time"
)

const maxAuditBodyBytes = 64 << 10

// auditMiddleware records every mutating request. Reads are not audited;
// they dominate traffic and carry no state change worth replaying.
func (s *Server) auditMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPut, http.MethodDelete:
		default:
			next.ServeHTTP(w, r)
			return
		}

		entry := AuditEntry{
			Timestamp: time.Now().UTC(),
			RequestID: RequestID(r.Context()),
			Method:    r.Method,
			Path:      r.URL.Path,
		}

		if r.Body != nil {
			body, _ := io.ReadAll(io.LimitReader(r.Body, maxAuditBodyBytes))
			rest, _ := io.ReadAll(r.Body)
			r.Body = io.NopCloser(io.MultiReader(bytes.NewReader(body), bytes.NewReader(rest)))
			entry.Request = string(body)
		}

		rec := newBodyRecorder(w)
		next.ServeHTTP(rec, r)

		entry.StatusCode = rec.Status()
		response := rec.Body()
		if len(response) > maxAuditBodyBytes {
			response = response[:maxAuditBodyBytes]
		}
		entry.Response = string(response)

		s.AuditManager.Log(entry)
	})
}
