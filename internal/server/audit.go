package server

import (
	"time"
)

// AuditEntry captures one mutating request. Entries flow through the audit
// pipeline in batches and end up on the audit topic.
type AuditEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	RequestID  string    `json:"request_id"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	StatusCode int       `json:"status_code"`
	Request    string    `json:"request,omitempty"`
	Response   string    `json:"response,omitempty"`
}
