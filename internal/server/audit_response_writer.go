package server

import (
	"bytes"
	"net/http"
)

// responseRecorder records the status code, and the body when capture is on.
// The audit pipeline needs the body; metrics and logging only want the status.
type responseRecorder struct {
	http.ResponseWriter
	statusCode  int
	captureBody bool
	body        bytes.Buffer
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
}

func newBodyRecorder(w http.ResponseWriter) *responseRecorder {
	rec := newResponseRecorder(w)
	rec.captureBody = true
	return rec
}

func (w *responseRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *responseRecorder) Write(b []byte) (int, error) {
	if w.captureBody {
		w.body.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

func (w *responseRecorder) Status() int {
	return w.statusCode
}

func (w *responseRecorder) Body() []byte {
	return w.body.Bytes()
}
