package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/metrics"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Error: message})
}

// respondServiceError translates the error taxonomy into HTTP statuses.
// Internal detail stays in the log; the client only ever sees the category.
func (s *Server) respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *apperrors.ValidationError
	switch {
	case errors.As(err, &vErr):
		respondJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "validation failed",
			Fields: vErr.Fields,
		})
	case errors.Is(err, apperrors.ErrNotFound):
		respondError(w, http.StatusNotFound, "resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		respondError(w, http.StatusConflict, "resource already exists")
	case errors.Is(err, apperrors.ErrInvalidReference):
		respondError(w, http.StatusUnprocessableEntity, "referenced resource does not exist")
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		metrics.StoreErrorsTotal.WithLabelValues(routeTemplate(r)).Inc()
		s.logger.Error("store unavailable", zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusServiceUnavailable, "storage temporarily unavailable")
	default:
		metrics.StoreErrorsTotal.WithLabelValues(routeTemplate(r)).Inc()
		s.logger.Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}
