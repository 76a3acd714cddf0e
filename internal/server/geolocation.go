package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
)

func (s *Server) handleCreateGeolocation(w http.ResponseWriter, r *http.Request) {
	var input service.Geolocation
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.geolocations.Create(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleCreateGeolocationBatch(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Items []service.Geolocation `json:"items"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	inserted, err := s.geolocations.CreateBatch(r.Context(), body.Items)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]int{"inserted": inserted})
}

func (s *Server) handleListGeolocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params, err := parsePagination(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.geolocations.List(r.Context(), parseGeolocationFilter(q), params)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func geolocationID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id, err == nil
}

func (s *Server) handleGetGeolocation(w http.ResponseWriter, r *http.Request) {
	id, ok := geolocationID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "geolocation id must be an integer")
		return
	}

	geo, err := s.geolocations.Get(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, geo)
}

func (s *Server) handleDeleteGeolocation(w http.ResponseWriter, r *http.Request) {
	id, ok := geolocationID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "geolocation id must be an integer")
		return
	}

	if err := s.geolocations.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
