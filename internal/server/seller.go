package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
)

func (s *Server) handleCreateSeller(w http.ResponseWriter, r *http.Request) {
	var input service.Seller
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.sellers.Create(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListSellers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params, err := parsePagination(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.sellers.List(r.Context(), parseLocationFilter(q), params)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSeller(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	seller, err := s.sellers.Get(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, seller)
}

func (s *Server) handleDeleteSeller(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.sellers.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
