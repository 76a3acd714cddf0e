package server

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
)

func (s *Server) handleCreateCustomer(w http.ResponseWriter, r *http.Request) {
	var input service.Customer
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := s.customers.Create(r.Context(), input)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (s *Server) handleListCustomers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params, err := parsePagination(q)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.customers.List(r.Context(), parseLocationFilter(q), params)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	customer, err := s.customers.Get(r.Context(), id)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, customer)
}

func (s *Server) handleUpdateCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var patch service.CustomerPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := s.customers.Update(r.Context(), id, patch)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteCustomer(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	if err := s.customers.Delete(r.Context(), id); err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListCustomerOrders(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	params, err := parsePagination(r.URL.Query())
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.orders.ListByCustomer(r.Context(), id, params)
	if err != nil {
		s.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}
