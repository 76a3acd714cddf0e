//go:generate mockgen -source ./server.go -destination=./mocks/server.go -package=mock_server
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
)

// Service contracts the handlers consume.

type CustomerService interface {
	Create(ctx context.Context, input service.Customer) (*service.Customer, error)
	List(ctx context.Context, filter repository.LocationFilter, params pagination.Params) (pagination.Response[service.Customer], error)
	Get(ctx context.Context, id string) (*service.Customer, error)
	Update(ctx context.Context, id string, patch service.CustomerPatch) (*service.Customer, error)
	Delete(ctx context.Context, id string) error
}

type SellerService interface {
	Create(ctx context.Context, input service.Seller) (*service.Seller, error)
	List(ctx context.Context, filter repository.LocationFilter, params pagination.Params) (pagination.Response[service.Seller], error)
	Get(ctx context.Context, id string) (*service.Seller, error)
	Delete(ctx context.Context, id string) error
}

type OrderService interface {
	Create(ctx context.Context, input service.Order) (*service.Order, error)
	List(ctx context.Context, filter repository.OrderFilter, params pagination.Params) (pagination.Response[service.Order], error)
	Get(ctx context.Context, id string) (*service.Order, error)
	Delete(ctx context.Context, id string) error
	ListByCustomer(ctx context.Context, customerID string, params pagination.Params) (pagination.Response[service.Order], error)
}

type GeolocationService interface {
	Create(ctx context.Context, input service.Geolocation) (*service.Geolocation, error)
	CreateBatch(ctx context.Context, inputs []service.Geolocation) (int, error)
	List(ctx context.Context, filter repository.GeolocationFilter, params pagination.Params) (pagination.Response[service.Geolocation], error)
	Get(ctx context.Context, id int64) (*service.Geolocation, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger reports whether the backing store answers; /health uses it.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	customers    CustomerService
	sellers      SellerService
	orders       OrderService
	geolocations GeolocationService
	store        Pinger

	logger       *zap.Logger
	server       *http.Server
	AuditManager *AuditManager
}

func New(
	customers CustomerService,
	sellers SellerService,
	orders OrderService,
	geolocations GeolocationService,
	store Pinger,
	audit *AuditManager,
	logger *zap.Logger,
) *Server {
	return &Server{
		customers:    customers,
		sellers:      sellers,
		orders:       orders,
		geolocations: geolocations,
		store:        store,
		AuditManager: audit,
		logger:       logger,
	}
}

// Run starts the audit pipeline and serves HTTP until the listener fails or
// Shutdown is called.
func (s *Server) Run(ctx context.Context, cfg *config.Config) error {
	s.server = &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      s.Routes(),
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
	}

	s.AuditManager.Start(ctx)

	s.logger.Info("server starting", zap.String("port", cfg.HTTPPort))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down server")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}

	s.AuditManager.Shutdown(ctx)
	s.logger.Info("server shutdown completed")
	return nil
}

func (s *Server) Routes() http.Handler {
	router := mux.NewRouter()

	router.Use(s.requestIDMiddleware)
	router.Use(s.metricsMiddleware)
	router.Use(s.loggingMiddleware)
	router.Use(s.auditMiddleware)

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	router.HandleFunc("/customers", s.handleCreateCustomer).Methods(http.MethodPost)
	router.HandleFunc("/customers", s.handleListCustomers).Methods(http.MethodGet)
	router.HandleFunc("/customers/{id}", s.handleGetCustomer).Methods(http.MethodGet)
	router.HandleFunc("/customers/{id}", s.handleUpdateCustomer).Methods(http.MethodPut)
	router.HandleFunc("/customers/{id}", s.handleDeleteCustomer).Methods(http.MethodDelete)
	router.HandleFunc("/customers/{id}/orders", s.handleListCustomerOrders).Methods(http.MethodGet)

	router.HandleFunc("/sellers", s.handleCreateSeller).Methods(http.MethodPost)
	router.HandleFunc("/sellers", s.handleListSellers).Methods(http.MethodGet)
	router.HandleFunc("/sellers/{id}", s.handleGetSeller).Methods(http.MethodGet)
	router.HandleFunc("/sellers/{id}", s.handleDeleteSeller).Methods(http.MethodDelete)

	router.HandleFunc("/orders", s.handleCreateOrder).Methods(http.MethodPost)
	router.HandleFunc("/orders", s.handleListOrders).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", s.handleGetOrder).Methods(http.MethodGet)
	router.HandleFunc("/orders/{id}", s.handleDeleteOrder).Methods(http.MethodDelete)

	router.HandleFunc("/geolocations", s.handleCreateGeolocation).Methods(http.MethodPost)
	router.HandleFunc("/geolocations/batch", s.handleCreateGeolocationBatch).Methods(http.MethodPost)
	router.HandleFunc("/geolocations", s.handleListGeolocations).Methods(http.MethodGet)
	router.HandleFunc("/geolocations/{id}", s.handleGetGeolocation).Methods(http.MethodGet)
	router.HandleFunc("/geolocations/{id}", s.handleDeleteGeolocation).Methods(http.MethodDelete)

	return router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := s.store.Ping(ctx); err != nil {
		respondJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
