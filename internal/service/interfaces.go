//go:generate mockgen -source ./interfaces.go -destination=./mocks/repositories.go -package=mock_service
package service

import (
	"context"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

// Repository contracts the services consume. List and Count are paired: an
// implementation must derive both from the same filter predicate so a page
// and its total never describe different row sets.

type CustomerRepository interface {
	Create(ctx context.Context, customer *repository.Customer) error
	List(ctx context.Context, filter repository.LocationFilter, limit, offset int64) ([]repository.Customer, error)
	Count(ctx context.Context, filter repository.LocationFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*repository.Customer, error)
	Update(ctx context.Context, id string, patch repository.CustomerPatch) (*repository.Customer, error)
	Delete(ctx context.Context, id string) error
}

type SellerRepository interface {
	Create(ctx context.Context, seller *repository.Seller) error
	List(ctx context.Context, filter repository.LocationFilter, limit, offset int64) ([]repository.Seller, error)
	Count(ctx context.Context, filter repository.LocationFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*repository.Seller, error)
	Delete(ctx context.Context, id string) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *repository.Order) error
	List(ctx context.Context, filter repository.OrderFilter, limit, offset int64) ([]repository.Order, error)
	Count(ctx context.Context, filter repository.OrderFilter) (int64, error)
	GetByID(ctx context.Context, id string) (*repository.Order, error)
	Delete(ctx context.Context, id string) error
	ListByCustomer(ctx context.Context, customerID string, limit, offset int64) ([]repository.Order, error)
	CountByCustomer(ctx context.Context, customerID string) (int64, error)
}

type GeolocationRepository interface {
	Create(ctx context.Context, geo *repository.Geolocation) error
	CreateBatch(ctx context.Context, geos []repository.Geolocation) error
	List(ctx context.Context, filter repository.GeolocationFilter, limit, offset int64) ([]repository.Geolocation, error)
	Count(ctx context.Context, filter repository.GeolocationFilter) (int64, error)
	GetByID(ctx context.Context, id int64) (*repository.Geolocation, error)
	Delete(ctx context.Context, id int64) error
}
