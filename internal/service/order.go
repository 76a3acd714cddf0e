package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/validation"
)

// Statuses the marketplace dataset uses.
var orderStatuses = []string{
	"created", "approved", "invoiced", "processing",
	"shipped", "delivered", "unavailable", "canceled",
}

type OrderService struct {
	repo      OrderRepository
	customers CustomerRepository
}

func NewOrderService(repo OrderRepository, customers CustomerRepository) *OrderService {
	return &OrderService{repo: repo, customers: customers}
}

// validateOrder checks presence and shape only. The dataset contains rows
// whose timestamps are out of chronological order, so ordering between the
// timestamps is deliberately not enforced at write time.
func validateOrder(o *Order) error {
	v := validation.New()
	v.Required("order_id", o.OrderID)
	v.Required("customer_id", o.CustomerID)
	v.OneOf("order_status", o.Status, orderStatuses)
	if o.PurchaseTimestamp.IsZero() {
		v.Required("order_purchase_timestamp", "")
	}
	if o.ApprovedAt.IsZero() {
		v.Required("order_approved_at", "")
	}
	if o.EstimatedDeliveryDate.IsZero() {
		v.Required("order_estimated_delivery_date", "")
	}
	return v.Err()
}

func (s *OrderService) Create(ctx context.Context, input Order) (*Order, error) {
	if err := validateOrder(&input); err != nil {
		return nil, err
	}

	rec := repository.Order{
		OrderID:               input.OrderID,
		CustomerID:            input.CustomerID,
		Status:                input.Status,
		PurchaseTimestamp:     input.PurchaseTimestamp,
		ApprovedAt:            input.ApprovedAt,
		DeliveredCarrierDate:  input.DeliveredCarrierDate,
		DeliveredCustomerDate: input.DeliveredCustomerDate,
		EstimatedDeliveryDate: input.EstimatedDeliveryDate,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return orderFromRecord(&rec), nil
}

func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter, params pagination.Params) (pagination.Response[Order], error) {
	limit, offset, page, pageSize := params.Normalize()

	var (
		records []repository.Order
		total   int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.repo.List(gCtx, filter, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.Count(gCtx, filter)
		return err
	})
	if err := g.Wait(); err != nil {
		return pagination.Response[Order]{}, fmt.Errorf("list orders: %w", err)
	}

	return pagination.NewResponse(ordersFromRecords(records), total, page, pageSize), nil
}

func (s *OrderService) Get(ctx context.Context, id string) (*Order, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get order %s: %w", id, err)
	}
	return orderFromRecord(rec), nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete order %s: %w", id, err)
	}
	return nil
}

// ListByCustomer checks the customer exists first so an unknown customer
// surfaces as 404 instead of an indistinguishable empty page.
func (s *OrderService) ListByCustomer(ctx context.Context, customerID string, params pagination.Params) (pagination.Response[Order], error) {
	if _, err := s.customers.GetByID(ctx, customerID); err != nil {
		return pagination.Response[Order]{}, fmt.Errorf("customer %s: %w", customerID, err)
	}

	limit, offset, page, pageSize := params.Normalize()

	var (
		records []repository.Order
		total   int64
	)
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		records, err = s.repo.ListByCustomer(gCtx, customerID, limit, offset)
		return err
	})
	g.Go(func() error {
		var err error
		total, err = s.repo.CountByCustomer(gCtx, customerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return pagination.Response[Order]{}, fmt.Errorf("list orders for customer %s: %w", customerID, err)
	}

	return pagination.NewResponse(ordersFromRecords(records), total, page, pageSize), nil
}
