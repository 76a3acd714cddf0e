package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/validation"
)

type CustomerService struct {
	repo CustomerRepository
}

func NewCustomerService(repo CustomerRepository) *CustomerService {
	return &CustomerService{repo: repo}
}

func validateCustomer(c *Customer) error {
	v := validation.New()
	v.Required("customer_id", c.CustomerID)
	v.Required("customer_unique_id", c.CustomerUniqueID)
	v.LenBetween("customer_zip_code_prefix", c.ZipCodePrefix, 5, 10)
	v.Required("customer_city", c.City)
	v.LenExact("customer_state", c.State, 2)
	return v.Err()
}

func (s *CustomerService) Create(ctx context.Context, input Customer) (*Customer, error) {
	if err := validateCustomer(&input); err != nil {
		return nil, err
	}

	rec := repository.Customer{
		CustomerID:       input.CustomerID,
		CustomerUniqueID: input.CustomerUniqueID,
		ZipCodePrefix:    input.ZipCodePrefix,
		City:             input.City,
		State:            input.State,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}
	return customerFromRecord(&rec), nil
}

// List fetches the page and the total concurrently; both queries share the
// filter predicate, so the envelope stays internally consistent.
func (s *CustomerService) List(ctx context.Context, filter repository.LocationFilter, params pagination.Params) (pagination.Response[Customer], error) {
	limit, offset, page, pageSize := params.Normalize()

	var (
		records []repository.Customer
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
		return pagination.Response[Customer]{}, fmt.Errorf("list customers: %w", err)
	}

	return pagination.NewResponse(customersFromRecords(records), total, page, pageSize), nil
}

func (s *CustomerService) Get(ctx context.Context, id string) (*Customer, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get customer %s: %w", id, err)
	}
	return customerFromRecord(rec), nil
}

func (s *CustomerService) Update(ctx context.Context, id string, patch CustomerPatch) (*Customer, error) {
	if patch.CustomerUniqueID == nil && patch.ZipCodePrefix == nil && patch.City == nil && patch.State == nil {
		return nil, apperrors.NewValidation("body", "no valid fields provided for update")
	}

	v := validation.New()
	if patch.CustomerUniqueID != nil {
		v.Required("customer_unique_id", *patch.CustomerUniqueID)
	}
	if patch.ZipCodePrefix != nil {
		v.LenBetween("customer_zip_code_prefix", *patch.ZipCodePrefix, 5, 10)
	}
	if patch.City != nil {
		v.Required("customer_city", *patch.City)
	}
	if patch.State != nil {
		v.LenExact("customer_state", *patch.State, 2)
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	rec, err := s.repo.Update(ctx, id, repository.CustomerPatch{
		CustomerUniqueID: patch.CustomerUniqueID,
		ZipCodePrefix:    patch.ZipCodePrefix,
		City:             patch.City,
		State:            patch.State,
	})
	if err != nil {
		return nil, fmt.Errorf("update customer %s: %w", id, err)
	}
	return customerFromRecord(rec), nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete customer %s: %w", id, err)
	}
	return nil
}
