package service

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/validation"
)

type SellerService struct {
	repo SellerRepository
}

func NewSellerService(repo SellerRepository) *SellerService {
	return &SellerService{repo: repo}
}

func validateSeller(s *Seller) error {
	v := validation.New()
	v.Required("seller_id", s.SellerID)
	v.LenBetween("seller_zip_code_prefix", s.ZipCodePrefix, 5, 10)
	v.Required("seller_city", s.City)
	v.LenExact("seller_state", s.State, 2)
	return v.Err()
}

func (s *SellerService) Create(ctx context.Context, input Seller) (*Seller, error) {
	if err := validateSeller(&input); err != nil {
		return nil, err
	}

	rec := repository.Seller{
		SellerID:      input.SellerID,
		ZipCodePrefix: input.ZipCodePrefix,
		City:          input.City,
		State:         input.State,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create seller: %w", err)
	}
	return sellerFromRecord(&rec), nil
}

func (s *SellerService) List(ctx context.Context, filter repository.LocationFilter, params pagination.Params) (pagination.Response[Seller], error) {
	limit, offset, page, pageSize := params.Normalize()

	var (
		records []repository.Seller
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
		return pagination.Response[Seller]{}, fmt.Errorf("list sellers: %w", err)
	}

	return pagination.NewResponse(sellersFromRecords(records), total, page, pageSize), nil
}

func (s *SellerService) Get(ctx context.Context, id string) (*Seller, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get seller %s: %w", id, err)
	}
	return sellerFromRecord(rec), nil
}

func (s *SellerService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete seller %s: %w", id, err)
	}
	return nil
}
