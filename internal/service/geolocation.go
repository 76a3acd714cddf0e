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

type GeolocationService struct {
	repo GeolocationRepository
}

func NewGeolocationService(repo GeolocationRepository) *GeolocationService {
	return &GeolocationService{repo: repo}
}

func validateGeolocation(v *validation.Validator, prefix string, g *Geolocation) {
	v.LenBetween(prefix+"geolocation_zip_code_prefix", g.ZipCodePrefix, 5, 10)
	v.Required(prefix+"geolocation_city", g.City)
	v.LenExact(prefix+"geolocation_state", g.State, 2)
	v.LatLng(prefix+"geolocation_lat", g.Lat, prefix+"geolocation_lng", g.Lng)
}

func (s *GeolocationService) Create(ctx context.Context, input Geolocation) (*Geolocation, error) {
	v := validation.New()
	validateGeolocation(v, "", &input)
	if err := v.Err(); err != nil {
		return nil, err
	}

	rec := repository.Geolocation{
		ZipCodePrefix: input.ZipCodePrefix,
		Lat:           input.Lat,
		Lng:           input.Lng,
		City:          input.City,
		State:         input.State,
	}
	if err := s.repo.Create(ctx, &rec); err != nil {
		return nil, fmt.Errorf("create geolocation: %w", err)
	}
	return geolocationFromRecord(&rec), nil
}

// CreateBatch validates every sample before touching the store; the insert
// itself is transactional in the repository.
func (s *GeolocationService) CreateBatch(ctx context.Context, inputs []Geolocation) (int, error) {
	if len(inputs) == 0 {
		return 0, apperrors.NewValidation("items", "must not be empty")
	}

	v := validation.New()
	for i := range inputs {
		validateGeolocation(v, fmt.Sprintf("items[%d].", i), &inputs[i])
	}
	if err := v.Err(); err != nil {
		return 0, err
	}

	recs := make([]repository.Geolocation, 0, len(inputs))
	for i := range inputs {
		recs = append(recs, repository.Geolocation{
			ZipCodePrefix: inputs[i].ZipCodePrefix,
			Lat:           inputs[i].Lat,
			Lng:           inputs[i].Lng,
			City:          inputs[i].City,
			State:         inputs[i].State,
		})
	}
	if err := s.repo.CreateBatch(ctx, recs); err != nil {
		return 0, fmt.Errorf("create geolocation batch: %w", err)
	}
	return len(recs), nil
}

func (s *GeolocationService) List(ctx context.Context, filter repository.GeolocationFilter, params pagination.Params) (pagination.Response[Geolocation], error) {
	limit, offset, page, pageSize := params.Normalize()

	var (
		records []repository.Geolocation
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
		return pagination.Response[Geolocation]{}, fmt.Errorf("list geolocations: %w", err)
	}

	return pagination.NewResponse(geolocationsFromRecords(records), total, page, pageSize), nil
}

func (s *GeolocationService) Get(ctx context.Context, id int64) (*Geolocation, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get geolocation %d: %w", id, err)
	}
	return geolocationFromRecord(rec), nil
}

func (s *GeolocationService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete geolocation %d: %w", id, err)
	}
	return nil
}
