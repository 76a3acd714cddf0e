package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
	mock_service "gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service/mocks"
)

func strPtr(s string) *string { return &s }

func TestCustomerService_Create(t *testing.T) {
	t.Parallel()

	input := service.Customer{
		CustomerID:       "C1",
		CustomerUniqueID: "U1",
		ZipCodePrefix:    "14409",
		City:             "franca",
		State:            "SP",
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)

		got, err := svc.Create(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, "C1", got.CustomerID)
		assert.Equal(t, "franca", got.City)
	})

	t.Run("duplicate id", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(apperrors.ErrConflict)

		_, err := svc.Create(context.Background(), input)
		assert.ErrorIs(t, err, apperrors.ErrConflict)
	})

	t.Run("invalid payload", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		bad := input
		bad.State = "SPX"
		bad.ZipCodePrefix = "123"

		_, err := svc.Create(context.Background(), bad)
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "customer_state")
		assert.Contains(t, vErr.Fields, "customer_zip_code_prefix")
	})
}

func TestCustomerService_List(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockCustomerRepository(ctrl)
	svc := service.NewCustomerService(repo)

	filter := repository.LocationFilter{City: "franca", State: "SP"}
	rec := repository.Customer{
		CustomerID:       "C1",
		CustomerUniqueID: "U1",
		ZipCodePrefix:    "14409",
		City:             "franca",
		State:            "SP",
	}

	repo.EXPECT().List(gomock.Any(), filter, int64(10), int64(0)).
		Return([]repository.Customer{rec}, nil)
	repo.EXPECT().Count(gomock.Any(), filter).Return(int64(1), nil)

	resp, err := svc.List(context.Background(), filter, pagination.Params{Page: 1, PageSize: 10})
	require.NoError(t, err)

	require.Len(t, resp.Data, 1)
	assert.Equal(t, "C1", resp.Data[0].CustomerID)
	assert.Equal(t, pagination.Meta{
		TotalRecords: 1,
		CurrentPage:  1,
		PageSize:     10,
		TotalPages:   1,
	}, resp.Meta)
}

func TestCustomerService_List_PageBeyondRange(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockCustomerRepository(ctrl)
	svc := service.NewCustomerService(repo)

	filter := repository.LocationFilter{}

	repo.EXPECT().List(gomock.Any(), filter, int64(10), int64(90)).
		Return(nil, nil)
	repo.EXPECT().Count(gomock.Any(), filter).Return(int64(3), nil)

	resp, err := svc.List(context.Background(), filter, pagination.Params{Page: 10, PageSize: 10})
	require.NoError(t, err)

	assert.NotNil(t, resp.Data)
	assert.Empty(t, resp.Data)
	assert.Equal(t, int64(3), resp.Meta.TotalRecords)
	assert.Equal(t, 10, resp.Meta.CurrentPage)
	assert.Equal(t, int64(1), resp.Meta.TotalPages)
}

func TestCustomerService_List_CountError(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockCustomerRepository(ctrl)
	svc := service.NewCustomerService(repo)

	repo.EXPECT().List(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil).AnyTimes()
	repo.EXPECT().Count(gomock.Any(), gomock.Any()).
		Return(int64(0), apperrors.ErrStoreUnavailable)

	_, err := svc.List(context.Background(), repository.LocationFilter{}, pagination.Params{})
	assert.ErrorIs(t, err, apperrors.ErrStoreUnavailable)
}

func TestCustomerService_Get(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockCustomerRepository(ctrl)
	svc := service.NewCustomerService(repo)

	repo.EXPECT().GetByID(gomock.Any(), "missing").Return(nil, apperrors.ErrNotFound)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestCustomerService_Update(t *testing.T) {
	t.Parallel()

	t.Run("empty patch rejected", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		_, err := svc.Update(context.Background(), "C1", service.CustomerPatch{})
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "body")
	})

	t.Run("invalid state in patch", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		_, err := svc.Update(context.Background(), "C1", service.CustomerPatch{State: strPtr("S")})
		var vErr *apperrors.ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "customer_state")
	})

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		repo.EXPECT().
			Update(gomock.Any(), "C1", repository.CustomerPatch{City: strPtr("campinas")}).
			Return(&repository.Customer{
				CustomerID:       "C1",
				CustomerUniqueID: "U1",
				ZipCodePrefix:    "14409",
				City:             "campinas",
				State:            "SP",
			}, nil)

		got, err := svc.Update(context.Background(), "C1", service.CustomerPatch{City: strPtr("campinas")})
		require.NoError(t, err)
		assert.Equal(t, "campinas", got.City)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		ctrl := gomock.NewController(t)
		repo := mock_service.NewMockCustomerRepository(ctrl)
		svc := service.NewCustomerService(repo)

		repo.EXPECT().Update(gomock.Any(), "nope", gomock.Any()).Return(nil, apperrors.ErrNotFound)

		_, err := svc.Update(context.Background(), "nope", service.CustomerPatch{City: strPtr("x")})
		assert.True(t, errors.Is(err, apperrors.ErrNotFound))
	})
}

func TestCustomerService_Delete(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	repo := mock_service.NewMockCustomerRepository(ctrl)
	svc := service.NewCustomerService(repo)

	repo.EXPECT().Delete(gomock.Any(), "C1").Return(nil)
	require.NoError(t, svc.Delete(context.Background(), "C1"))

	repo.EXPECT().Delete(gomock.Any(), "gone").Return(apperrors.ErrNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "gone"), apperrors.ErrNotFound)
}
