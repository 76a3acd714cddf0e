package postgresql_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository/postgresql"
)

func TestGeolocationRepo_Create_FillsGeneratedFields(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewGeolocationRepo(mockDB)

	now := time.Date(2018, 5, 1, 12, 0, 0, 0, time.UTC)
	mockDB.EXPECT().
		ExecQueryRow(gomock.Any(), gomock.Any(),
			gomock.Eq("14409"), gomock.Eq(-20.5097), gomock.Eq(-47.3978),
			gomock.Eq("franca"), gomock.Eq("SP")).
		Return(fakeRow{vals: []interface{}{int64(7), now, now}})

	geo := repository.Geolocation{
		ZipCodePrefix: "14409",
		Lat:           -20.5097,
		Lng:           -47.3978,
		City:          "franca",
		State:         "SP",
	}
	require.NoError(t, repo.Create(ctx, &geo))
	assert.Equal(t, int64(7), geo.ID)
	assert.Equal(t, now, geo.CreatedAt)
	assert.Equal(t, now, geo.UpdatedAt)
}

func TestGeolocationRepo_CreateBatch(t *testing.T) {
	ctx := context.Background()

	samples := []repository.Geolocation{
		{ZipCodePrefix: "14409", Lat: -20.50, Lng: -47.39, City: "franca", State: "SP"},
		{ZipCodePrefix: "14409", Lat: -20.51, Lng: -47.40, City: "franca", State: "SP"},
	}

	t.Run("commits when every insert succeeds", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewGeolocationRepo(mockDB)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pgconn.CommandTag("INSERT 0 1"), nil).
			Times(2)
		mockTx.EXPECT().Commit(gomock.Any()).Return(nil)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(errors.New("tx closed"))

		assert.NoError(t, repo.CreateBatch(ctx, samples))
	})

	t.Run("rolls back on the first failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := postgresql.NewGeolocationRepo(mockDB)

		expectedErr := errors.New("insert failed")
		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, expectedErr)
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		assert.ErrorIs(t, repo.CreateBatch(ctx, samples), expectedErr)
	})

	t.Run("empty batch is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewGeolocationRepo(mockDB)

		assert.NoError(t, repo.CreateBatch(ctx, nil))
	})
}

func TestGeolocationRepo_List_ZipFilter(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewGeolocationRepo(mockDB)

	mockDB.EXPECT().
		Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq("14409"), gomock.Eq(int64(10)), gomock.Eq(int64(0))).
		DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			assert.Contains(t, query, "geolocation_zip_code_prefix = $1")
			assert.Contains(t, query, "ORDER BY id ASC")
			*dest.(*[]repository.Geolocation) = []repository.Geolocation{{ID: 1, ZipCodePrefix: "14409"}}
			return nil
		})

	geos, err := repo.List(ctx, repository.GeolocationFilter{ZipCodePrefix: "14409"}, 10, 0)
	require.NoError(t, err)
	assert.Len(t, geos, 1)
}
