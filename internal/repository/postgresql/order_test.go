package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	mock_database "gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/db/mocks"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository/postgresql"
)

func testOrder(t *testing.T) repository.Order {
	t.Helper()

	purchase, err := time.Parse(time.RFC3339, "2017-10-02T10:56:33Z")
	require.NoError(t, err)

	return repository.Order{
		OrderID:               "O1",
		CustomerID:            "C1",
		Status:                "delivered",
		PurchaseTimestamp:     purchase,
		ApprovedAt:            purchase.Add(15 * time.Minute),
		EstimatedDeliveryDate: purchase.AddDate(0, 0, 14),
	}
}

func TestOrderRepo_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		order := testOrder(t)
		mockDB.EXPECT().Exec(
			gomock.Any(),
			gomock.Any(),
			gomock.Eq(order.OrderID),
			gomock.Eq(order.CustomerID),
			gomock.Eq(order.Status),
			gomock.Eq(order.PurchaseTimestamp),
			gomock.Eq(order.ApprovedAt),
			gomock.Eq(order.DeliveredCarrierDate),
			gomock.Eq(order.DeliveredCustomerDate),
			gomock.Eq(order.EstimatedDeliveryDate),
		).Return(pgconn.CommandTag("INSERT 0 1"), nil)

		err := repo.Create(ctx, &order)
		assert.NoError(t, err)
	})

	t.Run("unknown customer maps to invalid reference", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockDB := mock_database.NewMockDB(ctrl)
		repo := postgresql.NewOrderRepo(mockDB)

		mockDB.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
				gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, &pgconn.PgError{Code: "23503", ConstraintName: "orders_customer_id_fkey"})

		order := testOrder(t)
		order.CustomerID = "no-such-customer"

		err := repo.Create(ctx, &order)
		assert.ErrorIs(t, err, apperrors.ErrInvalidReference)
	})
}

func TestOrderRepo_List_StatusFilter(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	expected := testOrder(t)
	mockDB.EXPECT().
		Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq("delivered"), gomock.Eq(int64(10)), gomock.Eq(int64(0))).
		DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			assert.Contains(t, query, "order_status = $1")
			assert.Contains(t, query, "ORDER BY order_id ASC")
			assert.Contains(t, query, "LIMIT $2 OFFSET $3")
			*dest.(*[]repository.Order) = []repository.Order{expected}
			return nil
		})

	orders, err := repo.List(ctx, repository.OrderFilter{Status: "delivered"}, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, []repository.Order{expected}, orders)
}

func TestOrderRepo_Count_DateRange(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	from := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	mockDB.EXPECT().
		ExecQueryRow(gomock.Any(),
			gomock.Eq("SELECT COUNT(*) FROM orders WHERE order_status = $1 AND order_purchase_timestamp >= $2"),
			gomock.Eq("shipped"), gomock.Eq(from)).
		Return(fakeRow{vals: []interface{}{int64(42)}})

	total, err := repo.Count(ctx, repository.OrderFilter{Status: "shipped", PurchaseFrom: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(42), total)
}

func TestOrderRepo_GetByID_NotFound(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	mockDB.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq("missing")).
		Return(pgx.ErrNoRows)

	order, err := repo.GetByID(ctx, "missing")
	assert.Nil(t, order)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestOrderRepo_ListByCustomer(t *testing.T) {
	ctx := context.Background()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB := mock_database.NewMockDB(ctrl)
	repo := postgresql.NewOrderRepo(mockDB)

	expected := testOrder(t)
	mockDB.EXPECT().
		Select(gomock.Any(), gomock.Any(), gomock.Any(),
			gomock.Eq("C1"), gomock.Eq(int64(10)), gomock.Eq(int64(0))).
		DoAndReturn(func(_ context.Context, dest interface{}, query string, _ ...interface{}) error {
			assert.Contains(t, query, "WHERE customer_id = $1")
			*dest.(*[]repository.Order) = []repository.Order{expected}
			return nil
		})

	mockDB.EXPECT().
		ExecQueryRow(gomock.Any(), gomock.Eq("SELECT COUNT(*) FROM orders WHERE customer_id = $1"), gomock.Eq("C1")).
		Return(fakeRow{vals: []interface{}{int64(1)}})

	orders, err := repo.ListByCustomer(ctx, "C1", 10, 0)
	require.NoError(t, err)
	assert.Len(t, orders, 1)

	total, err := repo.CountByCustomer(ctx, "C1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}
