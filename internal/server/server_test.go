package server_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/apperrors"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/server"
	mock_server "gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/server/mocks"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/service"
)

type testEnv struct {
	customers    *mock_server.MockCustomerService
	sellers      *mock_server.MockSellerService
	orders       *mock_server.MockOrderService
	geolocations *mock_server.MockGeolocationService
	store        *mock_server.MockPinger
	handler      http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctrl := gomock.NewController(t)
	logger := zap.NewNop()

	env := &testEnv{
		customers:    mock_server.NewMockCustomerService(ctrl),
		sellers:      mock_server.NewMockSellerService(ctrl),
		orders:       mock_server.NewMockOrderService(ctrl),
		geolocations: mock_server.NewMockGeolocationService(ctrl),
		store:        mock_server.NewMockPinger(ctrl),
	}

	audit := server.NewAuditManager(1, 4, 100*time.Millisecond, kafka.NewLogProducer(logger), "audit", logger)
	srv := server.New(env.customers, env.sellers, env.orders, env.geolocations, env.store, audit, logger)
	env.handler = srv.Routes()
	return env
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestListCustomers(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.customers.EXPECT().
		List(gomock.Any(), repository.LocationFilter{City: "franca", State: "SP"}, pagination.Params{Page: 1, PageSize: 10}).
		Return(pagination.Response[service.Customer]{
			Data: []service.Customer{{
				CustomerID:       "C1",
				CustomerUniqueID: "U1",
				ZipCodePrefix:    "14409",
				City:             "franca",
				State:            "SP",
			}},
			Meta: pagination.Meta{TotalRecords: 1, CurrentPage: 1, PageSize: 10, TotalPages: 1},
		}, nil)

	rec := env.do(http.MethodGet, "/customers?city=franca&state=SP&page=1&page_size=10", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []service.Customer `json:"data"`
		Meta pagination.Meta    `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "C1", resp.Data[0].CustomerID)
	assert.Equal(t, int64(1), resp.Meta.TotalRecords)
	assert.Equal(t, int64(1), resp.Meta.TotalPages)
}

func TestListCustomers_BadPageParam(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/customers?page=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "page")
}

func TestListCustomers_UnknownParamIgnored(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.customers.EXPECT().
		List(gomock.Any(), repository.LocationFilter{}, pagination.Params{}).
		Return(pagination.Response[service.Customer]{
			Data: []service.Customer{},
			Meta: pagination.Meta{CurrentPage: 1, PageSize: 10},
		}, nil)

	rec := env.do(http.MethodGet, "/customers?utm_source=mail", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCustomer_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.customers.EXPECT().Get(gomock.Any(), "missing").Return(nil, apperrors.ErrNotFound)

	rec := env.do(http.MethodGet, "/customers/missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"resource not found"}`, rec.Body.String())
}

func TestCreateCustomer(t *testing.T) {
	t.Parallel()

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		env.customers.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(&service.Customer{CustomerID: "C1", City: "franca", State: "SP"}, nil)

		rec := env.do(http.MethodPost, "/customers",
			`{"customer_id":"C1","customer_unique_id":"U1","customer_zip_code_prefix":"14409","customer_city":"franca","customer_state":"SP"}`)
		require.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"customer_id":"C1"`)
	})

	t.Run("validation error carries fields", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		env.customers.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, apperrors.NewValidation("customer_state", "must be exactly 2 characters"))

		rec := env.do(http.MethodPost, "/customers", `{"customer_id":"C1"}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var resp struct {
			Error  string            `json:"error"`
			Fields map[string]string `json:"fields"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "validation failed", resp.Error)
		assert.Contains(t, resp.Fields, "customer_state")
	})

	t.Run("duplicate conflicts", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		env.customers.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrConflict)

		rec := env.do(http.MethodPost, "/customers", `{"customer_id":"C1"}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(http.MethodPost, "/customers", `{not json`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUpdateCustomer(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	city := "campinas"
	env.customers.EXPECT().
		Update(gomock.Any(), "C1", service.CustomerPatch{City: &city}).
		Return(&service.Customer{CustomerID: "C1", City: "campinas", State: "SP"}, nil)

	rec := env.do(http.MethodPut, "/customers/C1", `{"customer_city":"campinas"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "campinas")
}

func TestDeleteSeller(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.sellers.EXPECT().Delete(gomock.Any(), "S1").Return(nil)

	rec := env.do(http.MethodDelete, "/sellers/S1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestCreateOrder_UnknownCustomer(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, apperrors.ErrInvalidReference)

	rec := env.do(http.MethodPost, "/orders",
		`{"order_id":"O1","customer_id":"ghost","order_status":"created"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListOrders_Filters(t *testing.T) {
	t.Parallel()

	t.Run("date range forwarded", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		from := time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC)
		env.orders.EXPECT().
			List(gomock.Any(), repository.OrderFilter{Status: "delivered", PurchaseFrom: &from}, pagination.Params{}).
			Return(pagination.Response[service.Order]{Data: []service.Order{}}, nil)

		rec := env.do(http.MethodGet, "/orders?status=delivered&purchase_from=2017-01-01T00:00:00Z", "")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)

		rec := env.do(http.MethodGet, "/orders?purchase_from=yesterday", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "purchase_from")
	})
}

func TestListCustomerOrders(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.orders.EXPECT().
		ListByCustomer(gomock.Any(), "C1", pagination.Params{Page: 2, PageSize: 5}).
		Return(pagination.Response[service.Order]{
			Data: []service.Order{},
			Meta: pagination.Meta{TotalRecords: 7, CurrentPage: 2, PageSize: 5, TotalPages: 2},
		}, nil)

	rec := env.do(http.MethodGet, "/customers/C1/orders?page=2&page_size=5", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"total_records":7`)
}

func TestGeolocationBatch(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.geolocations.EXPECT().CreateBatch(gomock.Any(), gomock.Len(2)).Return(2, nil)

	rec := env.do(http.MethodPost, "/geolocations/batch",
		`{"items":[{"geolocation_zip_code_prefix":"01037","geolocation_lat":-23.5,"geolocation_lng":-46.6,"geolocation_city":"sao paulo","geolocation_state":"SP"},{"geolocation_zip_code_prefix":"01038","geolocation_lat":-23.5,"geolocation_lng":-46.6,"geolocation_city":"sao paulo","geolocation_state":"SP"}]}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"inserted":2}`, rec.Body.String())
}

func TestGetGeolocation_BadID(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/geolocations/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("ok", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.store.EXPECT().Ping(gomock.Any()).Return(nil)

		rec := env.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	})

	t.Run("degraded", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t)
		env.store.EXPECT().Ping(gomock.Any()).Return(errors.New("dial refused"))

		rec := env.do(http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	})
}

func TestStoreUnavailableMapsTo503(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)

	env.sellers.EXPECT().
		List(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(pagination.Response[service.Seller]{}, apperrors.ErrStoreUnavailable)

	rec := env.do(http.MethodGet, "/sellers", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRequestIDHeader(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t)
	env.store.EXPECT().Ping(gomock.Any()).Return(nil)

	rec := env.do(http.MethodGet, "/health", "")
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
}
