package postgresql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

func TestCustomerWhere(t *testing.T) {
	tests := []struct {
		name           string
		filter         repository.LocationFilter
		expectedClause string
		expectedArgs   []interface{}
	}{
		{
			name:           "no filters",
			filter:         repository.LocationFilter{},
			expectedClause: "",
			expectedArgs:   nil,
		},
		{
			name:           "city only",
			filter:         repository.LocationFilter{City: "franca"},
			expectedClause: " WHERE LOWER(customer_city) = LOWER($1)",
			expectedArgs:   []interface{}{"franca"},
		},
		{
			name:           "state only",
			filter:         repository.LocationFilter{State: "SP"},
			expectedClause: " WHERE customer_state = $1",
			expectedArgs:   []interface{}{"SP"},
		},
		{
			name:           "city and state combine with AND",
			filter:         repository.LocationFilter{City: "franca", State: "SP"},
			expectedClause: " WHERE LOWER(customer_city) = LOWER($1) AND customer_state = $2",
			expectedArgs:   []interface{}{"franca", "SP"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			clause, args := customerWhere(tc.filter)
			assert.Equal(t, tc.expectedClause, clause)
			assert.Equal(t, tc.expectedArgs, args)
		})
	}
}

func TestOrderWhere(t *testing.T) {
	from := time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2018, 6, 30, 23, 59, 59, 0, time.UTC)

	t.Run("empty filter", func(t *testing.T) {
		clause, args := orderWhere(repository.OrderFilter{})
		assert.Empty(t, clause)
		assert.Nil(t, args)
	})

	t.Run("status only", func(t *testing.T) {
		clause, args := orderWhere(repository.OrderFilter{Status: "delivered"})
		assert.Equal(t, " WHERE order_status = $1", clause)
		assert.Equal(t, []interface{}{"delivered"}, args)
	})

	t.Run("purchase range", func(t *testing.T) {
		clause, args := orderWhere(repository.OrderFilter{PurchaseFrom: &from, PurchaseTo: &to})
		assert.Equal(t, " WHERE order_purchase_timestamp >= $1 AND order_purchase_timestamp <= $2", clause)
		assert.Equal(t, []interface{}{from, to}, args)
	})

	t.Run("half open range", func(t *testing.T) {
		clause, args := orderWhere(repository.OrderFilter{DeliveredCustomerFrom: &from})
		assert.Equal(t, " WHERE order_delivered_customer_date >= $1", clause)
		assert.Equal(t, []interface{}{from}, args)
	})

	t.Run("status and ranges keep placeholder numbering in sync", func(t *testing.T) {
		clause, args := orderWhere(repository.OrderFilter{
			Status:       "shipped",
			PurchaseFrom: &from,
			EstimatedTo:  &to,
		})
		assert.Equal(t,
			" WHERE order_status = $1 AND order_purchase_timestamp >= $2 AND order_estimated_delivery_date <= $3",
			clause)
		assert.Equal(t, []interface{}{"shipped", from, to}, args)
	})
}

func TestGeolocationWhere(t *testing.T) {
	clause, args := geolocationWhere(repository.GeolocationFilter{
		ZipCodePrefix: "14409",
		City:          "franca",
		State:         "SP",
	})
	assert.Equal(t,
		" WHERE geolocation_zip_code_prefix = $1 AND LOWER(geolocation_city) = LOWER($2) AND geolocation_state = $3",
		clause)
	assert.Equal(t, []interface{}{"14409", "franca", "SP"}, args)
}

// The count query must be built from the same predicate as the page query,
// whatever the filter. Guard the wiring, not just the builder.
func TestSellerWhere_SharedBetweenListAndCount(t *testing.T) {
	filter := repository.LocationFilter{City: "campinas", State: "SP"}

	listClause, listArgs := sellerWhere(filter)
	countClause, countArgs := sellerWhere(filter)

	assert.Equal(t, listClause, countClause)
	assert.Equal(t, listArgs, countArgs)
	assert.Equal(t, " WHERE LOWER(seller_city) = LOWER($1) AND seller_state = $2", listClause)
}
