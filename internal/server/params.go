package server

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/pagination"
	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

// Query parameter parsing. Recognized keys with malformed values are a 400;
// unrecognized keys are ignored so clients can carry their own tracing
// parameters without breaking.

func parsePagination(q url.Values) (pagination.Params, error) {
	var params pagination.Params

	if raw := q.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("parameter 'page' must be an integer")
		}
		params.Page = page
	}
	if raw := q.Get("page_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil {
			return params, fmt.Errorf("parameter 'page_size' must be an integer")
		}
		params.PageSize = size
	}
	return params, nil
}

func parseLocationFilter(q url.Values) repository.LocationFilter {
	return repository.LocationFilter{
		City:  q.Get("city"),
		State: q.Get("state"),
	}
}

func parseGeolocationFilter(q url.Values) repository.GeolocationFilter {
	return repository.GeolocationFilter{
		ZipCodePrefix: q.Get("zip_code_prefix"),
		City:          q.Get("city"),
		State:         q.Get("state"),
	}
}

func parseOrderFilter(q url.Values) (repository.OrderFilter, error) {
	filter := repository.OrderFilter{Status: q.Get("status")}

	bounds := []struct {
		key  string
		dest **time.Time
	}{
		{"purchase_from", &filter.PurchaseFrom},
		{"purchase_to", &filter.PurchaseTo},
		{"approved_from", &filter.ApprovedFrom},
		{"approved_to", &filter.ApprovedTo},
		{"delivered_carrier_from", &filter.DeliveredCarrierFrom},
		{"delivered_carrier_to", &filter.DeliveredCarrierTo},
		{"delivered_customer_from", &filter.DeliveredCustomerFrom},
		{"delivered_customer_to", &filter.DeliveredCustomerTo},
		{"estimated_from", &filter.EstimatedFrom},
		{"estimated_to", &filter.EstimatedTo},
	}
	for _, b := range bounds {
		raw := q.Get(b.key)
		if raw == "" {
			continue
		}
		ts, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, fmt.Errorf("parameter '%s' must be an RFC 3339 timestamp", b.key)
		}
		*b.dest = &ts
	}
	return filter, nil
}
