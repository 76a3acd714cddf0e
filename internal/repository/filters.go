package repository

import "time"

// Filters enumerate every recognized list predicate per entity. Empty
// string / nil means "no constraint"; combined fields AND together.

// LocationFilter narrows customers and sellers. City matches
// case-insensitively (the source dataset stores cities lowercased),
// state matches exactly.
type LocationFilter struct {
	City  string
	State string
}

// OrderFilter narrows orders by status and by closed or half-open ranges
// over each timestamp column.
type OrderFilter struct {
	Status string

	PurchaseFrom          *time.Time
	PurchaseTo            *time.Time
	ApprovedFrom          *time.Time
	ApprovedTo            *time.Time
	DeliveredCarrierFrom  *time.Time
	DeliveredCarrierTo    *time.Time
	DeliveredCustomerFrom *time.Time
	DeliveredCustomerTo   *time.Time
	EstimatedFrom         *time.Time
	EstimatedTo           *time.Time
}

type GeolocationFilter struct {
	ZipCodePrefix string
	City          string
	State         string
}

// CustomerPatch is a partial update; nil fields keep their current value.
type CustomerPatch struct {
	CustomerUniqueID *string
	ZipCodePrefix    *string
	City             *string
	State            *string
}

// IsEmpty reports whether the patch would change nothing.
func (p CustomerPatch) IsEmpty() bool {
	return p.CustomerUniqueID == nil && p.ZipCodePrefix == nil && p.City == nil && p.State == nil
}
