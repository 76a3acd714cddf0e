package repository

import (
	"time"
)

// Records mirror the persisted rows one column per field; scany maps rows
// through the db tags. Mapping is total: a scan failure is an internal
// error, never a partial record.

type Customer struct {
	CustomerID       string `db:"customer_id"`
	CustomerUniqueID string `db:"customer_unique_id"`
	ZipCodePrefix    string `db:"customer_zip_code_prefix"`
	City             string `db:"customer_city"`
	State            string `db:"customer_state"`
}

type Seller struct {
	SellerID      string `db:"seller_id"`
	ZipCodePrefix string `db:"seller_zip_code_prefix"`
	City          string `db:"seller_city"`
	State         string `db:"seller_state"`
}

type Order struct {
	OrderID               string     `db:"order_id"`
	CustomerID            string     `db:"customer_id"`
	Status                string     `db:"order_status"`
	PurchaseTimestamp     time.Time  `db:"order_purchase_timestamp"`
	ApprovedAt            time.Time  `db:"order_approved_at"`
	DeliveredCarrierDate  *time.Time `db:"order_delivered_carrier_date"`
	DeliveredCustomerDate *time.Time `db:"order_delivered_customer_date"`
	EstimatedDeliveryDate time.Time  `db:"order_estimated_delivery_date"`
}

// Geolocation rows are samples: the zip code prefix is deliberately not
// unique, one prefix carries many lat/lng points.
type Geolocation struct {
	ID            int64     `db:"id"`
	ZipCodePrefix string    `db:"geolocation_zip_code_prefix"`
	Lat           float64   `db:"geolocation_lat"`
	Lng           float64   `db:"geolocation_lng"`
	City          string    `db:"geolocation_city"`
	State         string    `db:"geolocation_state"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}
