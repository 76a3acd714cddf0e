package service

import (
	"time"

	"gitlab.ozon.dev/pupkingeorgij/marketplace-api/internal/repository"
)

// API-facing shapes. The repository records carry db tags only; everything
// that crosses the HTTP boundary goes through these.

type Customer struct {
	CustomerID       string `json:"customer_id"`
	CustomerUniqueID string `json:"customer_unique_id"`
	ZipCodePrefix    string `json:"customer_zip_code_prefix"`
	City             string `json:"customer_city"`
	State            string `json:"customer_state"`
}

// CustomerPatch is a partial update; absent fields keep their value.
type CustomerPatch struct {
	CustomerUniqueID *string `json:"customer_unique_id"`
	ZipCodePrefix    *string `json:"customer_zip_code_prefix"`
	City             *string `json:"customer_city"`
	State            *string `json:"customer_state"`
}

type Seller struct {
	SellerID      string `json:"seller_id"`
	ZipCodePrefix string `json:"seller_zip_code_prefix"`
	City          string `json:"seller_city"`
	State         string `json:"seller_state"`
}

type Order struct {
	OrderID               string     `json:"order_id"`
	CustomerID            string     `json:"customer_id"`
	Status                string     `json:"order_status"`
	PurchaseTimestamp     time.Time  `json:"order_purchase_timestamp"`
	ApprovedAt            time.Time  `json:"order_approved_at"`
	DeliveredCarrierDate  *time.Time `json:"order_delivered_carrier_date,omitempty"`
	DeliveredCustomerDate *time.Time `json:"order_delivered_customer_date,omitempty"`
	EstimatedDeliveryDate time.Time  `json:"order_estimated_delivery_date"`
}

type Geolocation struct {
	ID            int64     `json:"id"`
	ZipCodePrefix string    `json:"geolocation_zip_code_prefix"`
	Lat           float64   `json:"geolocation_lat"`
	Lng           float64   `json:"geolocation_lng"`
	City          string    `json:"geolocation_city"`
	State         string    `json:"geolocation_state"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func customerFromRecord(rec *repository.Customer) *Customer {
	return &Customer{
		CustomerID:       rec.CustomerID,
		CustomerUniqueID: rec.CustomerUniqueID,
		ZipCodePrefix:    rec.ZipCodePrefix,
		City:             rec.City,
		State:            rec.State,
	}
}

func customersFromRecords(recs []repository.Customer) []Customer {
	out := make([]Customer, 0, len(recs))
	for i := range recs {
		out = append(out, *customerFromRecord(&recs[i]))
	}
	return out
}

func sellerFromRecord(rec *repository.Seller) *Seller {
	return &Seller{
		SellerID:      rec.SellerID,
		ZipCodePrefix: rec.ZipCodePrefix,
		City:          rec.City,
		State:         rec.State,
	}
}

func sellersFromRecords(recs []repository.Seller) []Seller {
	out := make([]Seller, 0, len(recs))
	for i := range recs {
		out = append(out, *sellerFromRecord(&recs[i]))
	}
	return out
}

func orderFromRecord(rec *repository.Order) *Order {
	return &Order{
		OrderID:               rec.OrderID,
		CustomerID:            rec.CustomerID,
		Status:                rec.Status,
		PurchaseTimestamp:     rec.PurchaseTimestamp,
		ApprovedAt:            rec.ApprovedAt,
		DeliveredCarrierDate:  rec.DeliveredCarrierDate,
		DeliveredCustomerDate: rec.DeliveredCustomerDate,
		EstimatedDeliveryDate: rec.EstimatedDeliveryDate,
	}
}

func ordersFromRecords(recs []repository.Order) []Order {
	out := make([]Order, 0, len(recs))
	for i := range recs {
		out = append(out, *orderFromRecord(&recs[i]))
	}
	return out
}

func geolocationFromRecord(rec *repository.Geolocation) *Geolocation {
	return &Geolocation{
		ID:            rec.ID,
		ZipCodePrefix: rec.ZipCodePrefix,
		Lat:           rec.Lat,
		Lng:           rec.Lng,
		City:          rec.City,
		State:         rec.State,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
}

func geolocationsFromRecords(recs []repository.Geolocation) []Geolocation {
	out := make([]Geolocation, 0, len(recs))
	for i := range recs {
		out = append(out, *geolocationFromRecord(&recs[i]))
	}
	return out
}
