package domain

import (
	"time"
)

// Timestamp is a nullable point in time. Source cells that cannot be
// parsed as timestamps load as invalid rather than failing the whole
// dataset.
type Timestamp struct {
	Time  time.Time `json:"time"`
	Valid bool      `json:"valid"`
}

// NewTimestamp returns a valid Timestamp for t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t, Valid: true}
}

// Date truncates the timestamp to its calendar day in UTC.
func (t Timestamp) Date() time.Time {
	return time.Date(t.Time.Year(), t.Time.Month(), t.Time.Day(), 0, 0, 0, 0, time.UTC)
}

// OrderRecord is one line item of the denormalized orders table.
// An order with multiple line items appears as multiple records sharing
// the same OrderID, so order-level metrics always count distinct IDs.
type OrderRecord struct {
	OrderID         string  `json:"order_id" csv:"order_id"`
	CustomerID      string  `json:"customer_id" csv:"customer_id"`
	ProductID       string  `json:"product_id" csv:"product_id"`
	ReviewID        string  `json:"review_id" csv:"review_id"`
	Price           float64 `json:"price" csv:"price"`
	ReviewScore     int     `json:"review_score" csv:"review_score"` // 0 = missing
	CustomerState   string  `json:"customer_state" csv:"customer_state"`
	CustomerCity    string  `json:"customer_city" csv:"customer_city"`
	ProductCategory string  `json:"product_category_name" csv:"product_category_name"`

	Purchased         Timestamp `json:"order_purchase_timestamp"`
	Approved          Timestamp `json:"order_approved_at"`
	CarrierHandoff    Timestamp `json:"order_delivered_carrier_date"`
	Delivered         Timestamp `json:"order_delivered_customer_date"`
	EstimatedDelivery Timestamp `json:"order_estimated_delivery_date"`
	ShippingLimit     Timestamp `json:"shipping_limit_date"`
	ReviewCreated     Timestamp `json:"review_creation_date"`
	ReviewAnswered    Timestamp `json:"review_answer_timestamp"`
}

// HasReview reports whether the record carries a usable review score.
func (r OrderRecord) HasReview() bool {
	return r.ReviewScore > 0
}
