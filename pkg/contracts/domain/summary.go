package domain

import (
	"time"
)

// DailyOrderPoint is one calendar-day bucket of the daily orders series.
// Every day in the requested range is present, including zero days.
type DailyOrderPoint struct {
	OrderDate  time.Time `json:"order_date"`
	OrderCount int       `json:"order_count"`
	Revenue    float64   `json:"revenue"`
}

// StateCount is the distinct-customer count for one customer state.
type StateCount struct {
	State         string `json:"customer_state"`
	CustomerCount int    `json:"customer_count"`
}

// CityCount is the distinct-order count for one customer city. The
// upstream report keys city demographics on orders rather than
// customers, so the column name is kept even though the cardinality
// differs from StateCount.
type CityCount struct {
	City          string `json:"customer_city"`
	CustomerCount int    `json:"customer_count"`
}

// ReviewScoreCount is the distinct-review count for one score value.
type ReviewScoreCount struct {
	Score       int `json:"review_score"`
	ReviewCount int `json:"review_count"`
}

// CategoryCount is the distinct-product count for one product category.
// Note this measures catalog breadth per category, not sales volume,
// even though the dashboard labels the extremes "best" and "worst".
type CategoryCount struct {
	Category     string `json:"product_category_name"`
	ProductCount int    `json:"product_count"`
}

// RFMRow holds the recency/frequency/monetary metrics for one customer.
// Recency is measured in whole days from the customer's latest
// estimated-delivery date back from the latest such date in the
// filtered set, so it shifts with the active date range.
type RFMRow struct {
	CustomerID string  `json:"customer_id"`
	Frequency  int     `json:"frequency"`
	Monetary   float64 `json:"monetary"`
	Recency    int     `json:"recency"`
}
