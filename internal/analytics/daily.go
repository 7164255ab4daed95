// Package analytics computes the dashboard summary tables from a
// filtered slice of order records. Every function here is pure: same
// input, same output, no shared state, so the aggregators can run in
// any order or concurrently.
package analytics

import (
	"time"

	"orderpulse/internal/dataset"
	"orderpulse/pkg/contracts/domain"
)

// DailyOrders buckets rows into calendar days by estimated-delivery
// date over the inclusive range. Every day in the range appears in the
// output, zero-filled when no order lands on it. Per day it counts
// distinct order IDs and sums line-item prices.
func DailyOrders(rows []domain.OrderRecord, rng dataset.DateRange) []domain.DailyOrderPoint {
	if rng.IsEmpty() {
		return []domain.DailyOrderPoint{}
	}

	type bucket struct {
		orders  map[string]struct{}
		revenue float64
	}

	buckets := make(map[time.Time]*bucket)
	for _, row := range rows {
		if !rng.Contains(row.EstimatedDelivery) {
			continue
		}
		day := row.EstimatedDelivery.Date()
		b := buckets[day]
		if b == nil {
			b = &bucket{orders: make(map[string]struct{})}
			buckets[day] = b
		}
		if row.OrderID != "" {
			b.orders[row.OrderID] = struct{}{}
		}
		b.revenue += row.Price
	}

	points := make([]domain.DailyOrderPoint, 0, rng.Days())
	for day := rng.Start; !day.After(rng.End); day = day.AddDate(0, 0, 1) {
		point := domain.DailyOrderPoint{OrderDate: day}
		if b, exists := buckets[day]; exists {
			point.OrderCount = len(b.orders)
			point.Revenue = b.revenue
		}
		points = append(points, point)
	}

	return points
}

// TotalOrders counts distinct order IDs across the daily series
func TotalOrders(points []domain.DailyOrderPoint) int {
	total := 0
	for _, p := range points {
		total += p.OrderCount
	}
	return total
}

// TotalRevenue sums revenue across the daily series
func TotalRevenue(points []domain.DailyOrderPoint) float64 {
	total := 0.0
	for _, p := range points {
		total += p.Revenue
	}
	return total
}
