package analytics

import (
	"sort"
	"time"

	"orderpulse/pkg/contracts/domain"
)

// RFM computes the recency/frequency/monetary table per customer.
// Each customer's anchor is their latest estimated-delivery date in
// the filtered rows; recency is the whole-day gap between the latest
// anchor in the whole filtered set and the customer's own anchor, so
// it is relative to the active date range rather than wall-clock now.
// In a non-empty result recency is always >= 0 and at least one
// customer (the one holding the set-wide max) sits at exactly 0.
func RFM(rows []domain.OrderRecord) []domain.RFMRow {
	type accum struct {
		orders   map[string]struct{}
		monetary float64
		anchor   time.Time
		hasTime  bool
	}

	groups := make(map[string]*accum)
	for _, row := range rows {
		if row.CustomerID == "" {
			continue
		}
		a := groups[row.CustomerID]
		if a == nil {
			a = &accum{orders: make(map[string]struct{})}
			groups[row.CustomerID] = a
		}
		if row.OrderID != "" {
			a.orders[row.OrderID] = struct{}{}
		}
		a.monetary += row.Price
		if row.EstimatedDelivery.Valid {
			day := row.EstimatedDelivery.Date()
			if !a.hasTime || day.After(a.anchor) {
				a.anchor = day
				a.hasTime = true
			}
		}
	}

	// Set-wide max anchor across all customers
	var recent time.Time
	var hasRecent bool
	for _, a := range groups {
		if a.hasTime && (!hasRecent || a.anchor.After(recent)) {
			recent = a.anchor
			hasRecent = true
		}
	}

	result := make([]domain.RFMRow, 0, len(groups))
	for customerID, a := range groups {
		row := domain.RFMRow{
			CustomerID: customerID,
			Frequency:  len(a.orders),
			Monetary:   a.monetary,
		}
		if hasRecent && a.hasTime {
			row.Recency = int(recent.Sub(a.anchor).Hours() / 24)
		}
		result = append(result, row)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].CustomerID < result[j].CustomerID })

	return result
}
