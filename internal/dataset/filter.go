package dataset

import (
	"time"

	"orderpulse/pkg/contracts/domain"
)

// DateRange is an inclusive calendar-date range on the
// estimated-delivery column. Bounds carry no time-of-day component.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewDateRange truncates both bounds to their calendar day in UTC
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: truncateToDay(start), End: truncateToDay(end)}
}

// Contains reports whether ts falls within the range, comparing by
// calendar day. Missing timestamps are never contained.
func (r DateRange) Contains(ts domain.Timestamp) bool {
	if !ts.Valid {
		return false
	}
	day := ts.Date()
	return !day.Before(r.Start) && !day.After(r.End)
}

// IsEmpty reports whether the range selects nothing. An inverted range
// (start after end) is deliberately permitted and yields the empty
// set; callers treat it as a zero-result query, not an error.
func (r DateRange) IsEmpty() bool {
	return r.Start.After(r.End)
}

// Days returns the number of calendar days covered, zero if inverted
func (r DateRange) Days() int {
	if r.IsEmpty() {
		return 0
	}
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// FilterByDateRange returns the rows whose estimated-delivery date
// falls within the range. Rows with a missing estimated-delivery
// timestamp are excluded from every filtered result.
func FilterByDateRange(rows []domain.OrderRecord, rng DateRange) []domain.OrderRecord {
	filtered := make([]domain.OrderRecord, 0, len(rows))
	for _, row := range rows {
		if rng.Contains(row.EstimatedDelivery) {
			filtered = append(filtered, row)
		}
	}
	return filtered
}

// Bounds returns the min and max estimated-delivery dates across rows,
// ignoring missing values. ok is false when no row has a usable date.
func Bounds(rows []domain.OrderRecord) (rng DateRange, ok bool) {
	for _, row := range rows {
		if !row.EstimatedDelivery.Valid {
			continue
		}
		day := row.EstimatedDelivery.Date()
		if !ok {
			rng = DateRange{Start: day, End: day}
			ok = true
			continue
		}
		if day.Before(rng.Start) {
			rng.Start = day
		}
		if day.After(rng.End) {
			rng.End = day
		}
	}
	return rng, ok
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
