package dataset

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"orderpulse/pkg/contracts/domain"
)

func day(d string) time.Time {
	t, err := time.Parse("2006-01-02", d)
	if err != nil {
		panic(err)
	}
	return t
}

func rowOn(id, d string) domain.OrderRecord {
	return domain.OrderRecord{
		OrderID:           id,
		EstimatedDelivery: domain.NewTimestamp(day(d)),
	}
}

func TestDateRangeContains(t *testing.T) {
	rng := NewDateRange(day("2018-01-01"), day("2018-01-03"))

	tests := []struct {
		name string
		ts   domain.Timestamp
		want bool
	}{
		{"start boundary inclusive", domain.NewTimestamp(day("2018-01-01")), true},
		{"end boundary inclusive", domain.NewTimestamp(day("2018-01-03")), true},
		{"inside", domain.NewTimestamp(day("2018-01-02")), true},
		{"before", domain.NewTimestamp(day("2017-12-31")), false},
		{"after", domain.NewTimestamp(day("2018-01-04")), false},
		{"missing never contained", domain.Timestamp{}, false},
		{"time of day ignored", domain.NewTimestamp(day("2018-01-03").Add(23 * time.Hour)), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rng.Contains(tt.ts))
		})
	}
}

func TestDateRangeInverted(t *testing.T) {
	rng := NewDateRange(day("2018-01-03"), day("2018-01-01"))

	assert.True(t, rng.IsEmpty())
	assert.Zero(t, rng.Days())
	assert.False(t, rng.Contains(domain.NewTimestamp(day("2018-01-02"))))
}

func TestDateRangeDays(t *testing.T) {
	assert.Equal(t, 1, NewDateRange(day("2018-01-01"), day("2018-01-01")).Days())
	assert.Equal(t, 3, NewDateRange(day("2018-01-01"), day("2018-01-03")).Days())
}

func TestFilterByDateRange(t *testing.T) {
	rows := []domain.OrderRecord{
		rowOn("o1", "2018-01-01"),
		rowOn("o2", "2018-01-02"),
		rowOn("o3", "2018-01-05"),
		{OrderID: "o4"}, // missing estimated delivery
	}

	filtered := FilterByDateRange(rows, NewDateRange(day("2018-01-01"), day("2018-01-03")))

	require.Len(t, filtered, 2)
	assert.Equal(t, "o1", filtered[0].OrderID)
	assert.Equal(t, "o2", filtered[1].OrderID)
}

func TestFilterExcludesMissingAlways(t *testing.T) {
	rows := []domain.OrderRecord{{OrderID: "o1"}}
	wide := NewDateRange(day("1900-01-01"), day("2100-01-01"))

	assert.Empty(t, FilterByDateRange(rows, wide))
}

func TestBounds(t *testing.T) {
	rows := []domain.OrderRecord{
		rowOn("o1", "2018-03-10"),
		rowOn("o2", "2018-01-05"),
		{OrderID: "o3"},
		rowOn("o4", "2018-02-20"),
	}

	rng, ok := Bounds(rows)
	require.True(t, ok)
	assert.Equal(t, day("2018-01-05"), rng.Start)
	assert.Equal(t, day("2018-03-10"), rng.End)
}

func TestBoundsNoUsableDates(t *testing.T) {
	_, ok := Bounds([]domain.OrderRecord{{OrderID: "o1"}})
	assert.False(t, ok)
}
