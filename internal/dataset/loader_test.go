package dataset

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const header = "order_id,customer_id,product_id,review_id,price,review_score,customer_state,customer_city,product_category_name,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date,shipping_limit_date,review_creation_date,review_answer_timestamp"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestParseCSV(t *testing.T) {
	input := header + "\n" +
		"o1,c1,p1,r1,10.5,5,SP,sao paulo,toys,2017-12-20 10:00:00,2017-12-20 11:00:00,2017-12-21 08:00:00,2017-12-30 14:00:00,2018-01-01 00:00:00,2017-12-22 23:59:59,2017-12-31 09:00:00,2018-01-01 12:00:00\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input), testLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Equal(t, "o1", r.OrderID)
	assert.Equal(t, "c1", r.CustomerID)
	assert.InDelta(t, 10.5, r.Price, 1e-9)
	assert.Equal(t, 5, r.ReviewScore)
	assert.Equal(t, "SP", r.CustomerState)
	assert.True(t, r.EstimatedDelivery.Valid)
	assert.Equal(t, "2018-01-01", r.EstimatedDelivery.Date().Format("2006-01-02"))
	assert.True(t, r.Purchased.Valid)
	assert.True(t, r.ReviewAnswered.Valid)
}

func TestParseCSVColumnOrderIndependent(t *testing.T) {
	input := "price,order_id,customer_id,product_id,review_id,review_score,customer_state,customer_city,product_category_name,order_purchase_timestamp,order_approved_at,order_delivered_carrier_date,order_delivered_customer_date,order_estimated_delivery_date,shipping_limit_date,review_creation_date,review_answer_timestamp\n" +
		"42.0,o1,c1,p1,r1,3,RJ,rio,pets,,,,,2018-02-01,,,\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input), testLogger())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.InDelta(t, 42.0, records[0].Price, 1e-9)
	assert.Equal(t, "o1", records[0].OrderID)
}

func TestParseCSVMissingColumnIsFatal(t *testing.T) {
	input := "order_id,customer_id\no1,c1\n"

	_, err := ParseCSV(context.Background(), strings.NewReader(input), testLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required column")
}

func TestParseCSVCoercesBadCells(t *testing.T) {
	input := header + "\n" +
		"o1,c1,p1,r1,not-a-price,nope,SP,sao paulo,toys,garbage,,,,2018-01-01 00:00:00,,,\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input), testLogger())
	require.NoError(t, err, "bad cells must not fail the load")
	require.Len(t, records, 1)

	r := records[0]
	assert.Zero(t, r.Price)
	assert.Zero(t, r.ReviewScore)
	assert.False(t, r.HasReview())
	assert.False(t, r.Purchased.Valid, "unparseable timestamp loads as missing")
	assert.True(t, r.EstimatedDelivery.Valid)
}

func TestParseCSVDecimalScore(t *testing.T) {
	input := header + "\n" +
		"o1,c1,p1,r1,1,5.0,SP,sao paulo,toys,,,,,2018-01-01,,,\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input), testLogger())
	require.NoError(t, err)
	assert.Equal(t, 5, records[0].ReviewScore)
}

func TestParseCSVSkipsEmptyRows(t *testing.T) {
	input := header + "\n" +
		",,,,,,,,,,,,,,,,\n" +
		"o1,c1,p1,r1,1,5,SP,sao paulo,toys,,,,,2018-01-01,,,\n"

	records, err := ParseCSV(context.Background(), strings.NewReader(input), testLogger())
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestLoaderMissingFileIsFatal(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "nope.csv"), testLogger())

	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open dataset")
}

func TestLoaderRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "main_data.csv")
	contents := header + "\n" +
		"o1,c1,p1,r1,10,5,SP,sao paulo,toys,,,,,2018-01-01,,,\n" +
		"o2,c2,p2,r2,20,4,RJ,rio,pets,,,,,2018-01-05,,,\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	records, err := NewLoader(path, testLogger()).Load(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
