package exporter

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"orderpulse/internal/analytics"
	"orderpulse/pkg/contracts/domain"
)

func sampleBundle() *analytics.Bundle {
	day := func(d string) time.Time {
		t, _ := time.Parse("2006-01-02", d)
		return t
	}
	return &analytics.Bundle{
		DailyOrders: []domain.DailyOrderPoint{
			{OrderDate: day("2018-01-01"), OrderCount: 2, Revenue: 30},
			{OrderDate: day("2018-01-02"), OrderCount: 0, Revenue: 0},
			{OrderDate: day("2018-01-03"), OrderCount: 1, Revenue: 5},
		},
		CustomersByState: []domain.StateCount{
			{State: "SP", CustomerCount: 2},
			{State: "RJ", CustomerCount: 1},
		},
		CustomersByCity: []domain.CityCount{
			{City: "sao paulo", CustomerCount: 2},
		},
		ReviewScores: []domain.ReviewScoreCount{
			{Score: 1, ReviewCount: 1},
			{Score: 5, ReviewCount: 2},
		},
		ProductCategories: []domain.CategoryCount{
			{Category: "toys", ProductCount: 3},
		},
		RFM: []domain.RFMRow{
			{CustomerID: "c1", Frequency: 2, Monetary: 30, Recency: 0},
		},
		AverageReviewScore: 3.75,
	}
}

func TestBuildTable(t *testing.T) {
	bundle := sampleBundle()

	tests := []struct {
		name        string
		table       string
		wantHeaders []string
		wantRows    int
		wantErr     bool
	}{
		{
			name:        "daily orders",
			table:       TableDailyOrders,
			wantHeaders: []string{"order_date", "order_count", "revenue"},
			wantRows:    3,
		},
		{
			name:        "customers by state",
			table:       TableCustomersByState,
			wantHeaders: []string{"customer_state", "customer_count"},
			wantRows:    2,
		},
		{
			name:        "rfm",
			table:       TableRFM,
			wantHeaders: []string{"customer_id", "frequency", "monetary", "recency"},
			wantRows:    1,
		},
		{
			name:    "unknown table",
			table:   "order_items",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := BuildTable(bundle, tt.table)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHeaders, table.Headers)
			assert.Len(t, table.Records, tt.wantRows)
		})
	}
}

func TestBuildTablesFormatsValues(t *testing.T) {
	tables := BuildTables(sampleBundle())
	require.Len(t, tables, 6)

	daily := tables[0]
	assert.Equal(t, []string{"2018-01-01", "2", "30.00"}, daily.Records[0])
	assert.Equal(t, []string{"2018-01-02", "0", "0.00"}, daily.Records[1])

	rfm := tables[5]
	assert.Equal(t, []string{"c1", "2", "30.00", "0"}, rfm.Records[0])
}

func TestCSVWriterWriteCSV(t *testing.T) {
	dir := t.TempDir()
	w := NewCSVWriter(dir, nil)

	table, err := BuildTable(sampleBundle(), TableDailyOrders)
	require.NoError(t, err)

	err = w.WriteCSV("daily_orders.csv", WriteOptions{
		Headers:   table.Headers,
		Records:   table.Records,
		BOMPrefix: true,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "daily_orders.csv"))
	require.NoError(t, err)
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, data[:3], "expected UTF-8 BOM")

	reader := csv.NewReader(bytes.NewReader(data[3:]))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"order_date", "order_count", "revenue"}, rows[0])
	assert.Equal(t, []string{"2018-01-03", "1", "5.00"}, rows[3])
}

func TestExcelWriterWriteWorkbook(t *testing.T) {
	w := NewExcelWriter(nil)

	var buf bytes.Buffer
	require.NoError(t, w.WriteWorkbook(sampleBundle(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Contains(t, sheets, "Overview")
	assert.Contains(t, sheets, "Daily Orders")
	assert.Contains(t, sheets, "RFM")
	assert.NotContains(t, sheets, "Sheet1")

	val, err := f.GetCellValue("Daily Orders", "A2")
	require.NoError(t, err)
	assert.Equal(t, "2018-01-01", val)
}
