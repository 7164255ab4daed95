// Package dataset loads the denormalized orders table and restricts it
// to an estimated-delivery date range. It is the only package that
// touches the source file; everything downstream works on
// []domain.OrderRecord in memory.
package dataset

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"orderpulse/pkg/contracts/domain"
)

// Column names of the source table. The eight date columns are parsed
// as timestamps; cells that do not parse load as missing values.
const (
	ColOrderID         = "order_id"
	ColCustomerID      = "customer_id"
	ColProductID       = "product_id"
	ColReviewID        = "review_id"
	ColPrice           = "price"
	ColReviewScore     = "review_score"
	ColCustomerState   = "customer_state"
	ColCustomerCity    = "customer_city"
	ColProductCategory = "product_category_name"

	ColPurchased         = "order_purchase_timestamp"
	ColApproved          = "order_approved_at"
	ColCarrierHandoff    = "order_delivered_carrier_date"
	ColDelivered         = "order_delivered_customer_date"
	ColEstimatedDelivery = "order_estimated_delivery_date"
	ColShippingLimit     = "shipping_limit_date"
	ColReviewCreated     = "review_creation_date"
	ColReviewAnswered    = "review_answer_timestamp"
)

// requiredColumns must all be present in the header or the load fails.
var requiredColumns = []string{
	ColOrderID,
	ColCustomerID,
	ColProductID,
	ColReviewID,
	ColPrice,
	ColReviewScore,
	ColCustomerState,
	ColCustomerCity,
	ColProductCategory,
	ColPurchased,
	ColApproved,
	ColCarrierHandoff,
	ColDelivered,
	ColEstimatedDelivery,
	ColShippingLimit,
	ColReviewCreated,
	ColReviewAnswered,
}

// timestampLayouts are tried in order for each date-like cell.
var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02",
}

// Loader reads the orders CSV into memory
type Loader struct {
	path   string
	logger *slog.Logger
}

// NewLoader creates a loader for the CSV at path
func NewLoader(path string, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		path:   path,
		logger: logger.With(slog.String("component", "dataset.loader")),
	}
}

// Load reads the whole file. Missing file and missing required columns
// are fatal since everything downstream assumes the full schema;
// individual bad cells are coerced instead.
func (l *Loader) Load(ctx context.Context) ([]domain.OrderRecord, error) {
	l.logger.InfoContext(ctx, "loading orders dataset", slog.String("path", l.path))

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer file.Close()

	records, err := ParseCSV(ctx, file, l.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", l.path, err)
	}

	l.logger.InfoContext(ctx, "orders dataset loaded",
		slog.String("path", l.path),
		slog.Int("row_count", len(records)))

	return records, nil
}

// ParseCSV parses the orders table from r. The header row maps column
// names to positions so column order in the file does not matter.
func ParseCSV(ctx context.Context, r io.Reader, logger *slog.Logger) ([]domain.OrderRecord, error) {
	if logger == nil {
		logger = slog.Default()
	}

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read header row: %w", err)
	}

	columnMap := make(map[string]int, len(header))
	for i, name := range header {
		columnMap[strings.TrimSpace(name)] = i
	}

	for _, col := range requiredColumns {
		if _, exists := columnMap[col]; !exists {
			return nil, fmt.Errorf("could not find required column: %s", col)
		}
	}

	getString := func(row []string, col string) string {
		if idx, exists := columnMap[col]; exists && idx < len(row) {
			return strings.TrimSpace(row[idx])
		}
		return ""
	}

	// Numeric cells parse best-effort; a bad price loads as zero and a
	// bad score as missing rather than failing the row.
	parseFloat := func(row []string, col string) float64 {
		val, _ := strconv.ParseFloat(strings.ReplaceAll(getString(row, col), ",", ""), 64)
		return val
	}
	parseInt := func(row []string, col string) int {
		raw := getString(row, col)
		if val, err := strconv.Atoi(raw); err == nil {
			return val
		}
		// Scores exported through spreadsheet tools sometimes carry a
		// decimal point ("5.0").
		if val, err := strconv.ParseFloat(raw, 64); err == nil {
			return int(val)
		}
		return 0
	}

	var (
		records  []domain.OrderRecord
		badCells int
	)

	parseTimestamp := func(row []string, col string) domain.Timestamp {
		raw := getString(row, col)
		if raw == "" {
			return domain.Timestamp{}
		}
		for _, layout := range timestampLayouts {
			if t, err := time.ParseInLocation(layout, raw, time.UTC); err == nil {
				return domain.NewTimestamp(t)
			}
		}
		badCells++
		return domain.Timestamp{}
	}

	for rowNum := 1; ; rowNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read row %d: %w", rowNum, err)
		}

		// Skip fully empty rows
		isEmpty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				isEmpty = false
				break
			}
		}
		if isEmpty {
			continue
		}

		records = append(records, domain.OrderRecord{
			OrderID:         getString(row, ColOrderID),
			CustomerID:      getString(row, ColCustomerID),
			ProductID:       getString(row, ColProductID),
			ReviewID:        getString(row, ColReviewID),
			Price:           parseFloat(row, ColPrice),
			ReviewScore:     parseInt(row, ColReviewScore),
			CustomerState:   getString(row, ColCustomerState),
			CustomerCity:    getString(row, ColCustomerCity),
			ProductCategory: getString(row, ColProductCategory),

			Purchased:         parseTimestamp(row, ColPurchased),
			Approved:          parseTimestamp(row, ColApproved),
			CarrierHandoff:    parseTimestamp(row, ColCarrierHandoff),
			Delivered:         parseTimestamp(row, ColDelivered),
			EstimatedDelivery: parseTimestamp(row, ColEstimatedDelivery),
			ShippingLimit:     parseTimestamp(row, ColShippingLimit),
			ReviewCreated:     parseTimestamp(row, ColReviewCreated),
			ReviewAnswered:    parseTimestamp(row, ColReviewAnswered),
		})
	}

	if badCells > 0 {
		logger.WarnContext(ctx, "coerced unparseable timestamp cells to missing",
			slog.Int("cell_count", badCells))
	}

	return records, nil
}
