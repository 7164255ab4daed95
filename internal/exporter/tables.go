package exporter

import (
	"fmt"
	"sort"
	"strconv"

	"orderpulse/internal/analytics"
)

// Table is a summary table flattened to headers and string records,
// ready for CSV or Excel output.
type Table struct {
	Name    string
	Headers []string
	Records [][]string
}

// Table name constants used by the export endpoints.
const (
	TableDailyOrders       = "daily_orders"
	TableCustomersByState  = "customers_by_state"
	TableCustomersByCity   = "customers_by_city"
	TableReviewScores      = "review_scores"
	TableProductCategories = "product_categories"
	TableRFM               = "rfm"
)

// TableNames returns the exportable table names in a stable order.
func TableNames() []string {
	return []string{
		TableDailyOrders,
		TableCustomersByState,
		TableCustomersByCity,
		TableReviewScores,
		TableProductCategories,
		TableRFM,
	}
}

// BuildTables flattens every summary table in the bundle.
func BuildTables(bundle *analytics.Bundle) []Table {
	return []Table{
		dailyOrdersTable(bundle),
		customersByStateTable(bundle),
		customersByCityTable(bundle),
		reviewScoresTable(bundle),
		productCategoriesTable(bundle),
		rfmTable(bundle),
	}
}

// BuildTable flattens a single summary table by name.
func BuildTable(bundle *analytics.Bundle, name string) (Table, error) {
	for _, t := range BuildTables(bundle) {
		if t.Name == name {
			return t, nil
		}
	}
	names := TableNames()
	sort.Strings(names)
	return Table{}, fmt.Errorf("unknown table %q (valid: %v)", name, names)
}

func dailyOrdersTable(bundle *analytics.Bundle) Table {
	records := make([][]string, 0, len(bundle.DailyOrders))
	for _, p := range bundle.DailyOrders {
		records = append(records, []string{
			p.OrderDate.Format("2006-01-02"),
			strconv.Itoa(p.OrderCount),
			strconv.FormatFloat(p.Revenue, 'f', 2, 64),
		})
	}
	return Table{
		Name:    TableDailyOrders,
		Headers: []string{"order_date", "order_count", "revenue"},
		Records: records,
	}
}

func customersByStateTable(bundle *analytics.Bundle) Table {
	records := make([][]string, 0, len(bundle.CustomersByState))
	for _, s := range bundle.CustomersByState {
		records = append(records, []string{s.State, strconv.Itoa(s.CustomerCount)})
	}
	return Table{
		Name:    TableCustomersByState,
		Headers: []string{"customer_state", "customer_count"},
		Records: records,
	}
}

func customersByCityTable(bundle *analytics.Bundle) Table {
	records := make([][]string, 0, len(bundle.CustomersByCity))
	for _, c := range bundle.CustomersByCity {
		records = append(records, []string{c.City, strconv.Itoa(c.CustomerCount)})
	}
	return Table{
		Name:    TableCustomersByCity,
		Headers: []string{"customer_city", "customer_count"},
		Records: records,
	}
}

func reviewScoresTable(bundle *analytics.Bundle) Table {
	records := make([][]string, 0, len(bundle.ReviewScores))
	for _, r := range bundle.ReviewScores {
		records = append(records, []string{strconv.Itoa(r.Score), strconv.Itoa(r.ReviewCount)})
	}
	return Table{
		Name:    TableReviewScores,
		Headers: []string{"review_score", "review_count"},
		Records: records,
	}
}

func productCategoriesTable(bundle *analytics.Bundle) Table {
	records := make([][]string, 0, len(bundle.ProductCategories))
	for _, c := range bundle.ProductCategories {
		records = append(records, []string{c.Category, strconv.Itoa(c.ProductCount)})
	}
	return Table{
		Name:    TableProductCategories,
		Headers: []string{"product_category", "product_count"},
		Records: records,
	}
}

func rfmTable(bundle *analytics.Bundle) Table {
	records := make([][]string, 0, len(bundle.RFM))
	for _, row := range bundle.RFM {
		records = append(records, []string{
			row.CustomerID,
			strconv.Itoa(row.Frequency),
			strconv.FormatFloat(row.Monetary, 'f', 2, 64),
			strconv.Itoa(row.Recency),
		})
	}
	return Table{
		Name:    TableRFM,
		Headers: []string{"customer_id", "frequency", "monetary", "recency"},
		Records: records,
	}
}
