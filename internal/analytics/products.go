package analytics

import (
	"sort"

	"orderpulse/pkg/contracts/domain"
)

// ProductCategories counts distinct products per category, in
// ascending category order. Rows with a missing category are skipped.
//
// Note: the dashboard consumes this table as "best"/"worst product",
// but the metric is catalog breadth (how many distinct products a
// category carries), not sales volume. That labeling comes from the
// upstream report and is preserved on purpose.
func ProductCategories(rows []domain.OrderRecord) []domain.CategoryCount {
	groups := make(map[string]map[string]struct{})
	for _, row := range rows {
		if row.ProductCategory == "" || row.ProductID == "" {
			continue
		}
		set := groups[row.ProductCategory]
		if set == nil {
			set = make(map[string]struct{})
			groups[row.ProductCategory] = set
		}
		set[row.ProductID] = struct{}{}
	}

	counts := make([]domain.CategoryCount, 0, len(groups))
	for category, products := range groups {
		counts = append(counts, domain.CategoryCount{Category: category, ProductCount: len(products)})
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].Category < counts[j].Category })

	return counts
}

// TopCategories returns the n categories with the most distinct
// products, descending. Ties keep ascending category order.
func TopCategories(counts []domain.CategoryCount, n int) []domain.CategoryCount {
	sorted := make([]domain.CategoryCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductCount > sorted[j].ProductCount })
	return head(sorted, n)
}

// BottomCategories returns the n categories with the fewest distinct
// products, ascending. Ties keep ascending category order.
func BottomCategories(counts []domain.CategoryCount, n int) []domain.CategoryCount {
	sorted := make([]domain.CategoryCount, len(counts))
	copy(sorted, counts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ProductCount < sorted[j].ProductCount })
	return head(sorted, n)
}

func head(counts []domain.CategoryCount, n int) []domain.CategoryCount {
	if n < 0 {
		n = 0
	}
	if n > len(counts) {
		n = len(counts)
	}
	return counts[:n]
}
