package analytics

import (
	"sort"

	"orderpulse/pkg/contracts/domain"
)

// CustomersByState counts distinct customers per state, sorted by
// count descending. Groups are enumerated in ascending key order
// first, so equal counts keep alphabetical state order. Rows with a
// missing state are skipped, which is why the state counts can sum to
// fewer than the total distinct customers.
func CustomersByState(rows []domain.OrderRecord) []domain.StateCount {
	groups := make(map[string]map[string]struct{})
	for _, row := range rows {
		if row.CustomerState == "" || row.CustomerID == "" {
			continue
		}
		set := groups[row.CustomerState]
		if set == nil {
			set = make(map[string]struct{})
			groups[row.CustomerState] = set
		}
		set[row.CustomerID] = struct{}{}
	}

	counts := make([]domain.StateCount, 0, len(groups))
	for state, customers := range groups {
		counts = append(counts, domain.StateCount{State: state, CustomerCount: len(customers)})
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].State < counts[j].State })
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].CustomerCount > counts[j].CustomerCount })

	return counts
}

// CustomersByCity counts distinct orders per city, sorted by count
// descending with the same tie-break as CustomersByState. The
// city-level table deliberately counts orders where the state-level
// table counts customers; the upstream report defines it that way and
// downstream consumers depend on the asymmetry.
func CustomersByCity(rows []domain.OrderRecord) []domain.CityCount {
	groups := make(map[string]map[string]struct{})
	for _, row := range rows {
		if row.CustomerCity == "" || row.OrderID == "" {
			continue
		}
		set := groups[row.CustomerCity]
		if set == nil {
			set = make(map[string]struct{})
			groups[row.CustomerCity] = set
		}
		set[row.OrderID] = struct{}{}
	}

	counts := make([]domain.CityCount, 0, len(groups))
	for city, orders := range groups {
		counts = append(counts, domain.CityCount{City: city, CustomerCount: len(orders)})
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].City < counts[j].City })
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].CustomerCount > counts[j].CustomerCount })

	return counts
}

// DistinctCustomers counts distinct customer IDs across all rows
func DistinctCustomers(rows []domain.OrderRecord) int {
	set := make(map[string]struct{})
	for _, row := range rows {
		if row.CustomerID != "" {
			set[row.CustomerID] = struct{}{}
		}
	}
	return len(set)
}
