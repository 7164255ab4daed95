package analytics

import (
	"math"
	"sort"

	"orderpulse/pkg/contracts/domain"
)

// ReviewScores counts distinct reviews per score value, ascending by
// score. Scores that never occur are absent from the output; the
// distribution is not zero-filled.
func ReviewScores(rows []domain.OrderRecord) []domain.ReviewScoreCount {
	groups := make(map[int]map[string]struct{})
	for _, row := range rows {
		if !row.HasReview() || row.ReviewID == "" {
			continue
		}
		set := groups[row.ReviewScore]
		if set == nil {
			set = make(map[string]struct{})
			groups[row.ReviewScore] = set
		}
		set[row.ReviewID] = struct{}{}
	}

	counts := make([]domain.ReviewScoreCount, 0, len(groups))
	for score, reviews := range groups {
		counts = append(counts, domain.ReviewScoreCount{Score: score, ReviewCount: len(reviews)})
	}

	sort.Slice(counts, func(i, j int) bool { return counts[i].Score < counts[j].Score })

	return counts
}

// AverageReviewScore is the row-level mean of non-missing scores,
// rounded to two decimals for the headline metric. Returns 0 when no
// row carries a review.
func AverageReviewScore(rows []domain.OrderRecord) float64 {
	sum, n := 0, 0
	for _, row := range rows {
		if row.HasReview() {
			sum += row.ReviewScore
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return math.Round(float64(sum)/float64(n)*100) / 100
}
