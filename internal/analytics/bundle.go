package analytics

import (
	"context"

	"golang.org/x/sync/errgroup"

	"orderpulse/internal/dataset"
	"orderpulse/pkg/contracts/domain"
)

// Bundle holds the output of every aggregator for one filtered view
type Bundle struct {
	DailyOrders       []domain.DailyOrderPoint  `json:"daily_orders"`
	CustomersByState  []domain.StateCount       `json:"customers_by_state"`
	CustomersByCity   []domain.CityCount        `json:"customers_by_city"`
	ReviewScores      []domain.ReviewScoreCount `json:"review_scores"`
	ProductCategories []domain.CategoryCount    `json:"product_categories"`
	RFM               []domain.RFMRow           `json:"rfm"`

	AverageReviewScore float64 `json:"average_review_score"`
}

// Aggregate runs every aggregator over the filtered rows. The
// aggregators are pure and independent of each other, so they run
// concurrently; the result is deterministic regardless of scheduling.
func Aggregate(ctx context.Context, rows []domain.OrderRecord, rng dataset.DateRange) (*Bundle, error) {
	bundle := &Bundle{}

	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		bundle.DailyOrders = DailyOrders(rows, rng)
		return nil
	})
	g.Go(func() error {
		bundle.CustomersByState = CustomersByState(rows)
		return nil
	})
	g.Go(func() error {
		bundle.CustomersByCity = CustomersByCity(rows)
		return nil
	})
	g.Go(func() error {
		bundle.ReviewScores = ReviewScores(rows)
		bundle.AverageReviewScore = AverageReviewScore(rows)
		return nil
	})
	g.Go(func() error {
		bundle.ProductCategories = ProductCategories(rows)
		return nil
	})
	g.Go(func() error {
		bundle.RFM = RFM(rows)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return bundle, nil
}
