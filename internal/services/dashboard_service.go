package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"orderpulse/internal/analytics"
	"orderpulse/internal/dataset"
	"orderpulse/internal/format"
	"orderpulse/internal/infrastructure"
	"orderpulse/pkg/contracts/domain"
)

// dateLayout is the wire format for range parameters.
const dateLayout = "2006-01-02"

// ReloadNotifier receives a notice after the dataset is swapped, so
// connected dashboards can refresh. The websocket hub implements it.
type ReloadNotifier interface {
	NotifyDataUpdate(updateType, action string, payload interface{})
}

// DashboardService computes dashboard snapshots over the orders table
type DashboardService struct {
	store    *dataset.Store
	metrics  *infrastructure.DashboardMetrics
	notifier ReloadNotifier
	validate *validator.Validate
	logger   *slog.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(store *dataset.Store, metrics *infrastructure.DashboardMetrics, notifier ReloadNotifier, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:    store,
		metrics:  metrics,
		notifier: notifier,
		validate: validator.New(),
		logger:   logger.With(slog.String("service", "dashboard")),
	}
}

// DateRangeRequest carries the optional start/end query parameters.
// Both dates are inclusive and compared against the estimated delivery
// date. Omitted values fall back to the dataset bounds.
type DateRangeRequest struct {
	Start string `json:"start" validate:"omitempty,datetime=2006-01-02"`
	End   string `json:"end" validate:"omitempty,datetime=2006-01-02"`
}

// Snapshot is the full dashboard payload for one date range.
type Snapshot struct {
	Range       RangeInfo         `json:"range"`
	Metrics     HeadlineMetrics   `json:"metrics"`
	Tables      *analytics.Bundle `json:"tables"`
	GeneratedAt time.Time         `json:"generated_at"`
}

// RangeInfo echoes the effective range back to the client.
type RangeInfo struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Days  int    `json:"days"`
}

// HeadlineMetrics are the summary cards shown above the charts.
type HeadlineMetrics struct {
	TotalOrders       int     `json:"total_orders"`
	TotalRevenue      float64 `json:"total_revenue"`
	TotalRevenueBRL   string  `json:"total_revenue_brl"`
	DistinctCustomers int     `json:"distinct_customers"`
	AverageReview     float64 `json:"average_review"`
	RFMCustomers      int     `json:"rfm_customers"`
}

// ResolveRange validates the request and resolves omitted bounds
// against the loaded dataset. An inverted range is allowed and simply
// selects nothing.
func (s *DashboardService) ResolveRange(req DateRangeRequest) (dataset.DateRange, error) {
	if err := s.validate.Struct(req); err != nil {
		return dataset.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	bounds, ok := s.store.Bounds()
	if !ok {
		return dataset.DateRange{}, ErrDatasetEmpty
	}

	start, end := bounds.Start, bounds.End
	if req.Start != "" {
		t, err := time.Parse(dateLayout, req.Start)
		if err != nil {
			return dataset.DateRange{}, fmt.Errorf("%w: start: %v", ErrInvalidDateRange, err)
		}
		start = t
	}
	if req.End != "" {
		t, err := time.Parse(dateLayout, req.End)
		if err != nil {
			return dataset.DateRange{}, fmt.Errorf("%w: end: %v", ErrInvalidDateRange, err)
		}
		end = t
	}

	return dataset.NewDateRange(start, end), nil
}

// GetSnapshot computes every summary table and the headline metrics
// for the requested range.
func (s *DashboardService) GetSnapshot(ctx context.Context, req DateRangeRequest) (*Snapshot, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)

	bundle, err := analytics.Aggregate(ctx, rows, rng)
	if err != nil {
		return nil, fmt.Errorf("aggregation failed: %w", err)
	}

	elapsed := time.Since(start)
	s.metrics.RecordSnapshot(ctx, elapsed, len(rows))
	s.logger.InfoContext(ctx, "snapshot computed",
		slog.String("start", rng.Start.Format(dateLayout)),
		slog.String("end", rng.End.Format(dateLayout)),
		slog.Int("rows", len(rows)),
		slog.Duration("elapsed", elapsed))

	totalRevenue := analytics.TotalRevenue(bundle.DailyOrders)
	return &Snapshot{
		Range: RangeInfo{
			Start: rng.Start.Format(dateLayout),
			End:   rng.End.Format(dateLayout),
			Days:  rng.Days(),
		},
		Metrics: HeadlineMetrics{
			TotalOrders:       analytics.TotalOrders(bundle.DailyOrders),
			TotalRevenue:      totalRevenue,
			TotalRevenueBRL:   format.BRL(totalRevenue),
			DistinctCustomers: analytics.DistinctCustomers(rows),
			AverageReview:     bundle.AverageReviewScore,
			RFMCustomers:      len(bundle.RFM),
		},
		Tables:      bundle,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

// GetBundle computes the summary tables without the snapshot envelope.
// The export endpoints use it.
func (s *DashboardService) GetBundle(ctx context.Context, req DateRangeRequest) (*analytics.Bundle, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)
	return analytics.Aggregate(ctx, rows, rng)
}

// DailyOrdersResponse is the payload for the daily orders endpoint.
type DailyOrdersResponse struct {
	Points          []domain.DailyOrderPoint `json:"points"`
	TotalOrders     int                      `json:"total_orders"`
	TotalRevenue    float64                  `json:"total_revenue"`
	TotalRevenueBRL string                   `json:"total_revenue_brl"`
}

// GetDailyOrders computes only the daily order series.
func (s *DashboardService) GetDailyOrders(ctx context.Context, req DateRangeRequest) (*DailyOrdersResponse, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)
	points := analytics.DailyOrders(rows, rng)
	revenue := analytics.TotalRevenue(points)
	return &DailyOrdersResponse{
		Points:          points,
		TotalOrders:     analytics.TotalOrders(points),
		TotalRevenue:    revenue,
		TotalRevenueBRL: format.BRL(revenue),
	}, nil
}

// CustomersResponse carries both geographic breakdowns.
type CustomersResponse struct {
	ByState []domain.StateCount `json:"by_state"`
	ByCity  []domain.CityCount  `json:"by_city"`
}

// GetCustomers computes the customer demographics tables.
func (s *DashboardService) GetCustomers(ctx context.Context, req DateRangeRequest) (*CustomersResponse, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)
	return &CustomersResponse{
		ByState: analytics.CustomersByState(rows),
		ByCity:  analytics.CustomersByCity(rows),
	}, nil
}

// ReviewsResponse carries the score distribution and its mean.
type ReviewsResponse struct {
	Scores       []domain.ReviewScoreCount `json:"scores"`
	AverageScore float64                   `json:"average_score"`
}

// GetReviews computes the review score distribution.
func (s *DashboardService) GetReviews(ctx context.Context, req DateRangeRequest) (*ReviewsResponse, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)
	return &ReviewsResponse{
		Scores:       analytics.ReviewScores(rows),
		AverageScore: analytics.AverageReviewScore(rows),
	}, nil
}

// ProductsResponse carries the category table plus the head and tail
// slices the dashboard renders. The counts measure catalog breadth
// (distinct products per category), not sales volume, even though the
// page labels them best and worst sellers.
type ProductsResponse struct {
	Categories []domain.CategoryCount `json:"categories"`
	Top        []domain.CategoryCount `json:"top"`
	Bottom     []domain.CategoryCount `json:"bottom"`
}

// GetProducts computes the product category tables.
func (s *DashboardService) GetProducts(ctx context.Context, req DateRangeRequest) (*ProductsResponse, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)
	categories := analytics.ProductCategories(rows)
	return &ProductsResponse{
		Categories: categories,
		Top:        analytics.TopCategories(categories, 5),
		Bottom:     analytics.BottomCategories(categories, 5),
	}, nil
}

// GetRFM computes the per-customer RFM table.
func (s *DashboardService) GetRFM(ctx context.Context, req DateRangeRequest) ([]domain.RFMRow, error) {
	rng, err := s.ResolveRange(req)
	if err != nil {
		return nil, err
	}
	rows := dataset.FilterByDateRange(s.store.Rows(), rng)
	return analytics.RFM(rows), nil
}

// DatasetInfo describes the loaded table and its date bounds.
type DatasetInfo struct {
	Rows     int       `json:"rows"`
	Start    string    `json:"start"`
	End      string    `json:"end"`
	LoadedAt time.Time `json:"loaded_at"`
}

// GetDatasetInfo returns the loaded row count and selectable range.
func (s *DashboardService) GetDatasetInfo(ctx context.Context) (*DatasetInfo, error) {
	bounds, ok := s.store.Bounds()
	if !ok {
		return nil, ErrDatasetEmpty
	}
	return &DatasetInfo{
		Rows:     s.store.RowCount(),
		Start:    bounds.Start.Format(dateLayout),
		End:      bounds.End.Format(dateLayout),
		LoadedAt: s.store.LoadedAt(),
	}, nil
}

// Reload re-reads the CSV from disk. On failure the previous table
// stays live. On success connected dashboards are told to refresh.
func (s *DashboardService) Reload(ctx context.Context) (*DatasetInfo, error) {
	if err := s.store.Reload(ctx); err != nil {
		return nil, fmt.Errorf("reload failed: %w", err)
	}
	if s.metrics != nil {
		s.metrics.DatasetReloadsTotal.Add(ctx, 1)
		s.metrics.DatasetRows.Record(ctx, int64(s.store.RowCount()))
	}

	info, err := s.GetDatasetInfo(ctx)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyDataUpdate("dataset", "reloaded", info)
	}
	s.logger.InfoContext(ctx, "dataset reloaded",
		slog.Int("rows", info.Rows),
		slog.String("start", info.Start),
		slog.String("end", info.End))
	return info, nil
}
