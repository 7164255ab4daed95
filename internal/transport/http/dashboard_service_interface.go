package http

import (
	"context"

	"orderpulse/internal/analytics"
	"orderpulse/internal/services"
	"orderpulse/pkg/contracts/domain"
)

// DashboardServiceInterface defines the dashboard operations the
// handlers need. The concrete implementation lives in services.
type DashboardServiceInterface interface {
	GetSnapshot(ctx context.Context, req services.DateRangeRequest) (*services.Snapshot, error)
	GetBundle(ctx context.Context, req services.DateRangeRequest) (*analytics.Bundle, error)
	GetDailyOrders(ctx context.Context, req services.DateRangeRequest) (*services.DailyOrdersResponse, error)
	GetCustomers(ctx context.Context, req services.DateRangeRequest) (*services.CustomersResponse, error)
	GetReviews(ctx context.Context, req services.DateRangeRequest) (*services.ReviewsResponse, error)
	GetProducts(ctx context.Context, req services.DateRangeRequest) (*services.ProductsResponse, error)
	GetRFM(ctx context.Context, req services.DateRangeRequest) ([]domain.RFMRow, error)
	GetDatasetInfo(ctx context.Context) (*services.DatasetInfo, error)
	Reload(ctx context.Context) (*services.DatasetInfo, error)
}
