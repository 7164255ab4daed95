package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderpulse/internal/analytics"
	apierrors "orderpulse/internal/errors"
	"orderpulse/internal/services"
	"orderpulse/pkg/contracts/domain"
)

// MockDashboardService is a mock implementation of DashboardServiceInterface
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetSnapshot(ctx context.Context, req services.DateRangeRequest) (*services.Snapshot, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.Snapshot), args.Error(1)
}

func (m *MockDashboardService) GetBundle(ctx context.Context, req services.DateRangeRequest) (*analytics.Bundle, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*analytics.Bundle), args.Error(1)
}

func (m *MockDashboardService) GetDailyOrders(ctx context.Context, req services.DateRangeRequest) (*services.DailyOrdersResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DailyOrdersResponse), args.Error(1)
}

func (m *MockDashboardService) GetCustomers(ctx context.Context, req services.DateRangeRequest) (*services.CustomersResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.CustomersResponse), args.Error(1)
}

func (m *MockDashboardService) GetReviews(ctx context.Context, req services.DateRangeRequest) (*services.ReviewsResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ReviewsResponse), args.Error(1)
}

func (m *MockDashboardService) GetProducts(ctx context.Context, req services.DateRangeRequest) (*services.ProductsResponse, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.ProductsResponse), args.Error(1)
}

func (m *MockDashboardService) GetRFM(ctx context.Context, req services.DateRangeRequest) ([]domain.RFMRow, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RFMRow), args.Error(1)
}

func (m *MockDashboardService) GetDatasetInfo(ctx context.Context) (*services.DatasetInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DatasetInfo), args.Error(1)
}

func (m *MockDashboardService) Reload(ctx context.Context) (*services.DatasetInfo, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*services.DatasetInfo), args.Error(1)
}

func handlerTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func newTestRouter(service DashboardServiceInterface) chi.Router {
	logger := handlerTestLogger()
	errorHandler := apierrors.NewErrorHandler(logger, false)
	handler := NewDashboardHandler(service, logger, errorHandler)

	r := chi.NewRouter()
	r.Mount("/api/dashboard", handler.Routes())
	r.Mount("/api/dataset", handler.DatasetRoutes())
	return r
}

func TestGetSnapshotEndpoint(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("GetSnapshot", services.DateRangeRequest{Start: "2018-01-01", End: "2018-01-03"}).
		Return(&services.Snapshot{
			Range: services.RangeInfo{Start: "2018-01-01", End: "2018-01-03", Days: 3},
			Metrics: services.HeadlineMetrics{
				TotalOrders:     3,
				TotalRevenue:    35,
				TotalRevenueBRL: "R$ 35,00",
			},
			Tables:      &analytics.Bundle{},
			GeneratedAt: time.Now().UTC(),
		}, nil)

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?start=2018-01-01&end=2018-01-03", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	metrics, ok := body["metrics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, float64(3), metrics["total_orders"])
	assert.Equal(t, "R$ 35,00", metrics["total_revenue_brl"])
	mockService.AssertExpectations(t)
}

func TestGetSnapshotInvalidRange(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("GetSnapshot", mock.Anything).
		Return(nil, services.ErrInvalidInput)

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard?start=garbage", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var problem map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, float64(http.StatusBadRequest), problem["status"])
}

func TestGetSnapshotDatasetNotLoaded(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("GetSnapshot", mock.Anything).
		Return(nil, services.ErrDatasetEmpty)

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetRFMEndpoint(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("GetRFM", services.DateRangeRequest{}).
		Return([]domain.RFMRow{
			{CustomerID: "c1", Frequency: 2, Monetary: 30, Recency: 2},
		}, nil)

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/dashboard/rfm", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["count"])
}

func TestGetDatasetRangeEndpoint(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("GetDatasetInfo").
		Return(&services.DatasetInfo{Rows: 3, Start: "2018-01-01", End: "2018-01-03"}, nil)

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodGet, "/api/dataset/range", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var info services.DatasetInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	assert.Equal(t, 3, info.Rows)
	assert.Equal(t, "2018-01-01", info.Start)
}

func TestReloadDatasetEndpoint(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("Reload").
		Return(&services.DatasetInfo{Rows: 5, Start: "2018-01-01", End: "2018-02-01"}, nil)

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "reloaded", body["status"])
}

func TestReloadDatasetFailure(t *testing.T) {
	mockService := new(MockDashboardService)
	mockService.On("Reload").
		Return(nil, errors.New("open data/main_data.csv: no such file"))

	router := newTestRouter(mockService)
	req := httptest.NewRequest(http.MethodPost, "/api/dataset/reload", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
