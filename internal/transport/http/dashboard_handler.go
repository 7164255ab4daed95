package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "orderpulse/internal/errors"
	"orderpulse/internal/middleware"
	"orderpulse/internal/services"
)

// DashboardHandler handles dashboard HTTP requests with RFC 7807 compliance
type DashboardHandler struct {
	service      DashboardServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service DashboardServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/", h.GetSnapshot)
	r.Get("/daily-orders", h.GetDailyOrders)
	r.Get("/customers", h.GetCustomers)
	r.Get("/reviews", h.GetReviews)
	r.Get("/products", h.GetProducts)
	r.Get("/rfm", h.GetRFM)

	return r
}

// DatasetRoutes returns the dataset management routes
func (h *DashboardHandler) DatasetRoutes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/range", h.GetDatasetRange)
	r.Post("/reload", h.ReloadDataset)

	return r
}

// rangeRequest reads the optional start/end query parameters.
func rangeRequest(r *http.Request) services.DateRangeRequest {
	q := r.URL.Query()
	return services.DateRangeRequest{
		Start: q.Get("start"),
		End:   q.Get("end"),
	}
}

// handleServiceError maps service errors to RFC 7807 responses.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.ErrorContext(r.Context(), "dashboard request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
		slog.String("path", r.URL.Path),
	)

	switch {
	case errors.Is(err, services.ErrInvalidInput), errors.Is(err, services.ErrInvalidDateRange):
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("range", err.Error()))
	case errors.Is(err, services.ErrDatasetEmpty), errors.Is(err, services.ErrDatasetNotLoaded):
		h.errorHandler.HandleError(w, r, apierrors.New(
			http.StatusServiceUnavailable,
			"DATASET_NOT_LOADED",
			"Orders dataset is not loaded",
		))
	default:
		h.errorHandler.HandleError(w, r, err)
	}
}

// GetSnapshot handles GET /api/dashboard
func (h *DashboardHandler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.GetSnapshot(r.Context(), rangeRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, snap)
}

// GetDailyOrders handles GET /api/dashboard/daily-orders
func (h *DashboardHandler) GetDailyOrders(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetDailyOrders(r.Context(), rangeRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetCustomers handles GET /api/dashboard/customers
func (h *DashboardHandler) GetCustomers(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetCustomers(r.Context(), rangeRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetReviews handles GET /api/dashboard/reviews
func (h *DashboardHandler) GetReviews(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetReviews(r.Context(), rangeRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetProducts handles GET /api/dashboard/products
func (h *DashboardHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.GetProducts(r.Context(), rangeRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, resp)
}

// GetRFM handles GET /api/dashboard/rfm
func (h *DashboardHandler) GetRFM(w http.ResponseWriter, r *http.Request) {
	rows, err := h.service.GetRFM(r.Context(), rangeRequest(r))
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"rows":  rows,
		"count": len(rows),
	})
}

// GetDatasetRange handles GET /api/dataset/range
func (h *DashboardHandler) GetDatasetRange(w http.ResponseWriter, r *http.Request) {
	info, err := h.service.GetDatasetInfo(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err)
		return
	}
	render.JSON(w, r, info)
}

// ReloadDataset handles POST /api/dataset/reload
func (h *DashboardHandler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	h.logger.InfoContext(r.Context(), "dataset reload requested",
		slog.String("request_id", middleware.GetReqID(r.Context())))

	info, err := h.service.Reload(r.Context())
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.DatasetLoadError(err))
		return
	}
	render.JSON(w, r, map[string]interface{}{
		"status":  "reloaded",
		"dataset": info,
	})
}
