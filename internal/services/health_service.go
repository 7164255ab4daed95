package services

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"orderpulse/internal/config"
	"orderpulse/internal/dataset"
	"orderpulse/internal/format"
)

// ClientCounter reports how many websocket clients are connected.
// The websocket hub implements it.
type ClientCounter interface {
	ClientCount() int
}

// HealthService provides health check functionality
type HealthService struct {
	version   string
	buildTime string
	paths     *config.Paths
	store     *dataset.Store
	clients   ClientCounter
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus represents the health status response
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Services  map[string]interface{} `json:"services,omitempty"`
}

// ServiceHealth represents individual service health
type ServiceHealth struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// NewHealthService creates a new health service with injected dependencies
func NewHealthService(version, buildTime string, paths *config.Paths, store *dataset.Store, clients ClientCounter, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("HealthService initialized",
		slog.String("version", version),
		slog.String("build_time", buildTime))

	return &HealthService{
		version:   version,
		buildTime: buildTime,
		paths:     paths,
		store:     store,
		clients:   clients,
		startTime: time.Now(),
		logger:    logger,
	}
}

// CheckHealth returns the overall health status including dependencies
func (h *HealthService) CheckHealth(ctx context.Context) *HealthStatus {
	status := &HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
		Runtime: map[string]interface{}{
			"go_version":     runtime.Version(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
			"goroutines":     runtime.NumGoroutine(),
			"uptime_seconds": time.Since(h.startTime).Seconds(),
		},
		Services: map[string]interface{}{},
	}

	ds := h.checkDataset()
	status.Services["dataset"] = ds
	if ds.Status != "healthy" {
		status.Status = "degraded"
	}

	if h.clients != nil {
		status.Services["websocket"] = ServiceHealth{
			Status:  "healthy",
			Message: countMessage(h.clients.ClientCount()),
		}
	}

	return status
}

// CheckReadiness reports whether the service can answer dashboard
// queries: the dataset must be loaded with at least one usable row.
func (h *HealthService) CheckReadiness(ctx context.Context) (bool, *HealthStatus) {
	status := h.CheckHealth(ctx)
	ready := status.Status == "healthy"
	if !ready {
		h.logger.WarnContext(ctx, "readiness check failed",
			slog.String("status", status.Status))
	}
	return ready, status
}

// CheckLiveness reports process liveness without touching dependencies
func (h *HealthService) CheckLiveness(ctx context.Context) *HealthStatus {
	return &HealthStatus{
		Status:    "alive",
		Timestamp: time.Now().UTC(),
		Version:   h.version,
	}
}

func (h *HealthService) checkDataset() ServiceHealth {
	if h.store == nil {
		return ServiceHealth{Status: "unhealthy", Message: "dataset store not configured"}
	}
	rows := h.store.RowCount()
	if rows == 0 {
		return ServiceHealth{Status: "unhealthy", Message: "dataset not loaded"}
	}
	if _, ok := h.store.Bounds(); !ok {
		return ServiceHealth{Status: "unhealthy", Message: "dataset has no usable delivery dates"}
	}
	return ServiceHealth{
		Status:  "healthy",
		Message: countMessage(rows) + " rows loaded",
	}
}

func countMessage(n int) string {
	return format.Count(n)
}
